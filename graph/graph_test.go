package graph_test

import (
	"strings"
	"testing"

	"github.com/NLeSC/siga/graph"
)

func TestAddIsIdempotent(t *testing.T) {
	g := graph.New()
	s := graph.IRI("http://example.org/a")
	p := graph.IRI(graph.RDFSLabel)
	o := graph.Literal("a")

	g.Add(s, p, o)
	g.Add(s, p, o)
	if g.Len() != 1 {
		t.Errorf("Len = %d, want 1 after duplicate Add", g.Len())
	}

	// A literal with a datatype is a different term.
	g.Add(s, p, graph.TypedLiteral("a", graph.XSDString))
	if g.Len() != 2 {
		t.Errorf("Len = %d, want 2", g.Len())
	}
}

func TestTriplesCanonicalOrder(t *testing.T) {
	g := graph.New()
	g.Add(graph.IRI("http://example.org/b"), graph.IRI(graph.RDFSLabel), graph.Literal("b"))
	g.Add(graph.IRI("http://example.org/a"), graph.IRI(graph.RDFSLabel), graph.Literal("a2"))
	g.Add(graph.IRI("http://example.org/a"), graph.IRI(graph.RDFSLabel), graph.Literal("a1"))

	ts := g.Triples()
	if ts[0].Subject.Value != "http://example.org/a" || ts[0].Object.Value != "a1" {
		t.Errorf("unexpected first triple: %+v", ts[0])
	}
	if ts[2].Subject.Value != "http://example.org/b" {
		t.Errorf("unexpected last triple: %+v", ts[2])
	}
}

func TestSerializeTurtle(t *testing.T) {
	g := graph.New()
	g.Bind("ex", "http://example.org/")
	g.Add(graph.IRI("http://example.org/a"), graph.IRI(graph.RDFType), graph.IRI("http://example.org/Thing"))
	g.Add(graph.IRI("http://example.org/a"), graph.IRI(graph.RDFSLabel), graph.TypedLiteral("thing a", graph.XSDString))

	out, err := g.Serialize(graph.FormatTurtle)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	if !strings.Contains(out, "@prefix ex: <http://example.org/> .") {
		t.Error("Turtle output should declare the ex prefix")
	}
	if !strings.Contains(out, "a ex:Thing") {
		t.Error("Turtle output should use the rdf:type shorthand and a prefixed name")
	}
	if !strings.Contains(out, "\"thing a\"^^xsd:string") {
		t.Error("Turtle output should carry the literal datatype")
	}
}

func TestSerializeNTriples(t *testing.T) {
	g := graph.New()
	g.Add(graph.IRI("http://example.org/a"), graph.IRI(graph.RDFSLabel), graph.TypedLiteral("a", graph.XSDString))
	g.Add(graph.IRI("http://example.org/a"), graph.IRI(graph.RDFType), graph.IRI("http://example.org/Thing"))

	out, err := g.Serialize(graph.FormatNTriples)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if !strings.HasSuffix(line, " .") {
			t.Errorf("N-Triples line should end with ' .': %s", line)
		}
	}
	// Canonical order sorts the rdf:type predicate before rdfs:label.
	want := "<http://example.org/a> <" + graph.RDFType + "> <http://example.org/Thing> ."
	if lines[0] != want {
		t.Errorf("line = %q, want %q", lines[0], want)
	}
	want = "<http://example.org/a> <" + graph.RDFSLabel + "> \"a\"^^<" + graph.XSDString + "> ."
	if lines[1] != want {
		t.Errorf("line = %q, want %q", lines[1], want)
	}
}

func TestSerializeXML(t *testing.T) {
	g := graph.New()
	g.Bind("ex", "http://example.org/ns#")
	g.Add(graph.IRI("http://example.org/a"), graph.IRI("http://example.org/ns#rel"), graph.IRI("http://example.org/b"))
	g.Add(graph.IRI("http://example.org/a"), graph.IRI(graph.RDFSLabel), graph.Literal("a <b> & \"c\""))

	out, err := g.Serialize(graph.FormatXML)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	if !strings.Contains(out, "<rdf:RDF") || !strings.Contains(out, "</rdf:RDF>") {
		t.Error("XML output should be wrapped in rdf:RDF")
	}
	if !strings.Contains(out, "<rdf:Description rdf:about=\"http://example.org/a\">") {
		t.Error("XML output should describe the subject")
	}
	if !strings.Contains(out, "<ex:rel rdf:resource=\"http://example.org/b\"/>") {
		t.Error("XML output should render IRI objects as rdf:resource")
	}
	if !strings.Contains(out, "a &lt;b&gt; &amp; &quot;c&quot;") {
		t.Error("XML output should escape literal content")
	}
}

func TestSerializeN3MatchesTurtle(t *testing.T) {
	g := graph.New()
	g.Add(graph.IRI("http://example.org/a"), graph.IRI(graph.RDFSLabel), graph.Literal("a"))

	ttl, err := g.Serialize(graph.FormatTurtle)
	if err != nil {
		t.Fatalf("Serialize turtle failed: %v", err)
	}
	n3, err := g.Serialize(graph.FormatN3)
	if err != nil {
		t.Fatalf("Serialize n3 failed: %v", err)
	}
	if ttl != n3 {
		t.Error("N3 output should match the Turtle rendering")
	}
}

func TestLiteralEscaping(t *testing.T) {
	g := graph.New()
	g.Add(graph.IRI("http://example.org/a"), graph.IRI(graph.RDFSComment), graph.Literal("line1\nline2\t\"quoted\""))

	out, err := g.Serialize(graph.FormatNTriples)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !strings.Contains(out, `"line1\nline2\t\"quoted\""`) {
		t.Errorf("literal not escaped: %s", out)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want graph.Format
		ok   bool
	}{
		{"turtle", graph.FormatTurtle, true},
		{"ttl", graph.FormatTurtle, true},
		{"XML", graph.FormatXML, true},
		{"rdf", graph.FormatXML, true},
		{"ntriples", graph.FormatNTriples, true},
		{"nt", graph.FormatNTriples, true},
		{"n3", graph.FormatN3, true},
		{"jsonld", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, err := graph.ParseFormat(tt.in)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
		if !tt.ok && err == nil {
			t.Errorf("ParseFormat(%q) should fail", tt.in)
		}
	}
}

func TestFormatExtensions(t *testing.T) {
	wantExt := map[graph.Format]string{
		graph.FormatTurtle:   ".ttl",
		graph.FormatXML:      ".rdf",
		graph.FormatNTriples: ".nt",
		graph.FormatN3:       ".n3",
	}
	for format, ext := range wantExt {
		info, ok := graph.GetFormatInfo(format)
		if !ok {
			t.Errorf("missing format info for %s", format)
			continue
		}
		if info.Extension != ext {
			t.Errorf("extension for %s = %s, want %s", format, info.Extension, ext)
		}
	}
}
