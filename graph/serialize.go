package graph

import (
	"fmt"
	"strings"
)

// Serialize renders the graph in the requested format. Output is
// deterministic: triples are emitted in canonical order and prefix
// declarations in lexical order.
func (g *Graph) Serialize(format Format) (string, error) {
	switch format {
	case FormatTurtle, FormatN3:
		// N3 is a superset of Turtle; the Turtle rendering is valid N3.
		return g.toTurtle(), nil
	case FormatNTriples:
		return g.toNTriples(), nil
	case FormatXML:
		return g.toXML(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// toTurtle serializes to Turtle, grouping triples by subject.
func (g *Graph) toTurtle() string {
	var sb strings.Builder

	for _, prefix := range g.sortedPrefixes() {
		sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", prefix, g.prefixes[prefix]))
	}
	sb.WriteString("\n")

	ts := g.Triples()
	for i, t := range ts {
		newSubject := i == 0 || ts[i-1].Subject != t.Subject
		if newSubject {
			if i > 0 {
				sb.WriteString(" .\n\n")
			}
			sb.WriteString(fmt.Sprintf("%s\n", g.turtleIRI(t.Subject.Value)))
		} else {
			sb.WriteString(" ;\n")
		}
		sb.WriteString(fmt.Sprintf("    %s %s", g.turtlePredicate(t.Predicate.Value), g.turtleObject(t.Object)))
	}
	if len(ts) > 0 {
		sb.WriteString(" .\n")
	}

	return sb.String()
}

// turtlePredicate renders a predicate, using the rdf:type shorthand.
func (g *Graph) turtlePredicate(iri string) string {
	if iri == RDFType {
		return "a"
	}
	return g.turtleIRI(iri)
}

// turtleIRI renders an IRI as a prefixed name where possible.
func (g *Graph) turtleIRI(iri string) string {
	if qname, ok := g.compact(iri); ok {
		return qname
	}
	return fmt.Sprintf("<%s>", iri)
}

// turtleObject renders an object term for Turtle.
func (g *Graph) turtleObject(o Term) string {
	if o.Kind == TermIRI {
		return g.turtleIRI(o.Value)
	}
	lit := fmt.Sprintf("\"%s\"", escapeLiteral(o.Value))
	if o.Datatype != "" {
		return lit + "^^" + g.turtleIRI(o.Datatype)
	}
	return lit
}

// toNTriples serializes one triple per line with full IRIs.
func (g *Graph) toNTriples() string {
	var sb strings.Builder
	for _, t := range g.Triples() {
		sb.WriteString(fmt.Sprintf("<%s> <%s> %s .\n", t.Subject.Value, t.Predicate.Value, ntObject(t.Object)))
	}
	return sb.String()
}

// ntObject renders an object term for N-Triples.
func ntObject(o Term) string {
	if o.Kind == TermIRI {
		return fmt.Sprintf("<%s>", o.Value)
	}
	lit := fmt.Sprintf("\"%s\"", escapeLiteral(o.Value))
	if o.Datatype != "" {
		return fmt.Sprintf("%s^^<%s>", lit, o.Datatype)
	}
	return lit
}

// toXML serializes to RDF/XML with one rdf:Description element per subject.
func (g *Graph) toXML() string {
	var sb strings.Builder

	ts := g.Triples()
	// Property element tags need a declared prefix, so namespaces outside
	// the bound set are registered before the header is written.
	for _, t := range ts {
		g.ensureXMLPrefix(t.Predicate.Value)
	}

	sb.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")
	sb.WriteString("<rdf:RDF")
	for _, prefix := range g.sortedPrefixes() {
		sb.WriteString(fmt.Sprintf("\n    xmlns:%s=\"%s\"", prefix, g.prefixes[prefix]))
	}
	sb.WriteString(">\n")

	for i, t := range ts {
		newSubject := i == 0 || ts[i-1].Subject != t.Subject
		if newSubject {
			if i > 0 {
				sb.WriteString("  </rdf:Description>\n")
			}
			sb.WriteString(fmt.Sprintf("  <rdf:Description rdf:about=\"%s\">\n", xmlEscape(t.Subject.Value)))
		}
		g.writePropertyXML(&sb, t)
	}
	if len(ts) > 0 {
		sb.WriteString("  </rdf:Description>\n")
	}
	sb.WriteString("</rdf:RDF>\n")

	return sb.String()
}

// writePropertyXML writes one property element. Predicates outside any
// bound namespace fall back to splitting the IRI at the last '#' or '/'.
func (g *Graph) writePropertyXML(sb *strings.Builder, t Triple) {
	prefix, local, ok := g.splitForXML(t.Predicate.Value)
	if !ok {
		// No usable namespace split; the triple cannot be expressed as a
		// property element and is dropped from the XML rendering.
		return
	}
	tag := prefix + ":" + local

	switch {
	case t.Object.Kind == TermIRI:
		sb.WriteString(fmt.Sprintf("    <%s rdf:resource=\"%s\"/>\n", tag, xmlEscape(t.Object.Value)))
	case t.Object.Datatype != "":
		sb.WriteString(fmt.Sprintf("    <%s rdf:datatype=\"%s\">%s</%s>\n",
			tag, xmlEscape(t.Object.Datatype), xmlEscape(t.Object.Value), tag))
	default:
		sb.WriteString(fmt.Sprintf("    <%s>%s</%s>\n", tag, xmlEscape(t.Object.Value), tag))
	}
}

// ensureXMLPrefix binds a generated prefix for a predicate IRI whose
// namespace is not already bound. The namespace is derived from the last
// '#' or '/' in the IRI.
func (g *Graph) ensureXMLPrefix(iri string) {
	if _, _, ok := g.splitForXML(iri); ok {
		return
	}
	cut := strings.LastIndexAny(iri, "#/")
	if cut < 0 || cut == len(iri)-1 {
		return
	}
	g.prefixes[fmt.Sprintf("ns%d", len(g.prefixes)+1)] = iri[:cut+1]
}

// splitForXML splits a predicate IRI into a bound prefix and local name.
func (g *Graph) splitForXML(iri string) (prefix, local string, ok bool) {
	for _, p := range g.sortedPrefixes() {
		ns := g.prefixes[p]
		if strings.HasPrefix(iri, ns) && localNameSafe(strings.TrimPrefix(iri, ns)) {
			return p, strings.TrimPrefix(iri, ns), true
		}
	}
	return "", "", false
}

// xmlEscape escapes text for XML attribute and element content.
func xmlEscape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}
