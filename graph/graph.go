// Package graph provides an in-memory RDF triple store with set semantics
// and serialization to Turtle, RDF/XML, N-Triples and N3.
//
// The store is the sink of the direct mapping: adding a triple that is
// already present is a no-op, which is what makes repeated emission of
// shared resources (chromosomes, parent/child references) converge onto a
// single description without any bookkeeping in the caller. Serialization
// orders triples canonically so that equal graphs produce byte-identical
// output.
package graph

import (
	"sort"
	"strings"
)

// W3C namespace prefixes bound on every new graph.
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"
)

// Core RDF and RDFS predicates.
const (
	RDFType     = RDFNamespace + "type"
	RDFSLabel   = RDFSNamespace + "label"
	RDFSComment = RDFSNamespace + "comment"
)

// XSD datatypes used by the mapping.
const (
	XSDString          = XSDNamespace + "string"
	XSDDate            = XSDNamespace + "date"
	XSDPositiveInteger = XSDNamespace + "positiveInteger"
)

// TermKind discriminates IRIs from literals.
type TermKind int

const (
	// TermIRI is a resource identifier.
	TermIRI TermKind = iota

	// TermLiteral is a (possibly typed) literal value.
	TermLiteral
)

// Term is one node of a triple. Terms are comparable values; two terms are
// equal when kind, lexical value and datatype all match.
type Term struct {
	Kind     TermKind
	Value    string
	Datatype string
}

// IRI returns an IRI term.
func IRI(v string) Term {
	return Term{Kind: TermIRI, Value: v}
}

// Literal returns a plain (untyped) literal term.
func Literal(v string) Term {
	return Term{Kind: TermLiteral, Value: v}
}

// TypedLiteral returns a literal term with an XSD datatype IRI.
func TypedLiteral(v, datatype string) Term {
	return Term{Kind: TermLiteral, Value: v, Datatype: datatype}
}

// Triple is one (subject, predicate, object) statement. Subject and
// predicate are IRI terms.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// Graph is a set of triples with a namespace-prefix registry.
type Graph struct {
	prefixes map[string]string
	triples  map[Triple]struct{}
}

// New creates an empty graph with the rdf, rdfs and xsd prefixes bound.
func New() *Graph {
	return &Graph{
		prefixes: map[string]string{
			"rdf":  RDFNamespace,
			"rdfs": RDFSNamespace,
			"xsd":  XSDNamespace,
		},
		triples: make(map[Triple]struct{}),
	}
}

// Bind registers a namespace prefix used for compaction during
// serialization. Rebinding a prefix replaces the previous namespace.
func (g *Graph) Bind(prefix, namespace string) {
	g.prefixes[prefix] = namespace
}

// Add inserts a triple. Inserting a triple that is already present is a
// no-op.
func (g *Graph) Add(subject, predicate, object Term) {
	g.triples[Triple{Subject: subject, Predicate: predicate, Object: object}] = struct{}{}
}

// Len reports the number of distinct triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns all triples in canonical order: by subject, predicate,
// then object kind, value and datatype.
func (g *Graph) Triples() []Triple {
	ts := make([]Triple, 0, len(g.triples))
	for t := range g.triples {
		ts = append(ts, t)
	}
	sort.Slice(ts, func(i, j int) bool {
		a, b := ts[i], ts[j]
		if a.Subject.Value != b.Subject.Value {
			return a.Subject.Value < b.Subject.Value
		}
		if a.Predicate.Value != b.Predicate.Value {
			return a.Predicate.Value < b.Predicate.Value
		}
		if a.Object.Kind != b.Object.Kind {
			return a.Object.Kind < b.Object.Kind
		}
		if a.Object.Value != b.Object.Value {
			return a.Object.Value < b.Object.Value
		}
		return a.Object.Datatype < b.Object.Datatype
	})
	return ts
}

// sortedPrefixes returns bound prefixes in lexical order for deterministic
// output.
func (g *Graph) sortedPrefixes() []string {
	keys := make([]string, 0, len(g.prefixes))
	for k := range g.prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// compact rewrites iri as prefix:local if a bound namespace matches and the
// remainder is a safe local name. The second result reports success.
func (g *Graph) compact(iri string) (string, bool) {
	for _, prefix := range g.sortedPrefixes() {
		ns := g.prefixes[prefix]
		if !strings.HasPrefix(iri, ns) {
			continue
		}
		local := strings.TrimPrefix(iri, ns)
		if localNameSafe(local) {
			return prefix + ":" + local, true
		}
	}
	return "", false
}

// localNameSafe reports whether s can appear as the local part of a
// prefixed name in Turtle without escaping.
func localNameSafe(s string) bool {
	if s == "" || s[0] == '-' || s[0] == '.' || strings.HasSuffix(s, ".") {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-' || r == '.':
		default:
			return false
		}
	}
	return true
}

// escapeLiteral escapes special characters for Turtle and N-Triples
// literals.
func escapeLiteral(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
