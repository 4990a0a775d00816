package triplify

import (
	"github.com/NLeSC/siga/vocabulary/faldo"
	"github.com/NLeSC/siga/vocabulary/obo"
)

// featureClass maps supported (amended) feature types to Sequence Ontology
// class IRIs. The table is immutable process-wide configuration; feature
// types outside it are skipped by the engine, not treated as errors.
var featureClass = map[string]string{
	"genome":          obo.Genome,
	"chromosome":      obo.Chromosome,
	"gene":            obo.Gene,
	"prim_transcript": obo.PrimTranscript,
	"mRNA":            obo.MRNA,
	"CDS":             obo.CDS,
	"exon":            obo.Exon,
	"intron":          obo.Intron,
	"five_prime_UTR":  obo.FivePrimeUTR,
	"three_prime_UTR": obo.ThreePrimeUTR,
	"polyA_site":      obo.PolyASite,
	"polyA_sequence":  obo.PolyASequence,
	"variation":       obo.Variation,
}

// strandClass maps the four recognized strand symbols to FALDO position
// classes. The lookup is total over valid symbols; a symbol outside the
// table marks a malformed record and is a hard error at mapping time.
var strandClass = map[string]string{
	"+": faldo.ForwardStrandPosition,
	"-": faldo.ReverseStrandPosition,
	"?": faldo.StrandedPosition,
	".": faldo.Position,
}

// ClassOf resolves an amended feature type to its ontology class IRI.
func ClassOf(amendedType string) (string, bool) {
	iri, ok := featureClass[amendedType]
	return iri, ok
}

// StrandClassOf resolves a strand symbol to its FALDO position class IRI.
func StrandClassOf(strand string) (string, bool) {
	iri, ok := strandClass[strand]
	return iri, ok
}
