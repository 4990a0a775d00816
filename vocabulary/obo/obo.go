// Package obo provides IRI constants from the OBO Library namespace used by
// the direct mapping: Sequence Ontology (SO) classes for genomic feature
// types, SO relationship predicates, the Relations Ontology "in taxon"
// predicate, and NCBI Taxonomy terms.
package obo

import "strconv"

// Namespace is the OBO Library IRI prefix.
const Namespace = "http://purl.obolibrary.org/obo/"

// Sequence Ontology classes for the supported feature types.
const (
	Genome         = Namespace + "SO_0001026"
	Chromosome     = Namespace + "SO_0000340"
	Gene           = Namespace + "SO_0000704"
	PrimTranscript = Namespace + "SO_0000120"
	MRNA           = Namespace + "SO_0000234"
	CDS            = Namespace + "SO_0000316"
	Exon           = Namespace + "SO_0000147"
	Intron         = Namespace + "SO_0000188"
	FivePrimeUTR   = Namespace + "SO_0000204"
	ThreePrimeUTR  = Namespace + "SO_0000205"
	PolyASite      = Namespace + "SO_0000553"
	PolyASequence  = Namespace + "SO_0000610"
	Variation      = Namespace + "SO_0001645"
)

// Sequence Ontology relationship predicates.
//
// These terms do not resolve via purl.obolibrary.org; they are kept for
// compatibility with existing consumers of the graphs.
const (
	PartOf        = Namespace + "SO_part_of"
	HasPart       = Namespace + "SO_has_part"
	TranscribedTo = Namespace + "SO_transcribed_to"
	GenomeOf      = Namespace + "SO_genome_of"
)

// InTaxon is the Relations Ontology "in taxon" predicate (RO_0002162),
// asserted alongside GenomeOf.
const InTaxon = Namespace + "RO_0002162"

// Taxon returns the NCBI Taxonomy IRI for a numeric taxon ID.
func Taxon(id int) string {
	return Namespace + "NCBITaxon_" + strconv.Itoa(id)
}
