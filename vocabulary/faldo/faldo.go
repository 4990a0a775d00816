// Package faldo provides IRI constants from the Feature Annotation Location
// Description Ontology, which models genomic coordinates and strandedness
// as RDF resources.
package faldo

// Namespace is the FALDO IRI prefix.
const Namespace = "http://biohackathon.org/resource/faldo#"

// Position and region classes.
const (
	Region                = Namespace + "Region"
	ExactPosition         = Namespace + "ExactPosition"
	ForwardStrandPosition = Namespace + "ForwardStrandPosition"
	ReverseStrandPosition = Namespace + "ReverseStrandPosition"
	StrandedPosition      = Namespace + "StrandedPosition"
	Position              = Namespace + "Position"
)

// Location predicates.
const (
	Location      = Namespace + "location"
	Begin         = Namespace + "begin"
	End           = Namespace + "end"
	PositionValue = Namespace + "position"
	Reference     = Namespace + "reference"
)
