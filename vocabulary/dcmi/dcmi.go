// Package dcmi provides the Dublin Core terms and DCMI type IRIs attached
// to the genome resource as dataset provenance.
package dcmi

// TermsNamespace is the Dublin Core terms IRI prefix.
const TermsNamespace = "http://purl.org/dc/terms/"

// TypeNamespace is the DCMI type vocabulary IRI prefix.
const TypeNamespace = "http://purl.org/dc/dcmitype/"

// Dublin Core terms predicates.
const (
	Created    = TermsNamespace + "created"
	Creator    = TermsNamespace + "creator"
	Title      = TermsNamespace + "title"
	Source     = TermsNamespace + "source"
	Identifier = TermsNamespace + "identifier"
)

// Dataset is the DCMI type for a dataset resource.
const Dataset = TypeNamespace + "Dataset"
