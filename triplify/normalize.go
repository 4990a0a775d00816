package triplify

import "regexp"

// idPrefix matches the feature-type prefixes that annotation providers
// prepend to GFF feature IDs (e.g. "gene:Solyc00g005000.2").
var idPrefix = regexp.MustCompile(`^(gene:|mRNA:|CDS:|exon:|intron:|\w+UTR:)`)

// NormalizeID strips a leading feature-type prefix from a raw feature ID,
// yielding the canonical ID used to build resource URIs. Input without a
// known prefix passes through unchanged.
//
// Normalization is lossy for UTRs: five_prime_UTR and three_prime_UTR
// features sharing a numeric suffix collapse to the same canonical ID.
// Downstream consumers depend on this convention, so it is kept as is.
func NormalizeID(raw string) string {
	return idPrefix.ReplaceAllString(raw, "")
}

// typeAmendments corrects loosely-used GFF feature-type tokens to the
// precise term according to the DDBJ/ENA/GenBank Feature Table Definition.
// The mRNA key is often used in place of prim_transcript: an mRNA must not
// contain introns while a primary transcript may. match and match_part are
// sometimes misused for polymorphic sites instead of variation.
var typeAmendments = map[string]string{
	"mRNA":       "prim_transcript",
	"match":      "variation",
	"match_part": "variation",
}

// AmendType corrects a raw GFF feature type before ontology lookup. Types
// absent from the correction table pass through unchanged.
func AmendType(raw string) string {
	if amended, ok := typeAmendments[raw]; ok {
		return amended
	}
	return raw
}
