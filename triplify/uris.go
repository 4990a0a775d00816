package triplify

import (
	"fmt"
	"strings"
)

// URISpace deterministically derives every resource URI of a mapping run
// from the base URI and species name. Spaces in the species name become
// underscores; feature IDs are assumed URI-safe and are never encoded.
type URISpace struct {
	Base    string
	Species string
}

// Genome returns the genome resource URI:
// base/genome/species-with-underscores.
func (u URISpace) Genome() string {
	return join(u.Base, "genome", strings.ReplaceAll(u.Species, " ", "_"))
}

// Chromosome returns the chromosome resource URI for a sequence-region ID.
func (u URISpace) Chromosome(seqid string) string {
	return join(u.Genome(), "chromosome", seqid)
}

// Feature returns the feature resource URI for an (amended) feature type
// and canonical feature ID. Features sharing a (type, ID) pair map to the
// identical URI, which is what makes parent/child references and repeated
// emissions converge onto one subject.
func (u URISpace) Feature(featureType, canonicalID string) string {
	return join(u.Genome(), featureType, canonicalID)
}

// Region returns the region resource URI on a chromosome.
func (u URISpace) Region(seqid string, start, end int) string {
	return fmt.Sprintf("%s#%d-%d", u.Chromosome(seqid), start, end)
}

// Position returns a position resource URI on a chromosome.
func (u URISpace) Position(seqid string, pos int) string {
	return fmt.Sprintf("%s#%d", u.Chromosome(seqid), pos)
}

// join concatenates path segments onto a base URI without doubling
// slashes.
func join(base string, segments ...string) string {
	s := strings.TrimRight(base, "/")
	for _, seg := range segments {
		s += "/" + strings.Trim(seg, "/")
	}
	return s
}
