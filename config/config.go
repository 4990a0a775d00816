// Package config provides the dataset configuration for an RDF mapping
// run: the URI space the graph is built in and the provenance of the
// annotated genome. Configuration is validated up front, before any store
// is opened.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Configuration errors.
var (
	// ErrInvalidURI is returned for a URI with an unsupported scheme or
	// an empty host.
	ErrInvalidURI = errors.New("invalid URI")

	// ErrInvalidTaxonID is returned for a non-positive NCBI Taxonomy ID.
	ErrInvalidTaxonID = errors.New("invalid NCBI Taxonomy ID")
)

// URIs configures the URI space and source of the generated graph.
type URIs struct {
	// RDFBase is the base URI of the generated graph
	// (e.g. https://solgenomics.net/).
	RDFBase string `yaml:"rdf_base"`

	// RDFCreator identifies the person, organization or service making
	// the resource available (e.g. an ORCID URI).
	RDFCreator string `yaml:"rdf_creator"`

	// GFFSource is the source or download URL of the GFF file(s).
	GFFSource string `yaml:"gff_source"`
}

// Dataset configures the annotated genome.
type Dataset struct {
	// SpeciesName is the genome or species name
	// (e.g. "Solanum lycopersicum").
	SpeciesName string `yaml:"species_name"`

	// NCBITaxonID is the numeric NCBI Taxonomy ID of the species
	// (e.g. 4081).
	NCBITaxonID int `yaml:"ncbi_taxon_id"`
}

// Config is the complete configuration of one mapping run. It is built
// fresh per invocation and never persisted by the engine.
type Config struct {
	URIs    URIs    `yaml:"URIs"`
	Dataset Dataset `yaml:"Dataset"`
}

// Validate checks the configuration. All URIs must use an http, https or
// ftp scheme and name a host; the taxonomy ID must be positive.
func (c *Config) Validate() error {
	for _, uri := range []string{c.URIs.RDFBase, c.URIs.RDFCreator, c.URIs.GFFSource} {
		if err := ValidateURI(uri); err != nil {
			return err
		}
	}
	if strings.TrimSpace(c.Dataset.SpeciesName) == "" {
		return errors.New("species name is required")
	}
	if c.Dataset.NCBITaxonID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTaxonID, c.Dataset.NCBITaxonID)
	}
	return nil
}

// ValidateURI checks that uri has a supported scheme and a non-empty host.
func ValidateURI(uri string) error {
	u, err := url.Parse(uri)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidURI, uri, err)
	}
	switch u.Scheme {
	case "http", "https", "ftp":
	default:
		return fmt.Errorf("%w: unsupported scheme in %q", ErrInvalidURI, uri)
	}
	if strings.TrimSpace(u.Host) == "" {
		return fmt.Errorf("%w: no host specified in %q", ErrInvalidURI, uri)
	}
	return nil
}
