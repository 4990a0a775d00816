package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NLeSC/siga/config"
	"github.com/NLeSC/siga/feature"
	"github.com/NLeSC/siga/graph"
	"github.com/NLeSC/siga/triplify"
)

func rdfCmd() *cobra.Command {
	var (
		format     string
		cfgFile    string
		baseURI    string
		creatorURI string
		sourceURL  string
		species    string
		taxonID    string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "rdf [flags] DB_FILE...",
		Short: "Map feature store(s) to RDF graph(s)",
		Long: `Map one or more feature stores to RDF graphs using the direct
mapping approach and serialize each graph next to its store, with the
extension of the chosen format.

Dataset parameters are given either as flags or through a YAML config
file with two sections, URIs and Dataset.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogging(verbose)

			f, err := graph.ParseFormat(format)
			if err != nil {
				return err
			}

			cfg, err := resolveConfig(cfgFile, baseURI, creatorURI, sourceURL, species, taxonID)
			if err != nil {
				return err
			}

			for _, dbPath := range args {
				if err := mapStore(dbPath, f, cfg); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", "turtle", "RDF serialization format: turtle (.ttl), xml (.rdf), ntriples (.nt) or n3 (.n3)")
	cmd.Flags().StringVarP(&cfgFile, "config", "C", "", "Config file path")
	cmd.Flags().StringVarP(&baseURI, "base-uri", "b", "", "Base URI of the generated graph (e.g. https://solgenomics.net/)")
	cmd.Flags().StringVarP(&creatorURI, "creator-uri", "c", "", "URI of the person, organization or service making the resource available")
	cmd.Flags().StringVarP(&sourceURL, "source-url", "s", "", "Source or download URL of the GFF file(s)")
	cmd.Flags().StringVarP(&species, "species-name", "n", "", "Genome or species name (e.g. \"Solanum lycopersicum\")")
	cmd.Flags().StringVarP(&taxonID, "taxon-id", "t", "", "NCBI Taxonomy ID of the species (e.g. 4081)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "V", false, "Show verbose output")

	return cmd
}

// resolveConfig builds the validated run configuration from either the
// config file or the dataset flags. Any configuration fault is fatal
// before a single store is opened.
func resolveConfig(cfgFile, baseURI, creatorURI, sourceURL, species, taxonID string) (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFile(cfgFile)
	}

	tid, err := strconv.Atoi(strings.TrimSpace(taxonID))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidTaxonID, taxonID)
	}
	cfg := &config.Config{
		URIs: config.URIs{
			RDFBase:    baseURI,
			RDFCreator: creatorURI,
			GFFSource:  sourceURL,
		},
		Dataset: config.Dataset{
			SpeciesName: species,
			NCBITaxonID: tid,
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mapStore runs the direct mapping engine over one store and writes the
// serialized graph next to the store file. The graph is built completely
// in memory first, so an aborted mapping leaves no partial output file.
func mapStore(dbPath string, f graph.Format, cfg *config.Config) error {
	store, err := feature.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	g := graph.New()
	engine := triplify.New(cfg, slog.Default())
	if err := engine.Run(store, g); err != nil {
		return fmt.Errorf("map store %s: %w", dbPath, err)
	}

	out, err := g.Serialize(f)
	if err != nil {
		return err
	}
	info, _ := graph.GetFormatInfo(f)
	outPath := strings.TrimSuffix(dbPath, filepath.Ext(dbPath)) + info.Extension
	if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write graph %s: %w", outPath, err)
	}

	slog.Info("wrote graph", "store", dbPath, "output", outPath, "triples", g.Len())
	return nil
}
