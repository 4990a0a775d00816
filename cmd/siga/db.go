package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/NLeSC/siga/feature"
)

func dbCmd() *cobra.Command {
	var (
		dbFile         string
		dbExt          string
		checkIntegrity bool
		uniqueIDs      bool
		verbose        bool
	)

	cmd := &cobra.Command{
		Use:   "db [flags] GFF_FILE...",
		Short: "Populate feature store(s) from GFF file(s)",
		Long: `Populate SQLite feature stores from GFF source files.

By default each GFF file becomes its own store, named after the source
file with the store extension. With --db-file, all sources are merged
into a single store: the store is created from the first source and
updated with the rest (or with all of them, if it already exists).

Source arguments may be glob patterns (including **).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogging(verbose)

			sources, err := expandSources(args)
			if err != nil {
				return err
			}
			opts := feature.Options{
				Merge:          feature.RejectOnCollision,
				CheckIntegrity: checkIntegrity,
			}
			if uniqueIDs {
				opts.Merge = feature.RenameOnCollision
			}

			if dbFile != "" {
				return buildSingleStore(dbFile, sources, opts)
			}
			return buildStorePerSource(sources, dbExt, opts)
		},
	}

	cmd.Flags().StringVarP(&dbFile, "db-file", "d", "", "Populate a single store from all GFF files")
	cmd.Flags().StringVarP(&dbExt, "db-file-ext", "e", ".db", "Store file extension")
	cmd.Flags().BoolVarP(&checkIntegrity, "check-integrity", "r", false, "Check the referential integrity of the store(s)")
	cmd.Flags().BoolVarP(&uniqueIDs, "unique-ids", "u", false, "Generate unique feature IDs if duplicates are found")
	cmd.Flags().BoolVarP(&verbose, "verbose", "V", false, "Show verbose output")

	return cmd
}

// expandSources resolves GFF source arguments, which may be doublestar
// glob patterns, into a list of existing files.
func expandSources(args []string) ([]string, error) {
	var sources []string
	for _, arg := range args {
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid source pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			if _, statErr := os.Stat(arg); statErr != nil {
				return nil, fmt.Errorf("GFF file %q not found", arg)
			}
			matches = []string{arg}
		}
		sort.Strings(matches)
		sources = append(sources, matches...)
	}
	return sources, nil
}

// buildSingleStore merges all sources into one store, creating it from
// the first source if it does not exist yet.
func buildSingleStore(dbFile string, sources []string, opts feature.Options) error {
	for _, src := range sources {
		if _, err := os.Stat(dbFile); err == nil {
			store, err := feature.Open(dbFile)
			if err != nil {
				return err
			}
			err = store.Update(src, opts)
			store.Close()
			if err != nil {
				return err
			}
			slog.Info("updated store", "store", dbFile, "source", src)
			continue
		}
		store, err := feature.Create(src, dbFile, opts)
		if err != nil {
			return err
		}
		store.Close()
		slog.Info("created store", "store", dbFile, "source", src)
	}
	return nil
}

// buildStorePerSource creates one store per GFF source, named after the
// source file. An existing target store is an error.
func buildStorePerSource(sources []string, dbExt string, opts feature.Options) error {
	ext := normalizeExt(dbExt)
	for _, src := range sources {
		target := strings.TrimSuffix(src, filepath.Ext(src)) + ext
		store, err := feature.Create(src, target, opts)
		if err != nil {
			return err
		}
		n, err := store.Count()
		store.Close()
		if err != nil {
			return err
		}
		slog.Info("created store", "store", target, "source", src, "features", n)
	}
	return nil
}

// normalizeExt prefixes a file extension with a dot if not done already.
func normalizeExt(ext string) string {
	if !strings.HasPrefix(ext, ".") {
		return "." + ext
	}
	return ext
}
