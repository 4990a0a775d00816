// Package main provides the siga binary entry point. Siga generates
// Semantically Interoperable Genome Annotations: it builds feature stores
// from GFF files and maps them to RDF graphs conformant to the Sequence
// Ontology and FALDO.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

const (
	Version = "0.4.0"
	appName = "siga"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Generate semantically interoperable genome annotations",
		Long: `Siga converts genome annotations in GFF (version 2 or 3) into RDF
graphs conformant to the Sequence Ontology and FALDO.

The conversion runs in two stages:
- db: populate one or more feature stores (SQLite) from GFF files
- rdf: map feature stores to RDF graphs and serialize them`,
		SilenceUsage: true,
	}

	cmd.AddCommand(dbCmd())
	cmd.AddCommand(rdfCmd())

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	})

	return cmd
}

// configureLogging installs the default slog logger on stderr. Verbose
// runs log at debug level.
func configureLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
