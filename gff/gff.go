// Package gff reads genomic feature records from GFF version 3 files.
//
// Only the feature lines and the directives the feature store needs are
// handled: `##gff-version`, `##sequence-region` and the `##FASTA` section
// terminator. Comment lines are skipped. Attribute values keep their
// percent-escapes; decoding is deferred to consumers that render values
// for humans.
package gff

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Column indices of a GFF feature line.
const (
	fieldSeqid = iota
	fieldSource
	fieldType
	fieldStart
	fieldEnd
	fieldScore
	fieldStrand
	fieldPhase
	fieldAttributes

	numFields
)

// PhaseUndefined marks a feature whose phase column is ".".
const PhaseUndefined = -1

// Feature is one annotated genomic element.
type Feature struct {
	// Seqid is the ID of the landmark (conventionally a chromosome or
	// scaffold) establishing the coordinate system.
	Seqid string

	// Source is a free-text qualifier for the producing procedure.
	Source string

	// Type is the feature type, a Sequence Ontology candidate term.
	Type string

	// Start and End are 1-based inclusive coordinates, Start <= End.
	Start int
	End   int

	// Score is the raw score column ("." when absent).
	Score string

	// Strand is one of "+", "-", "?" or ".". Parsing accepts any single
	// token; validation against the recognized set happens at mapping
	// time, where a bad strand is a hard error.
	Strand string

	// Phase is 0, 1 or 2 for CDS features, PhaseUndefined otherwise.
	Phase int

	// Attributes maps attribute tags to their (possibly multiple) values.
	Attributes map[string][]string
}

// ID returns the feature's ID attribute, or "" if it has none.
func (f *Feature) ID() string {
	if vs, ok := f.Attributes["ID"]; ok && len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Parents returns the values of the feature's Parent attribute.
func (f *Feature) Parents() []string {
	return f.Attributes["Parent"]
}

// SequenceRegion is a `##sequence-region` directive.
type SequenceRegion struct {
	Seqid string
	Start int
	End   int
}

// Document is the parsed content of one GFF source.
type Document struct {
	Version         string
	SequenceRegions map[string]SequenceRegion
	Features        []Feature
}

// ReadFile parses the GFF file at path.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Read parses GFF3 content from r.
func Read(r io.Reader) (*Document, error) {
	doc := &Document{
		SequenceRegions: make(map[string]SequenceRegion),
	}

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineno := 0
	for s.Scan() {
		lineno++
		line := s.Text()
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "##FASTA"):
			// Embedded sequence section; no feature lines may follow.
			return doc, s.Err()
		case strings.HasPrefix(line, "##"):
			if err := doc.directive(strings.TrimPrefix(line, "##")); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno, err)
			}
		case strings.HasPrefix(line, "#"):
			continue
		default:
			ft, err := parseLine(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno, err)
			}
			doc.Features = append(doc.Features, ft)
		}
	}
	return doc, s.Err()
}

// directive handles the `##` pragma lines the store cares about; unknown
// pragmas are ignored.
func (d *Document) directive(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "gff-version":
		if len(fields) != 2 {
			return fmt.Errorf("malformed gff-version directive %q", line)
		}
		d.Version = fields[1]
	case "sequence-region":
		if len(fields) < 4 {
			return fmt.Errorf("malformed sequence-region directive %q", line)
		}
		start, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("sequence-region start: %w", err)
		}
		end, err := strconv.Atoi(fields[3])
		if err != nil {
			return fmt.Errorf("sequence-region end: %w", err)
		}
		d.SequenceRegions[fields[1]] = SequenceRegion{Seqid: fields[1], Start: start, End: end}
	}
	return nil
}

// parseLine parses one tab-separated feature line.
func parseLine(line string) (Feature, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != numFields {
		return Feature{}, fmt.Errorf("expected %d fields, got %d", numFields, len(fields))
	}

	ft := Feature{
		Seqid:  fields[fieldSeqid],
		Source: fields[fieldSource],
		Type:   fields[fieldType],
		Score:  fields[fieldScore],
		Strand: fields[fieldStrand],
	}
	if ft.Seqid == "" {
		return Feature{}, fmt.Errorf("empty seqid")
	}

	var err error
	ft.Start, err = strconv.Atoi(fields[fieldStart])
	if err != nil {
		return Feature{}, fmt.Errorf("start: %w", err)
	}
	ft.End, err = strconv.Atoi(fields[fieldEnd])
	if err != nil {
		return Feature{}, fmt.Errorf("end: %w", err)
	}
	if ft.Start > ft.End {
		return Feature{}, fmt.Errorf("start %d greater than end %d", ft.Start, ft.End)
	}

	ft.Phase, err = parsePhase(fields[fieldPhase])
	if err != nil {
		return Feature{}, err
	}

	ft.Attributes, err = parseAttributes(fields[fieldAttributes])
	if err != nil {
		return Feature{}, err
	}

	return ft, nil
}

// parsePhase parses the phase column: "." or 0/1/2.
func parsePhase(s string) (int, error) {
	if s == "." {
		return PhaseUndefined, nil
	}
	p, err := strconv.Atoi(s)
	if err != nil || p < 0 || p > 2 {
		return 0, fmt.Errorf("invalid phase %q", s)
	}
	return p, nil
}

// parseAttributes parses the ninth column: semicolon-separated tag=value
// pairs, multiple values comma-separated. An attributes column of "." is
// empty.
func parseAttributes(s string) (map[string][]string, error) {
	attrs := make(map[string][]string)
	if s == "." || s == "" {
		return attrs, nil
	}
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		tag, value, found := strings.Cut(pair, "=")
		if !found || tag == "" {
			return nil, fmt.Errorf("malformed attribute %q", pair)
		}
		for _, v := range strings.Split(value, ",") {
			attrs[tag] = append(attrs[tag], v)
		}
	}
	return attrs, nil
}
