package gff_test

import (
	"strings"
	"testing"

	"github.com/NLeSC/siga/gff"
)

const sample = "##gff-version 3\n" +
	"##sequence-region chr1 1 100000\n" +
	"# free-text comment\n" +
	"chr1\tSGN\tgene\t100\t200\t.\t+\t.\tID=gene:ABC.1;Name=ABC;Alias=abc-1,abc-old\n" +
	"chr1\tSGN\tCDS\t120\t180\t0.9\t+\t2\tID=CDS:ABC.1.1;Parent=gene:ABC.1\n"

func TestRead(t *testing.T) {
	doc, err := gff.Read(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if doc.Version != "3" {
		t.Errorf("Version = %q, want %q", doc.Version, "3")
	}
	region, ok := doc.SequenceRegions["chr1"]
	if !ok {
		t.Fatal("missing sequence-region chr1")
	}
	if region.Start != 1 || region.End != 100000 {
		t.Errorf("sequence-region = %d..%d, want 1..100000", region.Start, region.End)
	}

	if len(doc.Features) != 2 {
		t.Fatalf("read %d features, want 2", len(doc.Features))
	}

	gene := doc.Features[0]
	if gene.Type != "gene" || gene.Seqid != "chr1" || gene.Start != 100 || gene.End != 200 {
		t.Errorf("unexpected gene feature: %+v", gene)
	}
	if gene.ID() != "gene:ABC.1" {
		t.Errorf("gene ID = %q, want %q", gene.ID(), "gene:ABC.1")
	}
	if gene.Phase != gff.PhaseUndefined {
		t.Errorf("gene phase = %d, want undefined", gene.Phase)
	}
	if got := gene.Attributes["Alias"]; len(got) != 2 || got[0] != "abc-1" || got[1] != "abc-old" {
		t.Errorf("Alias = %v, want [abc-1 abc-old]", got)
	}

	cds := doc.Features[1]
	if cds.Phase != 2 {
		t.Errorf("CDS phase = %d, want 2", cds.Phase)
	}
	if parents := cds.Parents(); len(parents) != 1 || parents[0] != "gene:ABC.1" {
		t.Errorf("CDS parents = %v", parents)
	}
	if cds.Score != "0.9" {
		t.Errorf("CDS score = %q, want %q", cds.Score, "0.9")
	}
}

func TestReadStopsAtFASTA(t *testing.T) {
	content := sample + "##FASTA\n>chr1\nACGT\n"
	doc, err := gff.Read(strings.NewReader(content))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(doc.Features) != 2 {
		t.Errorf("read %d features, want 2 (FASTA section must terminate parsing)", len(doc.Features))
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few fields", "chr1\tSGN\tgene\t100\t200\t.\t+\n"},
		{"non-numeric start", "chr1\tSGN\tgene\tx\t200\t.\t+\t.\tID=g1\n"},
		{"start after end", "chr1\tSGN\tgene\t300\t200\t.\t+\t.\tID=g1\n"},
		{"bad phase", "chr1\tSGN\tCDS\t100\t200\t.\t+\t5\tID=c1\n"},
		{"malformed attribute", "chr1\tSGN\tgene\t100\t200\t.\t+\t.\tnoequals\n"},
		{"empty seqid", "\tSGN\tgene\t100\t200\t.\t+\t.\tID=g1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := gff.Read(strings.NewReader(tt.line)); err == nil {
				t.Errorf("Read should fail for %q", tt.line)
			}
		})
	}
}

// An unrecognized strand token is not a parse error; strand validation is
// a mapping-time concern where it becomes a hard error.
func TestReadKeepsUnrecognizedStrand(t *testing.T) {
	doc, err := gff.Read(strings.NewReader("chr1\tSGN\tgene\t100\t200\t.\t*\t.\tID=g1\n"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if doc.Features[0].Strand != "*" {
		t.Errorf("Strand = %q, want %q", doc.Features[0].Strand, "*")
	}
}

func TestReadEmptyAttributes(t *testing.T) {
	doc, err := gff.Read(strings.NewReader("chr1\tSGN\tgene\t100\t200\t.\t+\t.\t.\n"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(doc.Features[0].Attributes) != 0 {
		t.Errorf("Attributes = %v, want empty", doc.Features[0].Attributes)
	}
	if doc.Features[0].ID() != "" {
		t.Errorf("ID = %q, want empty", doc.Features[0].ID())
	}
}
