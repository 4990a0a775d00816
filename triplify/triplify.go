// Package triplify implements the direct-mapping engine: the
// deterministic, idempotent transformation of a feature store into an RDF
// graph conformant to the Sequence Ontology and FALDO.
//
// The mapping visits features in store order and emits, per feature, the
// subject triples (type, label, identifier), an optional description, the
// FALDO location subgraph, the enclosing chromosome resource, and
// relationship triples to the feature's direct children. Genome and taxon
// provenance triples are emitted once per run. Repeated runs over the same
// store produce identical graphs: the sink has set semantics and the
// serializers order triples canonically.
package triplify

import (
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/NLeSC/siga/config"
	"github.com/NLeSC/siga/feature"
	"github.com/NLeSC/siga/graph"
	"github.com/NLeSC/siga/vocabulary/dcmi"
	"github.com/NLeSC/siga/vocabulary/faldo"
	"github.com/NLeSC/siga/vocabulary/obo"
)

// StrandError reports a feature whose strand column is outside the
// recognized set. It is fatal for the whole mapping pass: a bad strand
// marks a malformed record, unlike an unmapped feature type.
type StrandError struct {
	FeatureID string
	Strand    string
}

func (e *StrandError) Error() string {
	return fmt.Sprintf("incorrect strand information %q for feature ID %q", e.Strand, e.FeatureID)
}

// descriptiveAttrs are the attribute keys collected into the rdfs:comment
// of a feature. Lookups try the exact key, then its lower-cased form.
var descriptiveAttrs = []string{
	"Name",
	"Note",
	"Alias",
	"Ontology_term",
	"Interpro2go_term",
	"Sifter_term",
}

// Engine maps one feature store at a time into a triple sink.
type Engine struct {
	cfg    *config.Config
	uris   URISpace
	logger *slog.Logger

	// Now supplies the provenance timestamp; overridable for
	// reproducible output in tests.
	Now func() time.Time
}

// New creates an engine for the given run configuration. The configuration
// must already be validated.
func New(cfg *config.Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		cfg: cfg,
		uris: URISpace{
			Base:    cfg.URIs.RDFBase,
			Species: cfg.Dataset.SpeciesName,
		},
		logger: logger,
		Now:    time.Now,
	}
}

// Run maps every feature in the store into g. A feature with an invalid
// strand aborts the run; a feature whose type has no ontology class is
// skipped. Any other per-feature fault is logged and skipped, so one
// anomalous record does not void the rest of the graph.
func (e *Engine) Run(store *feature.Store, g *graph.Graph) error {
	g.Bind("obo", obo.Namespace)
	g.Bind("faldo", faldo.Namespace)
	g.Bind("dcterms", dcmi.TermsNamespace)
	g.Bind("dcmitype", dcmi.TypeNamespace)

	e.addProvenance(g)

	for ft, err := range store.AllFeatures() {
		if err != nil {
			return err
		}
		if err := e.mapFeature(store, g, &ft); err != nil {
			return err
		}
	}
	return nil
}

// addProvenance emits the genome and taxon triples, once per run.
func (e *Engine) addProvenance(g *graph.Graph) {
	genome := graph.IRI(e.uris.Genome())
	taxon := graph.IRI(obo.Taxon(e.cfg.Dataset.NCBITaxonID))
	label := fmt.Sprintf("genome of %s", e.cfg.Dataset.SpeciesName)

	g.Add(genome, graph.IRI(graph.RDFType), graph.IRI(obo.Genome))
	g.Add(genome, graph.IRI(graph.RDFType), graph.IRI(dcmi.Dataset))
	g.Add(genome, graph.IRI(graph.RDFSLabel), graph.TypedLiteral(label, graph.XSDString))
	g.Add(genome, graph.IRI(dcmi.Title), graph.TypedLiteral(label, graph.XSDString))
	g.Add(genome, graph.IRI(dcmi.Created), graph.TypedLiteral(e.Now().Format("2006-01-02"), graph.XSDDate))
	g.Add(genome, graph.IRI(dcmi.Creator), graph.IRI(e.cfg.URIs.RDFCreator))
	g.Add(genome, graph.IRI(dcmi.Source), graph.IRI(e.cfg.URIs.GFFSource))
	// SO_genome_of has no domain/range defined; assert "in taxon" as well.
	g.Add(genome, graph.IRI(obo.GenomeOf), taxon)
	g.Add(genome, graph.IRI(obo.InTaxon), taxon)

	taxonID := e.cfg.Dataset.NCBITaxonID
	g.Add(taxon, graph.IRI(graph.RDFSLabel),
		graph.TypedLiteral(fmt.Sprintf("NCBI Taxonomy ID: %d", taxonID), graph.XSDString))
	g.Add(taxon, graph.IRI(dcmi.Identifier),
		graph.TypedLiteral(strconv.Itoa(taxonID), graph.XSDPositiveInteger))
}

// mapFeature emits all triples for one feature. A nil return with no
// triples added means the feature was skipped.
func (e *Engine) mapFeature(store *feature.Store, g *graph.Graph, ft *feature.Feature) error {
	strandIRI, ok := StrandClassOf(ft.Strand)
	if !ok {
		return &StrandError{FeatureID: ft.ID, Strand: ft.Strand}
	}

	ftype := AmendType(ft.Type)
	classIRI, ok := ClassOf(ftype)
	if !ok {
		e.logger.Debug("skipping feature of unmapped type",
			slog.String("id", ft.ID), slog.String("type", ft.Type))
		return nil
	}

	id := NormalizeID(ft.ID)
	subject := graph.IRI(e.uris.Feature(ftype, id))
	chromosome := graph.IRI(e.uris.Chromosome(ft.Seqid))

	// The seqid field is assumed to refer to a chromosome. Re-emitting
	// the same chromosome triples for every feature on it is a no-op in
	// the sink.
	g.Add(chromosome, graph.IRI(graph.RDFType), graph.IRI(obo.Chromosome))
	g.Add(chromosome, graph.IRI(graph.RDFSLabel),
		graph.TypedLiteral(fmt.Sprintf("chromosome %s", ft.Seqid), graph.XSDString))
	g.Add(chromosome, graph.IRI(obo.PartOf), graph.IRI(e.uris.Genome()))

	g.Add(subject, graph.IRI(graph.RDFType), graph.IRI(classIRI))
	g.Add(subject, graph.IRI(graph.RDFSLabel),
		graph.TypedLiteral(fmt.Sprintf("%s %s", ftype, id), graph.XSDString))
	g.Add(subject, graph.IRI(dcmi.Identifier), graph.TypedLiteral(id, graph.XSDString))

	if des := e.description(ft, id); des != "" {
		g.Add(subject, graph.IRI(graph.RDFSComment), graph.TypedLiteral(des, graph.XSDString))
	}

	e.addLocation(g, ft, subject, chromosome, strandIRI)

	// Phase is carried in the store but has no corresponding ontology
	// term; it is deliberately not mapped.

	children, err := store.Children(ft.ID)
	if err != nil {
		e.logger.Warn("skipping child relations",
			slog.String("id", ft.ID), slog.String("error", err.Error()))
		return nil
	}
	for i := range children {
		child := &children[i]
		childType := AmendType(child.Type)
		childIRI := graph.IRI(e.uris.Feature(childType, NormalizeID(child.ID)))
		// has part is the inverse of the ontology's part_of; relations are
		// asserted parent-down.
		g.Add(subject, graph.IRI(obo.HasPart), childIRI)
		if ftype == "gene" && childType == "prim_transcript" {
			g.Add(subject, graph.IRI(obo.TranscribedTo), childIRI)
		}
	}
	return nil
}

// addLocation emits the FALDO region and begin/end position triples.
func (e *Engine) addLocation(g *graph.Graph, ft *feature.Feature, subject, chromosome graph.Term, strandIRI string) {
	region := graph.IRI(e.uris.Region(ft.Seqid, ft.Start, ft.End))

	g.Add(subject, graph.IRI(faldo.Location), region)
	g.Add(region, graph.IRI(graph.RDFType), graph.IRI(faldo.Region))
	g.Add(region, graph.IRI(graph.RDFSLabel),
		graph.Literal(fmt.Sprintf("region %d-%d on chromosome %s", ft.Start, ft.End, ft.Seqid)))

	for _, p := range []struct {
		predicate string
		pos       int
	}{
		{faldo.Begin, ft.Start},
		{faldo.End, ft.End},
	} {
		position := graph.IRI(e.uris.Position(ft.Seqid, p.pos))
		g.Add(region, graph.IRI(p.predicate), position)
		g.Add(position, graph.IRI(graph.RDFType), graph.IRI(faldo.ExactPosition))
		g.Add(position, graph.IRI(graph.RDFType), graph.IRI(strandIRI))
		g.Add(position, graph.IRI(graph.RDFSLabel),
			graph.Literal(fmt.Sprintf("position at %d on chromosome %s", p.pos, ft.Seqid)))
		g.Add(position, graph.IRI(faldo.PositionValue),
			graph.TypedLiteral(strconv.Itoa(p.pos), graph.XSDPositiveInteger))
		g.Add(position, graph.IRI(faldo.Reference), chromosome)
	}
}

// description collects the configured descriptive attributes into a single
// percent-decoded, de-duplicated, sorted string. An empty result, or one
// equal to the canonical ID, yields no comment.
func (e *Engine) description(ft *feature.Feature, canonicalID string) string {
	seen := make(map[string]bool)
	var items []string
	for _, key := range descriptiveAttrs {
		vs, ok := ft.Attr(key)
		if !ok || len(vs) == 0 {
			continue
		}
		item := fmt.Sprintf("%s: %s", key, strings.Join(vs, ", "))
		if !seen[item] {
			seen[item] = true
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return ""
	}
	sort.Strings(items)
	des := strings.Join(items, "; ")
	if decoded, err := url.PathUnescape(des); err == nil {
		des = decoded
	}
	if des == canonicalID {
		return ""
	}
	return des
}
