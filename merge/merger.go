// Package merge implements the batch ingestion stage: it parses the
// per-framework turtle document trees and merges them into one aggregate
// graph with per-entity framework provenance.
package merge

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/knakk/rdf"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/dechivo/skillgraph/graph"
)

// OntologyVersion is written to the unified ontology header.
const OntologyVersion = "1.0"

// Merger merges framework documents into a unified knowledge graph.
type Merger struct {
	dataDir     string
	parallelism int
}

// Option configures a Merger.
type Option func(*Merger)

// WithParallelism bounds the number of concurrent document parsers.
func WithParallelism(n int) Option {
	return func(m *Merger) {
		if n > 0 {
			m.parallelism = n
		}
	}
}

// NewMerger creates a merger reading framework directories under dataDir.
func NewMerger(dataDir string, opts ...Option) *Merger {
	m := &Merger{
		dataDir:     dataDir,
		parallelism: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type fileResult struct {
	path    string
	triples []rdf.Triple
	err     error
}

// Run executes the full merge: ontology header, then every framework in
// order. Individual document failures are counted, never fatal; Run only
// errors when the data directory itself is unusable or the context is done.
func (m *Merger) Run(ctx context.Context) (*graph.Graph, *Report, error) {
	if _, err := os.Stat(m.dataDir); err != nil {
		return nil, nil, errors.Wrapf(err, "data directory %s", m.dataDir)
	}

	g := graph.New()
	report := newReport()

	m.addOntologyHeader(g)

	for _, fw := range graph.Frameworks {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		m.loadFramework(ctx, g, fw, report)
	}

	report.TotalTriples = g.Len()
	report.EntitiesByType = g.TypeCounts()

	slog.Info("merge complete",
		slog.Int("files_loaded", report.FilesLoaded),
		slog.Int("files_failed", report.FilesFailed),
		slog.Int("total_triples", report.TotalTriples))

	return g, report, nil
}

// addOntologyHeader writes the unified ontology metadata, core classes and
// core properties into the graph.
func (m *Merger) addOntologyHeader(g *graph.Graph) {
	ontology := graph.MustIRI("http://dechivo.com/ontology")
	g.Add(graph.Triple(ontology, graph.RDFType, graph.OWLOntology))
	g.Add(graph.Triple(ontology, graph.RDFSLabel, graph.MustLiteral("Dechivo Unified Ontology")))
	g.Add(graph.Triple(ontology, graph.DCTermsDescription,
		graph.MustLiteral("Unified knowledge graph integrating occupation and skills data from ESCO, O*NET, Singapore SkillsFuture, and Canada OASIS")))
	g.Add(graph.Triple(ontology, graph.DCTermsCreated,
		rdf.NewTypedLiteral(time.Now().Format("2006-01-02"), graph.XSDDate)))
	g.Add(graph.Triple(ontology, graph.OWLVersionInfo, graph.MustLiteral(OntologyVersion)))

	classes := []struct {
		iri  rdf.IRI
		desc string
	}{
		{graph.ClassOccupation, "Occupation or job role"},
		{graph.ClassSkill, "Skill or competency"},
		{graph.ClassKnowledge, "Knowledge area"},
		{graph.ClassAbility, "Ability or aptitude"},
		{graph.ClassTechnology, "Technology or tool"},
		{graph.ClassCompetency, "Competency framework element"},
		{graph.ClassSector, "Industry sector"},
	}
	for _, c := range classes {
		g.Add(graph.Triple(c.iri, graph.RDFType, graph.OWLClass))
		g.Add(graph.Triple(c.iri, graph.RDFSLabel, graph.MustLiteral(localName(c.iri))))
		g.Add(graph.Triple(c.iri, graph.DCTermsDescription, graph.MustLiteral(c.desc)))
	}

	properties := []struct {
		name string
		desc string
	}{
		{"requiresSkill", "Requires skill"},
		{"requiresKnowledge", "Requires knowledge"},
		{"requiresAbility", "Requires ability"},
		{"requiresCompetency", "Requires competency"},
		{"usesTechnology", "Uses technology"},
		{"hasEssentialSkill", "Has essential skill"},
		{"hasOptionalSkill", "Has optional skill"},
		{"belongsToSector", "Belongs to sector"},
		{"fromFramework", "Source framework"},
		{"proficiencyLevel", "Proficiency level"},
		{"medianSalary", "Median salary"},
		{"jobOutlook", "Job outlook"},
	}
	for _, p := range properties {
		iri := graph.MustIRI(graph.NSOntology + p.name)
		g.Add(graph.Triple(iri, graph.RDFType, graph.OWLObjectProperty))
		g.Add(graph.Triple(iri, graph.RDFSLabel, graph.MustLiteral(p.name)))
		g.Add(graph.Triple(iri, graph.DCTermsDescription, graph.MustLiteral(p.desc)))
	}
}

// loadFramework parses every turtle document of one framework and merges the
// results. Documents are parsed in parallel; the merge into the shared graph
// is sequential so the graph sees a single writer.
func (m *Merger) loadFramework(ctx context.Context, g *graph.Graph, fw graph.Framework, report *Report) {
	dir := filepath.Join(m.dataDir, fw.Dir)
	files, err := filepath.Glob(filepath.Join(dir, "*.ttl"))
	if err != nil || len(files) == 0 {
		slog.Warn("no documents for framework", slog.String("framework", fw.Name), slog.String("dir", dir))
		return
	}
	sort.Strings(files)

	slog.Info("loading framework", slog.String("framework", fw.Name), slog.Int("files", len(files)))

	results := make([]fileResult, len(files))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(m.parallelism)
	for i, path := range files {
		i, path := i, path
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			triples, err := graph.DecodeFile(path)
			results[i] = fileResult{path: path, triples: triples, err: err}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		slog.Warn("framework load interrupted", slog.String("framework", fw.Name), slog.String("error", err.Error()))
	}

	triplesBefore := g.Len()
	loaded, failed := 0, 0
	for _, res := range results {
		if res.err != nil {
			failed++
			slog.Warn("failed to parse document",
				slog.String("file", filepath.Base(res.path)),
				slog.String("error", res.err.Error()))
			report.Failures = append(report.Failures, FileFailure{
				File:      filepath.Base(res.path),
				Framework: fw.Key,
				Error:     res.err.Error(),
			})
			continue
		}
		if res.triples == nil && res.path == "" {
			// Slot never filled because the group was interrupted.
			failed++
			continue
		}
		g.AddAll(res.triples)
		m.addProvenance(g, fw, res.triples)
		loaded++
	}

	report.FilesAttempted += len(files)
	report.FilesLoaded += loaded
	report.FilesFailed += failed
	report.TriplesByFramework[fw.Key] += g.Len() - triplesBefore

	slog.Info("framework complete",
		slog.String("framework", fw.Name),
		slog.Int("loaded", loaded),
		slog.Int("failed", failed),
		slog.Int("triples_added", g.Len()-triplesBefore))
}

// addProvenance tags every distinct URI subject of a parsed document with
// the framework it came from.
func (m *Merger) addProvenance(g *graph.Graph, fw graph.Framework, triples []rdf.Triple) {
	seen := make(map[string]struct{})
	for _, t := range triples {
		iri, ok := t.Subj.(rdf.IRI)
		if !ok {
			continue
		}
		if _, dup := seen[iri.String()]; dup {
			continue
		}
		seen[iri.String()] = struct{}{}
		g.Add(graph.Triple(iri, graph.FromFramework, graph.MustLiteral(fw.Name)))
	}
}

func localName(iri rdf.IRI) string {
	s := iri.String()
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' || s[i] == '#' {
			return s[i+1:]
		}
	}
	return s
}

func newReport() *Report {
	return &Report{
		RunID:              uuid.NewString(),
		MergeDate:          time.Now().Format(time.RFC3339),
		TriplesByFramework: make(map[string]int),
		EntitiesByType:     make(map[string]int),
	}
}
