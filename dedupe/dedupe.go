// Package dedupe consolidates the duplicate occupation groups found by the
// resolver into canonical entities. Each group gets one canonical occupation
// under the unified namespace, owl:sameAs links to every variant, and the
// variants' relationship triples are stripped so queries see a single entity.
package dedupe

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/knakk/rdf"

	"github.com/dechivo/skillgraph/graph"
	"github.com/dechivo/skillgraph/resolve"
)

const maxMergedDescriptions = 3

// CanonicalID derives the canonical URI local name from an occupation
// label: normalized, with spaces and slashes folded to underscores.
func CanonicalID(label string) string {
	id := resolve.Normalize(label)
	id = strings.ReplaceAll(id, " ", "_")
	id = strings.ReplaceAll(id, "/", "_")
	return id
}

// Deduplicator rewrites a unified graph in place using resolved duplicate
// groups. It is not idempotent: running it twice over the same graph would
// treat canonical entities as fresh input, so the pipeline always feeds it
// the merged graph exactly once.
type Deduplicator struct{}

// New creates a Deduplicator.
func New() *Deduplicator {
	return &Deduplicator{}
}

// Run creates canonical entities for every group and strips the duplicate
// variants' relationships. totalOccupations is the occupation inventory size
// from the resolution step, carried through into the report.
func (d *Deduplicator) Run(g *graph.Graph, groups []resolve.Group, totalOccupations int) *Report {
	report := &Report{
		DeduplicationDate: time.Now().UTC().Format(time.RFC3339),
		OriginalTriples:   g.Len(),
		OccupationsFound:  totalOccupations,
		DuplicateGroups:   len(groups),
	}

	seen := make(map[string]string, len(groups))
	for _, group := range groups {
		id := CanonicalID(group.Label)
		if prev, dup := seen[id]; dup {
			slog.Warn("canonical id collision, keeping first group",
				slog.String("id", id),
				slog.String("kept", prev),
				slog.String("skipped", group.Label))
			continue
		}
		seen[id] = group.Label

		canonical := graph.MustIRI(graph.NSOccupation + id)
		report.TriplesAdded += d.addCanonical(g, canonical, group)
		report.TriplesRemoved += d.stripVariants(g, group)
		report.CanonicalCreated++
	}

	report.FinalTriples = g.Len()
	report.UniqueOccupations = totalOccupations - report.DuplicateGroups

	slog.Info("deduplication complete",
		slog.Int("duplicate_groups", report.DuplicateGroups),
		slog.Int("canonical_created", report.CanonicalCreated),
		slog.Int("triples_added", report.TriplesAdded),
		slog.Int("triples_removed", report.TriplesRemoved),
		slog.Int("final_triples", report.FinalTriples))
	return report
}

// addCanonical writes the canonical entity and its sameAs links, returning
// the number of triples actually added.
func (d *Deduplicator) addCanonical(g *graph.Graph, canonical rdf.IRI, group resolve.Group) int {
	added := 0
	add := func(p rdf.Predicate, o rdf.Object) {
		if g.Add(graph.Triple(canonical, p, o)) {
			added++
		}
	}

	add(graph.RDFType, graph.ClassOccupation)
	add(graph.RDFSLabel, graph.MustLangLiteral(group.Label, "en"))

	var descriptions []string
	frameworks := make(map[string]struct{})
	for _, member := range group.Members {
		if member.Description != "" && !contains(descriptions, member.Description) {
			descriptions = append(descriptions, member.Description)
		}
		frameworks[member.Framework] = struct{}{}

		memberIRI, err := rdf.NewIRI(member.URI)
		if err != nil {
			slog.Warn("skipping variant with invalid uri",
				slog.String("uri", member.URI), slog.Any("error", err))
			continue
		}
		add(graph.OWLSameAs, memberIRI)
	}

	if len(descriptions) > 0 {
		if len(descriptions) > maxMergedDescriptions {
			descriptions = descriptions[:maxMergedDescriptions]
		}
		add(graph.DCTermsDescription, graph.MustLangLiteral(strings.Join(descriptions, " | "), "en"))
	}
	for _, fw := range graph.Frameworks {
		if _, ok := frameworks[fw.Key]; ok {
			add(graph.FromFramework, graph.MustLiteral(fw.Name))
		}
	}
	add(graph.DCTermsCreated, rdf.NewTypedLiteral(time.Now().Format("2006-01-02"), graph.XSDDate))
	add(graph.HasVariants, rdf.NewTypedLiteral(fmt.Sprintf("%d", len(group.Members)), graph.XSDInteger))

	return added
}

// stripVariants removes relationship triples from every variant after the
// first. Variants keep their type, label and sameAs triples so provenance
// stays navigable; everything else moves to the canonical entity's view.
func (d *Deduplicator) stripVariants(g *graph.Graph, group resolve.Group) int {
	removed := 0
	for _, member := range group.Members[1:] {
		memberIRI, err := rdf.NewIRI(member.URI)
		if err != nil {
			continue
		}
		outgoing := g.WithSubject(memberIRI)
		incoming := g.WithObject(memberIRI)
		if len(outgoing) == 0 && len(incoming) == 0 {
			slog.Warn("variant not present in graph, skipping",
				slog.String("uri", member.URI))
			continue
		}
		for _, t := range outgoing {
			if sameIRI(t.Pred, graph.RDFType) || sameIRI(t.Pred, graph.OWLSameAs) || sameIRI(t.Pred, graph.RDFSLabel) {
				continue
			}
			if g.Remove(t) {
				removed++
			}
		}
		for _, t := range incoming {
			if sameIRI(t.Pred, graph.OWLSameAs) {
				continue
			}
			if g.Remove(t) {
				removed++
			}
		}
	}
	return removed
}

func sameIRI(p rdf.Predicate, iri rdf.IRI) bool {
	return p.String() == iri.String()
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
