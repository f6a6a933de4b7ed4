package main

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dechivo/skillgraph/dedupe"
	"github.com/dechivo/skillgraph/graph"
	"github.com/dechivo/skillgraph/merge"
	"github.com/dechivo/skillgraph/resolve"
)

const (
	unifiedGraphFile  = "unified_knowledge_graph.ttl"
	mergeReportFile   = "merge_statistics.json"
	mappingReportFile = "entity_mappings.json"
	dedupeReportFile  = "deduplication_statistics.json"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge framework turtle files into one deduplicated graph",
	Long: `merge loads every framework's turtle documents, resolves occupation
entities that denote the same job across frameworks, consolidates them
into canonical entities and writes the unified graph plus JSON reports
to the output directory.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, err := loadProfile()
		if err != nil {
			return err
		}
		if p.Data == "" {
			return errors.New("merge requires --data")
		}
		ctx := cmd.Context()

		g, mergeReport, err := merge.NewMerger(p.Data).Run(ctx)
		if err != nil {
			return errors.Wrap(err, "merge frameworks")
		}
		if err := mergeReport.Save(filepath.Join(p.Output, mergeReportFile)); err != nil {
			return err
		}

		g, err = resolveAndDedupe(g, p.FuzzyThreshold, p.Output)
		if err != nil {
			return err
		}

		target := filepath.Join(p.Output, unifiedGraphFile)
		if err := g.WriteFile(target); err != nil {
			return errors.Wrap(err, "write unified graph")
		}
		cmd.Printf("unified graph written to %s (%d triples)\n", target, g.Len())
		return nil
	},
}

// resolveAndDedupe runs entity resolution and deduplication over a merged
// graph, saving both reports.
func resolveAndDedupe(g *graph.Graph, threshold float64, outputDir string) (*graph.Graph, error) {
	byFramework := resolve.CollectOccupations(g)
	total := 0
	for _, occs := range byFramework {
		total += len(occs)
	}

	groups, mappingReport := resolve.NewResolver(resolve.WithThreshold(threshold)).Resolve(byFramework)
	if err := mappingReport.Save(filepath.Join(outputDir, mappingReportFile)); err != nil {
		return nil, err
	}

	dedupeReport := dedupe.New().Run(g, groups, total)
	if err := dedupeReport.Save(filepath.Join(outputDir, dedupeReportFile)); err != nil {
		return nil, err
	}
	return g, nil
}
