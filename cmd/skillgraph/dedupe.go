package main

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dechivo/skillgraph/graph"
)

var dedupeInput string

var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Deduplicate occupations in an already merged graph",
	Long: `dedupe reads a merged turtle file, resolves duplicate occupation
entities across frameworks and writes the consolidated graph back out.
Use it to reprocess an existing unified graph without re-merging.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, err := loadProfile()
		if err != nil {
			return err
		}
		if dedupeInput == "" {
			return errors.New("dedupe requires --input")
		}
		if p.Output == "" {
			p.Output = filepath.Dir(dedupeInput)
		}

		g, err := graph.LoadFile(dedupeInput)
		if err != nil {
			return errors.Wrapf(err, "load %s", dedupeInput)
		}

		g, err = resolveAndDedupe(g, p.FuzzyThreshold, p.Output)
		if err != nil {
			return err
		}

		target := filepath.Join(p.Output, "deduplicated_knowledge_graph.ttl")
		if err := g.WriteFile(target); err != nil {
			return errors.Wrap(err, "write deduplicated graph")
		}
		cmd.Printf("deduplicated graph written to %s (%d triples)\n", target, g.Len())
		return nil
	},
}

func init() {
	dedupeCmd.Flags().StringVar(&dedupeInput, "input", "", "merged turtle file to deduplicate")
}
