package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dechivo/skillgraph/query"
	"github.com/dechivo/skillgraph/sfia"
)

var verifySample string

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check server connectivity and dataset contents",
	Long: `verify pings the Fuseki server, lists its datasets, counts triples in
the configured datasets and runs a sample occupation search. A failing
verify means the query services will degrade to empty results.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, err := loadProfile()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		client := newFusekiClient(p)

		if err := client.Ping(ctx); err != nil {
			return errors.Wrap(err, "fuseki not reachable")
		}
		cmd.Printf("fuseki reachable at %s\n", p.FusekiURL)

		datasets, err := client.ListDatasets(ctx)
		if err != nil {
			return err
		}
		for _, ds := range datasets {
			cmd.Printf("dataset %s\n", ds.Name)
		}

		for _, name := range []string{p.Dataset, p.SFIADataset} {
			exists, err := client.DatasetExists(ctx, name)
			if err != nil {
				return err
			}
			if !exists {
				cmd.Printf("dataset %s: missing\n", name)
				continue
			}
			count, err := client.CountTriples(ctx, name)
			if err != nil {
				return err
			}
			cmd.Printf("dataset %s: %d triples\n", name, count)
		}

		kg := query.NewService(client, p.Dataset,
			query.WithTimeout(p.QueryTimeout), query.WithEnabled(p.KGEnabled))

		coverage := kg.FrameworkCoverage(ctx)
		if len(coverage) == 0 {
			cmd.Println("framework coverage: no provenance data found")
		}
		for _, fc := range coverage {
			cmd.Printf("framework %s: %d entities\n", fc.Framework, fc.Entities)
		}

		occupations := kg.SearchOccupations(ctx, verifySample)
		cmd.Printf("sample search %q: %d occupations\n", verifySample, len(occupations))
		for i, occ := range occupations {
			if i >= 5 {
				break
			}
			cmd.Printf("  %s [%s]\n", occ.Label, occ.Framework)
		}

		if exists, _ := client.DatasetExists(ctx, p.SFIADataset); exists {
			stats := sfia.NewService(client, p.SFIADataset,
				sfia.WithTimeout(p.QueryTimeout)).Stats(ctx)
			cmd.Printf("sfia: %d skills, %d categories, %d levels\n",
				stats.Skills, stats.Categories, stats.Levels)
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVar(&verifySample, "sample", "software", "keyword for the sample occupation search")
}
