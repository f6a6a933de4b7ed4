package main

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dechivo/skillgraph/fuseki"
	"github.com/dechivo/skillgraph/graph"
)

const frameworkGraphPrefix = "http://dechivo.com/graph"

var (
	loadFile       string
	loadFrameworks bool
	loadReplace    bool
	loadRPS        float64
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load turtle data into Fuseki",
	Long: `load uploads the unified graph into the configured dataset, creating
it if needed. With --frameworks the per-framework turtle directories are
also uploaded into named graphs under ` + frameworkGraphPrefix + `/{framework}.
--replace drops all existing data in the dataset first.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, err := loadProfile()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		opts := []fuseki.Option{fuseki.WithBasicAuth(p.FusekiUser, p.FusekiPassword)}
		if loadRPS > 0 {
			opts = append(opts, fuseki.WithRateLimit(loadRPS, 1))
		}
		client := fuseki.NewClient(p.FusekiURL, opts...)

		if err := client.Ping(ctx); err != nil {
			return errors.Wrap(err, "fuseki not reachable")
		}
		if err := client.CreateDataset(ctx, p.Dataset); err != nil {
			return err
		}
		if loadReplace {
			if err := client.ClearDataset(ctx, p.Dataset); err != nil {
				return err
			}
			cmd.Printf("cleared dataset %s\n", p.Dataset)
		}

		file := loadFile
		if file == "" {
			file = filepath.Join(p.Output, unifiedGraphFile)
		}
		if err := client.LoadFile(ctx, p.Dataset, file, ""); err != nil {
			return err
		}
		cmd.Printf("loaded %s into dataset %s\n", file, p.Dataset)

		if loadFrameworks {
			if p.Data == "" {
				return errors.New("--frameworks requires --data")
			}
			for _, fw := range graph.Frameworks {
				dir := filepath.Join(p.Data, fw.Dir)
				stats, err := client.LoadDirectory(ctx, p.Dataset, dir, frameworkGraphPrefix+"/"+fw.Key)
				if err != nil {
					return errors.Wrapf(err, "load framework %s", fw.Key)
				}
				cmd.Printf("framework %s: %d loaded, %d failed\n", fw.Key, stats.Loaded, stats.Failed)
			}
		}

		count, err := client.CountTriples(ctx, p.Dataset)
		if err != nil {
			return err
		}
		cmd.Printf("dataset %s now holds %d triples\n", p.Dataset, count)
		return nil
	},
}

func init() {
	loadCmd.Flags().StringVar(&loadFile, "file", "", "turtle file to load (default: <output>/"+unifiedGraphFile+")")
	loadCmd.Flags().BoolVar(&loadFrameworks, "frameworks", false, "also load per-framework directories into named graphs")
	loadCmd.Flags().BoolVar(&loadReplace, "replace", false, "drop existing dataset contents before loading")
	loadCmd.Flags().Float64Var(&loadRPS, "rps", 0, "throttle uploads to this many requests per second (0 = unlimited)")
}
