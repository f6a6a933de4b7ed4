package main

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dechivo/skillgraph/fuseki"
	"github.com/dechivo/skillgraph/internal/profile"
	"github.com/dechivo/skillgraph/resolve"
)

const version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "skillgraph",
	Short: "Unified occupation and skill knowledge graph toolkit",
	Long: `skillgraph merges occupation taxonomies (ESCO, O*NET, Skills Framework
Singapore, Canada OASIS) into one deduplicated knowledge graph, loads it
into Apache Jena Fuseki and answers occupation and skill queries.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
	},
}

func init() {
	viper.SetEnvPrefix("skillgraph")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	flags := rootCmd.PersistentFlags()
	flags.String("mode", "prod", `mode of the toolkit: "prod", "dev" or "demo"`)
	flags.String("data", "", "directory holding the per-framework turtle document trees")
	flags.String("output", "", "directory for unified graphs and reports (default: <data>/unified-files)")
	flags.String("fuseki-url", "http://localhost:3030", "Fuseki server address")
	flags.String("fuseki-user", "admin", "Fuseki admin username")
	flags.String("fuseki-password", "", "Fuseki admin password")
	flags.String("dataset", "dechivo", "unified knowledge graph dataset name")
	flags.String("sfia-dataset", "sfia", "SFIA framework dataset name")
	flags.Duration("query-timeout", 10*time.Second, "per-query timeout")
	flags.Duration("cache-ttl", 5*time.Minute, "lifetime of cached query results")
	flags.Bool("kg-enabled", true, "enable knowledge graph queries")
	flags.Float64("fuzzy-threshold", resolve.DefaultThreshold, "minimum label similarity for fuzzy entity matches")

	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(mergeCmd, dedupeCmd, loadCmd, verifyCmd, searchCmd, gapCmd, sfiaCmd)
}

func setupLogging() {
	level := slog.LevelInfo
	if viper.GetString("mode") != "prod" {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func loadProfile() (*profile.Profile, error) {
	p := &profile.Profile{
		Mode:           viper.GetString("mode"),
		Data:           viper.GetString("data"),
		Output:         viper.GetString("output"),
		Version:        version,
		FusekiURL:      viper.GetString("fuseki-url"),
		FusekiUser:     viper.GetString("fuseki-user"),
		FusekiPassword: viper.GetString("fuseki-password"),
		Dataset:        viper.GetString("dataset"),
		SFIADataset:    viper.GetString("sfia-dataset"),
		QueryTimeout:   viper.GetDuration("query-timeout"),
		CacheTTL:       viper.GetDuration("cache-ttl"),
		KGEnabled:      viper.GetBool("kg-enabled"),
		FuzzyThreshold: viper.GetFloat64("fuzzy-threshold"),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func newFusekiClient(p *profile.Profile) *fuseki.Client {
	return fuseki.NewClient(p.FusekiURL,
		fuseki.WithBasicAuth(p.FusekiUser, p.FusekiPassword))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
