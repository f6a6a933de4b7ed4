package profile

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Profile is the configuration for the knowledge graph pipeline and services.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Data is the directory holding the per-framework turtle document trees
	Data string
	// Output is the directory for unified graphs and JSON reports
	Output string
	// Version is the current version of the pipeline
	Version string

	// Fuseki configuration
	FusekiURL      string        // SKILLGRAPH_FUSEKI_URL (default: http://localhost:3030)
	FusekiUser     string        // SKILLGRAPH_FUSEKI_USER (default: admin)
	FusekiPassword string        // SKILLGRAPH_FUSEKI_PASSWORD
	Dataset        string        // SKILLGRAPH_DATASET (default: dechivo)
	SFIADataset    string        // SKILLGRAPH_SFIA_DATASET (default: sfia)
	QueryTimeout   time.Duration // SKILLGRAPH_QUERY_TIMEOUT (default: 10s)
	CacheTTL       time.Duration // SKILLGRAPH_CACHE_TTL (default: 5m)
	KGEnabled      bool          // SKILLGRAPH_KG_ENABLED (default: true)

	// Resolver configuration
	FuzzyThreshold float64 // SKILLGRAPH_FUZZY_THRESHOLD (default: 0.85)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// QueryEndpoint returns the SPARQL query endpoint for a dataset.
func (p *Profile) QueryEndpoint(dataset string) string {
	return strings.TrimRight(p.FusekiURL, "/") + "/" + dataset + "/query"
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from SKILLGRAPH_* environment variables.
// Skips empty values so defaults take effect.
func (p *Profile) FromEnv() {
	getBoolEnv := func(key string, defaultValue bool) bool {
		val := os.Getenv(key)
		if val == "" {
			return defaultValue
		}
		return val == "true"
	}

	p.FusekiURL = getEnvOrDefault("SKILLGRAPH_FUSEKI_URL", "http://localhost:3030")
	p.FusekiUser = getEnvOrDefault("SKILLGRAPH_FUSEKI_USER", "admin")
	p.FusekiPassword = os.Getenv("SKILLGRAPH_FUSEKI_PASSWORD")
	p.Dataset = getEnvOrDefault("SKILLGRAPH_DATASET", "dechivo")
	p.SFIADataset = getEnvOrDefault("SKILLGRAPH_SFIA_DATASET", "sfia")
	p.KGEnabled = getBoolEnv("SKILLGRAPH_KG_ENABLED", true)

	if val := os.Getenv("SKILLGRAPH_QUERY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			p.QueryTimeout = d
		} else {
			slog.Warn("invalid query timeout, using default", slog.String("value", val))
		}
	}
	if p.QueryTimeout == 0 {
		p.QueryTimeout = 10 * time.Second
	}

	if val := os.Getenv("SKILLGRAPH_CACHE_TTL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			p.CacheTTL = d
		} else {
			slog.Warn("invalid cache ttl, using default", slog.String("value", val))
		}
	}
	if p.CacheTTL == 0 {
		p.CacheTTL = 5 * time.Minute
	}

	if val := os.Getenv("SKILLGRAPH_FUZZY_THRESHOLD"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil && f > 0 && f <= 1 {
			p.FuzzyThreshold = f
		} else {
			slog.Warn("invalid fuzzy threshold, using default", slog.String("value", val))
		}
	}
	if p.FuzzyThreshold == 0 {
		p.FuzzyThreshold = 0.85
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		absDir, err := filepath.Abs(dataDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

// Validate checks directories and fills derived defaults. The data directory
// must exist; the output directory is created if absent.
func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}

	if p.Data != "" {
		dataDir, err := checkDataDir(p.Data)
		if err != nil {
			slog.Error("failed to check data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
			return err
		}
		p.Data = dataDir
	}

	if p.Output == "" && p.Data != "" {
		p.Output = filepath.Join(p.Data, "unified-files")
	}
	if p.Output != "" {
		if err := os.MkdirAll(p.Output, 0o770); err != nil {
			slog.Error("failed to create output directory", slog.String("output", p.Output), slog.String("error", err.Error()))
			return err
		}
	}

	if p.FusekiURL == "" {
		return errors.New("fuseki url must not be empty")
	}

	return nil
}
