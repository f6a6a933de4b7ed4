package profile

import (
	"os"
	"testing"
	"time"
)

func TestProfileDefaults(t *testing.T) {
	clearEnvVars()

	profile := &Profile{}
	profile.FromEnv()

	tests := []struct {
		name     string
		expected string
		actual   string
	}{
		{"FusekiURL default", "http://localhost:3030", profile.FusekiURL},
		{"FusekiUser default", "admin", profile.FusekiUser},
		{"Dataset default", "dechivo", profile.Dataset},
		{"SFIADataset default", "sfia", profile.SFIADataset},
		{"KGEnabled default", "true", boolToString(profile.KGEnabled)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.actual != tt.expected {
				t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, tt.actual)
			}
		})
	}

	if profile.QueryTimeout != 10*time.Second {
		t.Errorf("QueryTimeout default: expected 10s, got %v", profile.QueryTimeout)
	}
	if profile.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL default: expected 5m, got %v", profile.CacheTTL)
	}
	if profile.FuzzyThreshold != 0.85 {
		t.Errorf("FuzzyThreshold default: expected 0.85, got %v", profile.FuzzyThreshold)
	}
}

func TestProfileFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		envVar   string
		envValue string
		field    func(*Profile) string
		expected string
	}{
		{
			name:     "SKILLGRAPH_FUSEKI_URL",
			envVar:   "SKILLGRAPH_FUSEKI_URL",
			envValue: "http://fuseki.internal:3030",
			field:    func(p *Profile) string { return p.FusekiURL },
			expected: "http://fuseki.internal:3030",
		},
		{
			name:     "SKILLGRAPH_FUSEKI_USER",
			envVar:   "SKILLGRAPH_FUSEKI_USER",
			envValue: "kg-loader",
			field:    func(p *Profile) string { return p.FusekiUser },
			expected: "kg-loader",
		},
		{
			name:     "SKILLGRAPH_FUSEKI_PASSWORD",
			envVar:   "SKILLGRAPH_FUSEKI_PASSWORD",
			envValue: "secret",
			field:    func(p *Profile) string { return p.FusekiPassword },
			expected: "secret",
		},
		{
			name:     "SKILLGRAPH_DATASET",
			envVar:   "SKILLGRAPH_DATASET",
			envValue: "unified",
			field:    func(p *Profile) string { return p.Dataset },
			expected: "unified",
		},
		{
			name:     "SKILLGRAPH_KG_ENABLED=false",
			envVar:   "SKILLGRAPH_KG_ENABLED",
			envValue: "false",
			field:    func(p *Profile) string { return boolToString(p.KGEnabled) },
			expected: "false",
		},
		{
			name:     "SKILLGRAPH_QUERY_TIMEOUT",
			envVar:   "SKILLGRAPH_QUERY_TIMEOUT",
			envValue: "30s",
			field:    func(p *Profile) string { return p.QueryTimeout.String() },
			expected: "30s",
		},
		{
			name:     "SKILLGRAPH_CACHE_TTL",
			envVar:   "SKILLGRAPH_CACHE_TTL",
			envValue: "15m",
			field:    func(p *Profile) string { return p.CacheTTL.String() },
			expected: "15m0s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars()
			os.Setenv(tt.envVar, tt.envValue)
			defer os.Unsetenv(tt.envVar)

			profile := &Profile{}
			profile.FromEnv()

			actual := tt.field(profile)
			if actual != tt.expected {
				t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, actual)
			}
		})
	}
}

func TestQueryEndpoint(t *testing.T) {
	profile := &Profile{FusekiURL: "http://localhost:3030/"}
	got := profile.QueryEndpoint("dechivo")
	want := "http://localhost:3030/dechivo/query"
	if got != want {
		t.Errorf("QueryEndpoint(): expected %q, got %q", want, got)
	}
}

// Helper functions

func clearEnvVars() {
	envVars := []string{
		"SKILLGRAPH_FUSEKI_URL",
		"SKILLGRAPH_FUSEKI_USER",
		"SKILLGRAPH_FUSEKI_PASSWORD",
		"SKILLGRAPH_DATASET",
		"SKILLGRAPH_SFIA_DATASET",
		"SKILLGRAPH_KG_ENABLED",
		"SKILLGRAPH_QUERY_TIMEOUT",
		"SKILLGRAPH_CACHE_TTL",
		"SKILLGRAPH_FUZZY_THRESHOLD",
	}
	for _, envVar := range envVars {
		os.Unsetenv(envVar)
	}
}

func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
