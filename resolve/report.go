package resolve

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// GroupSample is a compact view of one group for the mapping report.
type GroupSample struct {
	Label      string   `json:"label"`
	Kind       string   `json:"kind"`
	Confidence float64  `json:"confidence"`
	Frameworks []string `json:"frameworks"`
	Size       int      `json:"size"`
}

// Report summarizes one resolution run, in the shape of the mapping
// statistics file the pipeline publishes alongside the unified graph.
type Report struct {
	RunID                  string         `json:"run_id"`
	MappingDate            string         `json:"mapping_date"`
	OccupationsByFramework map[string]int `json:"occupations_by_framework"`
	TotalGroups            int            `json:"total_groups"`
	ExactGroups            int            `json:"exact_groups"`
	FuzzyGroups            int            `json:"fuzzy_groups"`
	FuzzyPairsScored       int            `json:"fuzzy_pairs_matched"`
	SampleGroups           []GroupSample  `json:"sample_groups"`
}

const sampleLimit = 25

func newReport(byFramework map[string][]Occupation, groups []Group, fuzzyPairs int) *Report {
	report := &Report{
		RunID:                  uuid.NewString(),
		MappingDate:            time.Now().UTC().Format(time.RFC3339),
		OccupationsByFramework: make(map[string]int, len(byFramework)),
		TotalGroups:            len(groups),
		FuzzyPairsScored:       fuzzyPairs,
	}
	for key, occs := range byFramework {
		report.OccupationsByFramework[key] = len(occs)
	}
	for _, g := range groups {
		if g.Kind == GroupExact {
			report.ExactGroups++
		} else {
			report.FuzzyGroups++
		}
		if len(report.SampleGroups) < sampleLimit {
			sample := GroupSample{
				Label:      g.Label,
				Kind:       string(g.Kind),
				Confidence: g.Confidence,
				Size:       len(g.Members),
			}
			for _, m := range g.Members {
				sample.Frameworks = append(sample.Frameworks, m.Framework)
			}
			report.SampleGroups = append(report.SampleGroups, sample)
		}
	}
	return report
}

// Save writes the report as indented JSON.
func (r *Report) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal mapping report")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write mapping report %s", path)
	}
	return nil
}
