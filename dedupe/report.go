package dedupe

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Report records one deduplication run. The triple accounting is exact:
// FinalTriples == OriginalTriples - TriplesRemoved + TriplesAdded.
type Report struct {
	DeduplicationDate string `json:"deduplication_date"`
	OriginalTriples   int    `json:"original_triples"`
	FinalTriples      int    `json:"final_triples"`
	TriplesRemoved    int    `json:"triples_removed"`
	TriplesAdded      int    `json:"triples_added"`
	OccupationsFound  int    `json:"occupations_found"`
	DuplicateGroups   int    `json:"duplicate_groups"`
	CanonicalCreated  int    `json:"canonical_entities_created"`
	UniqueOccupations int    `json:"unique_occupations"`
}

// Save writes the report as indented JSON.
func (r *Report) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal deduplication report")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write deduplication report %s", path)
	}
	return nil
}
