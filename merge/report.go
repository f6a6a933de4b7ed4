package merge

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// FileFailure records one document that could not be parsed.
type FileFailure struct {
	File      string `json:"file"`
	Framework string `json:"framework"`
	Error     string `json:"error"`
}

// Report is the JSON side-car contract for a merge run. Consumers check the
// failed-file count and triple totals here, not the process exit code.
type Report struct {
	RunID              string         `json:"run_id"`
	MergeDate          string         `json:"merge_date"`
	FilesAttempted     int            `json:"total_files_attempted"`
	FilesLoaded        int            `json:"total_files_loaded"`
	FilesFailed        int            `json:"total_files_failed"`
	TotalTriples       int            `json:"total_triples"`
	TriplesByFramework map[string]int `json:"triples_by_framework"`
	EntitiesByType     map[string]int `json:"entities_by_type"`
	Failures           []FileFailure  `json:"failures,omitempty"`
}

// Save writes the report as indented JSON.
func (r *Report) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal merge report")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "write %s", path)
}
