package merge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dechivo/skillgraph/graph"
)

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func escoDoc(id, label string) string {
	return fmt.Sprintf(`<%soccupation/%s> <%stype> <%sOccupation> .
<%soccupation/%s> <%slabel> "%s" .
`, graph.NSESCO, id, graph.NSRDF, graph.NSESCO, graph.NSESCO, id, graph.NSRDFS, label)
}

func TestRunSkipsMalformedDocuments(t *testing.T) {
	dataDir := t.TempDir()
	escoDir := filepath.Join(dataDir, "esco_turtle")
	require.NoError(t, os.MkdirAll(escoDir, 0o755))

	for i := 0; i < 8; i++ {
		writeDoc(t, escoDir, fmt.Sprintf("occ_%d.ttl", i), escoDoc(fmt.Sprintf("%d", i), fmt.Sprintf("Occupation %d", i)))
	}
	writeDoc(t, escoDir, "broken_1.ttl", "<http://data.europa.eu/esco/occupation/x> <http://www")
	writeDoc(t, escoDir, "broken_2.ttl", "this is not turtle at all {{{")

	g, report, err := NewMerger(dataDir).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, report.FilesAttempted)
	assert.Equal(t, 8, report.FilesLoaded)
	assert.Equal(t, 2, report.FilesFailed)
	assert.Len(t, report.Failures, 2)

	// Only the valid files contributed entity triples.
	occupations := g.SubjectsWithType(graph.MustIRI(graph.NSESCO + "Occupation"))
	assert.Len(t, occupations, 8)
}

func TestRunAddsProvenancePerSubject(t *testing.T) {
	dataDir := t.TempDir()
	escoDir := filepath.Join(dataDir, "esco_turtle")
	onetDir := filepath.Join(dataDir, "onet_turtle")
	require.NoError(t, os.MkdirAll(escoDir, 0o755))
	require.NoError(t, os.MkdirAll(onetDir, 0o755))

	writeDoc(t, escoDir, "dev.ttl", escoDoc("dev", "Software Developer"))
	writeDoc(t, onetDir, "dev.ttl", fmt.Sprintf(`<%soccupation/15-1252> <%slabel> "Software developer" .
`, graph.NSONet, graph.NSRDFS))

	g, report, err := NewMerger(dataDir).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.FilesLoaded)

	escoSubj := graph.MustIRI(graph.NSESCO + "occupation/dev")
	fws := g.Objects(escoSubj, graph.FromFramework)
	require.Len(t, fws, 1)
	assert.Equal(t, "ESCO", fws[0].String())

	onetSubj := graph.MustIRI(graph.NSONet + "occupation/15-1252")
	fws = g.Objects(onetSubj, graph.FromFramework)
	require.Len(t, fws, 1)
	assert.Equal(t, "O*NET", fws[0].String())

	assert.Positive(t, report.TriplesByFramework["esco"])
	assert.Positive(t, report.TriplesByFramework["onet"])
}

func TestRunWritesOntologyHeader(t *testing.T) {
	dataDir := t.TempDir()
	g, _, err := NewMerger(dataDir).Run(context.Background())
	require.NoError(t, err)

	label, ok := g.FirstLiteral(graph.MustIRI("http://dechivo.com/ontology"), graph.RDFSLabel)
	require.True(t, ok)
	assert.Equal(t, "Dechivo Unified Ontology", label)

	// Core classes are declared.
	classes := g.SubjectsWithType(graph.OWLClass)
	assert.Len(t, classes, 7)
}

func TestRunMissingDataDir(t *testing.T) {
	_, _, err := NewMerger(filepath.Join(t.TempDir(), "nope")).Run(context.Background())
	assert.Error(t, err)
}

func TestReportSave(t *testing.T) {
	dir := t.TempDir()
	report := newReport()
	report.FilesLoaded = 3
	path := filepath.Join(dir, "merge_report.json")
	require.NoError(t, report.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"total_files_loaded": 3`)
	assert.Contains(t, string(data), report.RunID)
}
