package fuseki

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/$/datasets", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "admin", user)
		assert.Equal(t, "secret", pass)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"datasets":[{"ds.name":"/dechivo","ds.state":true},{"ds.name":"/sfia","ds.state":true}]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithBasicAuth("admin", "secret"))

	exists, err := c.DatasetExists(context.Background(), "dechivo")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = c.DatasetExists(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateDatasetIdempotent(t *testing.T) {
	creates := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			io.WriteString(w, `{"datasets":[{"ds.name":"/existing"}]}`)
		case http.MethodPost:
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "fresh", r.PostForm.Get("dbName"))
			assert.Equal(t, "tdb2", r.PostForm.Get("dbType"))
			creates++
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	require.NoError(t, c.CreateDataset(context.Background(), "existing"))
	assert.Equal(t, 0, creates, "existing dataset must not be recreated")

	require.NoError(t, c.CreateDataset(context.Background(), "fresh"))
	assert.Equal(t, 1, creates)
}

func TestLoadFile(t *testing.T) {
	var gotPath, gotGraph, gotContentType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotGraph = r.URL.Query().Get("graph")
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	dir := t.TempDir()
	file := filepath.Join(dir, "occ.ttl")
	ttl := "<http://example.org/a> <http://example.org/b> <http://example.org/c> .\n"
	require.NoError(t, os.WriteFile(file, []byte(ttl), 0o644))

	c := NewClient(srv.URL)
	err := c.LoadFile(context.Background(), "dechivo", file, "http://dechivo.com/graph/esco/occ")
	require.NoError(t, err)

	assert.Equal(t, "/dechivo/data", gotPath)
	assert.Equal(t, "http://dechivo.com/graph/esco/occ", gotGraph)
	assert.Equal(t, "text/turtle; charset=utf-8", gotContentType)
	assert.Equal(t, ttl, gotBody)
}

func TestLoadDirectoryContinuesOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("graph") == "http://dechivo.com/graph/esco/bad" {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, "parse error")
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	dir := t.TempDir()
	for _, name := range []string{"bad.ttl", "good1.ttl", "good2.ttl"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("# data\n"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))

	c := NewClient(srv.URL)
	stats, err := c.LoadDirectory(context.Background(), "dechivo", dir, "http://dechivo.com/graph/esco")
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Files)
	assert.Equal(t, 2, stats.Loaded)
	assert.Equal(t, 1, stats.Failed)
}

func TestLoadDirectoryEmpty(t *testing.T) {
	c := NewClient("http://unused")
	stats, err := c.LoadDirectory(context.Background(), "dechivo", t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Files)
}

func TestSelect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/dechivo/query", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Contains(t, r.PostForm.Get("query"), "SELECT")
		assert.Equal(t, "application/sparql-results+json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/sparql-results+json")
		io.WriteString(w, `{
			"head": {"vars": ["occupation", "label"]},
			"results": {"bindings": [
				{"occupation": {"type": "uri", "value": "http://dechivo.com/occupation/software_developer"},
				 "label": {"type": "literal", "xml:lang": "en", "value": "Software Developer"}},
				{"occupation": {"type": "uri", "value": "http://data.onetcenter.org/occupation/15-1252"},
				 "label": {"type": "literal", "value": "Software developer"}}
			]}
		}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	rows, err := c.Select(context.Background(), "dechivo", "SELECT ?occupation ?label WHERE { ?occupation rdfs:label ?label }")
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "http://dechivo.com/occupation/software_developer", rows[0]["occupation"])
	assert.Equal(t, "Software Developer", rows[0]["label"])
	assert.Equal(t, "Software developer", rows[1]["label"])
}

func TestSelectErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, "malformed query")
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Select(context.Background(), "dechivo", "not sparql")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed query")
}

func TestClearDataset(t *testing.T) {
	var gotPath, gotBody, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	require.NoError(t, c.ClearDataset(context.Background(), "dechivo"))

	assert.Equal(t, "/dechivo/update", gotPath)
	assert.Equal(t, "application/sparql-update", gotContentType)
	assert.Equal(t, "DROP ALL", gotBody)
}

func TestCountTriples(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{
			"head": {"vars": ["count"]},
			"results": {"bindings": [{"count": {"type": "literal", "datatype": "http://www.w3.org/2001/XMLSchema#integer", "value": "1296912"}}]}
		}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	count, err := c.CountTriples(context.Background(), "dechivo")
	require.NoError(t, err)
	assert.Equal(t, 1296912, count)
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/$/ping", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	assert.NoError(t, c.Ping(context.Background()))
	srv.Close()
	assert.Error(t, c.Ping(context.Background()))
}
