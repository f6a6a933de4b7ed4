package fuseki

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Binding is one solution row of a SELECT result, variable name to value.
type Binding map[string]string

type selectResponse struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []map[string]struct {
			Type     string `json:"type"`
			Value    string `json:"value"`
			Lang     string `json:"xml:lang"`
			Datatype string `json:"datatype"`
		} `json:"bindings"`
	} `json:"results"`
}

// Select runs a SPARQL SELECT against a dataset's query endpoint and
// flattens the JSON results to one map per solution row.
func (c *Client) Select(ctx context.Context, dataset, query string) ([]Binding, error) {
	form := url.Values{}
	form.Set("query", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/"+dataset+"/query", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "build query request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/sparql-results+json")
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "query dataset %s", dataset)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(statusError(resp), "query dataset %s", dataset)
	}

	var decoded selectResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errors.Wrap(err, "decode query results")
	}

	rows := make([]Binding, 0, len(decoded.Results.Bindings))
	for _, raw := range decoded.Results.Bindings {
		row := make(Binding, len(raw))
		for name, term := range raw {
			row[name] = term.Value
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Update runs a SPARQL UPDATE against a dataset's update endpoint.
func (c *Client) Update(ctx context.Context, dataset, update string) error {
	resp, err := c.do(ctx, http.MethodPost, c.baseURL+"/"+dataset+"/update",
		"application/sparql-update", strings.NewReader(update))
	if err != nil {
		return errors.Wrapf(err, "update dataset %s", dataset)
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	default:
		return errors.Wrapf(statusError(resp), "update dataset %s", dataset)
	}
}

// ClearDataset drops every graph in a dataset.
func (c *Client) ClearDataset(ctx context.Context, dataset string) error {
	return c.Update(ctx, dataset, "DROP ALL")
}

// CountTriples counts all triples in a dataset across its graphs.
func (c *Client) CountTriples(ctx context.Context, dataset string) (int, error) {
	rows, err := c.Select(ctx, dataset,
		"SELECT (COUNT(*) AS ?count) WHERE { { ?s ?p ?o } UNION { GRAPH ?g { ?s ?p ?o } } }")
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, errors.New("count query returned no rows")
	}
	count, err := strconv.Atoi(rows[0]["count"])
	if err != nil {
		return 0, errors.Wrap(err, "parse triple count")
	}
	return count, nil
}
