// Package fuseki is a client for the Apache Jena Fuseki HTTP protocol: the
// admin API for dataset lifecycle, the graph store protocol for bulk turtle
// upload and the SPARQL endpoints for query and update.
package fuseki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const defaultTimeout = 30 * time.Second

// Client talks to one Fuseki server.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithBasicAuth sets the credentials sent with every request.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRateLimit throttles uploads to at most rps requests per second.
// Bulk loads push thousands of files; an unthrottled loader can starve the
// server's TDB2 writer.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server address the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping checks server connectivity.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, c.baseURL+"/$/ping", "", nil)
	if err != nil {
		return errors.Wrap(err, "ping fuseki")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("ping fuseki: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Dataset is one entry from the admin dataset listing.
type Dataset struct {
	Name  string `json:"ds.name"`
	State bool   `json:"ds.state"`
}

// ListDatasets returns the datasets the server hosts.
func (c *Client) ListDatasets(ctx context.Context) ([]Dataset, error) {
	resp, err := c.do(ctx, http.MethodGet, c.baseURL+"/$/datasets", "", nil)
	if err != nil {
		return nil, errors.Wrap(err, "list datasets")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("list datasets: unexpected status %d", resp.StatusCode)
	}

	var listing struct {
		Datasets []Dataset `json:"datasets"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, errors.Wrap(err, "decode dataset listing")
	}
	return listing.Datasets, nil
}

// DatasetExists reports whether the named dataset is hosted.
func (c *Client) DatasetExists(ctx context.Context, name string) (bool, error) {
	datasets, err := c.ListDatasets(ctx)
	if err != nil {
		return false, err
	}
	for _, ds := range datasets {
		if ds.Name == "/"+name {
			return true, nil
		}
	}
	return false, nil
}

// CreateDataset creates a persistent tdb2 dataset. Creating a dataset that
// already exists is not an error.
func (c *Client) CreateDataset(ctx context.Context, name string) error {
	exists, err := c.DatasetExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	form := url.Values{}
	form.Set("dbName", name)
	form.Set("dbType", "tdb2")
	resp, err := c.do(ctx, http.MethodPost, c.baseURL+"/$/datasets",
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrapf(err, "create dataset %s", name)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return errors.Errorf("create dataset %s: unexpected status %d", name, resp.StatusCode)
	}
	return nil
}

// DeleteDataset removes a dataset and its data.
func (c *Client) DeleteDataset(ctx context.Context, name string) error {
	resp, err := c.do(ctx, http.MethodDelete, c.baseURL+"/$/datasets/"+url.PathEscape(name), "", nil)
	if err != nil {
		return errors.Wrapf(err, "delete dataset %s", name)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return errors.Errorf("delete dataset %s: unexpected status %d", name, resp.StatusCode)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, rawURL, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	return c.httpClient.Do(req)
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return fmt.Errorf("status %d: %s", resp.StatusCode, msg)
}
