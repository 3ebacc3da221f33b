// Package apiclient talks to the product extraction service over JSON/HTTP.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dtnitsch/product-extractor/models"
)

const maxBodyBytes = 4 << 20

type Client struct {
	base   *url.URL
	client *http.Client
}

// NewClient returns a client for the service rooted at serverURL.
// A zero timeout leaves requests bounded only by their context.
func NewClient(serverURL string, timeout time.Duration) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(serverURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", serverURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", serverURL)
	}
	return &Client{
		base:   base,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.client = hc
	return c
}

// Extract asks the service to detect products on the page at pageURL.
func (c *Client) Extract(ctx context.Context, pageURL string) Result[models.ExtractResponse] {
	var body models.ExtractResponse
	status, err := c.do(ctx, http.MethodPost, "/extract", models.ExtractionRequest{URL: pageURL}, &body)
	if err != nil {
		return transportError[models.ExtractResponse](err, status)
	}
	if body.Error != "" {
		return appError(body, body.Error, status)
	}
	return success(body, status)
}

// Stats fetches aggregate product counts. A null body decodes to nil.
func (c *Client) Stats(ctx context.Context) Result[[]models.StatEntry] {
	var body []models.StatEntry
	status, err := c.do(ctx, http.MethodGet, "/stats", nil, &body)
	if err != nil {
		return transportError[[]models.StatEntry](err, status)
	}
	return success(body, status)
}

// Recent fetches the extraction history.
func (c *Client) Recent(ctx context.Context) Result[[]models.RecentEntry] {
	var body []models.RecentEntry
	status, err := c.do(ctx, http.MethodGet, "/recent", nil, &body)
	if err != nil {
		return transportError[[]models.RecentEntry](err, status)
	}
	return success(body, status)
}

// CreateTestSet starts building an evaluation sample of sampleSize URLs.
func (c *Client) CreateTestSet(ctx context.Context, sampleSize int) Result[models.TaskResponse] {
	return c.task(ctx, "/create_test_set", models.TestSetRequest{SampleSize: sampleSize})
}

// Batch starts processing a slice of the service's URL dataset.
func (c *Client) Batch(ctx context.Context, req models.BatchRequest) Result[models.TaskResponse] {
	return c.task(ctx, "/batch", req)
}

// Metrics runs the model evaluation and returns its scores.
func (c *Client) Metrics(ctx context.Context) Result[models.MetricsResponse] {
	var body models.MetricsResponse
	status, err := c.do(ctx, http.MethodGet, "/metrics", nil, &body)
	if err != nil {
		return transportError[models.MetricsResponse](err, status)
	}
	if !body.Success {
		return appError(body, body.Error, status)
	}
	if body.Metrics == nil {
		return transportError[models.MetricsResponse](
			fmt.Errorf("%w: metrics missing from successful response", ErrTransport), status)
	}
	if body.Metrics.Error != "" {
		return appError(body, body.Metrics.Error, status)
	}
	return success(body, status)
}

func (c *Client) task(ctx context.Context, path string, payload any) Result[models.TaskResponse] {
	var body models.TaskResponse
	status, err := c.do(ctx, http.MethodPost, path, payload, &body)
	if err != nil {
		return transportError[models.TaskResponse](err, status)
	}
	if !body.Success {
		return appError(body, body.Error, status)
	}
	return success(body, status)
}

// do sends one request and decodes the JSON reply into out. The status code
// is returned but not judged: the service reports failures as JSON bodies on
// 4xx/5xx, so only an undecodable body is an error here.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) (int, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, fmt.Errorf("%w: failed to encode request: %w", ErrTransport, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reqBody)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to build request: %w", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to make HTTP request: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: failed to read response body: %w", ErrTransport, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: invalid JSON from %s (status %d): %w", ErrTransport, path, resp.StatusCode, err)
	}
	return resp.StatusCode, nil
}

func (c *Client) endpoint(path string) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	return u.String()
}
