package census

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/sdoh-dashboard/internal/observability"
)

// Client fetches indicator tables from the Census Bureau data API.
// Responses are returned as the raw header-plus-rows table; normalization
// is the pipeline's job.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a Census API client with a bounded request timeout.
// An empty apiKey is valid; the API serves unauthenticated queries at a
// reduced daily limit.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// StateRows fetches one row per state for the given ACS variable:
// get=<variable>,NAME&for=state:*. The first row is the column headers.
func (c *Client) StateRows(ctx context.Context, variable, endpoint string) ([][]string, error) {
	params := url.Values{
		"get": {variable + ",NAME"},
		"for": {"state:*"},
	}
	return c.doRequest(ctx, endpoint, params, "state")
}

// CountyRows fetches one row per county of the given state:
// get=<variable>,NAME&for=county:*&in=state:<fips>.
func (c *Client) CountyRows(ctx context.Context, variable, endpoint, stateFIPS string) ([][]string, error) {
	params := url.Values{
		"get": {variable + ",NAME"},
		"for": {"county:*"},
		"in":  {"state:" + stateFIPS},
	}
	return c.doRequest(ctx, endpoint, params, "county")
}

func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, scope string) ([][]string, error) {
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	fullURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.CensusDuration.WithLabelValues(scope).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.CensusRequests.WithLabelValues(scope, "error").Inc()
		return nil, fmt.Errorf("%s request: %w", scope, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.metrics.CensusRequests.WithLabelValues(scope, "error").Inc()
		return nil, fmt.Errorf("census API error: status %d: %s", resp.StatusCode, body)
	}

	// The API answers with a JSON array of string arrays. Null cells decode
	// as empty strings, which the normalizer treats as absent values.
	var table [][]string
	if err := json.NewDecoder(resp.Body).Decode(&table); err != nil {
		c.metrics.CensusRequests.WithLabelValues(scope, "error").Inc()
		return nil, fmt.Errorf("decode response: %w", err)
	}

	c.metrics.CensusRequests.WithLabelValues(scope, "success").Inc()
	c.logger.Debug("census table fetched", "scope", scope, "rows", len(table))
	return table, nil
}
