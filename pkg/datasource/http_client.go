package datasource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	canvas "github.com/goliatone/go-composer/components/canvas"
)

// HTTPConfig configures the HTTP dataset client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient talks to remote data services via REST endpoints.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a client capable of hitting live dataset APIs.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("datasource: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// FetchDataset implements DatasetClient by calling the remote datasets endpoint.
func (c *HTTPClient) FetchDataset(ctx context.Context, query DatasetQuery) (Dataset, error) {
	req := datasetRequest{
		Name:   query.Name,
		Limit:  query.Limit,
		Filter: query.Filter,
	}
	var resp datasetResponse
	if err := c.do(ctx, http.MethodPost, "/datasets/query", req, &resp); err != nil {
		return Dataset{}, err
	}
	return resp.toDataset(), nil
}

// FetchSeries implements SeriesClient via the series endpoint.
func (c *HTTPClient) FetchSeries(ctx context.Context, query SeriesQuery) (SeriesReport, error) {
	req := seriesRequest{
		Name:   query.Name,
		Range:  query.Range,
		Fields: query.Fields,
	}
	var resp seriesResponse
	if err := c.do(ctx, http.MethodPost, "/series/query", req, &resp); err != nil {
		return SeriesReport{}, err
	}
	return resp.toReport(), nil
}

// FetchMetric implements MetricClient via the metrics endpoint.
func (c *HTTPClient) FetchMetric(ctx context.Context, query MetricQuery) (MetricReport, error) {
	req := metricRequest{
		Name:  query.Name,
		Range: query.Range,
	}
	var resp metricResponse
	if err := c.do(ctx, http.MethodPost, "/metrics/query", req, &resp); err != nil {
		return MetricReport{}, err
	}
	return resp.toReport(), nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("datasource: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("datasource: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("datasource: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("datasource: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("datasource: decode response: %w", err)
	}
	return nil
}

type datasetRequest struct {
	Name   string            `json:"name"`
	Limit  int               `json:"limit,omitempty"`
	Filter map[string]string `json:"filter,omitempty"`
}

type datasetResponse struct {
	Name string          `json:"name"`
	Rows []canvas.Record `json:"rows"`
}

func (r datasetResponse) toDataset() Dataset {
	rows := make([]canvas.Record, len(r.Rows))
	for i, row := range r.Rows {
		out := make(canvas.Record, len(row))
		for k, v := range row {
			out[k] = v
		}
		rows[i] = out
	}
	return Dataset{Name: r.Name, Rows: rows}
}

type seriesRequest struct {
	Name   string   `json:"name"`
	Range  string   `json:"range,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

type seriesResponse struct {
	Name   string          `json:"name"`
	XField string          `json:"x_field"`
	Rows   []canvas.Record `json:"rows"`
}

func (r seriesResponse) toReport() SeriesReport {
	rows := make([]canvas.Record, len(r.Rows))
	for i, row := range r.Rows {
		out := make(canvas.Record, len(row))
		for k, v := range row {
			out[k] = v
		}
		rows[i] = out
	}
	return SeriesReport{Name: r.Name, XField: r.XField, Rows: rows}
}

type metricRequest struct {
	Name  string `json:"name"`
	Range string `json:"range,omitempty"`
}

type metricResponse struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Target float64 `json:"target"`
	Unit   string  `json:"unit"`
}

func (r metricResponse) toReport() MetricReport {
	return MetricReport{Name: r.Name, Value: r.Value, Target: r.Target, Unit: r.Unit}
}
