package datasource

import (
	"context"
	"sync"

	canvas "github.com/goliatone/go-composer/components/canvas"
)

// MockData seeds deterministic dataset responses for tests or local demos.
type MockData struct {
	Dataset Dataset
	Series  SeriesReport
	Metric  MetricReport
}

// MockClient implements Client using in-memory fixtures.
type MockClient struct {
	data MockData
	mu   sync.RWMutex
}

// NewMockClient builds a mock dataset client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

// FetchDataset returns the configured dataset ignoring query filters.
func (c *MockClient) FetchDataset(context.Context, DatasetQuery) (Dataset, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Dataset{Name: c.data.Dataset.Name, Rows: cloneRows(c.data.Dataset.Rows)}, nil
}

// FetchSeries returns the configured series ignoring query filters.
func (c *MockClient) FetchSeries(context.Context, SeriesQuery) (SeriesReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	report := c.data.Series
	report.Rows = cloneRows(report.Rows)
	return report, nil
}

// FetchMetric returns the configured metric ignoring query filters.
func (c *MockClient) FetchMetric(context.Context, MetricQuery) (MetricReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Metric, nil
}

func cloneRows(rows []canvas.Record) []canvas.Record {
	out := make([]canvas.Record, len(rows))
	for i, row := range rows {
		clone := make(canvas.Record, len(row))
		for k, v := range row {
			clone[k] = v
		}
		out[i] = clone
	}
	return out
}
