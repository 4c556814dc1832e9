package datasource

import (
	"context"

	canvas "github.com/goliatone/go-composer/components/canvas"
)

// DatasetQuery selects a named tabular dataset from an upstream service.
type DatasetQuery struct {
	Name   string
	Limit  int
	Filter map[string]string
}

// Dataset is the tabular payload backing a table widget.
type Dataset struct {
	Name string
	Rows []canvas.Record
}

// SeriesQuery selects a named time or category series for chart widgets.
type SeriesQuery struct {
	Name   string
	Range  string
	Fields []string
}

// SeriesReport carries chart rows plus the field holding axis labels.
type SeriesReport struct {
	Name   string
	XField string
	Rows   []canvas.Record
}

// MetricQuery selects a single KPI snapshot.
type MetricQuery struct {
	Name  string
	Range string
}

// MetricReport is a point-in-time KPI reading.
type MetricReport struct {
	Name   string
	Value  float64
	Target float64
	Unit   string
}

// DatasetClient fetches tabular datasets from upstream data services.
type DatasetClient interface {
	FetchDataset(ctx context.Context, query DatasetQuery) (Dataset, error)
}

// SeriesClient fetches chart series from BI systems.
type SeriesClient interface {
	FetchSeries(ctx context.Context, query SeriesQuery) (SeriesReport, error)
}

// MetricClient fetches KPI snapshots from metrics providers.
type MetricClient interface {
	FetchMetric(ctx context.Context, query MetricQuery) (MetricReport, error)
}

// Client is a convenience union for services that implement all dataset calls.
type Client interface {
	DatasetClient
	SeriesClient
	MetricClient
}
