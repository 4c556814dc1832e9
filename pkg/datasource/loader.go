package datasource

import (
	"context"
	"fmt"

	canvas "github.com/goliatone/go-composer/components/canvas"
)

// Loader pushes fetched datasets into canvas widgets.
type Loader struct {
	client Client
	engine *canvas.Engine
}

// NewLoader binds a dataset client to a canvas engine.
func NewLoader(client Client, engine *canvas.Engine) (*Loader, error) {
	if client == nil {
		return nil, fmt.Errorf("datasource: client is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("datasource: engine is required")
	}
	return &Loader{client: client, engine: engine}, nil
}

// RefreshTable fetches a dataset and attaches its rows to a table widget.
func (l *Loader) RefreshTable(ctx context.Context, widgetID string, query DatasetQuery) error {
	dataset, err := l.client.FetchDataset(ctx, query)
	if err != nil {
		return err
	}
	return l.engine.AttachData(ctx, widgetID, dataset.Rows)
}

// RefreshChart fetches a series and attaches its rows to a chart widget. When
// the upstream names an axis field it is written into the chart config so the
// renderer picks the right column.
func (l *Loader) RefreshChart(ctx context.Context, widgetID string, query SeriesQuery) error {
	report, err := l.client.FetchSeries(ctx, query)
	if err != nil {
		return err
	}
	if report.XField != "" {
		widget, ok := l.engine.Widget(widgetID)
		if !ok {
			return fmt.Errorf("datasource: widget %q not found", widgetID)
		}
		cfg, _ := widget.Config.(canvas.ChartConfig)
		if cfg.ChartType == "" {
			cfg = canvas.ChartConfig{ChartType: "line"}
		}
		cfg.XField = report.XField
		if err := l.engine.UpdateWidgetConfig(ctx, widgetID, cfg); err != nil {
			return err
		}
	}
	return l.engine.AttachData(ctx, widgetID, report.Rows)
}

// RefreshKPI fetches a metric snapshot and writes it into a KPI widget,
// keeping any trend annotation already present on the widget.
func (l *Loader) RefreshKPI(ctx context.Context, widgetID string, query MetricQuery) error {
	report, err := l.client.FetchMetric(ctx, query)
	if err != nil {
		return err
	}
	cfg := canvas.KPIConfig{Value: report.Value, Target: report.Target, Unit: report.Unit}
	if widget, ok := l.engine.Widget(widgetID); ok {
		if prev, ok := widget.Config.(canvas.KPIConfig); ok {
			cfg.Trend = prev.Trend
		}
	}
	return l.engine.UpdateWidgetConfig(ctx, widgetID, cfg)
}
