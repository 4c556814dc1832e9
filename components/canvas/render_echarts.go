package canvas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

var sharedChartCache = NewChartCache(5 * time.Minute)

// ChartRenderer converts a chart widget's configuration and dataset into
// go-echarts markup. It satisfies the rendering contract: the engine hands
// over config + data and never inspects the produced visual.
type ChartRenderer struct {
	cache RenderCache
	theme string
}

// ChartRendererOption customizes renderer behavior.
type ChartRendererOption func(*ChartRenderer)

// WithRenderCache injects a render cache.
func WithRenderCache(cache RenderCache) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets the echarts theme (defaults to Westeros).
func WithChartTheme(theme string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.theme = theme
	}
}

// NewChartRenderer builds a renderer with shared cache defaults.
func NewChartRenderer(options ...ChartRendererOption) *ChartRenderer {
	r := &ChartRenderer{
		cache: sharedChartCache,
		theme: types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Render produces chart HTML sized to exactly the widget's bounding box.
func (r *ChartRenderer) Render(widget Widget) (string, error) {
	cfg, ok := widget.Config.(ChartConfig)
	if !ok {
		return "", fmt.Errorf("canvas: widget %s is not a chart", widget.ID)
	}
	if len(widget.Data) == 0 {
		return "", fmt.Errorf("canvas: chart widget %s requires a dataset", widget.ID)
	}
	renderFn := func() (string, error) {
		return r.render(widget, cfg)
	}
	if r.cache != nil {
		key := fmt.Sprintf("%s:%s:%s", widget.ID, cfg.ChartType, configHash(widget))
		return r.cache.GetOrRender(key, renderFn)
	}
	return renderFn()
}

func (r *ChartRenderer) render(widget Widget, cfg ChartConfig) (string, error) {
	xAxis, series := splitSeries(widget.Data, cfg)
	if len(series) == 0 {
		return "", fmt.Errorf("canvas: chart widget %s has no series fields", widget.ID)
	}
	switch cfg.ChartType {
	case "bar":
		bar := charts.NewBar()
		bar.SetGlobalOptions(r.globalOptions(widget)...)
		bar.SetXAxis(xAxis)
		for name, values := range series {
			bar.AddSeries(name, toBarData(values))
		}
		return renderChart(bar)
	case "line":
		line := charts.NewLine()
		line.SetGlobalOptions(r.globalOptions(widget)...)
		line.SetXAxis(xAxis)
		for name, values := range series {
			line.AddSeries(name, toLineData(values))
		}
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return renderChart(line)
	case "pie":
		pie := charts.NewPie()
		pie.SetGlobalOptions(r.globalOptions(widget)...)
		for name, values := range series {
			pie.AddSeries(name, toPieData(xAxis, values))
		}
		return renderChart(pie)
	default:
		return "", fmt.Errorf("canvas: unsupported chart type %q", cfg.ChartType)
	}
}

func (r *ChartRenderer) globalOptions(widget Widget) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: widget.Title}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  r.theme,
			Width:  fmt.Sprintf("%dpx", int(widget.Size.Width)),
			Height: fmt.Sprintf("%dpx", int(widget.Size.Height)),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

// splitSeries pulls the x-axis labels and one numeric series per configured
// y-field out of the widget dataset.
func splitSeries(data []Record, cfg ChartConfig) ([]string, map[string][]float64) {
	xAxis := make([]string, 0, len(data))
	series := make(map[string][]float64, len(cfg.YFields))
	fields := cfg.YFields
	if len(fields) == 0 {
		fields = inferNumericFields(data, cfg.XField)
	}
	for _, rec := range data {
		xAxis = append(xAxis, stringify(rec[cfg.XField]))
		for _, field := range fields {
			series[field] = append(series[field], numericValue(rec[field]))
		}
	}
	return xAxis, series
}

func inferNumericFields(data []Record, xField string) []string {
	if len(data) == 0 {
		return nil
	}
	var fields []string
	for key, value := range data[0] {
		if key == xField {
			continue
		}
		if _, ok := asNumber(value); ok {
			fields = append(fields, key)
		}
	}
	return fields
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	if n, ok := asNumber(v); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}

func numericValue(v any) float64 {
	n, _ := asNumber(v)
	return n
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func toBarData(values []float64) []opts.BarData {
	data := make([]opts.BarData, len(values))
	for i, v := range values {
		data[i] = opts.BarData{Value: v}
	}
	return data
}

func toLineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		data[i] = opts.LineData{Value: v}
	}
	return data
}

func toPieData(labels []string, values []float64) []opts.PieData {
	data := make([]opts.PieData, len(values))
	for i, v := range values {
		name := ""
		if i < len(labels) {
			name = labels[i]
		}
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		data[i] = opts.PieData{Name: name, Value: v}
	}
	return data
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
