package canvas

const (
	// DefaultGridUnit is the snap grid used by drag moves.
	DefaultGridUnit = 20.0
	// DefaultCanvasWidth and DefaultCanvasHeight bound widget placement.
	DefaultCanvasWidth  = 1200.0
	DefaultCanvasHeight = 800.0
)

var (
	defaultWidgetPosition = Position{X: 20, Y: 20}
	defaultWidgetSize     = Size{Width: 280, Height: 160}
)

var defaultKindSchemas = map[WidgetKind]map[string]any{
	KindKPI: {
		"type":     "object",
		"required": []string{"value"},
		"properties": map[string]any{
			"value":  map[string]any{"type": "number"},
			"target": map[string]any{"type": "number"},
			"unit":   map[string]any{"type": "string"},
			"trend":  map[string]any{"type": "string", "enum": []string{"up", "down", "flat"}},
		},
	},
	KindChart: {
		"type":     "object",
		"required": []string{"chart_type"},
		"properties": map[string]any{
			"chart_type": map[string]any{"type": "string", "enum": []string{"line", "bar", "pie"}},
			"x_field":    map[string]any{"type": "string"},
			"y_fields":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"stacked":    map[string]any{"type": "boolean"},
		},
	},
	KindTable: {
		"type":     "object",
		"required": []string{"columns"},
		"properties": map[string]any{
			"columns":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 1},
			"sortable":    map[string]any{"type": "boolean"},
			"paginated":   map[string]any{"type": "boolean"},
			"highlighted": map[string]any{"type": "boolean"},
			"searchable":  map[string]any{"type": "boolean"},
		},
	},
	KindMetric: {
		"type":     "object",
		"required": []string{"value"},
		"properties": map[string]any{
			"value":   map[string]any{"type": "number"},
			"unit":    map[string]any{"type": "string"},
			"caption": map[string]any{"type": "string"},
		},
	},
}

// KindSchema returns the JSON schema for a widget kind's configuration.
func KindSchema(kind WidgetKind) (map[string]any, bool) {
	schema, ok := defaultKindSchemas[kind]
	return schema, ok
}

var defaultTemplates = []WidgetTemplate{
	{
		Code:        "composer.template.revenue_kpi",
		Kind:        KindKPI,
		Name:        "Revenue KPI",
		Description: "Revenue against target with trend arrow",
		Category:    "kpi",
		DefaultConfig: KPIConfig{
			Value:  125000,
			Target: 150000,
			Unit:   "USD",
			Trend:  "up",
		},
	},
	{
		Code:        "composer.template.sales_chart",
		Kind:        KindChart,
		Name:        "Sales Chart",
		Description: "Monthly sales line chart",
		Category:    "charts",
		DefaultConfig: ChartConfig{
			ChartType: "line",
			XField:    "month",
			YFields:   []string{"sales"},
		},
	},
	{
		Code:        "composer.template.projects_table",
		Kind:        KindTable,
		Name:        "Projects Table",
		Description: "Project roster with status and progress",
		Category:    "tables",
		DefaultConfig: TableConfig{
			Columns:     []string{"Name", "Status", "Progress"},
			Sortable:    true,
			Paginated:   true,
			Highlighted: true,
			Searchable:  true,
		},
	},
	{
		Code:        "composer.template.uptime_metric",
		Kind:        KindMetric,
		Name:        "Uptime Metric",
		Description: "Single-value uptime tile",
		Category:    "metrics",
		DefaultConfig: MetricConfig{
			Value:   99.95,
			Unit:    "%",
			Caption: "30 day uptime",
		},
	},
}

// DefaultTemplates returns copies of the built-in catalog entries.
func DefaultTemplates() []WidgetTemplate {
	out := make([]WidgetTemplate, len(defaultTemplates))
	copy(out, defaultTemplates)
	for i := range out {
		if out[i].DefaultConfig != nil {
			out[i].DefaultConfig = out[i].DefaultConfig.clone()
		}
	}
	return out
}
