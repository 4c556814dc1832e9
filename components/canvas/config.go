package canvas

import (
	"encoding/json"
	"fmt"
	"strings"
)

// WidgetKind discriminates the closed set of widget variants.
type WidgetKind string

const (
	KindKPI    WidgetKind = "kpi"
	KindChart  WidgetKind = "chart"
	KindTable  WidgetKind = "table"
	KindMetric WidgetKind = "metric"
)

// ParseKind normalizes and validates a widget kind string.
func ParseKind(s string) (WidgetKind, error) {
	switch WidgetKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindKPI:
		return KindKPI, nil
	case KindChart:
		return KindChart, nil
	case KindTable:
		return KindTable, nil
	case KindMetric:
		return KindMetric, nil
	default:
		return "", fmt.Errorf("canvas: unknown widget kind %q", s)
	}
}

// WidgetConfig is the kind-specific configuration payload. One variant per
// widget kind, selected by the Kind discriminant.
type WidgetConfig interface {
	Kind() WidgetKind
	clone() WidgetConfig
}

// KPIConfig configures a KPI card.
type KPIConfig struct {
	Value  float64 `json:"value" yaml:"value"`
	Target float64 `json:"target" yaml:"target"`
	Unit   string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	Trend  string  `json:"trend,omitempty" yaml:"trend,omitempty"`
}

func (KPIConfig) Kind() WidgetKind { return KindKPI }

func (c KPIConfig) clone() WidgetConfig { return c }

// ChartConfig configures a chart widget. Axis mappings reference dataset
// field keys; rendering is delegated to the chart renderer.
type ChartConfig struct {
	ChartType string   `json:"chart_type" yaml:"chart_type"`
	XField    string   `json:"x_field,omitempty" yaml:"x_field,omitempty"`
	YFields   []string `json:"y_fields,omitempty" yaml:"y_fields,omitempty"`
	Stacked   bool     `json:"stacked,omitempty" yaml:"stacked,omitempty"`
}

func (ChartConfig) Kind() WidgetKind { return KindChart }

func (c ChartConfig) clone() WidgetConfig {
	out := c
	out.YFields = append([]string(nil), c.YFields...)
	return out
}

// TableConfig configures the table widget and its behavior flags.
type TableConfig struct {
	Columns     []string `json:"columns" yaml:"columns"`
	Sortable    bool     `json:"sortable,omitempty" yaml:"sortable,omitempty"`
	Paginated   bool     `json:"paginated,omitempty" yaml:"paginated,omitempty"`
	Highlighted bool     `json:"highlighted,omitempty" yaml:"highlighted,omitempty"`
	Searchable  bool     `json:"searchable,omitempty" yaml:"searchable,omitempty"`
}

func (TableConfig) Kind() WidgetKind { return KindTable }

func (c TableConfig) clone() WidgetConfig {
	out := c
	out.Columns = append([]string(nil), c.Columns...)
	return out
}

// MetricConfig configures a single-value metric tile.
type MetricConfig struct {
	Value   float64 `json:"value" yaml:"value"`
	Unit    string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	Caption string  `json:"caption,omitempty" yaml:"caption,omitempty"`
}

func (MetricConfig) Kind() WidgetKind { return KindMetric }

func (c MetricConfig) clone() WidgetConfig { return c }

// DefaultConfig returns the zero configuration for a kind.
func DefaultConfig(kind WidgetKind) WidgetConfig {
	switch kind {
	case KindKPI:
		return KPIConfig{}
	case KindChart:
		return ChartConfig{ChartType: "line"}
	case KindTable:
		return TableConfig{Columns: []string{"Name", "Status", "Progress"}, Sortable: true, Paginated: true}
	case KindMetric:
		return MetricConfig{}
	default:
		return nil
	}
}

type configEnvelope struct {
	Kind    WidgetKind      `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// MarshalJSON encodes the widget with its config wrapped in a kind-tagged
// envelope so decoding can pick the right variant.
func (w Widget) MarshalJSON() ([]byte, error) {
	type alias Widget
	shadow := struct {
		alias
		Config *configEnvelope `json:"config,omitempty"`
	}{alias: alias(w)}
	shadow.alias.Config = nil
	if w.Config != nil {
		payload, err := json.Marshal(w.Config)
		if err != nil {
			return nil, fmt.Errorf("canvas: marshal %s config: %w", w.Kind, err)
		}
		shadow.Config = &configEnvelope{Kind: w.Config.Kind(), Payload: payload}
	}
	return json.Marshal(shadow)
}

// UnmarshalJSON decodes the kind-tagged config envelope back into the
// matching variant.
func (w *Widget) UnmarshalJSON(data []byte) error {
	type alias Widget
	shadow := struct {
		*alias
		Config *configEnvelope `json:"config,omitempty"`
	}{alias: (*alias)(w)}
	if err := json.Unmarshal(data, &shadow); err != nil {
		return err
	}
	w.Config = nil
	if shadow.Config == nil {
		return nil
	}
	cfg, err := decodeConfig(shadow.Config.Kind, shadow.Config.Payload)
	if err != nil {
		return err
	}
	w.Config = cfg
	return nil
}

func decodeConfig(kind WidgetKind, payload json.RawMessage) (WidgetConfig, error) {
	decode := func(dst any) error {
		if len(payload) == 0 {
			return nil
		}
		return json.Unmarshal(payload, dst)
	}
	switch kind {
	case KindKPI:
		var cfg KPIConfig
		if err := decode(&cfg); err != nil {
			return nil, fmt.Errorf("canvas: decode kpi config: %w", err)
		}
		return cfg, nil
	case KindChart:
		var cfg ChartConfig
		if err := decode(&cfg); err != nil {
			return nil, fmt.Errorf("canvas: decode chart config: %w", err)
		}
		return cfg, nil
	case KindTable:
		var cfg TableConfig
		if err := decode(&cfg); err != nil {
			return nil, fmt.Errorf("canvas: decode table config: %w", err)
		}
		return cfg, nil
	case KindMetric:
		var cfg MetricConfig
		if err := decode(&cfg); err != nil {
			return nil, fmt.Errorf("canvas: decode metric config: %w", err)
		}
		return cfg, nil
	default:
		return nil, fmt.Errorf("canvas: unknown config kind %q", kind)
	}
}

// ParseConfig decodes an untyped configuration map into the kind's config
// variant. A nil map yields the kind's default configuration.
func ParseConfig(kind WidgetKind, payload map[string]any) (WidgetConfig, error) {
	parsed, err := ParseKind(string(kind))
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return DefaultConfig(parsed), nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("canvas: encode %s config: %w", parsed, err)
	}
	return decodeConfig(parsed, data)
}

// ConfigToMap flattens a config into the generic map shape jsonschema
// validation expects.
func ConfigToMap(cfg WidgetConfig) (map[string]any, error) {
	if cfg == nil {
		return map[string]any{}, nil
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("canvas: marshal %s config: %w", cfg.Kind(), err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("canvas: normalize %s config: %w", cfg.Kind(), err)
	}
	return out, nil
}
