package canvas

import (
	"context"
	"time"
)

// LayoutStore encapsulates persistence for saved dashboard layouts.
// Implementations append whole snapshots; saved records are never mutated
// in place.
type LayoutStore interface {
	Append(ctx context.Context, layout DashboardLayout) error
	LoadAll(ctx context.Context) ([]DashboardLayout, error)
}

// TemplateCatalog produces (kind, defaultConfig) pairs for AddFromTemplate.
// The engine treats default configurations opaquely.
type TemplateCatalog interface {
	Template(code string) (WidgetTemplate, bool)
	Templates() []WidgetTemplate
}

// EventHook notifies transports (REST, in-process subscribers) about canvas
// changes.
type EventHook interface {
	CanvasUpdated(ctx context.Context, event CanvasEvent) error
}

// Record is a uniformly-shaped data row attached to Chart/Table widgets.
type Record = map[string]any

// Position locates a widget's top-left corner in canvas pixel space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a widget's bounding box in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Widget is a placed, configured element on the canvas.
type Widget struct {
	ID       string       `json:"id"`
	Kind     WidgetKind   `json:"kind"`
	Title    string       `json:"title"`
	Position Position     `json:"position"`
	Size     Size         `json:"size"`
	Config   WidgetConfig `json:"config"`
	Data     []Record     `json:"data,omitempty"`
}

// Clone returns a deep copy so saved layouts never alias live widgets.
func (w Widget) Clone() Widget {
	out := w
	if w.Config != nil {
		out.Config = w.Config.clone()
	}
	if w.Data != nil {
		out.Data = make([]Record, len(w.Data))
		for i, rec := range w.Data {
			cp := make(Record, len(rec))
			for k, v := range rec {
				cp[k] = v
			}
			out.Data[i] = cp
		}
	}
	return out
}

// DashboardLayout is a named, timestamped, immutable snapshot of all widgets.
type DashboardLayout struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Widgets     []Widget  `json:"widgets"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WidgetTemplate seeds new widgets from the catalog.
type WidgetTemplate struct {
	Code          string       `json:"code" yaml:"code"`
	Kind          WidgetKind   `json:"kind" yaml:"kind"`
	Name          string       `json:"name" yaml:"name"`
	Description   string       `json:"description,omitempty" yaml:"description,omitempty"`
	Category      string       `json:"category,omitempty" yaml:"category,omitempty"`
	DefaultConfig WidgetConfig `json:"default_config,omitempty" yaml:"-"`
}

// CanvasEvent describes changes that hooks and transports might care about.
type CanvasEvent struct {
	Widget Widget
	Layout *DashboardLayout
	Reason string
}

// Session holds the ephemeral interaction state. It is never persisted with
// a layout.
type Session struct {
	SelectedWidgetID string
	Dragging         bool
	DragOffset       Position
	PreviewMode      bool
}
