package canvas

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	errMissingLayoutStore = errors.New("canvas: layout store not configured")
	errInvalidKind        = errors.New("canvas: widget kind is required")
	errInvalidDimension   = errors.New("canvas: width and height must be positive numbers")
	errInvalidCoordinate  = errors.New("canvas: position must be a finite number")
	errLayoutName         = errors.New("canvas: layout name is required")
)

// Options configures the canvas Engine. Every collaborator is provided via
// interface so applications can swap implementations without importing
// internal go-composer packages.
type Options struct {
	LayoutStore     LayoutStore
	Catalog         TemplateCatalog
	ConfigValidator ConfigValidator
	EventHook       EventHook
	Telemetry       Telemetry

	CanvasWidth  float64
	CanvasHeight float64
	GridUnit     float64

	// Clock and IDs exist so tests can pin time and identifiers.
	Clock func() time.Time
	IDs   func() string
}

// Engine owns the ordered widget list and the interactive session state.
// Operations run synchronously to completion in response to discrete input
// events; callers invoke the engine from a single goroutine.
type Engine struct {
	opts    Options
	widgets []Widget
	session Session
}

// NewEngine builds an Engine with safe defaults.
func NewEngine(opts Options) *Engine {
	if opts.EventHook == nil {
		opts.EventHook = noopEventHook{}
	}
	if opts.ConfigValidator == nil {
		opts.ConfigValidator = NewJSONSchemaValidator()
	}
	if opts.Catalog == nil {
		opts.Catalog = NewTemplateRegistry()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.CanvasWidth <= 0 {
		opts.CanvasWidth = DefaultCanvasWidth
	}
	if opts.CanvasHeight <= 0 {
		opts.CanvasHeight = DefaultCanvasHeight
	}
	if opts.GridUnit <= 0 {
		opts.GridUnit = DefaultGridUnit
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.IDs == nil {
		opts.IDs = uuid.NewString
	}
	return &Engine{opts: opts}
}

// AddWidgetRequest captures the data required to place a new widget.
type AddWidgetRequest struct {
	Kind   WidgetKind
	Title  string
	Config WidgetConfig
	Data   []Record
}

// AddWidget constructs a widget with a fresh id at the default position and
// size, then appends it to the canvas.
func (e *Engine) AddWidget(ctx context.Context, req AddWidgetRequest) (Widget, error) {
	kind, err := ParseKind(string(req.Kind))
	if err != nil {
		return Widget{}, err
	}
	cfg := req.Config
	if cfg == nil {
		cfg = DefaultConfig(kind)
	}
	if cfg.Kind() != kind {
		return Widget{}, fmt.Errorf("canvas: %s config supplied for %s widget", cfg.Kind(), kind)
	}
	if err := e.validateConfig(cfg); err != nil {
		return Widget{}, err
	}
	title := req.Title
	if title == "" {
		title = fmt.Sprintf("new %s widget", kind)
	}
	widget := Widget{
		ID:       e.opts.IDs(),
		Kind:     kind,
		Title:    title,
		Position: defaultWidgetPosition,
		Size:     defaultWidgetSize,
		Config:   cfg,
		Data:     req.Data,
	}
	e.widgets = append(e.widgets, widget)
	if err := e.emit(ctx, CanvasEvent{Widget: widget, Reason: "add"}); err != nil {
		return widget, err
	}
	e.record(ctx, "canvas.widget.add", map[string]any{
		"widget_id": widget.ID,
		"kind":      string(kind),
	})
	return widget, nil
}

// AddFromTemplate places a widget seeded from a catalog template.
func (e *Engine) AddFromTemplate(ctx context.Context, code string) (Widget, error) {
	tpl, ok := e.opts.Catalog.Template(code)
	if !ok {
		return Widget{}, fmt.Errorf("canvas: template %q not found", code)
	}
	return e.AddWidget(ctx, AddWidgetRequest{
		Kind:   tpl.Kind,
		Title:  tpl.Name,
		Config: tpl.DefaultConfig,
	})
}

// DeleteWidget removes the widget with that id. Absent ids are absorbed as
// no-ops; the selection is cleared when it pointed at the removed widget.
func (e *Engine) DeleteWidget(ctx context.Context, id string) error {
	idx := e.indexOf(id)
	if idx < 0 {
		return nil
	}
	removed := e.widgets[idx]
	e.widgets = append(e.widgets[:idx], e.widgets[idx+1:]...)
	if e.session.SelectedWidgetID == id {
		e.session.SelectedWidgetID = ""
		e.session.Dragging = false
		e.session.DragOffset = Position{}
	}
	if err := e.emit(ctx, CanvasEvent{Widget: removed, Reason: "delete"}); err != nil {
		return err
	}
	e.record(ctx, "canvas.widget.remove", map[string]any{"widget_id": id})
	return nil
}

// ResizeWidget replaces the widget's size. The position is deliberately not
// re-clamped: a resize may extend a widget past the canvas edge, unlike drag
// moves. Non-positive or non-finite dimensions are rejected without mutating
// state.
func (e *Engine) ResizeWidget(ctx context.Context, id string, size Size) error {
	if !validCoordinate(size.Width) || !validCoordinate(size.Height) ||
		size.Width <= 0 || size.Height <= 0 {
		return errInvalidDimension
	}
	idx := e.indexOf(id)
	if idx < 0 {
		return nil
	}
	e.widgets[idx].Size = size
	if err := e.emit(ctx, CanvasEvent{Widget: e.widgets[idx], Reason: "resize"}); err != nil {
		return err
	}
	e.record(ctx, "canvas.widget.resize", map[string]any{"widget_id": id})
	return nil
}

// RetitleWidget updates the display title unconditionally.
func (e *Engine) RetitleWidget(ctx context.Context, id, title string) error {
	idx := e.indexOf(id)
	if idx < 0 {
		return nil
	}
	e.widgets[idx].Title = title
	if err := e.emit(ctx, CanvasEvent{Widget: e.widgets[idx], Reason: "retitle"}); err != nil {
		return err
	}
	e.record(ctx, "canvas.widget.retitle", map[string]any{"widget_id": id})
	return nil
}

// SetWidgetPosition applies a direct numeric edit from the side panel. It
// neither snaps nor clamps; only the drag path does. Non-finite coordinates
// are rejected without mutating state.
func (e *Engine) SetWidgetPosition(ctx context.Context, id string, pos Position) error {
	if !validCoordinate(pos.X) || !validCoordinate(pos.Y) {
		return errInvalidCoordinate
	}
	idx := e.indexOf(id)
	if idx < 0 {
		return nil
	}
	e.widgets[idx].Position = pos
	if err := e.emit(ctx, CanvasEvent{Widget: e.widgets[idx], Reason: "move"}); err != nil {
		return err
	}
	e.record(ctx, "canvas.widget.move", map[string]any{"widget_id": id})
	return nil
}

// UpdateWidgetConfig swaps the kind-specific configuration after validating
// it against the widget's kind.
func (e *Engine) UpdateWidgetConfig(ctx context.Context, id string, cfg WidgetConfig) error {
	idx := e.indexOf(id)
	if idx < 0 {
		return nil
	}
	if cfg == nil || cfg.Kind() != e.widgets[idx].Kind {
		return fmt.Errorf("canvas: config kind mismatch for widget %s", id)
	}
	if err := e.validateConfig(cfg); err != nil {
		return err
	}
	e.widgets[idx].Config = cfg
	if err := e.emit(ctx, CanvasEvent{Widget: e.widgets[idx], Reason: "configure"}); err != nil {
		return err
	}
	e.record(ctx, "canvas.widget.configure", map[string]any{"widget_id": id})
	return nil
}

// AttachData replaces the dataset backing a Chart/Table widget.
func (e *Engine) AttachData(ctx context.Context, id string, data []Record) error {
	idx := e.indexOf(id)
	if idx < 0 {
		return nil
	}
	e.widgets[idx].Data = data
	if err := e.emit(ctx, CanvasEvent{Widget: e.widgets[idx], Reason: "data"}); err != nil {
		return err
	}
	e.record(ctx, "canvas.widget.data", map[string]any{
		"widget_id": id,
		"records":   len(data),
	})
	return nil
}

// SelectWidget marks a widget as selected; unknown ids are absorbed.
func (e *Engine) SelectWidget(id string) {
	if e.indexOf(id) < 0 {
		return
	}
	e.session.SelectedWidgetID = id
}

// ClearSelection drops the current selection.
func (e *Engine) ClearSelection() {
	e.session.SelectedWidgetID = ""
}

// SetPreviewMode toggles preview mode, which disables every mutation entry
// point reachable from drag interactions.
func (e *Engine) SetPreviewMode(on bool) {
	e.session.PreviewMode = on
}

// SaveLayout snapshots the current widget list into a new immutable layout
// record and appends it to the layout store. Each save creates a new record;
// existing layouts are never updated in place.
func (e *Engine) SaveLayout(ctx context.Context, name, description string) (DashboardLayout, error) {
	if e.opts.LayoutStore == nil {
		return DashboardLayout{}, errMissingLayoutStore
	}
	if name == "" {
		return DashboardLayout{}, errLayoutName
	}
	now := e.opts.Clock().UTC()
	layout := DashboardLayout{
		ID:          e.opts.IDs(),
		Name:        name,
		Description: description,
		Widgets:     e.Widgets(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := e.opts.LayoutStore.Append(ctx, layout); err != nil {
		return DashboardLayout{}, fmt.Errorf("canvas: save layout %q: %w", name, err)
	}
	if err := e.emit(ctx, CanvasEvent{Layout: &layout, Reason: "save"}); err != nil {
		return layout, err
	}
	e.record(ctx, "canvas.layout.save", map[string]any{
		"layout_id": layout.ID,
		"widgets":   len(layout.Widgets),
	})
	return layout, nil
}

// Layouts returns every saved layout in append order.
func (e *Engine) Layouts(ctx context.Context) ([]DashboardLayout, error) {
	if e.opts.LayoutStore == nil {
		return nil, errMissingLayoutStore
	}
	return e.opts.LayoutStore.LoadAll(ctx)
}

// Widgets returns a deep copy of the current widget list.
func (e *Engine) Widgets() []Widget {
	out := make([]Widget, len(e.widgets))
	for i, w := range e.widgets {
		out[i] = w.Clone()
	}
	return out
}

// Widget fetches a copy of a single widget by id.
func (e *Engine) Widget(id string) (Widget, bool) {
	idx := e.indexOf(id)
	if idx < 0 {
		return Widget{}, false
	}
	return e.widgets[idx].Clone(), true
}

// Session exposes the current interaction state.
func (e *Engine) Session() Session {
	return e.session
}

// Geometry reports the configured canvas bounds and grid unit.
func (e *Engine) Geometry() (canvas Size, grid float64) {
	return Size{Width: e.opts.CanvasWidth, Height: e.opts.CanvasHeight}, e.opts.GridUnit
}

func (e *Engine) indexOf(id string) int {
	for i := range e.widgets {
		if e.widgets[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) validateConfig(cfg WidgetConfig) error {
	if e.opts.ConfigValidator == nil {
		return nil
	}
	return e.opts.ConfigValidator.Validate(cfg)
}

func (e *Engine) emit(ctx context.Context, event CanvasEvent) error {
	return e.opts.EventHook.CanvasUpdated(ctx, event)
}

func (e *Engine) record(ctx context.Context, event string, payload map[string]any) {
	e.opts.Telemetry.Record(ctx, event, payload)
}

type noopEventHook struct{}

func (noopEventHook) CanvasUpdated(context.Context, CanvasEvent) error { return nil }
