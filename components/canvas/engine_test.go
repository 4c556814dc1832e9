package canvas

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func newTestEngine(opts Options) *Engine {
	if opts.IDs == nil {
		seq := 0
		opts.IDs = func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}
	}
	if opts.Clock == nil {
		opts.Clock = func() time.Time {
			return time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
		}
	}
	return NewEngine(opts)
}

type recordingHook struct {
	events []CanvasEvent
	err    error
}

func (h *recordingHook) CanvasUpdated(_ context.Context, event CanvasEvent) error {
	h.events = append(h.events, event)
	return h.err
}

func TestAddWidgetAppliesDefaults(t *testing.T) {
	engine := newTestEngine(Options{})
	widget, err := engine.AddWidget(context.Background(), AddWidgetRequest{Kind: KindKPI})
	if err != nil {
		t.Fatalf("AddWidget returned error: %v", err)
	}
	if widget.ID != "id-1" {
		t.Fatalf("expected generated id, got %q", widget.ID)
	}
	if widget.Title != "new kpi widget" {
		t.Fatalf("expected placeholder title, got %q", widget.Title)
	}
	if widget.Position != (Position{X: 20, Y: 20}) {
		t.Fatalf("expected default position, got %#v", widget.Position)
	}
	if widget.Size != (Size{Width: 280, Height: 160}) {
		t.Fatalf("expected default size, got %#v", widget.Size)
	}
	if widget.Config == nil || widget.Config.Kind() != KindKPI {
		t.Fatalf("expected default kpi config, got %#v", widget.Config)
	}
}

func TestAddWidgetRejectsUnknownKind(t *testing.T) {
	engine := newTestEngine(Options{})
	if _, err := engine.AddWidget(context.Background(), AddWidgetRequest{Kind: "gauge"}); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if len(engine.Widgets()) != 0 {
		t.Fatalf("expected empty canvas after rejection, got %d widgets", len(engine.Widgets()))
	}
}

func TestAddWidgetRejectsKindConfigMismatch(t *testing.T) {
	engine := newTestEngine(Options{})
	_, err := engine.AddWidget(context.Background(), AddWidgetRequest{
		Kind:   KindTable,
		Config: KPIConfig{Value: 10},
	})
	if err == nil {
		t.Fatal("expected error for mismatched config kind")
	}
}

func TestAddWidgetPreservesInsertionOrder(t *testing.T) {
	engine := newTestEngine(Options{})
	ctx := context.Background()
	first, err := engine.AddWidget(ctx, AddWidgetRequest{Kind: KindKPI, Title: "X"})
	if err != nil {
		t.Fatalf("AddWidget returned error: %v", err)
	}
	if _, err := engine.AddWidget(ctx, AddWidgetRequest{Kind: KindMetric, Title: "Y"}); err != nil {
		t.Fatalf("AddWidget returned error: %v", err)
	}
	if err := engine.DeleteWidget(ctx, first.ID); err != nil {
		t.Fatalf("DeleteWidget returned error: %v", err)
	}
	widgets := engine.Widgets()
	if len(widgets) != 1 || widgets[0].Title != "Y" {
		t.Fatalf("expected only Y to remain, got %#v", widgets)
	}
}

func TestAddFromTemplateSeedsWidget(t *testing.T) {
	engine := newTestEngine(Options{Catalog: NewTemplateRegistry()})
	widget, err := engine.AddFromTemplate(context.Background(), "composer.template.sales_chart")
	if err != nil {
		t.Fatalf("AddFromTemplate returned error: %v", err)
	}
	if widget.Kind != KindChart {
		t.Fatalf("expected chart widget, got %s", widget.Kind)
	}
	if widget.Title == "" || widget.Title == "new chart widget" {
		t.Fatalf("expected template name as title, got %q", widget.Title)
	}
}

func TestAddFromTemplateUnknownCode(t *testing.T) {
	engine := newTestEngine(Options{})
	if _, err := engine.AddFromTemplate(context.Background(), "composer.template.missing"); err == nil {
		t.Fatal("expected error for unknown template code")
	}
}

func TestDeleteWidgetAbsorbsUnknownID(t *testing.T) {
	engine := newTestEngine(Options{})
	if err := engine.DeleteWidget(context.Background(), "nope"); err != nil {
		t.Fatalf("expected nil for unknown id, got %v", err)
	}
}

func TestDeleteWidgetClearsSelection(t *testing.T) {
	engine := newTestEngine(Options{})
	ctx := context.Background()
	widget, err := engine.AddWidget(ctx, AddWidgetRequest{Kind: KindKPI})
	if err != nil {
		t.Fatalf("AddWidget returned error: %v", err)
	}
	engine.SelectWidget(widget.ID)
	engine.BeginDrag(ctx, widget.ID, Position{X: 30, Y: 30})
	if err := engine.DeleteWidget(ctx, widget.ID); err != nil {
		t.Fatalf("DeleteWidget returned error: %v", err)
	}
	session := engine.Session()
	if session.SelectedWidgetID != "" || session.Dragging {
		t.Fatalf("expected cleared session, got %#v", session)
	}
}

func TestAddDeleteRestoresCanvas(t *testing.T) {
	engine := newTestEngine(Options{})
	ctx := context.Background()
	before := engine.Widgets()
	widget, err := engine.AddWidget(ctx, AddWidgetRequest{Kind: KindTable})
	if err != nil {
		t.Fatalf("AddWidget returned error: %v", err)
	}
	if err := engine.DeleteWidget(ctx, widget.ID); err != nil {
		t.Fatalf("DeleteWidget returned error: %v", err)
	}
	after := engine.Widgets()
	if len(before) != len(after) {
		t.Fatalf("expected canvas restored, got %d widgets", len(after))
	}
}

func TestResizeWidgetRejectsBadDimensions(t *testing.T) {
	engine := newTestEngine(Options{})
	ctx := context.Background()
	widget, err := engine.AddWidget(ctx, AddWidgetRequest{Kind: KindMetric})
	if err != nil {
		t.Fatalf("AddWidget returned error: %v", err)
	}
	for _, size := range []Size{
		{Width: 0, Height: 100},
		{Width: 100, Height: -5},
		{Width: nan(), Height: 100},
		{Width: 100, Height: inf()},
	} {
		if err := engine.ResizeWidget(ctx, widget.ID, size); !errors.Is(err, errInvalidDimension) {
			t.Fatalf("size %#v: expected dimension error, got %v", size, err)
		}
	}
	got, _ := engine.Widget(widget.ID)
	if got.Size != defaultWidgetSize {
		t.Fatalf("expected size untouched after rejections, got %#v", got.Size)
	}
}

func TestResizeWidgetDoesNotReclampPosition(t *testing.T) {
	engine := newTestEngine(Options{CanvasWidth: 400, CanvasHeight: 400})
	ctx := context.Background()
	widget, err := engine.AddWidget(ctx, AddWidgetRequest{Kind: KindKPI})
	if err != nil {
		t.Fatalf("AddWidget returned error: %v", err)
	}
	if err := engine.SetWidgetPosition(ctx, widget.ID, Position{X: 300, Y: 300}); err != nil {
		t.Fatalf("SetWidgetPosition returned error: %v", err)
	}
	if err := engine.ResizeWidget(ctx, widget.ID, Size{Width: 200, Height: 200}); err != nil {
		t.Fatalf("ResizeWidget returned error: %v", err)
	}
	got, _ := engine.Widget(widget.ID)
	if got.Position != (Position{X: 300, Y: 300}) {
		t.Fatalf("expected position untouched by resize, got %#v", got.Position)
	}
}

func TestSetWidgetPositionRejectsNonFinite(t *testing.T) {
	engine := newTestEngine(Options{})
	ctx := context.Background()
	widget, err := engine.AddWidget(ctx, AddWidgetRequest{Kind: KindKPI})
	if err != nil {
		t.Fatalf("AddWidget returned error: %v", err)
	}
	if err := engine.SetWidgetPosition(ctx, widget.ID, Position{X: nan(), Y: 10}); !errors.Is(err, errInvalidCoordinate) {
		t.Fatalf("expected coordinate error, got %v", err)
	}
	got, _ := engine.Widget(widget.ID)
	if got.Position != defaultWidgetPosition {
		t.Fatalf("expected position untouched, got %#v", got.Position)
	}
}

func TestSetWidgetPositionSkipsSnapAndClamp(t *testing.T) {
	engine := newTestEngine(Options{CanvasWidth: 400, CanvasHeight: 400})
	ctx := context.Background()
	widget, err := engine.AddWidget(ctx, AddWidgetRequest{Kind: KindKPI})
	if err != nil {
		t.Fatalf("AddWidget returned error: %v", err)
	}
	if err := engine.SetWidgetPosition(ctx, widget.ID, Position{X: 513, Y: -7}); err != nil {
		t.Fatalf("SetWidgetPosition returned error: %v", err)
	}
	got, _ := engine.Widget(widget.ID)
	if got.Position != (Position{X: 513, Y: -7}) {
		t.Fatalf("expected raw position preserved, got %#v", got.Position)
	}
}

func TestUpdateWidgetConfigValidatesKind(t *testing.T) {
	engine := newTestEngine(Options{})
	ctx := context.Background()
	widget, err := engine.AddWidget(ctx, AddWidgetRequest{Kind: KindKPI})
	if err != nil {
		t.Fatalf("AddWidget returned error: %v", err)
	}
	if err := engine.UpdateWidgetConfig(ctx, widget.ID, MetricConfig{Value: 0.91, Caption: "CPU"}); err == nil {
		t.Fatal("expected error for config kind mismatch")
	}
	if err := engine.UpdateWidgetConfig(ctx, widget.ID, KPIConfig{Value: 120000, Target: 150000, Unit: "$"}); err != nil {
		t.Fatalf("UpdateWidgetConfig returned error: %v", err)
	}
	got, _ := engine.Widget(widget.ID)
	cfg, ok := got.Config.(KPIConfig)
	if !ok || cfg.Value != 120000 {
		t.Fatalf("expected updated kpi config, got %#v", got.Config)
	}
}

func TestSaveLayoutSnapshotsDeepCopy(t *testing.T) {
	store := NewInMemoryLayoutStore()
	engine := newTestEngine(Options{LayoutStore: store})
	ctx := context.Background()
	widget, err := engine.AddWidget(ctx, AddWidgetRequest{Kind: KindKPI, Title: "Revenue"})
	if err != nil {
		t.Fatalf("AddWidget returned error: %v", err)
	}
	layout, err := engine.SaveLayout(ctx, "Q1 review", "quarterly board deck")
	if err != nil {
		t.Fatalf("SaveLayout returned error: %v", err)
	}
	if layout.CreatedAt.IsZero() || !layout.CreatedAt.Equal(layout.UpdatedAt) {
		t.Fatalf("expected both timestamps stamped equal, got %v / %v", layout.CreatedAt, layout.UpdatedAt)
	}

	// Mutating the live canvas must not reach into the snapshot.
	if err := engine.RetitleWidget(ctx, widget.ID, "Renamed"); err != nil {
		t.Fatalf("RetitleWidget returned error: %v", err)
	}
	saved, err := engine.Layouts(ctx)
	if err != nil {
		t.Fatalf("Layouts returned error: %v", err)
	}
	if len(saved) != 1 || saved[0].Widgets[0].Title != "Revenue" {
		t.Fatalf("expected snapshot isolated from canvas edits, got %#v", saved)
	}
}

func TestSaveLayoutAlwaysAppendsNewRecord(t *testing.T) {
	store := NewInMemoryLayoutStore()
	engine := newTestEngine(Options{LayoutStore: store})
	ctx := context.Background()
	first, err := engine.SaveLayout(ctx, "draft", "")
	if err != nil {
		t.Fatalf("SaveLayout returned error: %v", err)
	}
	second, err := engine.SaveLayout(ctx, "draft", "")
	if err != nil {
		t.Fatalf("SaveLayout returned error: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct layout ids, both %q", first.ID)
	}
	saved, err := engine.Layouts(ctx)
	if err != nil {
		t.Fatalf("Layouts returned error: %v", err)
	}
	if len(saved) != 2 {
		t.Fatalf("expected two saved records, got %d", len(saved))
	}
}

func TestSaveLayoutRequiresName(t *testing.T) {
	engine := newTestEngine(Options{LayoutStore: NewInMemoryLayoutStore()})
	if _, err := engine.SaveLayout(context.Background(), "", "desc"); !errors.Is(err, errLayoutName) {
		t.Fatalf("expected layout name error, got %v", err)
	}
}

func TestSaveLayoutWithoutStore(t *testing.T) {
	engine := newTestEngine(Options{})
	if _, err := engine.SaveLayout(context.Background(), "draft", ""); !errors.Is(err, errMissingLayoutStore) {
		t.Fatalf("expected missing store error, got %v", err)
	}
}

func TestSaveLayoutWrapsStoreFailure(t *testing.T) {
	storeErr := errors.New("disk full")
	engine := newTestEngine(Options{LayoutStore: failingLayoutStore{err: storeErr}})
	_, err := engine.SaveLayout(context.Background(), "draft", "")
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestEngineEmitsHookEvents(t *testing.T) {
	hook := &recordingHook{}
	engine := newTestEngine(Options{EventHook: hook, LayoutStore: NewInMemoryLayoutStore()})
	ctx := context.Background()
	widget, err := engine.AddWidget(ctx, AddWidgetRequest{Kind: KindKPI})
	if err != nil {
		t.Fatalf("AddWidget returned error: %v", err)
	}
	if err := engine.DeleteWidget(ctx, widget.ID); err != nil {
		t.Fatalf("DeleteWidget returned error: %v", err)
	}
	if _, err := engine.SaveLayout(ctx, "empty", ""); err != nil {
		t.Fatalf("SaveLayout returned error: %v", err)
	}
	reasons := make([]string, len(hook.events))
	for i, evt := range hook.events {
		reasons[i] = evt.Reason
	}
	want := []string{"add", "delete", "save"}
	if len(reasons) != len(want) {
		t.Fatalf("expected %v, got %v", want, reasons)
	}
	for i := range want {
		if reasons[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, reasons)
		}
	}
	if hook.events[2].Layout == nil {
		t.Fatal("expected save event to carry the layout")
	}
}

func TestWidgetsReturnsCopies(t *testing.T) {
	engine := newTestEngine(Options{})
	ctx := context.Background()
	widget, err := engine.AddWidget(ctx, AddWidgetRequest{
		Kind: KindTable,
		Data: []Record{{"name": "A"}},
	})
	if err != nil {
		t.Fatalf("AddWidget returned error: %v", err)
	}
	copies := engine.Widgets()
	copies[0].Title = "mutated"
	copies[0].Data[0]["name"] = "Z"
	got, _ := engine.Widget(widget.ID)
	if got.Title == "mutated" || got.Data[0]["name"] == "Z" {
		t.Fatalf("expected engine state isolated from returned copies, got %#v", got)
	}
}

type failingLayoutStore struct {
	err error
}

func (s failingLayoutStore) Append(context.Context, DashboardLayout) error {
	return s.err
}

func (s failingLayoutStore) LoadAll(context.Context) ([]DashboardLayout, error) {
	return nil, s.err
}
