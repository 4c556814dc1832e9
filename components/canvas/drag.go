package canvas

import "context"

// The drag lifecycle is a two-state machine: Idle and Dragging. BeginDrag
// moves Idle -> Dragging when the target exists and preview mode is off;
// repeated UpdateDrag calls stay in Dragging, each processed independently
// and idempotently for the same pointer position; EndDrag returns to Idle.
// Pointer-leaves-canvas must route to EndDrag as well, otherwise the session
// would be stuck believing a drag is in progress.

// BeginDrag starts a drag gesture on the widget under the pointer. It is a
// no-op in preview mode or when the id does not exist.
func (e *Engine) BeginDrag(ctx context.Context, id string, pointer Position) {
	if e.session.PreviewMode {
		return
	}
	idx := e.indexOf(id)
	if idx < 0 {
		return
	}
	origin := e.widgets[idx].Position
	e.session.SelectedWidgetID = id
	e.session.Dragging = true
	// Captured once, at drag start, in canvas-local coordinates.
	e.session.DragOffset = Position{X: pointer.X - origin.X, Y: pointer.Y - origin.Y}
	e.record(ctx, "canvas.drag.begin", map[string]any{"widget_id": id})
}

// UpdateDrag moves the dragged widget to track the pointer. The candidate
// position is snapped to the grid, then clamped so the widget's bounding box
// stays inside the canvas. No-op unless a drag is in progress.
func (e *Engine) UpdateDrag(ctx context.Context, pointer Position) {
	if !e.session.Dragging || e.session.PreviewMode {
		return
	}
	idx := e.indexOf(e.session.SelectedWidgetID)
	if idx < 0 {
		return
	}
	candidate := Position{
		X: pointer.X - e.session.DragOffset.X,
		Y: pointer.Y - e.session.DragOffset.Y,
	}
	snapped := snapPosition(candidate, e.opts.GridUnit)
	bounds := Size{Width: e.opts.CanvasWidth, Height: e.opts.CanvasHeight}
	e.widgets[idx].Position = ClampedPosition(snapped, e.widgets[idx].Size, bounds)
	_ = e.emit(ctx, CanvasEvent{Widget: e.widgets[idx], Reason: "drag"})
}

// EndDrag completes the gesture, resets the drag offset, and keeps the
// widget selected.
func (e *Engine) EndDrag(ctx context.Context) {
	if !e.session.Dragging {
		return
	}
	e.session.Dragging = false
	e.session.DragOffset = Position{}
	e.record(ctx, "canvas.drag.end", map[string]any{
		"widget_id": e.session.SelectedWidgetID,
	})
}
