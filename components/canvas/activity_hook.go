package canvas

import (
	"context"

	"github.com/goliatone/go-composer/pkg/activity"
)

// ActivityEmitter is the minimal surface needed from pkg/activity.
type ActivityEmitter interface {
	Enabled() bool
	Emit(ctx context.Context, evt activity.Event) error
}

// ActivityHook records canvas events on the edit trail, reading actor
// identifiers from the request context.
type ActivityHook struct {
	Emitter ActivityEmitter
}

// CanvasUpdated maps the canvas event onto an activity event.
func (h *ActivityHook) CanvasUpdated(ctx context.Context, event CanvasEvent) error {
	if h == nil || h.Emitter == nil || !h.Emitter.Enabled() {
		return nil
	}
	meta := ActivityFromContext(ctx)
	evt := activity.Event{
		Verb:     event.Reason,
		ActorID:  meta.ActorID,
		UserID:   meta.UserID,
		TenantID: meta.TenantID,
	}
	switch {
	case event.Layout != nil:
		evt.ObjectType = "layout"
		evt.ObjectID = event.Layout.ID
		evt.Metadata = map[string]any{
			"name":    event.Layout.Name,
			"widgets": len(event.Layout.Widgets),
		}
	default:
		evt.ObjectType = "widget"
		evt.ObjectID = event.Widget.ID
		evt.Metadata = map[string]any{
			"kind":  string(event.Widget.Kind),
			"title": event.Widget.Title,
		}
	}
	return h.Emitter.Emit(ctx, evt)
}

var _ EventHook = (*ActivityHook)(nil)
