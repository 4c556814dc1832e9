package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	canvas "github.com/goliatone/go-composer/components/canvas"
)

// RemoveWidgetInput identifies the widget to remove.
type RemoveWidgetInput struct {
	WidgetID string `json:"widget_id"`
	ActorID  string `json:"actor_id"`
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
}

type removeEngine interface {
	DeleteWidget(ctx context.Context, id string) error
}

// RemoveWidgetCommand wraps Engine.DeleteWidget.
type RemoveWidgetCommand struct {
	engine    removeEngine
	telemetry Telemetry
}

// NewRemoveWidgetCommand builds a command instance.
func NewRemoveWidgetCommand(engine removeEngine, telemetry Telemetry) *RemoveWidgetCommand {
	return &RemoveWidgetCommand{engine: engine, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RemoveWidgetInput] = (*RemoveWidgetCommand)(nil)

// Execute removes the widget. Unknown ids are absorbed by the engine.
func (c *RemoveWidgetCommand) Execute(ctx context.Context, msg RemoveWidgetInput) error {
	if c.engine == nil {
		return errors.New("remove command requires engine")
	}
	ctx = canvas.ContextWithActivity(ctx, canvas.ActivityContext{
		ActorID:  msg.ActorID,
		UserID:   msg.UserID,
		TenantID: msg.TenantID,
	})
	if err := c.engine.DeleteWidget(ctx, msg.WidgetID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "canvas.widget.remove", map[string]any{"widget_id": msg.WidgetID})
	return nil
}
