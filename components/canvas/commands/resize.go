package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	canvas "github.com/goliatone/go-composer/components/canvas"
)

// ResizeWidgetInput replaces a widget's bounding box.
type ResizeWidgetInput struct {
	WidgetID string      `json:"widget_id"`
	Size     canvas.Size `json:"size"`
	ActorID  string      `json:"actor_id"`
	UserID   string      `json:"user_id"`
	TenantID string      `json:"tenant_id"`
}

type resizeEngine interface {
	ResizeWidget(ctx context.Context, id string, size canvas.Size) error
}

// ResizeWidgetCommand wraps Engine.ResizeWidget.
type ResizeWidgetCommand struct {
	engine    resizeEngine
	telemetry Telemetry
}

// NewResizeWidgetCommand creates the command.
func NewResizeWidgetCommand(engine resizeEngine, telemetry Telemetry) *ResizeWidgetCommand {
	return &ResizeWidgetCommand{engine: engine, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResizeWidgetInput] = (*ResizeWidgetCommand)(nil)

// Execute applies the resize.
func (c *ResizeWidgetCommand) Execute(ctx context.Context, msg ResizeWidgetInput) error {
	if c.engine == nil {
		return errors.New("resize command requires engine")
	}
	ctx = canvas.ContextWithActivity(ctx, canvas.ActivityContext{
		ActorID:  msg.ActorID,
		UserID:   msg.UserID,
		TenantID: msg.TenantID,
	})
	if err := c.engine.ResizeWidget(ctx, msg.WidgetID, msg.Size); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "canvas.widget.resize", map[string]any{"widget_id": msg.WidgetID})
	return nil
}

// RetitleWidgetInput renames a widget.
type RetitleWidgetInput struct {
	WidgetID string `json:"widget_id"`
	Title    string `json:"title"`
	ActorID  string `json:"actor_id"`
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
}

type retitleEngine interface {
	RetitleWidget(ctx context.Context, id, title string) error
}

// RetitleWidgetCommand wraps Engine.RetitleWidget.
type RetitleWidgetCommand struct {
	engine    retitleEngine
	telemetry Telemetry
}

// NewRetitleWidgetCommand creates the command.
func NewRetitleWidgetCommand(engine retitleEngine, telemetry Telemetry) *RetitleWidgetCommand {
	return &RetitleWidgetCommand{engine: engine, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RetitleWidgetInput] = (*RetitleWidgetCommand)(nil)

// Execute applies the rename.
func (c *RetitleWidgetCommand) Execute(ctx context.Context, msg RetitleWidgetInput) error {
	if c.engine == nil {
		return errors.New("retitle command requires engine")
	}
	ctx = canvas.ContextWithActivity(ctx, canvas.ActivityContext{
		ActorID:  msg.ActorID,
		UserID:   msg.UserID,
		TenantID: msg.TenantID,
	})
	if err := c.engine.RetitleWidget(ctx, msg.WidgetID, msg.Title); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "canvas.widget.retitle", map[string]any{"widget_id": msg.WidgetID})
	return nil
}
