package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	canvas "github.com/goliatone/go-composer/components/canvas"
)

// DragWidgetInput replays a complete drag gesture: pointer down, a stream of
// pointer positions, pointer up. Transports that batch pointer-move events
// deliver them here in arrival order.
type DragWidgetInput struct {
	WidgetID string            `json:"widget_id"`
	Start    canvas.Position   `json:"start"`
	Path     []canvas.Position `json:"path"`
	ActorID  string            `json:"actor_id"`
	UserID   string            `json:"user_id"`
	TenantID string            `json:"tenant_id"`
}

type dragEngine interface {
	BeginDrag(ctx context.Context, id string, pointer canvas.Position)
	UpdateDrag(ctx context.Context, pointer canvas.Position)
	EndDrag(ctx context.Context)
}

// DragWidgetCommand wraps the engine's drag state machine.
type DragWidgetCommand struct {
	engine    dragEngine
	telemetry Telemetry
}

// NewDragWidgetCommand creates the command.
func NewDragWidgetCommand(engine dragEngine, telemetry Telemetry) *DragWidgetCommand {
	return &DragWidgetCommand{engine: engine, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DragWidgetInput] = (*DragWidgetCommand)(nil)

// Execute replays the gesture through begin/update/end.
func (c *DragWidgetCommand) Execute(ctx context.Context, msg DragWidgetInput) error {
	if c.engine == nil {
		return errors.New("drag command requires engine")
	}
	if msg.WidgetID == "" {
		return errors.New("drag command requires widget id")
	}
	ctx = canvas.ContextWithActivity(ctx, canvas.ActivityContext{
		ActorID:  msg.ActorID,
		UserID:   msg.UserID,
		TenantID: msg.TenantID,
	})
	c.engine.BeginDrag(ctx, msg.WidgetID, msg.Start)
	for _, pointer := range msg.Path {
		c.engine.UpdateDrag(ctx, pointer)
	}
	c.engine.EndDrag(ctx)
	c.telemetry.Record(ctx, "canvas.widget.drag", map[string]any{
		"widget_id": msg.WidgetID,
		"points":    len(msg.Path),
	})
	return nil
}

// MoveWidgetInput applies a direct numeric position edit.
type MoveWidgetInput struct {
	WidgetID string          `json:"widget_id"`
	Position canvas.Position `json:"position"`
	ActorID  string          `json:"actor_id"`
	UserID   string          `json:"user_id"`
	TenantID string          `json:"tenant_id"`
}

type moveEngine interface {
	SetWidgetPosition(ctx context.Context, id string, pos canvas.Position) error
}

// MoveWidgetCommand wraps Engine.SetWidgetPosition.
type MoveWidgetCommand struct {
	engine    moveEngine
	telemetry Telemetry
}

// NewMoveWidgetCommand creates the command.
func NewMoveWidgetCommand(engine moveEngine, telemetry Telemetry) *MoveWidgetCommand {
	return &MoveWidgetCommand{engine: engine, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[MoveWidgetInput] = (*MoveWidgetCommand)(nil)

// Execute applies the position edit.
func (c *MoveWidgetCommand) Execute(ctx context.Context, msg MoveWidgetInput) error {
	if c.engine == nil {
		return errors.New("move command requires engine")
	}
	ctx = canvas.ContextWithActivity(ctx, canvas.ActivityContext{
		ActorID:  msg.ActorID,
		UserID:   msg.UserID,
		TenantID: msg.TenantID,
	})
	if err := c.engine.SetWidgetPosition(ctx, msg.WidgetID, msg.Position); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "canvas.widget.move", map[string]any{"widget_id": msg.WidgetID})
	return nil
}
