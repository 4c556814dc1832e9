package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	canvas "github.com/goliatone/go-composer/components/canvas"
)

// SaveLayoutInput names the snapshot to persist.
type SaveLayoutInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ActorID     string `json:"actor_id"`
	UserID      string `json:"user_id"`
	TenantID    string `json:"tenant_id"`
}

type saveEngine interface {
	SaveLayout(ctx context.Context, name, description string) (canvas.DashboardLayout, error)
}

// SaveLayoutCommand wraps Engine.SaveLayout. Storage failures surface to the
// caller so the UI can retry or warn.
type SaveLayoutCommand struct {
	engine    saveEngine
	telemetry Telemetry
}

// NewSaveLayoutCommand creates the command.
func NewSaveLayoutCommand(engine saveEngine, telemetry Telemetry) *SaveLayoutCommand {
	return &SaveLayoutCommand{engine: engine, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SaveLayoutInput] = (*SaveLayoutCommand)(nil)

// Execute snapshots and persists the canvas.
func (c *SaveLayoutCommand) Execute(ctx context.Context, msg SaveLayoutInput) error {
	if c.engine == nil {
		return errors.New("save command requires engine")
	}
	ctx = canvas.ContextWithActivity(ctx, canvas.ActivityContext{
		ActorID:  msg.ActorID,
		UserID:   msg.UserID,
		TenantID: msg.TenantID,
	})
	layout, err := c.engine.SaveLayout(ctx, msg.Name, msg.Description)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "canvas.layout.save", map[string]any{
		"layout_id": layout.ID,
		"widgets":   len(layout.Widgets),
	})
	return nil
}
