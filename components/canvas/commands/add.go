package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	canvas "github.com/goliatone/go-composer/components/canvas"
)

// AddWidgetInput captures widget creation payloads.
type AddWidgetInput struct {
	Kind     string          `json:"kind"`
	Title    string          `json:"title"`
	Template string          `json:"template,omitempty"`
	Config   map[string]any  `json:"config,omitempty"`
	Data     []canvas.Record `json:"data,omitempty"`
	ActorID  string          `json:"actor_id"`
	UserID   string          `json:"user_id"`
	TenantID string          `json:"tenant_id"`
}

type addEngine interface {
	AddWidget(ctx context.Context, req canvas.AddWidgetRequest) (canvas.Widget, error)
	AddFromTemplate(ctx context.Context, code string) (canvas.Widget, error)
}

// AddWidgetCommand places a new widget, either from a catalog template or
// from an explicit kind + config payload.
type AddWidgetCommand struct {
	engine    addEngine
	telemetry Telemetry
}

// NewAddWidgetCommand creates the command.
func NewAddWidgetCommand(engine addEngine, telemetry Telemetry) *AddWidgetCommand {
	return &AddWidgetCommand{engine: engine, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AddWidgetInput] = (*AddWidgetCommand)(nil)

// Execute places the widget.
func (c *AddWidgetCommand) Execute(ctx context.Context, msg AddWidgetInput) error {
	if c.engine == nil {
		return errors.New("add command requires engine")
	}
	ctx = canvas.ContextWithActivity(ctx, canvas.ActivityContext{
		ActorID:  msg.ActorID,
		UserID:   msg.UserID,
		TenantID: msg.TenantID,
	})
	var (
		widget canvas.Widget
		err    error
	)
	if msg.Template != "" {
		widget, err = c.engine.AddFromTemplate(ctx, msg.Template)
	} else {
		req := canvas.AddWidgetRequest{
			Kind:  canvas.WidgetKind(msg.Kind),
			Title: msg.Title,
			Data:  msg.Data,
		}
		if msg.Config != nil {
			if req.Config, err = canvas.ParseConfig(req.Kind, msg.Config); err != nil {
				return err
			}
		}
		widget, err = c.engine.AddWidget(ctx, req)
	}
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "canvas.widget.add", map[string]any{
		"widget_id": widget.ID,
		"kind":      string(widget.Kind),
	})
	return nil
}
