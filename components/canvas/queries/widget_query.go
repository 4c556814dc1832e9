package queries

import (
	"context"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	canvas "github.com/goliatone/go-composer/components/canvas"
)

type widgetEngine interface {
	Widget(id string) (canvas.Widget, bool)
	Widgets() []canvas.Widget
}

// WidgetInput identifies a single widget; an empty id lists all of them.
type WidgetInput struct {
	WidgetID string `json:"widget_id"`
}

// WidgetQuery reads widgets from the live canvas.
type WidgetQuery struct {
	engine widgetEngine
}

// NewWidgetQuery builds the query.
func NewWidgetQuery(engine widgetEngine) *WidgetQuery {
	return &WidgetQuery{engine: engine}
}

var _ gocommand.Querier[WidgetInput, []canvas.Widget] = (*WidgetQuery)(nil)

// Query resolves one widget or the whole list.
func (q *WidgetQuery) Query(ctx context.Context, msg WidgetInput) ([]canvas.Widget, error) {
	if msg.WidgetID == "" {
		return q.engine.Widgets(), nil
	}
	widget, ok := q.engine.Widget(msg.WidgetID)
	if !ok {
		return nil, fmt.Errorf("queries: widget %s not found", msg.WidgetID)
	}
	return []canvas.Widget{widget}, nil
}
