package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	canvas "github.com/goliatone/go-composer/components/canvas"
)

type layoutEngine interface {
	Layouts(ctx context.Context) ([]canvas.DashboardLayout, error)
}

// LayoutsInput is the (empty) request shape for LayoutsQuery.
type LayoutsInput struct{}

// LayoutsQuery lists every saved layout in append order.
type LayoutsQuery struct {
	engine layoutEngine
}

// NewLayoutsQuery builds the query.
func NewLayoutsQuery(engine layoutEngine) *LayoutsQuery {
	return &LayoutsQuery{engine: engine}
}

var _ gocommand.Querier[LayoutsInput, []canvas.DashboardLayout] = (*LayoutsQuery)(nil)

// Query reads the saved layouts from the store.
func (q *LayoutsQuery) Query(ctx context.Context, _ LayoutsInput) ([]canvas.DashboardLayout, error) {
	return q.engine.Layouts(ctx)
}
