package queries

import (
	"context"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	canvas "github.com/goliatone/go-composer/components/canvas"
	"github.com/goliatone/go-composer/components/table"
)

// PageInput requests one rendered page of a table widget's dataset under
// the given view state.
type PageInput struct {
	WidgetID string      `json:"widget_id"`
	State    table.State `json:"state"`
}

// PageResult bundles the visible page with its formatted cells and row
// emphasis flags.
type PageResult struct {
	Page     table.Page       `json:"page"`
	Columns  []table.Column   `json:"columns"`
	Cells    [][]table.Cell   `json:"cells"`
	Emphasis []table.Emphasis `json:"emphasis"`
}

// PageQuery runs the table pipeline for a table widget.
type PageQuery struct {
	engine widgetEngine
}

// NewPageQuery builds the query.
func NewPageQuery(engine widgetEngine) *PageQuery {
	return &PageQuery{engine: engine}
}

var _ gocommand.Querier[PageInput, PageResult] = (*PageQuery)(nil)

// Query filters, sorts, paginates, and formats the widget's dataset.
func (q *PageQuery) Query(ctx context.Context, msg PageInput) (PageResult, error) {
	widget, ok := q.engine.Widget(msg.WidgetID)
	if !ok {
		return PageResult{}, fmt.Errorf("queries: widget %s not found", msg.WidgetID)
	}
	cfg, ok := widget.Config.(canvas.TableConfig)
	if !ok {
		return PageResult{}, fmt.Errorf("queries: widget %s is not a table", msg.WidgetID)
	}
	columns := table.ResolveColumns(cfg.Columns, nil)
	opts := table.Options{
		Sortable:    cfg.Sortable,
		Paginated:   cfg.Paginated,
		Highlighted: cfg.Highlighted,
		Searchable:  cfg.Searchable,
	}
	page := table.Pipeline(widget.Data, opts, msg.State)
	cells := make([][]table.Cell, len(page.Records))
	for i, rec := range page.Records {
		cells[i] = table.FormatRow(columns, rec)
	}
	return PageResult{
		Page:     page,
		Columns:  columns,
		Cells:    cells,
		Emphasis: table.HighlightRows(page.Records, opts),
	}, nil
}
