package canvas

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/goliatone/go-composer/components/table"
)

// ControllerOptions wires the engine and renderers into a controller.
type ControllerOptions struct {
	Engine   *Engine
	Renderer Renderer
	Charts   *ChartRenderer
}

// Controller produces read-only views of the canvas: an HTML page with
// absolutely positioned widgets and a JSON payload for API callers.
type Controller struct {
	opts ControllerOptions
}

// NewController builds a controller with renderer defaults.
func NewController(opts ControllerOptions) *Controller {
	if opts.Charts == nil {
		opts.Charts = NewChartRenderer()
	}
	return &Controller{opts: opts}
}

// CanvasPayload is the JSON shape returned to API consumers.
type CanvasPayload struct {
	Widgets []Widget `json:"widgets"`
	Session Session  `json:"session"`
	Canvas  Size     `json:"canvas"`
	Grid    float64  `json:"grid"`
}

// Payload snapshots the canvas for JSON transport.
func (c *Controller) Payload(_ context.Context) (CanvasPayload, error) {
	if c.opts.Engine == nil {
		return CanvasPayload{}, fmt.Errorf("canvas: controller requires engine")
	}
	bounds, grid := c.opts.Engine.Geometry()
	return CanvasPayload{
		Widgets: c.opts.Engine.Widgets(),
		Session: c.opts.Engine.Session(),
		Canvas:  bounds,
		Grid:    grid,
	}, nil
}

// RenderHTML writes the full canvas page. Each widget body is produced by
// its kind's rendering collaborator and boxed to exactly the widget's
// width and height.
func (c *Controller) RenderHTML(ctx context.Context, out io.Writer) error {
	if c.opts.Engine == nil {
		return fmt.Errorf("canvas: controller requires engine")
	}
	if c.opts.Renderer == nil {
		return fmt.Errorf("canvas: controller requires renderer")
	}
	payload, err := c.Payload(ctx)
	if err != nil {
		return err
	}
	widgets := make([]map[string]any, 0, len(payload.Widgets))
	for _, w := range payload.Widgets {
		body, err := c.widgetBody(w)
		if err != nil {
			return fmt.Errorf("canvas: render widget %s: %w", w.ID, err)
		}
		widgets = append(widgets, map[string]any{
			"id":       w.ID,
			"kind":     string(w.Kind),
			"title":    w.Title,
			"x":        w.Position.X,
			"y":        w.Position.Y,
			"width":    w.Size.Width,
			"height":   w.Size.Height,
			"selected": w.ID == payload.Session.SelectedWidgetID,
			"body":     body,
		})
	}
	_, err = c.opts.Renderer.Render("canvas", map[string]any{
		"title":         "Dashboard Composer",
		"canvas_width":  payload.Canvas.Width,
		"canvas_height": payload.Canvas.Height,
		"grid_unit":     payload.Grid,
		"widgets":       widgets,
	}, out)
	return err
}

func (c *Controller) widgetBody(w Widget) (string, error) {
	switch cfg := w.Config.(type) {
	case ChartConfig:
		if len(w.Data) == 0 {
			return "<em>no dataset</em>", nil
		}
		return c.opts.Charts.Render(w)
	case TableConfig:
		return renderTableBody(cfg, w.Data), nil
	case KPIConfig:
		return renderKPIBody(cfg), nil
	case MetricConfig:
		return fmt.Sprintf("<strong>%v%s</strong> <span>%s</span>",
			cfg.Value, html.EscapeString(cfg.Unit), html.EscapeString(cfg.Caption)), nil
	default:
		return "", nil
	}
}

func renderKPIBody(cfg KPIConfig) string {
	return fmt.Sprintf("<strong>%v %s</strong> <span>target %v</span> <span class=\"trend-%s\"></span>",
		cfg.Value, html.EscapeString(cfg.Unit), cfg.Target, html.EscapeString(cfg.Trend))
}

// renderTableBody runs the first pipeline page through the table engine and
// emits a plain HTML table with badge and emphasis classes.
func renderTableBody(cfg TableConfig, data []Record) string {
	columns := table.ResolveColumns(cfg.Columns, nil)
	opts := table.Options{
		Sortable:    cfg.Sortable,
		Paginated:   cfg.Paginated,
		Highlighted: cfg.Highlighted,
		Searchable:  cfg.Searchable,
	}
	page := table.Pipeline(data, opts, table.State{Page: 1})
	emphasis := table.HighlightRows(page.Records, opts)

	var b strings.Builder
	b.WriteString("<table><thead><tr>")
	for _, col := range columns {
		b.WriteString("<th>" + html.EscapeString(col.Label) + "</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	for i, rec := range page.Records {
		if emphasis[i] != table.EmphasisNone {
			fmt.Fprintf(&b, "<tr class=\"emphasis-%s\">", emphasis[i])
		} else {
			b.WriteString("<tr>")
		}
		for _, cell := range table.FormatRow(columns, rec) {
			if cell.Badge != "" {
				fmt.Fprintf(&b, "<td><span class=\"badge badge-%s\">%s</span></td>",
					cell.Badge, html.EscapeString(cell.Text))
			} else {
				b.WriteString("<td>" + html.EscapeString(cell.Text) + "</td>")
			}
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}
