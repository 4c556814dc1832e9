// Package httpapi exposes HTTP endpoints backed by the shared canvas
// commands. The core engine carries no network protocol of its own; this
// adapter exists for hosts that mount the composer behind a router.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	canvas "github.com/goliatone/go-composer/components/canvas"
	"github.com/goliatone/go-composer/components/canvas/commands"
	"github.com/goliatone/go-composer/components/canvas/queries"
)

// Executor is the command surface transports depend on.
type Executor interface {
	Add(ctx context.Context, input commands.AddWidgetInput) error
	Remove(ctx context.Context, input commands.RemoveWidgetInput) error
	Drag(ctx context.Context, input commands.DragWidgetInput) error
	Move(ctx context.Context, input commands.MoveWidgetInput) error
	Resize(ctx context.Context, input commands.ResizeWidgetInput) error
	Retitle(ctx context.Context, input commands.RetitleWidgetInput) error
	Save(ctx context.Context, input commands.SaveLayoutInput) error
	Layouts(ctx context.Context) ([]canvas.DashboardLayout, error)
}

// CommandExecutor wires concrete commands into the Executor surface.
type CommandExecutor struct {
	AddCommander     gocommand.Commander[commands.AddWidgetInput]
	RemoveCommander  gocommand.Commander[commands.RemoveWidgetInput]
	DragCommander    gocommand.Commander[commands.DragWidgetInput]
	MoveCommander    gocommand.Commander[commands.MoveWidgetInput]
	ResizeCommander  gocommand.Commander[commands.ResizeWidgetInput]
	RetitleCommander gocommand.Commander[commands.RetitleWidgetInput]
	SaveCommander    gocommand.Commander[commands.SaveLayoutInput]
	LayoutsQuerier   gocommand.Querier[queries.LayoutsInput, []canvas.DashboardLayout]
}

func (e *CommandExecutor) Add(ctx context.Context, input commands.AddWidgetInput) error {
	return e.AddCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Remove(ctx context.Context, input commands.RemoveWidgetInput) error {
	return e.RemoveCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Drag(ctx context.Context, input commands.DragWidgetInput) error {
	return e.DragCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Move(ctx context.Context, input commands.MoveWidgetInput) error {
	return e.MoveCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Resize(ctx context.Context, input commands.ResizeWidgetInput) error {
	return e.ResizeCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Retitle(ctx context.Context, input commands.RetitleWidgetInput) error {
	return e.RetitleCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Save(ctx context.Context, input commands.SaveLayoutInput) error {
	return e.SaveCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Layouts(ctx context.Context) ([]canvas.DashboardLayout, error) {
	return e.LayoutsQuerier.Query(ctx, queries.LayoutsInput{})
}

var _ Executor = (*CommandExecutor)(nil)

// Handlers exposes plain net/http endpoints over an Executor.
type Handlers struct {
	API Executor
}

func (h *Handlers) HandleAddWidget(w http.ResponseWriter, r *http.Request) {
	var payload commands.AddWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Add(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleRemoveWidget(w http.ResponseWriter, r *http.Request, widgetID string) {
	if err := h.API.Remove(r.Context(), commands.RemoveWidgetInput{WidgetID: widgetID}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleDragWidget(w http.ResponseWriter, r *http.Request) {
	var payload commands.DragWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Drag(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleSaveLayout(w http.ResponseWriter, r *http.Request) {
	var payload commands.SaveLayoutInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Save(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleLayouts(w http.ResponseWriter, r *http.Request) {
	layouts, err := h.API.Layouts(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(layouts)
}
