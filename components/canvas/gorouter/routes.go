// Package gorouter mounts composer routes on a go-router router so hosts
// using the fiber or httprouter adapters get the canvas page, the JSON
// payload, and the REST command surface with one call.
package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	router "github.com/goliatone/go-router"

	canvas "github.com/goliatone/go-composer/components/canvas"
	"github.com/goliatone/go-composer/components/canvas/commands"
	"github.com/goliatone/go-composer/components/canvas/httpapi"
)

// ActorResolver converts a router.Context into an ActivityContext.
type ActorResolver func(router.Context) canvas.ActivityContext

// Config wires go-router with the composer controller and API.
type Config[T any] struct {
	Router        router.Router[T]
	Controller    *canvas.Controller
	API           httpapi.Executor
	ActorResolver ActorResolver
	BasePath      string
	Routes        RouteConfig
}

// RouteConfig customizes the relative paths used for composer endpoints.
type RouteConfig struct {
	HTML     string
	Canvas   string
	Widgets  string
	WidgetID string
	Resize   string
	Drag     string
	Layouts  string
}

// Register mounts composer routes (HTML, JSON, REST) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/composer"
	}
	resolver := cfg.ActorResolver
	if resolver == nil {
		resolver = defaultActorResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		var buf bytes.Buffer
		if err := cfg.Controller.RenderHTML(ctx.Context(), &buf); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	group.Get(routes.Canvas, router.WrapHandler(func(ctx router.Context) error {
		payload, err := cfg.Controller.Payload(ctx.Context())
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, resolver, routes)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, resolver ActorResolver, routes RouteConfig) {
	r.Post(routes.Widgets, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.AddWidgetInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		applyActor(&payload.ActorID, &payload.UserID, &payload.TenantID, resolver(ctx))
		if err := api.Add(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Delete(routes.WidgetID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("widget id is required"))
		}
		input := commands.RemoveWidgetInput{WidgetID: id}
		applyActor(&input.ActorID, &input.UserID, &input.TenantID, resolver(ctx))
		if err := api.Remove(ctx.Context(), input); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "removed"})
	}))

	r.Post(routes.Drag, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.DragWidgetInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		applyActor(&payload.ActorID, &payload.UserID, &payload.TenantID, resolver(ctx))
		if err := api.Drag(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "moved"})
	}))

	r.Post(routes.Resize, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("widget id is required"))
		}
		var payload commands.ResizeWidgetInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.WidgetID = id
		applyActor(&payload.ActorID, &payload.UserID, &payload.TenantID, resolver(ctx))
		if err := api.Resize(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "resized"})
	}))

	r.Post(routes.Layouts, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SaveLayoutInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		applyActor(&payload.ActorID, &payload.UserID, &payload.TenantID, resolver(ctx))
		if err := api.Save(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "saved"})
	}))

	r.Get(routes.Layouts, router.WrapHandler(func(ctx router.Context) error {
		layouts, err := api.Layouts(ctx.Context())
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, layouts)
	}))
}

func applyActor(actorID, userID, tenantID *string, meta canvas.ActivityContext) {
	if *actorID == "" {
		*actorID = meta.ActorID
	}
	if *userID == "" {
		*userID = meta.UserID
	}
	if *tenantID == "" {
		*tenantID = meta.TenantID
	}
}

func defaultActorResolver(ctx router.Context) canvas.ActivityContext {
	var meta canvas.ActivityContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		meta.UserID = v
		meta.ActorID = v
	}
	if v, ok := ctx.Locals("tenant_id").(string); ok {
		meta.TenantID = v
	}
	return meta
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/canvas"
	}
	if routes.Canvas == "" {
		routes.Canvas = "/canvas/_state"
	}
	if routes.Widgets == "" {
		routes.Widgets = "/canvas/widgets"
	}
	if routes.WidgetID == "" {
		routes.WidgetID = "/canvas/widgets/:id"
	}
	if routes.Resize == "" {
		routes.Resize = "/canvas/widgets/:id/resize"
	}
	if routes.Drag == "" {
		routes.Drag = "/canvas/widgets/drag"
	}
	if routes.Layouts == "" {
		routes.Layouts = "/canvas/layouts"
	}
	return routes
}
