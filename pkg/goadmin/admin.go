package goadmin

import (
	"context"
	"errors"

	activitypkg "github.com/goliatone/go-composer/pkg/activity"
	composerpkg "github.com/goliatone/go-composer/pkg/composer"
)

// MenuBuilder ensures composer entries exist within the admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures composer link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
}

// Config wires the canvas engine + feature flags into an admin shell.
type Config struct {
	EnableComposer  bool
	MenuCode        string
	MenuBuilder     MenuBuilder
	Engine          *composerpkg.Engine
	DefaultMenuItem MenuItem
	ActivityHooks   activitypkg.Hooks
	ActivityConfig  activitypkg.Config
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg Config
}

// New creates an Admin helper that can seed composer menus.
func New(cfg Config) (*Admin, error) {
	if cfg.EnableComposer && cfg.Engine == nil {
		return nil, errors.New("goadmin: canvas engine is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	if cfg.DefaultMenuItem.Label == "" {
		cfg.DefaultMenuItem.Label = "Composer"
	}
	if cfg.DefaultMenuItem.Route == "" {
		cfg.DefaultMenuItem.Route = "composer.canvas"
	}
	if cfg.DefaultMenuItem.Icon == "" {
		cfg.DefaultMenuItem.Icon = "layout"
	}
	return &Admin{cfg: cfg}, nil
}

// Composer exposes the configured canvas engine when enabled.
func (a *Admin) Composer() *composerpkg.Engine {
	if !a.cfg.EnableComposer {
		return nil
	}
	return a.cfg.Engine
}

// Bootstrap seeds menu entries when composer support is enabled.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableComposer || a.cfg.MenuBuilder == nil {
		return nil
	}
	return a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, a.cfg.DefaultMenuItem)
}
