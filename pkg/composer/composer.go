// Package composer re-exports the canvas engine for hosts that prefer a
// single import.
package composer

import (
	core "github.com/goliatone/go-composer/components/canvas"
)

// Engine exposes the underlying components/canvas.Engine type.
type Engine = core.Engine

// Options re-export for convenience.
type Options = core.Options

// NewEngine proxies to the internal constructor.
func NewEngine(opts Options) *Engine {
	return core.NewEngine(opts)
}
