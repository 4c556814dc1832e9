package activity

import "context"

// Config toggles the edit trail.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter delivers events to hooks when enabled.
type Emitter struct {
	hooks   Hooks
	cfg     Config
	enabled bool
}

// NewEmitter builds an emitter. It is disabled without hooks regardless of
// configuration.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	if cfg.Channel == "" {
		cfg.Channel = DefaultChannel
	}
	return &Emitter{
		hooks:   hooks,
		cfg:     cfg,
		enabled: cfg.Enabled && len(hooks) > 0,
	}
}

// Enabled reports whether Emit will deliver anything.
func (e *Emitter) Enabled() bool {
	if e == nil {
		return false
	}
	return e.enabled
}

// Emit stamps the configured channel and notifies hooks.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if !e.Enabled() {
		return nil
	}
	if evt.Channel == "" {
		evt.Channel = e.cfg.Channel
	}
	return e.hooks.Notify(ctx, evt)
}
