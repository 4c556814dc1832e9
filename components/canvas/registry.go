package canvas

import (
	"fmt"
	"sort"
	"sync"
)

// TemplateHook lets packages register catalog templates during init().
type TemplateHook func(reg *TemplateRegistry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []TemplateHook
)

// RegisterTemplateHook registers a hook executed against new registries.
func RegisterTemplateHook(h TemplateHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// TemplateRegistry implements TemplateCatalog with hook + manifest support.
type TemplateRegistry struct {
	mu        sync.RWMutex
	templates map[string]WidgetTemplate
}

// NewTemplateRegistry builds a registry seeded with the default catalog and
// applies global hooks.
func NewTemplateRegistry() *TemplateRegistry {
	reg := &TemplateRegistry{
		templates: map[string]WidgetTemplate{},
	}
	for _, tpl := range DefaultTemplates() {
		_ = reg.Register(tpl)
	}
	_ = reg.ApplyHooks()
	return reg
}

// ApplyHooks executes registered template hooks.
func (r *TemplateRegistry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// Register stores a catalog template.
func (r *TemplateRegistry) Register(tpl WidgetTemplate) error {
	if tpl.Code == "" {
		return fmt.Errorf("canvas: template code is required")
	}
	if _, err := ParseKind(string(tpl.Kind)); err != nil {
		return fmt.Errorf("canvas: template %s: %w", tpl.Code, err)
	}
	if tpl.DefaultConfig != nil && tpl.DefaultConfig.Kind() != tpl.Kind {
		return fmt.Errorf("canvas: template %s config kind mismatch", tpl.Code)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[tpl.Code] = tpl
	return nil
}

// Template fetches a catalog entry by code.
func (r *TemplateRegistry) Template(code string) (WidgetTemplate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tpl, ok := r.templates[code]
	return tpl, ok
}

// Templates returns all registered templates, sorted by code for
// deterministic listings.
func (r *TemplateRegistry) Templates() []WidgetTemplate {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]WidgetTemplate, 0, len(r.templates))
	for _, tpl := range r.templates {
		out = append(out, tpl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

var _ TemplateCatalog = (*TemplateRegistry)(nil)
