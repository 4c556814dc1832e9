package canvas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ConfigValidator validates widget configuration payloads against the schema
// for their kind.
type ConfigValidator interface {
	Validate(cfg WidgetConfig) error
}

// JSONSchemaValidator compiles per-kind schemas and validates configuration
// variants.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[WidgetKind]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[WidgetKind]*jsonschema.Schema),
	}
}

// Validate ensures the configuration satisfies its kind schema.
func (v *JSONSchemaValidator) Validate(cfg WidgetConfig) error {
	if cfg == nil {
		return nil
	}
	raw, ok := KindSchema(cfg.Kind())
	if !ok || len(raw) == 0 {
		return nil
	}
	schema, err := v.schemaFor(cfg.Kind(), raw)
	if err != nil {
		return err
	}
	payload, err := ConfigToMap(cfg)
	if err != nil {
		return err
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("canvas: %s configuration failed validation: %w", cfg.Kind(), err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(kind WidgetKind, raw map[string]any) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[kind]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("canvas: marshal schema %s: %w", kind, err)
	}
	compiler := jsonschema.NewCompiler()
	name := string(kind) + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("canvas: load schema %s: %w", kind, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("canvas: compile schema %s: %w", kind, err)
	}
	v.mu.Lock()
	v.compiled[kind] = compiled
	v.mu.Unlock()
	return compiled, nil
}

type noopConfigValidator struct{}

func (noopConfigValidator) Validate(WidgetConfig) error { return nil }
