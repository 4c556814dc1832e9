package canvas

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// TemplateManifestDocument models a YAML manifest describing catalog
// templates.
type TemplateManifestDocument struct {
	Version   string             `json:"version" yaml:"version"`
	Name      string             `json:"name,omitempty" yaml:"name,omitempty"`
	Templates []ManifestTemplate `json:"templates" yaml:"templates"`
	Source    string             `json:"-" yaml:"-"`
}

// ManifestTemplate describes a single catalog entry within a manifest. The
// default configuration arrives as an untyped map and is decoded into the
// kind's config variant at registration time.
type ManifestTemplate struct {
	Code          string         `json:"code" yaml:"code"`
	Kind          string         `json:"kind" yaml:"kind"`
	Name          string         `json:"name" yaml:"name"`
	Description   string         `json:"description,omitempty" yaml:"description,omitempty"`
	Category      string         `json:"category,omitempty" yaml:"category,omitempty"`
	DefaultConfig map[string]any `json:"default_config,omitempty" yaml:"default_config,omitempty"`
}

// LoadManifestFile reads a manifest from disk, registers it against the
// registry, and returns the document.
func (r *TemplateRegistry) LoadManifestFile(path string) (*TemplateManifestDocument, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	if err := r.LoadManifestDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadManifestDocument registers templates from a decoded manifest.
func (r *TemplateRegistry) LoadManifestDocument(doc *TemplateManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("canvas: manifest document is nil")
	}
	for _, entry := range doc.Templates {
		tpl, err := entry.toTemplate()
		if err != nil {
			return fmt.Errorf("canvas: register template %s from %s: %w", entry.Code, doc.Source, err)
		}
		if err := r.Register(tpl); err != nil {
			return fmt.Errorf("canvas: register template %s from %s: %w", entry.Code, doc.Source, err)
		}
	}
	return nil
}

func (m ManifestTemplate) toTemplate() (WidgetTemplate, error) {
	kind, err := ParseKind(m.Kind)
	if err != nil {
		return WidgetTemplate{}, err
	}
	tpl := WidgetTemplate{
		Code:        m.Code,
		Kind:        kind,
		Name:        m.Name,
		Description: m.Description,
		Category:    m.Category,
	}
	if len(m.DefaultConfig) > 0 {
		payload, err := json.Marshal(m.DefaultConfig)
		if err != nil {
			return WidgetTemplate{}, fmt.Errorf("encode default config: %w", err)
		}
		cfg, err := decodeConfig(kind, payload)
		if err != nil {
			return WidgetTemplate{}, err
		}
		tpl.DefaultConfig = cfg
	}
	return tpl, nil
}

// ReadManifest loads a manifest file from disk without registering it.
func ReadManifest(path string) (*TemplateManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("canvas: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("canvas: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*TemplateManifestDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc TemplateManifestDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("canvas: manifest is empty")
		}
		return nil, fmt.Errorf("canvas: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the manifest satisfies required fields.
func (doc *TemplateManifestDocument) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("canvas: unsupported manifest version %q", doc.Version)
	}
	seen := make(map[string]struct{}, len(doc.Templates))
	for idx, entry := range doc.Templates {
		if entry.Code == "" {
			return fmt.Errorf("canvas: manifest template at index %d is missing code", idx)
		}
		if entry.Name == "" {
			return fmt.Errorf("canvas: manifest template %s missing name", entry.Code)
		}
		if _, err := ParseKind(entry.Kind); err != nil {
			return fmt.Errorf("canvas: manifest template %s: %w", entry.Code, err)
		}
		if _, exists := seen[entry.Code]; exists {
			return fmt.Errorf("canvas: manifest duplicates template code %s", entry.Code)
		}
		seen[entry.Code] = struct{}{}
	}
	return nil
}

func (doc *TemplateManifestDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
}
