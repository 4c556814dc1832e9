package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-composer/components/canvas"
)

type cli struct {
	Scaffold scaffoldCmd `cmd:"" help:"Scaffold a widget template entry in a catalog manifest."`
	Layouts  layoutsCmd  `cmd:"" help:"Inspect layouts saved by a file layout store."`
}

type scaffoldCmd struct {
	Code         string `required:"" help:"Fully-qualified template code (e.g. acme.template.stats)."`
	Kind         string `required:"" help:"Widget kind (kpi, chart, table, metric)."`
	Name         string `help:"Display name for the template (defaults to the code's last segment)."`
	Description  string `help:"One-line description used in the manifest."`
	Category     string `default:"custom" help:"Template category (kpi, charts, tables, metrics)."`
	ManifestPath string `required:"" type:"path" help:"Path to the template manifest YAML file to update."`
	ConfigPath   string `type:"path" help:"Optional path to a JSON file with the default configuration."`
	Overwrite    bool   `help:"Overwrite an existing manifest entry with the same code."`
}

type layoutsCmd struct {
	StorePath string `arg:"" type:"path" help:"Path to the layout store JSON file."`
	Namespace string `default:"composer.layouts" help:"Slot key holding the saved layouts."`
	JSON      bool   `help:"Print full layout records as JSON instead of a summary."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Catalog and layout tooling for go-composer."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	if !strings.Contains(cmd.Code, ".") {
		return fmt.Errorf("composerctl: template code %s must contain at least one '.' segment", cmd.Code)
	}
	if _, err := canvas.ParseKind(cmd.Kind); err != nil {
		return fmt.Errorf("composerctl: %w", err)
	}
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("composerctl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}
	if !cmd.Overwrite {
		for _, tpl := range doc.Templates {
			if tpl.Code == cmd.Code {
				return fmt.Errorf("composerctl: manifest already defines template %s (use --overwrite to replace)", cmd.Code)
			}
		}
	}

	defaultConfig, err := cmd.loadDefaultConfig()
	if err != nil {
		return err
	}
	name := cmd.Name
	if name == "" {
		name = deriveDisplayName(cmd.Code)
	}
	entry := canvas.ManifestTemplate{
		Code:          cmd.Code,
		Kind:          strings.ToLower(cmd.Kind),
		Name:          name,
		Description:   cmd.Description,
		Category:      cmd.Category,
		DefaultConfig: defaultConfig,
	}

	replaced := false
	for idx := range doc.Templates {
		if doc.Templates[idx].Code == cmd.Code {
			doc.Templates[idx] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Templates = append(doc.Templates, entry)
	}
	sort.Slice(doc.Templates, func(i, j int) bool {
		return doc.Templates[i].Code < doc.Templates[j].Code
	})

	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added %s to %s\n", cmd.Code, manifestPath)
	return nil
}

func (cmd *scaffoldCmd) loadDefaultConfig() (map[string]any, error) {
	if cmd.ConfigPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(cmd.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("composerctl: read config file: %w", err)
	}
	var cfg map[string]any
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("composerctl: parse config JSON: %w", err)
	}
	return cfg, nil
}

func (cmd *layoutsCmd) Run(ctx context.Context) error {
	store := canvas.NewFileLayoutStore(cmd.StorePath, canvas.WithNamespace(cmd.Namespace))
	layouts, err := store.LoadAll(ctx)
	if err != nil {
		return err
	}
	if cmd.JSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(layouts)
	}
	if len(layouts) == 0 {
		fmt.Fprintln(os.Stdout, "no saved layouts")
		return nil
	}
	for _, layout := range layouts {
		fmt.Fprintf(os.Stdout, "%s  %-24s  %2d widgets  saved %s\n",
			layout.ID, layout.Name, len(layout.Widgets),
			layout.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func loadOrInitManifest(path string) (*canvas.TemplateManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &canvas.TemplateManifestDocument{
				Version:   canvas.ManifestVersion,
				Templates: []canvas.ManifestTemplate{},
				Source:    path,
			}, nil
		}
		return nil, fmt.Errorf("composerctl: stat manifest: %w", err)
	}
	return canvas.ReadManifest(path)
}

func writeManifest(path string, doc *canvas.TemplateManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("composerctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("composerctl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("composerctl: write manifest: %w", err)
	}
	return nil
}

func deriveDisplayName(code string) string {
	parts := strings.Split(code, ".")
	slug := strings.TrimSpace(parts[len(parts)-1])
	if slug == "" {
		slug = code
	}
	return strcase.ToCase(slug, strcase.TitleCase, ' ')
}
