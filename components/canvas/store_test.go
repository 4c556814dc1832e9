package canvas

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestInMemoryLayoutStoreAppendOrder(t *testing.T) {
	store := NewInMemoryLayoutStore()
	ctx := context.Background()
	for _, name := range []string{"first", "second", "third"} {
		if err := store.Append(ctx, DashboardLayout{ID: name, Name: name}); err != nil {
			t.Fatalf("Append returned error: %v", err)
		}
	}
	layouts, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll returned error: %v", err)
	}
	if len(layouts) != 3 || layouts[0].Name != "first" || layouts[2].Name != "third" {
		t.Fatalf("expected append order preserved, got %#v", layouts)
	}
}

func TestInMemoryLayoutStoreReturnsCopies(t *testing.T) {
	store := NewInMemoryLayoutStore()
	ctx := context.Background()
	if err := store.Append(ctx, DashboardLayout{ID: "l1", Name: "draft"}); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	loaded, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll returned error: %v", err)
	}
	loaded[0].Name = "mutated"
	again, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll returned error: %v", err)
	}
	if again[0].Name != "draft" {
		t.Fatalf("expected stored layout isolated from caller mutation, got %q", again[0].Name)
	}
}

func TestFileLayoutStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.json")
	store := NewFileLayoutStore(path)
	ctx := context.Background()

	layout := DashboardLayout{
		ID:        "l1",
		Name:      "Q1 review",
		CreatedAt: time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC),
		Widgets: []Widget{{
			ID:     "w1",
			Kind:   KindKPI,
			Title:  "Revenue",
			Config: KPIConfig{Value: 125000, Unit: "USD"},
		}},
	}
	if err := store.Append(ctx, layout); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	if err := store.Append(ctx, DashboardLayout{ID: "l2", Name: "draft"}); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}

	reopened := NewFileLayoutStore(path)
	layouts, err := reopened.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll returned error: %v", err)
	}
	if len(layouts) != 2 {
		t.Fatalf("expected two layouts, got %d", len(layouts))
	}
	if layouts[0].Name != "Q1 review" || len(layouts[0].Widgets) != 1 {
		t.Fatalf("layout mangled in round trip: %#v", layouts[0])
	}
	cfg, ok := layouts[0].Widgets[0].Config.(KPIConfig)
	if !ok || cfg.Value != 125000 {
		t.Fatalf("widget config mangled in round trip: %#v", layouts[0].Widgets[0].Config)
	}
}

func TestFileLayoutStoreEmptyFile(t *testing.T) {
	store := NewFileLayoutStore(filepath.Join(t.TempDir(), "missing.json"))
	layouts, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll returned error: %v", err)
	}
	if len(layouts) != 0 {
		t.Fatalf("expected no layouts, got %d", len(layouts))
	}
}

func TestFileLayoutStoreNamespaceIsolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.json")
	ctx := context.Background()
	primary := NewFileLayoutStore(path)
	scoped := NewFileLayoutStore(path, WithNamespace("acme.layouts"))

	if err := primary.Append(ctx, DashboardLayout{ID: "l1", Name: "default slot"}); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	if err := scoped.Append(ctx, DashboardLayout{ID: "l2", Name: "tenant slot"}); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}

	fromScoped, err := scoped.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll returned error: %v", err)
	}
	if len(fromScoped) != 1 || fromScoped[0].Name != "tenant slot" {
		t.Fatalf("expected namespaced slot isolated, got %#v", fromScoped)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if _, ok := doc[DefaultLayoutNamespace]; !ok {
		t.Fatalf("expected %q slot in document, got keys %v", DefaultLayoutNamespace, docKeys(doc))
	}
	if _, ok := doc["acme.layouts"]; !ok {
		t.Fatalf("expected tenant slot in document, got keys %v", docKeys(doc))
	}
}

func TestFileLayoutStoreCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}
	store := NewFileLayoutStore(path)
	if _, err := store.LoadAll(context.Background()); err == nil {
		t.Fatal("expected decode error for corrupt document")
	}
	if err := store.Append(context.Background(), DashboardLayout{ID: "l1"}); err == nil {
		t.Fatal("expected append to surface the decode error")
	}
}

func docKeys(doc map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	return keys
}
