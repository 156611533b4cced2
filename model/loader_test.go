package model

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDocument(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write document: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeDocument(t, dir, "weather.model.json", `{
		"semlint": "1.0",
		"shapes": {
			"example.weather#City": {
				"type": "structure",
				"source": {"filename": "weather.api", "line": 10, "column": 1},
				"traits": {
					"example.api#documentation": "A city",
					"example.api#tags": ["geo", "place"]
				}
			},
			"example.weather#GetForecast": {
				"type": "operation"
			}
		}
	}`)

	m, err := NewLoader(nil).Load([]string{path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if m.Len() != 2 {
		t.Fatalf("expected 2 shapes, got %d", m.Len())
	}

	city := m.Shape("example.weather#City")
	if city == nil {
		t.Fatal("City shape missing")
	}
	if city.Type != TypeStructure {
		t.Errorf("City type = %s, want structure", city.Type)
	}
	if city.Source.File != "weather.api" || city.Source.Line != 10 {
		t.Errorf("City source = %v", city.Source)
	}
	if len(city.Traits) != 2 {
		t.Fatalf("expected 2 traits, got %d", len(city.Traits))
	}
	// Traits are sorted by trait ID.
	if city.Traits[0].ID != "example.api#documentation" || city.Traits[1].ID != "example.api#tags" {
		t.Errorf("trait order = [%s %s]", city.Traits[0].ID, city.Traits[1].ID)
	}

	// A shape without an explicit source falls back to the document path.
	op := m.Shape("example.weather#GetForecast")
	if op.Source.File != path {
		t.Errorf("GetForecast source file = %q, want %q", op.Source.File, path)
	}
}

func TestLoaderRejectsUnsupportedVersion(t *testing.T) {
	dir := t.TempDir()
	path := writeDocument(t, dir, "bad.model.json", `{"semlint": "2.0", "shapes": {}}`)

	if _, err := NewLoader(nil).Load([]string{path}); err == nil {
		t.Fatal("expected version error")
	}
}

func TestLoaderRejectsUnknownShapeType(t *testing.T) {
	dir := t.TempDir()
	path := writeDocument(t, dir, "bad.model.json", `{
		"semlint": "1.0",
		"shapes": {"example.api#Thing": {"type": "gadget"}}
	}`)

	if _, err := NewLoader(nil).Load([]string{path}); err == nil {
		t.Fatal("expected unknown shape type error")
	}
}

func TestLoaderRejectsDuplicateAcrossDocuments(t *testing.T) {
	dir := t.TempDir()
	doc := `{"semlint": "1.0", "shapes": {"example.api#Thing": {"type": "structure"}}}`
	a := writeDocument(t, dir, "a.model.json", doc)
	b := writeDocument(t, dir, "b.model.json", doc)

	if _, err := NewLoader(nil).Load([]string{a, b}); err == nil {
		t.Fatal("expected duplicate shape error")
	}
}

func TestLoaderDiscover(t *testing.T) {
	dir := t.TempDir()
	doc := `{"semlint": "1.0", "shapes": {}}`
	writeDocument(t, dir, "api/a.model.json", doc)
	writeDocument(t, dir, "api/nested/b.model.json", doc)
	writeDocument(t, dir, "api/readme.txt", "not a model")

	paths, err := NewLoader(nil).Discover([]string{filepath.Join(dir, "**", "*.model.json")})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(paths) != 2 {
		t.Fatalf("expected 2 documents, got %d: %v", len(paths), paths)
	}
	// Results are sorted.
	if filepath.Base(paths[0]) != "a.model.json" || filepath.Base(paths[1]) != "b.model.json" {
		t.Errorf("unexpected discovery order: %v", paths)
	}
}

func TestLoaderDiscoverLiteralPath(t *testing.T) {
	dir := t.TempDir()
	doc := `{"semlint": "1.0", "shapes": {}}`
	path := writeDocument(t, dir, "a.model.json", doc)

	paths, err := NewLoader(nil).Discover([]string{path})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(paths) != 1 || paths[0] != filepath.Clean(path) {
		t.Errorf("Discover(literal) = %v", paths)
	}
}
