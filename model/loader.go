package model

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-json"
)

// DocumentVersion is the model document version the loader accepts.
const DocumentVersion = "1.0"

// document is the on-disk model JSON document.
type document struct {
	Semlint string                `json:"semlint"`
	Shapes  map[string]shapeEntry `json:"shapes"`
}

type shapeEntry struct {
	Type   string          `json:"type"`
	Traits map[string]any  `json:"traits,omitempty"`
	Source *SourceLocation `json:"source,omitempty"`
}

// Loader reads model JSON documents and assembles them into a single
// Model.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a model loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Discover expands doublestar glob patterns to model document paths.
// Non-glob patterns are returned as-is when the file exists. Results
// are deduplicated and sorted.
func (l *Loader) Discover(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("resolve pattern %q: %w", pattern, err)
		}
		if matches == nil {
			// A literal path with no glob metacharacters must exist.
			if _, statErr := os.Stat(pattern); statErr == nil {
				matches = []string{pattern}
			}
		}
		for _, m := range matches {
			p := filepath.Clean(m)
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Load reads and merges the given model documents into one Model.
func (l *Loader) Load(paths []string) (*Model, error) {
	var shapes []*Shape
	for _, path := range paths {
		fileShapes, err := l.loadFile(path)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, fileShapes...)
	}
	m, err := NewModel(shapes)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("model loaded", "documents", len(paths), "shapes", m.Len())
	return m, nil
}

func (l *Loader) loadFile(path string) ([]*Shape, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model document: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse model document %s: %w", path, err)
	}
	if doc.Semlint != DocumentVersion {
		return nil, fmt.Errorf("model document %s: unsupported version %q", path, doc.Semlint)
	}

	shapes := make([]*Shape, 0, len(doc.Shapes))
	for rawID, entry := range doc.Shapes {
		id, err := ParseShapeID(rawID)
		if err != nil {
			return nil, fmt.Errorf("model document %s: %w", path, err)
		}
		st := ShapeType(entry.Type)
		if !st.Valid() {
			return nil, fmt.Errorf("model document %s: shape %s has unknown type %q", path, id, entry.Type)
		}

		source := SourceLocation{File: path}
		if entry.Source != nil {
			source = *entry.Source
			if source.File == "" {
				source.File = path
			}
		}

		shape := &Shape{ID: id, Type: st, Source: source}
		for rawTraitID, value := range entry.Traits {
			traitID, err := ParseShapeID(rawTraitID)
			if err != nil {
				return nil, fmt.Errorf("model document %s: shape %s: trait %w", path, id, err)
			}
			shape.Traits = append(shape.Traits, Trait{
				ID:     traitID,
				Value:  value,
				Source: source,
			})
		}
		sort.Slice(shape.Traits, func(i, j int) bool { return shape.Traits[i].ID < shape.Traits[j].ID })
		shapes = append(shapes, shape)
	}
	return shapes, nil
}
