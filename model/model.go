package model

import (
	"fmt"
	"sort"
)

// Model is an immutable collection of shapes indexed by ID.
// Build one with NewModel or via the Loader; do not mutate it after
// construction.
type Model struct {
	shapes map[ShapeID]*Shape
	sorted []*Shape // sorted by ID, computed once
}

// NewModel builds a model from shapes. Duplicate shape IDs are an
// error: a model document set must define each shape exactly once.
func NewModel(shapes []*Shape) (*Model, error) {
	m := &Model{shapes: make(map[ShapeID]*Shape, len(shapes))}
	for _, s := range shapes {
		if _, exists := m.shapes[s.ID]; exists {
			return nil, fmt.Errorf("duplicate shape %s", s.ID)
		}
		m.shapes[s.ID] = s
	}
	m.sorted = make([]*Shape, 0, len(m.shapes))
	for _, s := range m.shapes {
		m.sorted = append(m.sorted, s)
	}
	sort.Slice(m.sorted, func(i, j int) bool { return m.sorted[i].ID < m.sorted[j].ID })
	return m, nil
}

// Shape returns the shape with the given ID, or nil.
func (m *Model) Shape(id ShapeID) *Shape { return m.shapes[id] }

// Shapes returns all shapes sorted by ID. Callers must not modify the
// returned slice.
func (m *Model) Shapes() []*Shape { return m.sorted }

// Len returns the number of shapes.
func (m *Model) Len() int { return len(m.shapes) }

// Namespaces returns the distinct namespaces used by the model's
// shapes, sorted.
func (m *Model) Namespaces() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range m.sorted {
		ns := s.ID.Namespace()
		if !seen[ns] {
			seen[ns] = true
			out = append(out, ns)
		}
	}
	sort.Strings(out)
	return out
}
