// Package model provides the in-memory representation of a semantic model:
// shapes, traits, and their source locations. Models are decoded from
// already-serialized model JSON documents; this package never parses
// source text.
package model

import (
	"fmt"
	"strings"
)

// ShapeID is an absolute shape identifier of the form "namespace#name".
type ShapeID string

// ParseShapeID validates and returns a ShapeID.
func ParseShapeID(s string) (ShapeID, error) {
	ns, name, ok := strings.Cut(s, "#")
	if !ok || ns == "" || name == "" {
		return "", fmt.Errorf("invalid shape ID %q: expected namespace#name", s)
	}
	return ShapeID(s), nil
}

// Namespace returns the namespace part of the ID.
func (id ShapeID) Namespace() string {
	ns, _, _ := strings.Cut(string(id), "#")
	return ns
}

// Name returns the name part of the ID.
func (id ShapeID) Name() string {
	_, name, _ := strings.Cut(string(id), "#")
	return name
}

func (id ShapeID) String() string { return string(id) }

// ShapeType classifies a shape.
type ShapeType string

// Shape types understood by the model loader.
const (
	TypeStructure ShapeType = "structure"
	TypeService   ShapeType = "service"
	TypeOperation ShapeType = "operation"
	TypeResource  ShapeType = "resource"
	TypeUnion     ShapeType = "union"
	TypeList      ShapeType = "list"
	TypeMap       ShapeType = "map"
	TypeEnum      ShapeType = "enum"
	TypeString    ShapeType = "string"
	TypeInteger   ShapeType = "integer"
	TypeLong      ShapeType = "long"
	TypeDouble    ShapeType = "double"
	TypeBoolean   ShapeType = "boolean"
	TypeBlob      ShapeType = "blob"
	TypeTimestamp ShapeType = "timestamp"
)

var knownShapeTypes = map[ShapeType]bool{
	TypeStructure: true,
	TypeService:   true,
	TypeOperation: true,
	TypeResource:  true,
	TypeUnion:     true,
	TypeList:      true,
	TypeMap:       true,
	TypeEnum:      true,
	TypeString:    true,
	TypeInteger:   true,
	TypeLong:      true,
	TypeDouble:    true,
	TypeBoolean:   true,
	TypeBlob:      true,
	TypeTimestamp: true,
}

// Valid reports whether t is a shape type the loader accepts.
func (t ShapeType) Valid() bool { return knownShapeTypes[t] }

func (t ShapeType) String() string { return string(t) }

// SourceLocation identifies where a model element was declared.
// The zero value means "no location" (e.g. synthesized elements or
// namespace-level findings).
type SourceLocation struct {
	File   string `json:"filename,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// NoLocation is the absent source location.
var NoLocation = SourceLocation{}

// IsNone reports whether the location is absent.
func (l SourceLocation) IsNone() bool { return l == NoLocation }

func (l SourceLocation) String() string {
	if l.IsNone() {
		return "<none>"
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Trait is a trait applied to a shape. Value holds the trait's literal
// value as decoded JSON (string, float64, bool, []any, map[string]any,
// or nil for annotation traits).
type Trait struct {
	ID     ShapeID
	Value  any
	Source SourceLocation
}

// IdiomaticName returns the trait name as it is written at an apply
// site: the name part of the trait ID, without the namespace.
func (t Trait) IdiomaticName() string { return t.ID.Name() }

// Shape is a named element of the model together with its applied
// traits. Traits is kept sorted by trait ID so iteration is
// deterministic.
type Shape struct {
	ID     ShapeID
	Type   ShapeType
	Traits []Trait
	Source SourceLocation
}
