// Package text extracts the human-authored text of a model into a flat,
// deterministically ordered index. Validators consume the index; they
// never decide themselves which text exists.
package text

import "github.com/c360studio/semlint/model"

// LocationKind classifies where a piece of text was found.
type LocationKind int

// Location kinds. Any other value is a programming error.
const (
	// KindNamespace is a namespace name. There is one instance per
	// distinct namespace in the model.
	KindNamespace LocationKind = iota

	// KindShape is a shape name.
	KindShape

	// KindAppliedTrait is a string found inside an applied trait's
	// value.
	KindAppliedTrait
)

func (k LocationKind) String() string {
	switch k {
	case KindNamespace:
		return "namespace"
	case KindShape:
		return "shape"
	case KindAppliedTrait:
		return "applied trait"
	default:
		return "unknown"
	}
}

// Instance is a location-tagged piece of human-authored text.
//
// Shape is set for KindShape and KindAppliedTrait. Trait and
// PropertyPath are set only for KindAppliedTrait; an empty
// PropertyPath means the trait's value is the string itself.
type Instance struct {
	Text         string
	Kind         LocationKind
	Shape        *model.Shape
	Trait        *model.Trait
	PropertyPath []string
}
