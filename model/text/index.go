package text

import (
	"sort"
	"strconv"

	"github.com/c360studio/semlint/model"
)

// Index is the extracted text of one model. The instance order is
// deterministic for a given model: namespaces first (sorted), then per
// shape (sorted by ID) the shape name followed by the strings of each
// applied trait (traits sorted by ID, values walked depth-first with
// map keys sorted).
type Index struct {
	instances []Instance
}

// NewIndex extracts all text instances from the model.
func NewIndex(m *model.Model) *Index {
	idx := &Index{}

	for _, ns := range m.Namespaces() {
		idx.instances = append(idx.instances, Instance{
			Text: ns,
			Kind: KindNamespace,
		})
	}

	for _, shape := range m.Shapes() {
		idx.instances = append(idx.instances, Instance{
			Text:  shape.ID.Name(),
			Kind:  KindShape,
			Shape: shape,
		})
		for i := range shape.Traits {
			trait := &shape.Traits[i]
			idx.walkTraitValue(shape, trait, trait.Value, nil)
		}
	}

	return idx
}

// Instances returns the extracted text in index order. Callers must
// not modify the returned slice.
func (idx *Index) Instances() []Instance { return idx.instances }

// walkTraitValue records an instance for every string in a trait
// value. Path segments are map keys and decimal array indices.
func (idx *Index) walkTraitValue(shape *model.Shape, trait *model.Trait, value any, path []string) {
	switch v := value.(type) {
	case string:
		idx.instances = append(idx.instances, Instance{
			Text:         v,
			Kind:         KindAppliedTrait,
			Shape:        shape,
			Trait:        trait,
			PropertyPath: append([]string(nil), path...),
		})
	case []any:
		for i, elem := range v {
			idx.walkTraitValue(shape, trait, elem, append(path, strconv.Itoa(i)))
		}
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			idx.walkTraitValue(shape, trait, v[k], append(path, k))
		}
	}
	// Numbers, booleans, and nulls carry no human-authored text.
}
