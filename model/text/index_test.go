package text

import (
	"reflect"
	"testing"

	"github.com/c360studio/semlint/model"
)

func mustModel(t *testing.T, shapes ...*model.Shape) *model.Model {
	t.Helper()
	m, err := model.NewModel(shapes)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return m
}

func TestIndexOrdering(t *testing.T) {
	m := mustModel(t,
		&model.Shape{ID: "zoo.api#Zebra", Type: model.TypeStructure},
		&model.Shape{ID: "example.api#City", Type: model.TypeStructure},
	)

	instances := NewIndex(m).Instances()

	var summary []string
	for _, inst := range instances {
		summary = append(summary, inst.Kind.String()+":"+inst.Text)
	}
	want := []string{
		"namespace:example.api",
		"namespace:zoo.api",
		"shape:City",
		"shape:Zebra",
	}
	if !reflect.DeepEqual(summary, want) {
		t.Errorf("index order = %v, want %v", summary, want)
	}
}

func TestIndexWalksTraitValues(t *testing.T) {
	shape := &model.Shape{
		ID:   "example.api#City",
		Type: model.TypeStructure,
		Traits: []model.Trait{
			{
				ID: "example.api#externalDocumentation",
				Value: map[string]any{
					"title": "City docs",
					"links": []any{"first", "second"},
					"count": float64(3),
					"draft": true,
				},
			},
		},
	}
	m := mustModel(t, shape)

	var traitInstances []Instance
	for _, inst := range NewIndex(m).Instances() {
		if inst.Kind == KindAppliedTrait {
			traitInstances = append(traitInstances, inst)
		}
	}

	// Map keys are walked sorted; numbers and booleans carry no text.
	wantTexts := []string{"first", "second", "City docs"}
	wantPaths := [][]string{{"links", "0"}, {"links", "1"}, {"title"}}
	if len(traitInstances) != len(wantTexts) {
		t.Fatalf("expected %d trait instances, got %d", len(wantTexts), len(traitInstances))
	}
	for i, inst := range traitInstances {
		if inst.Text != wantTexts[i] {
			t.Errorf("instance %d text = %q, want %q", i, inst.Text, wantTexts[i])
		}
		if !reflect.DeepEqual(inst.PropertyPath, wantPaths[i]) {
			t.Errorf("instance %d path = %v, want %v", i, inst.PropertyPath, wantPaths[i])
		}
		if inst.Shape != shape {
			t.Errorf("instance %d shape mismatch", i)
		}
		if inst.Trait == nil || inst.Trait.ID != "example.api#externalDocumentation" {
			t.Errorf("instance %d trait mismatch", i)
		}
	}
}

func TestIndexScalarTraitValueHasEmptyPath(t *testing.T) {
	m := mustModel(t, &model.Shape{
		ID:   "example.api#City",
		Type: model.TypeStructure,
		Traits: []model.Trait{
			{ID: "example.api#documentation", Value: "A city"},
		},
	})

	var traitInstances []Instance
	for _, inst := range NewIndex(m).Instances() {
		if inst.Kind == KindAppliedTrait {
			traitInstances = append(traitInstances, inst)
		}
	}

	if len(traitInstances) != 1 {
		t.Fatalf("expected 1 trait instance, got %d", len(traitInstances))
	}
	if traitInstances[0].Text != "A city" {
		t.Errorf("text = %q", traitInstances[0].Text)
	}
	if len(traitInstances[0].PropertyPath) != 0 {
		t.Errorf("path = %v, want empty", traitInstances[0].PropertyPath)
	}
}

func TestIndexAnnotationTraitYieldsNoInstances(t *testing.T) {
	m := mustModel(t, &model.Shape{
		ID:   "example.api#City",
		Type: model.TypeStructure,
		Traits: []model.Trait{
			{ID: "example.api#deprecated", Value: nil},
		},
	})

	for _, inst := range NewIndex(m).Instances() {
		if inst.Kind == KindAppliedTrait {
			t.Errorf("unexpected trait instance %+v", inst)
		}
	}
}

func TestIndexIsDeterministic(t *testing.T) {
	m := mustModel(t,
		&model.Shape{
			ID:   "example.api#City",
			Type: model.TypeStructure,
			Traits: []model.Trait{
				{ID: "example.api#tags", Value: map[string]any{"b": "two", "a": "one", "c": "three"}},
			},
		},
	)

	first := NewIndex(m).Instances()
	second := NewIndex(m).Instances()
	if !reflect.DeepEqual(first, second) {
		t.Error("index is not deterministic across builds")
	}
}
