package search

import (
	"reflect"
	"testing"

	"github.com/starford/raido/internal/registry"
)

func TestScoreModules_ExactNameWins(t *testing.T) {
	reg := registry.Default()
	modules := reg.Modules()

	matches := ScoreModules("scale", modules, 5)
	if len(matches) == 0 {
		t.Fatal("no matches for scale")
	}
	if got := modules[matches[0].Index].Name; got != "d3-scale" {
		t.Errorf("top match = %q, want d3-scale", got)
	}
	foundName := false
	for _, f := range matches[0].Fields {
		if f == FieldName {
			foundName = true
		}
	}
	if !foundName {
		t.Errorf("top match fields = %v, missing name", matches[0].Fields)
	}
}

func TestScoreModules_CamelCaseQuery(t *testing.T) {
	reg := registry.Default()
	modules := reg.Modules()

	matches := ScoreModules("scaleLinear", modules, 5)
	if len(matches) == 0 {
		t.Fatal("no matches for scaleLinear")
	}
	if got := modules[matches[0].Index].Name; got != "d3-scale" {
		t.Errorf("top match = %q, want d3-scale", got)
	}
}

func TestScoreModules_TagMatch(t *testing.T) {
	modules := []registry.Module{
		{Name: "d3-shape", Description: "Graphical primitives for visualization.", Tags: []string{"arc", "pie", "line", "area"}},
		{Name: "d3-array", Description: "Array manipulation and statistics.", Tags: []string{"statistics", "histogram"}},
	}
	matches := ScoreModules("histogram", modules, 5)
	if len(matches) != 1 || matches[0].Index != 1 {
		t.Fatalf("matches = %v, want only d3-array", matches)
	}
	if !reflect.DeepEqual(matches[0].Fields, []Field{FieldTag}) {
		t.Errorf("fields = %v, want [tag]", matches[0].Fields)
	}
}

func TestScoreModules_NoMatch(t *testing.T) {
	reg := registry.Default()
	if matches := ScoreModules("zzzz-nothing", reg.Modules(), 5); len(matches) != 0 {
		t.Errorf("matches = %v, want none", matches)
	}
}

func TestScoreModules_Deterministic(t *testing.T) {
	reg := registry.Default()
	modules := reg.Modules()

	first := ScoreModules("map data to position", modules, 10)
	second := ScoreModules("map data to position", modules, 10)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical queries ranked differently")
	}
}

func TestScoreModules_LimitApplied(t *testing.T) {
	reg := registry.Default()
	matches := ScoreModules("d3", reg.Modules(), 3)
	if len(matches) > 3 {
		t.Errorf("got %d matches, want at most 3", len(matches))
	}
}
