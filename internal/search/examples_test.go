package search

import (
	"testing"

	"github.com/starford/raido/internal/gallery"
)

var sampleExamples = []gallery.Example{
	{
		Path:        "@d3/bar-chart",
		Title:       "Bar chart",
		Description: "Relative frequency of letters in the English language.",
		Category:    "Charts",
		Tags:        []string{"bar", "rect"},
	},
	{
		Path:        "@d3/force-directed-graph",
		Title:       "Force-directed graph",
		Description: "A network of character co-occurrence.",
		Category:    "Networks",
		Tags:        []string{"force", "simulation", "graph"},
	},
	{
		Path:        "@d3/zoomable-treemap",
		Title:       "Zoomable treemap",
		Description: "Click a cell to zoom in, or the top to zoom out.",
		Category:    "Hierarchies",
		Tags:        []string{"treemap", "zoom"},
	},
}

func TestScoreExamples_TitleWins(t *testing.T) {
	matches := ScoreExamples("bar chart", sampleExamples, 10)
	if len(matches) == 0 {
		t.Fatal("no matches")
	}
	if matches[0].Index != 0 {
		t.Errorf("top match = %q, want bar chart", sampleExamples[matches[0].Index].Title)
	}
}

func TestScoreExamples_TagAndCategory(t *testing.T) {
	matches := ScoreExamples("simulation", sampleExamples, 10)
	if len(matches) != 1 || matches[0].Index != 1 {
		t.Fatalf("matches = %v, want only the force example", matches)
	}

	matches = ScoreExamples("networks", sampleExamples, 10)
	if len(matches) == 0 || matches[0].Index != 1 {
		t.Fatalf("category query missed the force example: %v", matches)
	}
}

func TestScoreExamples_PathHint(t *testing.T) {
	matches := ScoreExamples("treemap", sampleExamples, 10)
	if len(matches) == 0 || matches[0].Index != 2 {
		t.Fatalf("matches = %v, want the treemap example first", matches)
	}
	hasPath := false
	for _, f := range matches[0].Fields {
		if f == FieldPath {
			hasPath = true
		}
	}
	if !hasPath {
		t.Errorf("fields = %v, missing path", matches[0].Fields)
	}
}

func TestScoreExamples_NoMatch(t *testing.T) {
	if matches := ScoreExamples("chord diagram", sampleExamples, 10); len(matches) != 0 {
		t.Errorf("matches = %v, want none", matches)
	}
}
