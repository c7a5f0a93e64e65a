package search

import (
	"strings"

	"github.com/starford/raido/internal/registry"
)

// ScoreModules ranks registry modules against a query and returns the top
// limit matches. Each term scores the best of the full and d3-stripped name,
// the best tag, and the best description word.
func ScoreModules(query string, modules []registry.Module, limit int) []Match {
	terms := SplitTerms(query)
	var matches []Match

	for i := range modules {
		m := &modules[i]
		name := strings.ToLower(m.Name)
		short := strings.TrimPrefix(name, "d3-")
		descWords := strings.Fields(strings.ToLower(m.Description))

		var fs fieldScore
		for _, term := range terms {
			fs.add(FieldName, weightName*maxMatch(term, name, short))
			fs.add(FieldTag, weightTag*maxMatch(term, m.Tags...))
			fs.add(FieldDescription, weightDesc*maxMatch(term, descWords...))
		}
		if fs.score > 0 {
			matches = append(matches, Match{Index: i, Score: fs.score, Fields: fs.fieldList()})
		}
	}

	sortMatches(matches)
	return truncate(matches, limit)
}

func maxMatch(term string, fields ...string) float64 {
	best := 0.0
	for _, f := range fields {
		if v := match(f, term); v > best {
			best = v
		}
	}
	return best
}
