package search

import (
	"strings"

	"github.com/starford/raido/internal/gallery"
)

// ScoreExamples ranks gallery examples against a query, top limit. Same
// scheme as modules over title/tags/description, with category and path as
// weaker hints.
func ScoreExamples(query string, examples []gallery.Example, limit int) []Match {
	terms := SplitTerms(query)
	var matches []Match

	for i := range examples {
		ex := &examples[i]
		titleWords := strings.Fields(strings.ToLower(ex.Title))
		descWords := strings.Fields(strings.ToLower(ex.Description))
		path := strings.ToLower(ex.Path)

		var fs fieldScore
		for _, term := range terms {
			fs.add(FieldTitle, weightName*maxMatch(term, titleWords...))
			fs.add(FieldTag, weightTag*maxMatch(term, ex.Tags...))
			fs.add(FieldCategory, weightTag*match(ex.Category, term))
			fs.add(FieldDescription, weightDesc*maxMatch(term, descWords...))
			if strings.Contains(path, term) {
				fs.add(FieldPath, 1)
			}
		}
		if fs.score > 0 {
			matches = append(matches, Match{Index: i, Score: fs.score, Fields: fs.fieldList()})
		}
	}

	sortMatches(matches)
	return truncate(matches, limit)
}
