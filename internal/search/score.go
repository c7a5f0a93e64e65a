// Package search ranks modules, examples, and documentation sections against
// free-text queries. All scoring is pure: equal inputs give equal ordered
// output, with original order breaking score ties.
package search

import (
	"regexp"
	"sort"
	"strings"
)

// Field identifies which part of a candidate matched the query.
type Field string

const (
	FieldName        Field = "name"
	FieldTag         Field = "tag"
	FieldDescription Field = "description"
	FieldTitle       Field = "title"
	FieldCategory    Field = "category"
	FieldPath        Field = "path"
	FieldHeading     Field = "heading"
	FieldContent     Field = "content"
)

// Field weights. A module literally named after the query is definitionally
// the best answer, so name dominates tags, which dominate description prose.
const (
	weightName = 10.0
	weightTag  = 3.0
	weightDesc = 2.0
)

// Match is one ranked candidate. Index points into the caller's candidate
// slice, so ties resolved by ascending Index preserve original order.
type Match struct {
	Index   int
	Score   float64
	Fields  []Field
	Excerpt string
}

var camelRe = regexp.MustCompile(`[a-z]+|[A-Z][a-z]*`)

// SplitTerms lowercases and splits a query, decomposing camelCase:
// "scaleLinear" yields scale, linear, and scalelinear.
func SplitTerms(query string) []string {
	var terms []string
	for _, token := range strings.Fields(query) {
		parts := camelRe.FindAllString(token, -1)
		if len(parts) > 1 {
			for _, p := range parts {
				terms = append(terms, strings.ToLower(p))
			}
		}
		terms = append(terms, strings.ToLower(token))
	}
	return terms
}

// match scores a term against a single field value: 1 for an exact
// case-insensitive match, the containment ratio for a substring hit, 0
// otherwise. Longer fields dilute incidental containment.
func match(field, term string) float64 {
	field = strings.ToLower(field)
	if field == term {
		return 1
	}
	if field != "" && strings.Contains(field, term) {
		return float64(len(term)) / float64(len(field))
	}
	return 0
}

type fieldScore struct {
	score  float64
	fields map[Field]struct{}
}

func (fs *fieldScore) add(f Field, v float64) {
	if v <= 0 {
		return
	}
	fs.score += v
	if fs.fields == nil {
		fs.fields = make(map[Field]struct{})
	}
	fs.fields[f] = struct{}{}
}

func (fs *fieldScore) fieldList() []Field {
	order := []Field{
		FieldName, FieldTitle, FieldTag, FieldCategory,
		FieldDescription, FieldPath, FieldHeading, FieldContent,
	}
	var out []Field
	for _, f := range order {
		if _, ok := fs.fields[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// sortMatches orders by score descending, candidate order ascending.
func sortMatches(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
}

func truncate(matches []Match, limit int) []Match {
	if limit > 0 && len(matches) > limit {
		return matches[:limit]
	}
	return matches
}
