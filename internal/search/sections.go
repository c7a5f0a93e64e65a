package search

import (
	"iter"
	"sort"
	"strings"

	"github.com/starford/raido/internal/docs"
)

// Per-term weights for section scoring. A term in a section's own heading
// outranks any body-only match with the same occurrence count.
const (
	headingBonus  = 2.0
	excerptRadius = 120
)

// SectionMatch is a ranked documentation section with a breadcrumb and a
// bounded excerpt centered on the first hit.
type SectionMatch struct {
	Section *docs.Section
	Score   float64
	Fields  []Field
	Excerpt string
}

// ScoreSections ranks sections by query-token occurrence in their content
// plus a heading bonus, keeping document order on ties. Returns at most
// limit matches.
func ScoreSections(query string, sections iter.Seq[*docs.Section], limit int) []SectionMatch {
	terms := strings.Fields(strings.ToLower(query))
	var matches []SectionMatch

	for s := range sections {
		content := strings.ToLower(s.Content)
		heading := strings.ToLower(s.Heading())

		var fs fieldScore
		firstHit := -1
		for _, term := range terms {
			if n := strings.Count(content, term); n > 0 {
				fs.add(FieldContent, float64(n))
				if i := strings.Index(content, term); firstHit < 0 || i < firstHit {
					firstHit = i
				}
			}
			if strings.Contains(heading, term) {
				fs.add(FieldHeading, headingBonus)
			}
		}
		if fs.score > 0 {
			matches = append(matches, SectionMatch{
				Section: s,
				Score:   fs.score,
				Fields:  fs.fieldList(),
				Excerpt: excerpt(s.Content, firstHit),
			})
		}
	}

	sortSectionMatches(matches)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// sortSectionMatches keeps document pre-order for equal scores.
func sortSectionMatches(matches []SectionMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
}

// excerpt returns a window of content around the first match offset.
func excerpt(content string, firstHit int) string {
	if firstHit < 0 {
		firstHit = 0
	}
	start := firstHit - excerptRadius
	if start < 0 {
		start = 0
	}
	end := firstHit + excerptRadius
	if end > len(content) {
		end = len(content)
	}
	out := strings.TrimSpace(content[start:end])
	if start > 0 {
		out = "…" + out
	}
	if end < len(content) {
		out += "…"
	}
	return out
}
