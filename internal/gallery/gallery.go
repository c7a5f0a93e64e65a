// Package gallery parses the Observable D3 gallery page into an example
// catalog. The gallery is a notebook itself: category cells followed by
// previews([...]) blocks of example objects.
package gallery

import (
	"regexp"
	"strings"
)

// GalleryURL is the notebook the catalog is scraped from.
const GalleryURL = "https://observablehq.com/@d3/gallery"

// Example is one catalogued D3 example.
type Example struct {
	Path        string   `json:"path"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	Author      string   `json:"author"`
	Tags        []string `json:"tags,omitempty"`
}

var (
	previewsRe = regexp.MustCompile(`(?s)previews\(\[(.+?)\]\)`)

	exampleObjRe = regexp.MustCompile(`\{\s*` +
		`path:\s*"([^"]+)",\s*` +
		`thumbnail:\s*"[^"]+",\s*` +
		`title:\s*"([^"]+)",\s*` +
		`author:\s*"([^"]+)"\s*` +
		`\}`)

	categoryNameRe = regexp.MustCompile(`"name"\s*:\s*"([^"]+)"`)

	cellBoundaryRe = regexp.MustCompile(`\},\{"id":`)
)

// unescapeJS undoes the JS string escapes the gallery page source carries.
func unescapeJS(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}

// Parse extracts the example catalog from the gallery page source. Each page
// cell names a category and carries previews blocks of example objects.
func Parse(source string) []Example {
	unescaped := unescapeJS(source)
	var examples []Example

	for _, chunk := range cellBoundaryRe.Split(unescaped, -1) {
		category := ""
		if m := categoryNameRe.FindStringSubmatch(chunk); m != nil {
			category = capitalize(m[1])
		}
		for _, block := range previewsRe.FindAllStringSubmatch(chunk, -1) {
			for _, obj := range exampleObjRe.FindAllStringSubmatch(block[1], -1) {
				examples = append(examples, Example{
					Path:     obj[1],
					Title:    obj[2],
					Author:   obj[3],
					Category: category,
				})
			}
		}
	}
	return examples
}

// Categories returns distinct category names with example counts, in first
// appearance order.
func Categories(examples []Example) ([]string, map[string]int) {
	counts := make(map[string]int)
	var order []string
	for _, ex := range examples {
		if _, seen := counts[ex.Category]; !seen {
			order = append(order, ex.Category)
		}
		counts[ex.Category]++
	}
	return order, counts
}

// FilterCategory returns the examples in the named category
// (case-insensitive), preserving catalog order.
func FilterCategory(examples []Example, category string) []Example {
	want := strings.ToLower(category)
	var out []Example
	for _, ex := range examples {
		if strings.ToLower(ex.Category) == want {
			out = append(out, ex)
		}
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
