// Package docs builds a navigable section tree from a markdown document so
// searches can target individual headed regions.
package docs

import (
	"iter"
	"regexp"
	"strings"
)

var atxHeadingRe = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*$`)

// Span is a half-open byte range in the source document.
type Span struct {
	Start int
	End   int
}

// Section is a node in the document tree. Content holds only the section's
// own text: a descendant section's text is never included. Span covers the
// heading line through the end of the whole subtree.
type Section struct {
	HeadingPath []string
	Level       int
	Content     string
	Span        Span
	Children    []*Section
}

// Heading returns the section's own heading text, "" for the document root.
func (s *Section) Heading() string {
	if len(s.HeadingPath) == 0 {
		return ""
	}
	return s.HeadingPath[len(s.HeadingPath)-1]
}

// Index is a parsed markdown document.
type Index struct {
	root *Section
}

// Parse builds a section tree from markdown source. Headings are ATX markers
// at any depth; nesting follows heading-level increase. A document without
// headings degrades to a single root section spanning the whole text.
func Parse(doc string) *Index {
	root := &Section{Level: 0, Span: Span{Start: 0, End: len(doc)}}
	stack := []*Section{root}
	var content []string
	contentFor := root

	flush := func() {
		contentFor.Content = strings.TrimSpace(strings.Join(content, "\n"))
		content = content[:0]
	}

	offset := 0
	for _, line := range strings.SplitAfter(doc, "\n") {
		m := atxHeadingRe.FindStringSubmatch(strings.TrimRight(line, "\n"))
		if m == nil {
			content = append(content, strings.TrimRight(line, "\n"))
			offset += len(line)
			continue
		}
		flush()

		level := len(m[1])
		for len(stack) > 1 && stack[len(stack)-1].Level >= level {
			stack[len(stack)-1].Span.End = offset
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]

		sec := &Section{
			HeadingPath: append(append([]string(nil), parent.HeadingPath...), m[2]),
			Level:       level,
			Span:        Span{Start: offset, End: len(doc)},
		}
		parent.Children = append(parent.Children, sec)
		stack = append(stack, sec)
		contentFor = sec
		offset += len(line)
	}
	flush()

	return &Index{root: root}
}

// Root returns the document root section.
func (ix *Index) Root() *Section { return ix.root }

// Flatten returns a restartable pre-order traversal of every section in
// document order, root first.
func (ix *Index) Flatten() iter.Seq[*Section] {
	return func(yield func(*Section) bool) {
		var walk func(s *Section) bool
		walk = func(s *Section) bool {
			if !yield(s) {
				return false
			}
			for _, child := range s.Children {
				if !walk(child) {
					return false
				}
			}
			return true
		}
		walk(ix.root)
	}
}

// SectionsUnder returns the subtree rooted at the given heading path, or nil
// when no such path exists. Heading comparison is case-insensitive.
func (ix *Index) SectionsUnder(path ...string) *Section {
	cur := ix.root
	for _, want := range path {
		var next *Section
		for _, child := range cur.Children {
			if strings.EqualFold(child.Heading(), want) {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}
