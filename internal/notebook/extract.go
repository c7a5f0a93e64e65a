package notebook

import (
	"fmt"
	"regexp"
	"strings"
)

// Result is the standalone output of a single extraction. The code is an
// ordered concatenation of the resolved cells with reactive syntax rewritten
// to plain declarations.
type Result struct {
	Code        string
	Description string
	DataURLs    []string
	Imports     []HelperImport
}

// HelperImport names a helper pulled in from another notebook.
type HelperImport struct {
	Name string
	URL  string
}

// Runtime builtins injected by the Observable runtime. Declared inputs in
// this set are not cell references and never count as unresolved.
var builtins = map[string]struct{}{
	"md": {}, "html": {}, "svg": {}, "tex": {}, "dot": {},
	"DOM": {}, "FileAttachment": {}, "Generators": {}, "Mutable": {},
	"Inputs": {}, "Plot": {}, "d3": {}, "topojson": {}, "require": {},
	"invalidation": {}, "visibility": {}, "now": {}, "width": {}, "height": {},
}

// Recognized data-loading call shapes. Deliberately a short, closed list:
// a general expression parser is out of proportion here, and a closed list
// keeps false negatives predictable.
var (
	fileAttachmentCallRe = regexp.MustCompile(`FileAttachment\("([^"]+)"\)`)
	dataCallRe           = regexp.MustCompile(`(?:d3\.(?:csv|tsv|dsv|json|text)|fetch)\("(https?://[^"]+)"`)
)

// Extract resolves the minimal cell closure for the notebook's root cell and
// emits standalone code, the leading prose description, and the data URLs the
// retained cells load. attachments is the notebook's declared attachment
// table used to resolve FileAttachment references.
func Extract(g *Graph, attachments map[string]string) (*Result, error) {
	root := selectRoot(g)
	if root == nil {
		return nil, &RootNotFoundError{CellCount: len(g.Cells())}
	}

	closure, err := g.AncestorsOf(root)
	if err != nil {
		return nil, err
	}
	if err := checkResolved(g, closure); err != nil {
		return nil, err
	}

	ordered := orderClosure(g, closure)

	var (
		lines    []string
		dataURLs []string
		seenURL  = make(map[string]struct{})
		imports  []HelperImport
	)
	addURL := func(u string) {
		if _, dup := seenURL[u]; dup || u == "" {
			return
		}
		seenURL[u] = struct{}{}
		dataURLs = append(dataURLs, u)
	}
	for _, c := range ordered {
		if c.Kind == KindImport {
			imports = append(imports, HelperImport{Name: c.Name, URL: c.ImportFrom})
		}
		lines = append(lines, emitCell(c))
		for _, m := range fileAttachmentCallRe.FindAllStringSubmatch(c.Body, -1) {
			addURL(attachments[m[1]])
		}
		for _, m := range dataCallRe.FindAllStringSubmatch(c.Body, -1) {
			addURL(m[1])
		}
	}

	return &Result{
		Code:        strings.Join(lines, "\n\n"),
		Description: description(g),
		DataURLs:    dataURLs,
		Imports:     imports,
	}, nil
}

// selectRoot picks the extraction entry point: a code cell referenced by no
// other cell. A terminal cell named "chart" wins (the gallery convention for
// the visible output); otherwise the last terminal cell in notebook order.
// Notebooks carry no explicit entry-point marker, so this is a documented
// heuristic, not a guess per notebook.
func selectRoot(g *Graph) *Cell {
	referenced := make(map[*Cell]struct{})
	for _, c := range g.Cells() {
		for _, ref := range g.ResolveReferences(c) {
			referenced[ref] = struct{}{}
		}
	}
	var last *Cell
	for _, c := range g.Cells() {
		if c.Doc || c.Kind == KindImport {
			continue
		}
		if _, ok := referenced[c]; ok {
			continue
		}
		if c.Name == "chart" {
			return c
		}
		last = c
	}
	return last
}

// checkResolved verifies that every declared input of a closure member is
// either a runtime builtin or a cell in the graph. Anything else means the
// export is malformed; retrying cannot fix fixed input.
func checkResolved(g *Graph, closure []*Cell) error {
	for _, c := range closure {
		for _, input := range c.Inputs {
			name := strings.TrimPrefix(strings.TrimPrefix(input, "viewof "), "mutable ")
			if _, ok := builtins[name]; ok {
				continue
			}
			if g.Lookup(name) == nil {
				return &UnresolvedReferenceError{Cell: cellLabel(c), Reference: input}
			}
		}
	}
	return nil
}

// orderClosure emits a topological order of the closure: every cell after all
// cells it references, ties broken by original notebook position. The closure
// is already known to be acyclic.
func orderClosure(g *Graph, closure []*Cell) []*Cell {
	inClosure := make(map[*Cell]struct{}, len(closure))
	for _, c := range closure {
		inClosure[c] = struct{}{}
	}
	emitted := make(map[*Cell]struct{}, len(closure))
	ordered := make([]*Cell, 0, len(closure))
	for len(ordered) < len(closure) {
		progress := false
		for _, c := range closure {
			if _, done := emitted[c]; done {
				continue
			}
			ready := true
			for _, ref := range g.ResolveReferences(c) {
				if _, in := inClosure[ref]; !in {
					continue
				}
				if _, done := emitted[ref]; !done {
					ready = false
					break
				}
			}
			if ready {
				emitted[c] = struct{}{}
				ordered = append(ordered, c)
				progress = true
				break
			}
		}
		if !progress {
			break
		}
	}
	return ordered
}

// emitCell rewrites one cell to plain declarations. viewof cells become plain
// value declarations, mutable cells become let declarations, block bodies are
// wrapped so the name binding survives concatenation. Cross-cell property
// chains (other.prop) need no rewrite: each cell keeps its original name.
func emitCell(c *Cell) string {
	if c.Kind == KindImport {
		return fmt.Sprintf("// %s is imported from %s", c.Name, c.ImportFrom)
	}

	expr, isExpr := stripReturn(c.Body)
	if isExpr {
		switch {
		case c.Name == "":
			return expr
		case c.Kind == KindMutable:
			return fmt.Sprintf("let %s = %s;", c.Name, expr)
		default:
			return fmt.Sprintf("const %s = %s;", c.Name, expr)
		}
	}

	fn := "() =>"
	call := "()"
	if c.Async {
		fn = "async () =>"
		call = "()"
	}
	iife := fmt.Sprintf("(%s {\n%s\n})%s", fn, c.Body, call)
	if c.Async {
		iife = "await " + iife
	}
	switch {
	case c.Name == "":
		return iife
	case c.Kind == KindMutable:
		return fmt.Sprintf("let %s = %s;", c.Name, iife)
	default:
		return fmt.Sprintf("const %s = %s;", c.Name, iife)
	}
}

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	mdLinkRe     = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	emphasisRe   = regexp.MustCompile(`[*_]+([^*_]+)[*_]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	breadcrumbRe = regexp.MustCompile(`^.*?D3\s*` + "›" + `\s*Gallery\s*`)
	headingRe    = regexp.MustCompile(`^#\s+\S[^#]*?\s+`)
)

// description concatenates the prose cells preceding the first code cell.
// Prose interleaved after the first code cell belongs to neither description
// nor code.
func description(g *Graph) string {
	var parts []string
	for _, c := range g.Cells() {
		if !c.Doc {
			break
		}
		if text := cleanProse(c.Body); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}

// cleanProse reduces notebook markdown to plain text: tags, link syntax, and
// emphasis markers go, along with the gallery breadcrumb header and the
// leading title heading.
func cleanProse(md string) string {
	text := htmlTagRe.ReplaceAllString(md, "")
	text = mdLinkRe.ReplaceAllString(text, "$1")
	text = emphasisRe.ReplaceAllString(text, "$1")
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	text = breadcrumbRe.ReplaceAllString(text, "")
	text = headingRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
