// Package notebook models an Observable notebook as a graph of named,
// interdependent cells and extracts minimal standalone example code from it.
package notebook

import "regexp"

// Kind classifies how a cell declares its value.
type Kind int

const (
	KindPlain Kind = iota
	KindViewof
	KindMutable
	KindImport
)

// Cell is one unit of a notebook. Name is empty for anonymous cells, which
// cannot be referenced by other cells. Inputs is the dependency list declared
// in the runtime export; reference resolution does not trust it, but it is
// used to detect malformed exports.
type Cell struct {
	ID     string
	Name   string
	Kind   Kind
	Body   string
	Doc    bool
	Async  bool
	Inputs []string

	// ImportFrom is the source notebook URL for KindImport cells.
	ImportFrom string
}

// Graph holds a notebook's cells in original order plus a name index.
// Cell names are unique within a notebook (the platform enforces this).
type Graph struct {
	cells  []*Cell
	byName map[string]*Cell
}

// NewGraph builds a Graph from cells in notebook order.
func NewGraph(cells []*Cell) *Graph {
	g := &Graph{cells: cells, byName: make(map[string]*Cell, len(cells))}
	for _, c := range cells {
		if c.Name != "" {
			g.byName[c.Name] = c
		}
	}
	return g
}

// Cells returns all cells in original notebook order.
func (g *Graph) Cells() []*Cell { return g.cells }

// Lookup returns the cell defining name, or nil.
func (g *Graph) Lookup(name string) *Cell { return g.byName[name] }

var identRe = regexp.MustCompile(`[A-Za-z_$][A-Za-z0-9_$]*`)

// ResolveReferences returns the other cells whose name appears as an
// identifier in c's body, in notebook order. Matching is purely textual:
// a locally shadowed identifier that collides with a cell name counts as a
// reference. The extra cell is still emitted before its false dependent,
// which costs nothing in the combined output.
func (g *Graph) ResolveReferences(c *Cell) []*Cell {
	if c.Doc {
		return nil
	}
	seen := make(map[string]struct{})
	for _, id := range identRe.FindAllString(c.Body, -1) {
		seen[id] = struct{}{}
	}
	var refs []*Cell
	for _, other := range g.cells {
		if other == c || other.Name == "" {
			continue
		}
		if _, ok := seen[other.Name]; ok {
			refs = append(refs, other)
		}
	}
	return refs
}

// AncestorsOf returns the closure of cells transitively required to define
// every name in roots, in original notebook order. Roots themselves are
// included. A reference path that revisits a cell already being expanded
// yields a CycleError.
func (g *Graph) AncestorsOf(roots ...*Cell) ([]*Cell, error) {
	const (
		white = iota // unvisited
		gray         // on the current path
		black        // done
	)
	state := make(map[*Cell]int, len(g.cells))

	var visit func(c *Cell, path []string) error
	visit = func(c *Cell, path []string) error {
		switch state[c] {
		case black:
			return nil
		case gray:
			return &CycleError{Path: append(path, cellLabel(c))}
		}
		state[c] = gray
		path = append(path, cellLabel(c))
		if c.Name != "" && referencesName(c, c.Name) {
			return &CycleError{Path: append(path, c.Name)}
		}
		for _, ref := range g.ResolveReferences(c) {
			if err := visit(ref, path); err != nil {
				return err
			}
		}
		state[c] = black
		return nil
	}

	for _, r := range roots {
		if err := visit(r, nil); err != nil {
			return nil, err
		}
	}

	var closure []*Cell
	for _, c := range g.cells {
		if state[c] == black {
			closure = append(closure, c)
		}
	}
	return closure, nil
}

// referencesName reports whether c's body mentions name as an identifier.
// A cell naming itself is a direct cycle, not a recursive definition.
func referencesName(c *Cell, name string) bool {
	if c.Doc {
		return false
	}
	for _, id := range identRe.FindAllString(c.Body, -1) {
		if id == name {
			return true
		}
	}
	return false
}

func cellLabel(c *Cell) string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}
