package notebook

import (
	"errors"
	"testing"
)

func graphOf(cells ...*Cell) *Graph {
	return NewGraph(cells)
}

func names(cells []*Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.Name
	}
	return out
}

func TestResolveReferences_ByName(t *testing.T) {
	a := &Cell{ID: "_a", Name: "a", Body: "1 + 1"}
	b := &Cell{ID: "_b", Name: "b", Body: "a * 2"}
	g := graphOf(a, b)

	refs := g.ResolveReferences(b)
	if len(refs) != 1 || refs[0] != a {
		t.Errorf("refs = %v, want [a]", names(refs))
	}
	if got := g.ResolveReferences(a); got != nil {
		t.Errorf("a refs = %v, want none", names(got))
	}
}

func TestResolveReferences_IgnoresDocCells(t *testing.T) {
	a := &Cell{ID: "_a", Name: "a", Body: "1"}
	md := &Cell{ID: "_1", Doc: true, Body: "this prose mentions a"}
	g := graphOf(a, md)

	if got := g.ResolveReferences(md); got != nil {
		t.Errorf("doc cell refs = %v, want none", names(got))
	}
}

func TestResolveReferences_ShadowedNameStillCounts(t *testing.T) {
	// Name matching is deliberately scope-blind: a local "data" declaration
	// still pulls in the data cell.
	data := &Cell{ID: "_data", Name: "data", Body: "[1, 2, 3]"}
	chart := &Cell{ID: "_chart", Name: "chart", Body: "{ const data = []; return data; }"}
	g := graphOf(data, chart)

	refs := g.ResolveReferences(chart)
	if len(refs) != 1 || refs[0] != data {
		t.Errorf("refs = %v, want [data]", names(refs))
	}
}

func TestAncestorsOf_SimpleChain(t *testing.T) {
	a := &Cell{ID: "_a", Name: "a", Body: "1"}
	b := &Cell{ID: "_b", Name: "b", Body: "a + 1"}
	g := graphOf(a, b)

	closure, err := g.AncestorsOf(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(closure) != 2 || closure[0] != a || closure[1] != b {
		t.Errorf("closure = %v, want [a b]", names(closure))
	}
}

func TestAncestorsOf_ExcludesUnrelated(t *testing.T) {
	a := &Cell{ID: "_a", Name: "a", Body: "1"}
	b := &Cell{ID: "_b", Name: "b", Body: "a + 1"}
	unused := &Cell{ID: "_u", Name: "unused", Body: "42"}
	g := graphOf(a, unused, b)

	closure, err := g.AncestorsOf(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range closure {
		if c == unused {
			t.Error("closure includes a cell the root never references")
		}
	}
}

func TestAncestorsOf_MutualCycle(t *testing.T) {
	a := &Cell{ID: "_a", Name: "a", Body: "b + 1"}
	b := &Cell{ID: "_b", Name: "b", Body: "a + 1"}
	g := graphOf(a, b)

	_, err := g.AncestorsOf(a)
	var cycErr *CycleError
	if !errors.As(err, &cycErr) {
		t.Fatalf("err = %v, want CycleError", err)
	}
	if len(cycErr.Path) < 2 {
		t.Errorf("cycle path = %v, want at least two cells", cycErr.Path)
	}
}

func TestAncestorsOf_SelfReference(t *testing.T) {
	a := &Cell{ID: "_a", Name: "a", Body: "a + 1"}
	g := graphOf(a)

	_, err := g.AncestorsOf(a)
	var cycErr *CycleError
	if !errors.As(err, &cycErr) {
		t.Fatalf("err = %v, want CycleError", err)
	}
}

func TestAncestorsOf_DiamondTerminates(t *testing.T) {
	a := &Cell{ID: "_a", Name: "a", Body: "1"}
	b := &Cell{ID: "_b", Name: "b", Body: "a"}
	c := &Cell{ID: "_c", Name: "c", Body: "a"}
	d := &Cell{ID: "_d", Name: "d", Body: "b + c"}
	g := graphOf(a, b, c, d)

	closure, err := g.AncestorsOf(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(closure) != 4 {
		t.Errorf("closure = %v, want all four cells", names(closure))
	}
}
