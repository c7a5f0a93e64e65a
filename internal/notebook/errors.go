package notebook

import (
	"fmt"
	"strings"
)

// CycleError reports a reference cycle between notebook cells. Path lists
// the cell names along the cycle, ending with the revisited cell.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("notebook: cell reference cycle: %s", strings.Join(e.Path, " -> "))
}

// RootNotFoundError reports that a notebook has no terminal code cell to
// serve as the extraction entry point.
type RootNotFoundError struct {
	CellCount int
}

func (e *RootNotFoundError) Error() string {
	return fmt.Sprintf("notebook: no root cell candidate among %d cells", e.CellCount)
}

// UnresolvedReferenceError reports a cell whose declared input names a value
// that is neither a runtime builtin nor a cell in the notebook.
type UnresolvedReferenceError struct {
	Cell      string
	Reference string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("notebook: cell %q references undefined %q", e.Cell, e.Reference)
}
