package syncreg

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/starford/raido/internal/registry"
)

const sidebarHTML = `<html><body>
<nav id="VPSidebarNav">
  <a href="/getting-started">Getting started</a>
  <a href="/d3-array">d3-array</a>
  <a href="/d3-array/bin">Binning</a>
  <a href="/d3-array/group">Grouping</a>
  <a href="/d3-scale">d3-scale</a>
  <a href="/d3-scale/linear">Linear</a>
</nav>
</body></html>`

func TestParseSidebar(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sidebarHTML))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	live, err := ParseSidebar(doc)
	if err != nil {
		t.Fatalf("ParseSidebar: %v", err)
	}

	if len(live) != 2 {
		t.Fatalf("live = %v, want 2 modules", live)
	}
	arr := live["d3-array"]
	if len(arr) != 3 || arr[0] != "/d3-array" || arr[1] != "/d3-array/bin" {
		t.Errorf("d3-array pages = %v", arr)
	}
	if len(live["d3-scale"]) != 2 {
		t.Errorf("d3-scale pages = %v", live["d3-scale"])
	}
}

func TestParseSidebar_MissingNav(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body></body></html>"))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	if _, err := ParseSidebar(doc); err == nil {
		t.Error("missing sidebar should be an error")
	}
}

func TestDiff(t *testing.T) {
	reg := registry.New([]registry.Module{
		{Name: "d3-array", Pages: []string{"/d3-array", "/d3-array/bin"}},
		{Name: "d3-legacy", Pages: []string{"/d3-legacy"}},
	})
	live := LiveRegistry{
		"d3-array": {"/d3-array", "/d3-array/bin", "/d3-array/group"},
		"d3-shiny": {"/d3-shiny"},
	}

	rep := Diff(reg, live)

	if len(rep.AddedModules) != 1 || !strings.HasPrefix(rep.AddedModules[0], "d3-shiny") {
		t.Errorf("added modules = %v", rep.AddedModules)
	}
	if len(rep.RemovedModules) != 1 || rep.RemovedModules[0] != "d3-legacy" {
		t.Errorf("removed modules = %v", rep.RemovedModules)
	}
	if len(rep.AddedPages) != 1 || rep.AddedPages[0] != "d3-array: /d3-array/group" {
		t.Errorf("added pages = %v", rep.AddedPages)
	}
	if len(rep.RemovedPages) != 0 {
		t.Errorf("removed pages = %v", rep.RemovedPages)
	}
	if rep.Total() != 3 {
		t.Errorf("total = %d, want 3", rep.Total())
	}
}

func TestDiff_NoDrift(t *testing.T) {
	reg := registry.New([]registry.Module{
		{Name: "d3-array", Pages: []string{"/d3-array"}},
	})
	live := LiveRegistry{"d3-array": {"/d3-array"}}

	rep := Diff(reg, live)
	if rep.Total() != 0 {
		t.Errorf("total = %d, want 0", rep.Total())
	}

	var buf strings.Builder
	rep.Print(&buf)
	if !strings.Contains(buf.String(), "No drift") {
		t.Errorf("report = %q", buf.String())
	}
}

func TestReport_Print(t *testing.T) {
	rep := &Report{
		AddedModules: []string{"d3-shiny (/d3-shiny)"},
		AddedPages:   []string{"d3-array: /d3-array/group"},
	}
	var buf strings.Builder
	rep.Print(&buf)
	out := buf.String()
	if !strings.Contains(out, "Found 2 difference(s)") {
		t.Errorf("report header missing: %q", out)
	}
	if !strings.Contains(out, "- d3-shiny (/d3-shiny)") {
		t.Errorf("added module missing: %q", out)
	}
}
