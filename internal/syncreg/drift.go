// Package syncreg compares the hardcoded module registry against the live
// d3js.org sidebar and reports drift. It only reports: the registry is
// maintained by hand.
package syncreg

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/starford/raido/internal/registry"
)

// LiveRegistry maps module names to their page paths as published on
// d3js.org, index page first.
type LiveRegistry map[string][]string

// Fetcher is the piece of the HTTP client drift detection needs.
type Fetcher interface {
	GetHTML(ctx context.Context, url string) (*goquery.Document, error)
}

// FetchLive scrapes the d3js.org/api sidebar into a LiveRegistry.
func FetchLive(ctx context.Context, f Fetcher) (LiveRegistry, error) {
	doc, err := f.GetHTML(ctx, registry.BaseURL+"/api")
	if err != nil {
		return nil, err
	}
	return ParseSidebar(doc)
}

// ParseSidebar reads module and page links out of the VitePress sidebar nav.
func ParseSidebar(doc *goquery.Document) (LiveRegistry, error) {
	nav := doc.Find("nav#VPSidebarNav")
	if nav.Length() == 0 {
		return nil, fmt.Errorf("syncreg: sidebar nav not found on d3js.org/api")
	}

	live := make(LiveRegistry)
	current := ""
	nav.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !strings.HasPrefix(href, "/d3-") {
			return
		}
		parts := strings.Split(strings.Trim(href, "/"), "/")
		name := parts[0]
		switch {
		case len(parts) == 1:
			current = name
			live[name] = []string{href}
		case name == current:
			live[name] = append(live[name], href)
		}
	})
	return live, nil
}

// Report holds the differences between the local registry and the live site.
type Report struct {
	AddedModules   []string // on d3js.org, missing locally
	RemovedModules []string // local, gone from d3js.org
	AddedPages     []string
	RemovedPages   []string
}

// Total returns the number of recorded differences.
func (r *Report) Total() int {
	return len(r.AddedModules) + len(r.RemovedModules) + len(r.AddedPages) + len(r.RemovedPages)
}

// Diff compares the local registry against the live one.
func Diff(reg *registry.Registry, live LiveRegistry) *Report {
	modules := reg.Modules()
	local := make(map[string]*registry.Module, len(modules))
	for i := range modules {
		local[modules[i].Name] = &modules[i]
	}

	rep := &Report{}
	for _, name := range sortedKeys(live) {
		if _, ok := local[name]; !ok {
			rep.AddedModules = append(rep.AddedModules, fmt.Sprintf("%s (%s)", name, strings.Join(live[name], ", ")))
		}
	}
	for _, name := range sortedModuleNames(local) {
		if _, ok := live[name]; !ok {
			rep.RemovedModules = append(rep.RemovedModules, name)
		}
	}

	for _, name := range sortedModuleNames(local) {
		livePages, ok := live[name]
		if !ok {
			continue
		}
		localSet := toSet(local[name].Pages)
		liveSet := toSet(livePages)
		for _, p := range sortedKeys2(liveSet) {
			if _, ok := localSet[p]; !ok {
				rep.AddedPages = append(rep.AddedPages, fmt.Sprintf("%s: %s", name, p))
			}
		}
		for _, p := range sortedKeys2(localSet) {
			if _, ok := liveSet[p]; !ok {
				rep.RemovedPages = append(rep.RemovedPages, fmt.Sprintf("%s: %s", name, p))
			}
		}
	}
	return rep
}

// Print writes a human-readable drift report.
func (r *Report) Print(w io.Writer) {
	if r.Total() == 0 {
		fmt.Fprintln(w, "No drift detected. Registry is up to date.")
		return
	}
	fmt.Fprintf(w, "Found %d difference(s):\n\n", r.Total())
	printGroup(w, "New modules on d3js.org (not in registry)", r.AddedModules)
	printGroup(w, "Modules in registry but gone from d3js.org", r.RemovedModules)
	printGroup(w, "New pages on d3js.org (not in registry)", r.AddedPages)
	printGroup(w, "Pages in registry but gone from d3js.org", r.RemovedPages)
}

func printGroup(w io.Writer, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s:\n", label)
	for _, item := range items {
		fmt.Fprintf(w, "    - %s\n", item)
	}
	fmt.Fprintln(w)
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

func sortedKeys(m LiveRegistry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeys2(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedModuleNames(m map[string]*registry.Module) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
