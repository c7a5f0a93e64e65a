// Package registry holds the catalog of D3 modules and their documentation
// pages on d3js.org. The registry is built once at startup and never mutated.
package registry

import "strings"

// BaseURL is the documentation site all page paths are relative to.
const BaseURL = "https://d3js.org"

// Module is a D3 module with its doc pages on d3js.org.
// Pages are ordered; the first entry is always the module index page.
type Module struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Pages       []string `json:"pages"`
}

// PageURLs returns absolute URLs for every page of the module.
func (m *Module) PageURLs() []string {
	urls := make([]string, len(m.Pages))
	for i, p := range m.Pages {
		urls[i] = BaseURL + p
	}
	return urls
}

// Registry is an immutable, ordered collection of modules with name and
// page-path lookup indexes.
type Registry struct {
	modules []Module
	byName  map[string]*Module
	byPage  map[string]*Module
}

// New builds a Registry from an ordered module list.
func New(modules []Module) *Registry {
	r := &Registry{
		modules: modules,
		byName:  make(map[string]*Module, len(modules)),
		byPage:  make(map[string]*Module),
	}
	for i := range r.modules {
		m := &r.modules[i]
		r.byName[m.Name] = m
		for _, p := range m.Pages {
			r.byPage[p] = m
		}
	}
	return r
}

// Default returns the registry of known D3 modules.
func Default() *Registry {
	return New(d3Modules)
}

// Modules returns all modules in registry order.
func (r *Registry) Modules() []Module {
	return r.modules
}

// Len returns the number of registered modules.
func (r *Registry) Len() int {
	return len(r.modules)
}

// Resolve normalizes a module name to its registered module.
// Accepts "d3-scale", "scale", "D3-Scale", etc. Returns nil when unknown.
func (r *Registry) Resolve(name string) *Module {
	name = strings.ToLower(strings.TrimSpace(name))
	if m, ok := r.byName[name]; ok {
		return m
	}
	if m, ok := r.byName["d3-"+name]; ok {
		return m
	}
	return nil
}

// PageModule resolves a page path like "d3-scale/linear" or "/d3-scale/linear"
// to its owning module. Returns the canonical path (leading slash) and the
// module, or "" and nil when unknown.
func (r *Registry) PageModule(path string) (string, *Module) {
	path = strings.ToLower(strings.TrimSpace(path))
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if m, ok := r.byPage[path]; ok {
		return path, m
	}
	return "", nil
}
