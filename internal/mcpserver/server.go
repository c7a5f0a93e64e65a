// Package mcpserver exposes the D3 documentation and example tools over MCP
// (Model Context Protocol) for LLM integration.
package mcpserver

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/raido/internal/docs"
	"github.com/starford/raido/internal/gallery"
	"github.com/starford/raido/internal/notebook"
	"github.com/starford/raido/internal/registry"
	"github.com/starford/raido/internal/search"
)

// ContentClient delivers already-fetched upstream content. The tools never
// talk to the network directly.
type ContentClient interface {
	Page(ctx context.Context, page string) (string, error)
	Notebook(ctx context.Context, path string) (string, error)
	Gallery(ctx context.Context) ([]gallery.Example, error)
}

// Server wraps the MCP server with the documentation tools.
type Server struct {
	mcp    *server.MCPServer
	reg    *registry.Registry
	client ContentClient
}

// New creates an MCP server with all tools registered.
func New(reg *registry.Registry, client ContentClient) *Server {
	s := &Server{reg: reg, client: client}

	s.mcp = server.NewMCPServer(
		"Raido",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("find_module",
		mcp.WithDescription("Find D3.js modules by keyword search. "+
			"Without a query, lists all modules. With a query, returns the top 5."),
		mcp.WithString("query", mcp.Description("Search keywords (e.g. \"scale\", \"force layout\")")),
	), s.findModule)

	s.mcp.AddTool(mcp.NewTool("get_docs",
		mcp.WithDescription("Get D3.js API documentation. Provide module_name "+
			"(e.g. \"d3-scale\" or \"scale\") for the overview; add page (e.g. \"linear\") "+
			"for a specific sub-page."),
		mcp.WithString("module_name", mcp.Required(), mcp.Description("Module name")),
		mcp.WithString("page", mcp.Description("Optional sub-page name")),
	), s.getDocs)

	s.mcp.AddTool(mcp.NewTool("search_docs",
		mcp.WithDescription("Search D3.js documentation for specific topics or methods. "+
			"Optionally restrict to a single module."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
		mcp.WithString("module_name", mcp.Description("Optional module to search within")),
	), s.searchDocs)

	s.mcp.AddTool(mcp.NewTool("find_example",
		mcp.WithDescription("Find D3.js examples from the Observable gallery. "+
			"Without arguments, lists all categories with counts. With query, returns the "+
			"top 10 matches. With category, lists that category."),
		mcp.WithString("query", mcp.Description("Search keywords")),
		mcp.WithString("category", mcp.Description("Category name (e.g. \"Bars\")")),
	), s.findExample)

	s.mcp.AddTool(mcp.NewTool("get_example",
		mcp.WithDescription("Get standalone D3.js example source code extracted from an "+
			"Observable notebook. Provide the example path (e.g. \"@d3/bar-chart/2\"). "+
			"Use find_example to discover available examples."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Observable notebook path")),
	), s.getExample)

	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate("d3-docs://{page}", "D3 documentation page",
			mcp.WithTemplateDescription("Raw documentation page from d3js.org as Markdown."),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		s.readDocPage,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server, for transports and tests.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) findModule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")

	modules := s.reg.Modules()
	if query == "" {
		lines := make([]string, len(modules))
		for i, m := range modules {
			lines[i] = fmt.Sprintf("- **%s** (%d pages): %s", m.Name, len(m.Pages), m.Description)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Available D3 modules (%d):\n\n%s",
			len(modules), strings.Join(lines, "\n"))), nil
	}

	matches := search.ScoreModules(query, modules, 5)
	if len(matches) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No modules found matching %q.", query)), nil
	}
	var lines []string
	for _, match := range matches {
		m := modules[match.Index]
		lines = append(lines, fmt.Sprintf("- **%s** (score %.1f): %s", m.Name, match.Score, m.Description))
	}
	return mcp.NewToolResultText(fmt.Sprintf("Modules matching %q:\n\n%s",
		query, strings.Join(lines, "\n"))), nil
}

func (s *Server) getDocs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	moduleName, err := req.RequireString("module_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	module := s.reg.Resolve(moduleName)
	if module == nil {
		return mcp.NewToolResultError(fmt.Sprintf(
			"Unknown module %q. Use find_module to list modules.", moduleName)), nil
	}

	if page := req.GetString("page", ""); page != "" {
		pagePath := fmt.Sprintf("/%s/%s", module.Name, strings.ToLower(strings.TrimSpace(page)))
		resolved, _ := s.reg.PageModule(pagePath)
		if resolved == "" {
			return mcp.NewToolResultError(fmt.Sprintf(
				"Unknown page %q for %s. Available: %s",
				page, module.Name, strings.Join(subPageNames(module), ", "))), nil
		}
		content, err := s.client.Page(ctx, resolved)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(content), nil
	}

	content, err := s.client.Page(ctx, module.Pages[0])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(module.Pages) > 1 {
		var list []string
		for _, name := range subPageNames(module) {
			list = append(list, fmt.Sprintf("- `%s`", name))
		}
		content += fmt.Sprintf("\n\n---\n\n## Sub-pages\n\nUse `get_docs(module_name=%q, page=...)` for details:\n\n%s",
			module.Name, strings.Join(list, "\n"))
	}
	return mcp.NewToolResultText(content), nil
}

func (s *Server) searchDocs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var pages []string
	if moduleName := req.GetString("module_name", ""); moduleName != "" {
		module := s.reg.Resolve(moduleName)
		if module == nil {
			return mcp.NewToolResultError(fmt.Sprintf(
				"Unknown module %q. Use find_module to list modules.", moduleName)), nil
		}
		pages = module.Pages
	} else {
		modules := s.reg.Modules()
		for _, match := range search.ScoreModules(query, modules, 5) {
			pages = append(pages, modules[match.Index].Pages...)
		}
	}
	if len(pages) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No relevant modules found for %q.", query)), nil
	}

	var results []string
	for _, pagePath := range pages {
		content, err := s.client.Page(ctx, pagePath)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		ix := docs.Parse(content)
		matches := search.ScoreSections(query, ix.Flatten(), 3)
		if len(matches) == 0 {
			continue
		}
		var parts []string
		for _, m := range matches {
			crumb := strings.Join(m.Section.HeadingPath, " > ")
			if crumb == "" {
				crumb = pagePath
			}
			parts = append(parts, fmt.Sprintf("### %s\n\n%s", crumb, m.Excerpt))
		}
		results = append(results, fmt.Sprintf("## %s\n\n%s", pagePath, strings.Join(parts, "\n\n---\n\n")))
		if len(results) >= 10 {
			break
		}
	}
	if len(results) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No results for %q.", query)), nil
	}
	return mcp.NewToolResultText(strings.Join(results, "\n\n---\n\n")), nil
}

func (s *Server) findExample(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	examples, err := s.client.Gallery(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	query := req.GetString("query", "")
	category := req.GetString("category", "")

	if query == "" && category == "" {
		names, counts := gallery.Categories(examples)
		sort.Strings(names)
		var lines []string
		for _, name := range names {
			lines = append(lines, fmt.Sprintf("- **%s** (%d)", name, counts[name]))
		}
		return mcp.NewToolResultText(fmt.Sprintf(
			"D3 example categories (%d, %d total examples):\n\n%s\n\n"+
				"Use `find_example(category=\"Bars\")` to list examples in a category, "+
				"or `find_example(query=\"treemap\")` to search.",
			len(names), len(examples), strings.Join(lines, "\n"))), nil
	}

	if category != "" {
		filtered := gallery.FilterCategory(examples, category)
		if len(filtered) == 0 {
			names, _ := gallery.Categories(examples)
			sort.Strings(names)
			return mcp.NewToolResultText(fmt.Sprintf(
				"Unknown category %q. Available: %s", category, strings.Join(names, ", "))), nil
		}
		if query != "" {
			examples = filtered
		} else {
			var lines []string
			for _, ex := range filtered {
				lines = append(lines, fmt.Sprintf("- **%s** by %s — `%s`", ex.Title, ex.Author, ex.Path))
			}
			return mcp.NewToolResultText(fmt.Sprintf("Examples in %q (%d):\n\n%s",
				filtered[0].Category, len(filtered), strings.Join(lines, "\n"))), nil
		}
	}

	matches := search.ScoreExamples(query, examples, 10)
	if len(matches) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No examples found matching %q.", query)), nil
	}
	var lines []string
	for _, match := range matches {
		ex := examples[match.Index]
		lines = append(lines, fmt.Sprintf("- **%s** [%s] (score %.1f) — `%s`",
			ex.Title, ex.Category, match.Score, ex.Path))
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"Examples matching %q:\n\n%s\n\nUse `get_example(path=...)` to get the source code.",
		query, strings.Join(lines, "\n"))), nil
}

func (s *Server) getExample(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "@") {
		path = "@" + path
	}

	source, err := s.client.Notebook(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	graph, attachments := notebook.Compile(source)
	result, err := notebook.Extract(graph, attachments)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("extract %s: %v", path, err)), nil
	}

	return mcp.NewToolResultText(formatExample(path, result)), nil
}

// formatExample renders an extraction result as agent-facing markdown.
func formatExample(path string, r *notebook.Result) string {
	parts := []string{fmt.Sprintf("## Example: %s", path)}
	if r.Description != "" {
		parts = append(parts, r.Description)
	}
	parts = append(parts, fmt.Sprintf("```js\n%s\n```", r.Code))
	if len(r.Imports) > 0 {
		lines := []string{"**Imported helpers:**"}
		for _, imp := range r.Imports {
			lines = append(lines, fmt.Sprintf("- `%s` from [%s](%s)", imp.Name, imp.URL, imp.URL))
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	if len(r.DataURLs) > 0 {
		lines := []string{"**Data files:**"}
		for _, u := range r.DataURLs {
			lines = append(lines, fmt.Sprintf("- %s", u))
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n\n")
}

func (s *Server) readDocPage(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	pagePath := strings.TrimPrefix(req.Params.URI, "d3-docs://")
	resolved, _ := s.reg.PageModule(pagePath)
	if resolved == "" {
		return nil, fmt.Errorf("unknown page %q", pagePath)
	}
	content, err := s.client.Page(ctx, resolved)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     content,
		},
	}, nil
}

func subPageNames(m *registry.Module) []string {
	var names []string
	for _, p := range m.Pages[1:] {
		names = append(names, p[strings.LastIndex(p, "/")+1:])
	}
	return names
}
