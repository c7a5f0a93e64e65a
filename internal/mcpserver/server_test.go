package mcpserver

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/gallery"
	"github.com/starford/raido/internal/registry"
)

type stubClient struct {
	pages     map[string]string
	notebooks map[string]string
	examples  []gallery.Example
}

func (c *stubClient) Page(_ context.Context, page string) (string, error) {
	if content, ok := c.pages[page]; ok {
		return content, nil
	}
	return "", fmt.Errorf("page %s: %w", page, apperr.ErrNotFound)
}

func (c *stubClient) Notebook(_ context.Context, path string) (string, error) {
	if source, ok := c.notebooks[path]; ok {
		return source, nil
	}
	return "", fmt.Errorf("notebook %s: %w", path, apperr.ErrNotFound)
}

func (c *stubClient) Gallery(_ context.Context) ([]gallery.Example, error) {
	return c.examples, nil
}

const scalePage = `# d3-scale

Scales map a dimension of abstract data to a visual representation.

## Scale functions

A scale is a function that maps from the domain to the range.
`

const linearPage = `# Linear scales

Linear scales map a continuous domain to a continuous output range.

## scale.domain

Sets the scale's domain to the specified array of numbers.
`

const exportFixture = `function _chart(d3,data){return(
d3.scaleBand().domain(data)
)}

function _data(FileAttachment){return(
FileAttachment("values.csv").csv()
)}

export default function define(runtime, observer) {
  const main = runtime.module();
  const fileAttachments = new Map([
    ["values.csv", {url: "https://static.observableusercontent.com/files/fff", mimeType: "text/csv"}]
  ]);
  main.variable(observer("chart")).define("chart", ["d3","data"], _chart);
  main.variable(observer("data")).define("data", ["FileAttachment"], _data);
  return main;
}
`

func testServer() *Server {
	reg := registry.New([]registry.Module{
		{
			Name:        "d3-scale",
			Description: "Encodings that map abstract data to visual representation.",
			Tags:        []string{"scale", "linear", "band"},
			Pages:       []string{"/d3-scale", "/d3-scale/linear"},
		},
		{
			Name:        "d3-axis",
			Description: "Human-readable reference marks for scales.",
			Tags:        []string{"axis", "tick"},
			Pages:       []string{"/d3-axis"},
		},
	})
	client := &stubClient{
		pages: map[string]string{
			"/d3-scale":        scalePage,
			"/d3-scale/linear": linearPage,
			"/d3-axis":         "# d3-axis\n\nAxes render reference marks for scales.\n",
		},
		notebooks: map[string]string{
			"@d3/bar-chart": exportFixture,
		},
		examples: []gallery.Example{
			{Path: "@d3/bar-chart", Title: "Bar chart", Category: "Bars", Author: "D3"},
			{Path: "@d3/horizontal-bar-chart", Title: "Horizontal bar chart", Category: "Bars", Author: "D3"},
			{Path: "@d3/treemap", Title: "Treemap", Category: "Hierarchies", Author: "D3"},
		},
	}
	return New(reg, client)
}

func toolRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty result content")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content[0] = %T, want TextContent", res.Content[0])
	}
	return text.Text
}

func TestFindModule_ListsAllWithoutQuery(t *testing.T) {
	s := testServer()
	res, err := s.findModule(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatalf("findModule: %v", err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "Available D3 modules (2)") {
		t.Errorf("missing header: %q", text)
	}
	if !strings.Contains(text, "d3-scale") || !strings.Contains(text, "d3-axis") {
		t.Errorf("missing modules: %q", text)
	}
}

func TestFindModule_RanksQuery(t *testing.T) {
	s := testServer()
	res, err := s.findModule(context.Background(), toolRequest(map[string]any{"query": "scale"}))
	if err != nil {
		t.Fatalf("findModule: %v", err)
	}
	text := resultText(t, res)
	scaleIdx := strings.Index(text, "d3-scale")
	axisIdx := strings.Index(text, "d3-axis")
	if scaleIdx < 0 {
		t.Fatalf("d3-scale missing: %q", text)
	}
	if axisIdx >= 0 && axisIdx < scaleIdx {
		t.Errorf("d3-axis ranked above d3-scale: %q", text)
	}
	if !strings.Contains(text, "score") {
		t.Errorf("scores missing: %q", text)
	}
}

func TestFindModule_NoMatches(t *testing.T) {
	s := testServer()
	res, err := s.findModule(context.Background(), toolRequest(map[string]any{"query": "qqqq"}))
	if err != nil {
		t.Fatalf("findModule: %v", err)
	}
	if !strings.Contains(resultText(t, res), "No modules found") {
		t.Errorf("text = %q", resultText(t, res))
	}
}

func TestGetDocs_OverviewWithSubPages(t *testing.T) {
	s := testServer()
	res, err := s.getDocs(context.Background(), toolRequest(map[string]any{"module_name": "scale"}))
	if err != nil {
		t.Fatalf("getDocs: %v", err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "Scales map a dimension") {
		t.Errorf("page content missing: %q", text)
	}
	if !strings.Contains(text, "## Sub-pages") || !strings.Contains(text, "`linear`") {
		t.Errorf("sub-page appendix missing: %q", text)
	}
}

func TestGetDocs_SubPage(t *testing.T) {
	s := testServer()
	res, err := s.getDocs(context.Background(), toolRequest(map[string]any{
		"module_name": "d3-scale",
		"page":        "linear",
	}))
	if err != nil {
		t.Fatalf("getDocs: %v", err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "continuous domain") {
		t.Errorf("sub-page content missing: %q", text)
	}
	if strings.Contains(text, "## Sub-pages") {
		t.Errorf("sub-page result should not carry the appendix: %q", text)
	}
}

func TestGetDocs_UnknownModule(t *testing.T) {
	s := testServer()
	res, err := s.getDocs(context.Background(), toolRequest(map[string]any{"module_name": "nope"}))
	if err != nil {
		t.Fatalf("getDocs: %v", err)
	}
	if !res.IsError {
		t.Error("unknown module should be a tool error")
	}
	if !strings.Contains(resultText(t, res), "Unknown module") {
		t.Errorf("text = %q", resultText(t, res))
	}
}

func TestGetDocs_UnknownPage(t *testing.T) {
	s := testServer()
	res, err := s.getDocs(context.Background(), toolRequest(map[string]any{
		"module_name": "d3-scale",
		"page":        "quantum",
	}))
	if err != nil {
		t.Fatalf("getDocs: %v", err)
	}
	if !res.IsError {
		t.Error("unknown page should be a tool error")
	}
	if !strings.Contains(resultText(t, res), "linear") {
		t.Errorf("error should list available pages: %q", resultText(t, res))
	}
}

func TestGetDocs_MissingModuleName(t *testing.T) {
	s := testServer()
	res, err := s.getDocs(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatalf("getDocs: %v", err)
	}
	if !res.IsError {
		t.Error("missing module_name should be a tool error")
	}
}

func TestSearchDocs_ScopedToModule(t *testing.T) {
	s := testServer()
	res, err := s.searchDocs(context.Background(), toolRequest(map[string]any{
		"query":       "domain",
		"module_name": "d3-scale",
	}))
	if err != nil {
		t.Fatalf("searchDocs: %v", err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "## /d3-scale") {
		t.Errorf("page grouping missing: %q", text)
	}
	if !strings.Contains(text, "domain") {
		t.Errorf("excerpt missing the hit: %q", text)
	}
	if strings.Contains(text, "/d3-axis") {
		t.Errorf("scoped search leaked into another module: %q", text)
	}
}

func TestSearchDocs_AcrossModules(t *testing.T) {
	s := testServer()
	res, err := s.searchDocs(context.Background(), toolRequest(map[string]any{"query": "scale"}))
	if err != nil {
		t.Fatalf("searchDocs: %v", err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "/d3-scale") {
		t.Errorf("results = %q", text)
	}
}

func TestSearchDocs_NoResults(t *testing.T) {
	s := testServer()
	res, err := s.searchDocs(context.Background(), toolRequest(map[string]any{
		"query":       "xylophone",
		"module_name": "d3-axis",
	}))
	if err != nil {
		t.Fatalf("searchDocs: %v", err)
	}
	if !strings.Contains(resultText(t, res), "No results") {
		t.Errorf("text = %q", resultText(t, res))
	}
}

func TestFindExample_Categories(t *testing.T) {
	s := testServer()
	res, err := s.findExample(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatalf("findExample: %v", err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "**Bars** (2)") || !strings.Contains(text, "**Hierarchies** (1)") {
		t.Errorf("category counts missing: %q", text)
	}
}

func TestFindExample_Category(t *testing.T) {
	s := testServer()
	res, err := s.findExample(context.Background(), toolRequest(map[string]any{"category": "bars"}))
	if err != nil {
		t.Fatalf("findExample: %v", err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "Bar chart") || !strings.Contains(text, "Horizontal bar chart") {
		t.Errorf("category listing = %q", text)
	}
	if strings.Contains(text, "Treemap") {
		t.Errorf("other category leaked in: %q", text)
	}
}

func TestFindExample_UnknownCategory(t *testing.T) {
	s := testServer()
	res, err := s.findExample(context.Background(), toolRequest(map[string]any{"category": "Sculptures"}))
	if err != nil {
		t.Fatalf("findExample: %v", err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "Unknown category") || !strings.Contains(text, "Bars") {
		t.Errorf("text = %q", text)
	}
}

func TestFindExample_Query(t *testing.T) {
	s := testServer()
	res, err := s.findExample(context.Background(), toolRequest(map[string]any{"query": "treemap"}))
	if err != nil {
		t.Fatalf("findExample: %v", err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "@d3/treemap") {
		t.Errorf("treemap missing: %q", text)
	}
	if !strings.Contains(text, "get_example") {
		t.Errorf("follow-up hint missing: %q", text)
	}
}

func TestGetExample(t *testing.T) {
	s := testServer()
	res, err := s.getExample(context.Background(), toolRequest(map[string]any{"path": "@d3/bar-chart"}))
	if err != nil {
		t.Fatalf("getExample: %v", err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "## Example: @d3/bar-chart") {
		t.Errorf("header missing: %q", text)
	}
	if !strings.Contains(text, "```js") {
		t.Errorf("code fence missing: %q", text)
	}
	if !strings.Contains(text, `const data = FileAttachment("values.csv").csv();`) {
		t.Errorf("data cell missing: %q", text)
	}
	if !strings.Contains(text, "https://static.observableusercontent.com/files/fff") {
		t.Errorf("data url missing: %q", text)
	}
}

func TestGetExample_NormalizesPath(t *testing.T) {
	s := testServer()
	res, err := s.getExample(context.Background(), toolRequest(map[string]any{"path": "d3/bar-chart"}))
	if err != nil {
		t.Fatalf("getExample: %v", err)
	}
	if res.IsError {
		t.Errorf("path without @ should be normalized: %q", resultText(t, res))
	}
}

func TestGetExample_NotFound(t *testing.T) {
	s := testServer()
	res, err := s.getExample(context.Background(), toolRequest(map[string]any{"path": "@d3/missing"}))
	if err != nil {
		t.Fatalf("getExample: %v", err)
	}
	if !res.IsError {
		t.Error("missing notebook should be a tool error")
	}
}

func TestReadDocPage(t *testing.T) {
	s := testServer()
	req := mcp.ReadResourceRequest{}
	req.Params.URI = "d3-docs://d3-scale"

	contents, err := s.readDocPage(context.Background(), req)
	if err != nil {
		t.Fatalf("readDocPage: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("got %d contents, want 1", len(contents))
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents[0] = %T, want TextResourceContents", contents[0])
	}
	if text.MIMEType != "text/markdown" || !strings.Contains(text.Text, "Scales map") {
		t.Errorf("contents = %+v", text)
	}
}

func TestReadDocPage_Unknown(t *testing.T) {
	s := testServer()
	req := mcp.ReadResourceRequest{}
	req.Params.URI = "d3-docs://no-such-page"

	if _, err := s.readDocPage(context.Background(), req); err == nil {
		t.Error("unknown page should be an error")
	}
}
