package notebook

import (
	"regexp"
	"strings"
)

// ObservableBaseURL is where cross-notebook helper imports resolve.
const ObservableBaseURL = "https://observablehq.com"

// The Observable runtime export (api.observablehq.com/<path>.js?v=4) compiles
// each cell to a top-level function and wires them together in a define()
// section. Compile recovers the cell list from that format. The recognized
// shapes are enumerated here on purpose: anything else is ignored, so false
// negatives are predictable.
var (
	funcCellRe = regexp.MustCompile(`(?m)^(async\s+)?function\s+(_?\w+)\(([^)]*)\)\s*\{`)

	// main.variable(observer("name")).define("name", ["d3","data"], _name)
	variableDefineRe = regexp.MustCompile(
		`main\s*\.variable\(observer\((?:"((?:viewof |mutable )?\w+)")?\)\)\s*` +
			`\.define\(\s*(?:"((?:viewof |mutable )?\w+)"\s*,\s*)?(?:\[([^\]]*)\]\s*,\s*)?(\w+)\s*\)`)

	// ["alphabet.csv", {url: "https://...", mimeType: "text/csv"}]
	attachmentRe = regexp.MustCompile(`\["([^"]+)",\s*\{url:\s*"([^"]+)"(?:,\s*mimeType:\s*"([^"]+)")?\}\]`)

	// main.define("module 1", async () => runtime.module((await import("/@d3/color-legend.js?v=4")).default))
	moduleImportRe = regexp.MustCompile(`\.define\("(module \d+)".*?import\("(/[^"?]+)`)

	// main.define("Legend", ["module 1", "@variable"], (_, v) => v.import("Legend", _))
	helperImportRe = regexp.MustCompile(`\.define\("(\w+)",\s*\["(module \d+)".*?\.import\("(\w+)"`)

	jsSuffixRe = regexp.MustCompile(`\.js$`)
)

type funcCell struct {
	params string
	body   string
	async  bool
}

// Compile parses an Observable runtime export into a cell graph and the
// notebook's declared attachment table (name -> absolute URL).
func Compile(source string) (*Graph, map[string]string) {
	fns := findFunctionCells(source)

	attachments := make(map[string]string)
	for _, m := range attachmentRe.FindAllStringSubmatch(source, -1) {
		attachments[m[1]] = m[2]
	}

	var cells []*Cell
	for _, m := range variableDefineRe.FindAllStringSubmatch(source, -1) {
		name := m[2]
		if name == "" {
			name = m[1]
		}
		kind := KindPlain
		switch {
		case strings.HasPrefix(name, "viewof "):
			kind = KindViewof
			name = strings.TrimPrefix(name, "viewof ")
		case strings.HasPrefix(name, "mutable "):
			kind = KindMutable
			name = strings.TrimPrefix(name, "mutable ")
		}
		inputs := splitQuoted(m[3])
		fnName := m[4]
		fn, ok := fns[fnName]
		if !ok {
			continue
		}
		c := &Cell{
			ID:     fnName,
			Name:   name,
			Kind:   kind,
			Body:   fn.body,
			Async:  fn.async,
			Inputs: inputs,
		}
		if len(inputs) == 1 && inputs[0] == "md" {
			c.Doc = true
			c.Body = proseContent(fn.body)
		}
		cells = append(cells, c)
	}

	// Cross-notebook helper imports become import cells. Dependents reference
	// them by name, so topological ordering places them before first use.
	modulePaths := make(map[string]string)
	for _, m := range moduleImportRe.FindAllStringSubmatch(source, -1) {
		clean := jsSuffixRe.ReplaceAllString(m[2], "")
		if !strings.HasPrefix(clean, "/@") {
			clean = "/@" + strings.TrimLeft(clean, "/")
		}
		modulePaths[m[1]] = clean
	}
	for _, m := range helperImportRe.FindAllStringSubmatch(source, -1) {
		path, ok := modulePaths[m[2]]
		if !ok {
			continue
		}
		cells = append(cells, &Cell{
			ID:         m[1],
			Name:       m[1],
			Kind:       KindImport,
			ImportFrom: ObservableBaseURL + path,
		})
	}

	return NewGraph(cells), attachments
}

// findFunctionCells locates every top-level cell function and extracts its
// brace-matched body.
func findFunctionCells(source string) map[string]funcCell {
	fns := make(map[string]funcCell)
	for _, loc := range funcCellRe.FindAllStringSubmatchIndex(source, -1) {
		async := loc[2] >= 0
		name := source[loc[4]:loc[5]]
		params := source[loc[6]:loc[7]]
		body := matchBraces(source, loc[1])
		fns[name] = funcCell{params: strings.TrimSpace(params), body: body, async: async}
	}
	return fns
}

// matchBraces returns the function body given the index just past the opening
// brace, skipping string literals and comments. Returns "" when the braces
// never balance.
func matchBraces(source string, start int) string {
	depth := 1
	i := start
	for i < len(source) && depth > 0 {
		switch ch := source[i]; ch {
		case '{':
			depth++
		case '}':
			depth--
		case '"', '\'', '`':
			quote := ch
			i++
			for i < len(source) {
				if source[i] == '\\' && i+1 < len(source) {
					i += 2
					continue
				}
				if source[i] == quote {
					break
				}
				i++
			}
		case '/':
			if i+1 < len(source) {
				switch source[i+1] {
				case '/':
					for i < len(source) && source[i] != '\n' {
						i++
					}
				case '*':
					i += 2
					for i+1 < len(source) && !(source[i] == '*' && source[i+1] == '/') {
						i++
					}
					i++
				}
			}
		}
		i++
	}
	if depth != 0 {
		return ""
	}
	return strings.TrimSpace(source[start : i-1])
}

// stripReturn unwraps the return( ... ) shell around expression cells.
// Block-bodied cells are returned unchanged.
func stripReturn(body string) (string, bool) {
	trimmed := strings.TrimSpace(body)
	if !strings.HasPrefix(trimmed, "return(") || !strings.HasSuffix(trimmed, ")") {
		return body, false
	}
	inner := trimmed[len("return(") : len(trimmed)-1]
	return strings.TrimSpace(inner), true
}

// proseContent pulls the markdown text out of a compiled md cell body.
func proseContent(body string) string {
	expr, ok := stripReturn(body)
	if !ok {
		expr = strings.TrimSpace(body)
	}
	if strings.HasPrefix(expr, "md`") && strings.HasSuffix(expr, "`") {
		return expr[len("md`") : len(expr)-1]
	}
	return expr
}

func splitQuoted(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `"`)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
