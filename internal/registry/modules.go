package registry

// d3Modules mirrors the module layout of d3js.org. Kept in sidebar order.
// Run the sync command to detect drift against the live site.
var d3Modules = []Module{
	{
		Name:        "d3-array",
		Description: "Array manipulation, statistics, searching, and sorting.",
		Tags:        []string{"array", "statistics", "sort", "bin", "group", "min", "max", "mean"},
		Pages: []string{
			"/d3-array",
			"/d3-array/add",
			"/d3-array/bin",
			"/d3-array/bisect",
			"/d3-array/blur",
			"/d3-array/group",
			"/d3-array/intern",
			"/d3-array/sets",
			"/d3-array/sort",
			"/d3-array/summarize",
			"/d3-array/ticks",
			"/d3-array/transform",
		},
	},
	{
		Name:        "d3-axis",
		Description: "Human-readable reference marks for scales.",
		Tags:        []string{"axis", "tick", "scale", "svg"},
		Pages:       []string{"/d3-axis"},
	},
	{
		Name:        "d3-brush",
		Description: "Select a one- or two-dimensional region using the mouse or touch.",
		Tags:        []string{"brush", "selection", "interaction", "mouse", "touch"},
		Pages:       []string{"/d3-brush"},
	},
	{
		Name:        "d3-chord",
		Description: "Chord diagrams visualizing relationships between groups.",
		Tags:        []string{"chord", "diagram", "ribbon", "relationship", "matrix"},
		Pages: []string{
			"/d3-chord",
			"/d3-chord/chord",
			"/d3-chord/ribbon",
		},
	},
	{
		Name:        "d3-color",
		Description: "Color spaces including RGB, HSL, Cubehelix, CIELAB.",
		Tags:        []string{"color", "rgb", "hsl", "lab", "hcl", "cubehelix"},
		Pages:       []string{"/d3-color"},
	},
	{
		Name:        "d3-contour",
		Description: "Compute contour polygons using marching squares.",
		Tags:        []string{"contour", "density", "topography", "isoline"},
		Pages: []string{
			"/d3-contour",
			"/d3-contour/contour",
			"/d3-contour/density",
		},
	},
	{
		Name:        "d3-delaunay",
		Description: "Voronoi diagrams and Delaunay triangulation.",
		Tags:        []string{"voronoi", "delaunay", "triangulation", "diagram"},
		Pages: []string{
			"/d3-delaunay",
			"/d3-delaunay/delaunay",
			"/d3-delaunay/voronoi",
		},
	},
	{
		Name:        "d3-dispatch",
		Description: "Register named callbacks and invoke them with arguments.",
		Tags:        []string{"dispatch", "event", "callback"},
		Pages:       []string{"/d3-dispatch"},
	},
	{
		Name:        "d3-drag",
		Description: "Drag-and-drop interaction for mouse and touch input.",
		Tags:        []string{"drag", "interaction", "mouse", "touch"},
		Pages:       []string{"/d3-drag"},
	},
	{
		Name:        "d3-dsv",
		Description: "Parse and format delimiter-separated values, notably CSV and TSV.",
		Tags:        []string{"csv", "tsv", "dsv", "parse", "format", "delimiter"},
		Pages:       []string{"/d3-dsv"},
	},
	{
		Name:        "d3-ease",
		Description: "Easing functions for smooth animation transitions.",
		Tags:        []string{"ease", "easing", "animation", "transition"},
		Pages:       []string{"/d3-ease"},
	},
	{
		Name:        "d3-fetch",
		Description: "Convenience methods on top of the Fetch API.",
		Tags:        []string{"fetch", "csv", "json", "text", "xml", "load"},
		Pages:       []string{"/d3-fetch"},
	},
	{
		Name:        "d3-force",
		Description: "Force-directed graph layout using velocity Verlet integration.",
		Tags:        []string{"force", "graph", "layout", "simulation", "network", "collision"},
		Pages: []string{
			"/d3-force",
			"/d3-force/simulation",
			"/d3-force/center",
			"/d3-force/collide",
			"/d3-force/link",
			"/d3-force/many-body",
			"/d3-force/position",
		},
	},
	{
		Name:        "d3-format",
		Description: "Format numbers for human consumption.",
		Tags:        []string{"format", "number", "locale", "SI", "currency", "percent"},
		Pages:       []string{"/d3-format"},
	},
	{
		Name:        "d3-geo",
		Description: "Geographic projections, spherical shapes, and math.",
		Tags:        []string{"geo", "map", "projection", "geography", "sphere", "graticule"},
		Pages: []string{
			"/d3-geo",
			"/d3-geo/path",
			"/d3-geo/projection",
			"/d3-geo/azimuthal",
			"/d3-geo/conic",
			"/d3-geo/cylindrical",
			"/d3-geo/stream",
			"/d3-geo/shape",
			"/d3-geo/math",
		},
	},
	{
		Name:        "d3-hierarchy",
		Description: "Layout algorithms for hierarchical data.",
		Tags:        []string{"hierarchy", "tree", "treemap", "pack", "partition", "cluster"},
		Pages: []string{
			"/d3-hierarchy",
			"/d3-hierarchy/hierarchy",
			"/d3-hierarchy/stratify",
			"/d3-hierarchy/tree",
			"/d3-hierarchy/cluster",
			"/d3-hierarchy/partition",
			"/d3-hierarchy/pack",
			"/d3-hierarchy/treemap",
		},
	},
	{
		Name:        "d3-interpolate",
		Description: "Interpolate numbers, colors, strings, arrays, and more.",
		Tags:        []string{"interpolate", "color", "number", "string", "zoom", "tween"},
		Pages: []string{
			"/d3-interpolate",
			"/d3-interpolate/value",
			"/d3-interpolate/color",
			"/d3-interpolate/transform",
			"/d3-interpolate/zoom",
		},
	},
	{
		Name:        "d3-path",
		Description: "Serialize Canvas path commands to SVG path data.",
		Tags:        []string{"path", "canvas", "svg", "serialize"},
		Pages:       []string{"/d3-path"},
	},
	{
		Name:        "d3-polygon",
		Description: "Geometric operations for two-dimensional polygons.",
		Tags:        []string{"polygon", "hull", "centroid", "area", "convex"},
		Pages:       []string{"/d3-polygon"},
	},
	{
		Name:        "d3-quadtree",
		Description: "Two-dimensional recursive spatial subdivision.",
		Tags:        []string{"quadtree", "spatial", "collision", "search"},
		Pages:       []string{"/d3-quadtree"},
	},
	{
		Name:        "d3-random",
		Description: "Random number generators for various distributions.",
		Tags:        []string{"random", "distribution", "normal", "uniform", "exponential"},
		Pages:       []string{"/d3-random"},
	},
	{
		Name:        "d3-scale",
		Description: "Encodings that map abstract data to visual representation.",
		Tags:        []string{"scale", "linear", "log", "ordinal", "band", "point", "time"},
		Pages: []string{
			"/d3-scale",
			"/d3-scale/linear",
			"/d3-scale/time",
			"/d3-scale/pow",
			"/d3-scale/log",
			"/d3-scale/symlog",
			"/d3-scale/ordinal",
			"/d3-scale/band",
			"/d3-scale/point",
			"/d3-scale/sequential",
			"/d3-scale/diverging",
			"/d3-scale/quantile",
			"/d3-scale/quantize",
			"/d3-scale/threshold",
		},
	},
	{
		Name:        "d3-scale-chromatic",
		Description: "Sequential, diverging, and categorical color schemes.",
		Tags:        []string{"color", "scheme", "chromatic", "sequential", "diverging"},
		Pages: []string{
			"/d3-scale-chromatic",
			"/d3-scale-chromatic/categorical",
			"/d3-scale-chromatic/cyclical",
			"/d3-scale-chromatic/diverging",
			"/d3-scale-chromatic/sequential",
		},
	},
	{
		Name:        "d3-selection",
		Description: "Transform the DOM by selecting elements and binding data.",
		Tags:        []string{"selection", "dom", "data", "bindattr", "bindstyle", "bindhtml"},
		Pages: []string{
			"/d3-selection",
			"/d3-selection/selecting",
			"/d3-selection/modifying",
			"/d3-selection/joining",
			"/d3-selection/events",
			"/d3-selection/control-flow",
			"/d3-selection/locals",
			"/d3-selection/namespaces",
		},
	},
	{
		Name:        "d3-shape",
		Description: "Graphical primitives for visualization.",
		Tags:        []string{"shape", "arc", "pie", "line", "area", "curve", "stack", "symbol"},
		Pages: []string{
			"/d3-shape",
			"/d3-shape/arc",
			"/d3-shape/area",
			"/d3-shape/curve",
			"/d3-shape/line",
			"/d3-shape/link",
			"/d3-shape/pie",
			"/d3-shape/stack",
			"/d3-shape/symbol",
			"/d3-shape/radial-area",
			"/d3-shape/radial-line",
			"/d3-shape/radial-link",
		},
	},
	{
		Name:        "d3-time",
		Description: "A calculator for humanity's eccentric conventions of time.",
		Tags:        []string{"time", "interval", "day", "week", "month", "year", "hour"},
		Pages:       []string{"/d3-time"},
	},
	{
		Name:        "d3-time-format",
		Description: "Parse and format times inspired by strptime and strftime.",
		Tags:        []string{"time", "format", "parse", "date", "locale", "strftime"},
		Pages:       []string{"/d3-time-format"},
	},
	{
		Name:        "d3-timer",
		Description: "Efficient queue for managing concurrent animations.",
		Tags:        []string{"timer", "animation", "interval", "timeout", "frame"},
		Pages:       []string{"/d3-timer"},
	},
	{
		Name:        "d3-transition",
		Description: "Animated transitions for D3 selections.",
		Tags:        []string{"transition", "animation", "selection", "tween", "ease"},
		Pages: []string{
			"/d3-transition",
			"/d3-transition/selecting",
			"/d3-transition/modifying",
			"/d3-transition/timing",
			"/d3-transition/control-flow",
		},
	},
	{
		Name:        "d3-zoom",
		Description: "Pan and zoom SVG, HTML or Canvas using mouse or touch.",
		Tags:        []string{"zoom", "pan", "interaction", "mouse", "touch", "transform"},
		Pages:       []string{"/d3-zoom"},
	},
}
