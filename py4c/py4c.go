package py4c

import (
	"strings"
	"sync"

	"github.com/fiveham/map-tools/go4c"
	"github.com/fiveham/map-tools/lib4c"
	"github.com/fiveham/map-tools/lib4c/catalog"
	"github.com/go-python/gpython/py"
	"github.com/pkg/errors"
)

var (
	LIB_VERSION = "v1.2024.1"
)

const (
	READ_ONLY = 0x01

	kWorkspaceAttr = "_Workspace"
)

var (
	pyGraphType     = py.NewType("Graph", "a map's region adjacency graph")
	pyResultType    = py.NewType("Result", "a coloring of a Graph and how it went")
	pyCatalogType   = py.NewType("Catalog", "stores named colorings (layers)")
	pyWorkspaceType = py.NewType("Workspace", "collects active session resources and catalogs")
)

type pyGraph struct {
	*lib4c.Graph
}

func (X pyGraph) Type() *py.Type {
	return pyGraphType
}

func (X pyGraph) M__str__() (py.Object, error) {
	writer := strings.Builder{}
	X.WriteAsString(&writer)
	return py.String(writer.String()), nil
}

func (X pyGraph) M__repr__() (py.Object, error) {
	return X.M__str__()
}

type pyResult struct {
	Label    string
	Coloring go4c.Coloring
	Diag     *go4c.Diagnostics
	Palette  int
}

func (R *pyResult) Type() *py.Type {
	return pyResultType
}

func (R *pyResult) M__str__() (py.Object, error) {
	return py.String(R.Diag.String()), nil
}

func (R *pyResult) M__repr__() (py.Object, error) {
	return R.M__str__()
}

type pyCatalog struct {
	go4c.Catalog
}

func (cat pyCatalog) Type() *py.Type {
	return pyCatalogType
}

// Workspace closes every catalog opened during a session when the session's context closes.
type Workspace struct {
	mu   sync.Mutex
	cats []go4c.Catalog
}

func (ws *Workspace) Type() *py.Type {
	return pyWorkspaceType
}

func (ws *Workspace) track(cat go4c.Catalog) {
	ws.mu.Lock()
	ws.cats = append(ws.cats, cat)
	ws.mu.Unlock()
}

func (ws *Workspace) Close() {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	for _, cat := range ws.cats {
		cat.Close()
	}
	ws.cats = nil
}

func getWorkspace(module py.Object) *Workspace {
	wsObj, _ := py.GetAttrString(module, kWorkspaceAttr)
	if wsObj == nil {
		ws := &Workspace{}
		py.SetAttrString(module, kWorkspaceAttr, ws)
		return ws
	}
	return wsObj.(*Workspace)
}

func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	switch errors.Cause(err) {
	case go4c.ErrBadGraphExpr, go4c.ErrSelfLoop, go4c.ErrUnknownVtx, go4c.ErrBadPalette, go4c.ErrBadColor:
		return py.ExceptionNewf(py.ValueError, "%v", err)
	case go4c.ErrLayerNotFound:
		return py.ExceptionNewf(py.KeyError, "%v", err)
	case go4c.ErrReadOnly:
		return py.ExceptionNewf(py.PermissionError, "%v", err)
	}
	return py.ExceptionNewf(py.RuntimeError, "%v", err)
}

// getGraph accepts either a Graph object or a graph expression string.
func getGraph(obj py.Object) (*lib4c.Graph, error) {
	switch v := obj.(type) {
	case pyGraph:
		return v.Graph, nil
	case py.String:
		G, err := lib4c.ParseGraph(string(v))
		return G, wrapErr(err)
	}
	return nil, py.ExceptionNewf(py.TypeError, "expected Graph or str (got %v)", obj.Type().Name)
}

// getPalette reads an optional palette size argument.
func getPalette(args py.Tuple, idx int) (int, error) {
	if len(args) <= idx {
		return go4c.DefaultPaletteSize, nil
	}
	k, err := py.GetInt(args[idx])
	if err != nil {
		return 0, err
	}
	return int(k), nil
}

// Arg 1 (str): graph expression, e.g. "1-2-3-1,3-4"
func py_Parse(module py.Object, args py.Tuple) (py.Object, error) {
	var expr py.Object
	err := py.ParseTuple(args, "s", &expr)
	if err != nil {
		return nil, err
	}
	G, err := lib4c.ParseGraph(string(expr.(py.String)))
	if err != nil {
		return nil, wrapErr(err)
	}
	return pyGraph{G}, nil
}

// Arg 1 (Graph or str): graph to color
// Arg 2 (int, optional): palette size
// Arg 3 (bool, optional): force
func py_Color(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) < 1 {
		return nil, py.ExceptionNewf(py.TypeError, "Color() takes at least 1 argument")
	}
	G, err := getGraph(args[0])
	if err != nil {
		return nil, err
	}

	opts := go4c.DefaultColorOpts
	if opts.PaletteSize, err = getPalette(args, 1); err != nil {
		return nil, err
	}
	if len(args) > 2 {
		force, ok := args[2].(py.Bool)
		if !ok {
			return nil, py.ExceptionNewf(py.TypeError, "expected bool (got %v)", args[2].Type().Name)
		}
		opts.Force = bool(force)
	}

	C, diag, err := lib4c.Color(G, opts)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &pyResult{
		Coloring: C,
		Diag:     diag,
		Palette:  opts.PaletteSize,
	}, nil
}

// Arg 1 (tuple of str): graph expressions
// Arg 2 (int, optional): palette size
//
// Colors each graph on a worker pool and returns a tuple of Results in the same order.
func py_ColorAll(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) < 1 {
		return nil, py.ExceptionNewf(py.TypeError, "ColorAll() takes at least 1 argument")
	}
	exprs, err := py.SequenceTuple(args[0])
	if err != nil {
		return nil, err
	}
	palette, err := getPalette(args, 1)
	if err != nil {
		return nil, err
	}

	jobs := make([]*go4c.Job, len(exprs))
	for i, obj := range exprs {
		str, ok := obj.(py.String)
		if !ok {
			return nil, py.ExceptionNewf(py.TypeError, "expected str (got %v)", obj.Type().Name)
		}
		def, err := lib4c.ParseGraphDef(string(str))
		if err != nil {
			return nil, wrapErr(err)
		}
		jobs[i] = &go4c.Job{
			Label: string(str),
			Def:   def,
			Opts:  go4c.DefaultColorOpts,
		}
		jobs[i].Opts.PaletteSize = palette
	}

	done := go4c.StreamJobs(jobs...).Color(lib4c.ColorJob, go4c.StreamOpts{}).PullAll()
	results := make(py.Tuple, len(done))
	for i, job := range done {
		if job.Err != nil {
			return nil, wrapErr(job.Err)
		}
		results[i] = &pyResult{
			Label:    job.Label,
			Coloring: job.Coloring,
			Diag:     job.Diag,
			Palette:  palette,
		}
	}
	return results, nil
}

func py_Graph_NumVerts(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	return py.Int(X.NumVerts()), nil
}

func py_Graph_NumEdges(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	return py.Int(X.NumEdges()), nil
}

func py_Graph_CliqueBound(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	return py.Int(lib4c.CliqueBound(X.Graph, go4c.MaxPaletteSize)), nil
}

// Returns a tuple of (vertex, color) tuples in ascending vertex order.
func py_Result_Colors(self py.Object, args py.Tuple) (py.Object, error) {
	R := self.(*pyResult)
	sorted := R.Coloring.Sorted()
	out := make(py.Tuple, len(sorted))
	for i, vc := range sorted {
		out[i] = py.Tuple{py.Int(vc.Vtx), py.Int(vc.Color)}
	}
	return out, nil
}

func py_Result_ColorOf(self py.Object, args py.Tuple) (py.Object, error) {
	R := self.(*pyResult)
	var vtx py.Object
	err := py.ParseTuple(args, "i", &vtx)
	if err != nil {
		return nil, err
	}
	return py.Int(R.Coloring[go4c.VtxID(vtx.(py.Int))]), nil
}

func py_Result_Complete(self py.Object, args py.Tuple) (py.Object, error) {
	R := self.(*pyResult)
	return py.NewBool(R.Diag.Complete()), nil
}

func intsToTuple[T ~int | ~int64](vals []T) py.Tuple {
	out := make(py.Tuple, len(vals))
	for i, v := range vals {
		out[i] = py.Int(v)
	}
	return out
}

func py_Result_Diagnostics(self py.Object, args py.Tuple) (py.Object, error) {
	R := self.(*pyResult)
	d := R.Diag
	return py.StringDict{
		"verts":         py.Int(d.NumVerts),
		"colored":       py.Int(d.NumColored),
		"histogram":     intsToTuple(d.Histogram),
		"illegal_edges": py.Int(d.IllegalEdges),
		"forced":        intsToTuple(d.Forced),
		"stuck":         intsToTuple(d.Stuck),
		"local_shifts":  py.Int(d.LocalShifts),
		"chain_shifts":  py.Int(d.ChainShifts),
		"attempts":      py.Int(d.Attempts),
		"clique_bound":  py.Int(d.CliqueBound),
		"balanced":      py.NewBool(d.Balanced),
	}, nil
}

// Arg 1 (str): pathname (empty for a memory resident catalog)
// Arg 2 (int, optional): flags (READ_ONLY)
func py_OpenCatalog(module py.Object, args py.Tuple) (py.Object, error) {
	var pathname, flags py.Object = py.String(""), py.Int(0)
	err := py.ParseTuple(args, "|si", &pathname, &flags)
	if err != nil {
		return nil, err
	}

	opts := go4c.CatalogOpts{
		DbPathName: string(pathname.(py.String)),
		ReadOnly:   (int(flags.(py.Int)) & READ_ONLY) != 0,
	}
	cat, err := catalog.OpenCatalog(opts)
	if err != nil {
		return nil, wrapErr(err)
	}
	getWorkspace(module).track(cat)
	return pyCatalog{cat}, nil
}

// Arg 1 (str): layer name
// Arg 2 (Result): coloring to store
func py_Catalog_Put(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	var name, res py.Object
	err := py.ParseTuple(args, "sO", &name, &res)
	if err != nil {
		return nil, err
	}
	R, ok := res.(*pyResult)
	if !ok {
		return nil, py.ExceptionNewf(py.TypeError, "expected Result (got %v)", res.Type().Name)
	}
	err = cat.PutLayer(&go4c.Layer{
		Name:        string(name.(py.String)),
		PaletteSize: R.Palette,
		Coloring:    R.Coloring,
		Diagnostics: *R.Diag,
	})
	if err != nil {
		return nil, wrapErr(err)
	}
	return py.None, nil
}

func py_Catalog_Get(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	var name py.Object
	err := py.ParseTuple(args, "s", &name)
	if err != nil {
		return nil, err
	}
	layer, err := cat.GetLayer(string(name.(py.String)))
	if err != nil {
		return nil, wrapErr(err)
	}
	return &pyResult{
		Label:    layer.Name,
		Coloring: layer.Coloring,
		Diag:     &layer.Diagnostics,
		Palette:  layer.PaletteSize,
	}, nil
}

func py_Catalog_Layers(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	names, err := cat.Layers()
	if err != nil {
		return nil, wrapErr(err)
	}
	out := make(py.Tuple, len(names))
	for i, name := range names {
		out[i] = py.String(name)
	}
	return out, nil
}

func py_Catalog_NumLayers(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	return py.Int(cat.NumLayers()), nil
}

func py_Catalog_Close(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	if err := cat.Close(); err != nil {
		return nil, wrapErr(err)
	}
	return py.None, nil
}

func init() {

	/////////////////////////////////
	// Graph
	{
		pyGraphType.Dict["NumVerts"] = py.MustNewMethod("NumVerts", py_Graph_NumVerts, 0, "")
		pyGraphType.Dict["NumEdges"] = py.MustNewMethod("NumEdges", py_Graph_NumEdges, 0, "")
		pyGraphType.Dict["CliqueBound"] = py.MustNewMethod("CliqueBound", py_Graph_CliqueBound, 0, "size of the largest clique found")
	}

	/////////////////////////////////
	// Result
	{
		pyResultType.Dict["Colors"] = py.MustNewMethod("Colors", py_Result_Colors, 0, "(vertex, color) pairs in vertex order")
		pyResultType.Dict["ColorOf"] = py.MustNewMethod("ColorOf", py_Result_ColorOf, 0, "color of the given vertex (0 if uncolored)")
		pyResultType.Dict["Complete"] = py.MustNewMethod("Complete", py_Result_Complete, 0, "")
		pyResultType.Dict["Diagnostics"] = py.MustNewMethod("Diagnostics", py_Result_Diagnostics, 0, "")
	}

	/////////////////////////////////
	// Catalog
	{
		pyCatalogType.Dict["Put"] = py.MustNewMethod("Put", py_Catalog_Put, 0, "stores a Result under the given layer name")
		pyCatalogType.Dict["Get"] = py.MustNewMethod("Get", py_Catalog_Get, 0, "")
		pyCatalogType.Dict["Layers"] = py.MustNewMethod("Layers", py_Catalog_Layers, 0, "")
		pyCatalogType.Dict["NumLayers"] = py.MustNewMethod("NumLayers", py_Catalog_NumLayers, 0, "")
		pyCatalogType.Dict["Close"] = py.MustNewMethod("Close", py_Catalog_Close, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("Parse", py_Parse, 0, ""),
			py.MustNewMethod("Color", py_Color, 0, "colors a Graph (or graph expression)"),
			py.MustNewMethod("ColorAll", py_ColorAll, 0, "colors a tuple of graph expressions concurrently"),
			py.MustNewMethod("OpenCatalog", py_OpenCatalog, 0, ""),
		}

		globals := py.StringDict{
			"LIB_VERSION":  py.String(LIB_VERSION),
			"PALETTE_SIZE": py.Int(go4c.DefaultPaletteSize),
			"READ_ONLY":    py.Int(READ_ONLY),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "_py4c",
				Doc:  "map coloring gpython module",
			},
			Methods: methods,
			Globals: globals,
			OnContextClosed: func(m *py.Module) {
				wsObj, _ := py.GetAttrString(m, kWorkspaceAttr)
				if wsObj != nil {
					wsObj.(*Workspace).Close()
				}
			},
		})
	}
}
