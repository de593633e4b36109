package pytourney

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/go-python/gpython/py"

	"github.com/2x3systems/tourney/libtourney"
	"github.com/2x3systems/tourney/libtourney/catalog"
	"github.com/2x3systems/tourney/tourney"
)

var (
	LIB_VERSION = "v1.2026.1"
)

var (
	pyResultStreamType = py.NewType("ResultStream", "tourney.ResultStream")
	pyCatalogType      = py.NewType("Catalog", "tourney.Catalog")
	pyWorkspaceType    = py.NewType("Workspace", "collects active session resources and catalogs")
)

// loadArgs is py.LoadTuple where trailing vars are optional.
func loadArgs(args py.Tuple, vars ...interface{}) error {
	if len(vars) > len(args) {
		vars = vars[:len(args)]
	}
	return py.LoadTuple(args, vars)
}

func parseTournament(expr string) (*libtourney.Tournament, error) {
	T, err := libtourney.ParseTournament(expr)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return T, nil
}

// Arg 1 (str): tournament expression, e.g. "0>1>2>0"
// Arg 2 (int): number of colors (optional, default 2)
func py_Score(module py.Object, args py.Tuple) (py.Object, error) {
	var expr string
	numColors := int32(tourney.DefaultNumColors)
	err := loadArgs(args, &expr, &numColors)
	if err != nil {
		return nil, err
	}

	T, err := parseTournament(expr)
	if err != nil {
		return nil, err
	}

	opts := libtourney.DefaultSearchOpts(T.Order())
	opts.NumColors = int(numColors)
	opts.NoEarlyExit = true
	s, err := libtourney.NewSearcher(opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}

	eval := s.Evaluate(T, libtourney.FindTriangles(T))
	return py.Int(eval.Score), nil
}

// Arg 1 (str): tournament expression
func py_Triangles(module py.Object, args py.Tuple) (py.Object, error) {
	var expr string
	err := loadArgs(args, &expr)
	if err != nil {
		return nil, err
	}

	T, err := parseTournament(expr)
	if err != nil {
		return nil, err
	}

	tris := libtourney.FindTriangles(T)
	out := make(py.Tuple, len(tris))
	for i, tri := range tris {
		out[i] = py.Tuple{py.Int(tri.I), py.Int(tri.J), py.Int(tri.K)}
	}
	return out, nil
}

// Arg 1 (str): tournament database pathname
// Arg 2 (int): order q
// Arg 3 (int): triangle filter
// Arg 4 (int): result filter (optional, default 2q(q-1)/3)
func py_Search(module py.Object, args py.Tuple) (py.Object, error) {
	var pathname string
	var order, triangleFilter int32
	resultFilter := int32(-1)
	err := loadArgs(args, &pathname, &order, &triangleFilter, &resultFilter)
	if err != nil {
		return nil, err
	}

	opts := libtourney.DefaultSearchOpts(int(order))
	opts.TriangleFilter = int(triangleFilter)
	if resultFilter >= 0 {
		opts.ResultFilter = int(resultFilter)
	}
	s, err := libtourney.NewSearcher(opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}

	store, err := libtourney.OpenStore(pathname, int(order))
	if err != nil {
		var cfgErr *tourney.ConfigurationError
		if errors.As(err, &cfgErr) {
			return nil, py.ExceptionNewf(py.FileNotFoundError, "%v", err)
		}
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}

	return wrapResultStream(s.Search(store)), nil
}

const (
	READ_ONLY = 0x01

	kWorkspaceAttr = "_Workspace"
)

type Workspace struct {
	CatalogCtx tourney.CatalogContext
}

func (ws *Workspace) Close() {
	ws.CatalogCtx.Close()
	<-ws.CatalogCtx.Done()
}

func (ws *Workspace) Type() *py.Type {
	return pyWorkspaceType
}

func py_GetWorkspace(module py.Object, args py.Tuple) (py.Object, error) {
	wsObj, _ := py.GetAttrString(module, kWorkspaceAttr)
	if wsObj == nil {
		wsObj = &Workspace{
			CatalogCtx: tourney.NewCatalogContext(),
		}
		py.SetAttrString(module, kWorkspaceAttr, wsObj)
	}
	return wsObj, nil
}

func py_Workspace_CatalogExists(self py.Object, args py.Tuple) (py.Object, error) {
	_ = self.(*Workspace)

	var pathname string
	err := loadArgs(args, &pathname)
	if err != nil {
		return nil, err
	}
	_, err = os.Stat(pathname)
	if os.IsNotExist(err) {
		return py.False, nil
	}
	return py.True, nil
}

// Arg 1 (str): catalog pathname ("" for an in-memory catalog)
// Arg 2 (int): flags (optional, READ_ONLY)
func py_Workspace_OpenCatalog(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)

	var pathname string
	var flags int32
	err := loadArgs(args, &pathname, &flags)
	if err != nil {
		return nil, err
	}

	opts := tourney.CatalogOpts{
		ReadOnly:   (flags & READ_ONLY) != 0,
		DbPathName: pathname,
	}

	cat, err := catalog.OpenCatalog(ws.CatalogCtx, opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}

	return py.Object(pyCatalog{cat}), nil
}

type pyCatalog struct {
	tourney.Catalog
}

func (cat pyCatalog) Type() *py.Type {
	return pyCatalogType
}

func getCatalog(obj py.Object) (pyCatalog, error) {
	cat, ok := obj.(pyCatalog)
	if !ok {
		return cat, py.ExceptionNewf(py.TypeError, "expected Catalog object (got %v)", obj.Type().Name)
	}
	return cat, nil
}

func py_Catalog_Close(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	if cat.Catalog != nil {
		cat.Close()
	}
	return py.None, nil
}

// Arg 1 (int): order q
// Arg 2 (int): min score (optional)
// Arg 3 (int): max score (optional)
// Arg 4 (bool): qualifying only (optional)
func py_Catalog_Select(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)

	sel, err := loadResultSelector(args)
	if err != nil {
		return nil, err
	}
	next := tourney.SelectFromCatalog(cat, sel)
	return wrapResultStream(next), nil
}

func py_Catalog_NumResults(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)

	var order int32
	if len(args) != 1 {
		return nil, py.ExceptionNewf(py.TypeError, "NumResults() takes an order, %d args given", len(args))
	}
	if err := loadArgs(args, &order); err != nil {
		return nil, err
	}
	return py.Int(cat.NumResults(int(order))), nil
}

func loadResultSelector(args py.Tuple) (tourney.ResultSelector, error) {
	var order int32
	minScore, maxScore := int32(-1), int32(-1)
	qualifying := false
	if len(args) > 3 {
		truth, err := py.MakeBool(args[3])
		if err != nil {
			return tourney.ResultSelector{}, err
		}
		qualifying = truth == py.True
		args = args[:3]
	}
	err := loadArgs(args, &order, &minScore, &maxScore)
	if err != nil {
		return tourney.ResultSelector{}, err
	}

	sel := tourney.DefaultResultSelector(int(order))
	if minScore >= 0 {
		sel.MinScore = int(minScore)
	}
	if maxScore >= 0 {
		sel.MaxScore = int(maxScore)
	}
	sel.QualifyingOnly = qualifying
	return sel, nil
}

type resultStream struct {
	*tourney.ResultStream
}

func (stream resultStream) Type() *py.Type {
	return pyResultStreamType
}

func wrapResultStream(stream *tourney.ResultStream) py.Object {
	return py.Object(resultStream{stream})
}

func py_ResultStream_Go(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(resultStream)
	count := stream.PullAll()
	return py.Int(count), nil
}

// Returns a tuple of (index, triangles, score, exact) tuples.
func py_ResultStream_Collect(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(resultStream)
	results := stream.ResultStream.Collect()

	out := make(py.Tuple, len(results))
	for i, r := range results {
		out[i] = py.Tuple{py.Int(r.Index), py.Int(r.Triangles), py.Int(r.Score), py.NewBool(r.Exact)}
	}
	return out, nil
}

type fileWriter struct {
	stdout io.Writer
	to     io.WriteCloser
}

func (w *fileWriter) Write(buf []byte) (int, error) {
	if w.to == nil {
		return w.stdout.Write(buf)
	}
	return w.to.Write(buf)
}

// Arg 1 (str): label (optional)
// kwargs: label=str, matrix=("latex"|"ascii"|"none"), file=str
func py_ResultStream_Print(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	stream := self.(resultStream)
	var pathname, matrix string

	opts := tourney.DefaultPrintOpts

	loadArgs(args, &opts.Label)
	if opts.Label == "" {
		py.LoadAttr(kwargs, "label", &opts.Label)
	}

	py.LoadAttr(kwargs, "matrix", &matrix)
	py.LoadAttr(kwargs, "file", &pathname)

	if matrix != "" {
		format, err := tourney.ParseRenderFormat(matrix)
		if err != nil {
			return nil, py.ExceptionNewf(py.ValueError, "%v", err)
		}
		opts.Matrix = format
	}

	writer := &fileWriter{
		stdout: os.Stdout,
	}
	if len(pathname) > 0 {
		os.MkdirAll(filepath.Dir(pathname), 0700)

		file, err := os.OpenFile(pathname, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0600)
		if err != nil {
			return nil, py.ExceptionNewf(py.FileNotFoundError, "%v", err)
		}
		writer.to = file
	}

	if opts.Label == "" {
		opts.Label = fmt.Sprintf("out[%d]", atomic.AddInt32(&gOutCount, 1))
	}

	next := stream.Print(writer, opts)
	if writer.to != nil {
		next = closeWhenDrained(next, writer.to)
	}
	return wrapResultStream(next), nil
}

// closeWhenDrained passes results along and closes c once the stream ends.
func closeWhenDrained(stream *tourney.ResultStream, c io.Closer) *tourney.ResultStream {
	next := tourney.NewResultStream()
	go func() {
		for r := range stream.Outlet {
			next.Outlet <- r
		}
		c.Close()
		next.Close()
	}()
	return next
}

var gOutCount = int32(0)

func py_ResultStream_AddTo(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(resultStream)
	if len(args) < 1 {
		return nil, py.ExceptionNewf(py.TypeError, "AddTo() needs a Catalog")
	}
	cat, err := getCatalog(args[0])
	if err != nil {
		return nil, err
	}
	if cat.IsReadOnly() {
		return nil, py.ExceptionNewf(py.PermissionError, "%v", errors.New("catalog is in read-only mode"))
	}

	next := stream.AddTo(cat)
	return wrapResultStream(next), nil
}

// Same args as Catalog.Select()
func py_ResultStream_Select(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(resultStream)
	sel, err := loadResultSelector(args)
	if err != nil {
		return nil, err
	}
	next := stream.Select(sel)
	return wrapResultStream(next), nil
}

func init() {

	/////////////////////////////////
	// Catalog
	{
		pyCatalogType.Dict["Select"] = py.MustNewMethod("Select", py_Catalog_Select, 0, "streams stored results of an order, optionally bounded by score")
		pyCatalogType.Dict["NumResults"] = py.MustNewMethod("NumResults", py_Catalog_NumResults, 0, "")
		pyCatalogType.Dict["Close"] = py.MustNewMethod("Close", py_Catalog_Close, 0, "")
	}

	/////////////////////////////////
	// Workspace
	{
		pyWorkspaceType.Dict["OpenCatalog"] = py.MustNewMethod("OpenCatalog", py_Workspace_OpenCatalog, 0, "")
		pyWorkspaceType.Dict["CatalogExists"] = py.MustNewMethod("CatalogExists", py_Workspace_CatalogExists, 0, "")
	}

	/////////////////////////////////
	// ResultStream
	{
		pyResultStreamType.Dict["Go"] = py.MustNewMethod("Go", py_ResultStream_Go, 0, "counts the number of results output from the ResultStream")
		pyResultStreamType.Dict["Collect"] = py.MustNewMethod("Collect", py_ResultStream_Collect, 0, "")
		pyResultStreamType.Dict["Print"] = py.MustNewMethod("Print", py_ResultStream_Print, 0, "prints each result from the ResultStream")
		pyResultStreamType.Dict["AddTo"] = py.MustNewMethod("AddTo", py_ResultStream_AddTo, 0, "")
		pyResultStreamType.Dict["Select"] = py.MustNewMethod("Select", py_ResultStream_Select, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("Score", py_Score, 0, "returns s(Q), the minimum monochromatic reachability count over all colorings"),
			py.MustNewMethod("Triangles", py_Triangles, 0, "returns the directed triangles of a tournament"),
			py.MustNewMethod("Search", py_Search, 0, "searches a tournament database, returning a ResultStream"),
			py.MustNewMethod("GetWorkspace", py_GetWorkspace, 0, ""),
		}

		globals := py.StringDict{
			"LIB_VERSION": py.String(LIB_VERSION),
			"MAX_ORDER":   py.Int(tourney.MaxOrder),
			"READ_ONLY":   py.Int(READ_ONLY),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "_pytourney",
				Doc:  "tournament reachability search gpython module",
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
