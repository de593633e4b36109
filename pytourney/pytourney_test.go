package pytourney_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-python/gpython/py"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/2x3systems/tourney/pytourney"
	_ "github.com/go-python/gpython/stdlib"
)

func runScript(t *testing.T, src string) py.StringDict {
	ctx := py.NewContext(py.DefaultContextOpts())
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	code, err := py.Compile(src, "<test>", py.ExecMode, 0, true)
	require.NoError(t, err)

	module, err := py.RunCode(ctx, code, "<test>", nil)
	if err != nil {
		py.TracebackDump(err)
	}
	require.NoError(t, err)
	return module.Globals
}

func TestScoreAndTriangles(t *testing.T) {
	globals := runScript(t, `
import _pytourney as T
cycle = T.Score("0>1>2>0")
mono = T.Score("0>1>2>0", 1)
tris = T.Triangles("0>1>2>0, 3<0, 3<1, 3<2")
`)
	assert.Equal(t, py.Int(4), globals["cycle"])
	assert.Equal(t, py.Int(6), globals["mono"])

	tris := globals["tris"].(py.Tuple)
	require.Len(t, tris, 1)
	assert.Equal(t, py.Tuple{py.Int(0), py.Int(1), py.Int(2)}, tris[0])
}

func TestSearchIntoCatalog(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "tour3.txt")
	require.NoError(t, os.WriteFile(dbPath, []byte("111\n101\n"), 0644))

	globals := runScript(t, fmt.Sprintf(`
import _pytourney as T
ws = T.GetWorkspace()
cat = ws.OpenCatalog("")
added = T.Search(%q, 3, 0, 0).AddTo(cat).Go()
stored = cat.NumResults(3)
rows = cat.Select(3).Collect()
cycles = cat.Select(3, 4, 4).Go()
try:
    cat.NumResults()
    missing_order = False
except TypeError:
    missing_order = True
cat.Close()
`, dbPath))

	assert.Equal(t, py.Int(2), globals["added"])
	assert.Equal(t, py.Int(2), globals["stored"])
	assert.Equal(t, py.Int(1), globals["cycles"])
	assert.Equal(t, py.True, globals["missing_order"])

	rows := globals["rows"].(py.Tuple)
	require.Len(t, rows, 2)
	assert.Equal(t, py.Tuple{py.Int(1), py.Int(1), py.Int(4), py.True}, rows[1])
}
