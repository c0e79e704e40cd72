package py4c_test

import (
	"testing"

	"github.com/go-python/gpython/py"
	"github.com/stretchr/testify/require"

	_ "github.com/fiveham/map-tools/py4c"
	_ "github.com/go-python/gpython/stdlib"
)

func runScript(t *testing.T, src string) {
	t.Helper()
	ctx := py.NewContext(py.DefaultContextOpts())
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	_, err := py.RunSrc(ctx, src, "<test>", nil)
	if err != nil {
		py.TracebackDump(err)
	}
	require.NoError(t, err)
}

func TestColor(t *testing.T) {
	runScript(t, `
import _py4c as m

assert m.PALETTE_SIZE == 4

G = m.Parse("1-2-3-4-5-1,6-1,6-2,6-3,6-4,6-5")
assert G.NumVerts() == 6
assert G.NumEdges() == 10
assert G.CliqueBound() == 3

R = m.Color(G)
assert R.Complete()
colors = R.Colors()
assert len(colors) == 6
for v, c in colors:
    assert 1 <= c and c <= 4

d = R.Diagnostics()
assert d["illegal_edges"] == 0
assert d["colored"] == 6

# an odd cycle isn't 2-colorable
R = m.Color("1-2-3-4-5-1", 2)
assert not R.Complete()
R = m.Color("1-2-3-4-5-1", 2, True)
assert R.Diagnostics()["colored"] == 5
assert R.Diagnostics()["illegal_edges"] > 0
`)
}

func TestColorAll(t *testing.T) {
	runScript(t, `
import _py4c as m

results = m.ColorAll(("1-2", "1-2-3-1", "1-2-3-4-1-3,2-4"))
assert len(results) == 3
for R in results:
    assert R.Complete()
assert R.Diagnostics()["clique_bound"] == 4
`)
}

func TestCatalog(t *testing.T) {
	runScript(t, `
import _py4c as m

cat = m.OpenCatalog()
R = m.Color("1-2-3-1,3-4")
cat.Put("counties", R)
assert cat.Layers() == ("counties",)
assert cat.NumLayers() == 1

got = cat.Get("counties")
assert got.Colors() == R.Colors()
assert got.ColorOf(3) == R.ColorOf(3)

try:
    cat.Get("precincts")
    assert False
except KeyError:
    pass

cat.Close()
`)
}
