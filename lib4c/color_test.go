package lib4c_test

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/fiveham/map-tools/go4c"
	"github.com/fiveham/map-tools/lib4c"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	cycle5 = "0-1-2-3-4-0"
	wheel5 = "1-2-3-4-5-1,6-1,6-2,6-3,6-4,6-5"
	k4     = "0-1-2-3-0-2,1-3"
	k5     = "0-1-2-3-4-0-2-4-1-3-0"
)

// gridExpr returns a rows x cols grid where each cell may get one diagonal (so the result stays planar).
func gridExpr(rows, cols int, rng *rand.Rand, diagonals bool) string {
	var runs []string
	id := func(r, c int) int { return r*cols + c }
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			runs = append(runs, fmt.Sprint(id(r, c)))
			if c+1 < cols {
				runs = append(runs, fmt.Sprintf("%d-%d", id(r, c), id(r, c+1)))
			}
			if r+1 < rows {
				runs = append(runs, fmt.Sprintf("%d-%d", id(r, c), id(r+1, c)))
			}
			if diagonals && r+1 < rows && c+1 < cols {
				switch rng.Intn(3) {
				case 0:
					runs = append(runs, fmt.Sprintf("%d-%d", id(r, c), id(r+1, c+1)))
				case 1:
					runs = append(runs, fmt.Sprintf("%d-%d", id(r, c+1), id(r+1, c)))
				}
			}
		}
	}
	return strings.Join(runs, ",")
}

func colorExpr(t *testing.T, expr string, opts go4c.ColorOpts) (*lib4c.Graph, go4c.Coloring, *go4c.Diagnostics) {
	t.Helper()
	G, err := lib4c.ParseGraph(expr)
	require.NoError(t, err)
	C, diag, err := lib4c.Color(G, opts)
	require.NoError(t, err)
	return G, C, diag
}

func requireLegal(t *testing.T, G *lib4c.Graph, C go4c.Coloring, paletteSize int) {
	t.Helper()
	for _, e := range G.Edges() {
		ca, cb := C[e.A], C[e.B]
		if ca != go4c.Uncolored && ca == cb {
			t.Fatalf("edge %v is monochromatic (color %d)", e, ca)
		}
	}
	for v, c := range C {
		require.True(t, c >= 1 && int(c) <= paletteSize, "vertex %d has color %d", v, c)
	}
}

func TestColorLegal(t *testing.T) {
	for _, expr := range []string{
		wheel5,
		k4,
		"0-1",
		"7",
		"1-2-3-1,3-4-5-3,5-1",
		gridExpr(6, 6, nil, false),
	} {
		G, C, diag := colorExpr(t, expr, go4c.DefaultColorOpts)
		requireLegal(t, G, C, 4)
		assert.True(t, diag.Complete(), "graph %v: %v", expr, diag)
		assert.Equal(t, G.NumVerts(), len(C))
		assert.True(t, diag.Balanced)

		total := 0
		for _, n := range diag.Histogram {
			total += n
		}
		assert.Equal(t, G.NumVerts(), total)
		assert.Zero(t, diag.Histogram[0])
	}
}

func TestColorDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	expr := gridExpr(7, 7, rng, true)
	_, C1, d1 := colorExpr(t, expr, go4c.DefaultColorOpts)
	for i := 0; i < 3; i++ {
		_, C2, d2 := colorExpr(t, expr, go4c.DefaultColorOpts)
		assert.Equal(t, C1, C2)
		assert.Equal(t, d1, d2)
	}
}

func TestColorSmallPlanar(t *testing.T) {
	const trials = 40

	rng := rand.New(rand.NewSource(2024))
	complete := 0
	for i := 0; i < trials; i++ {
		expr := gridExpr(5, 6, rng, true)
		G, C, diag := colorExpr(t, expr, go4c.DefaultColorOpts)
		requireLegal(t, G, C, 4)
		if diag.Complete() && len(diag.Stuck) == 0 {
			complete++
		}
	}
	assert.GreaterOrEqual(t, complete, trials*8/10, "only %d of %d planar graphs fully colored", complete, trials)
}

func TestColorOddCycle(t *testing.T) {
	opts := go4c.DefaultColorOpts

	// An odd cycle can't be 2-colored
	opts.PaletteSize = 2
	G, C, diag := colorExpr(t, cycle5, opts)
	requireLegal(t, G, C, 2)
	assert.False(t, diag.Complete())
	assert.NotEmpty(t, diag.Stuck)
	assert.Less(t, diag.NumColored, 5)
	assert.Zero(t, diag.IllegalEdges)
	assert.Empty(t, diag.Forced)
	assert.False(t, diag.Balanced)
	assert.Greater(t, diag.Attempts, 1)
	assert.LessOrEqual(t, diag.Attempts, 1+opts.MaxKickbacks)
	assert.Positive(t, diag.Histogram[0])

	// Without kickbacks the first attempt stands
	for _, kickbacks := range []int{0, -1} {
		_, C, diag = colorExpr(t, cycle5, go4c.ColorOpts{PaletteSize: 2, MaxKickbacks: kickbacks})
		requireLegal(t, G, C, 2)
		assert.Equal(t, 1, diag.Attempts)
		assert.NotEmpty(t, diag.Stuck)
	}

	for _, k := range []int{3, 4} {
		opts.PaletteSize = k
		G, C, diag = colorExpr(t, cycle5, opts)
		requireLegal(t, G, C, k)
		assert.True(t, diag.Complete(), "palette %d: %v", k, diag)
		assert.Empty(t, diag.Stuck)
	}
}

func TestColorForce(t *testing.T) {
	opts := go4c.DefaultColorOpts
	opts.PaletteSize = 2
	opts.Force = true

	_, C, diag := colorExpr(t, cycle5, opts)
	assert.Len(t, C, 5)
	assert.Equal(t, 5, diag.NumColored)
	assert.NotEmpty(t, diag.Forced)
	assert.Positive(t, diag.IllegalEdges)
	assert.False(t, diag.Complete())
	assert.False(t, diag.Balanced)

	// K5 needs five colors
	opts.PaletteSize = 4
	_, C, diag = colorExpr(t, k5, opts)
	assert.Equal(t, 5, diag.CliqueBound)
	assert.Len(t, C, 5)
	assert.Equal(t, 1, diag.IllegalEdges)

	opts.Force = false
	_, C, diag = colorExpr(t, k5, opts)
	assert.Len(t, C, 4)
	assert.Equal(t, []go4c.VtxID{4}, diag.Stuck[:1])
}

func TestColorSeeded(t *testing.T) {
	opts := go4c.DefaultColorOpts
	opts.Initial = go4c.Coloring{6: 3, 1: 1}
	opts.LockInitial = true

	G, C, diag := colorExpr(t, wheel5, opts)
	requireLegal(t, G, C, 4)
	assert.True(t, diag.Complete())
	assert.Equal(t, go4c.Color(3), C[6])
	assert.Equal(t, go4c.Color(1), C[1])

	// A seed that is already complete and legal is kept as is when locked
	seed := C.Clone()
	opts.Initial = seed
	_, C, diag = colorExpr(t, wheel5, opts)
	assert.Equal(t, seed, C)
	assert.Equal(t, 1, diag.Attempts)
}

func TestColorPreKick(t *testing.T) {
	opts := go4c.DefaultColorOpts
	opts.SkipBalance = true

	_, C, diag := colorExpr(t, cycle5, opts)
	assert.Equal(t, go4c.Color(1), C[0])
	assert.False(t, diag.Balanced)

	v := go4c.VtxID(3)
	opts.PreKick = &v
	_, C, _ = colorExpr(t, cycle5, opts)
	assert.Equal(t, go4c.Color(1), C[3])
}

func TestColorBySupply(t *testing.T) {
	expr := gridExpr(4, 4, nil, false)

	opts := go4c.DefaultColorOpts
	opts.SkipBalance = true
	_, C, diag := colorExpr(t, expr, opts)
	assert.True(t, diag.Complete())
	assert.Equal(t, []int{0, 8, 8, 0, 0}, diag.Histogram)

	opts.Assign = go4c.AssignBySupply
	G, C, diag := colorExpr(t, expr, opts)
	requireLegal(t, G, C, 4)
	assert.True(t, diag.Complete())
	for c := 1; c <= 4; c++ {
		assert.Positive(t, diag.Histogram[c], "color %d unused", c)
	}
}

func TestColorErrors(t *testing.T) {
	G := lib4c.MustParseGraph(wheel5)

	_, _, err := lib4c.Color(nil, go4c.DefaultColorOpts)
	assert.Equal(t, go4c.ErrNilGraph, err)

	for _, k := range []int{1, 32, -1} {
		_, _, err = lib4c.Color(G, go4c.ColorOpts{PaletteSize: k})
		assert.True(t, errors.Is(err, go4c.ErrBadPalette), "palette %d", k)
	}

	_, _, err = lib4c.Color(G, go4c.ColorOpts{Initial: go4c.Coloring{99: 1}})
	assert.True(t, errors.Is(err, go4c.ErrUnknownVtx))

	_, _, err = lib4c.Color(G, go4c.ColorOpts{Initial: go4c.Coloring{1: 5}})
	assert.True(t, errors.Is(err, go4c.ErrBadColor))

	v := go4c.VtxID(99)
	_, _, err = lib4c.Color(G, go4c.ColorOpts{PreKick: &v})
	assert.True(t, errors.Is(err, go4c.ErrUnknownVtx))

	// A zero palette size means the default
	C, diag, err := lib4c.Color(G, go4c.ColorOpts{})
	require.NoError(t, err)
	assert.True(t, diag.Complete())
	assert.Len(t, C, 6)
	assert.Len(t, diag.Histogram, 5)
}

func TestColorEmpty(t *testing.T) {
	_, C, diag := colorExpr(t, "", go4c.DefaultColorOpts)
	assert.Empty(t, C)
	assert.True(t, diag.Complete())
	assert.Equal(t, 0, diag.CliqueBound)
}

func TestColorJob(t *testing.T) {
	def, err := lib4c.ParseGraphDef(k4)
	require.NoError(t, err)

	job := &go4c.Job{Def: def, Opts: go4c.DefaultColorOpts}
	lib4c.ColorJob(job)
	require.NoError(t, job.Err)
	assert.True(t, job.Diag.Complete())
	assert.Equal(t, 4, job.Diag.CliqueBound)

	job = &go4c.Job{Def: go4c.GraphDef{Edges: []go4c.Edge{{A: 1, B: 2}}}}
	lib4c.ColorJob(job)
	assert.True(t, errors.Is(job.Err, go4c.ErrUnknownVtx))
}
