package lib4c

import (
	"github.com/fiveham/map-tools/go4c"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// attempt is the outcome of one greedy pass.
type attempt struct {
	C           *Coloring
	stuck       int32   // vertex where repair was exhausted, or -1 if the pass completed
	forced      []int32 // vertices colored illegally on purpose
	localShifts int
	chainShifts int
}

// colorer runs greedy passes over a Graph.  One colorer is used by a single goroutine.
type colorer struct {
	G       *Graph
	opts    go4c.ColorOpts
	palette go4c.ColorSet
	locked  []bool
	sel     *selector
	rp      *Repairer
}

func newColorer(G *Graph, opts go4c.ColorOpts, locked []bool) *colorer {
	palette := go4c.FullPalette(opts.PaletteSize)
	return &colorer{
		G:       G,
		opts:    opts,
		palette: palette,
		locked:  locked,
		sel:     newSelector(G, palette, CliqueCounts(G)),
		rp:      NewRepairer(G, palette, locked),
	}
}

// run colors every uncolored vertex of C, most constrained first.
//
// When a vertex has no legal color, Sidetrack is asked for a replacement coloring.  If that fails, the pass stops
// there unless force is set, in which case the vertex gets its least conflicting color and the pass continues.
func (cr *colorer) run(C *Coloring, pinned int32, force bool) *attempt {
	at := &attempt{
		stuck: -1,
	}

	var supply Supply
	if cr.opts.Assign == go4c.AssignBySupply {
		supply = NewSupply(cr.opts.PaletteSize, cr.G.NumVerts())
		for vi := int32(0); vi < int32(cr.G.NumVerts()); vi++ {
			supply.Take(C.ColorOf(vi))
		}
	}

	cr.sel.reset(C)
	for {
		vi, ok := cr.sel.next(pinned, C)
		if !ok {
			break
		}

		legal := LegalColors(cr.G, vi, C, cr.palette)
		if legal == 0 {
			R := cr.rp.Sidetrack(vi, C)
			switch R.Technique {
			case TechniqueLocalShift:
				at.localShifts++
			case TechniqueChainShift:
				at.chainShifts++
			case TechniqueNone:
				if !force {
					klog.V(1).Infof("painted into a corner on vertex %d", cr.G.ID(vi))
					at.stuck = vi
					at.C = C
					return at
				}
				c := cr.leastConflicting(vi, C)
				klog.Warningf("coloring vertex %d illegally on purpose (color %d)", cr.G.ID(vi), c)
				at.forced = append(at.forced, vi)
				C.Set(vi, c)
				cr.sel.colored(vi, C)
				continue
			}

			C = R.Coloring
			cr.sel.reset(C)
			legal = LegalColors(cr.G, vi, C, cr.palette)
		}

		var c go4c.Color
		if supply != nil {
			c = supply.Take(supply.Most(legal).Min())
		} else {
			c = legal.Min()
		}
		C.Set(vi, c)
		cr.sel.colored(vi, C)
	}

	at.C = C
	return at
}

// leastConflicting returns the color held by the fewest neighbors of vi (ties go to the lowest color).
func (cr *colorer) leastConflicting(vi int32, C *Coloring) go4c.Color {
	counts := make([]int, cr.opts.PaletteSize+1)
	for _, ni := range cr.G.adj[vi] {
		if c := C.ColorOf(ni); int(c) < len(counts) {
			counts[c]++
		}
	}
	best := go4c.Color(1)
	for c := 2; c <= cr.opts.PaletteSize; c++ {
		if counts[c] < counts[best] {
			best = go4c.Color(c)
		}
	}
	return best
}

// seedColoring validates opts.Initial and returns it as a Coloring for G, plus the locked vertices if requested.
func seedColoring(G *Graph, opts go4c.ColorOpts) (*Coloring, []bool, error) {
	C := NewColoring(G)
	var locked []bool
	if opts.LockInitial && len(opts.Initial) > 0 {
		locked = make([]bool, G.NumVerts())
	}

	palette := go4c.FullPalette(opts.PaletteSize)
	for _, vc := range opts.Initial.Sorted() {
		if vc.Color == go4c.Uncolored {
			continue
		}
		vi, ok := G.Index(vc.Vtx)
		if !ok {
			return nil, nil, errors.Wrapf(go4c.ErrUnknownVtx, "seed vertex %d", vc.Vtx)
		}
		if !palette.Has(vc.Color) {
			return nil, nil, errors.Wrapf(go4c.ErrBadColor, "seed vertex %d has color %d (palette size %d)", vc.Vtx, vc.Color, opts.PaletteSize)
		}
		C.Set(vi, vc.Color)
		if locked != nil {
			locked[vi] = true
		}
	}
	return C, locked, nil
}

// Color assigns a color to every vertex of G so that no edge joins two vertices of the same color, as far as possible.
//
// The pass is greedy, most constrained vertex first, with local repairs in place of backtracking.  If a vertex can't be
// repaired, the pass is restarted with that vertex pinned first (up to opts.MaxKickbacks times).  If every attempt
// gets stuck, the attempt that colored the most vertices is returned unless opts.Force is set, in which case one
// more pass is made that colors stuck vertices illegally on purpose.  A completed coloring is then balanced.
//
// An error is only returned for malformed input; an incomplete coloring is reported through the Diagnostics.
func Color(G *Graph, opts go4c.ColorOpts) (go4c.Coloring, *go4c.Diagnostics, error) {
	if G == nil {
		return nil, nil, go4c.ErrNilGraph
	}
	opts.Normalize()
	if opts.PaletteSize < go4c.MinPaletteSize || opts.PaletteSize > go4c.MaxPaletteSize {
		return nil, nil, errors.Wrapf(go4c.ErrBadPalette, "palette size %d", opts.PaletteSize)
	}

	seed, locked, err := seedColoring(G, opts)
	if err != nil {
		return nil, nil, err
	}

	pinned := int32(-1)
	if opts.PreKick != nil {
		vi, ok := G.Index(*opts.PreKick)
		if !ok {
			return nil, nil, errors.Wrapf(go4c.ErrUnknownVtx, "pre-kick vertex %d", *opts.PreKick)
		}
		pinned = vi
	}

	diag := &go4c.Diagnostics{
		NumVerts:    G.NumVerts(),
		CliqueBound: CliqueBound(G, opts.PaletteSize+1),
	}
	if diag.CliqueBound > opts.PaletteSize {
		klog.Warningf("graph contains a %d-clique; %d colors can't color it legally", diag.CliqueBound, opts.PaletteSize)
	}

	cr := newColorer(G, opts, locked)

	var best *attempt
	kicked := make(map[int32]bool)
	for {
		at := cr.run(seed.Clone(), pinned, false)
		diag.Attempts++
		if best == nil || at.C.NumColored() > best.C.NumColored() {
			best = at
		}
		if at.stuck < 0 {
			best = at
			break
		}
		diag.Stuck = append(diag.Stuck, G.ID(at.stuck))
		if kicked[at.stuck] || len(kicked) >= opts.MaxKickbacks {
			break
		}
		kicked[at.stuck] = true
		pinned = at.stuck
		klog.V(1).Infof("vertex %d kicked back", G.ID(at.stuck))
	}

	if best.stuck >= 0 && opts.Force {
		klog.Warningf("coloring with no safeties")
		best = cr.run(seed.Clone(), -1, true)
		diag.Attempts++
	}

	C := best.C
	if best.stuck < 0 && len(best.forced) == 0 && !opts.SkipBalance {
		Balance(G, C, opts.PaletteSize, locked)
		diag.Balanced = true
	}

	diag.NumColored = C.NumColored()
	diag.Histogram = C.Histogram(opts.PaletteSize)
	diag.IllegalEdges = len(IllegalEdges(G, C))
	diag.LocalShifts = best.localShifts
	diag.ChainShifts = best.chainShifts
	for _, vi := range best.forced {
		diag.Forced = append(diag.Forced, G.ID(vi))
	}

	klog.V(1).Infof("%v", diag)
	if diag.IllegalEdges > 0 {
		klog.Warningf("%d illegal edges", diag.IllegalEdges)
	}

	return C.Export(G), diag, nil
}

// ColorDef builds the Graph described by def and colors it.
func ColorDef(def go4c.GraphDef, opts go4c.ColorOpts) (go4c.Coloring, *go4c.Diagnostics, error) {
	G, err := NewGraph(def)
	if err != nil {
		return nil, nil, err
	}
	return Color(G, opts)
}

// ColorJob is a go4c.ColorFunc that colors job.Def with job.Opts.
func ColorJob(job *go4c.Job) {
	job.Coloring, job.Diag, job.Err = ColorDef(job.Def, job.Opts)
}
