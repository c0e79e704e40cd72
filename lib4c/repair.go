package lib4c

import (
	"sort"

	"github.com/fiveham/map-tools/go4c"
	"github.com/plan-systems/klog"
)

// Technique names the repair that freed a color for a blocked vertex.
type Technique int32

const (
	TechniqueNone Technique = iota
	TechniqueLocalShift
	TechniqueChainShift
)

func (t Technique) String() string {
	switch t {
	case TechniqueLocalShift:
		return "local shift"
	case TechniqueChainShift:
		return "chain shift"
	}
	return "blocked"
}

// Repair is the outcome of trying to open a legal color for a blocked vertex.
//
// Either Coloring is a full replacement for the coloring passed in (and the blocked vertex now has at least one
// legal color), or Technique is TechniqueNone and the vertex remains blocked.
type Repair struct {
	Technique Technique
	Coloring  *Coloring
	Recolored int // number of vertices whose color changed
}

// Blocked returns true if no repair was found.
func (R Repair) Blocked() bool {
	return R.Technique == TechniqueNone
}

// Repairer tries local tweaks to an established coloring that make room for a blocked vertex.
//
// This stands in for backtracking, which takes eons on graphs with thousands of vertices.
type Repairer struct {
	G       *Graph
	Palette go4c.ColorSet
	Locked  []bool // if non-nil, Locked[vi] set means vi may not be recolored

	walker *chainWalker
}

func NewRepairer(G *Graph, palette go4c.ColorSet, locked []bool) *Repairer {
	return &Repairer{
		G:       G,
		Palette: palette,
		Locked:  locked,
		walker:  newChainWalker(G),
	}
}

func (rp *Repairer) isLocked(vi int32) bool {
	return rp.Locked != nil && rp.Locked[vi]
}

// Sidetrack tries LocalShift and then ChainShift, returning the first repair found.
func (rp *Repairer) Sidetrack(vi int32, C *Coloring) Repair {
	R := rp.LocalShift(vi, C)
	if R.Blocked() {
		R = rp.ChainShift(vi, C)
	}
	klog.V(2).Infof("vertex %d: %v", rp.G.ID(vi), R.Technique)
	return R
}

// LocalShift looks for a colored neighbor of vi that has another legal color available and whose move to that
// color leaves vi with a legal color.
//
// Neighbors are tried in ascending id order, then their alternate colors in ascending order.
func (rp *Repairer) LocalShift(vi int32, C *Coloring) Repair {
	G := rp.G
	for _, ni := range G.adj[vi] {
		cn := C.ColorOf(ni)
		if cn == go4c.Uncolored || rp.isLocked(ni) {
			continue
		}

		// Only a neighbor with spare legal capacity beyond its own color can move.
		legal := LegalColors(G, ni, C, rp.Palette)
		if !legal.Has(cn) || legal.Len() < 2 {
			continue
		}

		for _, c := range legal.Remove(cn).Colors() {
			H := NewHypothesis(C).Recolor(ni, c)
			if LegalColors(G, vi, H, rp.Palette) != 0 {
				return Repair{
					Technique: TechniqueLocalShift,
					Coloring:  H.Commit(),
					Recolored: 1,
				}
			}
		}
	}
	return Repair{}
}

type chainCandidate struct {
	chain  []int32
	c1, c2 go4c.Color
}

// ChainShift looks for a Kempe chain whose color swap leaves vi with a legal color.
//
// For each colored neighbor n of vi (ascending id) and each other color c2 (ascending), the chain grown from n over
// n's color and c2 is a candidate if n is the only neighbor of vi it contains.  Candidates are tried smallest first.
func (rp *Repairer) ChainShift(vi int32, C *Coloring) Repair {
	G := rp.G
	var candidates []chainCandidate

	for _, ni := range G.adj[vi] {
		c1 := C.ColorOf(ni)
		if c1 == go4c.Uncolored {
			continue
		}
		for _, c2 := range rp.Palette.Remove(c1).Colors() {
			chain := rp.walker.walk(ni, c1, c2, C)

			touching := 0
			for _, nj := range G.adj[vi] {
				if rp.walker.inChain(nj) {
					touching++
				}
			}
			if touching != 1 {
				continue
			}

			if rp.Locked != nil {
				locked := false
				for _, xi := range chain {
					if rp.Locked[xi] {
						locked = true
						break
					}
				}
				if locked {
					continue
				}
			}

			candidates = append(candidates, chainCandidate{
				chain: append([]int32(nil), chain...),
				c1:    c1,
				c2:    c2,
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i].chain) < len(candidates[j].chain)
	})

	for _, cand := range candidates {
		H := swapChain(C, cand.chain, cand.c1, cand.c2)
		if LegalColors(G, vi, H, rp.Palette) != 0 {
			return Repair{
				Technique: TechniqueChainShift,
				Coloring:  H.Commit(),
				Recolored: len(cand.chain),
			}
		}
	}
	return Repair{}
}
