package lib4c

import (
	"github.com/fiveham/map-tools/go4c"
)

// chainWalker grows two-color subgraphs, reusing its buffers across walks.
type chainWalker struct {
	G     *Graph
	mark  []uint32 // mark[vi] == stamp iff vi is in the current chain
	stamp uint32
	queue []int32
}

func newChainWalker(G *Graph) *chainWalker {
	return &chainWalker{
		G:    G,
		mark: make([]uint32, G.NumVerts()),
	}
}

// walk returns the connected subgraph reachable from root through vertices colored c1 or c2 (root included).
//
// The returned slice is in breadth-first order and is only valid until the next walk.
// Until then, inChain reports membership in O(1).
func (cw *chainWalker) walk(root int32, c1, c2 go4c.Color, C ColorReader) []int32 {
	cw.stamp++
	if cw.stamp == 0 {
		for i := range cw.mark {
			cw.mark[i] = 0
		}
		cw.stamp = 1
	}

	chain := append(cw.queue[:0], root)
	cw.mark[root] = cw.stamp

	for i := 0; i < len(chain); i++ {
		for _, ni := range cw.G.adj[chain[i]] {
			if cw.mark[ni] == cw.stamp {
				continue
			}
			if c := C.ColorOf(ni); c == c1 || c == c2 {
				cw.mark[ni] = cw.stamp
				chain = append(chain, ni)
			}
		}
	}

	cw.queue = chain
	return chain
}

func (cw *chainWalker) inChain(vi int32) bool {
	return cw.mark[vi] == cw.stamp
}

// KempeChain returns the vertices (by index) of the Kempe chain containing root for the colors c1 and c2:
// the maximal connected subgraph grown from root through vertices colored c1 or c2.
//
// Edges leaving a Kempe chain never reach a vertex colored c1 or c2, so swapping the two colors throughout the
// chain keeps a legal coloring legal.
func KempeChain(G *Graph, root int32, c1, c2 go4c.Color, C ColorReader) []int32 {
	cw := newChainWalker(G)
	return append([]int32(nil), cw.walk(root, c1, c2, C)...)
}

// swapChain proposes swapping c1 and c2 across chain.
func swapChain(base *Coloring, chain []int32, c1, c2 go4c.Color) *Hypothesis {
	H := NewHypothesis(base)
	for _, vi := range chain {
		if base.ColorOf(vi) == c1 {
			H.Recolor(vi, c2)
		} else {
			H.Recolor(vi, c1)
		}
	}
	return H
}
