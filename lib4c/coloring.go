package lib4c

import (
	"github.com/fiveham/map-tools/go4c"
)

// ColorReader reports the color currently held by the vertex at a given index.
type ColorReader interface {
	ColorOf(vi int32) go4c.Color
}

// Coloring is the accepted color assignment for a Graph, indexed like the Graph.
type Coloring struct {
	colors     []go4c.Color
	numColored int
}

// NewColoring returns an all-uncolored Coloring for G.
func NewColoring(G *Graph) *Coloring {
	return &Coloring{
		colors: make([]go4c.Color, G.NumVerts()),
	}
}

func (C *Coloring) ColorOf(vi int32) go4c.Color {
	return C.colors[vi]
}

// Set assigns color c (possibly Uncolored) to the vertex at index vi.
func (C *Coloring) Set(vi int32, c go4c.Color) {
	prev := C.colors[vi]
	if prev == go4c.Uncolored && c != go4c.Uncolored {
		C.numColored++
	} else if prev != go4c.Uncolored && c == go4c.Uncolored {
		C.numColored--
	}
	C.colors[vi] = c
}

func (C *Coloring) NumColored() int {
	return C.numColored
}

func (C *Coloring) Clone() *Coloring {
	return &Coloring{
		colors:     append([]go4c.Color(nil), C.colors...),
		numColored: C.numColored,
	}
}

// Histogram returns the usage count of each color; [0] counts uncolored vertices.
func (C *Coloring) Histogram(paletteSize int) []int {
	hist := make([]int, paletteSize+1)
	for _, c := range C.colors {
		if int(c) < len(hist) {
			hist[c]++
		}
	}
	return hist
}

// Export returns the colored vertices of C keyed by VtxID.
func (C *Coloring) Export(G *Graph) go4c.Coloring {
	out := make(go4c.Coloring, C.numColored)
	for vi, c := range C.colors {
		if c != go4c.Uncolored {
			out[G.ids[vi]] = c
		}
	}
	return out
}

// Hypothesis is a Coloring overlaid with proposed reassignments.
//
// The base Coloring is never written to; Commit produces a new Coloring with the overlay applied.
type Hypothesis struct {
	base    *Coloring
	recolor map[int32]go4c.Color
}

func NewHypothesis(base *Coloring) *Hypothesis {
	return &Hypothesis{
		base:    base,
		recolor: make(map[int32]go4c.Color),
	}
}

// Recolor proposes that vertex vi hold color c.
func (H *Hypothesis) Recolor(vi int32, c go4c.Color) *Hypothesis {
	H.recolor[vi] = c
	return H
}

func (H *Hypothesis) ColorOf(vi int32) go4c.Color {
	if c, ok := H.recolor[vi]; ok {
		return c
	}
	return H.base.colors[vi]
}

// NumRecolored returns the number of proposed reassignments.
func (H *Hypothesis) NumRecolored() int {
	return len(H.recolor)
}

// Commit returns a copy of the base Coloring with this hypothesis applied.
func (H *Hypothesis) Commit() *Coloring {
	C := H.base.Clone()
	for vi, c := range H.recolor {
		C.Set(vi, c)
	}
	return C
}

// LegalColors returns the colors of palette not held by any colored neighbor of the vertex at index vi.
func LegalColors(G *Graph, vi int32, C ColorReader, palette go4c.ColorSet) go4c.ColorSet {
	legal := palette
	for _, ni := range G.adj[vi] {
		if c := C.ColorOf(ni); c != go4c.Uncolored {
			legal = legal.Remove(c)
		}
	}
	return legal
}

// IllegalEdges returns the edges whose endpoints hold the same color.
func IllegalEdges(G *Graph, C ColorReader) []go4c.Edge {
	var bad []go4c.Edge
	for _, e := range G.edges {
		a, b := G.index[e.A], G.index[e.B]
		if ca := C.ColorOf(a); ca != go4c.Uncolored && ca == C.ColorOf(b) {
			bad = append(bad, e)
		}
	}
	return bad
}
