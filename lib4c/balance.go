package lib4c

import (
	"github.com/fiveham/map-tools/go4c"
)

// Balance evens out color usage without breaking legality.
//
// Each vertex (ascending id) moves to whichever of its legal colors is least used at that moment.  Afterwards, if the
// most used color leads the least used by more than one, a single vertex holding the most used color is moved to the
// least used color if that's legal for it.  Vertices with locked[vi] set are left as they are.
//
// Returns true if the corrective move was made.
func Balance(G *Graph, C *Coloring, paletteSize int, locked []bool) bool {
	palette := go4c.FullPalette(paletteSize)
	hist := C.Histogram(paletteSize)

	for vi := int32(0); vi < int32(G.NumVerts()); vi++ {
		if locked != nil && locked[vi] {
			continue
		}
		legal := LegalColors(G, vi, C, palette)
		if legal == 0 {
			continue
		}
		cur := C.ColorOf(vi)
		if best := leastUsed(hist, legal); best != cur {
			hist[cur]--
			hist[best]++
			C.Set(vi, best)
		}
	}

	hi := mostUsed(hist, palette)
	lo := leastUsed(hist, palette)
	if hist[hi]-hist[lo] <= 1 {
		return false
	}
	for vi := int32(0); vi < int32(G.NumVerts()); vi++ {
		if C.ColorOf(vi) != hi || (locked != nil && locked[vi]) {
			continue
		}
		if LegalColors(G, vi, C, palette).Has(lo) {
			C.Set(vi, lo)
			return true
		}
	}
	return false
}

// leastUsed returns the member of colors with the lowest count (ties go to the lowest color).
func leastUsed(hist []int, colors go4c.ColorSet) go4c.Color {
	best := go4c.Uncolored
	for _, c := range colors.Colors() {
		if best == go4c.Uncolored || hist[c] < hist[best] {
			best = c
		}
	}
	return best
}

// mostUsed returns the member of colors with the highest count (ties go to the lowest color).
func mostUsed(hist []int, colors go4c.ColorSet) go4c.Color {
	best := go4c.Uncolored
	for _, c := range colors.Colors() {
		if best == go4c.Uncolored || hist[c] > hist[best] {
			best = c
		}
	}
	return best
}
