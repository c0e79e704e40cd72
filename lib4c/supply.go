package lib4c

import (
	"github.com/fiveham/map-tools/go4c"
)

// Supply holds a number of instances of each color; Supply[c] is the stock of color c ([0] is unused).
//
// Picking the best-stocked legal color as vertices are colored keeps color classes close in size.
type Supply []int32

// NewSupply stocks each of paletteSize colors with ⌈numVerts/paletteSize⌉ instances (at least 1).
func NewSupply(paletteSize, numVerts int) Supply {
	size := 1
	if paletteSize > 0 {
		if n := (numVerts + paletteSize - 1) / paletteSize; n > size {
			size = n
		}
	}
	S := make(Supply, paletteSize+1)
	for c := 1; c <= paletteSize; c++ {
		S[c] = int32(size)
	}
	return S
}

// Most returns the subset of colors whose stock is the greatest.
func (S Supply) Most(colors go4c.ColorSet) go4c.ColorSet {
	var most go4c.ColorSet
	target := int32(-1 << 31)
	for _, c := range colors.Colors() {
		if int(c) >= len(S) {
			continue
		}
		switch stock := S[c]; {
		case stock > target:
			target = stock
			most = go4c.ColorSet(0).Add(c)
		case stock == target:
			most = most.Add(c)
		}
	}
	return most
}

// Take removes one instance of c and returns c.
//
// If that leaves any color with a stock below 1, every color is restocked by one until none are below 1,
// so no color is ever starved while the relative scarcity between colors is kept.
func (S Supply) Take(c go4c.Color) go4c.Color {
	if c == go4c.Uncolored || int(c) >= len(S) {
		return c
	}
	S[c]--
	for S.anyEmpty() {
		for ci := 1; ci < len(S); ci++ {
			S[ci]++
		}
	}
	return c
}

func (S Supply) anyEmpty() bool {
	for _, stock := range S[1:] {
		if stock < 1 {
			return true
		}
	}
	return false
}
