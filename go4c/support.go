package go4c

import "math/bits"

// FullPalette returns the ColorSet {1..paletteSize}.
func FullPalette(paletteSize int) ColorSet {
	if paletteSize <= 0 {
		return 0
	}
	if paletteSize > MaxPaletteSize {
		paletteSize = MaxPaletteSize
	}
	return ColorSet(((uint32(1) << paletteSize) - 1) << 1)
}

func (set ColorSet) Has(c Color) bool {
	return c != Uncolored && set&(1<<c) != 0
}

func (set ColorSet) Add(c Color) ColorSet {
	if c == Uncolored {
		return set
	}
	return set | (1 << c)
}

func (set ColorSet) Remove(c Color) ColorSet {
	return set &^ (1 << c)
}

func (set ColorSet) Intersect(other ColorSet) ColorSet {
	return set & other
}

// Len returns the number of colors in this set.
func (set ColorSet) Len() int {
	return bits.OnesCount32(uint32(set &^ 1))
}

// Min returns the smallest color in this set or Uncolored if the set is empty.
func (set ColorSet) Min() Color {
	set &^= 1
	if set == 0 {
		return Uncolored
	}
	return Color(bits.TrailingZeros32(uint32(set)))
}

// Colors returns the members of this set in ascending order.
func (set ColorSet) Colors() []Color {
	set &^= 1
	out := make([]Color, 0, set.Len())
	for set != 0 {
		c := Color(bits.TrailingZeros32(uint32(set)))
		out = append(out, c)
		set &^= 1 << c
	}
	return out
}
