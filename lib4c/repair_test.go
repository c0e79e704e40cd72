package lib4c

import (
	"testing"

	"github.com/fiveham/map-tools/go4c"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalShift(t *testing.T) {
	// 0 is surrounded by all three colors but neighbor 1 has room to move
	G := MustParseGraph("0-1,0-2,0-3")
	palette := go4c.FullPalette(3)
	C := colorAll(NewColoring(G), 0, 1, 2, 3)
	require.Zero(t, LegalColors(G, 0, C, palette))

	rp := NewRepairer(G, palette, nil)
	R := rp.LocalShift(0, C)
	require.False(t, R.Blocked())
	assert.Equal(t, TechniqueLocalShift, R.Technique)
	assert.Equal(t, 1, R.Recolored)
	assert.Equal(t, go4c.Color(2), R.Coloring.ColorOf(1))
	assert.Equal(t, []go4c.Color{1}, LegalColors(G, 0, R.Coloring, palette).Colors())

	// The coloring handed in is left as it was
	assert.Equal(t, go4c.Color(1), C.ColorOf(1))

	// With 1 locked, 2 is the next neighbor able to move
	locked := make([]bool, G.NumVerts())
	locked[1] = true
	R = NewRepairer(G, palette, locked).LocalShift(0, C)
	require.False(t, R.Blocked())
	assert.Equal(t, go4c.Color(1), R.Coloring.ColorOf(1))
	assert.Equal(t, go4c.Color(1), R.Coloring.ColorOf(2))
}

func TestChainShift(t *testing.T) {
	// Neither neighbor of 0 can move on its own, but the chains 1-3 and 2-4 can swap.
	G := MustParseGraph("0-1-3,0-2-4")
	palette := go4c.FullPalette(2)
	C := colorAll(NewColoring(G), 0, 1, 2, 2, 1)

	rp := NewRepairer(G, palette, nil)
	require.True(t, rp.LocalShift(0, C).Blocked())

	R := rp.Sidetrack(0, C)
	require.False(t, R.Blocked())
	assert.Equal(t, TechniqueChainShift, R.Technique)
	assert.Equal(t, 2, R.Recolored)
	assert.Equal(t, go4c.Color(2), R.Coloring.ColorOf(1))
	assert.Equal(t, go4c.Color(1), R.Coloring.ColorOf(3))
	assert.Equal(t, go4c.Color(2), R.Coloring.ColorOf(2))
	assert.Equal(t, []go4c.Color{1}, LegalColors(G, 0, R.Coloring, palette).Colors())
	assert.Empty(t, IllegalEdges(G, R.Coloring))

	// Locking 3 rules out the first chain
	locked := make([]bool, G.NumVerts())
	locked[3] = true
	R = NewRepairer(G, palette, locked).ChainShift(0, C)
	require.False(t, R.Blocked())
	assert.Equal(t, go4c.Color(1), R.Coloring.ColorOf(1))
	assert.Equal(t, go4c.Color(1), R.Coloring.ColorOf(2))
	assert.Equal(t, go4c.Color(2), R.Coloring.ColorOf(4))
}

func TestChainShiftFourColors(t *testing.T) {
	// 0 sits inside the ring 1-2-3-4 colored 1,2,3,4, and each ring vertex has a pendant holding its only spare color.
	G := MustParseGraph("0-1,0-2,0-3,0-4,1-2-3-4-1,1-5,2-6,3-7,4-8")
	palette := go4c.FullPalette(4)
	C := colorAll(NewColoring(G), 0, 1, 2, 3, 4, 3, 4, 1, 2)
	require.Zero(t, LegalColors(G, 0, C, palette))

	rp := NewRepairer(G, palette, nil)
	require.True(t, rp.LocalShift(0, C).Blocked())

	// Chains over a neighbor's ring colors reach a second neighbor of 0, so they can't free anything
	assert.ElementsMatch(t, []int32{1, 2}, KempeChain(G, 1, 1, 2, C))
	assert.ElementsMatch(t, []int32{1, 4}, KempeChain(G, 1, 1, 4, C))
	assert.ElementsMatch(t, []int32{1, 5}, KempeChain(G, 1, 1, 3, C))

	R := rp.ChainShift(0, C)
	require.False(t, R.Blocked())
	assert.Equal(t, TechniqueChainShift, R.Technique)
	assert.Equal(t, 2, R.Recolored)
	assert.Equal(t, go4c.Color(3), R.Coloring.ColorOf(1))
	assert.Equal(t, go4c.Color(1), R.Coloring.ColorOf(5))
	assert.Equal(t, []go4c.Color{1}, LegalColors(G, 0, R.Coloring, palette).Colors())
	assert.Empty(t, IllegalEdges(G, R.Coloring))
	assert.Equal(t, go4c.Color(1), C.ColorOf(1))

	// With 5 locked, the 2/4 chain through 6 is next
	locked := make([]bool, G.NumVerts())
	locked[5] = true
	R = NewRepairer(G, palette, locked).ChainShift(0, C)
	require.False(t, R.Blocked())
	assert.Equal(t, go4c.Color(1), R.Coloring.ColorOf(1))
	assert.Equal(t, go4c.Color(4), R.Coloring.ColorOf(2))
	assert.Equal(t, go4c.Color(2), R.Coloring.ColorOf(6))
	assert.Equal(t, []go4c.Color{2}, LegalColors(G, 0, R.Coloring, palette).Colors())
	assert.Empty(t, IllegalEdges(G, R.Coloring))
}

func TestChainShiftPrefersShortChains(t *testing.T) {
	// The chain through 1 is long (1-3-5-6) while the chain through 2 is short (2-4).
	G := MustParseGraph("0-1-3-5-6,0-2-4")
	palette := go4c.FullPalette(2)
	C := colorAll(NewColoring(G), 0, 1, 2, 2, 1, 1, 2)

	R := NewRepairer(G, palette, nil).ChainShift(0, C)
	require.False(t, R.Blocked())
	assert.Equal(t, 2, R.Recolored)
	assert.Equal(t, go4c.Color(1), R.Coloring.ColorOf(1))
	assert.Equal(t, go4c.Color(1), R.Coloring.ColorOf(2))
}

func TestRepairBlocked(t *testing.T) {
	// Both neighbors of 0 are in the same chain, so no swap can free a color
	G := MustParseGraph("0-1-2-0")
	palette := go4c.FullPalette(2)
	C := colorAll(NewColoring(G), 0, 1, 2)

	R := NewRepairer(G, palette, nil).Sidetrack(0, C)
	assert.True(t, R.Blocked())
	assert.Nil(t, R.Coloring)
	assert.Equal(t, "blocked", R.Technique.String())
}
