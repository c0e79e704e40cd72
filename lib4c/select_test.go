package lib4c

import (
	"testing"

	"github.com/fiveham/map-tools/go4c"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareRanks(t *testing.T) {
	ranks := []vtxRank{
		{numLegal: 1, cliques: 0, uncolored: 5, vi: 9},
		{numLegal: 2, cliques: 3, uncolored: 5, vi: 8},
		{numLegal: 2, cliques: 1, uncolored: 0, vi: 7},
		{numLegal: 2, cliques: 1, uncolored: 2, vi: 1},
		{numLegal: 2, cliques: 1, uncolored: 2, vi: 6},
	}
	for i := 0; i < len(ranks)-1; i++ {
		assert.Negative(t, compareRanks(ranks[i], ranks[i+1]), "rank %d", i)
		assert.Positive(t, compareRanks(ranks[i+1], ranks[i]), "rank %d", i)
	}
	assert.Zero(t, compareRanks(ranks[2], ranks[2]))
}

func TestSelectorOrder(t *testing.T) {
	G := MustParseGraph("0-1,0-2,1-2,2-3")
	palette := go4c.FullPalette(3)
	C := colorAll(NewColoring(G), 1)

	sel := newSelector(G, palette, CliqueCounts(G))
	sel.reset(C)
	require.Equal(t, 3, sel.len())

	// 1 and 2 both have two legal colors left, but 1 has fewer uncolored neighbors
	vi, ok := sel.next(-1, C)
	require.True(t, ok)
	assert.Equal(t, int32(1), vi)

	// A pinned vertex goes first no matter its rank
	vi, _ = sel.next(3, C)
	assert.Equal(t, int32(3), vi)

	C.Set(1, 2)
	sel.colored(1, C)
	assert.Equal(t, 2, sel.len())
	vi, _ = sel.next(-1, C)
	assert.Equal(t, int32(2), vi)

	// Once the pinned vertex is colored it no longer pre-empts
	C.Set(3, 1)
	sel.colored(3, C)
	vi, _ = sel.next(3, C)
	assert.Equal(t, int32(2), vi)

	C.Set(2, 3)
	sel.colored(2, C)
	_, ok = sel.next(-1, C)
	assert.False(t, ok)
}

func TestSelectorPrefersCliques(t *testing.T) {
	// 4 has the fewest uncolored neighbors, but 0..3 form a K4
	G := MustParseGraph("0-1-2-3-0-2,1-3,4-5")
	palette := go4c.FullPalette(4)
	C := NewColoring(G)

	sel := newSelector(G, palette, CliqueCounts(G))
	sel.reset(C)
	vi, ok := sel.next(-1, C)
	require.True(t, ok)
	assert.Equal(t, int32(0), vi)
}
