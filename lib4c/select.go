package lib4c

import (
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/fiveham/map-tools/go4c"
)

// vtxRank orders uncolored vertices for selection; the least rank is colored next.
//
// Fewer legal colors ranks ahead of more legal colors.
// Being a member of more K4 subgraphs ranks ahead of fewer.
// Having fewer uncolored neighbors ranks ahead of having more.
// A lower vertex id ranks ahead of a higher one, so no two ranks are ever equal.
type vtxRank struct {
	numLegal  int32
	cliques   int32
	uncolored int32
	vi        int32
}

func compareRanks(A, B interface{}) int {
	a := A.(vtxRank)
	b := B.(vtxRank)
	switch {
	case a.numLegal != b.numLegal:
		return int(a.numLegal - b.numLegal)
	case a.cliques != b.cliques:
		return int(b.cliques - a.cliques)
	case a.uncolored != b.uncolored:
		return int(a.uncolored - b.uncolored)
	}
	return int(a.vi - b.vi)
}

// selector keeps every uncolored vertex in a tree ordered by vtxRank.
//
// Coloring a vertex only changes the ranks of its uncolored neighbors, so those are the only entries re-keyed.
type selector struct {
	G       *Graph
	palette go4c.ColorSet
	cliques []int32
	ranks   []vtxRank
	queued  []bool
	queue   *redblacktree.Tree
}

func newSelector(G *Graph, palette go4c.ColorSet, cliques []int32) *selector {
	return &selector{
		G:       G,
		palette: palette,
		cliques: cliques,
		ranks:   make([]vtxRank, G.NumVerts()),
		queued:  make([]bool, G.NumVerts()),
		queue:   redblacktree.NewWith(compareRanks),
	}
}

func (s *selector) rankOf(vi int32, C ColorReader) vtxRank {
	rank := vtxRank{
		numLegal: int32(LegalColors(s.G, vi, C, s.palette).Len()),
		cliques:  s.cliques[vi],
		vi:       vi,
	}
	for _, ni := range s.G.adj[vi] {
		if C.ColorOf(ni) == go4c.Uncolored {
			rank.uncolored++
		}
	}
	return rank
}

// reset re-ranks every vertex against C, e.g. after a repair replaced the coloring wholesale.
func (s *selector) reset(C ColorReader) {
	s.queue.Clear()
	for vi := range s.ranks {
		s.queued[vi] = false
		if C.ColorOf(int32(vi)) == go4c.Uncolored {
			s.enqueue(int32(vi), C)
		}
	}
}

func (s *selector) enqueue(vi int32, C ColorReader) {
	rank := s.rankOf(vi, C)
	s.ranks[vi] = rank
	s.queued[vi] = true
	s.queue.Put(rank, nil)
}

func (s *selector) dequeue(vi int32) {
	if s.queued[vi] {
		s.queue.Remove(s.ranks[vi])
		s.queued[vi] = false
	}
}

// colored records that vi now holds a color in C.
func (s *selector) colored(vi int32, C ColorReader) {
	s.dequeue(vi)
	for _, ni := range s.G.adj[vi] {
		if s.queued[ni] {
			s.dequeue(ni)
			s.enqueue(ni, C)
		}
	}
}

// next returns the next vertex to color.
//
// If pinned is a vertex that is still uncolored, it's returned regardless of rank.
func (s *selector) next(pinned int32, C ColorReader) (int32, bool) {
	if pinned >= 0 && C.ColorOf(pinned) == go4c.Uncolored {
		return pinned, true
	}
	if s.queue.Empty() {
		return -1, false
	}
	return s.queue.Left().Key.(vtxRank).vi, true
}

// len returns the number of uncolored vertices left.
func (s *selector) len() int {
	return s.queue.Size()
}
