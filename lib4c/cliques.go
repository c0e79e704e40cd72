package lib4c

// CliqueCounts returns, for each vertex index, the number of complete four-vertex subgraphs (K4) it belongs to.
//
// A vertex inside many K4s has little room to maneuver, so selection prefers to color it early.
func CliqueCounts(G *Graph) []int32 {
	counts := make([]int32, G.NumVerts())

	for vi, nbrs := range G.adj {
		v := int32(vi)

		// Only look at neighbors above v so each K4 is found once, from its lowest member.
		var hi []int32
		for _, ni := range nbrs {
			if ni > v {
				hi = append(hi, ni)
			}
		}
		if len(hi) < 3 {
			continue
		}
		for i := 0; i < len(hi)-2; i++ {
			for j := i + 1; j < len(hi)-1; j++ {
				if !G.adjacent(hi[i], hi[j]) {
					continue
				}
				for k := j + 1; k < len(hi); k++ {
					if G.adjacent(hi[i], hi[k]) && G.adjacent(hi[j], hi[k]) {
						counts[v]++
						counts[hi[i]]++
						counts[hi[j]]++
						counts[hi[k]]++
					}
				}
			}
		}
	}
	return counts
}

// CliqueBound returns the size of the largest clique in G, found by growing every k-clique into (k+1)-cliques.
//
// The size of any clique is a lower bound on the number of colors G needs.  If limit > 0, growth stops once a clique
// of size limit is found, which is all a caller needs to know that a palette of limit-1 colors can't work.
func CliqueBound(G *Graph, limit int) int {
	if G.NumVerts() == 0 {
		return 0
	}
	if G.NumEdges() == 0 {
		return 1
	}

	// Each clique is kept as ascending vertex indexes so it's only ever grown by larger indexes (no dupes).
	cliques := make([][]int32, 0, G.NumEdges())
	for vi, nbrs := range G.adj {
		for _, ni := range nbrs {
			if ni > int32(vi) {
				cliques = append(cliques, []int32{int32(vi), ni})
			}
		}
	}

	best := 2
	for limit <= 0 || best < limit {
		var grown [][]int32
		for _, K := range cliques {
			last := K[len(K)-1]
			for _, ni := range G.adj[K[0]] {
				if ni <= last {
					continue
				}
				joins := true
				for _, ki := range K[1:] {
					if !G.adjacent(ki, ni) {
						joins = false
						break
					}
				}
				if joins {
					Kn := make([]int32, len(K)+1)
					copy(Kn, K)
					Kn[len(K)] = ni
					grown = append(grown, Kn)
				}
			}
		}
		if len(grown) == 0 {
			break
		}
		best++
		cliques = grown
	}
	return best
}
