package lib4c

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fiveham/map-tools/go4c"
	"github.com/pkg/errors"
)

// Graph is an immutable set of vertices and undirected edges plus the adjacency index derived from them.
//
// Vertices are addressed internally by a dense index (int32) assigned in ascending VtxID order,
// so index order and id order agree and every index-ordered walk is deterministic.
type Graph struct {
	ids   []go4c.VtxID         // index -> VtxID, ascending
	index map[go4c.VtxID]int32 // VtxID -> index
	adj   [][]int32            // index -> neighbor indexes, ascending
	edges []go4c.Edge          // canonic edges, sorted and free of dupes
}

// NewGraph validates def and builds its adjacency index.
//
// Duplicate vertices and duplicate edges are absorbed.  An edge that is a self-loop or that references
// a vertex not listed in def.Vertices is rejected.
func NewGraph(def go4c.GraphDef) (*Graph, error) {
	G := &Graph{
		index: make(map[go4c.VtxID]int32, len(def.Vertices)),
	}

	ids := append([]go4c.VtxID(nil), def.Vertices...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if N := len(G.ids); N > 0 && G.ids[N-1] == id {
			continue
		}
		G.index[id] = int32(len(G.ids))
		G.ids = append(G.ids, id)
	}

	edges := make([]go4c.Edge, 0, len(def.Edges))
	for _, e := range def.Edges {
		if e.A == e.B {
			return nil, errors.Wrapf(go4c.ErrSelfLoop, "edge %v", e)
		}
		for _, v := range [2]go4c.VtxID{e.A, e.B} {
			if _, ok := G.index[v]; !ok {
				return nil, errors.Wrapf(go4c.ErrUnknownVtx, "edge %v: vertex %d", e, v)
			}
		}
		edges = append(edges, go4c.NewEdge(e.A, e.B))
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})

	G.adj = make([][]int32, len(G.ids))
	for i, e := range edges {
		if i > 0 && edges[i-1] == e {
			continue
		}
		G.edges = append(G.edges, e)
		a, b := G.index[e.A], G.index[e.B]
		G.adj[a] = append(G.adj[a], b)
		G.adj[b] = append(G.adj[b], a)
	}
	for _, nbrs := range G.adj {
		sort.Slice(nbrs, func(i, j int) bool { return nbrs[i] < nbrs[j] })
	}

	return G, nil
}

func (G *Graph) NumVerts() int {
	return len(G.ids)
}

func (G *Graph) NumEdges() int {
	return len(G.edges)
}

// Vertices returns the vertex ids in ascending order.  The caller must not modify the returned slice.
func (G *Graph) Vertices() []go4c.VtxID {
	return G.ids
}

// Edges returns the canonic edges in ascending order.  The caller must not modify the returned slice.
func (G *Graph) Edges() []go4c.Edge {
	return G.edges
}

// ID returns the VtxID of the vertex at index vi.
func (G *Graph) ID(vi int32) go4c.VtxID {
	return G.ids[vi]
}

// Index returns the dense index of the given vertex.
func (G *Graph) Index(v go4c.VtxID) (int32, bool) {
	vi, ok := G.index[v]
	return vi, ok
}

// Neighbors returns the neighbor ids of v in ascending order, or nil if v is not in this graph.
func (G *Graph) Neighbors(v go4c.VtxID) []go4c.VtxID {
	vi, ok := G.index[v]
	if !ok {
		return nil
	}
	out := make([]go4c.VtxID, len(G.adj[vi]))
	for i, ni := range G.adj[vi] {
		out[i] = G.ids[ni]
	}
	return out
}

// Degree returns the number of neighbors of the vertex at index vi.
func (G *Graph) Degree(vi int32) int {
	return len(G.adj[vi])
}

// Adjacent returns true if an edge connects a and b.
func (G *Graph) Adjacent(a, b go4c.VtxID) bool {
	ai, okA := G.index[a]
	bi, okB := G.index[b]
	if !okA || !okB {
		return false
	}
	return G.adjacent(ai, bi)
}

func (G *Graph) adjacent(ai, bi int32) bool {
	nbrs := G.adj[ai]
	if len(G.adj[bi]) < len(nbrs) {
		nbrs, bi = G.adj[bi], ai
	}
	i := sort.Search(len(nbrs), func(i int) bool { return nbrs[i] >= bi })
	return i < len(nbrs) && nbrs[i] == bi
}

// Def exports this graph back into its input form.
func (G *Graph) Def() go4c.GraphDef {
	return go4c.GraphDef{
		Vertices: append([]go4c.VtxID(nil), G.ids...),
		Edges:    append([]go4c.Edge(nil), G.edges...),
	}
}

// WriteAsString writes this graph as a graph expression that ParseGraph reads back.
func (G *Graph) WriteAsString(out io.Writer) {
	b := strings.Builder{}
	b.Grow(8 * (len(G.edges) + 1))

	runs := 0
	emit := func(s string) {
		if runs > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s)
		runs++
	}
	for _, e := range G.edges {
		emit(fmt.Sprintf("%d-%d", e.A, e.B))
	}
	for vi, nbrs := range G.adj {
		if len(nbrs) == 0 {
			emit(fmt.Sprint(G.ids[vi]))
		}
	}
	io.WriteString(out, b.String())
}

func (G *Graph) String() string {
	b := strings.Builder{}
	G.WriteAsString(&b)
	return b.String()
}
