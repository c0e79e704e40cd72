package lib4c

import (
	"github.com/alecthomas/participle/v2"
	"github.com/fiveham/map-tools/go4c"
	"github.com/pkg/errors"
)

// GraphExpr is a comma separated list of vertex runs, e.g. "0-1-2-3-4-0, 2-5, 7".
//
// Each run "a-b-c" adds the edges a-b and b-c; a run of a single vertex declares an isolated vertex.
// Vertex ids are non-negative integers.  Go style comments are skipped, so a graph file can be annotated.
type GraphExpr struct {
	Runs []*VtxRun `(@@ ("," @@)*)? ","?`
}

type VtxRun struct {
	Start int64   `@Int`
	Next  []int64 `("-" @Int)*`
}

var parseGraphExpr = participle.MustBuild[GraphExpr]()

// ParseGraphDef reads a graph expression into a GraphDef.
func ParseGraphDef(graphExpr string) (go4c.GraphDef, error) {
	var def go4c.GraphDef

	Xexpr, err := parseGraphExpr.ParseString("", graphExpr)
	if err != nil {
		return def, errors.Wrap(go4c.ErrBadGraphExpr, err.Error())
	}

	seen := make(map[go4c.VtxID]struct{})
	addVtx := func(v go4c.VtxID) {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			def.Vertices = append(def.Vertices, v)
		}
	}

	for _, run := range Xexpr.Runs {
		onVtx := go4c.VtxID(run.Start)
		addVtx(onVtx)
		for _, next := range run.Next {
			nextVtx := go4c.VtxID(next)
			addVtx(nextVtx)
			def.Edges = append(def.Edges, go4c.Edge{A: onVtx, B: nextVtx})
			onVtx = nextVtx
		}
	}

	return def, nil
}

// ParseGraph reads a graph expression and builds the Graph it describes.
func ParseGraph(graphExpr string) (*Graph, error) {
	def, err := ParseGraphDef(graphExpr)
	if err != nil {
		return nil, err
	}
	return NewGraph(def)
}

// MustParseGraph is ParseGraph for fixtures known to be well formed.
func MustParseGraph(graphExpr string) *Graph {
	G, err := ParseGraph(graphExpr)
	if err != nil {
		panic(err)
	}
	return G
}
