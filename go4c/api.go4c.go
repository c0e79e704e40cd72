package go4c

import (
	"fmt"
	"sort"
	"strings"
)

const (

	// DefaultPaletteSize is the four-color design point for planar maps.
	DefaultPaletteSize = 4

	// MaxPaletteSize is the largest palette a ColorSet can represent (one bit per color, bit 0 unused).
	MaxPaletteSize = 31

	// MinPaletteSize is the smallest palette for which coloring is meaningful.
	MinPaletteSize = 2
)

// VtxID identifies a region (vertex) of a map.  Ids are totally ordered and that order is used for every tie-break.
type VtxID int64

// Color is 1..PaletteSize; 0 denotes uncolored.
type Color uint8

const Uncolored Color = 0

// ColorSet is a bitset of colors where bit c is set if color c is a member.
type ColorSet uint32

// Edge is an unordered pair of distinct vertices, stored with A < B.
type Edge struct {
	A, B VtxID
}

// NewEdge returns the canonic form of the edge connecting a and b.
func NewEdge(a, b VtxID) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Other returns the endpoint of this edge that isn't v.
func (e Edge) Other(v VtxID) VtxID {
	if e.A == v {
		return e.B
	}
	return e.A
}

func (e Edge) String() string {
	return fmt.Sprintf("%d-%d", e.A, e.B)
}

// GraphDef is the input contract handed over by whatever built the region adjacency (geometry, KML, etc).
type GraphDef struct {
	Vertices []VtxID
	Edges    []Edge
}

// Coloring maps each colored vertex to its color.  Uncolored vertices are absent.
type Coloring map[VtxID]Color

func (C Coloring) Clone() Coloring {
	dup := make(Coloring, len(C))
	for v, c := range C {
		dup[v] = c
	}
	return dup
}

// Restrict returns the subset of this Coloring whose vertices appear in the given vertex list.
//
// This is how a coloring of one map seeds a related map that only shares some of its regions.
func (C Coloring) Restrict(vertices []VtxID) Coloring {
	sub := make(Coloring, len(vertices))
	for _, v := range vertices {
		if c, ok := C[v]; ok && c != Uncolored {
			sub[v] = c
		}
	}
	return sub
}

// VtxColor is a single (vertex, color) assignment.
type VtxColor struct {
	Vtx   VtxID
	Color Color
}

// Sorted returns the assignments of this Coloring in ascending vertex order.
func (C Coloring) Sorted() []VtxColor {
	out := make([]VtxColor, 0, len(C))
	for v, c := range C {
		out = append(out, VtxColor{v, c})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Vtx < out[j].Vtx
	})
	return out
}

// Diagnostics reports how a coloring run went.
type Diagnostics struct {
	NumVerts     int     // vertices in the graph
	NumColored   int     // vertices holding a color
	Histogram    []int   // Histogram[c] is the number of vertices holding color c; [0] counts uncolored
	IllegalEdges int     // edges whose endpoints share a color
	Forced       []VtxID // vertices assigned a possibly illegal color on purpose
	Stuck        []VtxID // vertices where both repair techniques were exhausted, in order of occurrence
	LocalShifts  int     // successful local shift repairs in the kept attempt
	ChainShifts  int     // successful chain shift repairs in the kept attempt
	Attempts     int     // greedy passes run (1 + kickbacks)
	CliqueBound  int     // size of the largest clique found (a lower bound on colors needed)
	Balanced     bool    // set if the balancing post-pass ran
}

// Complete returns true if every vertex is colored and no edge is monochromatic.
func (d *Diagnostics) Complete() bool {
	return d.NumColored == d.NumVerts && d.IllegalEdges == 0
}

// Spread returns the difference between the most and least used colors.
func (d *Diagnostics) Spread() int {
	if len(d.Histogram) < 2 {
		return 0
	}
	lo, hi := d.Histogram[1], d.Histogram[1]
	for _, n := range d.Histogram[1:] {
		if n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	return hi - lo
}

func (d *Diagnostics) String() string {
	var hist []int
	if len(d.Histogram) > 1 {
		hist = d.Histogram[1:]
	}
	b := strings.Builder{}
	fmt.Fprintf(&b, "colored %d/%d, histogram %v", d.NumColored, d.NumVerts, hist)
	if d.IllegalEdges > 0 {
		fmt.Fprintf(&b, ", %d illegal edges", d.IllegalEdges)
	}
	if len(d.Forced) > 0 {
		fmt.Fprintf(&b, ", forced %v", d.Forced)
	}
	if len(d.Stuck) > 0 {
		fmt.Fprintf(&b, ", stuck %v", d.Stuck)
	}
	return b.String()
}

// AssignPolicy selects which legal color the greedy pass gives a vertex.
type AssignPolicy int32

const (
	// AssignLowest assigns the numerically smallest legal color.
	AssignLowest AssignPolicy = iota

	// AssignBySupply assigns the legal color with the most remaining supply, keeping color classes even as the pass runs.
	AssignBySupply
)

// ColorOpts configures a coloring run.
type ColorOpts struct {
	PaletteSize  int          // 0 denotes DefaultPaletteSize
	Initial      Coloring     // optional partial seed
	LockInitial  bool         // if set, seeded vertices are never recolored by repair or balancing
	PreKick      *VtxID       // if set, this vertex is pinned first, as if kicked back by a prior attempt
	MaxKickbacks int          // number of restarts allowed with a stuck vertex pinned; 0 or negative denotes none
	Force        bool         // if set, a stuck vertex is given its least conflicting color and the pass continues
	Assign       AssignPolicy // how the greedy pass picks among legal colors
	SkipBalance  bool         // if set, the balancing post-pass is not run
}

// DefaultColorOpts are the options used when a caller has no opinion.
var DefaultColorOpts = ColorOpts{
	PaletteSize:  DefaultPaletteSize,
	MaxKickbacks: 4,
}

// Normalize fills in a zero PaletteSize and clamps MaxKickbacks to zero or more.
func (opts *ColorOpts) Normalize() {
	if opts.PaletteSize == 0 {
		opts.PaletteSize = DefaultPaletteSize
	}
	if opts.MaxKickbacks < 0 {
		opts.MaxKickbacks = 0
	}
}

// CatalogOpts specifies params for opening a Catalog
type CatalogOpts struct {
	DbPathName string // omit for an in-memory catalog
	ReadOnly   bool   // open in read-only mode
}

// Layer is a named coloring kept so related maps can be colored consistently.
type Layer struct {
	Name        string
	PaletteSize int
	Coloring    Coloring
	Diagnostics Diagnostics
}

// Catalog stores colored layers.
type Catalog interface {

	// PutLayer stores (or replaces) the given layer.
	PutLayer(layer *Layer) error

	// GetLayer returns the named layer or ErrLayerNotFound.
	GetLayer(name string) (*Layer, error)

	// Layers returns the names of all stored layers, in ascending order.
	Layers() ([]string, error)

	// NumLayers returns the number of layers stored, as tracked by the catalog state record.
	NumLayers() int64

	// Returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	Close() error
}

// PrintOpts specifies what is printed for each Job
type PrintOpts struct {
	Label    string // Prefix label
	Coloring bool   // If set, prints each vertex=color assignment
	Summary  bool   // If set, prints the Diagnostics summary
}

// DefaultPrintOpts{}
var DefaultPrintOpts = PrintOpts{
	Summary: true,
}
