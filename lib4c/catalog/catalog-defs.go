package catalog

import (
	"github.com/fiveham/map-tools/go4c"
	"github.com/gogo/protobuf/proto"
)

// CatalogState is stored under gCatalogStateKey.
type CatalogState struct {
	MajorVers int32 `protobuf:"varint,1,opt,name=MajorVers,proto3" json:"MajorVers,omitempty"`
	MinorVers int32 `protobuf:"varint,2,opt,name=MinorVers,proto3" json:"MinorVers,omitempty"`
	NumLayers int64 `protobuf:"varint,3,opt,name=NumLayers,proto3" json:"NumLayers,omitempty"`
}

func (m *CatalogState) Reset()         { *m = CatalogState{} }
func (m *CatalogState) String() string { return proto.CompactTextString(m) }
func (*CatalogState) ProtoMessage()    {}

// VtxPin is a single vertex color assignment.
type VtxPin struct {
	Vtx   int64  `protobuf:"varint,1,opt,name=Vtx,proto3" json:"Vtx,omitempty"`
	Color uint32 `protobuf:"varint,2,opt,name=Color,proto3" json:"Color,omitempty"`
}

func (m *VtxPin) Reset()         { *m = VtxPin{} }
func (m *VtxPin) String() string { return proto.CompactTextString(m) }
func (*VtxPin) ProtoMessage()    {}

// LayerDef is the stored form of a go4c.Layer, keyed by layer name.
type LayerDef struct {
	Name         string    `protobuf:"bytes,1,opt,name=Name,proto3" json:"Name,omitempty"`
	PaletteSize  int32     `protobuf:"varint,2,opt,name=PaletteSize,proto3" json:"PaletteSize,omitempty"`
	Pins         []*VtxPin `protobuf:"bytes,3,rep,name=Pins,proto3" json:"Pins,omitempty"`
	NumVerts     int32     `protobuf:"varint,4,opt,name=NumVerts,proto3" json:"NumVerts,omitempty"`
	IllegalEdges int32     `protobuf:"varint,5,opt,name=IllegalEdges,proto3" json:"IllegalEdges,omitempty"`
	Forced       []int64   `protobuf:"varint,6,rep,packed,name=Forced,proto3" json:"Forced,omitempty"`
	Stuck        []int64   `protobuf:"varint,7,rep,packed,name=Stuck,proto3" json:"Stuck,omitempty"`
	Histogram    []int32   `protobuf:"varint,8,rep,packed,name=Histogram,proto3" json:"Histogram,omitempty"`
}

func (m *LayerDef) Reset()         { *m = LayerDef{} }
func (m *LayerDef) String() string { return proto.CompactTextString(m) }
func (*LayerDef) ProtoMessage()    {}

// ExportLayer converts a go4c.Layer into its stored form.
func ExportLayer(layer *go4c.Layer) *LayerDef {
	def := &LayerDef{
		Name:         layer.Name,
		PaletteSize:  int32(layer.PaletteSize),
		NumVerts:     int32(layer.Diagnostics.NumVerts),
		IllegalEdges: int32(layer.Diagnostics.IllegalEdges),
	}
	for _, vc := range layer.Coloring.Sorted() {
		def.Pins = append(def.Pins, &VtxPin{
			Vtx:   int64(vc.Vtx),
			Color: uint32(vc.Color),
		})
	}
	for _, v := range layer.Diagnostics.Forced {
		def.Forced = append(def.Forced, int64(v))
	}
	for _, v := range layer.Diagnostics.Stuck {
		def.Stuck = append(def.Stuck, int64(v))
	}
	for _, n := range layer.Diagnostics.Histogram {
		def.Histogram = append(def.Histogram, int32(n))
	}
	return def
}

// Layer converts this stored form back into a go4c.Layer.
func (m *LayerDef) Layer() *go4c.Layer {
	layer := &go4c.Layer{
		Name:        m.Name,
		PaletteSize: int(m.PaletteSize),
		Coloring:    make(go4c.Coloring, len(m.Pins)),
	}
	for _, pin := range m.Pins {
		layer.Coloring[go4c.VtxID(pin.Vtx)] = go4c.Color(pin.Color)
	}

	diag := &layer.Diagnostics
	diag.NumVerts = int(m.NumVerts)
	diag.NumColored = len(m.Pins)
	diag.IllegalEdges = int(m.IllegalEdges)
	for _, v := range m.Forced {
		diag.Forced = append(diag.Forced, go4c.VtxID(v))
	}
	for _, v := range m.Stuck {
		diag.Stuck = append(diag.Stuck, go4c.VtxID(v))
	}
	for _, n := range m.Histogram {
		diag.Histogram = append(diag.Histogram, int(n))
	}
	return layer
}
