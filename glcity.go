// Package glcity generates the static geometry of a small city scene (ground plane,
// cuboid buildings, a pyramid roof and a torus stadium roof) and describes how each
// shape is drawn. Meshes are plain Go data so they can be tested and exported
// without a GL context; see package glrender for the GPU side.
package glcity

import (
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

const (
	twoPi = 2 * math32.Pi
	// Texture tiling of the torus surface: wraps around the tube and around the ring.
	torusTubeTile = 4.0
	torusMainTile = 12.0
	// DefaultTorusSegments is the main and tube segment count used by the scene torus.
	DefaultTorusSegments = 16
)

// Vertex is the interleaved vertex format shared by every shape. Its memory layout
// is uploaded verbatim to the GPU: position at attribute 0, normal at 1 and texture
// coordinate at 2.
type Vertex struct {
	Position ms3.Vec
	// Normal points outward of the face the vertex belongs to.
	Normal ms3.Vec
	// TexCoord is not normalized, values above 1 tile a repeating texture.
	TexCoord ms2.Vec
}

// VertexSize is the size of a [Vertex] in bytes, which is also the buffer stride.
const VertexSize = int(unsafe.Sizeof(Vertex{}))

// Attribute byte offsets inside a [Vertex].
const (
	PositionOffset = int(unsafe.Offsetof(Vertex{}.Position))
	NormalOffset   = int(unsafe.Offsetof(Vertex{}.Normal))
	TexCoordOffset = int(unsafe.Offsetof(Vertex{}.TexCoord))
)

// Primitive is the topology used to assemble vertices into triangles.
type Primitive uint8

const (
	// Triangles interprets every three vertices (or indices) as a triangle.
	Triangles Primitive = iota
	// TriangleStrip forms a triangle with each new vertex and the two before it.
	TriangleStrip
)

func (p Primitive) String() string {
	switch p {
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle strip"
	}
	return "unknown primitive"
}

// Winding is the vertex order of a front facing triangle seen from outside the mesh.
type Winding uint8

const (
	// CounterClockwise matches the GL default front face.
	CounterClockwise Winding = iota
	Clockwise
)

// Mesh is static geometry generated once and never modified afterwards.
type Mesh struct {
	Vertices []Vertex
	// Indices reference Vertices. A nil Indices means the mesh is drawn
	// in vertex order without an index buffer.
	Indices   []uint32
	Primitive Primitive
	// PrimitiveRestart is set when Indices contains RestartIndex markers
	// which start a new strip.
	PrimitiveRestart bool
	RestartIndex     uint32
	// FrontFace is the winding of outward facing triangles. Strips take the
	// winding of their first triangle.
	FrontFace Winding
}

// Indexed reports whether the mesh is drawn through an index buffer.
func (m Mesh) Indexed() bool { return m.Indices != nil }

// Bounds returns the model-space bounding box of the mesh vertices.
func (m Mesh) Bounds() ms3.Box {
	if len(m.Vertices) == 0 {
		return ms3.Box{}
	}
	bb := ms3.Box{Min: m.Vertices[0].Position, Max: m.Vertices[0].Position}
	for _, v := range m.Vertices[1:] {
		bb.Min = ms3.MinElem(bb.Min, v.Position)
		bb.Max = ms3.MaxElem(bb.Max, v.Position)
	}
	return bb
}
