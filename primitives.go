package glcity

import (
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// Vertex counts of the hand-authored meshes.
const (
	planeVertices   = 6
	cubeSideCount   = 24 // Four side faces, drawn with the wall texture.
	cubeRoofCount   = 12 // Bottom and top faces, drawn with the roof texture.
	cubeVertices    = cubeSideCount + cubeRoofCount
	pyramidVertices = 12
)

// NewPlaneMesh returns a unit square on the XZ plane centered at the origin facing +Y.
// Texture coordinates span [0,textureScale] on both axes.
func NewPlaneMesh(textureScale float32) Mesh {
	const h = 0.5
	up := ms3.Vec{Y: 1}
	vertices := make([]Vertex, 0, planeVertices)
	vertices = appendQuad(vertices, up,
		[4]ms3.Vec{{X: -h, Z: -h}, {X: -h, Z: h}, {X: h, Z: h}, {X: h, Z: -h}},
		[4]ms2.Vec{{X: 0, Y: 0}, {X: 0, Y: textureScale}, {X: textureScale, Y: textureScale}, {X: textureScale, Y: 0}},
	)
	return Mesh{Vertices: vertices, Primitive: Triangles}
}

// NewCubeMesh returns a unit cube centered at the origin as a triangle list.
// The first 24 vertices are the four side faces, the last 12 the bottom and top faces,
// which lets walls and roof be drawn with different textures from one buffer.
//
// Side faces have texture coordinates spanning [0,textureScaleX] horizontally
// and [0,textureScaleY] vertically so large cubes do not stretch the wall texture.
// Bottom and top faces always span [0,1].
func NewCubeMesh(textureScaleX, textureScaleY float32) Mesh {
	const h = 0.5
	sx, sy := textureScaleX, textureScaleY
	side := [4]ms2.Vec{{X: 0, Y: sy}, {X: sx, Y: sy}, {X: sx, Y: 0}, {X: 0, Y: 0}}
	roof := [4]ms2.Vec{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}}
	vertices := make([]Vertex, 0, cubeVertices)
	// Corners are bottom-left, bottom-right, top-right, top-left as seen from outside.
	vertices = appendQuad(vertices, ms3.Vec{Z: -1}, // back
		[4]ms3.Vec{{X: h, Y: -h, Z: -h}, {X: -h, Y: -h, Z: -h}, {X: -h, Y: h, Z: -h}, {X: h, Y: h, Z: -h}}, side)
	vertices = appendQuad(vertices, ms3.Vec{Z: 1}, // front
		[4]ms3.Vec{{X: -h, Y: -h, Z: h}, {X: h, Y: -h, Z: h}, {X: h, Y: h, Z: h}, {X: -h, Y: h, Z: h}}, side)
	vertices = appendQuad(vertices, ms3.Vec{X: -1}, // left
		[4]ms3.Vec{{X: -h, Y: -h, Z: -h}, {X: -h, Y: -h, Z: h}, {X: -h, Y: h, Z: h}, {X: -h, Y: h, Z: -h}}, side)
	vertices = appendQuad(vertices, ms3.Vec{X: 1}, // right
		[4]ms3.Vec{{X: h, Y: -h, Z: h}, {X: h, Y: -h, Z: -h}, {X: h, Y: h, Z: -h}, {X: h, Y: h, Z: h}}, side)
	vertices = appendQuad(vertices, ms3.Vec{Y: -1}, // bottom
		[4]ms3.Vec{{X: -h, Y: -h, Z: -h}, {X: h, Y: -h, Z: -h}, {X: h, Y: -h, Z: h}, {X: -h, Y: -h, Z: h}}, roof)
	vertices = appendQuad(vertices, ms3.Vec{Y: 1}, // top
		[4]ms3.Vec{{X: -h, Y: h, Z: h}, {X: h, Y: h, Z: h}, {X: h, Y: h, Z: -h}, {X: -h, Y: h, Z: -h}}, roof)
	return Mesh{Vertices: vertices, Primitive: Triangles}
}

// NewPyramidMesh returns a square-based pyramid with its apex at (0,0.5,0) and base
// at y=-0.5. There is no bottom face since it always sits on top of another shape.
func NewPyramidMesh() Mesh {
	const h = 0.5
	apex := ms3.Vec{Y: h}
	base := [4]ms3.Vec{
		{X: -h, Y: -h, Z: h},
		{X: h, Y: -h, Z: h},
		{X: h, Y: -h, Z: -h},
		{X: -h, Y: -h, Z: -h},
	}
	vertices := make([]Vertex, 0, pyramidVertices)
	for i := range base {
		left, right := base[i], base[(i+1)%len(base)]
		n := ms3.Unit(ms3.Cross(ms3.Sub(left, apex), ms3.Sub(right, apex)))
		vertices = append(vertices,
			Vertex{Position: apex, Normal: n, TexCoord: ms2.Vec{X: 0.5, Y: 0}},
			Vertex{Position: left, Normal: n, TexCoord: ms2.Vec{X: 0, Y: 1}},
			Vertex{Position: right, Normal: n, TexCoord: ms2.Vec{X: 1, Y: 1}},
		)
	}
	return Mesh{Vertices: vertices, Primitive: Triangles}
}

// appendQuad appends two counter-clockwise triangles for the quad with corners c.
func appendQuad(dst []Vertex, normal ms3.Vec, c [4]ms3.Vec, uv [4]ms2.Vec) []Vertex {
	for _, k := range [6]int{0, 1, 2, 2, 3, 0} {
		dst = append(dst, Vertex{Position: c[k], Normal: normal, TexCoord: uv[k]})
	}
	return dst
}
