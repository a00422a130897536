package glcity

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
)

// Shape is a static scene primitive: one mesh, one transform and the sequence of
// draw calls needed to render it. Implementations generate their mesh once on
// construction and never modify it afterwards.
type Shape interface {
	// Mesh returns the model-space geometry of the shape. It must not be modified.
	Mesh() Mesh
	// Transform returns the placement of the shape in world space.
	Transform() Transform
	// DrawSteps returns the draw calls issued each frame, in order.
	DrawSteps() []DrawStep
}

// KeepSampler is the [DrawStep] Sampler value that leaves material samplers as set by the caller.
const KeepSampler = -1

// DrawStep is a single draw call over a contiguous range of a shape's mesh.
// For indexed meshes First and Count address the index buffer, otherwise the vertex buffer.
type DrawStep struct {
	First int
	Count int
	// Sampler, when not [KeepSampler], is the texture unit assigned to the
	// material diffuse and specular samplers before the draw call.
	Sampler int
}

// Transform places a shape in world space.
type Transform struct {
	Position ms3.Vec
	// RotationY is the rotation about the vertical axis in degrees.
	RotationY float32
	// Scale is applied per axis in model space.
	Scale ms3.Vec
}

// Model returns the model matrix translate(Position)·rotateY(RotationY)·scale(Scale).
// Vertices are scaled first, then rotated about the local origin, then translated.
func (t Transform) Model() mgl32.Mat4 {
	p, s := t.Position, t.Scale
	return mgl32.Translate3D(p.X, p.Y, p.Z).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(t.RotationY))).
		Mul4(mgl32.Scale3D(s.X, s.Y, s.Z))
}

// Plane is a flat square on the XZ plane, used as the ground.
type Plane struct {
	mesh Mesh
	tf   Transform
}

var _ Shape = (*Plane)(nil)

// NewPlane creates a plane centered at position. Scale is usually uniform in X and Z;
// textureScale sets how many times a texture repeats across it.
func NewPlane(position, scale ms3.Vec, textureScale float32) *Plane {
	return &Plane{
		mesh: NewPlaneMesh(textureScale),
		tf:   Transform{Position: position, Scale: scale},
	}
}

func (p *Plane) Mesh() Mesh           { return p.mesh }
func (p *Plane) Transform() Transform { return p.tf }
func (p *Plane) DrawSteps() []DrawStep {
	return []DrawStep{{First: 0, Count: len(p.mesh.Vertices), Sampler: KeepSampler}}
}

// Cube is a cuboid building with distinct wall and roof textures. Walls are drawn with
// whatever texture unit the caller assigned to the material, the roof and floor always
// with texture unit 1.
type Cube struct {
	mesh Mesh
	tf   Transform
}

var _ Shape = (*Cube)(nil)

// RoofTextureUnit is the texture unit used for the top and bottom faces of a [Cube].
const RoofTextureUnit = 1

// NewCube creates a cube centered at position, rotated rotationY degrees about the
// vertical axis and scaled per axis. textureScaleX and textureScaleY set how many times
// the wall texture repeats across each side face so that large cubes do not stretch it.
func NewCube(position ms3.Vec, rotationY float32, scale ms3.Vec, textureScaleX, textureScaleY float32) *Cube {
	return &Cube{
		mesh: NewCubeMesh(textureScaleX, textureScaleY),
		tf:   Transform{Position: position, RotationY: rotationY, Scale: scale},
	}
}

func (c *Cube) Mesh() Mesh           { return c.mesh }
func (c *Cube) Transform() Transform { return c.tf }
func (c *Cube) DrawSteps() []DrawStep {
	return []DrawStep{
		{First: 0, Count: cubeSideCount, Sampler: KeepSampler},
		{First: cubeSideCount, Count: cubeRoofCount, Sampler: RoofTextureUnit},
	}
}

// Pyramid is a four-sided roof without a base.
type Pyramid struct {
	mesh Mesh
	tf   Transform
}

var _ Shape = (*Pyramid)(nil)

// NewPyramid creates a pyramid centered at position, rotated rotationY degrees about
// the vertical axis and scaled per axis.
func NewPyramid(position ms3.Vec, rotationY float32, scale ms3.Vec) *Pyramid {
	return &Pyramid{
		mesh: NewPyramidMesh(),
		tf:   Transform{Position: position, RotationY: rotationY, Scale: scale},
	}
}

func (p *Pyramid) Mesh() Mesh           { return p.mesh }
func (p *Pyramid) Transform() Transform { return p.tf }
func (p *Pyramid) DrawSteps() []DrawStep {
	return []DrawStep{{First: 0, Count: len(p.mesh.Vertices), Sampler: KeepSampler}}
}

// Torus is a ring shaped roof drawn as restart-separated triangle strips in one call.
type Torus struct {
	mesh Mesh
	tf   Transform
	// Geometry parameters the mesh was generated with.
	MainRadius, TubeRadius     float32
	MainSegments, TubeSegments int
}

var _ Shape = (*Torus)(nil)

// NewTorus creates a torus centered at position lying on the XZ plane. See [NewTorusMesh]
// for the meaning of the geometry parameters.
func NewTorus(position, scale ms3.Vec, mainRadius, tubeRadius float32, mainSegs, tubeSegs int) *Torus {
	return &Torus{
		mesh:         NewTorusMesh(mainRadius, tubeRadius, mainSegs, tubeSegs),
		tf:           Transform{Position: position, Scale: scale},
		MainRadius:   mainRadius,
		TubeRadius:   tubeRadius,
		MainSegments: mainSegs,
		TubeSegments: tubeSegs,
	}
}

func (t *Torus) Mesh() Mesh           { return t.mesh }
func (t *Torus) Transform() Transform { return t.tf }
func (t *Torus) DrawSteps() []DrawStep {
	return []DrawStep{{First: 0, Count: len(t.mesh.Indices), Sampler: KeepSampler}}
}
