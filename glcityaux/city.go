package glcityaux

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glcity"
)

// padding separates stacked shapes so coplanar faces do not z-fight.
const padding = 0.005

// City is the fixed layout of the scene: a business centre to the west, a stadium in
// the middle and two towers to the east, all standing on a large ground plane.
type City struct {
	Ground          *glcity.Plane
	BusinessCentre  *glcity.Cube
	BusinessCentre2 *glcity.Cube
	StadiumBottom   *glcity.Cube
	StadiumTop      *glcity.Torus
	Tower1          *glcity.Cube
	Tower2          *glcity.Cube
	PyramidTower1   *glcity.Pyramid
}

// NewCity generates the geometry of every shape in the city.
func NewCity() *City {
	var c City
	c.Ground = glcity.NewPlane(ms3.Vec{}, ms3.Vec{X: 100, Y: 100, Z: 100}, 1)

	{
		// Business centre: a small block next to a long block rotated to face it.
		position := ms3.Vec{X: -16}
		const width, height = 3.0, 3.0
		c.BusinessCentre = glcity.NewCube(
			ms3.Add(position, ms3.Vec{X: width + padding, Y: height/2 + padding}), 0,
			ms3.Vec{X: width, Y: height, Z: width}, 1, 1)
		c.BusinessCentre2 = glcity.NewCube(
			ms3.Add(position, ms3.Vec{Y: height/2 + padding}), 90,
			ms3.Vec{X: 3 * width, Y: height, Z: width}, 1, 1)
	}

	{
		// Stadium: an oval ring roof resting on a wide base.
		var position ms3.Vec
		const width, height, topHeight = 8.0, 2.3, 1.0
		c.StadiumBottom = glcity.NewCube(
			ms3.Add(position, ms3.Vec{Y: height/2 + padding}), 0,
			ms3.Vec{X: width * 1.5, Y: height, Z: width}, 1, 1)
		c.StadiumTop = glcity.NewTorus(
			ms3.Add(position, ms3.Vec{Y: height + topHeight}),
			ms3.Vec{X: 1.25, Y: 1, Z: 1},
			width/1.5, topHeight*1.5,
			glcity.DefaultTorusSegments, glcity.DefaultTorusSegments)
	}

	{
		// Towers: a pyramid-roofed tower and a taller flat-roofed one behind it.
		position := ms3.Vec{X: 16}
		const width, height, height2 = 2.0, 6.0, 7.0
		const pyramidWidth, pyramidHeight = 2.0, 1.5
		c.Tower1 = glcity.NewCube(
			ms3.Add(position, ms3.Vec{Y: height/2 + padding}), 0,
			ms3.Vec{X: width, Y: height, Z: width}, 1, 4)
		c.PyramidTower1 = glcity.NewPyramid(
			ms3.Add(position, ms3.Vec{Y: height + pyramidHeight/2}), 0,
			ms3.Vec{X: pyramidWidth, Y: pyramidHeight, Z: pyramidWidth})

		positionTower2 := ms3.Vec{X: 14, Z: 8}
		c.Tower2 = glcity.NewCube(
			ms3.Add(positionTower2, ms3.Vec{Y: height2/2 + padding}), 0,
			ms3.Vec{X: width, Y: height2, Z: width}, 1, 4)
	}
	return &c
}

// Shapes returns every shape of the city in draw order: flat colored shapes first,
// then textured buildings, then the stadium.
func (c *City) Shapes() []glcity.Shape {
	return []glcity.Shape{
		c.Ground,
		c.PyramidTower1,
		c.BusinessCentre,
		c.BusinessCentre2,
		c.Tower1,
		c.Tower2,
		c.StadiumBottom,
		c.StadiumTop,
	}
}

// Bounds returns the world space bounding box of the city's buildings, excluding the ground.
func (c *City) Bounds() ms3.Box {
	var bb ms3.Box
	for i, s := range c.Shapes()[1:] {
		sbb := worldBounds(s)
		if i == 0 {
			bb = sbb
			continue
		}
		bb.Min = ms3.MinElem(bb.Min, sbb.Min)
		bb.Max = ms3.MaxElem(bb.Max, sbb.Max)
	}
	return bb
}

func worldBounds(s glcity.Shape) ms3.Box {
	model := s.Transform().Model()
	mbb := s.Mesh().Bounds()
	var bb ms3.Box
	for i := 0; i < 8; i++ {
		corner := mbb.Min
		if i&1 != 0 {
			corner.X = mbb.Max.X
		}
		if i&2 != 0 {
			corner.Y = mbb.Max.Y
		}
		if i&4 != 0 {
			corner.Z = mbb.Max.Z
		}
		v := model.Mul4x1(vec4(corner))
		p := ms3.Vec{X: v[0], Y: v[1], Z: v[2]}
		if i == 0 {
			bb = ms3.Box{Min: p, Max: p}
			continue
		}
		bb.Min = ms3.MinElem(bb.Min, p)
		bb.Max = ms3.MaxElem(bb.Max, p)
	}
	return bb
}

func vec4(v ms3.Vec) mgl32.Vec4 { return mgl32.Vec4{v.X, v.Y, v.Z, 1} }
