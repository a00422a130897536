package glcity

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// TorusN returns the vertex and index counts of a torus mesh with the given
// number of main (ring) and tube segments. Rings are separated by one restart index.
func TorusN(mainSegs, tubeSegs int) (numVertex, numIndex int) {
	numVertex = (mainSegs + 1) * (tubeSegs + 1)
	numIndex = mainSegs*2*(tubeSegs+1) + mainSegs - 1
	return numVertex, numIndex
}

// NewTorusMesh generates a torus lying on the XZ plane centered at the origin.
// mainRadius is the distance from the origin to the center of the tube and tubeRadius
// the radius of the tube cross-section.
//
// The surface is drawn as mainSegs triangle strips in a single indexed draw, each strip
// running once around the tube between two consecutive main rings. Strips are separated by
// a restart index equal to the vertex count, so it never refers to a real vertex.
// The first ring and first tube column are duplicated at the end so the texture, which tiles
// 12 times around the ring and 4 times around the tube, wraps without a seam.
//
// Parameters are not validated: segment counts under 1 yield undefined geometry.
func NewTorusMesh(mainRadius, tubeRadius float32, mainSegs, tubeSegs int) Mesh {
	numVertex, numIndex := TorusN(mainSegs, tubeSegs)
	restart := uint32(numVertex)
	vertices := make([]Vertex, 0, numVertex)
	indices := make([]uint32, 0, numIndex)

	for i := 0; i <= mainSegs; i++ {
		// Closing ring reuses angle zero so seam positions match bit for bit.
		mainAngle := float32(i%mainSegs) * twoPi / float32(mainSegs)
		sinMain, cosMain := math32.Sin(mainAngle), math32.Cos(mainAngle)
		v := float32(i) * torusMainTile / float32(mainSegs)
		for j := 0; j <= tubeSegs; j++ {
			tubeAngle := float32(j%tubeSegs) * twoPi / float32(tubeSegs)
			sinTube, cosTube := math32.Sin(tubeAngle), math32.Cos(tubeAngle)
			ringDist := mainRadius + tubeRadius*cosTube
			vertices = append(vertices, Vertex{
				Position: ms3.Vec{
					X: ringDist * cosMain,
					Y: tubeRadius * sinTube,
					Z: ringDist * sinMain,
				},
				Normal: ms3.Vec{
					X: cosMain * cosTube,
					Y: sinTube,
					Z: sinMain * cosTube,
				},
				TexCoord: ms2.Vec{
					X: float32(j) * torusTubeTile / float32(tubeSegs),
					Y: v,
				},
			})
		}
	}

	stride := uint32(tubeSegs + 1)
	var offset uint32
	for i := 0; i < mainSegs; i++ {
		for j := 0; j <= tubeSegs; j++ {
			indices = append(indices, offset, offset+stride)
			offset++
		}
		if i != mainSegs-1 {
			indices = append(indices, restart)
		}
	}
	return Mesh{
		Vertices:         vertices,
		Indices:          indices,
		Primitive:        TriangleStrip,
		PrimitiveRestart: true,
		RestartIndex:     restart,
		// Pairing each ring vertex with the next ring's winds strips clockwise seen from outside.
		FrontFace: Clockwise,
	}
}
