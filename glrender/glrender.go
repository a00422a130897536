// Package glrender uploads and draws glcity shapes with OpenGL and converts shape meshes
// into world space triangles for export.
package glrender

import (
	"errors"
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glcity"
)

// Renderer produces world space triangles. ReadTriangles returns io.EOF once every triangle has been read.
type Renderer interface {
	ReadTriangles(dst []ms3.Triangle, userData any) (n int, err error)
}

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.RenderAll implementation.
func RenderAll(r Renderer, userData any) ([]ms3.Triangle, error) {
	const startSize = 4096
	var err error
	var nt int
	result := make([]ms3.Triangle, 0, startSize)
	buf := make([]ms3.Triangle, startSize)
	for {
		nt, err = r.ReadTriangles(buf, userData)
		if err == nil || err == io.EOF {
			result = append(result, buf[:nt]...)
		}
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

// ShapeRenderer expands the meshes of a list of shapes into world space triangles, one shape at a time.
type ShapeRenderer struct {
	shapes  []glcity.Shape
	next    int
	pending []ms3.Triangle
}

var _ Renderer = (*ShapeRenderer)(nil)

// NewShapeRenderer returns a Renderer over the given shapes, read in order.
func NewShapeRenderer(shapes []glcity.Shape) (*ShapeRenderer, error) {
	if len(shapes) == 0 {
		return nil, errors.New("no shapes to render")
	}
	for _, s := range shapes {
		if s == nil {
			return nil, errors.New("nil shape")
		}
	}
	return &ShapeRenderer{shapes: shapes}, nil
}

// ReadTriangles implements [Renderer]. userData is ignored.
func (sr *ShapeRenderer) ReadTriangles(dst []ms3.Triangle, userData any) (n int, err error) {
	if len(dst) == 0 {
		return 0, io.ErrShortBuffer
	}
	for n < len(dst) {
		if len(sr.pending) == 0 {
			if sr.next >= len(sr.shapes) {
				return n, io.EOF
			}
			s := sr.shapes[sr.next]
			sr.next++
			sr.pending = Triangles(sr.pending[:0], s.Mesh(), s.Transform().Model())
			continue
		}
		copied := copy(dst[n:], sr.pending)
		n += copied
		sr.pending = sr.pending[copied:]
	}
	return n, nil
}

// Triangles appends the triangles of m transformed by model to dst and returns the result.
// Triangle strips alternate vertex order so all triangles keep the winding of the first one.
// Restart markers begin a new strip and degenerate triangles are dropped.
// Returned triangles are counter-clockwise seen from outside regardless of m.FrontFace.
func Triangles(dst []ms3.Triangle, m glcity.Mesh, model mgl32.Mat4) []ms3.Triangle {
	n := len(m.Vertices)
	if m.Indexed() {
		n = len(m.Indices)
	}
	index := func(i int) (idx uint32, restart bool) {
		if !m.Indexed() {
			return uint32(i), false
		}
		idx = m.Indices[i]
		return idx, m.PrimitiveRestart && idx == m.RestartIndex
	}
	pos := func(idx uint32) ms3.Vec {
		p := m.Vertices[idx].Position
		v := model.Mul4x1(mgl32.Vec4{p.X, p.Y, p.Z, 1})
		return ms3.Vec{X: v[0], Y: v[1], Z: v[2]}
	}
	emit := func(a, b, c uint32) {
		if a == b || b == c || a == c {
			return
		}
		if m.FrontFace == glcity.Clockwise {
			b, c = c, b
		}
		t := ms3.Triangle{pos(a), pos(b), pos(c)}
		if isDegenerate(t) {
			return
		}
		dst = append(dst, t)
	}

	switch m.Primitive {
	case glcity.Triangles:
		for i := 0; i+2 < n; i += 3 {
			a, _ := index(i)
			b, _ := index(i + 1)
			c, _ := index(i + 2)
			emit(a, b, c)
		}
	case glcity.TriangleStrip:
		var strip [2]uint32
		stripLen := 0
		for i := 0; i < n; i++ {
			idx, restart := index(i)
			if restart {
				stripLen = 0
				continue
			}
			if stripLen >= 2 {
				if stripLen%2 == 0 {
					emit(strip[0], strip[1], idx)
				} else {
					emit(strip[1], strip[0], idx)
				}
			}
			strip[0], strip[1] = strip[1], idx
			stripLen++
		}
	}
	return dst
}

func isDegenerate(t ms3.Triangle) bool {
	n := ms3.Cross(ms3.Sub(t[1], t[0]), ms3.Sub(t[2], t[0]))
	return n == (ms3.Vec{})
}
