package glcity

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
)

func TestTransformModelOrder(t *testing.T) {
	const tol = 1e-5
	tf := Transform{
		Position:  ms3.Vec{X: 10, Y: 1, Z: -2},
		RotationY: 90,
		Scale:     ms3.Vec{X: 3, Y: 2, Z: 1},
	}
	// Scale first: (1,0,0) -> (3,0,0). Rotating 90° about Y sends +X to -Z. Then translate.
	got := tf.Model().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	want := mgl32.Vec4{10, 1, -5, 1}
	for i := range want {
		if math32.Abs(got[i]-want[i]) > tol {
			t.Fatalf("want %v, got %v", want, got)
		}
	}
	// Zero rotation must leave an axis-aligned scale.
	tf.RotationY = 0
	got = tf.Model().Mul4x1(mgl32.Vec4{0.5, 0.5, 0.5, 1})
	want = mgl32.Vec4{11.5, 2, -1.5, 1}
	for i := range want {
		if math32.Abs(got[i]-want[i]) > tol {
			t.Fatalf("want %v, got %v", want, got)
		}
	}
}

func TestShapeDrawSteps(t *testing.T) {
	one := ms3.Vec{X: 1, Y: 1, Z: 1}
	tests := []struct {
		name  string
		shape Shape
		want  []DrawStep
	}{
		{
			name:  "plane",
			shape: NewPlane(ms3.Vec{}, one, 1),
			want:  []DrawStep{{First: 0, Count: 6, Sampler: KeepSampler}},
		},
		{
			name:  "cube",
			shape: NewCube(ms3.Vec{}, 0, one, 1, 1),
			want: []DrawStep{
				{First: 0, Count: 24, Sampler: KeepSampler},
				{First: 24, Count: 12, Sampler: RoofTextureUnit},
			},
		},
		{
			name:  "pyramid",
			shape: NewPyramid(ms3.Vec{}, 45, one),
			want:  []DrawStep{{First: 0, Count: 12, Sampler: KeepSampler}},
		},
		{
			name:  "torus",
			shape: NewTorus(ms3.Vec{}, one, 5, 1, 4, 4),
			want:  []DrawStep{{First: 0, Count: 43, Sampler: KeepSampler}},
		},
	}
	for _, test := range tests {
		got := test.shape.DrawSteps()
		if len(got) != len(test.want) {
			t.Fatalf("%s: want %d steps, got %d", test.name, len(test.want), len(got))
		}
		for i := range got {
			if got[i] != test.want[i] {
				t.Errorf("%s step %d: want %+v, got %+v", test.name, i, test.want[i], got[i])
			}
		}
		m := test.shape.Mesh()
		n := len(m.Vertices)
		if m.Indexed() {
			n = len(m.Indices)
		}
		last := got[len(got)-1]
		if last.First+last.Count != n {
			t.Errorf("%s: draw steps cover %d elements, mesh has %d", test.name, last.First+last.Count, n)
		}
	}
}

func TestShapeTransform(t *testing.T) {
	pos := ms3.Vec{X: 16, Y: 6.75, Z: 0}
	scale := ms3.Vec{X: 2, Y: 1.5, Z: 2}
	p := NewPyramid(pos, 30, scale)
	tf := p.Transform()
	if tf.Position != pos || tf.Scale != scale || tf.RotationY != 30 {
		t.Errorf("pyramid transform not kept: %+v", tf)
	}
	torus := NewTorus(pos, scale, 5, 1, 8, 6)
	if torus.MainSegments != 8 || torus.TubeSegments != 6 || torus.Transform().RotationY != 0 {
		t.Errorf("unexpected torus parameters %+v", torus)
	}
}
