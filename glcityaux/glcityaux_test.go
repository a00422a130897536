package glcityaux

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glcity"
)

func TestNewCityLayout(t *testing.T) {
	city := NewCity()
	shapes := city.Shapes()
	if len(shapes) != 8 {
		t.Fatalf("want 8 shapes, got %d", len(shapes))
	}
	for i, s := range shapes {
		if s == nil {
			t.Fatalf("shape %d is nil", i)
		}
	}
	if _, ok := shapes[0].(*glcity.Plane); !ok {
		t.Errorf("first shape drawn should be the ground, got %T", shapes[0])
	}
	if _, ok := shapes[len(shapes)-1].(*glcity.Torus); !ok {
		t.Errorf("last shape drawn should be the stadium roof, got %T", shapes[len(shapes)-1])
	}

	tests := []struct {
		name string
		s    glcity.Shape
		want ms3.Vec
	}{
		{"BusinessCentre", city.BusinessCentre, ms3.Vec{X: -12.995, Y: 1.505}},
		{"BusinessCentre2", city.BusinessCentre2, ms3.Vec{X: -16, Y: 1.505}},
		{"StadiumBottom", city.StadiumBottom, ms3.Vec{Y: 1.155}},
		{"StadiumTop", city.StadiumTop, ms3.Vec{Y: 3.3}},
		{"Tower1", city.Tower1, ms3.Vec{X: 16, Y: 3.005}},
		{"PyramidTower1", city.PyramidTower1, ms3.Vec{X: 16, Y: 6.75}},
		{"Tower2", city.Tower2, ms3.Vec{X: 14, Y: 3.505, Z: 8}},
	}
	for _, test := range tests {
		got := test.s.Transform().Position
		if !vecNear(got, test.want, 1e-5) {
			t.Errorf("%s: want position %v, got %v", test.name, test.want, got)
		}
	}
	if got := city.BusinessCentre2.Transform().RotationY; got != 90 {
		t.Errorf("BusinessCentre2 should be rotated 90 degrees, got %v", got)
	}
}

func TestCityBounds(t *testing.T) {
	bb := NewCity().Bounds()
	const ringOuter = 8/1.5 + 1.5
	wantMin := ms3.Vec{X: -17.5, Y: padding, Z: -ringOuter}
	wantMax := ms3.Vec{X: 17, Y: 7.5, Z: 9}
	if !vecNear(bb.Min, wantMin, 1e-3) || !vecNear(bb.Max, wantMax, 1e-3) {
		t.Errorf("want bounds %v..%v, got %v..%v", wantMin, wantMax, bb.Min, bb.Max)
	}
}

func TestRenderSTL(t *testing.T) {
	var buf bytes.Buffer
	err := RenderSTL(NewCity(), RenderConfig{STLOutput: &buf, Silent: true})
	if err != nil {
		t.Fatal(err)
	}
	// Ground, pyramid, five cubes and a 16x16 torus.
	const wantTriangles = 2 + 4 + 5*12 + 16*2*16
	if buf.Len() != 84+50*wantTriangles {
		t.Fatalf("want %d STL bytes, got %d", 84+50*wantTriangles, buf.Len())
	}
	if got := binary.LittleEndian.Uint32(buf.Bytes()[80:]); got != wantTriangles {
		t.Errorf("STL header triangle count %d, want %d", got, wantTriangles)
	}
}

func TestRenderSTLFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "city.stl")
	fp, err := os.Create(filename)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	if got := outputName(fp); got != filename {
		t.Errorf("want output named %q, got %q", filename, got)
	}
	if got := outputName(&bytes.Buffer{}); got != "STL" {
		t.Errorf("want generic output name for buffers, got %q", got)
	}
	err = RenderSTL(NewCity(), RenderConfig{STLOutput: fp, Silent: true})
	if err != nil {
		t.Fatal(err)
	}
	info, err := fp.Stat()
	if err != nil {
		t.Fatal(err)
	}
	const wantTriangles = 2 + 4 + 5*12 + 16*2*16
	if info.Size() != 84+50*wantTriangles {
		t.Errorf("buffered output not flushed: want %d bytes, got %d", 84+50*wantTriangles, info.Size())
	}
}

func TestRenderSTLInvalid(t *testing.T) {
	if err := RenderSTL(NewCity(), RenderConfig{Silent: true}); err == nil {
		t.Error("expected error for missing output")
	}
	var buf bytes.Buffer
	if err := RenderSTL(nil, RenderConfig{STLOutput: &buf, Silent: true}); err == nil {
		t.Error("expected error for nil city")
	}
	if err := UI(nil, UIConfig{Silent: true}); err == nil {
		t.Error("expected error for nil city")
	}
}

func TestUIConfigDefaults(t *testing.T) {
	var cfg UIConfig
	cfg.setDefaults()
	if cfg.Width != DefaultWidth || cfg.Height != DefaultHeight || cfg.Title != DefaultTitle {
		t.Errorf("unexpected window defaults %+v", cfg)
	}
	if cfg.AssetDir != "." || cfg.MaxTextureSize != DefaultMaxTextureSize {
		t.Errorf("unexpected asset defaults %+v", cfg)
	}
	cfg = UIConfig{Width: 1024, Title: "city"}
	cfg.setDefaults()
	if cfg.Width != 1024 || cfg.Height != DefaultHeight || cfg.Title != "city" {
		t.Errorf("defaults overwrote set fields %+v", cfg)
	}
}

func vecNear(a, b ms3.Vec, tol float32) bool {
	return math32.Abs(a.X-b.X) <= tol && math32.Abs(a.Y-b.Y) <= tol && math32.Abs(a.Z-b.Z) <= tol
}
