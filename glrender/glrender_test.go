package glrender

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glcity"
)

func TestTrianglesTorus(t *testing.T) {
	m := glcity.NewTorusMesh(8/1.5, 1.5, glcity.DefaultTorusSegments, glcity.DefaultTorusSegments)
	tris := Triangles(nil, m, mgl32.Ident4())
	// Each of the 16 strips has 2*17 indices, forming 32 triangles.
	if len(tris) != 512 {
		t.Fatalf("want 512 triangles, got %d", len(tris))
	}
	const tol = 1e-4
	for i, tri := range tris {
		for _, v := range tri {
			// Every vertex lies on the torus surface.
			ringDist := math32.Hypot(v.X, v.Z) - 8/1.5
			d := math32.Hypot(ringDist, v.Y) - 1.5
			if math32.Abs(d) > tol {
				t.Fatalf("triangle %d: vertex %v off the torus surface by %v", i, v, d)
			}
		}
	}
}

func TestTrianglesTorusFacesOutward(t *testing.T) {
	const R = 5
	m := glcity.NewTorusMesh(R, 1, glcity.DefaultTorusSegments, glcity.DefaultTorusSegments)
	tris := Triangles(nil, m, mgl32.Ident4())
	inward := 0
	for _, tri := range tris {
		n := ms3.Cross(ms3.Sub(tri[1], tri[0]), ms3.Sub(tri[2], tri[0]))
		centroid := ms3.Scale(1.0/3, ms3.Add(tri[0], ms3.Add(tri[1], tri[2])))
		// Direction away from the tube's center line.
		center := ms3.Scale(R, ms3.Unit(ms3.Vec{X: centroid.X, Z: centroid.Z}))
		if ms3.Dot(n, ms3.Sub(centroid, center)) <= 0 {
			inward++
		}
	}
	if inward != 0 {
		t.Errorf("%d of %d torus triangles face inward", inward, len(tris))
	}

	// Flipping the declared front face reverses every triangle.
	m.FrontFace = glcity.CounterClockwise
	flipped := Triangles(nil, m, mgl32.Ident4())
	if len(flipped) != len(tris) {
		t.Fatalf("winding changed triangle count: %d != %d", len(flipped), len(tris))
	}
	for i := range tris {
		if flipped[i][0] != tris[i][0] || flipped[i][1] != tris[i][2] || flipped[i][2] != tris[i][1] {
			t.Fatalf("triangle %d not reversed: %v vs %v", i, flipped[i], tris[i])
		}
	}
}

func TestTrianglesStripWinding(t *testing.T) {
	// A quad as a 4 vertex strip with a restart marker and a second quad after it.
	m := glcity.Mesh{
		Vertices: []glcity.Vertex{
			{Position: ms3.Vec{X: 0, Y: 0}},
			{Position: ms3.Vec{X: 1, Y: 0}},
			{Position: ms3.Vec{X: 0, Y: 1}},
			{Position: ms3.Vec{X: 1, Y: 1}},
		},
		Indices:          []uint32{0, 1, 2, 3, 4, 0, 1, 2, 3},
		Primitive:        glcity.TriangleStrip,
		PrimitiveRestart: true,
		RestartIndex:     4,
	}
	tris := Triangles(nil, m, mgl32.Translate3D(0, 0, 2))
	if len(tris) != 4 {
		t.Fatalf("want 4 triangles, got %d", len(tris))
	}
	for i, tri := range tris {
		n := ms3.Cross(ms3.Sub(tri[1], tri[0]), ms3.Sub(tri[2], tri[0]))
		if n.Z <= 0 {
			t.Errorf("triangle %d: winding flipped, normal %v", i, n)
		}
		if tri[0].Z != 2 {
			t.Errorf("triangle %d: model transform not applied %v", i, tri)
		}
	}
}

func TestTrianglesDegenerate(t *testing.T) {
	m := glcity.Mesh{
		Vertices: []glcity.Vertex{
			{Position: ms3.Vec{X: 0}},
			{Position: ms3.Vec{X: 1}},
			{Position: ms3.Vec{X: 2}}, // Collinear.
			{Position: ms3.Vec{Y: 1}},
		},
		Indices:   []uint32{0, 1, 2, 0, 1, 3, 1, 1, 3},
		Primitive: glcity.Triangles,
	}
	tris := Triangles(nil, m, mgl32.Ident4())
	if len(tris) != 1 {
		t.Fatalf("want degenerate triangles dropped, got %d triangles", len(tris))
	}
}

func TestShapeRendererSTL(t *testing.T) {
	one := ms3.Vec{X: 1, Y: 1, Z: 1}
	shapes := []glcity.Shape{
		glcity.NewPlane(ms3.Vec{}, ms3.Vec{X: 100, Y: 100, Z: 100}, 1),
		glcity.NewCube(ms3.Vec{Y: 1}, 90, one, 1, 1),
		glcity.NewPyramid(ms3.Vec{Y: 3}, 0, one),
		glcity.NewTorus(ms3.Vec{Y: 5}, one, 5, 1, 4, 4),
	}
	r, err := NewShapeRenderer(shapes)
	if err != nil {
		t.Fatal(err)
	}
	// Small reads exercise copying across shape boundaries.
	var tris []ms3.Triangle
	buf := make([]ms3.Triangle, 5)
	for {
		n, err := r.ReadTriangles(buf, nil)
		tris = append(tris, buf[:n]...)
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatal(err)
		}
	}
	const want = 2 + 12 + 4 + 4*2*4
	if len(tris) != want {
		t.Fatalf("want %d triangles, got %d", want, len(tris))
	}
	r2, _ := NewShapeRenderer(shapes)
	all, err := RenderAll(r2, nil)
	if err != nil || len(all) != want {
		t.Fatalf("RenderAll: got %d triangles, err=%v", len(all), err)
	}

	var stl bytes.Buffer
	n, err := WriteBinarySTL(&stl, tris)
	if err != nil {
		t.Fatal(err)
	}
	if n != stl.Len() || n != 84+50*want {
		t.Fatalf("want %d STL bytes, got %d (buffer %d)", 84+50*want, n, stl.Len())
	}
	if got := binary.LittleEndian.Uint32(stl.Bytes()[80:]); got != want {
		t.Errorf("STL header triangle count %d, want %d", got, want)
	}
}

func TestNewShapeRendererInvalid(t *testing.T) {
	if _, err := NewShapeRenderer(nil); err == nil {
		t.Error("expected error for no shapes")
	}
	if _, err := NewShapeRenderer([]glcity.Shape{nil}); err == nil {
		t.Error("expected error for nil shape")
	}
}

func TestDecodeAndFitTexture(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 16))
	for x := 0; x < 64; x++ {
		src.Set(x, 3, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	img, err := DecodeTexture(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != src.Bounds() {
		t.Fatalf("decoded bounds %v, want %v", img.Bounds(), src.Bounds())
	}
	if c := img.NRGBAAt(10, 3); c.R != 255 || c.A != 255 {
		t.Errorf("pixel not decoded, got %v", c)
	}
	fit, err := FitTexture(img, 32)
	if err != nil {
		t.Fatal(err)
	}
	if fit.Bounds().Dx() != 32 || fit.Bounds().Dy() != 8 {
		t.Errorf("want 32x8 texture, got %v", fit.Bounds())
	}
	same, _ := FitTexture(img, 64)
	if same != img {
		t.Error("texture that fits was resized")
	}
	if _, err := FitTexture(img, 0); err == nil {
		t.Error("expected error for zero maximum size")
	}
	if _, err := DecodeTexture(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("expected decode error")
	}
}

func TestFallbackTexture(t *testing.T) {
	img := FallbackTexture("building_wall.jpg", 128)
	if img.Bounds().Dx() != 128 || img.Bounds().Dy() != 128 {
		t.Fatalf("unexpected fallback size %v", img.Bounds())
	}
	if img.NRGBAAt(0, 0) != fallbackLight || img.NRGBAAt(16, 0) != fallbackDark {
		t.Error("fallback is not a checkerboard")
	}
	// The label is drawn in white around the vertical center.
	var labeled bool
	for x := 0; x < 128 && !labeled; x++ {
		for y := 48; y < 64; y++ {
			if c := img.NRGBAAt(x, y); c.G > 200 {
				labeled = true
				break
			}
		}
	}
	if !labeled {
		t.Error("fallback label not drawn")
	}
	unlabeled := FallbackTexture("", 1)
	if unlabeled.Bounds().Dx() != fallbackCells {
		t.Errorf("want minimum size %d, got %v", fallbackCells, unlabeled.Bounds())
	}
}
