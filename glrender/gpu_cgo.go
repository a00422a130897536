//go:build !tinygo && cgo

package glrender

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"runtime"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glcity"
	"github.com/soypat/glcity/glbuild"
	"github.com/soypat/glgl/v4.1-core/glgl"
)

// Program is a compiled lit shader program. It implements [glcity.Uniforms],
// caching uniform locations by name.
type Program struct {
	prog glgl.Program
	locs map[string]int32
	errs []error
}

var _ glcity.Uniforms = (*Program)(nil)

// NewProgram compiles the vertex and fragment shaders generated by p for the given material.
// A GL context must be current.
func NewProgram(p *glbuild.Programmer, mat glbuild.Material) (*Program, error) {
	var vert, frag bytes.Buffer
	_, err := p.WriteVertex(&vert)
	if err != nil {
		return nil, err
	}
	_, err = p.WriteFragment(&frag, mat)
	if err != nil {
		return nil, err
	}
	vert.WriteByte(0)
	frag.WriteByte(0)
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   vert.String(),
		Fragment: frag.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("%s program:\n%s\n\n%w", mat, frag.String(), err)
	}
	return &Program{prog: prog, locs: make(map[string]int32)}, nil
}

// Use binds the program.
func (p *Program) Use() { p.prog.Bind() }

// SetMat4 sets a mat4 uniform of the bound program.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	if loc, ok := p.location(name); ok {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

// SetVec3 sets a vec3 uniform of the bound program.
func (p *Program) SetVec3(name string, v ms3.Vec) {
	if loc, ok := p.location(name); ok {
		gl.Uniform3f(loc, v.X, v.Y, v.Z)
	}
}

// SetInt sets an int or sampler uniform of the bound program.
func (p *Program) SetInt(name string, v int32) {
	if loc, ok := p.location(name); ok {
		gl.Uniform1i(loc, v)
	}
}

// SetFloat sets a float uniform of the bound program.
func (p *Program) SetFloat(name string, v float32) {
	if loc, ok := p.location(name); ok {
		gl.Uniform1f(loc, v)
	}
}

// Err returns the accumulated errors of uniforms that could not be found in the program.
// Each missing name is reported once.
func (p *Program) Err() error { return errors.Join(p.errs...) }

// Delete releases the GL program. The Program must not be used afterwards.
func (p *Program) Delete() {
	p.prog.Delete()
	clear(p.locs)
}

func (p *Program) location(name string) (int32, bool) {
	loc, ok := p.locs[name]
	if ok {
		return loc, loc >= 0
	}
	loc, err := p.prog.UniformLocation(name + "\x00")
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("uniform %q: %w", name, err))
		loc = -1
	}
	p.locs[name] = loc
	return loc, loc >= 0
}

// Shape is a [glcity.Shape] uploaded to the GPU. It owns its vertex array and buffers
// and borrows the Program it is drawn with, which must outlive it.
type Shape struct {
	prog    *Program
	model   mgl32.Mat4
	steps   []glcity.DrawStep
	mode    uint32
	indexed bool
	restart bool
	// clockwise is set when front faces wind clockwise.
	clockwise bool
	// restartIndex is the primitive restart sentinel of indexed strips.
	restartIndex uint32
	vao, vbo     uint32
	ebo          uint32
}

// NewShape uploads the mesh of s to the GPU. A GL context must be current.
func NewShape(prog *Program, s glcity.Shape) (*Shape, error) {
	if prog == nil {
		return nil, errors.New("nil program")
	}
	m := s.Mesh()
	if len(m.Vertices) == 0 {
		return nil, fmt.Errorf("%T has empty mesh", s)
	}
	sh := &Shape{
		prog:         prog,
		model:        s.Transform().Model(),
		steps:        s.DrawSteps(),
		indexed:      m.Indexed(),
		restart:      m.PrimitiveRestart,
		restartIndex: m.RestartIndex,
		clockwise:    m.FrontFace == glcity.Clockwise,
	}
	switch m.Primitive {
	case glcity.Triangles:
		sh.mode = gl.TRIANGLES
	case glcity.TriangleStrip:
		sh.mode = gl.TRIANGLE_STRIP
	default:
		return nil, fmt.Errorf("unsupported %s", m.Primitive)
	}
	var p runtime.Pinner
	p.Pin(sh)
	defer p.Unpin()

	gl.GenVertexArrays(1, &sh.vao)
	if sh.vao == 0 {
		return nil, glErrOrMessage("zero vertex array id")
	}
	gl.BindVertexArray(sh.vao)
	defer gl.BindVertexArray(0)

	gl.GenBuffers(1, &sh.vbo)
	if sh.vbo == 0 {
		sh.Delete()
		return nil, glErrOrMessage("zero vertex buffer id")
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, sh.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*glcity.VertexSize, unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)
	if sh.indexed {
		gl.GenBuffers(1, &sh.ebo)
		if sh.ebo == 0 {
			sh.Delete()
			return nil, glErrOrMessage("zero element buffer id")
		}
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, sh.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 4*len(m.Indices), unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)
	}
	stride := int32(glcity.VertexSize)
	gl.VertexAttribPointer(glbuild.AttribPosition, 3, gl.FLOAT, false, stride, gl.PtrOffset(glcity.PositionOffset))
	gl.EnableVertexAttribArray(glbuild.AttribPosition)
	gl.VertexAttribPointer(glbuild.AttribNormal, 3, gl.FLOAT, false, stride, gl.PtrOffset(glcity.NormalOffset))
	gl.EnableVertexAttribArray(glbuild.AttribNormal)
	gl.VertexAttribPointer(glbuild.AttribTexCoord, 2, gl.FLOAT, false, stride, gl.PtrOffset(glcity.TexCoordOffset))
	gl.EnableVertexAttribArray(glbuild.AttribTexCoord)
	if err := glgl.Err(); err != nil {
		sh.Delete()
		return nil, fmt.Errorf("uploading %T mesh: %w", s, err)
	}
	return sh, nil
}

// Draw binds the shape's program, sets its "model" uniform and issues the shape's draw
// steps. The caller must have set view, projection, lights and material beforehand.
func (sh *Shape) Draw() error {
	if sh.vao == 0 {
		return errors.New("draw of deleted shape")
	}
	sh.prog.Use()
	sh.prog.SetMat4("model", sh.model)
	gl.BindVertexArray(sh.vao)
	if sh.clockwise {
		gl.FrontFace(gl.CW)
	}
	if sh.restart {
		gl.Enable(gl.PRIMITIVE_RESTART)
		gl.PrimitiveRestartIndex(sh.restartIndex)
	}
	for _, step := range sh.steps {
		if step.Sampler != glcity.KeepSampler {
			sh.prog.SetInt("material.diffuse", int32(step.Sampler))
			sh.prog.SetInt("material.specular", int32(step.Sampler))
		}
		if sh.indexed {
			gl.DrawElements(sh.mode, int32(step.Count), gl.UNSIGNED_INT, gl.PtrOffset(4*step.First))
		} else {
			gl.DrawArrays(sh.mode, int32(step.First), int32(step.Count))
		}
	}
	if sh.restart {
		gl.Disable(gl.PRIMITIVE_RESTART)
	}
	if sh.clockwise {
		gl.FrontFace(gl.CCW)
	}
	gl.BindVertexArray(0)
	return glgl.Err()
}

// Delete releases the shape's GPU objects. It is safe to call more than once.
func (sh *Shape) Delete() {
	var p runtime.Pinner
	p.Pin(sh)
	defer p.Unpin()
	if sh.ebo != 0 {
		gl.DeleteBuffers(1, &sh.ebo)
		sh.ebo = 0
	}
	if sh.vbo != 0 {
		gl.DeleteBuffers(1, &sh.vbo)
		sh.vbo = 0
	}
	if sh.vao != 0 {
		gl.DeleteVertexArrays(1, &sh.vao)
		sh.vao = 0
	}
}

// LoadTexture reads and uploads the image at path as a repeating, mipmapped 2D texture,
// downsized to fit maxSize. If the file cannot be read or decoded the failure is reported
// to logf and a labeled checkerboard is uploaded in its place. An error is returned only
// when the GPU upload itself fails.
func LoadTexture(path string, maxSize int, logf func(format string, args ...any)) (uint32, error) {
	img, err := readTexture(path, maxSize)
	if err != nil {
		if logf != nil {
			logf("texture %s failed to load, using fallback: %v", path, err)
		}
		img = FallbackTexture(path, min(maxSize, 256))
	}
	return UploadTexture(img)
}

func readTexture(path string, maxSize int) (*image.NRGBA, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	img, err := DecodeTexture(fp)
	if err != nil {
		return nil, err
	}
	return FitTexture(img, maxSize)
}

// UploadTexture uploads img as a repeating, mipmapped 2D texture and returns its id.
func UploadTexture(img *image.NRGBA) (uint32, error) {
	bb := img.Bounds()
	if bb.Empty() {
		return 0, errors.New("empty texture image")
	}
	img = toNRGBA(img) // Upload requires contiguous rows starting at the origin.
	var tex uint32
	gl.GenTextures(1, &tex)
	if tex == 0 {
		return 0, glErrOrMessage("zero texture id")
	}
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(bb.Dx()), int32(bb.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if err := glgl.Err(); err != nil {
		gl.DeleteTextures(1, &tex)
		return 0, fmt.Errorf("uploading texture: %w", err)
	}
	return tex, nil
}

// BindTexture binds tex to the given texture unit.
func BindTexture(unit int, tex uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, tex)
}

// DeleteTexture releases a texture created by [LoadTexture] or [UploadTexture].
func DeleteTexture(tex uint32) {
	if tex != 0 {
		gl.DeleteTextures(1, &tex)
	}
}

func glErrOrMessage(defaultMsg string) (err error) {
	err = glgl.Err()
	if err == nil {
		err = errors.New(defaultMsg)
	} else {
		err = fmt.Errorf("%s: %w", defaultMsg, err)
	}
	return err
}
