//go:build tinygo || !cgo

package glrender

import (
	"errors"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glcity"
	"github.com/soypat/glcity/glbuild"
)

var errNoCGO = errors.New("GPU rendering requires CGo and is not supported on TinyGo")

type Program struct{}

var _ glcity.Uniforms = (*Program)(nil)

func NewProgram(p *glbuild.Programmer, mat glbuild.Material) (*Program, error) {
	return nil, errNoCGO
}

func (p *Program) Use()                              {}
func (p *Program) SetMat4(name string, m mgl32.Mat4) {}
func (p *Program) SetVec3(name string, v ms3.Vec)    {}
func (p *Program) SetInt(name string, v int32)       {}
func (p *Program) SetFloat(name string, v float32)   {}
func (p *Program) Err() error                        { return errNoCGO }
func (p *Program) Delete()                           {}

type Shape struct{}

func NewShape(prog *Program, s glcity.Shape) (*Shape, error) {
	return nil, errNoCGO
}

func (sh *Shape) Draw() error { return errNoCGO }
func (sh *Shape) Delete()     {}

func LoadTexture(path string, maxSize int, logf func(format string, args ...any)) (uint32, error) {
	return 0, errNoCGO
}

func UploadTexture(img *image.NRGBA) (uint32, error) {
	return 0, errNoCGO
}

func BindTexture(unit int, tex uint32) {}

func DeleteTexture(tex uint32) {}
