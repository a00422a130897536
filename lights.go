package glcity

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glcity/glbuild"
)

// Phong light components shared by every light type.
type Phong struct {
	Ambient, Diffuse, Specular ms3.Vec
}

// Attenuation of a positional light with distance d: 1/(Constant + Linear*d + Quadratic*d²).
type Attenuation struct {
	Constant, Linear, Quadratic float32
}

// DirLight is a light infinitely far away, such as the sun.
type DirLight struct {
	Direction ms3.Vec
	Phong
}

// PointLight emits in every direction from Position.
type PointLight struct {
	Position ms3.Vec
	Phong
	Attenuation
}

// SpotLight is a flashlight attached to the camera. Cone angles are in degrees.
type SpotLight struct {
	Phong
	Attenuation
	CutOff, OuterCutOff float32
}

// Lighting is the full set of lights of a lit shader program.
type Lighting struct {
	Dir    DirLight
	Points []PointLight
	Spot   SpotLight
}

// DefaultLighting returns the city lighting: a bright overcast sky, a dim blue light
// above the stadium and a flashlight following the camera.
func DefaultLighting() Lighting {
	return Lighting{
		Dir: DirLight{
			Direction: ms3.Vec{X: -0.2, Y: -1, Z: -0.3},
			Phong: Phong{
				Ambient:  ms3.Vec{X: 0.75, Y: 0.75, Z: 0.75},
				Diffuse:  ms3.Vec{X: 0.4, Y: 0.4, Z: 0.4},
				Specular: ms3.Vec{X: 0.5, Y: 0.5, Z: 0.5},
			},
		},
		Points: []PointLight{{
			Position: ms3.Vec{Y: 7},
			Phong: Phong{
				Ambient:  ms3.Vec{X: 0.01, Y: 0.01, Z: 0.5},
				Diffuse:  ms3.Vec{X: 0.01, Y: 0.01, Z: 0.5},
				Specular: ms3.Vec{X: 0.01, Y: 0.01, Z: 0.5},
			},
			Attenuation: Attenuation{Constant: 0.003, Linear: 0.007, Quadratic: 0.0027},
		}},
		Spot: SpotLight{
			Phong: Phong{
				Diffuse:  ms3.Vec{X: 0.4, Y: 0.4, Z: 0.4},
				Specular: ms3.Vec{X: 0.4, Y: 0.4, Z: 0.4},
			},
			Attenuation: Attenuation{Constant: 0.5, Linear: 0.007, Quadratic: 0.011},
			CutOff:      12.5,
			OuterCutOff: 15,
		},
	}
}

// Apply sets every light uniform of u along with the camera uniforms. The spot light
// takes the camera position and direction.
func (l *Lighting) Apply(u Uniforms, cam *Camera, aspect float32) {
	cam.Apply(u, aspect)
	u.SetVec3("dirLight.direction", l.Dir.Direction)
	setPhong(u, "dirLight", -1, l.Dir.Phong)
	for i, p := range l.Points {
		u.SetVec3(glbuild.UniformName("pointLights", i, "position"), p.Position)
		setPhong(u, "pointLights", i, p.Phong)
		setAttenuation(u, "pointLights", i, p.Attenuation)
	}
	u.SetVec3("spotLight.position", cam.Position)
	u.SetVec3("spotLight.direction", cam.Front)
	setPhong(u, "spotLight", -1, l.Spot.Phong)
	setAttenuation(u, "spotLight", -1, l.Spot.Attenuation)
	u.SetFloat("spotLight.cutOff", math32.Cos(mgl32.DegToRad(l.Spot.CutOff)))
	u.SetFloat("spotLight.outerCutOff", math32.Cos(mgl32.DegToRad(l.Spot.OuterCutOff)))
}

func setPhong(u Uniforms, base string, idx int, p Phong) {
	u.SetVec3(glbuild.UniformName(base, idx, "ambient"), p.Ambient)
	u.SetVec3(glbuild.UniformName(base, idx, "diffuse"), p.Diffuse)
	u.SetVec3(glbuild.UniformName(base, idx, "specular"), p.Specular)
}

func setAttenuation(u Uniforms, base string, idx int, a Attenuation) {
	u.SetFloat(glbuild.UniformName(base, idx, "constant"), a.Constant)
	u.SetFloat(glbuild.UniformName(base, idx, "linear"), a.Linear)
	u.SetFloat(glbuild.UniformName(base, idx, "quadratic"), a.Quadratic)
}
