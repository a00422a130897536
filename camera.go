package glcity

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
)

// Uniforms sets values on a shader program by uniform name. Names may be
// struct and array paths such as "pointLights[0].diffuse". Implementations
// ignore names the program does not declare.
type Uniforms interface {
	// Use makes the program current. Uniform setters apply to the current program.
	Use()
	SetMat4(name string, m mgl32.Mat4)
	SetVec3(name string, v ms3.Vec)
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
}

// Movement is a camera translation direction.
type Movement uint8

const (
	Forward Movement = iota
	Backward
	Left
	Right
	Upward
	Downward
)

// Camera defaults.
const (
	defaultYaw         = -90
	defaultPitch       = 0
	defaultSpeed       = 2
	defaultSensitivity = 0.1
	defaultZoom        = 45
	minSpeed           = 0.5
	maxPitch           = 89
)

// Clip planes of the two projection modes.
const (
	perspectiveNear = 0.1
	perspectiveFar  = 100
	orthoHalfExtent = 10
	orthoNear       = 0.01
	orthoFar        = 100
)

// Camera is a first person fly camera using Euler angles.
type Camera struct {
	Position ms3.Vec
	Front    ms3.Vec
	Up       ms3.Vec
	Right    ms3.Vec
	WorldUp  ms3.Vec
	// Yaw and Pitch in degrees. Yaw of -90 looks down the negative Z axis.
	Yaw, Pitch float32
	// MovementSpeed is in world units per second.
	MovementSpeed    float32
	MouseSensitivity float32
	// Zoom is the vertical field of view in degrees.
	Zoom float32
	// Perspective selects a perspective projection, otherwise orthographic.
	Perspective bool
}

// NewCamera returns a camera at position looking down the negative Z axis.
func NewCamera(position ms3.Vec) *Camera {
	c := &Camera{
		Position:         position,
		WorldUp:          ms3.Vec{Y: 1},
		Yaw:              defaultYaw,
		Pitch:            defaultPitch,
		MovementSpeed:    defaultSpeed,
		MouseSensitivity: defaultSensitivity,
		Zoom:             defaultZoom,
		Perspective:      true,
	}
	c.updateVectors()
	return c
}

// Move translates the camera in direction dir for dt seconds.
func (c *Camera) Move(dir Movement, dt float32) {
	velocity := c.MovementSpeed * dt
	var delta ms3.Vec
	switch dir {
	case Forward:
		delta = c.Front
	case Backward:
		delta = ms3.Scale(-1, c.Front)
	case Left:
		delta = ms3.Scale(-1, c.Right)
	case Right:
		delta = c.Right
	case Upward:
		delta = c.WorldUp
	case Downward:
		delta = ms3.Scale(-1, c.WorldUp)
	}
	c.Position = ms3.Add(c.Position, ms3.Scale(velocity, delta))
}

// Look rotates the camera by a mouse offset in screen units.
// Pitch is kept within ±89 degrees so the view never flips.
func (c *Camera) Look(xoffset, yoffset float32) {
	c.Yaw += xoffset * c.MouseSensitivity
	c.Pitch += yoffset * c.MouseSensitivity
	c.Pitch = math32.Max(-maxPitch, math32.Min(maxPitch, c.Pitch))
	c.updateVectors()
}

// AdjustSpeed adds delta to the movement speed, which never drops below 0.5.
func (c *Camera) AdjustSpeed(delta float32) {
	c.MovementSpeed = math32.Max(minSpeed, c.MovementSpeed+delta)
}

// ToggleProjection switches between perspective and orthographic projection.
func (c *Camera) ToggleProjection() { c.Perspective = !c.Perspective }

// ViewMatrix returns the world to view space transform.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	eye := vec3(c.Position)
	return mgl32.LookAtV(eye, eye.Add(vec3(c.Front)), vec3(c.Up))
}

// ProjectionMatrix returns the view to clip space transform for the given aspect ratio.
func (c *Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if c.Perspective {
		return mgl32.Perspective(mgl32.DegToRad(c.Zoom), aspect, perspectiveNear, perspectiveFar)
	}
	return mgl32.Ortho(-orthoHalfExtent, orthoHalfExtent, -orthoHalfExtent, orthoHalfExtent, orthoNear, orthoFar)
}

// Apply sets the "projection", "view" and "viewPos" uniforms of u.
func (c *Camera) Apply(u Uniforms, aspect float32) {
	u.Use()
	u.SetVec3("viewPos", c.Position)
	u.SetMat4("projection", c.ProjectionMatrix(aspect))
	u.SetMat4("view", c.ViewMatrix())
}

func (c *Camera) updateVectors() {
	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)
	front := ms3.Vec{
		X: math32.Cos(yaw) * math32.Cos(pitch),
		Y: math32.Sin(pitch),
		Z: math32.Sin(yaw) * math32.Cos(pitch),
	}
	c.Front = ms3.Unit(front)
	c.Right = ms3.Unit(ms3.Cross(c.Front, c.WorldUp))
	c.Up = ms3.Unit(ms3.Cross(c.Right, c.Front))
}

func vec3(v ms3.Vec) mgl32.Vec3 { return mgl32.Vec3{v.X, v.Y, v.Z} }
