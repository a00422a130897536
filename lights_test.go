package glcity

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

func TestLightingApply(t *testing.T) {
	lights := DefaultLighting()
	cam := NewCamera(ms3.Vec{Y: 15, Z: 35})
	u := newUniformRecorder()
	lights.Apply(u, cam, 1)

	wantVec := map[string]ms3.Vec{
		"dirLight.direction":      {X: -0.2, Y: -1, Z: -0.3},
		"dirLight.ambient":        {X: 0.75, Y: 0.75, Z: 0.75},
		"pointLights[0].position": {Y: 7},
		"pointLights[0].diffuse":  {X: 0.01, Y: 0.01, Z: 0.5},
		"spotLight.position":      cam.Position,
		"spotLight.direction":     cam.Front,
		"spotLight.ambient":       {},
		"viewPos":                 cam.Position,
	}
	for name, want := range wantVec {
		got, ok := u.vec3[name]
		if !ok {
			t.Errorf("%s not set", name)
		} else if got != want {
			t.Errorf("%s: want %v, got %v", name, want, got)
		}
	}
	wantFloat := map[string]float32{
		"pointLights[0].constant":  0.003,
		"pointLights[0].quadratic": 0.0027,
		"spotLight.linear":         0.007,
		"spotLight.cutOff":         math32.Cos(12.5 * math32.Pi / 180),
		"spotLight.outerCutOff":    math32.Cos(15 * math32.Pi / 180),
	}
	for name, want := range wantFloat {
		got, ok := u.floats[name]
		if !ok {
			t.Errorf("%s not set", name)
		} else if math32.Abs(got-want) > 1e-6 {
			t.Errorf("%s: want %v, got %v", name, want, got)
		}
	}
	if _, ok := u.mat4["projection"]; !ok {
		t.Error("camera uniforms not applied")
	}
	// Inner cone must be narrower than the outer cone.
	if u.floats["spotLight.cutOff"] <= u.floats["spotLight.outerCutOff"] {
		t.Error("spot light cone cosines out of order")
	}
}

func TestLightingMultiplePoints(t *testing.T) {
	lights := DefaultLighting()
	lights.Points = append(lights.Points, PointLight{Position: ms3.Vec{X: 3}})
	u := newUniformRecorder()
	lights.Apply(u, NewCamera(ms3.Vec{}), 1)
	if u.vec3["pointLights[1].position"] != (ms3.Vec{X: 3}) {
		t.Error("second point light not set")
	}
	if _, ok := u.floats["pointLights[1].linear"]; !ok {
		t.Error("second point light attenuation not set")
	}
}
