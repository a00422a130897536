//go:build !tinygo && cgo

package glcityaux

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glcity"
)

// startPosition is where the camera is placed when the window opens, looking down -Z at the city.
var startPosition = ms3.Vec{Y: 15, Z: 35}

var movementKeys = [...]struct {
	key glfw.Key
	dir glcity.Movement
}{
	{glfw.KeyW, glcity.Forward},
	{glfw.KeyS, glcity.Backward},
	{glfw.KeyA, glcity.Left},
	{glfw.KeyD, glcity.Right},
	{glfw.KeyQ, glcity.Upward},
	{glfw.KeyE, glcity.Downward},
}

func ui(city *City, cfg UIConfig) error {
	log := func(args ...any) {
		if !cfg.Silent {
			fmt.Println(args...)
		}
	}
	window, term, err := startGLFW(cfg.Width, cfg.Height, cfg.Title)
	if err != nil {
		return err
	}
	defer term()
	log("OpenGL", gl.GoStr(gl.GetString(gl.VERSION)))

	watch := stopwatch()
	scene, err := NewScene(city, cfg)
	if err != nil {
		return err
	}
	defer scene.Delete()
	log("scene ready in", watch())

	gl.Enable(gl.DEPTH_TEST)
	fbWidth, fbHeight := window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		fbWidth, fbHeight = width, height
		gl.Viewport(0, 0, int32(width), int32(height))
	})

	cam := glcity.NewCamera(startPosition)
	var (
		lastMouseX     float64
		lastMouseY     float64
		firstMouseMove = true
	)
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	window.SetCursorPosCallback(func(w *glfw.Window, xpos float64, ypos float64) {
		if firstMouseMove {
			lastMouseX = xpos
			lastMouseY = ypos
			firstMouseMove = false
		}
		// Screen Y grows downwards.
		cam.Look(float32(xpos-lastMouseX), float32(lastMouseY-ypos))
		lastMouseX = xpos
		lastMouseY = ypos
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		cam.AdjustSpeed(float32(yoff))
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyZ:
			cam.ToggleProjection()
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		}
	})

	// Main render loop
	previousTime := glfw.GetTime()
	ctx := cfg.Context
	firstFrame := true
	for !window.ShouldClose() {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		currentTime := glfw.GetTime()
		elapsedTime := float32(currentTime - previousTime)
		previousTime = currentTime
		for _, mk := range movementKeys {
			if window.GetKey(mk.key) == glfw.Press {
				cam.Move(mk.dir, elapsedTime)
			}
		}

		if fbWidth <= 0 || fbHeight <= 0 {
			// Minimized.
			time.Sleep(time.Second / 30)
			glfw.PollEvents()
			continue
		}
		gl.ClearColor(0.1, 0.1, 0.1, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		err = scene.Draw(cam, float32(fbWidth)/float32(fbHeight))
		if err != nil {
			return err
		}
		if firstFrame {
			firstFrame = false
			if err := scene.Err(); err != nil {
				log("uniform warnings:", err)
			}
		}
		window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

func startGLFW(width, height int, title string) (window *glfw.Window, term func(), err error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("initializing GLFW: %w", err)
	}

	// Create GLFW window
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err = glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("creating GLFW window: %w", err)
	}
	window.MakeContextCurrent()

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	return window, glfw.Terminate, nil
}
