// Package glcityaux assembles the city scene and provides helpers to view it in a
// window or export it as an STL file.
package glcityaux

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/soypat/glcity/glrender"
)

// RenderConfig configures [RenderSTL].
type RenderConfig struct {
	// STLOutput receives the binary STL of the city. Required. Writes are buffered
	// internally, pass an *os.File directly to have its name logged.
	STLOutput io.Writer
	// Silent disables progress output to stdout.
	Silent bool
}

// RenderSTL writes the world space triangles of every city shape to cfg.STLOutput.
// It does not require a GL context.
func RenderSTL(city *City, cfg RenderConfig) error {
	if cfg.STLOutput == nil {
		return errors.New("RenderSTL requires output parameter in config")
	} else if city == nil {
		return errors.New("nil city")
	}
	log := func(args ...any) {
		if !cfg.Silent {
			fmt.Println(args...)
		}
	}
	watch := stopwatch()
	renderer, err := glrender.NewShapeRenderer(city.Shapes())
	if err != nil {
		return err
	}
	triangles, err := glrender.RenderAll(renderer, nil)
	if err != nil {
		return fmt.Errorf("rendering triangles: %w", err)
	}
	bb := city.Bounds()
	log("rendered", len(triangles), "triangles in", watch(), "buildings span", bb.Size())

	watch = stopwatch()
	w := bufio.NewWriter(cfg.STLOutput)
	_, err = glrender.WriteBinarySTL(w, triangles)
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		return fmt.Errorf("writing STL file: %w", err)
	}
	log("wrote", outputName(cfg.STLOutput), "in", watch())
	return nil
}

// outputName returns the file name of w or "STL" when w is not a file.
func outputName(w io.Writer) string {
	if fp, ok := w.(*os.File); ok {
		return fp.Name()
	}
	return "STL"
}

// Default window parameters used for zero fields of [UIConfig].
const (
	DefaultWidth          = 800
	DefaultHeight         = 600
	DefaultTitle          = "glcity"
	DefaultMaxTextureSize = 4096
)

// Texture file names looked up in [UIConfig.AssetDir].
const (
	WallTexture    = "building_wall.jpg"
	RoofTexture    = "building_roof.jpg"
	StadiumTexture = "stadium.jpg"
)

// UIConfig configures the interactive viewer started by [UI].
type UIConfig struct {
	Width, Height int
	Title         string
	// AssetDir is the directory containing the texture files. Missing textures
	// are replaced by a labeled checkerboard.
	AssetDir string
	// MaxTextureSize limits the side length of uploaded textures; larger images are downsized.
	MaxTextureSize int
	// Context cancels the render loop when done. May be nil.
	Context context.Context
	Silent  bool
}

func (cfg *UIConfig) setDefaults() {
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}
	if cfg.AssetDir == "" {
		cfg.AssetDir = "."
	}
	if cfg.MaxTextureSize <= 0 {
		cfg.MaxTextureSize = DefaultMaxTextureSize
	}
}

// UI opens a window showing city with a first person camera until the window is closed
// or cfg.Context is done. It must be called from the main OS thread.
//
// Controls: WASD to move, Q and E to rise and descend, mouse to look, scroll to change
// speed, Z to toggle between perspective and orthographic projection, Esc to quit.
func UI(city *City, cfg UIConfig) error {
	if city == nil {
		return errors.New("nil city")
	}
	cfg.setDefaults()
	return ui(city, cfg)
}

func stopwatch() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
