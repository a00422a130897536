//go:build tinygo || !cgo

package glcityaux

import (
	"errors"

	"github.com/soypat/glcity"
)

var errNoCGO = errors.New("require cgo for UI rendering")

// Scene is unavailable without cgo.
type Scene struct{}

func NewScene(city *City, cfg UIConfig) (*Scene, error) { return nil, errNoCGO }

func (sc *Scene) Draw(cam *glcity.Camera, aspect float32) error { return errNoCGO }
func (sc *Scene) Err() error                                    { return errNoCGO }
func (sc *Scene) Delete()                                       {}

func ui(city *City, cfg UIConfig) error {
	return errNoCGO
}
