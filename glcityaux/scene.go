//go:build !tinygo && cgo

package glcityaux

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glcity"
	"github.com/soypat/glcity/glbuild"
	"github.com/soypat/glcity/glrender"
)

// Material colors of the untextured shapes.
var (
	groundColor  = ms3.Vec{X: 0.21, Y: 0.21, Z: 0.21}
	pyramidColor = ms3.Vec{X: 0.25}
)

const shininess = 32

// Texture units used by the textured program.
const (
	wallUnit    = 0
	stadiumUnit = 0
)

// Scene owns the GPU resources needed to draw a [City]: two shader programs, the
// building textures and one uploaded shape per city shape.
type Scene struct {
	lights   glcity.Lighting
	textured *glrender.Program
	colored  *glrender.Program

	wallTex, roofTex, stadiumTex uint32

	ground, pyramid                 *glrender.Shape
	businessCentre, businessCentre2 *glrender.Shape
	tower1, tower2                  *glrender.Shape
	stadiumBottom, stadiumTop       *glrender.Shape
	// shapes lists every uploaded shape in construction order.
	shapes []*glrender.Shape
}

// NewScene compiles the shader programs, uploads every shape of city and loads the
// textures from cfg.AssetDir. A GL context must be current. Textures that fail to load
// are replaced with a fallback image; any other failure aborts and releases what was created.
func NewScene(city *City, cfg UIConfig) (_ *Scene, err error) {
	if city == nil {
		return nil, errors.New("nil city")
	}
	cfg.setDefaults()
	logf := func(format string, args ...any) {
		if !cfg.Silent {
			fmt.Printf(format+"\n", args...)
		}
	}
	sc := &Scene{lights: glcity.DefaultLighting()}
	defer func() {
		if err != nil {
			sc.Delete()
		}
	}()

	programmer := glbuild.NewDefaultProgrammer()
	programmer.PointLights = len(sc.lights.Points)
	sc.textured, err = glrender.NewProgram(programmer, glbuild.MaterialTexture)
	if err != nil {
		return nil, err
	}
	sc.colored, err = glrender.NewProgram(programmer, glbuild.MaterialColor)
	if err != nil {
		return nil, err
	}

	var errs []error
	upload := func(prog *glrender.Program, s glcity.Shape) *glrender.Shape {
		sh, err := glrender.NewShape(prog, s)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		sc.shapes = append(sc.shapes, sh)
		return sh
	}
	sc.ground = upload(sc.colored, city.Ground)
	sc.pyramid = upload(sc.colored, city.PyramidTower1)
	sc.businessCentre = upload(sc.textured, city.BusinessCentre)
	sc.businessCentre2 = upload(sc.textured, city.BusinessCentre2)
	sc.tower1 = upload(sc.textured, city.Tower1)
	sc.tower2 = upload(sc.textured, city.Tower2)
	sc.stadiumBottom = upload(sc.textured, city.StadiumBottom)
	sc.stadiumTop = upload(sc.textured, city.StadiumTop)
	if err = errors.Join(errs...); err != nil {
		return nil, err
	}

	load := func(name string) uint32 {
		tex, err := glrender.LoadTexture(filepath.Join(cfg.AssetDir, name), cfg.MaxTextureSize, logf)
		if err != nil {
			errs = append(errs, err)
		}
		return tex
	}
	sc.wallTex = load(WallTexture)
	sc.roofTex = load(RoofTexture)
	sc.stadiumTex = load(StadiumTexture)
	if err = errors.Join(errs...); err != nil {
		return nil, err
	}
	return sc, nil
}

// Draw renders the city as seen by cam. Untextured shapes are drawn first, then the
// buildings with the wall texture on unit 0 and the roof texture on unit 1, then the
// stadium whose base is fully roof textured and whose ring uses the stadium texture.
func (sc *Scene) Draw(cam *glcity.Camera, aspect float32) error {
	var errs []error
	draw := func(sh *glrender.Shape) {
		if err := sh.Draw(); err != nil {
			errs = append(errs, err)
		}
	}

	sc.lights.Apply(sc.colored, cam, aspect)
	sc.colored.SetFloat("material.shininess", shininess)
	setColor(sc.colored, groundColor)
	draw(sc.ground)
	setColor(sc.colored, pyramidColor)
	draw(sc.pyramid)

	glrender.BindTexture(wallUnit, sc.wallTex)
	glrender.BindTexture(glcity.RoofTextureUnit, sc.roofTex)
	sc.lights.Apply(sc.textured, cam, aspect)
	sc.textured.SetFloat("material.shininess", shininess)
	for _, building := range []*glrender.Shape{sc.businessCentre, sc.businessCentre2, sc.tower1, sc.tower2} {
		setSampler(sc.textured, wallUnit)
		draw(building)
	}
	setSampler(sc.textured, glcity.RoofTextureUnit)
	draw(sc.stadiumBottom)

	glrender.BindTexture(stadiumUnit, sc.stadiumTex)
	setSampler(sc.textured, stadiumUnit)
	draw(sc.stadiumTop)
	return errors.Join(errs...)
}

// Err returns uniform lookup failures accumulated by both programs while drawing.
func (sc *Scene) Err() error {
	return errors.Join(sc.textured.Err(), sc.colored.Err())
}

// Delete releases every GPU resource of the scene in reverse construction order.
// Shapes are released before the programs they borrow.
func (sc *Scene) Delete() {
	for i := len(sc.shapes) - 1; i >= 0; i-- {
		sc.shapes[i].Delete()
	}
	sc.shapes = nil
	for _, tex := range []*uint32{&sc.stadiumTex, &sc.roofTex, &sc.wallTex} {
		glrender.DeleteTexture(*tex)
		*tex = 0
	}
	if sc.colored != nil {
		sc.colored.Delete()
		sc.colored = nil
	}
	if sc.textured != nil {
		sc.textured.Delete()
		sc.textured = nil
	}
}

func setColor(u glcity.Uniforms, c ms3.Vec) {
	u.SetVec3("material.diffuse", c)
	u.SetVec3("material.specular", c)
}

func setSampler(u glcity.Uniforms, unit int32) {
	u.SetInt("material.diffuse", unit)
	u.SetInt("material.specular", unit)
}
