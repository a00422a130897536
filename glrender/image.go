package glrender

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/golang/freetype/truetype"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp"
)

// DecodeTexture decodes a JPEG, PNG, BMP or WebP image into non-premultiplied RGBA,
// the pixel layout uploaded to the GPU. Row 0 is the top row of the image.
func DecodeTexture(r io.Reader) (*image.NRGBA, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("empty %s image", format)
	}
	return toNRGBA(img), nil
}

// FitTexture downsizes img so that neither side exceeds maxSize, preserving aspect ratio.
// Images that already fit are returned unchanged.
func FitTexture(img *image.NRGBA, maxSize int) (*image.NRGBA, error) {
	if maxSize <= 0 {
		return nil, errors.New("invalid maximum texture size")
	}
	bb := img.Bounds()
	w, h := bb.Dx(), bb.Dy()
	if w <= maxSize && h <= maxSize {
		return img, nil
	}
	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bb, draw.Src, nil)
	return dst, nil
}

var (
	fallbackDark  = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	fallbackLight = color.NRGBA{R: 200, G: 0, B: 200, A: 255}
)

const fallbackCells = 8

// FallbackTexture returns a size×size checkerboard with label written across it.
// It stands in for textures that could not be loaded so the scene still renders.
func FallbackTexture(label string, size int) *image.NRGBA {
	size = max(size, fallbackCells)
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	cell := size / fallbackCells
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := fallbackDark
			if (x/cell+y/cell)%2 == 0 {
				c = fallbackLight
			}
			img.SetNRGBA(x, y, c)
		}
	}
	if label != "" {
		drawLabel(img, label)
	}
	return img
}

func drawLabel(img *image.NRGBA, label string) {
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return // Go fonts are known good.
	}
	size := img.Bounds().Dx()
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    float64(size) / 12,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
	}
	width := d.MeasureString(label)
	margin := fixed.I(size / 16)
	x := (fixed.I(size) - width) / 2
	if x < margin {
		x = margin // Long labels are clipped on the right.
	}
	d.Dot = fixed.Point26_6{X: x, Y: fixed.I(size / 2)}
	d.DrawString(label)
}

func toNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Rect.Min == (image.Point{}) && nrgba.Stride == 4*nrgba.Rect.Dx() {
		return nrgba
	}
	bb := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bb.Dx(), bb.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bb.Min, draw.Src)
	return dst
}
