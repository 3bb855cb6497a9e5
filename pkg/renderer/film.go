package renderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/sdeu/go-rt/pkg/core"
)

// ImageWriter persists a finished image
type ImageWriter interface {
	WriteImage(img image.Image) error
}

// Film is the output pixel buffer. Only the collector writes to it.
type Film struct {
	Width  int
	Height int
	Gamma  float64
	image  *image.RGBA
}

// NewFilm creates an empty film
func NewFilm(width, height int, gamma float64) *Film {
	return &Film{
		Width:  width,
		Height: height,
		Gamma:  gamma,
		image:  image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// ToneMap converts a linear color to 8-bit RGBA with clamping and gamma correction
func ToneMap(colorVec core.Vec3, gamma float64) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0).GammaCorrect(gamma)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

// SetRow tone maps an averaged scanline into row y
func (f *Film) SetRow(y int, row []core.Vec3) {
	for x := 0; x < f.Width && x < len(row); x++ {
		f.image.SetRGBA(x, y, ToneMap(row[x], f.Gamma))
	}
}

// Image returns the pixel buffer
func (f *Film) Image() *image.RGBA {
	return f.image
}

// Save hands the pixel buffer to writer
func (f *Film) Save(writer ImageWriter) error {
	if err := writer.WriteImage(f.image); err != nil {
		return fmt.Errorf("error saving image: %w", err)
	}
	return nil
}
