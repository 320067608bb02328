package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Frame holds the linear radiance of every pixel. Row 0 is the top of the image.
// Every stored color is finite and non-negative.
type Frame struct {
	Width  int
	Height int
	Pixels []core.Color // Row-major, Width*Height entries
}

// NewFrame creates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
	}
}

// At returns the color of pixel (x, y)
func (f *Frame) At(x, y int) core.Color {
	return f.Pixels[y*f.Width+x]
}

// Set stores the color of pixel (x, y), replacing non-finite values with black
func (f *Frame) Set(x, y int, c core.Color) {
	if !c.IsFinite() {
		c = core.Color{}
	}
	f.Pixels[y*f.Width+x] = c.Max(core.Color{})
}

// Row returns the pixels of row y
func (f *Frame) Row(y int) []core.Color {
	return f.Pixels[y*f.Width : (y+1)*f.Width]
}

// AverageLuminance returns the mean linear luminance over all pixels
func (f *Frame) AverageLuminance() float64 {
	if len(f.Pixels) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range f.Pixels {
		total += c.Luminance()
	}
	return total / float64(len(f.Pixels))
}

// toneMap converts linear radiance to an 8-bit color with the gamma-2 curve
func toneMap(c core.Color) color.RGBA {
	c = c.Sqrt().Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255.999 * c.X),
		G: uint8(255.999 * c.Y),
		B: uint8(255.999 * c.Z),
		A: 255,
	}
}

// ToRGBA tone maps the frame into an image
func (f *Frame) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, y, toneMap(f.At(x, y)))
		}
	}
	return img
}

// WritePNG encodes the tone mapped frame as PNG
func (f *Frame) WritePNG(w io.Writer) error {
	if err := png.Encode(w, f.ToRGBA()); err != nil {
		return fmt.Errorf("while encoding PNG: %w", err)
	}
	return nil
}

// WritePPM encodes the tone mapped frame as a plain-text (P3) PPM
func (f *Frame) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", f.Width, f.Height); err != nil {
		return fmt.Errorf("while writing PPM header: %w", err)
	}
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := toneMap(f.At(x, y))
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B); err != nil {
				return fmt.Errorf("while writing PPM pixel: %w", err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while flushing PPM: %w", err)
	}
	return nil
}

// Save writes the frame to path, choosing PNG or PPM by file extension
func (f *Frame) Save(path string) (err error) {
	var write func(io.Writer) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		write = f.WritePNG
	case ".ppm":
		write = f.WritePPM
	default:
		return fmt.Errorf("unsupported output format %q (want .png or .ppm)", ext)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("while creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("while creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("while closing %s: %w", path, closeErr)
		}
	}()

	return write(file)
}
