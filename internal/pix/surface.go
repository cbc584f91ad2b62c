// Package pix provides the pixel surface produced by rendering, the zoom and
// viewport geometry render requests are expressed in, and the rasterizers for
// raster images, SVG trees, and placeholder text cards.
package pix

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Surface is one rendered pixel buffer.
type Surface struct {
	RGBA *image.RGBA
}

// NewSurface allocates a surface of the given size, clamped to at least 1x1.
func NewSurface(width, height int) *Surface {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Surface{RGBA: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// FromImage converts any decoded image into a surface.
func FromImage(src image.Image) *Surface {
	if rgba, ok := src.(*image.RGBA); ok {
		return &Surface{RGBA: rgba}
	}
	bounds := src.Bounds()
	s := NewSurface(bounds.Dx(), bounds.Dy())
	xdraw.Draw(s.RGBA, s.RGBA.Bounds(), src, bounds.Min, xdraw.Src)
	return s
}

func (s *Surface) Width() int  { return s.RGBA.Bounds().Dx() }
func (s *Surface) Height() int { return s.RGBA.Bounds().Dy() }

// Fill paints the whole surface with a single color.
func (s *Surface) Fill(c color.Color) {
	xdraw.Draw(s.RGBA, s.RGBA.Bounds(), image.NewUniform(c), image.Point{}, xdraw.Src)
}

// Scaled resamples the surface to the given size with Catmull-Rom
// interpolation.
func (s *Surface) Scaled(width, height int) *Surface {
	out := NewSurface(width, height)
	xdraw.CatmullRom.Scale(out.RGBA, out.RGBA.Bounds(), s.RGBA, s.RGBA.Bounds(), xdraw.Src, nil)
	return out
}

// Paste copies src into s with its top-left corner at (x, y).
func (s *Surface) Paste(src *Surface, x, y int) {
	target := src.RGBA.Bounds().Add(image.Pt(x, y))
	xdraw.Draw(s.RGBA, target, src.RGBA, src.RGBA.Bounds().Min, xdraw.Over)
}

// DecodeBytes decodes a raster image held in memory. The registered formats
// cover png, jpeg, gif, webp, and bmp.
func DecodeBytes(data []byte) (*Surface, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return FromImage(img), nil
}

// DecodeFile decodes a raster image from disk.
func DecodeFile(path string) (*Surface, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return DecodeBytes(data)
}
