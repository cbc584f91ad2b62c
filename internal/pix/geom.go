package pix

import "math"

// Rect is an axis-aligned rectangle in float64 coordinates. X1/Y1 are
// exclusive edges, so an empty rect has X1 <= X0 or Y1 <= Y0.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// NewRect builds a rect from an origin and a size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X0: x, Y0: y, X1: x + w, Y1: y + h}
}

func (r Rect) Width() float64  { return r.X1 - r.X0 }
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Empty reports whether the rect covers no area.
func (r Rect) Empty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

// Intersect clips r against other. The result may be empty.
func (r Rect) Intersect(other Rect) Rect {
	return Rect{
		X0: math.Max(r.X0, other.X0),
		Y0: math.Max(r.Y0, other.Y0),
		X1: math.Min(r.X1, other.X1),
		Y1: math.Min(r.Y1, other.Y1),
	}
}

// Translate shifts the rect by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X0: r.X0 + dx, Y0: r.Y0 + dy, X1: r.X1 + dx, Y1: r.Y1 + dy}
}

// Scale multiplies all edges by s.
func (r Rect) Scale(s float64) Rect {
	return Rect{X0: r.X0 * s, Y0: r.Y0 * s, X1: r.X1 * s, Y1: r.Y1 * s}
}

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// Zoom is the scale and pan state a render request was issued at. The image
// rect is the source content size; the visible region is the scaled image
// rect, offset into the viewport.
type Zoom struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
	Image   Size
}

// NewZoom returns an identity zoom over a content size.
func NewZoom(image Size) Zoom {
	return Zoom{Scale: 1, Image: image}
}

// ImageRect returns the scaled, offset content rectangle in viewport
// coordinates.
func (z Zoom) ImageRect() Rect {
	scale := z.Scale
	if scale <= 0 {
		scale = 1
	}
	return NewRect(z.OffsetX, z.OffsetY, z.Image.W*scale, z.Image.H*scale)
}

// Intersection clips the scaled content against the viewport. An empty result
// means there is nothing to render.
func (z Zoom) Intersection(viewport Rect) Rect {
	return z.ImageRect().Intersect(viewport)
}

// SurfaceSize returns the pixel dimensions needed for the given visible
// region, rounded up.
func SurfaceSize(region Rect) (int, int) {
	if region.Empty() {
		return 0, 0
	}
	return int(math.Ceil(region.Width())), int(math.Ceil(region.Height()))
}
