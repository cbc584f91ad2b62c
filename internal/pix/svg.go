package pix

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// ParseSVG parses an SVG document (gzip-compressed for .svgz) into the vector
// tree handed to the render worker.
func ParseSVG(name string, data []byte) (*oksvg.SvgIcon, error) {
	var r io.Reader = bytes.NewReader(data)
	if strings.HasSuffix(strings.ToLower(name), ".svgz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("svgz: %w", err)
		}
		defer gz.Close()
		r = gz
	}
	icon, err := oksvg.ReadIconStream(r, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	return icon, nil
}

// RenderSVG rasterizes the visible part of a vector tree at the requested
// zoom. A degenerate visible region yields no surface.
func RenderSVG(zoom Zoom, viewport Rect, icon *oksvg.SvgIcon) (*Surface, bool) {
	if icon == nil {
		return nil, false
	}
	region := zoom.Intersection(viewport)
	width, height := SurfaceSize(region)
	if width <= 0 || height <= 0 {
		return nil, false
	}

	s := NewSurface(width, height)
	scale := zoom.Scale
	if scale <= 0 {
		scale = 1
	}

	// Position the scaled tree so the visible region lands at the surface
	// origin.
	rect := zoom.ImageRect()
	icon.SetTarget(rect.X0-region.X0, rect.Y0-region.Y0, zoom.Image.W*scale, zoom.Image.H*scale)

	scanner := rasterx.NewScannerGV(width, height, s.RGBA, s.RGBA.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)
	return s, true
}
