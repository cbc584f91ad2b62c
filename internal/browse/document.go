package browse

import (
	"fmt"
	"os"
	"time"

	"github.com/gen2brain/go-fitz"

	"loupe/internal/category"
	"loupe/internal/doc"
	"loupe/internal/logging"
	"loupe/internal/pix"
)

const baseDocDPI = 72.0

// documentBackend lists a pdf/epub document as one row per page, addressed
// by page index. A document that fails to open keeps a single placeholder
// row carrying the failure, so the error surfaces as content rather than
// aborting navigation.
type documentBackend struct {
	parentSlot
	fixedOrder
	path     string
	document *fitz.Document
	openErr  error
	rows     []Row
	lastPage int
}

func newDocumentBackend(path string) *documentBackend {
	b := &documentBackend{path: path}
	b.document, b.openErr = fitz.New(path)
	if b.openErr != nil {
		logging.Error(b.openErr)
		b.rows = []Row{NewRow(category.Unsupported, "document unavailable", 0, time.Now())}
		return b
	}
	modified := time.Now()
	if info, err := os.Stat(path); err == nil {
		modified = info.ModTime()
	}
	pages := b.document.NumPage()
	b.lastPage = pages - 1
	b.rows = make([]Row, 0, pages)
	for i := 0; i < pages; i++ {
		name := fmt.Sprintf("Page %d", i+1)
		b.rows = append(b.rows, NewIndexRow(category.Image, name, 0, modified, uint64(i)))
	}
	return b
}

// Close releases the native document handle. Safe to call more than once;
// Discard reaches it when the backend drops out of the navigation chain.
func (d *documentBackend) Close() {
	if d.document == nil {
		return
	}
	if err := d.document.Close(); err != nil {
		logging.Error(err)
	}
	d.document = nil
}

func (d *documentBackend) Kind() Kind      { return KindDocument }
func (d *documentBackend) Path() string    { return d.path }
func (d *documentBackend) List() []Row     { return d.rows }
func (d *documentBackend) Ref() BackendRef { return BackendRef{Kind: KindDocument, Path: d.path} }

func (d *documentBackend) ItemRef(c Cursor) ItemRef { return IndexRef(c.Row.Index) }

func (d *documentBackend) Enter(Cursor) (Backend, bool) { return nil, false }

func (d *documentBackend) Leave() (Backend, Target, bool) {
	if parent, target, ok := d.take(); ok {
		return parent, target, true
	}
	return leaveToDir(d.path)
}

// Image reports the page unit and its size; the pixels arrive later through
// the render worker.
func (d *documentBackend) Image(c Cursor, p ImageParams) Content {
	ref := MakeReference(d, c)
	if d.openErr != nil {
		return Content{Ref: ref, Surface: pix.TextCard("document", d.openErr.Error(), pix.ErrorCardColors())}
	}
	size, err := d.unitSize(int(c.Row.Index), p.Mode)
	if err != nil {
		logging.Error(err)
		return Content{Ref: ref, Surface: pix.TextCard("document", err.Error(), pix.ErrorCardColors())}
	}
	return Content{Ref: ref, Doc: &DocContent{Mode: p.Mode, Size: size}}
}

// unitSize computes the unscaled size of the render unit containing the
// page. The right page of a dual unit is scaled to the left page's height.
func (d *documentBackend) unitSize(index int, mode doc.PageMode) (pix.Size, error) {
	unit := doc.PagesFor(index, d.lastPage, mode)
	left, err := d.pageSize(unit.Left)
	if err != nil {
		return pix.Size{}, err
	}
	if !unit.Dual {
		return left, nil
	}
	right, err := d.pageSize(unit.Left + 1)
	if err != nil {
		return pix.Size{}, err
	}
	return dualUnitSize(left, right), nil
}

// dualUnitSize combines two page sizes side by side, scaling the right page
// to the left page's height. A degenerate right page contributes nothing.
func dualUnitSize(left, right pix.Size) pix.Size {
	if right.H <= 0 {
		return left
	}
	scale := left.H / right.H
	return pix.Size{W: left.W + right.W*scale, H: left.H}
}

func (d *documentBackend) pageSize(page int) (pix.Size, error) {
	bounds, err := d.document.Bound(page)
	if err != nil {
		return pix.Size{}, fmt.Errorf("page %d bounds: %w", page, err)
	}
	return pix.Size{W: float64(bounds.Dx()), H: float64(bounds.Dy())}, nil
}

// Render rasterizes the visible part of the page unit at the requested zoom.
func (d *documentBackend) Render(item ItemRef, mode doc.PageMode, zoom pix.Zoom, viewport pix.Rect) (*pix.Surface, bool) {
	if d.openErr != nil || !item.ByIndex {
		return nil, false
	}
	region := zoom.Intersection(viewport)
	width, height := pix.SurfaceSize(region)
	if width <= 0 || height <= 0 {
		return nil, false
	}

	unit := doc.PagesFor(int(item.Index), d.lastPage, mode)
	scale := zoom.Scale
	if scale <= 0 {
		scale = 1
	}

	composed, err := d.renderUnit(unit, scale)
	if err != nil {
		logging.Error(err)
		return nil, false
	}

	// Crop the visible region out of the composed unit.
	rect := zoom.ImageRect()
	out := pix.NewSurface(width, height)
	out.Paste(composed, int(rect.X0-region.X0), int(rect.Y0-region.Y0))
	return out, true
}

func (d *documentBackend) renderUnit(unit doc.Pages, scale float64) (*pix.Surface, error) {
	left, err := d.renderPage(unit.Left, scale)
	if err != nil {
		return nil, err
	}
	if !unit.Dual {
		return left, nil
	}
	right, err := d.renderPage(unit.Left+1, scale)
	if err != nil {
		return nil, err
	}
	if right.Height() != left.Height() && right.Height() > 0 {
		ratio := float64(left.Height()) / float64(right.Height())
		right = right.Scaled(int(float64(right.Width())*ratio), left.Height())
	}
	composed := pix.NewSurface(left.Width()+right.Width(), left.Height())
	composed.Paste(left, 0, 0)
	composed.Paste(right, left.Width(), 0)
	return composed, nil
}

func (d *documentBackend) renderPage(page int, scale float64) (*pix.Surface, error) {
	img, err := d.document.ImageDPI(page, baseDocDPI*scale)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", page, err)
	}
	return pix.FromImage(img), nil
}
