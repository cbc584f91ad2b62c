// Package browse presents heterogeneous, nestable content containers
// (directories, zip/rar/mar archives, multi-page documents, and the
// synthetic bookmarks root) through one Backend capability set, and models
// the targets, cursors, sorting, and filtering used to navigate them.
package browse

import (
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"

	"loupe/internal/doc"
	"loupe/internal/pix"
)

// Kind tags the concrete container behind a Backend.
type Kind int

const (
	KindNone Kind = iota
	KindFilesystem
	KindZip
	KindRar
	KindMar
	KindDocument
	KindBookmarks
)

func (k Kind) String() string {
	switch k {
	case KindFilesystem:
		return "filesystem"
	case KindZip:
		return "zip"
	case KindRar:
		return "rar"
	case KindMar:
		return "mar"
	case KindDocument:
		return "document"
	case KindBookmarks:
		return "bookmarks"
	}
	return "none"
}

// ImageParams carries the presentation context for Backend.Image.
type ImageParams struct {
	Mode doc.PageMode
}

// Content is the preview value for one selected row. Exactly one of Surface,
// SVG, or Doc is set: Surface holds immediately available pixels (raster
// images and placeholder cards), SVG a vector tree, and Doc a document page
// unit; the latter two are rasterized asynchronously on the render worker.
type Content struct {
	Ref     Reference
	Surface *pix.Surface
	SVG     *oksvg.SvgIcon
	Doc     *DocContent
}

// DocContent describes a document page unit awaiting rasterization.
type DocContent struct {
	Mode doc.PageMode
	Size pix.Size
}

// Backend is one navigable container. Implementations never expose listing
// errors: unreadable entries are skipped individually and a failed container
// simply lists as empty.
type Backend interface {
	// Kind tags the concrete container type.
	Kind() Kind
	// Path is the container's own location (a pseudo path for synthetic
	// kinds).
	Path() string
	// List returns the rows backing the visible view, in native order.
	List() []Row
	// Ref identifies this backend for cross-hierarchy references.
	Ref() BackendRef
	// ItemRef converts the cursor to this backend's native item addressing.
	ItemRef(c Cursor) ItemRef
	// Enter descends into the selected row, returning the child backend, or
	// false for plain leaf rows. The caller must move ownership of the
	// current backend into the child via AdoptParent before dropping its own
	// handle.
	Enter(c Cursor) (Backend, bool)
	// AdoptParent stores the backend to return to and the target that
	// reselects the entered row there.
	AdoptParent(parent Backend, target Target)
	// Leave undoes the most recent Enter, consuming the stored parent slot
	// (a sentinel is left behind) or reconstructing the parent from the
	// container's own path. Root containers return false.
	Leave() (Backend, Target, bool)
	// Image produces the preview content for the selected row; failures and
	// non-renderable rows yield a placeholder card, never an error.
	Image(c Cursor, p ImageParams) Content
	// Render rasterizes the addressed item at the given zoom, or reports
	// false when this kind has nothing to render.
	Render(item ItemRef, mode doc.PageMode, zoom pix.Zoom, viewport pix.Rect) (*pix.Surface, bool)
	// CanSort reports whether the listing may be reordered; kinds that
	// cannot are pinned to their fixed default order.
	CanSort() bool
	// SetSort stores the requested ordering; a no-op for fixed-order kinds.
	SetSort(s Sort)
	// Sort returns the stored ordering, or the kind's fixed default.
	Sort() Sort
}

// New constructs the backend for a path, dispatching on the file extension;
// anything that is not a known archive or document is treated as a
// directory.
func New(path string) Backend {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return newZipBackend(path)
	case ".rar":
		return newRarBackend(path)
	case ".mar":
		return newMarBackend(path)
	case ".pdf", ".epub":
		return newDocumentBackend(path)
	}
	return newFilesystem(path)
}

// NewFromRef reconstructs a backend from a reference, as the render worker
// does for commands that arrive after navigation moved on.
func NewFromRef(ref BackendRef) Backend {
	switch ref.Kind {
	case KindFilesystem:
		return newFilesystem(ref.Path)
	case KindZip:
		return newZipBackend(ref.Path)
	case KindRar:
		return newRarBackend(ref.Path)
	case KindMar:
		return newMarBackend(ref.Path)
	case KindDocument:
		return newDocumentBackend(ref.Path)
	}
	return None()
}

// Discard releases any native resources held by a backend that is leaving
// the navigation chain. Kinds without external handles are no-ops. Backends
// parked in a parent slot must not be discarded; they come back on Leave.
func Discard(b Backend) {
	if c, ok := b.(interface{ Close() }); ok {
		c.Close()
	}
}

// MakeReference builds the composite identifier for the cursor's row.
func MakeReference(b Backend, c Cursor) Reference {
	return Reference{Backend: b.Ref(), Item: b.ItemRef(c)}
}

// parentSlot is the exclusively-owned link from a child backend to the
// backend it was entered from. take consumes it exactly once, leaving the
// none sentinel behind so the chain can never form a cycle.
type parentSlot struct {
	parent Backend
	target Target
}

func (p *parentSlot) AdoptParent(parent Backend, target Target) {
	p.parent = parent
	p.target = target
}

func (p *parentSlot) take() (Backend, Target, bool) {
	if p.parent == nil || p.parent.Kind() == KindNone {
		return nil, Target{}, false
	}
	parent, target := p.parent, p.target
	p.parent = None()
	p.target = Target{}
	return parent, target, true
}

// sortState is the reorder state carried by sortable kinds.
type sortState struct {
	sort       Sort
	configured bool
}

func (s *sortState) CanSort() bool { return true }

func (s *sortState) SetSort(v Sort) {
	s.sort = v
	s.configured = true
}

func (s *sortState) Sort() Sort {
	if !s.configured {
		return DefaultSort()
	}
	return s.sort
}

// fixedOrder pins a kind to its native row order.
type fixedOrder struct{}

func (fixedOrder) CanSort() bool { return false }
func (fixedOrder) SetSort(Sort) {}
func (fixedOrder) Sort() Sort   { return Unsorted() }

// leaveToDir is the fallback for containers that are themselves filesystem
// entries: reconstruct the parent directory and address our own name there.
func leaveToDir(path string) (Backend, Target, bool) {
	dir := filepath.Dir(path)
	if dir == path {
		return nil, Target{}, false
	}
	return newFilesystem(dir), ByName(filepath.Base(path)), true
}

// FindTarget resolves a target to a position in rows, honouring the active
// filter. Misses and First fall back to the first row passing the filter;
// -1 means nothing is addressable at all.
func FindTarget(b Backend, rows []Row, target Target, filter Filter) int {
	if target.Kind != TargetFirst {
		for i, row := range rows {
			if !filter.Matches(row) {
				continue
			}
			ref := Reference{Backend: b.Ref(), Item: b.ItemRef(Cursor{Row: row, Position: i})}
			if ref.Target() == target {
				return i
			}
		}
	}
	for i, row := range rows {
		if filter.Matches(row) {
			return i
		}
	}
	return -1
}
