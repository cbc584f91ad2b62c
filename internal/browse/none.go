package browse

import (
	"loupe/internal/doc"
	"loupe/internal/pix"
)

// noneBackend is the empty sentinel substituted into a parent slot whose
// owner has been moved out. It is never user visible.
type noneBackend struct{ fixedOrder }

// None returns the empty sentinel backend.
func None() Backend { return noneBackend{} }

func (noneBackend) Kind() Kind                     { return KindNone }
func (noneBackend) Path() string                   { return "" }
func (noneBackend) List() []Row                    { return nil }
func (noneBackend) Ref() BackendRef                { return BackendRef{Kind: KindNone} }
func (noneBackend) ItemRef(Cursor) ItemRef         { return IndexRef(0) }
func (noneBackend) Enter(Cursor) (Backend, bool)   { return nil, false }
func (noneBackend) AdoptParent(Backend, Target)    {}
func (noneBackend) Leave() (Backend, Target, bool) { return nil, Target{}, false }

func (noneBackend) Image(Cursor, ImageParams) Content {
	return Content{Surface: pix.TextCard("nothing here", "", pix.NeutralCardColors())}
}

func (noneBackend) Render(ItemRef, doc.PageMode, pix.Zoom, pix.Rect) (*pix.Surface, bool) {
	return nil, false
}
