package browse

import (
	"os"

	"loupe/internal/category"
	"loupe/internal/doc"
	"loupe/internal/logging/events"
	"loupe/internal/pix"
)

// Bookmark is one saved destination shown in the bookmarks root.
type Bookmark struct {
	Name   string
	Folder string
}

// bookmarksBackend is the synthetic root listing saved destinations. It is
// always opened over an existing backend, whose ownership moves into the
// parent slot and is handed back by Leave.
type bookmarksBackend struct {
	parentSlot
	sortState
	rows []Row
}

// NewBookmarks builds the bookmarks backend over the backend it was opened
// from; leaving restores exactly that backend and target.
func NewBookmarks(parent Backend, target Target, marks []Bookmark) Backend {
	b := &bookmarksBackend{rows: bookmarkRows(marks)}
	b.AdoptParent(parent, target)
	return b
}

func bookmarkRows(marks []Bookmark) []Row {
	rows := make([]Row, 0, len(marks))
	for _, mark := range marks {
		info, err := os.Stat(mark.Folder)
		if err != nil {
			events.Listing.Skip("bookmarks", mark.Folder, err)
			continue
		}
		row := NewRow(category.Folder, mark.Name, uint64(info.Size()), info.ModTime())
		row.Folder = mark.Folder
		rows = append(rows, row)
	}
	return rows
}

func (b *bookmarksBackend) Kind() Kind      { return KindBookmarks }
func (b *bookmarksBackend) Path() string    { return "bookmarks" }
func (b *bookmarksBackend) List() []Row     { return b.rows }
func (b *bookmarksBackend) Ref() BackendRef { return BackendRef{Kind: KindBookmarks} }

func (b *bookmarksBackend) ItemRef(c Cursor) ItemRef { return NameRef(c.Row.Folder) }

func (b *bookmarksBackend) Enter(c Cursor) (Backend, bool) {
	if c.Row.Folder == "" {
		return nil, false
	}
	return New(c.Row.Folder), true
}

// Leave hands back the stored backend; bookmarks opened without one are a
// root and cannot be left.
func (b *bookmarksBackend) Leave() (Backend, Target, bool) {
	return b.take()
}

func (b *bookmarksBackend) Image(c Cursor, p ImageParams) Content {
	ref := MakeReference(b, c)
	return Content{Ref: ref, Surface: pix.TextCard("bookmark", c.Row.Folder, pix.FolderCardColors())}
}

func (b *bookmarksBackend) Render(ItemRef, doc.PageMode, pix.Zoom, pix.Rect) (*pix.Surface, bool) {
	return nil, false
}
