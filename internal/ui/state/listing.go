// Package state holds the view-side listing state: cursor position, viewport
// offset, and the incremental name filter. It never talks to a container
// itself; the model feeds it rows that already have the category filter and
// sort applied.
package state

import "loupe/internal/browse"

// Listing is the visible state of one container view.
type Listing struct {
	Path           string
	Title          string
	Rows           []browse.Row
	Full           []browse.Row
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewListing constructs listing state over the supplied rows.
func NewListing(path, title string, rows []browse.Row) *Listing {
	l := &Listing{
		Path:       path,
		Title:      title,
		Cursor:     -1,
		LastCursor: -1,
	}
	l.UpdateRows(rows)
	return l
}

// Current returns the row under the cursor.
func (l *Listing) Current() (browse.Cursor, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Rows) {
		return browse.Cursor{}, false
	}
	return browse.Cursor{Row: l.Rows[l.Cursor], Position: l.Cursor}, true
}

// IndexOf returns the position of the named row, or -1.
func (l *Listing) IndexOf(name string) int {
	if name == "" {
		return -1
	}
	for i, row := range l.Rows {
		if row.Name == name {
			return i
		}
	}
	return -1
}

// UpdateRows replaces the backing rows, keeping the viewport offset when it
// is still in range.
func (l *Listing) UpdateRows(rows []browse.Row) {
	prevOffset := l.ViewportOffset
	l.Full = CloneRows(rows)
	l.applyFilter()
	if len(l.Rows) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 || prevOffset > len(l.Rows)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}

// CloneRows produces a shallow copy of the provided rows.
func CloneRows(rows []browse.Row) []browse.Row {
	dup := make([]browse.Row, len(rows))
	copy(dup, rows)
	return dup
}
