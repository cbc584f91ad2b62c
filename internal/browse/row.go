package browse

import (
	"time"

	"loupe/internal/category"
)

// Row is one entry in a container listing. Index carries the per-kind raw
// locator (zip entry index, mar data offset, document page number); Folder is
// only set for bookmark rows and holds the destination path.
type Row struct {
	Category category.Type
	Name     string
	Size     uint64
	Modified time.Time
	Index    uint64
	Icon     string
	Folder   string
	Pref     category.Preference
}

// NewRow builds a name-addressed row, deriving icon and preference marker
// from the category and filename.
func NewRow(cat category.Type, name string, size uint64, modified time.Time) Row {
	return Row{
		Category: cat,
		Name:     name,
		Size:     size,
		Modified: modified,
		Icon:     cat.Icon(),
		Pref:     category.PreferenceOf(name),
	}
}

// NewIndexRow builds an ordinal-addressed row.
func NewIndexRow(cat category.Type, name string, size uint64, modified time.Time, index uint64) Row {
	row := NewRow(cat, name, size, modified)
	row.Index = index
	return row
}

// Cursor is the live selection inside the current listing: the selected row
// plus its position in display order. It is recomputed from the listing and
// never persisted.
type Cursor struct {
	Row      Row
	Position int
}
