package browse

import "loupe/internal/category"

// Filter restricts which rows are visible and addressable during navigation
// and target restore.
type Filter int

const (
	FilterNone Filter = iota
	FilterImage
	FilterFavorite
	FilterContainer
)

func (f Filter) String() string {
	switch f {
	case FilterImage:
		return "image"
	case FilterFavorite:
		return "favorite"
	case FilterContainer:
		return "container"
	}
	return "none"
}

// Matches reports whether the row passes the filter.
func (f Filter) Matches(row Row) bool {
	switch f {
	case FilterImage:
		return row.Category == category.Image
	case FilterFavorite:
		return row.Pref == category.Favorite
	case FilterContainer:
		return row.Category.IsContainer()
	}
	return true
}

// FilterRows returns the rows passing the filter, preserving order.
func FilterRows(rows []Row, f Filter) []Row {
	if f == FilterNone {
		out := make([]Row, len(rows))
		copy(out, rows)
		return out
	}
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if f.Matches(row) {
			out = append(out, row)
		}
	}
	return out
}
