package browse

import (
	"sort"
	"strings"
)

// SortColumn selects the listing column rows are ordered by.
type SortColumn int

const (
	SortCategory SortColumn = iota
	SortName
	SortSize
	SortModified
)

// SortOrder is the direction of a sort.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// Sort is the ordering applied to a listing. The zero value means unsorted,
// keeping the backend's native order.
type Sort struct {
	Sorted bool
	Column SortColumn
	Order  SortOrder
}

// DefaultSort orders by category, then case-insensitive name. It is the fixed
// order for kinds that cannot be re-sorted.
func DefaultSort() Sort {
	return Sort{Sorted: true, Column: SortCategory}
}

// Unsorted keeps the backend's native row order.
func Unsorted() Sort { return Sort{} }

func (s Sort) String() string {
	if !s.Sorted {
		return "u"
	}
	col := [...]string{"c", "n", "s", "m"}[s.Column]
	if s.Order == Descending {
		return col + "d"
	}
	return col + "a"
}

// Toggle returns the sort produced by clicking column: same column flips the
// order, a new column starts ascending.
func (s Sort) Toggle(column SortColumn) Sort {
	if s.Sorted && s.Column == column && s.Order == Ascending {
		return Sort{Sorted: true, Column: column, Order: Descending}
	}
	return Sort{Sorted: true, Column: column}
}

// Apply orders rows in place. The sort is stable, so equal keys keep their
// native relative order.
func (s Sort) Apply(rows []Row) {
	if !s.Sorted {
		return
	}
	less := s.lessFunc()
	sort.SliceStable(rows, func(i, j int) bool {
		if s.Order == Descending {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

func (s Sort) lessFunc() func(a, b Row) bool {
	switch s.Column {
	case SortName:
		return func(a, b Row) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case SortSize:
		return func(a, b Row) bool { return a.Size < b.Size }
	case SortModified:
		return func(a, b Row) bool { return a.Modified.Before(b.Modified) }
	}
	// Category groups first, names break ties.
	return func(a, b Row) bool {
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}
}
