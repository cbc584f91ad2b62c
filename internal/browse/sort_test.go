package browse

import (
	"testing"
	"time"

	"loupe/internal/category"
)

func names(rows []Row) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.Name
	}
	return out
}

func equalNames(a []string, rows []Row) bool {
	if len(a) != len(rows) {
		return false
	}
	for i, row := range rows {
		if row.Name != a[i] {
			return false
		}
	}
	return true
}

func TestDefaultSortGroupsByCategory(t *testing.T) {
	rows := []Row{
		NewRow(category.Image, "Zebra.jpg", 10, time.Time{}),
		NewRow(category.Folder, "pics", 0, time.Time{}),
		NewRow(category.Image, "apple.png", 20, time.Time{}),
		NewRow(category.Archive, "old.zip", 5, time.Time{}),
	}
	DefaultSort().Apply(rows)
	want := []string{"pics", "old.zip", "apple.png", "Zebra.jpg"}
	if !equalNames(want, rows) {
		t.Fatalf("sorted order = %v, want %v", names(rows), want)
	}
}

func TestSortToggle(t *testing.T) {
	s := DefaultSort()
	s = s.Toggle(SortName)
	if !s.Sorted || s.Column != SortName || s.Order != Ascending {
		t.Fatalf("new column should start ascending, got %+v", s)
	}
	s = s.Toggle(SortName)
	if s.Order != Descending {
		t.Fatalf("same column should flip to descending, got %+v", s)
	}
	s = s.Toggle(SortName)
	if s.Order != Ascending {
		t.Fatalf("third toggle should come back ascending, got %+v", s)
	}
}

func TestSortApplyStable(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := []Row{
		NewRow(category.Image, "c.jpg", 100, base),
		NewRow(category.Image, "a.jpg", 100, base),
		NewRow(category.Image, "b.jpg", 100, base),
	}
	Sort{Sorted: true, Column: SortSize}.Apply(rows)
	want := []string{"c.jpg", "a.jpg", "b.jpg"}
	if !equalNames(want, rows) {
		t.Fatalf("equal keys must keep native order, got %v", names(rows))
	}
}

func TestSortDescending(t *testing.T) {
	rows := []Row{
		NewRow(category.Image, "a.jpg", 1, time.Time{}),
		NewRow(category.Image, "b.jpg", 3, time.Time{}),
		NewRow(category.Image, "c.jpg", 2, time.Time{}),
	}
	Sort{Sorted: true, Column: SortSize, Order: Descending}.Apply(rows)
	want := []string{"b.jpg", "c.jpg", "a.jpg"}
	if !equalNames(want, rows) {
		t.Fatalf("descending size order = %v, want %v", names(rows), want)
	}
}

func TestUnsortedKeepsNativeOrder(t *testing.T) {
	rows := []Row{
		NewRow(category.Image, "z.jpg", 0, time.Time{}),
		NewRow(category.Folder, "a", 0, time.Time{}),
	}
	Unsorted().Apply(rows)
	if !equalNames([]string{"z.jpg", "a"}, rows) {
		t.Fatalf("unsorted must not reorder, got %v", names(rows))
	}
}

func TestFilterMatches(t *testing.T) {
	tests := []struct {
		filter Filter
		row    Row
		want   bool
	}{
		{FilterNone, NewRow(category.Video, "clip.mp4", 0, time.Time{}), true},
		{FilterImage, NewRow(category.Image, "a.png", 0, time.Time{}), true},
		{FilterImage, NewRow(category.Folder, "dir", 0, time.Time{}), false},
		{FilterFavorite, NewRow(category.Image, "best.hi.jpg", 0, time.Time{}), true},
		{FilterFavorite, NewRow(category.Image, "meh.lo.jpg", 0, time.Time{}), false},
		{FilterContainer, NewRow(category.Archive, "a.zip", 0, time.Time{}), true},
		{FilterContainer, NewRow(category.Document, "a.pdf", 0, time.Time{}), true},
		{FilterContainer, NewRow(category.Image, "a.jpg", 0, time.Time{}), false},
	}
	for _, tt := range tests {
		if got := tt.filter.Matches(tt.row); got != tt.want {
			t.Errorf("%s.Matches(%s) = %v, want %v", tt.filter, tt.row.Name, got, tt.want)
		}
	}
}

func TestFilterRows(t *testing.T) {
	rows := []Row{
		NewRow(category.Folder, "dir", 0, time.Time{}),
		NewRow(category.Image, "a.jpg", 0, time.Time{}),
		NewRow(category.Image, "b.hi.jpg", 0, time.Time{}),
	}
	got := FilterRows(rows, FilterImage)
	if !equalNames([]string{"a.jpg", "b.hi.jpg"}, got) {
		t.Fatalf("image filter = %v", names(got))
	}
	all := FilterRows(rows, FilterNone)
	if len(all) != len(rows) {
		t.Fatalf("FilterNone dropped rows: %v", names(all))
	}
	all[0].Name = "mutated"
	if rows[0].Name != "dir" {
		t.Fatal("FilterRows must copy, not alias, the input")
	}
}

func TestBackendSortState(t *testing.T) {
	b := New(t.TempDir())
	if !b.CanSort() {
		t.Fatal("directories must be sortable")
	}
	if got := b.Sort(); got != DefaultSort() {
		t.Fatalf("initial sort = %v, want default", got)
	}
	want := Sort{Sorted: true, Column: SortName, Order: Descending}
	b.SetSort(want)
	if got := b.Sort(); got != want {
		t.Fatalf("stored sort = %v, want %v", got, want)
	}
}

func TestFixedOrderKindsIgnoreSetSort(t *testing.T) {
	b := None()
	if b.CanSort() {
		t.Fatal("sentinel must not be sortable")
	}
	b.SetSort(DefaultSort())
	if got := b.Sort(); got != Unsorted() {
		t.Fatalf("sentinel sort = %v, want unsorted", got)
	}
}
