package browse

import (
	"archive/zip"
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"loupe/internal/category"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// writeTestZip lays out an archive exercising every listing skip rule: a
// directory entry, an unsupported file, and a zero-byte image.
func writeTestZip(t *testing.T, path string, img []byte) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	zw := zip.NewWriter(f)
	entries := []struct {
		name string
		data []byte
	}{
		{"sub/", nil},
		{"sub/page1.png", img},
		{"notes.txt", []byte("hello")},
		{"page2.png", img},
		{"empty.png", nil},
	}
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatalf("create entry %s: %v", e.name, err)
		}
		if _, err := w.Write(e.data); err != nil {
			t.Fatalf("write entry %s: %v", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
}

func TestZipListing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comic.zip")
	writeTestZip(t, path, pngBytes(t))

	b := New(path)
	if b.Kind() != KindZip {
		t.Fatalf("Kind() = %v, want zip", b.Kind())
	}
	rows := b.List()
	if len(rows) != 2 {
		t.Fatalf("listed %d rows, want 2: %v", len(rows), names(rows))
	}
	if rows[0].Name != "page1.png" || rows[0].Index != 1 {
		t.Fatalf("row 0 = %q@%d, want page1.png@1", rows[0].Name, rows[0].Index)
	}
	if rows[1].Name != "page2.png" || rows[1].Index != 3 {
		t.Fatalf("row 1 = %q@%d, want page2.png@3", rows[1].Name, rows[1].Index)
	}
}

func TestZipImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comic.zip")
	writeTestZip(t, path, pngBytes(t))

	b := New(path)
	rows := b.List()
	content := b.Image(Cursor{Row: rows[0], Position: 0}, ImageParams{})
	if content.Surface == nil {
		t.Fatal("image entry must decode to a surface")
	}
	if got := content.Ref.Target(); got != ByIndex(1) {
		t.Fatalf("content ref target = %v, want index(1)", got)
	}
}

func TestZipListingFailureIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.zip")
	if err := os.WriteFile(path, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	if rows := New(path).List(); len(rows) != 0 {
		t.Fatalf("broken archive must list empty, got %v", names(rows))
	}
}

func TestFilesystemListing(t *testing.T) {
	dir := t.TempDir()
	files := map[string][]byte{
		".hidden":    []byte("x"),
		"photo.png":  pngBytes(t),
		"readme.txt": []byte("text"),
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}

	rows := New(dir).List()
	byName := map[string]Row{}
	for _, row := range rows {
		byName[row.Name] = row
	}
	if _, ok := byName[".hidden"]; ok {
		t.Fatal("dotfiles must be hidden")
	}
	if byName["photo.png"].Category != category.Image {
		t.Fatalf("photo.png categorized %v", byName["photo.png"].Category)
	}
	if byName["readme.txt"].Category != category.Unsupported {
		t.Fatalf("readme.txt categorized %v", byName["readme.txt"].Category)
	}
	if byName["nested"].Category != category.Folder {
		t.Fatalf("nested categorized %v", byName["nested"].Category)
	}
}

func TestEnterLeaveRestoresSelection(t *testing.T) {
	dir := t.TempDir()
	writeTestZip(t, filepath.Join(dir, "comic.zip"), pngBytes(t))
	if err := os.WriteFile(filepath.Join(dir, "aaa.png"), pngBytes(t), 0o644); err != nil {
		t.Fatal(err)
	}

	root := New(dir)
	rows := FilterRows(root.List(), FilterNone)
	DefaultSort().Apply(rows)

	pos := FindTarget(root, rows, ByName("comic.zip"), FilterNone)
	if pos < 0 || rows[pos].Name != "comic.zip" {
		t.Fatalf("could not address comic.zip, pos %d", pos)
	}
	cursor := Cursor{Row: rows[pos], Position: pos}

	child, ok := root.Enter(cursor)
	if !ok {
		t.Fatal("entering an archive row must succeed")
	}
	child.AdoptParent(root, Reference{Backend: root.Ref(), Item: root.ItemRef(cursor)}.Target())

	parent, target, ok := child.Leave()
	if !ok {
		t.Fatal("leaving must hand the parent back")
	}
	if parent != root {
		t.Fatal("leave must return the adopted parent, not a reconstruction")
	}
	back := FindTarget(parent, rows, target, FilterNone)
	if back != pos {
		t.Fatalf("restored position %d, want %d", back, pos)
	}

	// The slot is consumed; a second leave reconstructs from the path.
	again, target, ok := child.Leave()
	if !ok {
		t.Fatal("second leave should fall back to the containing directory")
	}
	if again == root {
		t.Fatal("consumed slot must not hand out the parent twice")
	}
	if again.Kind() != KindFilesystem || target != ByName("comic.zip") {
		t.Fatalf("fallback = %v %v", again.Kind(), target)
	}
}

func TestEnterLeafRows(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "photo.png"), pngBytes(t), 0o644); err != nil {
		t.Fatal(err)
	}
	b := New(dir)
	rows := b.List()
	if _, ok := b.Enter(Cursor{Row: rows[0]}); ok {
		t.Fatal("plain image rows must not be enterable")
	}
}

func TestFindTarget(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.hi.png", "c.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), pngBytes(t), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	b := New(dir)
	rows := b.List()
	DefaultSort().Apply(rows)

	if pos := FindTarget(b, rows, ByName("c.png"), FilterNone); pos < 0 || rows[pos].Name != "c.png" {
		t.Fatalf("exact hit failed, pos %d", pos)
	}
	// Miss falls back to the first visible row.
	if pos := FindTarget(b, rows, ByName("gone.png"), FilterNone); pos != 0 {
		t.Fatalf("miss fallback = %d, want 0", pos)
	}
	// The filter hides the addressed row; fall back to the first match.
	if pos := FindTarget(b, rows, ByName("a.png"), FilterFavorite); pos < 0 || rows[pos].Name != "b.hi.png" {
		t.Fatalf("filtered fallback pos %d", pos)
	}
	// Nothing passes the filter at all.
	empty := []Row{NewRow(category.Image, "x.png", 0, time.Time{})}
	if pos := FindTarget(b, empty, First(), FilterFavorite); pos != -1 {
		t.Fatalf("unaddressable listing should yield -1, got %d", pos)
	}
}

func TestReferenceTarget(t *testing.T) {
	tests := []struct {
		kind Kind
		item ItemRef
		want Target
	}{
		{KindFilesystem, NameRef("a.png"), ByName("a.png")},
		{KindRar, NameRef("b.png"), ByName("b.png")},
		{KindZip, IndexRef(3), ByIndex(3)},
		{KindMar, IndexRef(96), ByIndex(96)},
		{KindDocument, IndexRef(7), ByIndex(7)},
		{KindBookmarks, NameRef("/home"), First()},
	}
	for _, tt := range tests {
		ref := Reference{Backend: BackendRef{Kind: tt.kind}, Item: tt.item}
		if got := ref.Target(); got != tt.want {
			t.Errorf("%v reference target = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestBookmarks(t *testing.T) {
	dir := t.TempDir()
	marks := []Bookmark{
		{Name: "Pictures", Folder: dir},
		{Name: "Missing", Folder: filepath.Join(dir, "nope")},
	}
	root := New(dir)
	b := NewBookmarks(root, ByName("comic.zip"), marks)

	rows := b.List()
	if len(rows) != 1 || rows[0].Name != "Pictures" {
		t.Fatalf("unreadable bookmarks must be skipped, got %v", names(rows))
	}

	child, ok := b.Enter(Cursor{Row: rows[0]})
	if !ok || child.Kind() != KindFilesystem {
		t.Fatalf("entering a bookmark should open its folder, got %v %v", ok, child)
	}

	parent, target, ok := b.Leave()
	if !ok || parent != root || target != ByName("comic.zip") {
		t.Fatalf("leave = %v %v %v, want the adopted backend and target", parent, target, ok)
	}
	// Bookmarks opened as the start location have no parent to return to.
	if _, _, ok := NewBookmarks(None(), First(), nil).Leave(); ok {
		t.Fatal("a rootless bookmarks view must not be leavable")
	}
}

func TestFilesystemReload(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "one.png"), pngBytes(t), 0o644); err != nil {
		t.Fatal(err)
	}
	fs := newFilesystem(dir)
	fs.AdoptParent(New(filepath.Dir(dir)), ByName(filepath.Base(dir)))

	if err := os.WriteFile(filepath.Join(dir, "two.png"), pngBytes(t), 0o644); err != nil {
		t.Fatal(err)
	}
	reloaded := fs.Reload()
	if len(reloaded.List()) != 2 {
		t.Fatalf("reload listed %v", names(reloaded.List()))
	}
	// Ownership of the parent follows the reloaded backend.
	if _, _, ok := reloaded.Leave(); !ok {
		t.Fatal("reloaded backend should keep the adopted parent")
	}
	if parent, _, _ := fs.Leave(); parent != nil && parent.Kind() != KindFilesystem {
		t.Fatalf("stale backend fell back unexpectedly: %v", parent.Kind())
	}
}
