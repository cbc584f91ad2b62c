package browse

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"

	"loupe/internal/category"
	"loupe/internal/doc"
	"loupe/internal/logging/events"
	"loupe/internal/pix"
)

// zipBackend lists a zip archive. Entries are addressed by their ordinal
// position in the central directory.
type zipBackend struct {
	parentSlot
	sortState
	path string
	rows []Row
}

func newZipBackend(path string) *zipBackend {
	return &zipBackend{path: path, rows: listZip(path)}
}

func listZip(path string) []Row {
	rc, err := zip.OpenReader(path)
	if err != nil {
		events.Listing.Failed(path, err)
		return nil
	}
	defer rc.Close()

	rows := make([]Row, 0, len(rc.File))
	for i, file := range rc.File {
		info := file.FileInfo()
		cat := category.Determine(file.Name, info.IsDir())
		if info.IsDir() || file.UncompressedSize64 == 0 || cat == category.Unsupported {
			continue
		}
		name := filepath.Base(file.Name)
		rows = append(rows, NewIndexRow(cat, name, file.UncompressedSize64, file.Modified, uint64(i)))
	}
	return rows
}

func extractZip(path string, index uint64) ([]byte, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	defer rc.Close()
	if index >= uint64(len(rc.File)) {
		return nil, fmt.Errorf("zip entry %d out of range", index)
	}
	f, err := rc.File[index].Open()
	if err != nil {
		return nil, fmt.Errorf("open zip entry: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read zip entry: %w", err)
	}
	return data, nil
}

func (z *zipBackend) Kind() Kind      { return KindZip }
func (z *zipBackend) Path() string    { return z.path }
func (z *zipBackend) List() []Row     { return z.rows }
func (z *zipBackend) Ref() BackendRef { return BackendRef{Kind: KindZip, Path: z.path} }

func (z *zipBackend) ItemRef(c Cursor) ItemRef { return IndexRef(c.Row.Index) }

func (z *zipBackend) Enter(Cursor) (Backend, bool) { return nil, false }

func (z *zipBackend) Leave() (Backend, Target, bool) {
	if parent, target, ok := z.take(); ok {
		return parent, target, true
	}
	return leaveToDir(z.path)
}

func (z *zipBackend) Image(c Cursor, p ImageParams) Content {
	ref := MakeReference(z, c)
	if c.Row.Category != category.Image {
		return Content{Ref: ref, Surface: placeholderCard(c.Row)}
	}
	return loadImageContent(ref, c.Row.Name, func() ([]byte, error) {
		return extractZip(z.path, c.Row.Index)
	})
}

func (z *zipBackend) Render(ItemRef, doc.PageMode, pix.Zoom, pix.Rect) (*pix.Surface, bool) {
	return nil, false
}
