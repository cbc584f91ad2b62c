package browse

import (
	"errors"
	"fmt"
	"io"

	"github.com/nwaples/rardecode/v2"

	"loupe/internal/category"
	"loupe/internal/doc"
	"loupe/internal/logging/events"
	"loupe/internal/pix"
)

// rarBackend lists a rar archive. Unlike zip, rar entries carry no stable
// ordinal, so rows are addressed by entry name.
type rarBackend struct {
	parentSlot
	sortState
	path string
	rows []Row
}

func newRarBackend(path string) *rarBackend {
	return &rarBackend{path: path, rows: listRar(path)}
}

func listRar(path string) []Row {
	rc, err := rardecode.OpenReader(path)
	if err != nil {
		events.Listing.Failed(path, err)
		return nil
	}
	defer rc.Close()

	var rows []Row
	for {
		header, err := rc.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			events.Listing.Skip(path, "", err)
			break
		}
		cat := category.Determine(header.Name, header.IsDir)
		if header.IsDir || header.UnPackedSize <= 0 || cat == category.Unsupported {
			continue
		}
		rows = append(rows, NewRow(cat, header.Name, uint64(header.UnPackedSize), header.ModificationTime))
	}
	return rows
}

func extractRar(path, name string) ([]byte, error) {
	rc, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open rar: %w", err)
	}
	defer rc.Close()
	for {
		header, err := rc.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("rar entry %q not found", name)
		}
		if err != nil {
			return nil, fmt.Errorf("read rar header: %w", err)
		}
		if header.IsDir || header.Name != name {
			continue
		}
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read rar entry: %w", err)
		}
		return data, nil
	}
}

func (r *rarBackend) Kind() Kind      { return KindRar }
func (r *rarBackend) Path() string    { return r.path }
func (r *rarBackend) List() []Row     { return r.rows }
func (r *rarBackend) Ref() BackendRef { return BackendRef{Kind: KindRar, Path: r.path} }

func (r *rarBackend) ItemRef(c Cursor) ItemRef { return NameRef(c.Row.Name) }

func (r *rarBackend) Enter(Cursor) (Backend, bool) { return nil, false }

func (r *rarBackend) Leave() (Backend, Target, bool) {
	if parent, target, ok := r.take(); ok {
		return parent, target, true
	}
	return leaveToDir(r.path)
}

func (r *rarBackend) Image(c Cursor, p ImageParams) Content {
	ref := MakeReference(r, c)
	if c.Row.Category != category.Image {
		return Content{Ref: ref, Surface: placeholderCard(c.Row)}
	}
	return loadImageContent(ref, c.Row.Name, func() ([]byte, error) {
		return extractRar(r.path, c.Row.Name)
	})
}

func (r *rarBackend) Render(ItemRef, doc.PageMode, pix.Zoom, pix.Rect) (*pix.Surface, bool) {
	return nil, false
}
