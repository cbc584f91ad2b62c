package browse

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"

	"loupe/internal/category"
	"loupe/internal/doc"
	"loupe/internal/logging/events"
	"loupe/internal/pix"
)

// marBackend lists a mar image archive: a "MAR2" header pointing at a "DIR2"
// directory of entries, each addressed by the byte offset of its image data.
type marBackend struct {
	parentSlot
	sortState
	path string
	rows []Row
}

type marEntry struct {
	offset   uint64
	name     string
	size     uint32
	modified uint64
}

func newMarBackend(path string) *marBackend {
	return &marBackend{path: path, rows: listMar(path)}
}

func readMarEntry(r io.Reader) (marEntry, error) {
	var fixed struct {
		Length   uint32
		Offset   uint64
		Size     uint32
		Modified uint64
		NameLen  uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &fixed); err != nil {
		return marEntry{}, err
	}
	name := make([]byte, fixed.NameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return marEntry{}, err
	}
	return marEntry{
		offset:   fixed.Offset,
		name:     string(name),
		size:     fixed.Size,
		modified: fixed.Modified,
	}, nil
}

func listMar(path string) []Row {
	f, err := os.Open(path)
	if err != nil {
		events.Listing.Failed(path, err)
		return nil
	}
	defer f.Close()

	header := make([]byte, 12)
	if _, err := io.ReadFull(f, header); err != nil {
		events.Listing.Failed(path, err)
		return nil
	}
	if string(header[:4]) != "MAR2" {
		events.Listing.Failed(path, fmt.Errorf("not a mar archive"))
		return nil
	}
	dirOffset := binary.LittleEndian.Uint64(header[4:12])
	if _, err := f.Seek(int64(dirOffset), io.SeekStart); err != nil {
		events.Listing.Failed(path, err)
		return nil
	}

	r := bufio.NewReader(f)
	dirMagic := make([]byte, 4)
	if _, err := io.ReadFull(r, dirMagic); err != nil || string(dirMagic) != "DIR2" {
		events.Listing.Failed(path, fmt.Errorf("mar directory missing"))
		return nil
	}
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		events.Listing.Failed(path, err)
		return nil
	}

	rows := make([]Row, 0, count)
	for i := uint32(0); i < count; i++ {
		entry, err := readMarEntry(r)
		if err != nil {
			events.Listing.Skip(path, "", err)
			break
		}
		cat := category.Determine(entry.name, false)
		if cat == category.Unsupported {
			continue
		}
		modified := time.Unix(int64(entry.modified), 0)
		rows = append(rows, NewIndexRow(cat, entry.name, uint64(entry.size), modified, entry.offset))
	}
	return rows
}

func extractMar(path string, offset uint64, size uint32) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mar: %w", err)
	}
	defer f.Close()
	if _, err := f.Seek(int64(offset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek mar entry: %w", err)
	}
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, fmt.Errorf("read mar entry: %w", err)
	}
	return data, nil
}

func (m *marBackend) Kind() Kind      { return KindMar }
func (m *marBackend) Path() string    { return m.path }
func (m *marBackend) List() []Row     { return m.rows }
func (m *marBackend) Ref() BackendRef { return BackendRef{Kind: KindMar, Path: m.path} }

func (m *marBackend) ItemRef(c Cursor) ItemRef { return IndexRef(c.Row.Index) }

func (m *marBackend) Enter(Cursor) (Backend, bool) { return nil, false }

func (m *marBackend) Leave() (Backend, Target, bool) {
	if parent, target, ok := m.take(); ok {
		return parent, target, true
	}
	return leaveToDir(m.path)
}

func (m *marBackend) Image(c Cursor, p ImageParams) Content {
	ref := MakeReference(m, c)
	if c.Row.Category != category.Image {
		return Content{Ref: ref, Surface: placeholderCard(c.Row)}
	}
	size := uint32(c.Row.Size)
	return loadImageContent(ref, c.Row.Name, func() ([]byte, error) {
		return extractMar(m.path, c.Row.Index, size)
	})
}

func (m *marBackend) Render(ItemRef, doc.PageMode, pix.Zoom, pix.Rect) (*pix.Surface, bool) {
	return nil, false
}
