package browse

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// buildMar assembles a minimal archive: the "MAR2" header pointing past the
// entry data at a "DIR2" directory describing each name and offset.
func buildMar(t *testing.T, entries map[string][]byte, order []string) []byte {
	t.Helper()
	var data bytes.Buffer
	offsets := make(map[string]uint64, len(entries))
	for _, name := range order {
		offsets[name] = uint64(12 + data.Len())
		data.Write(entries[name])
	}

	var out bytes.Buffer
	out.WriteString("MAR2")
	binary.Write(&out, binary.LittleEndian, uint64(12+data.Len()))
	out.Write(data.Bytes())

	out.WriteString("DIR2")
	binary.Write(&out, binary.LittleEndian, uint32(len(order)))
	for _, name := range order {
		binary.Write(&out, binary.LittleEndian, uint32(len(entries[name])))
		binary.Write(&out, binary.LittleEndian, offsets[name])
		binary.Write(&out, binary.LittleEndian, uint32(len(entries[name])))
		binary.Write(&out, binary.LittleEndian, uint64(1700000000))
		binary.Write(&out, binary.LittleEndian, uint32(len(name)))
		out.WriteString(name)
	}
	return out.Bytes()
}

func TestMarListing(t *testing.T) {
	img := pngBytes(t)
	raw := buildMar(t, map[string][]byte{
		"cover.png": img,
		"notes.txt": []byte("not an image"),
		"back.png":  img,
	}, []string{"cover.png", "notes.txt", "back.png"})

	path := filepath.Join(t.TempDir(), "album.mar")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	b := New(path)
	if b.Kind() != KindMar {
		t.Fatalf("Kind() = %v, want mar", b.Kind())
	}
	rows := b.List()
	if len(rows) != 2 {
		t.Fatalf("listed %d rows, want 2: %v", len(rows), names(rows))
	}
	if rows[0].Name != "cover.png" || rows[0].Index != 12 {
		t.Fatalf("row 0 = %q@%d", rows[0].Name, rows[0].Index)
	}
	if rows[1].Name != "back.png" {
		t.Fatalf("row 1 = %q", rows[1].Name)
	}

	content := b.Image(Cursor{Row: rows[0]}, ImageParams{})
	if content.Surface == nil {
		t.Fatal("mar image entry must decode to a surface")
	}
}

func TestMarExtract(t *testing.T) {
	payload := []byte("payload-bytes")
	raw := buildMar(t, map[string][]byte{"one.png": payload}, []string{"one.png"})
	path := filepath.Join(t.TempDir(), "single.mar")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := extractMar(path, 12, uint32(len(payload)))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("extracted %q, want %q", got, payload)
	}
}

func TestMarBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.mar")
	if err := os.WriteFile(path, []byte("MAR1????????????"), 0o644); err != nil {
		t.Fatal(err)
	}
	if rows := New(path).List(); len(rows) != 0 {
		t.Fatalf("bad magic must list empty, got %v", names(rows))
	}
}
