package browse

import (
	"path/filepath"
	"testing"

	"loupe/internal/pix"
)

// closingBackend records whether Discard reached its Close method.
type closingBackend struct {
	noneBackend
	closed int
}

func (c *closingBackend) Close() { c.closed++ }

func TestDiscardClosesWhenSupported(t *testing.T) {
	c := &closingBackend{}
	Discard(c)
	if c.closed != 1 {
		t.Fatalf("closed %d times, want 1", c.closed)
	}

	// Kinds without a Close method are left alone.
	Discard(None())
}

func TestDocumentCloseIsIdempotent(t *testing.T) {
	b := newDocumentBackend(filepath.Join(t.TempDir(), "missing.pdf"))
	if b.openErr == nil {
		t.Fatal("expected an open error for a missing document")
	}
	b.Close()
	b.Close()
	if b.document != nil {
		t.Fatal("handle must stay nil after Close")
	}
}

func TestDualUnitSize(t *testing.T) {
	tests := []struct {
		name        string
		left, right pix.Size
		want        pix.Size
	}{
		{
			name:  "equal heights",
			left:  pix.Size{W: 100, H: 200},
			right: pix.Size{W: 100, H: 200},
			want:  pix.Size{W: 200, H: 200},
		},
		{
			name:  "right scaled to left height",
			left:  pix.Size{W: 100, H: 200},
			right: pix.Size{W: 100, H: 100},
			want:  pix.Size{W: 300, H: 200},
		},
		{
			name:  "zero height right page ignored",
			left:  pix.Size{W: 100, H: 200},
			right: pix.Size{W: 50, H: 0},
			want:  pix.Size{W: 100, H: 200},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := dualUnitSize(tc.left, tc.right)
			if got != tc.want {
				t.Fatalf("dualUnitSize(%+v, %+v) = %+v, want %+v", tc.left, tc.right, got, tc.want)
			}
		})
	}
}
