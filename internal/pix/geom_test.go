package pix

import "testing"

func TestRectIntersect(t *testing.T) {
	a := NewRect(0, 0, 100, 100)
	b := NewRect(50, 50, 100, 100)
	got := a.Intersect(b)
	want := Rect{X0: 50, Y0: 50, X1: 100, Y1: 100}
	if got != want {
		t.Fatalf("intersect = %+v, want %+v", got, want)
	}

	c := NewRect(200, 200, 10, 10)
	if !a.Intersect(c).Empty() {
		t.Fatalf("expected empty intersection, got %+v", a.Intersect(c))
	}
}

func TestZoomIntersection(t *testing.T) {
	z := NewZoom(Size{W: 100, H: 50})
	z.Scale = 2
	viewport := NewRect(0, 0, 120, 120)
	got := z.Intersection(viewport)
	want := Rect{X0: 0, Y0: 0, X1: 120, Y1: 100}
	if got != want {
		t.Fatalf("intersection = %+v, want %+v", got, want)
	}

	z.OffsetX = 500
	if !z.Intersection(viewport).Empty() {
		t.Fatalf("expected empty intersection for fully panned-out image")
	}
}

func TestSurfaceSizeRoundsUp(t *testing.T) {
	w, h := SurfaceSize(NewRect(0, 0, 10.2, 8.9))
	if w != 11 || h != 9 {
		t.Fatalf("SurfaceSize = %dx%d, want 11x9", w, h)
	}
	w, h = SurfaceSize(Rect{})
	if w != 0 || h != 0 {
		t.Fatalf("expected zero size for empty region, got %dx%d", w, h)
	}
}

func TestTextCardProducesOpaqueSurface(t *testing.T) {
	card := TextCard("archive", "archive.zip", ArchiveCardColors())
	if card.Width() <= 0 || card.Height() <= 0 {
		t.Fatalf("unexpected card size %dx%d", card.Width(), card.Height())
	}
	_, _, _, a := card.RGBA.At(0, 0).RGBA()
	if a == 0 {
		t.Fatalf("expected opaque background")
	}
}

func TestSurfacePasteAndScale(t *testing.T) {
	src := NewSurface(4, 4)
	src.Fill(ErrorCardColors().Back)
	dst := NewSurface(8, 8)
	dst.Paste(src, 2, 2)
	if dst.RGBA.RGBAAt(3, 3) != src.RGBA.RGBAAt(1, 1) {
		t.Fatalf("paste did not copy pixels")
	}
	scaled := src.Scaled(8, 2)
	if scaled.Width() != 8 || scaled.Height() != 2 {
		t.Fatalf("scaled size = %dx%d", scaled.Width(), scaled.Height())
	}
}
