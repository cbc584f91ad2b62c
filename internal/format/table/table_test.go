package table

import "testing"

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"img", "alpha.png", "2.0 kB"},
		{"dir", "gallery", ""},
		{"img", "b.png", "512 B"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignLeft, AlignRight})
	want := []string{
		"img  alpha.png  2.0 kB",
		"dir  gallery",
		"img  b.png       512 B",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFormatCountsWideRunes(t *testing.T) {
	rows := [][]string{
		{"写真.png", "1"},
		{"a.png", "22"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignRight})
	// 写真 occupies four cells, so a.png needs three trailing spaces.
	if got[1] != "a.png     22" {
		t.Fatalf("row = %q", got[1])
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format(nil, nil); got != nil {
		t.Fatalf("Format(nil) = %v, want nil", got)
	}
}
