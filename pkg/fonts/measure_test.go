package fonts

import (
	"strings"
	"testing"
)

func TestDefaultMeasurer(t *testing.T) {
	m := Default()

	short := m.Measure("Jan")
	long := m.Measure("January")
	if short.Width <= 0 {
		t.Fatalf("Measure(Jan).Width = %v, want > 0", short.Width)
	}
	if long.Width <= short.Width {
		t.Errorf("January (%v) should be wider than Jan (%v)", long.Width, short.Width)
	}
	if short.Height <= 0 || short.Height != long.Height {
		t.Errorf("heights = %v, %v; want equal positive line height", short.Height, long.Height)
	}
	if m.Measure("").Width != 0 {
		t.Errorf("empty string width = %v, want 0", m.Measure("").Width)
	}
}

func TestSubstringLengthMonotonic(t *testing.T) {
	m := Default()
	label := "Quarterly revenue"

	prev := -1.0
	for n := 0; n <= len(label); n++ {
		w := m.SubstringLength(label, n)
		if w < prev {
			t.Fatalf("SubstringLength(%d) = %v < SubstringLength(%d) = %v", n, w, n-1, prev)
		}
		prev = w
	}
	if got, want := m.SubstringLength(label, len(label)+10), m.Measure(label).Width; got != want {
		t.Errorf("clamped SubstringLength = %v, want %v", got, want)
	}
	if m.SubstringLength(label, -1) != 0 {
		t.Error("negative n should measure nothing")
	}
}

func TestMonospace(t *testing.T) {
	m := Monospace{CharWidth: 6, LineHeight: 12}
	if got := m.Measure("héllo"); got.Width != 30 || got.Height != 12 {
		t.Errorf("Measure(héllo) = %+v, want {30 12}", got)
	}
	if got := m.SubstringLength("héllo", 2); got != 12 {
		t.Errorf("SubstringLength(héllo, 2) = %v, want 12", got)
	}
}

func TestPrefix(t *testing.T) {
	tests := []struct {
		s    string
		n    int
		want string
	}{
		{"abc", 0, ""},
		{"abc", 2, "ab"},
		{"abc", 3, "abc"},
		{"abc", 9, "abc"},
		{"äöü", 2, "äö"},
	}
	for _, tt := range tests {
		if got := prefix(tt.s, tt.n); got != tt.want {
			t.Errorf("prefix(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
		}
	}
}

func TestGoRegularBase64(t *testing.T) {
	b := GoRegularBase64()
	if len(b) == 0 || strings.ContainsAny(b, " \n") {
		t.Fatal("base64 font data should be a non-empty single line")
	}
	if GoRegularBase64() != b {
		t.Error("cached value changed")
	}
}
