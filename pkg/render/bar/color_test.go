package bar

import (
	"fmt"
	"slices"
	"testing"
)

func TestColorSpecResolve(t *testing.T) {
	metrics := []string{"a", "b"}
	if got := (ColorSpec{}).String(); got != "default" {
		t.Errorf("zero spec = %q", got)
	}
	if got := ColorFromFunc(nil).String(); got != "default" {
		t.Errorf("nil func spec = %q", got)
	}

	p := ColorFromPalette("#000000")
	if got := p.Resolve(metrics)("b"); got != "#000000" {
		t.Errorf("single color palette = %q", got)
	}
	if got := p.Palette(); len(got) != 1 {
		t.Errorf("Palette() = %v", got)
	}
	if (ColorSpec{}).Palette() != nil {
		t.Error("default spec has no explicit palette")
	}
}

func TestDefaultPaletteIsCopy(t *testing.T) {
	p := DefaultPalette()
	p[0] = "#ffffff"
	if DefaultPalette()[0] != "#98abc5" {
		t.Error("DefaultPalette must not expose the shared palette")
	}
}

func ExampleColorFromPalette() {
	color := ColorFromPalette("#1b9e77", "#d95f02").Resolve([]string{"apples", "pears", "plums"})
	fmt.Println(color("apples"), color("pears"), color("plums"))
	// Output: #1b9e77 #d95f02 #1b9e77
}

func TestChartColorUnknownLabel(t *testing.T) {
	c := New(newCanvas(), monthRecords(), monthKey)
	first := c.Color("zzz")
	if !slices.Contains(DefaultPalette(), first) {
		t.Fatalf("Color(zzz) = %q, not a palette color", first)
	}
	c.Color("yyy")
	if got := c.Color("zzz"); got != first {
		t.Errorf("Color(zzz) changed from %q to %q", first, got)
	}
	if got := c.Color("a"); got != DefaultPalette()[0] {
		t.Errorf("Color(a) = %q after unknown lookups, want first palette color", got)
	}
}
