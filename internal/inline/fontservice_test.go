package inline

import "testing"

// These assertions are deliberately structural, not pixel-exact: fpdf's
// built-in font tables back the real measurements, and pinning specific
// widths here would just re-encode fpdf's AFM data as magic numbers.

func TestFpdfFontCacheGetTestFontIsStable(t *testing.T) {
	c := NewFpdfFontCache()
	f := c.GetTestFont()
	if f == nil {
		t.Fatal("GetTestFont() = nil")
	}
	if c.GetTestFont() != f {
		t.Fatal("GetTestFont() should return the same placeholder font every call")
	}
}

func TestFpdfFontCacheMeasureEmptyStringIsZero(t *testing.T) {
	c := NewFpdfFontCache()
	if got := c.Measure(c.GetTestFont(), ""); got != 0 {
		t.Fatalf("Measure(\"\") = %d, want 0", got)
	}
}

func TestFpdfFontCacheMeasureIsMonotonicInLength(t *testing.T) {
	c := NewFpdfFontCache()
	font := c.GetTestFont()
	short := c.Measure(font, "i")
	long := c.Measure(font, "iiiiiiiiii")
	if long <= short {
		t.Fatalf("Measure(\"iiiiiiiiii\") = %d, want > Measure(\"i\") = %d", long, short)
	}
}

func TestFpdfFontCacheMeasureWidestWordPicksTheWidest(t *testing.T) {
	c := NewFpdfFontCache()
	font := c.GetTestFont()
	got := c.MeasureWidestWord(font, "a mmmmmmmmmm b")
	want := c.Measure(font, "mmmmmmmmmm")
	if got != want {
		t.Fatalf("MeasureWidestWord = %d, want %d (the long middle word)", got, want)
	}
}

func TestFpdfFontCacheMeasureWidestWordOfEmptyTextIsZero(t *testing.T) {
	c := NewFpdfFontCache()
	if got := c.MeasureWidestWord(c.GetTestFont(), "   "); got != 0 {
		t.Fatalf("MeasureWidestWord(whitespace only) = %d, want 0", got)
	}
}

func TestFontFamilyOrDefault(t *testing.T) {
	if got := fontFamilyOrDefault(""); got != "Helvetica" {
		t.Fatalf("fontFamilyOrDefault(\"\") = %q, want %q", got, "Helvetica")
	}
	if got := fontFamilyOrDefault("Times"); got != "Times" {
		t.Fatalf("fontFamilyOrDefault(%q) = %q, want %q", "Times", got, "Times")
	}
}
