package inline

import "strings"

// fakeFontCache measures by rune count rather than real glyph metrics, so
// tests can assert exact widths without depending on fpdf's font tables.
type fakeFontCache struct {
	unitsPerRune Au
}

func newFakeFontCache() *fakeFontCache {
	return &fakeFontCache{unitsPerRune: 10}
}

func (f *fakeFontCache) GetTestFont() *Font {
	return &Font{Family: "Test", Style: "", Size: 16 * AuPerPixel}
}

func (f *fakeFontCache) Measure(_ *Font, text string) Au {
	return Au(len([]rune(text))) * f.unitsPerRune
}

func (f *fakeFontCache) MeasureWidestWord(font *Font, text string) Au {
	var widest Au
	for _, word := range strings.Fields(text) {
		if w := f.Measure(font, word); w > widest {
			widest = w
		}
	}
	return widest
}

func newTestContext() *LayoutContext {
	return NewLayoutContext(newFakeFontCache(), 1)
}
