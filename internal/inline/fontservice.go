package inline

import (
	"strings"
	"sync"

	"codeberg.org/go-pdf/fpdf"
)

// FpdfFontCache backs the FontCache interface with fpdf's built-in font
// metrics, the same collaborator the host renderer already measures text
// against (teacher's measureTextWidth/resolveFontFromStyle).
//
// fpdf.Fpdf is not safe for concurrent SetFont+GetStringWidth pairs, so
// every measurement is taken under mu.
type FpdfFontCache struct {
	mu       sync.Mutex
	pdf      *fpdf.Fpdf
	testFont *Font
}

// NewFpdfFontCache builds a cache around a throwaway fpdf document used
// purely for its font metrics table; nothing is ever rendered to it.
func NewFpdfFontCache() *FpdfFontCache {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 16)
	return &FpdfFontCache{
		pdf:      pdf,
		testFont: &Font{Family: "Helvetica", Style: "", Size: AuFromPixels(16)},
	}
}

// GetTestFont returns the placeholder font text-run scanning uses until
// per-style font selection is threaded through the box-builder (spec
// §4.6): a stand-in for the box's real computed font.
func (c *FpdfFontCache) GetTestFont() *Font {
	return c.testFont
}

// Measure returns the advance width of text shaped with font.
func (c *FpdfFontCache) Measure(font *Font, text string) Au {
	if text == "" {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pdf.SetFont(fontFamilyOrDefault(font.Family), font.Style, font.Size.Pixels())
	return AuFromPixels(c.pdf.GetStringWidth(text))
}

// MeasureWidestWord returns the width of the widest whitespace-delimited
// word in text, used by TextBox.MinWidth during width bubbling (spec §4.5).
func (c *FpdfFontCache) MeasureWidestWord(font *Font, text string) Au {
	var widest Au
	for _, word := range strings.Fields(text) {
		if w := c.Measure(font, word); w > widest {
			widest = w
		}
	}
	return widest
}

func fontFamilyOrDefault(family string) string {
	if family == "" {
		return "Helvetica"
	}
	return family
}
