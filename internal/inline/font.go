package inline

// Font identifies the shaping/measurement identity used by the font
// service: family, style (bold/italic flags folded into a short string,
// matching the teacher's fpdf style strings "", "B", "I", "BI"), and size.
type Font struct {
	Family string
	Style  string
	Size   Au
}

// TextRun is a shaped, immutable sequence produced by the font service
// from a source string (spec glossary: "Text run"). The inline core
// treats it as opaque besides its text and font identity; actual glyph
// positions are the font service's concern.
type TextRun struct {
	Font *Font
	Text string
}

// FontCache is the font service external collaborator (spec §6): given a
// font and a string it can measure, or it can hand back a placeholder
// "test font" until per-style font selection exists.
type FontCache interface {
	// GetTestFont returns the placeholder font used until per-style font
	// selection lands (spec §6).
	GetTestFont() *Font

	// Measure returns the shaped advance width of text set in font.
	Measure(font *Font, text string) Au

	// MeasureWidestWord returns the width of the widest whitespace-
	// delimited word in text, the box's min_width contribution.
	MeasureWidestWord(font *Font, text string) Au
}
