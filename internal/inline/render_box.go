package inline

// BoxKind tags the variant a RenderBox carries, mirroring the original
// layout engine's RenderBox enum (UnscannedTextBox | TextBox | ImageBox |
// GenericBox).
type BoxKind int

const (
	KindUnscannedText BoxKind = iota
	KindText
	KindImage
	KindGeneric
)

func (k BoxKind) String() string {
	switch k {
	case KindUnscannedText:
		return "UnscannedText"
	case KindText:
		return "Text"
	case KindImage:
		return "Image"
	case KindGeneric:
		return "Generic"
	default:
		return "Unknown"
	}
}

// Point is a 2D position in Au.
type Point struct {
	X, Y Au
}

// SplitOutcome is the result of RenderBox.SplitToWidth, matching spec §4.4.
type SplitOutcome struct {
	Kind  SplitKind
	Left  RenderBox
	Right RenderBox
}

type SplitKind int

const (
	SplitCannotSplit SplitKind = iota
	SplitUnnecessary
	SplitDidFit
	SplitDidNotFit
)

// RenderBox is the capability set the inline core requires of a leaf
// inline rendering primitive (spec §3).
type RenderBox interface {
	Width() Au
	SetWidth(Au)
	Height() Au
	SetHeight(Au)
	Origin() Point
	SetOrigin(Point)

	DebugID() int
	Kind() BoxKind

	// RawText returns the unshaped source string. Only valid when
	// Kind() == KindUnscannedText; all other kinds return ("", false).
	RawText() (string, bool)

	// CanMergeWith reports whether two UnscannedText boxes may be
	// coalesced into the same clump. Only meaningful when both boxes are
	// KindUnscannedText.
	CanMergeWith(other RenderBox) bool

	CanSplit() bool
	SplitToWidth(ctx *LayoutContext, availWidth Au, lineIsEmpty bool) SplitOutcome

	MinWidth(ctx *LayoutContext) Au
	PrefWidth(ctx *LayoutContext) Au
}

// boxGeometry is the mutable position rectangle shared by every box kind.
type boxGeometry struct {
	width, height Au
	origin        Point
	debugID       int
}

func (g *boxGeometry) Width() Au         { return g.width }
func (g *boxGeometry) SetWidth(w Au)     { g.width = w }
func (g *boxGeometry) Height() Au        { return g.height }
func (g *boxGeometry) SetHeight(h Au)    { g.height = h }
func (g *boxGeometry) Origin() Point     { return g.origin }
func (g *boxGeometry) SetOrigin(p Point) { g.origin = p }
func (g *boxGeometry) DebugID() int      { return g.debugID }

// StyleKey is the conservative equivalence key spec §3 asks for:
// "same kind implies mergeable" is refined here to same font identity and
// whitespace handling, which is as far as can_merge_with needs to look
// without full CSS style comparison (out of scope per spec §1).
type StyleKey struct {
	FontFamily string
	FontStyle  string
	FontSize   Au
	Whitespace WhitespacePolicy
}

// UnscannedTextBox is raw DOM text not yet shaped into a TextRun.
type UnscannedTextBox struct {
	boxGeometry
	Style StyleKey
	Raw   string
}

func NewUnscannedTextBox(debugID int, style StyleKey, raw string) *UnscannedTextBox {
	b := &UnscannedTextBox{Style: style, Raw: raw}
	b.debugID = debugID
	return b
}

func (b *UnscannedTextBox) Kind() BoxKind         { return KindUnscannedText }
func (b *UnscannedTextBox) RawText() (string, bool) { return b.Raw, true }

func (b *UnscannedTextBox) CanMergeWith(other RenderBox) bool {
	o, ok := other.(*UnscannedTextBox)
	if !ok {
		return false
	}
	return b.Style == o.Style
}

func (b *UnscannedTextBox) CanSplit() bool { return false }

func (b *UnscannedTextBox) SplitToWidth(_ *LayoutContext, _ Au, _ bool) SplitOutcome {
	return SplitOutcome{Kind: SplitCannotSplit}
}

// MinWidth/PrefWidth on an UnscannedText box are never consulted in a
// correctly driven flow: bubble_widths_inline always runs the
// TextRunScanner first, so by the time widths are bubbled every text box
// is a TextBox. They return 0 rather than approximating, so that a caller
// skipping the scan notices a suspiciously zero width instead of a
// plausible but meaningless one.
func (b *UnscannedTextBox) MinWidth(_ *LayoutContext) Au  { return 0 }
func (b *UnscannedTextBox) PrefWidth(_ *LayoutContext) Au { return 0 }

// TextBox is a shaped TextRun restricted to a sub-range of its text,
// produced either by the TextRunScanner (the full run) or by a
// LineBoxScanner split (a fragment of it).
type TextBox struct {
	boxGeometry
	Run   *TextRun
	Start int // byte offset into Run.Text, inclusive
	End   int // byte offset into Run.Text, exclusive
}

func NewTextBox(debugID int, run *TextRun, start, end int) *TextBox {
	b := &TextBox{Run: run, Start: start, End: end}
	b.debugID = debugID
	return b
}

func (b *TextBox) Kind() BoxKind           { return KindText }
func (b *TextBox) RawText() (string, bool) { return "", false }
func (b *TextBox) CanMergeWith(RenderBox) bool { return false }
func (b *TextBox) CanSplit() bool          { return true }

// Text returns the substring of the run this box currently covers.
func (b *TextBox) Text() string {
	return b.Run.Text[b.Start:b.End]
}

func (b *TextBox) MinWidth(ctx *LayoutContext) Au {
	return ctx.FontCache.MeasureWidestWord(b.Run.Font, b.Text())
}

func (b *TextBox) PrefWidth(ctx *LayoutContext) Au {
	return ctx.FontCache.Measure(b.Run.Font, b.Text())
}

// ImageBox is a replaced inline element sized from its intrinsic
// dimensions (e.g. a decoded raster/vector image).
type ImageBox struct {
	boxGeometry
	IntrinsicWidth  Au
	IntrinsicHeight Au
}

func NewImageBox(debugID int, intrinsicW, intrinsicH Au) *ImageBox {
	b := &ImageBox{IntrinsicWidth: intrinsicW, IntrinsicHeight: intrinsicH}
	b.debugID = debugID
	return b
}

func (b *ImageBox) Kind() BoxKind             { return KindImage }
func (b *ImageBox) RawText() (string, bool)   { return "", false }
func (b *ImageBox) CanMergeWith(RenderBox) bool { return false }
func (b *ImageBox) CanSplit() bool            { return false }
func (b *ImageBox) SplitToWidth(_ *LayoutContext, _ Au, _ bool) SplitOutcome {
	return SplitOutcome{Kind: SplitCannotSplit}
}
func (b *ImageBox) MinWidth(_ *LayoutContext) Au  { return b.IntrinsicWidth }
func (b *ImageBox) PrefWidth(_ *LayoutContext) Au { return b.IntrinsicWidth }

// GenericBox is any other inline-level box the core doesn't need to
// understand the contents of (e.g. an anonymous inline wrapper).
type GenericBox struct {
	boxGeometry
}

func NewGenericBox(debugID int) *GenericBox {
	b := &GenericBox{}
	b.debugID = debugID
	return b
}

func (b *GenericBox) Kind() BoxKind             { return KindGeneric }
func (b *GenericBox) RawText() (string, bool)   { return "", false }
func (b *GenericBox) CanMergeWith(RenderBox) bool { return false }
func (b *GenericBox) CanSplit() bool            { return false }
func (b *GenericBox) SplitToWidth(_ *LayoutContext, _ Au, _ bool) SplitOutcome {
	return SplitOutcome{Kind: SplitCannotSplit}
}

// GenericPlaceholderWidth/Height are the fixed stand-in metrics
// assign_widths_inline/assign_height_inline use for a GenericBox, since
// the core has no CSS 'width'/'height' resolution to fall back on (spec
// §4.5). Grounded on the original's `au::from_px(45)` / `au::from_px(30)`.
const (
	GenericPlaceholderWidth  Au = 45 * AuPerPixel
	GenericPlaceholderHeight Au = 30 * AuPerPixel
)

func (b *GenericBox) MinWidth(_ *LayoutContext) Au  { return GenericPlaceholderWidth }
func (b *GenericBox) PrefWidth(_ *LayoutContext) Au { return GenericPlaceholderWidth }
