package inline

// InlineLayout orchestrates the two scans plus the width bubble-up and
// height assignment that turn a box-builder's raw RenderBox sequence
// into positioned line boxes (spec §4.5).
//
// It owns one TextRunScanner and one LineBoxScanner for its flow so
// repeated passes (e.g. a reflow after a width change) reuse allocated
// state instead of constructing new scanners each time.
type InlineLayout struct {
	Flow *InlineFlowState

	MinWidth  Au
	PrefWidth Au
	Height    Au

	textRuns *TextRunScanner
	lineBox  *LineBoxScanner
}

// NewInlineLayout creates a driver bound to flow.
func NewInlineLayout(flow *InlineFlowState) *InlineLayout {
	return &InlineLayout{
		Flow:     flow,
		textRuns: NewTextRunScanner(flow),
		lineBox:  NewLineBoxScanner(flow),
	}
}

// BubbleWidthsInline runs the TextRunScanner (mutating the flow's box
// sequence) and then sets the flow's min/pref width to the max over the
// resulting boxes' intrinsic widths (spec §4.5).
func (l *InlineLayout) BubbleWidthsInline(ctx *LayoutContext) {
	l.textRuns.Reset()
	l.textRuns.ScanForRuns(ctx)

	var minWidth, prefWidth Au
	for _, box := range l.Flow.Boxes() {
		ctx.logger().Debugf("InlineLayout[f%d]: measuring b%d (%s)", ctx.FlowID, box.DebugID(), box.Kind())
		minWidth = MaxAu(minWidth, box.MinWidth(ctx))
		prefWidth = MaxAu(prefWidth, box.PrefWidth(ctx))
	}
	l.MinWidth = minWidth
	l.PrefWidth = prefWidth
}

// AssignWidthsInline initializes each box's width by kind (spec §4.5).
// It must run after BubbleWidthsInline, since that is what replaces
// UnscannedText boxes with the Text/Image/Generic kinds this switches on.
func (l *InlineLayout) AssignWidthsInline(ctx *LayoutContext) {
	for _, box := range l.Flow.Boxes() {
		switch box.Kind() {
		case KindImage:
			img := box.(*ImageBox)
			img.SetWidth(img.IntrinsicWidth)
		case KindText:
			// Text boxes already carry their shaped width; nothing to do.
		case KindGeneric:
			box.SetWidth(GenericPlaceholderWidth)
		default:
			panic(ErrUnknownBoxVariant)
		}
	}
}

// AssignHeightInline stacks boxes vertically using
// max(lineHeightFallback, box height) as the row advance, and sets the
// flow's total height (spec §4.5, §4.7 for the fallback's grounding).
// This is a placeholder until true line-box height calculation replaces
// it (spec §4.7).
func (l *InlineLayout) AssignHeightInline(ctx *LayoutContext, lineHeightFallback Au) {
	var curY Au
	for _, box := range l.Flow.Boxes() {
		var boxHeight Au
		switch box.Kind() {
		case KindImage:
			boxHeight = box.(*ImageBox).IntrinsicHeight
		case KindText:
			boxHeight = box.Height()
		case KindGeneric:
			boxHeight = GenericPlaceholderHeight
		default:
			panic(ErrUnknownBoxVariant)
		}

		origin := box.Origin()
		origin.Y = curY
		box.SetOrigin(origin)
		curY += MaxAu(lineHeightFallback, boxHeight)
		box.SetHeight(boxHeight)
	}
	l.Height = curY
}

// ScanForLines runs the LineBoxScanner against containerWidth. It must
// run after AssignWidthsInline, since the packer decides fit using each
// box's assigned width.
func (l *InlineLayout) ScanForLines(ctx *LayoutContext, containerWidth Au) {
	l.lineBox.ScanForLines(ctx, containerWidth)
}

// BuildDisplayListInline forwards to each box; no culling yet (spec
// §4.5). The display-list type itself is an external collaborator (spec
// §1 "display-list emission... out of scope"), so this takes a sink
// func rather than a concrete display-list builder.
func (l *InlineLayout) BuildDisplayListInline(emit func(RenderBox)) {
	for _, box := range l.Flow.Boxes() {
		emit(box)
	}
}
