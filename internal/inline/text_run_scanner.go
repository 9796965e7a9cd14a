package inline

import "strings"

// TextRunScanner performs the single forward pass that groups a flow's
// box sequence into maximal clumps of coalescible UnscannedText boxes,
// shapes each clump into a TextRun, and repairs element spans to account
// for the boxes elided by the merge (spec §4.3).
//
// A scanner instance is reusable across flows but must be Reset before
// each run (spec §9 "State-machine reset").
type TextRunScanner struct {
	flow       *InlineFlowState
	inClump    bool
	clumpStart int
	clumpEnd   int
}

// NewTextRunScanner wraps a flow for a single scan_for_runs pass.
func NewTextRunScanner(flow *InlineFlowState) *TextRunScanner {
	return &TextRunScanner{flow: flow}
}

// Reset zeroes the scanner's clump-tracking state so it can scan a
// different (or re-scanned) flow.
func (s *TextRunScanner) Reset() {
	s.inClump = false
	s.clumpStart = 0
	s.clumpEnd = 0
}

// ScanForRuns is the pass described in spec §4.3. It is a no-op on an
// already-scanned flow: no two adjacent UnscannedText boxes remain
// coalescible once every clump has been merged, so the fixpoint property
// (spec §8) holds by construction.
func (s *TextRunScanner) ScanForRuns(ctx *LayoutContext) {
	inBoxes := s.flow.Boxes()
	if len(inBoxes) == 0 {
		return
	}

	outBoxes := make([]RenderBox, 0, len(inBoxes))
	var prev RenderBox

	for i, box := range inBoxes {
		canCoalesce := i > 0 && canCoalesceWith(prev, box)

		switch {
		case !s.inClump:
			s.resetClumpToIndex(i)
		case canCoalesce:
			s.clumpEnd = i
		default:
			s.flushClumpToList(ctx, inBoxes, &outBoxes)
			s.resetClumpToIndex(i)
		}
		prev = box
	}
	if s.inClump {
		s.flushClumpToList(ctx, inBoxes, &outBoxes)
	}

	ctx.logger().Debugf("TextRunScanner[f%d]: swapping out %d boxes for %d", ctx.FlowID, len(inBoxes), len(outBoxes))
	s.flow.SwapBoxes(outBoxes)
	s.inClump = false
}

// canCoalesceWith is spec §4.3's coalescibility predicate: both boxes
// must be UnscannedText and agree per CanMergeWith.
func canCoalesceWith(a, b RenderBox) bool {
	if a.Kind() != KindUnscannedText || b.Kind() != KindUnscannedText {
		return false
	}
	return a.CanMergeWith(b)
}

func (s *TextRunScanner) resetClumpToIndex(i int) {
	s.clumpStart = i
	s.clumpEnd = i
	s.inClump = true
}

// flushClumpToList implements spec §4.3's flush rules A-D and, for case
// C, the element-span repair table.
func (s *TextRunScanner) flushClumpToList(ctx *LayoutContext, inBoxes []RenderBox, outBoxes *[]RenderBox) {
	cs, ce := s.clumpStart, s.clumpEnd
	isSingleton := cs == ce
	isTextClump := inBoxes[cs].Kind() == KindUnscannedText

	switch {
	case !isSingleton && !isTextClump:
		panic(ErrUnreachableCoalesce)

	case isSingleton && !isTextClump:
		// Case A: copy the single non-text box unchanged.
		*outBoxes = append(*outBoxes, inBoxes[cs])

	case isSingleton && isTextClump:
		// Case B: shape the single box's text as its own run.
		ut := inBoxes[cs].(*UnscannedTextBox)
		text := TransformText(ut.Raw, CompressWhitespaceNewline)
		font := ctx.FontCache.GetTestFont()
		run := &TextRun{Font: font, Text: text}
		newBox := NewTextBox(ut.DebugID(), run, 0, len(text))
		newBox.SetWidth(ctx.FontCache.Measure(font, text))
		newBox.SetHeight(ut.Height())
		*outBoxes = append(*outBoxes, newBox)

	default:
		// Case C: concatenate the clump's transformed text into one run
		// and repair element spans for the boxes this elides.
		clumpBoxCount := ce - cs + 1
		var sb strings.Builder
		for i := cs; i <= ce; i++ {
			ut := inBoxes[i].(*UnscannedTextBox)
			sb.WriteString(TransformText(ut.Raw, CompressWhitespaceNewline))
		}
		s.repairElemSpans(ctx, uint16(cs), uint16(ce), uint16(clumpBoxCount))

		text := sb.String()
		font := ctx.FontCache.GetTestFont()
		run := &TextRun{Font: font, Text: text}
		newBox := NewTextBox(inBoxes[cs].DebugID(), run, 0, len(text))
		newBox.SetWidth(ctx.FontCache.Measure(font, text))
		newBox.SetHeight(inBoxes[cs].Height())
		*outBoxes = append(*outBoxes, newBox)
	}

	s.inClump = false
}

// repairElemSpans adjusts every NodeRange in the flow to account for the
// clump [clumpStart, clumpEnd] (inclusive) being replaced by a single
// box, per spec §4.3's adjustment table.
func (s *TextRunScanner) repairElemSpans(ctx *LayoutContext, clumpStart, clumpEnd, delta uint16) {
	elems := s.flow.elems
	for i := range elems {
		span := elems[i].Span
		rel, overlap := RelationOfClumpAndRange(span, clumpStart, clumpEnd)
		ctx.logger().Debugf("TextRunScanner[f%d]: repairing range %+v, relation=%d", ctx.FlowID, span, rel)

		switch rel {
		case RelEntirelyBefore:
			// no change
		case RelEntirelyAfter:
			span.Start -= delta
		case RelCoincides, RelContainedByClump:
			span.Start = clumpStart
			span.Len = 1
		case RelContainsClump:
			// Preserves the source's literal `span.len -= clump_box_count`
			// even though the clump is replaced by exactly one box, not
			// zero: this under-counts the replacement by one box. See
			// DESIGN.md Open Question 1 and
			// TestRepairElemSpansContainsClumpOffByOneIsPreserved.
			span.Len -= delta
		case RelOverlapsClumpStart:
			span.Len -= overlap - 1
		case RelOverlapsClumpEnd:
			span.Start = clumpStart
			span.Len -= overlap - 1
		}
		elems[i].Span = span
	}
}
