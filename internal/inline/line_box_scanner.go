package inline

import "container/list"

// LineBoxScanner greedily packs a flow's (post-text-run) box sequence
// into line boxes constrained by a container width, splitting text boxes
// at legal break points and assigning per-box horizontal offsets (spec
// §4.4).
//
// The work list is a LIFO stack, not a queue (spec §9 "LIFO deferral"),
// so a box that splits into (left, right) always resumes with right
// before any further input box is consumed. container/list is used
// strictly as a stack here via PushFront/Remove(Front()).
type LineBoxScanner struct {
	flow *InlineFlowState

	newBoxes     []RenderBox
	workList     *list.List
	pendingSpan  BoxRange
	pendingWidth Au
	lineSpans    []BoxRange
}

// NewLineBoxScanner wraps a flow for a single scan_for_lines pass.
func NewLineBoxScanner(flow *InlineFlowState) *LineBoxScanner {
	return &LineBoxScanner{flow: flow, workList: list.New()}
}

// Reset clears accumulated output so the scanner can be reused on a
// different flow or rerun on unchanged input (spec §9, §8 idempotence).
func (s *LineBoxScanner) Reset() {
	s.newBoxes = nil
	s.workList.Init()
	s.pendingSpan = EmptyBoxRange()
	s.pendingWidth = 0
	s.lineSpans = nil
}

// ScanForLines runs the greedy packer against containerWidth and commits
// the result onto the flow (spec §4.4 "Output commit").
func (s *LineBoxScanner) ScanForLines(ctx *LayoutContext, containerWidth Au) {
	s.Reset()

	boxes := s.flow.Boxes()
	i := 0
	for {
		var curBox RenderBox
		if el := s.workList.Front(); el != nil {
			curBox = s.workList.Remove(el).(RenderBox)
		} else if i < len(boxes) {
			curBox = boxes[i]
			i++
		} else {
			break
		}

		if !s.tryAppendToLine(ctx, containerWidth, curBox) {
			ctx.logger().Debugf("LineBoxScanner[f%d]: box b%d wasn't appended, flushing line %d",
				ctx.FlowID, curBox.DebugID(), len(s.lineSpans))
			s.flushCurrentLine()
		}
	}

	if s.pendingSpan.Len > 0 {
		s.flushCurrentLine()
	}

	ctx.logger().Debugf("LineBoxScanner[f%d]: propagating %d lines", ctx.FlowID, len(s.lineSpans))
	s.flow.SwapBoxes(s.newBoxes)
	s.flow.SwapLines(s.lineSpans)
}

// tryAppendToLine is spec §4.4's per-box decision. It returns whether
// the box was appended to the current (pending) line.
func (s *LineBoxScanner) tryAppendToLine(ctx *LayoutContext, containerWidth Au, inBox RenderBox) bool {
	avail := containerWidth - s.pendingWidth
	lineIsEmpty := s.pendingSpan.Len == 0

	if inBox.Width() <= avail {
		s.pushBoxToLine(inBox)
		return true
	}

	if !inBox.CanSplit() {
		if lineIsEmpty {
			// Horizontal overflow is permitted; no signal is emitted
			// (spec §4.4 case 2, §8 boundary behavior).
			s.pushBoxToLine(inBox)
			return true
		}
		// Spec: "the caller flushes the line and retries the same box."
		// Re-queuing onto the work list before returning not-appended
		// gives that retry without special-casing the main loop.
		s.workList.PushFront(inBox)
		return false
	}

	outcome := inBox.SplitToWidth(ctx, avail, lineIsEmpty)
	switch outcome.Kind {
	case SplitCannotSplit:
		ctx.logger().Errorf("%v: b%d", ErrSplitContractViolation, inBox.DebugID())
		return false

	case SplitUnnecessary:
		s.pushBoxToLine(inBox)
		return true

	case SplitDidFit:
		s.pushBoxToLine(outcome.Left)
		s.workList.PushFront(outcome.Right)
		return true

	case SplitDidNotFit:
		if lineIsEmpty {
			s.pushBoxToLine(outcome.Left)
			s.workList.PushFront(outcome.Right)
			return true
		}
		s.workList.PushFront(inBox)
		return false

	default:
		return false
	}
}

// pushBoxToLine unconditionally appends box to the pending line.
func (s *LineBoxScanner) pushBoxToLine(box RenderBox) {
	if s.pendingSpan.Len == 0 {
		s.pendingSpan.Start = uint16(len(s.newBoxes))
	}
	s.pendingSpan.Len++
	s.pendingWidth += box.Width()
	s.newBoxes = append(s.newBoxes, box)
}

// flushCurrentLine sets horizontal offsets for the pending line's boxes
// (left-to-right, start-aligned; spec §4.4 "Line flushing"), records the
// line span, and resets the accumulator.
func (s *LineBoxScanner) flushCurrentLine() {
	start, end := int(s.pendingSpan.Start), int(s.pendingSpan.End())
	offsetX := Au(0)
	for i := start; i < end; i++ {
		box := s.newBoxes[i]
		origin := box.Origin()
		origin.X = offsetX
		box.SetOrigin(origin)
		offsetX += box.Width()
	}

	s.lineSpans = append(s.lineSpans, s.pendingSpan)
	s.pendingSpan = EmptyBoxRange()
	s.pendingWidth = 0
}
