package inline

// InlineFlowState is the container an inline flow carries: the ordered
// box sequence, the computed line spans, and the element spans that must
// stay consistent as the box sequence is rewritten in place (spec §3).
//
// Iteration is single-threaded; no concurrent mutation is permitted
// while a scanner holds a reference (spec §5). Callers must follow the
// "collect then swap" pattern: build a whole new box/line slice, then
// call SwapBoxes/commit lines atomically rather than mutating in place
// while iterating.
type InlineFlowState struct {
	boxes []RenderBox
	lines []BoxRange
	elems []NodeRange
}

// NewInlineFlowState wraps a box sequence produced by the external
// box-builder, ready for the width-bubbling and line-scanning passes.
func NewInlineFlowState(boxes []RenderBox, elems []NodeRange) *InlineFlowState {
	return &InlineFlowState{boxes: boxes, elems: elems}
}

// Boxes returns the current box sequence. Callers must not mutate the
// returned slice directly; use SwapBoxes.
func (s *InlineFlowState) Boxes() []RenderBox { return s.boxes }

// Lines returns the computed line spans.
func (s *InlineFlowState) Lines() []BoxRange { return s.lines }

// Elems returns the element spans.
func (s *InlineFlowState) Elems() []NodeRange { return s.elems }

// SwapBoxes atomically replaces the box sequence, matching the source's
// "collect then swap" discipline (spec §5, §9 "Ownership of boxes").
func (s *InlineFlowState) SwapBoxes(newBoxes []RenderBox) {
	s.boxes = newBoxes
}

// PushLine appends a line span produced by the LineBoxScanner.
func (s *InlineFlowState) PushLine(r BoxRange) {
	s.lines = append(s.lines, r)
}

// ResetLines clears the line spans. Required before a scanner reruns on
// state it has already processed (spec §9 "State-machine reset").
func (s *InlineFlowState) ResetLines() {
	s.lines = nil
}

// SwapLines atomically replaces the line spans.
func (s *InlineFlowState) SwapLines(newLines []BoxRange) {
	s.lines = newLines
}
