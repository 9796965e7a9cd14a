package inline

import "testing"

func newFullTextBox(ctx *LayoutContext, debugID int, text string) *TextBox {
	font := ctx.FontCache.GetTestFont()
	run := &TextRun{Font: font, Text: text}
	tb := NewTextBox(debugID, run, 0, len(text))
	tb.SetWidth(ctx.FontCache.Measure(font, text))
	tb.SetHeight(16 * AuPerPixel)
	return tb
}

func TestScanForLinesSingleBoxFits(t *testing.T) {
	ctx := newTestContext()
	tb := newFullTextBox(ctx, 0, "hi") // width = 20

	flow := NewInlineFlowState([]RenderBox{tb}, nil)
	s := NewLineBoxScanner(flow)
	s.ScanForLines(ctx, 100)

	lines := flow.Lines()
	if len(lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1", len(lines))
	}
	if lines[0] != (BoxRange{Start: 0, Len: 1}) {
		t.Fatalf("line span = %+v, want {0 1}", lines[0])
	}
	if flow.Boxes()[0].Origin().X != 0 {
		t.Fatalf("box origin.X = %d, want 0", flow.Boxes()[0].Origin().X)
	}
}

func TestScanForLinesWrapsWhenOverflowing(t *testing.T) {
	ctx := newTestContext()
	// a is 70 wide, leaving only 10 units of a width-80 container for b.
	// b ("bb cc") has one internal break point, but not even its first
	// word fits in that 10-unit remainder, so split_to_width reports
	// SplitDidNotFit; on a non-empty line that defers the *whole*,
	// unsplit b onto the work list, which lands it on a fresh line.
	a := newFullTextBox(ctx, 0, "aaaaaaa")
	b := newFullTextBox(ctx, 1, "bb cc")

	flow := NewInlineFlowState([]RenderBox{a, b}, nil)
	s := NewLineBoxScanner(flow)
	s.ScanForLines(ctx, 80)

	lines := flow.Lines()
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if lines[0] != (BoxRange{Start: 0, Len: 1}) || lines[1] != (BoxRange{Start: 1, Len: 1}) {
		t.Fatalf("line spans = %+v, want [{0 1} {1 1}]", lines)
	}
	second := flow.Boxes()[lines[1].Start].(*TextBox)
	if second.Text() != "bb cc" {
		t.Fatalf("second line text = %q, want %q (unsplit)", second.Text(), "bb cc")
	}
}

func TestScanForLinesUnsplittableOverflowOnEmptyLineIsAllowed(t *testing.T) {
	ctx := newTestContext()
	g := NewGenericBox(0)
	g.SetWidth(1000) // wider than the container, but CanSplit() == false

	flow := NewInlineFlowState([]RenderBox{g}, nil)
	s := NewLineBoxScanner(flow)
	s.ScanForLines(ctx, 50)

	lines := flow.Lines()
	if len(lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1 (overflow permitted on an empty line)", len(lines))
	}
	if lines[0].Len != 1 {
		t.Fatalf("line span len = %d, want 1", lines[0].Len)
	}
}

func TestScanForLinesUnsplittableOnNonEmptyLineDefersToNextLine(t *testing.T) {
	ctx := newTestContext()
	a := newFullTextBox(ctx, 0, "aa") // width 20
	g := NewGenericBox(1)
	g.SetWidth(90) // doesn't fit after "aa" in a width-100 container

	flow := NewInlineFlowState([]RenderBox{a, g}, nil)
	s := NewLineBoxScanner(flow)
	s.ScanForLines(ctx, 100)

	lines := flow.Lines()
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2 (generic box deferred to its own line)", len(lines))
	}
	if lines[0].Len != 1 || lines[1].Len != 1 {
		t.Fatalf("line spans = %+v, want two singleton lines", lines)
	}
	newBoxes := flow.Boxes()
	if newBoxes[1].Kind() != KindGeneric {
		t.Fatalf("second line's box kind = %v, want Generic", newBoxes[1].Kind())
	}
}

func TestScanForLinesSplitsTextThatDoesNotFit(t *testing.T) {
	ctx := newTestContext()
	// "aaaaaaaaa four five" (19 runes) doesn't fit a width-100 container.
	// The first split yields left="aaaaaaaaa" (90) and defers
	// right="four five" (90) onto the work list (SplitDidFit). Right
	// then doesn't fit the 10 units left on the line; since it still has
	// an internal break point but no word fits in that remainder, it
	// reports SplitDidNotFit, and on a non-empty line the *original*
	// (unsplit) box is deferred and retried - landing whole on a fresh
	// line rather than being fragmented further.
	tb := newFullTextBox(ctx, 0, "aaaaaaaaa four five")

	flow := NewInlineFlowState([]RenderBox{tb}, nil)
	s := NewLineBoxScanner(flow)
	s.ScanForLines(ctx, 100)

	lines := flow.Lines()
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	boxes := flow.Boxes()
	first := boxes[lines[0].Start].(*TextBox)
	second := boxes[lines[1].Start].(*TextBox)
	if first.Text() != "aaaaaaaaa" {
		t.Fatalf("first line text = %q, want %q", first.Text(), "aaaaaaaaa")
	}
	if second.Text() != "four five" {
		t.Fatalf("second line text = %q, want %q", second.Text(), "four five")
	}
}

func TestScanForLinesCannotSplitIsDroppedNotRetried(t *testing.T) {
	ctx := newTestContext()
	// A single unbroken word wider than the container: no break points
	// exist, so SplitToWidth reports SplitCannotSplit. On a non-empty
	// line this must be logged and dropped (not re-queued), or the
	// scanner would loop forever retrying a box that can never fit.
	a := newFullTextBox(ctx, 0, "aa") // width 20, starts the line
	huge := newFullTextBox(ctx, 1, "supercalifragilisticexpialidocious")

	flow := NewInlineFlowState([]RenderBox{a, huge}, nil)
	s := NewLineBoxScanner(flow)
	s.ScanForLines(ctx, 70)

	for _, b := range flow.Boxes() {
		if tb, ok := b.(*TextBox); ok && tb.DebugID() == 1 {
			t.Fatal("unsplittable box was retried/appended instead of dropped")
		}
	}
}

func TestScanForLinesIsIdempotent(t *testing.T) {
	ctx := newTestContext()
	a := newFullTextBox(ctx, 0, "aaaaa")
	b := NewGenericBox(1)
	b.SetWidth(50)
	flow := NewInlineFlowState([]RenderBox{a, b}, nil)
	s := NewLineBoxScanner(flow)

	s.ScanForLines(ctx, 80)
	first := flow.Lines()

	s.ScanForLines(ctx, 80)
	second := flow.Lines()

	if len(first) != len(second) {
		t.Fatalf("rerun changed line count: %d then %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("rerun changed line %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}
