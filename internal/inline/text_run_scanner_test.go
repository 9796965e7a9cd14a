package inline

import "testing"

func sameStyle() StyleKey {
	return StyleKey{FontFamily: "Test", FontStyle: "", FontSize: 16 * AuPerPixel, Whitespace: CompressWhitespaceNewline}
}

func TestScanForRunsSingletonNonText(t *testing.T) {
	// Case A: a lone non-text box passes through untouched.
	g := NewGenericBox(7)
	flow := NewInlineFlowState([]RenderBox{g}, nil)
	s := NewTextRunScanner(flow)
	s.ScanForRuns(newTestContext())

	got := flow.Boxes()
	if len(got) != 1 {
		t.Fatalf("len(boxes) = %d, want 1", len(got))
	}
	if got[0] != RenderBox(g) {
		t.Fatal("singleton non-text box was replaced, want passthrough")
	}
}

func TestScanForRunsSingletonText(t *testing.T) {
	// Case B: a lone UnscannedText box is shaped into its own TextBox.
	box := NewUnscannedTextBox(1, sameStyle(), "hello")
	flow := NewInlineFlowState([]RenderBox{box}, nil)
	s := NewTextRunScanner(flow)
	s.ScanForRuns(newTestContext())

	got := flow.Boxes()
	if len(got) != 1 {
		t.Fatalf("len(boxes) = %d, want 1", len(got))
	}
	tb, ok := got[0].(*TextBox)
	if !ok {
		t.Fatalf("box kind = %T, want *TextBox", got[0])
	}
	if tb.Text() != "hello" {
		t.Fatalf("text = %q, want %q", tb.Text(), "hello")
	}
	if tb.DebugID() != 1 {
		t.Fatalf("debug id = %d, want 1", tb.DebugID())
	}
}

func TestScanForRunsCoalescesMatchingClump(t *testing.T) {
	// Case C: two adjacent, style-matching UnscannedText boxes merge into
	// one TextBox carrying their concatenated transformed text.
	a := NewUnscannedTextBox(0, sameStyle(), "foo")
	b := NewUnscannedTextBox(1, sameStyle(), "bar")
	flow := NewInlineFlowState([]RenderBox{a, b}, nil)
	s := NewTextRunScanner(flow)
	s.ScanForRuns(newTestContext())

	got := flow.Boxes()
	if len(got) != 1 {
		t.Fatalf("len(boxes) = %d, want 1", len(got))
	}
	tb := got[0].(*TextBox)
	if tb.Text() != "foobar" {
		t.Fatalf("text = %q, want %q", tb.Text(), "foobar")
	}
	if tb.DebugID() != a.DebugID() {
		t.Fatalf("merged box debug id = %d, want first box's id %d", tb.DebugID(), a.DebugID())
	}
}

func TestScanForRunsDoesNotCoalesceDifferentStyles(t *testing.T) {
	styleA := sameStyle()
	styleB := sameStyle()
	styleB.FontSize = 20 * AuPerPixel

	a := NewUnscannedTextBox(0, styleA, "foo")
	b := NewUnscannedTextBox(1, styleB, "bar")
	flow := NewInlineFlowState([]RenderBox{a, b}, nil)
	s := NewTextRunScanner(flow)
	s.ScanForRuns(newTestContext())

	got := flow.Boxes()
	if len(got) != 2 {
		t.Fatalf("len(boxes) = %d, want 2 (styles differ, no merge)", len(got))
	}
}

func TestScanForRunsIsIdempotent(t *testing.T) {
	a := NewUnscannedTextBox(0, sameStyle(), "foo")
	b := NewUnscannedTextBox(1, sameStyle(), "bar")
	flow := NewInlineFlowState([]RenderBox{a, b}, nil)
	s := NewTextRunScanner(flow)
	ctx := newTestContext()
	s.ScanForRuns(ctx)
	first := flow.Boxes()

	s.Reset()
	s.ScanForRuns(ctx)
	second := flow.Boxes()

	if len(first) != len(second) || len(second) != 1 {
		t.Fatalf("rerunning ScanForRuns on already-scanned output changed box count: %d then %d", len(first), len(second))
	}
	if first[0].(*TextBox).Text() != second[0].(*TextBox).Text() {
		t.Fatal("rerun produced different text than the first scan")
	}
}

func TestFlushClumpPanicsOnUnreachableCoalesce(t *testing.T) {
	// The scanner's own canCoalesceWith guard never lets a multi-box clump
	// form from non-text boxes, so this path is reached only by directly
	// driving flushClumpToList with deliberately invalid clump bounds -
	// exactly the invariant ErrUnreachableCoalesce documents.
	g0 := NewGenericBox(0)
	g1 := NewGenericBox(1)
	flow := NewInlineFlowState([]RenderBox{g0, g1}, nil)
	s := NewTextRunScanner(flow)
	s.clumpStart, s.clumpEnd, s.inClump = 0, 1, true

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic for a non-text multi-box clump")
		}
		if r != ErrUnreachableCoalesce {
			t.Fatalf("panic = %v, want ErrUnreachableCoalesce", r)
		}
	}()
	var out []RenderBox
	s.flushClumpToList(newTestContext(), flow.Boxes(), &out)
}

func TestRepairElemSpansContainsClumpOffByOneIsPreserved(t *testing.T) {
	// Clump occupies indices [0,1] (2 boxes, delta=2). An element range
	// that strictly contains the clump (plus one trailing box outside it)
	// should shrink by delta, not delta-1, reproducing the original's
	// undercount rather than the semantically "correct" shrink (spec §9 Q1).
	a := NewUnscannedTextBox(0, sameStyle(), "foo")
	b := NewUnscannedTextBox(1, sameStyle(), "bar")
	g := NewGenericBox(2)
	flow := NewInlineFlowState([]RenderBox{a, b, g}, []NodeRange{
		{Node: "container", Span: BoxRange{Start: 0, Len: 3}},
	})
	s := NewTextRunScanner(flow)
	s.ScanForRuns(newTestContext())

	got := flow.Elems()
	if len(got) != 1 {
		t.Fatalf("len(elems) = %d, want 1", len(got))
	}
	// delta = clump_box_count = 2; correct shrink would leave len=2
	// (1 merged text box + 1 trailing Generic box), but the preserved rule
	// subtracts the full delta from the original len=3, leaving 1.
	if got[0].Span.Len != 1 {
		t.Fatalf("span.Len = %d, want 1 (preserved off-by-one, not the corrected 2)", got[0].Span.Len)
	}
}
