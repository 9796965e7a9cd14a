package inline

import "testing"

func TestBubbleWidthsInlineCoalescesAndMeasures(t *testing.T) {
	ctx := newTestContext()
	a := NewUnscannedTextBox(0, sameStyle(), "foo")
	b := NewUnscannedTextBox(1, sameStyle(), "barbaz")
	flow := NewInlineFlowState([]RenderBox{a, b}, nil)
	l := NewInlineLayout(flow)

	l.BubbleWidthsInline(ctx)

	boxes := flow.Boxes()
	if len(boxes) != 1 {
		t.Fatalf("len(boxes) = %d, want 1 (coalesced)", len(boxes))
	}
	tb, ok := boxes[0].(*TextBox)
	if !ok {
		t.Fatalf("box kind = %T, want *TextBox", boxes[0])
	}
	if tb.Text() != "foobarbaz" {
		t.Fatalf("text = %q, want %q", tb.Text(), "foobarbaz")
	}
	// fakeFontCache: 10 Au/rune. The merge concatenates raw text with no
	// separator, so "foobarbaz" (9 runes) is a single word for both the
	// full-width measurement and the widest-word measurement.
	if l.PrefWidth != 90 {
		t.Fatalf("PrefWidth = %d, want 90", l.PrefWidth)
	}
	if l.MinWidth != 90 {
		t.Fatalf("MinWidth = %d, want 90", l.MinWidth)
	}
}

func TestAssignWidthsInlineByKind(t *testing.T) {
	ctx := newTestContext()
	img := NewImageBox(0, 123, 45)
	gen := NewGenericBox(1)
	flow := NewInlineFlowState([]RenderBox{img, gen}, nil)
	l := NewInlineLayout(flow)

	l.AssignWidthsInline(ctx)

	if img.Width() != 123 {
		t.Fatalf("image width = %d, want 123 (intrinsic)", img.Width())
	}
	if gen.Width() != GenericPlaceholderWidth {
		t.Fatalf("generic width = %d, want %d", gen.Width(), GenericPlaceholderWidth)
	}
}

func TestAssignWidthsInlinePanicsOnUnscannedText(t *testing.T) {
	// AssignWidthsInline must run after BubbleWidthsInline has replaced
	// every UnscannedText box; calling it first reaches the default
	// switch arm and is a fatal invariant violation (spec §7).
	ctx := newTestContext()
	box := NewUnscannedTextBox(0, sameStyle(), "foo")
	flow := NewInlineFlowState([]RenderBox{box}, nil)
	l := NewInlineLayout(flow)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic for an unscanned box reaching width assignment")
		}
		if r != ErrUnknownBoxVariant {
			t.Fatalf("panic = %v, want ErrUnknownBoxVariant", r)
		}
	}()
	l.AssignWidthsInline(ctx)
}

func TestAssignHeightInlineStacksAndTracksFallback(t *testing.T) {
	ctx := newTestContext()
	short := NewGenericBox(0)
	short.SetHeight(5) // irrelevant: Generic always uses the placeholder height
	tall := NewImageBox(1, 10, 200*AuPerPixel)
	flow := NewInlineFlowState([]RenderBox{short, tall}, nil)
	l := NewInlineLayout(flow)

	const fallback Au = 50 * AuPerPixel
	l.AssignHeightInline(ctx, fallback)

	boxes := flow.Boxes()
	if boxes[0].Origin().Y != 0 {
		t.Fatalf("first box origin.Y = %d, want 0", boxes[0].Origin().Y)
	}
	// Generic's height is always the placeholder (30px), below the fallback
	// of 50px, so the row advances by the fallback.
	if boxes[1].Origin().Y != fallback {
		t.Fatalf("second box origin.Y = %d, want %d", boxes[1].Origin().Y, fallback)
	}
	// Image's own height (200px) exceeds the fallback, so it wins.
	wantHeight := fallback + 200*AuPerPixel
	if l.Height != wantHeight {
		t.Fatalf("Height = %d, want %d", l.Height, wantHeight)
	}
}

func TestScanForLinesDelegatesToLineBoxScanner(t *testing.T) {
	ctx := newTestContext()
	tb := newFullTextBox(ctx, 0, "hi")
	flow := NewInlineFlowState([]RenderBox{tb}, nil)
	l := NewInlineLayout(flow)

	l.ScanForLines(ctx, 100)

	if len(flow.Lines()) != 1 {
		t.Fatalf("len(lines) = %d, want 1", len(flow.Lines()))
	}
}

func TestBuildDisplayListInlineVisitsEveryBoxInOrder(t *testing.T) {
	flow := NewInlineFlowState([]RenderBox{NewGenericBox(0), NewGenericBox(1), NewGenericBox(2)}, nil)
	l := NewInlineLayout(flow)

	var seen []int
	l.BuildDisplayListInline(func(b RenderBox) {
		seen = append(seen, b.DebugID())
	})

	if len(seen) != 3 || seen[0] != 0 || seen[1] != 1 || seen[2] != 2 {
		t.Fatalf("visited = %v, want [0 1 2]", seen)
	}
}
