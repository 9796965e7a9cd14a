package inline

import (
	"reflect"
	"testing"
)

func TestBreakPoints(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []int
	}{
		{"no spaces", "hello", nil},
		{"one space", "hello world", []int{5}},
		{"multiple spaces collapse to one break point per run", "a   b", []int{1}},
		{"leading space", " hello", []int{0}},
		{"trailing space", "hello ", []int{5}},
		{"several words", "one two three", []int{3, 7}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := breakPoints(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("breakPoints(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestTrimTrailingSpace(t *testing.T) {
	if got := trimTrailingSpace("hello   "); got != "hello" {
		t.Fatalf("trimTrailingSpace = %q, want %q", got, "hello")
	}
	if got := trimTrailingSpace("hello"); got != "hello" {
		t.Fatalf("trimTrailingSpace = %q, want %q", got, "hello")
	}
}

func TestTrimLeadingSpace(t *testing.T) {
	if got := trimLeadingSpace("   hello"); got != "hello" {
		t.Fatalf("trimLeadingSpace = %q, want %q", got, "hello")
	}
	if got := trimLeadingSpace("hello"); got != "hello" {
		t.Fatalf("trimLeadingSpace = %q, want %q", got, "hello")
	}
}

func TestSplitToWidthUnnecessaryWhenItAlreadyFits(t *testing.T) {
	ctx := newTestContext()
	tb := newFullTextBox(ctx, 0, "hi") // width 20
	out := tb.SplitToWidth(ctx, 100, true)
	if out.Kind != SplitUnnecessary {
		t.Fatalf("Kind = %v, want SplitUnnecessary", out.Kind)
	}
	if out.Left != RenderBox(tb) {
		t.Fatal("SplitUnnecessary must return the original box untouched")
	}
}

func TestSplitToWidthCannotSplitWithNoBreakPoints(t *testing.T) {
	ctx := newTestContext()
	tb := newFullTextBox(ctx, 0, "supercalifragilistic") // one unbroken word, too wide
	out := tb.SplitToWidth(ctx, 10, false)
	if out.Kind != SplitCannotSplit {
		t.Fatalf("Kind = %v, want SplitCannotSplit", out.Kind)
	}
}

func TestSplitToWidthDidFitAtTheRightmostBreakPoint(t *testing.T) {
	ctx := newTestContext()
	// "one two three": widths one=30,two=30,three=50 (+ spaces). Full
	// width = 13 runes * 10 = 130. avail=70 should land the break after
	// "one two" (7 runes, width 70), the rightmost break that still fits.
	tb := newFullTextBox(ctx, 0, "one two three")
	out := tb.SplitToWidth(ctx, 70, true)
	if out.Kind != SplitDidFit {
		t.Fatalf("Kind = %v, want SplitDidFit", out.Kind)
	}
	left := out.Left.(*TextBox)
	right := out.Right.(*TextBox)
	if left.Text() != "one two" {
		t.Fatalf("left = %q, want %q", left.Text(), "one two")
	}
	if right.Text() != "three" {
		t.Fatalf("right = %q, want %q", right.Text(), "three")
	}
}

func TestSplitToWidthDidNotFitWhenNoWordFitsButBreaksExist(t *testing.T) {
	ctx := newTestContext()
	tb := newFullTextBox(ctx, 0, "aaaa bbbb")
	// avail is smaller than even the first word ("aaaa", width 40).
	out := tb.SplitToWidth(ctx, 5, false)
	if out.Kind != SplitDidNotFit {
		t.Fatalf("Kind = %v, want SplitDidNotFit", out.Kind)
	}
	left := out.Left.(*TextBox)
	right := out.Right.(*TextBox)
	if left.Text() != "aaaa" {
		t.Fatalf("left = %q, want %q", left.Text(), "aaaa")
	}
	if right.Text() != " bbbb" {
		t.Fatalf("right = %q, want %q", right.Text(), " bbbb")
	}
}

func TestFragmentInheritsFontAndMeasuresItsOwnWidth(t *testing.T) {
	ctx := newTestContext()
	tb := newFullTextBox(ctx, 3, "hello world")
	f := tb.fragment(ctx, 0, 5)
	if f.DebugID() != 3 {
		t.Fatalf("fragment debug id = %d, want 3 (inherited)", f.DebugID())
	}
	if f.Text() != "hello" {
		t.Fatalf("fragment text = %q, want %q", f.Text(), "hello")
	}
	if f.Width() != 50 {
		t.Fatalf("fragment width = %d, want 50", f.Width())
	}
}
