package inline

import "testing"

func TestCompressWhitespaceNewlineCollapsesRuns(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no whitespace", "hello", "hello"},
		{"single spaces preserved", "hello world", "hello world"},
		{"multiple spaces collapse", "hello   world", "hello world"},
		{"newlines become a space", "hello\nworld", "hello world"},
		{"tabs and newlines mixed collapse to one space", "hello \t\n world", "hello world"},
		{"leading and trailing whitespace become single spaces", "  hi  ", " hi "},
		{"all whitespace collapses to one space", "\n\t  ", " "},
		{"empty string stays empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := compressWhitespaceNewline(tc.in)
			if got != tc.want {
				t.Fatalf("compressWhitespaceNewline(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTransformTextDispatchesOnPolicy(t *testing.T) {
	got := TransformText("a  b", CompressWhitespaceNewline)
	if got != "a b" {
		t.Fatalf("TransformText = %q, want %q", got, "a b")
	}
}

func TestTransformTextDoesNotThreadContextAcrossBoxes(t *testing.T) {
	// spec §9 open question 4: compression runs independently per box, so
	// a space straddling a box boundary is not collapsed with whatever
	// follows in the next box once the two are concatenated.
	left := TransformText("hello ", CompressWhitespaceNewline)
	right := TransformText(" world", CompressWhitespaceNewline)
	got := left + right
	want := "hello  world" // two spaces: one from each box's own trailing/leading whitespace
	if got != want {
		t.Fatalf("concatenated = %q, want %q (uncollapsed boundary)", got, want)
	}
}
