package inline

import "unicode"

// breakPoints returns, in ascending order, the byte offsets of every
// legal line-break opportunity in text: the start of each maximal run of
// whitespace. Bidirectional text, hyphenation, and justification break
// opportunities are out of scope (spec §1 Non-goals); this is plain
// space-delimited word wrapping.
func breakPoints(text string) []int {
	var pts []int
	inSpace := false
	for i, r := range text {
		if unicode.IsSpace(r) {
			if !inSpace {
				pts = append(pts, i)
				inSpace = true
			}
		} else {
			inSpace = false
		}
	}
	return pts
}

func trimTrailingSpace(s string) string {
	i := len(s)
	for i > 0 && unicode.IsSpace(rune(s[i-1])) {
		i--
	}
	return s[:i]
}

func trimLeadingSpace(s string) string {
	i := 0
	for i < len(s) && unicode.IsSpace(rune(s[i])) {
		i++
	}
	return s[i:]
}

// SplitToWidth splits a TextBox at the rightmost legal break point whose
// left fragment fits within availWidth, per spec §4.4. The text itself is
// never re-shaped; both fragments reference the same underlying TextRun.
func (b *TextBox) SplitToWidth(ctx *LayoutContext, availWidth Au, lineIsEmpty bool) SplitOutcome {
	text := b.Text()
	full := ctx.FontCache.Measure(b.Run.Font, text)
	if full <= availWidth {
		return SplitOutcome{Kind: SplitUnnecessary, Left: b}
	}

	pts := breakPoints(text)
	if len(pts) == 0 {
		return SplitOutcome{Kind: SplitCannotSplit, Left: b}
	}

	bestIdx := -1
	for _, p := range pts {
		left := trimTrailingSpace(text[:p])
		if ctx.FontCache.Measure(b.Run.Font, left) <= availWidth {
			bestIdx = p
		}
	}

	if bestIdx == -1 {
		// Not even the first word fits; force it and defer the rest.
		p := pts[0]
		return SplitOutcome{
			Kind:  SplitDidNotFit,
			Left:  b.fragment(ctx, b.Start, b.Start+p),
			Right: b.fragment(ctx, b.Start+p, b.End),
		}
	}

	leftEnd := b.Start + len(trimTrailingSpace(text[:bestIdx]))
	rightStart := b.Start + bestIdx + (len(text[bestIdx:]) - len(trimLeadingSpace(text[bestIdx:])))
	return SplitOutcome{
		Kind:  SplitDidFit,
		Left:  b.fragment(ctx, b.Start, leftEnd),
		Right: b.fragment(ctx, rightStart, b.End),
	}
}

// fragment builds a new TextBox over [start,end) of the same run, with
// its width measured by the font service (spec §4.5: text boxes carry
// their width from shaping, not from a later width-assignment pass).
func (b *TextBox) fragment(ctx *LayoutContext, start, end int) *TextBox {
	f := NewTextBox(b.DebugID(), b.Run, start, end)
	f.SetWidth(ctx.FontCache.Measure(b.Run.Font, f.Text()))
	f.SetHeight(b.Height())
	return f
}
