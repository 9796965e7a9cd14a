package layout

import (
	"fmt"
	"strings"

	"github.com/inlinecore/inlinecore/internal/inline"
	"github.com/inlinecore/inlinecore/internal/style"
)

// defaultLineHeightFallbackPx is the row-advance fallback passed to
// AssignHeightInline. It keeps the original scanner's au::from_px(20) as a
// single fixed value; it is not derived from the runs' font sizes (spec §4.7).
const defaultLineHeightFallbackPx = 20.0

// layoutInlineRunsCore is the box-builder (spec §4.6): it turns the
// teacher's collected inlineRuns into the core's RenderBox sequence, drives
// the four InlineLayout entry points in spec order, and writes the
// resulting geometry back onto container's Children as InlineBoxes.
//
// A fatal classification error (ErrUnreachableCoalesce,
// ErrUnknownBoxVariant, ErrRelationClassification) aborts only this
// paragraph's layout, matching spec §7 "aborts the flow's layout step"
// without taking down the whole conversion.
func (e *Engine) layoutInlineRunsCore(container *BlockBox, runs []inlineRun) {
	boxes, styleByID := e.buildUnscannedTextBoxes(runs)
	if len(boxes) == 0 {
		container.Height = 0
		return
	}

	flow := inline.NewInlineFlowState(boxes, nil)
	il := inline.NewInlineLayout(flow)
	ctx := inline.NewLayoutContext(e.fontCache, int(container.Y))

	if err := e.runInlineLayout(ctx, il, container.Width); err != nil {
		if e.Debug {
			fmt.Printf("inline layout aborted for paragraph: %v\n", err)
		}
		container.Height = 0
		return
	}

	e.emitInlineBoxes(container, il, styleByID)
}

// buildUnscannedTextBoxes converts each styled inlineRun into one
// UnscannedTextBox carrying the StyleKey the TextRunScanner needs to decide
// coalescibility (spec §4.3). styleByID lets the renderer recover each
// resulting box's full ComputedStyle (color, text-decoration, ...) after
// scanning has merged/split boxes and only a StyleKey-level identity
// survives.
func (e *Engine) buildUnscannedTextBoxes(runs []inlineRun) ([]inline.RenderBox, map[int]style.ComputedStyle) {
	boxes := make([]inline.RenderBox, 0, len(runs))
	styleByID := make(map[int]style.ComputedStyle, len(runs))

	id := 0
	for _, run := range runs {
		text := run.text
		if text == "" {
			continue
		}
		fs := 16.0
		if prop, ok := run.style["font-size"]; ok && strings.TrimSpace(prop.Value) != "" {
			fs = parseLength(prop.Value, 0, 16)
		}
		family, fontStyle := resolveFontFromStyle(run.style)

		key := inline.StyleKey{
			FontFamily: family,
			FontStyle:  fontStyle,
			FontSize:   inline.AuFromPixels(fs),
			Whitespace: inline.CompressWhitespaceNewline,
		}
		box := inline.NewUnscannedTextBox(id, key, text)
		boxes = append(boxes, box)
		styleByID[id] = run.style
		id++
	}
	return boxes, styleByID
}

// runInlineLayout drives the four spec §4.5 entry points in order,
// recovering the core's fatal panics (spec §7) into a returned error.
func (e *Engine) runInlineLayout(ctx *inline.LayoutContext, il *inline.InlineLayout, containerWidthPx float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if asErr, ok := r.(error); ok {
				err = asErr
			} else {
				err = fmt.Errorf("inline layout panic: %v", r)
			}
		}
	}()

	il.BubbleWidthsInline(ctx)
	il.AssignWidthsInline(ctx)
	il.ScanForLines(ctx, inline.AuFromPixels(containerWidthPx))
	il.AssignHeightInline(ctx, inline.AuFromPixels(defaultLineHeightFallbackPx))
	return nil
}

// emitInlineBoxes walks the scanned flow's boxes, translating each one's Au
// geometry (relative to the paragraph's content-box origin) into an
// InlineBox appended to container.Children, matching the host renderer's
// expected float64 CSS-pixel coordinates.
func (e *Engine) emitInlineBoxes(container *BlockBox, il *inline.InlineLayout, styleByID map[int]style.ComputedStyle) {
	startX := container.X + container.PaddingLeft + container.BorderLeft
	startY := container.Y + container.PaddingTop + container.BorderTop

	for _, box := range il.Flow.Boxes() {
		if box.Kind() != inline.KindText {
			// Image/Generic boxes reaching a paragraph's inline flow are
			// laid out (geometry assigned) but not yet bridged back to a
			// renderer-visible box kind; text is this host's only inline
			// content today.
			continue
		}
		tb := box.(*inline.TextBox)
		st := styleByID[tb.DebugID()]

		origin := tb.Origin()
		ib := &InlineBox{
			Style:  st,
			X:      startX + origin.X.Pixels(),
			Y:      startY + origin.Y.Pixels(),
			Width:  tb.Width().Pixels(),
			Height: tb.Height().Pixels(),
			Text:   tb.Text(),
		}
		container.Children = append(container.Children, ib)
	}

	if len(container.Children) > 0 {
		last := container.Children[len(container.Children)-1]
		container.Height = (last.GetY() + last.GetHeight()) - container.Y
	} else {
		container.Height = 0
	}
}
