package layout

import (
	"strconv"
	"strings"

	"github.com/inlinecore/inlinecore/internal/parser/html"
	"github.com/inlinecore/inlinecore/internal/style"
)

// InlineBox implements the Box interface for inline-level elements
// built by the paragraph-inline bridge (inline_bridge.go). Its geometry
// is assigned directly by the engine/bridge rather than through a
// self-contained Layout pass, since the inline core already owns
// width bubbling, line breaking, and height assignment.
type InlineBox struct {
	Node          *html.Node
	Style         style.ComputedStyle
	X             float64
	Y             float64
	Width         float64
	Height        float64
	MarginTop     float64
	MarginRight   float64
	MarginBottom  float64
	MarginLeft    float64
	PaddingTop    float64
	PaddingRight  float64
	PaddingBottom float64
	PaddingLeft   float64
	BorderTop     float64
	BorderRight   float64
	BorderBottom  float64
	BorderLeft    float64
	Children      []Box
	Text          string
}

// Layout satisfies the Box interface. Real inline boxes are positioned
// by the core's line-box scanner and carried back into these fields by
// inline_bridge.go; this only fills in an origin for a box that was
// never routed through that path.
func (b *InlineBox) Layout(containingBlock *BlockBox) {
	if containingBlock != nil && b.X == 0 && b.Y == 0 {
		b.X = containingBlock.X + containingBlock.PaddingLeft
		b.Y = containingBlock.Y + containingBlock.PaddingTop
	}
}

// GetX returns the x position of the box
func (b *InlineBox) GetX() float64 {
	return b.X
}

// GetY returns the y position of the box
func (b *InlineBox) GetY() float64 {
	return b.Y
}

// GetWidth returns the width of the box
func (b *InlineBox) GetWidth() float64 {
	return b.Width
}

// GetHeight returns the height of the box
func (b *InlineBox) GetHeight() float64 {
	return b.Height
}

// GetMarginTop returns the top margin of the box
func (b *InlineBox) GetMarginTop() float64 {
	return b.MarginTop
}

// GetMarginBottom returns the bottom margin of the box
func (b *InlineBox) GetMarginBottom() float64 {
	return b.MarginBottom
}

// GetMarginLeft returns the left margin of the box
func (b *InlineBox) GetMarginLeft() float64 {
	return b.MarginLeft
}

// GetMarginRight returns the right margin of the box
func (b *InlineBox) GetMarginRight() float64 {
	return b.MarginRight
}

// SetPosition sets the position of the box
func (b *InlineBox) SetPosition(x, y float64) {
	b.X = x
	b.Y = y
}

// AddChild adds a child box
func (b *InlineBox) AddChild(child Box) {
	b.Children = append(b.Children, child)
}

// GetNode returns the HTML node associated with this box
func (b *InlineBox) GetNode() *html.Node {
	return b.Node
}

// parseLength parses a CSS length value
func parseLength(value string, containerSize float64, defaultValue float64) float64 {
	if value == "" {
		return defaultValue
	}

	if strings.HasSuffix(value, "%") {
		percentage, err := strconv.ParseFloat(value[:len(value)-1], 64)
		if err != nil {
			return defaultValue
		}
		return containerSize * percentage / 100
	}

	if strings.HasSuffix(value, "px") {
		pixels, err := strconv.ParseFloat(value[:len(value)-2], 64)
		if err != nil {
			return defaultValue
		}
		return pixels
	}

	if strings.HasSuffix(value, "em") {
		ems, err := strconv.ParseFloat(value[:len(value)-2], 64)
		if err != nil {
			return defaultValue
		}
		return ems * 16
	}

	if strings.HasSuffix(value, "rem") {
		rems, err := strconv.ParseFloat(value[:len(value)-3], 64)
		if err != nil {
			return defaultValue
		}
		return rems * 16
	}

	pixels, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return pixels
}
