package pagination

import (
	"math"
	"sort"

	"github.com/inlinecore/inlinecore/internal/layout"
)

// Page represents a single page in the document
type Page struct {
	Width  float64
	Height float64
	Boxes  []layout.Box
}

// PageSize represents standard page sizes
type PageSize struct {
	Width  float64
	Height float64
	Name   string
}

// Standard page sizes in points (1/72 inch)
var (
	PageSizeA4     = PageSize{Width: 595.28, Height: 841.89, Name: "A4"}
	PageSizeLetter = PageSize{Width: 612.00, Height: 792.00, Name: "Letter"}
	PageSizeLegal  = PageSize{Width: 612.00, Height: 1008.00, Name: "Legal"}
	PageSizeA3     = PageSize{Width: 841.89, Height: 1190.55, Name: "A3"}
	PageSizeA5     = PageSize{Width: 419.53, Height: 595.28, Name: "A5"}
)

// Margins represents page margins
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Paginator handles breaking content into pages
type Paginator struct {
	PageSize PageSize
	Margins  Margins
}

// NewPaginator creates a new paginator
func NewPaginator(pageSize PageSize, margins Margins) *Paginator {
	return &Paginator{
		PageSize: pageSize,
		Margins:  margins,
	}
}

// Paginate creates pages for the PDF by distributing content boxes to pages
// by their Y position, splitting on page-height boundaries (no header/footer
// repetition or row-keeping: the inline core's output is paragraph text, not
// tabular content that needs to survive a page break intact).
func (p *Paginator) Paginate(rootBox layout.Box) []*Page {
	pages := make([]*Page, 0)

	newPage := func() *Page {
		page := &Page{
			Width:  p.PageSize.Width,
			Height: p.PageSize.Height,
			Boxes:  make([]layout.Box, 0),
		}
		pages = append(pages, page)
		return page
	}

	container := getContentContainer(rootBox)
	if container == nil {
		newPage()
		return pages
	}

	var contentBoxes []layout.Box
	collectBoxes(container, &contentBoxes)
	sortBoxesByPosition(contentBoxes)

	if len(contentBoxes) == 0 {
		newPage()
		return pages
	}

	pageHeight := p.PageSize.Height - p.Margins.Top - p.Margins.Bottom
	baseY := contentBoxes[0].GetY()

	totalHeight := contentBoxes[len(contentBoxes)-1].GetY() + contentBoxes[len(contentBoxes)-1].GetHeight() - baseY
	pageCount := int(math.Ceil(totalHeight / pageHeight))
	if pageCount < 1 {
		pageCount = 1
	}
	for i := 0; i < pageCount; i++ {
		newPage()
	}

	for _, box := range contentBoxes {
		relativeY := box.GetY() - baseY
		pageIndex := int(math.Floor(relativeY / pageHeight))
		if pageIndex < 0 {
			pageIndex = 0
		}
		for pageIndex >= len(pages) {
			newPage()
		}

		clone := cloneBox(box)
		positionWithinPage := relativeY - float64(pageIndex)*pageHeight
		newY := p.Margins.Top + positionWithinPage
		shiftBox(clone, 0, newY-clone.GetY())

		pages[pageIndex].Boxes = append(pages[pageIndex].Boxes, clone)
	}

	validPages := make([]*Page, 0, len(pages))
	for _, page := range pages {
		if len(page.Boxes) > 0 {
			validPages = append(validPages, page)
		}
	}
	if len(validPages) == 0 {
		validPages = append(validPages, &Page{Width: p.PageSize.Width, Height: p.PageSize.Height})
	}
	return validPages
}

// shiftBox moves a box and all its descendants by (dx, dy)
func shiftBox(box layout.Box, dx, dy float64) {
	box.SetPosition(box.GetX()+dx, box.GetY()+dy)
	switch b := box.(type) {
	case *layout.BlockBox:
		for _, ch := range b.Children {
			shiftBox(ch, dx, dy)
		}
	case *layout.InlineBox:
		for _, ch := range b.Children {
			shiftBox(ch, dx, dy)
		}
	}
}

// getContentContainer returns the main content container (usually body)
func getContentContainer(root layout.Box) layout.Box {
	if blockBox, ok := root.(*layout.BlockBox); ok {
		return blockBox
	}
	return root
}

// collectBoxes recursively collects all boxes from a container
func collectBoxes(container layout.Box, boxes *[]layout.Box) {
	if container == nil || boxes == nil {
		return
	}

	*boxes = append(*boxes, container)

	switch b := container.(type) {
	case *layout.BlockBox:
		for _, child := range b.Children {
			collectBoxes(child, boxes)
		}
	case *layout.InlineBox:
		for _, child := range b.Children {
			*boxes = append(*boxes, child)
			collectBoxes(child, boxes)
		}
	}
}

// sortBoxesByPosition sorts boxes primarily by Y position, then by X for
// boxes on the same visual line (within 1pt).
func sortBoxesByPosition(boxes []layout.Box) {
	sort.Slice(boxes, func(i, j int) bool {
		yDiff := boxes[i].GetY() - boxes[j].GetY()
		if math.Abs(yDiff) < 1.0 {
			return boxes[i].GetX() < boxes[j].GetX()
		}
		return yDiff < 0
	})
}

// cloneBox creates a deep copy of a box for replication across pages
func cloneBox(box layout.Box) layout.Box {
	switch b := box.(type) {
	case *layout.BlockBox:
		clone := &layout.BlockBox{
			Node:          b.Node,
			Style:         b.Style,
			X:             b.X,
			Y:             b.Y,
			Width:         b.Width,
			Height:        b.Height,
			MarginTop:     b.MarginTop,
			MarginRight:   b.MarginRight,
			MarginBottom:  b.MarginBottom,
			MarginLeft:    b.MarginLeft,
			PaddingTop:    b.PaddingTop,
			PaddingRight:  b.PaddingRight,
			PaddingBottom: b.PaddingBottom,
			PaddingLeft:   b.PaddingLeft,
			BorderTop:     b.BorderTop,
			BorderRight:   b.BorderRight,
			BorderBottom:  b.BorderBottom,
			BorderLeft:    b.BorderLeft,
			Children:      make([]layout.Box, len(b.Children)),
		}
		for i, child := range b.Children {
			clone.Children[i] = cloneBox(child)
		}
		return clone

	case *layout.InlineBox:
		clone := &layout.InlineBox{
			Node:          b.Node,
			Style:         b.Style,
			X:             b.X,
			Y:             b.Y,
			Width:         b.Width,
			Height:        b.Height,
			MarginTop:     b.MarginTop,
			MarginRight:   b.MarginRight,
			MarginBottom:  b.MarginBottom,
			MarginLeft:    b.MarginLeft,
			PaddingTop:    b.PaddingTop,
			PaddingRight:  b.PaddingRight,
			PaddingBottom: b.PaddingBottom,
			PaddingLeft:   b.PaddingLeft,
			BorderTop:     b.BorderTop,
			BorderRight:   b.BorderRight,
			BorderBottom:  b.BorderBottom,
			BorderLeft:    b.BorderLeft,
			Text:          b.Text,
			Children:      make([]layout.Box, len(b.Children)),
		}
		for i, child := range b.Children {
			clone.Children[i] = cloneBox(child)
		}
		return clone
	}

	return box
}

// CalculatePageCount calculates the number of pages needed
func (p *Paginator) CalculatePageCount(rootBox *layout.BlockBox) int {
	pages := p.Paginate(rootBox)
	return len(pages)
}
