package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"github.com/inlinecore/inlinecore/internal/layout"
	"github.com/inlinecore/inlinecore/internal/pagination"
)

// Renderer walks paginated boxes and paints the ones the inline core
// actually emits: block boxes (background only) and inline boxes
// (background plus shaped text).
type Renderer struct {
	// FontDirs collects directories passed to AddFontDirectory. Rendering
	// does not load fonts from them; only fpdf's core fonts are used.
	FontDirs []string
	DPI      float64
	// Debug enables verbose logging to stdout
	Debug bool
	// RenderBackgrounds controls whether box backgrounds are painted
	RenderBackgrounds bool
}

// RenderOptions contains options for rendering
type RenderOptions struct {
	Title       string
	Author      string
	Subject     string
	Keywords    string
	Creator     string
	Producer    string
	Orientation string // "P" for portrait, "L" for landscape
}

// NewRenderer creates a new PDF renderer
func NewRenderer() *Renderer {
	return &Renderer{
		FontDirs:          []string{},
		DPI:               96,
		Debug:             false,
		RenderBackgrounds: true,
	}
}

// AddFontDirectory adds a directory to search for fonts
func (r *Renderer) AddFontDirectory(dir string) {
	r.FontDirs = append(r.FontDirs, dir)
}

// Render renders pages to a PDF file
func (r *Renderer) Render(pages []*pagination.Page, outputPath string, options RenderOptions) error {
	orient := options.Orientation
	if orient == "" {
		orient = "P" // Default to portrait if not specified
	}

	pdf := fpdf.New(orient, "pt", "", "")

	pdf.SetAutoPageBreak(true, 2)
	pdf.SetTitle(options.Title, true)
	pdf.SetAuthor(options.Author, true)
	pdf.SetSubject(options.Subject, true)
	pdf.SetKeywords(options.Keywords, true)
	pdf.SetCreator(options.Creator, true)
	pdf.SetProducer(options.Producer, true)
	r.registerFonts(pdf)

	if r.Debug {
		fmt.Printf("Rendering %d pages\n", len(pages))
	}
	for i, page := range pages {
		if len(page.Boxes) == 0 {
			if r.Debug {
				fmt.Printf("Skipping empty page %d (no boxes)\n", i)
			}
			continue
		}
		pdf.AddPage()
		for _, box := range page.Boxes {
			r.renderBox(pdf, box)
		}
	}

	outputDir := filepath.Dir(outputPath)
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	return pdf.OutputFileAndClose(outputPath)
}

// registerFonts registers fonts with the PDF document
func (r *Renderer) registerFonts(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "", 12)
}

// renderBox renders a box to the PDF
func (r *Renderer) renderBox(pdf *fpdf.Fpdf, box layout.Box) {
	switch b := box.(type) {
	case *layout.BlockBox:
		r.renderBlockBox(pdf, b)
	case *layout.InlineBox:
		r.renderInlineBox(pdf, b)
	default:
		if r.Debug {
			fmt.Printf("Unknown box type: %T\n", box)
		}
	}
}

// renderBlockBox renders a block box to the PDF
func (r *Renderer) renderBlockBox(pdf *fpdf.Fpdf, box *layout.BlockBox) {
	r.renderBackground(pdf, box)
	for _, child := range box.Children {
		r.renderBox(pdf, child)
	}
}

// renderInlineBox renders an inline box to the PDF
func (r *Renderer) renderInlineBox(pdf *fpdf.Fpdf, box *layout.InlineBox) {
	r.renderBackground(pdf, box)

	if box.Text != "" {
		r.renderText(pdf, box)
	}

	for _, child := range box.Children {
		r.renderBox(pdf, child)
	}
}

// renderBackground renders the background of a box
func (r *Renderer) renderBackground(pdf *fpdf.Fpdf, box layout.Box) {
	if !r.RenderBackgrounds {
		return
	}

	switch b := box.(type) {
	case *layout.BlockBox:
		if bgColor, exists := b.Style["background-color"]; exists && bgColor.Value != "" {
			color := parseColor(bgColor.Value)
			pdf.SetFillColor(color[0], color[1], color[2])
			pdf.Rect(box.GetX(), box.GetY(), box.GetWidth(), box.GetHeight(), "F")
			if r.Debug {
				fmt.Printf("Applied background color %v to block box\n", color)
			}
		}
	case *layout.InlineBox:
		if bgColor, exists := b.Style["background-color"]; exists && bgColor.Value != "" {
			color := parseColor(bgColor.Value)
			pdf.SetFillColor(color[0], color[1], color[2])
			pdf.Rect(box.GetX(), box.GetY(), box.GetWidth(), box.GetHeight(), "F")
			if r.Debug {
				fmt.Printf("Applied background color %v to inline box\n", color)
			}
		}
	}
}

// renderText renders text to the PDF
func (r *Renderer) renderText(pdf *fpdf.Fpdf, box *layout.InlineBox) {
	if box.Text == "" {
		if r.Debug {
			fmt.Printf("Skipping empty text box\n")
		}
		return
	}

	fontSize := 12.0
	if fontSizeProp, exists := box.Style["font-size"]; exists {
		fontSize = parseFloat(fontSizeProp.Value, 12)
		if r.Debug {
			fmt.Printf("Using font size: %.1f\n", fontSize)
		}
	}

	fontFamily := "Helvetica"
	if fontFamilyProp, exists := box.Style["font-family"]; exists {
		fontFamilies := strings.Split(fontFamilyProp.Value, ",")
		if len(fontFamilies) > 0 {
			firstFont := strings.TrimSpace(fontFamilies[0])
			firstFont = strings.Trim(firstFont, "'\"")

			switch strings.ToLower(firstFont) {
			case "arial", "helvetica", "sans-serif":
				fontFamily = "Helvetica"
			case "times", "times new roman", "serif":
				fontFamily = "Times"
			case "courier", "courier new", "monospace":
				fontFamily = "Courier"
			default:
				// Keep default Helvetica
			}
		}
		if r.Debug {
			fmt.Printf("Using font family: %s\n", fontFamily)
		}
	}

	fontStyle := ""
	if fontWeightProp, exists := box.Style["font-weight"]; exists {
		if fontWeightProp.Value == "bold" || fontWeightProp.Value == "700" || fontWeightProp.Value == "800" || fontWeightProp.Value == "900" {
			fontStyle += "B"
			if r.Debug {
				fmt.Printf("Using bold font\n")
			}
		}
	}
	if fontStyleProp, exists := box.Style["font-style"]; exists {
		if fontStyleProp.Value == "italic" {
			fontStyle += "I"
			if r.Debug {
				fmt.Printf("Using italic font\n")
			}
		}
	}

	textColor := [3]int{0, 0, 0}
	if colorProp, exists := box.Style["color"]; exists {
		textColor = parseColor(colorProp.Value)
	}
	pdf.SetTextColor(textColor[0], textColor[1], textColor[2])

	pdf.SetFont(fontFamily, fontStyle, fontSize)

	text := box.Text

	align := "left"
	if alignProp, exists := box.Style["text-align"]; exists && alignProp.Value != "" {
		align = strings.ToLower(strings.TrimSpace(alignProp.Value))
	}
	dir := "ltr"
	if dirProp, exists := box.Style["direction"]; exists && dirProp.Value != "" {
		dir = strings.ToLower(strings.TrimSpace(dirProp.Value))
	}
	if align == "left" && dir == "rtl" {
		align = "right"
	}

	textWidth := pdf.GetStringWidth(text)
	var startX float64
	switch align {
	case "center":
		startX = box.X + (box.Width-textWidth)/2
	case "right", "end":
		startX = box.X + box.Width - textWidth
	default:
		startX = box.X
	}
	if startX < box.X {
		startX = box.X
	}
	if startX > box.X+box.Width {
		startX = box.X + box.Width
	}

	// Compute baseline Y. Inline boxes emitted for paragraph text (inline_bridge.go) have
	// Node == nil and Y at the top of their row; the baseline is placed one font size below Y.
	var baselineY float64
	if box.Node == nil {
		baselineY = box.Y + fontSize
	} else {
		// For standalone inline boxes with real nodes, derive baseline using ascent/descent and half-leading.
		paddingTop := box.PaddingTop
		paddingBottom := box.PaddingBottom
		borderTop := box.BorderTop
		borderBottom := box.BorderBottom
		contentHeight := box.Height - paddingTop - paddingBottom - borderTop - borderBottom
		if contentHeight < 0 {
			contentHeight = 0
		}
		// Approximate ascent/descent
		ascent := 0.80 * fontSize
		descent := 0.20 * fontSize
		if ascent+descent > contentHeight {
			// Clamp if line-height is smaller than font bounds
			scale := contentHeight / (ascent + descent)
			if scale < 0 {
				scale = 0
			}
			ascent *= scale
			descent *= scale
		}
		leading := contentHeight - (ascent + descent)
		if leading < 0 {
			leading = 0
		}
		baselineOffset := ascent + (leading / 2.0)
		baselineY = box.Y + borderTop + paddingTop + baselineOffset
	}

	if r.Debug {
		fmt.Printf("Rendering text: '%s' at (%.2f, %.2f) with font %s %.0fpt, color: %v\n",
			text, startX, baselineY, fontFamily, fontSize, textColor)
	}

	pdf.Text(startX, baselineY, text)
}

// parseFloat parses a float value with a default
func parseFloat(value string, defaultValue float64) float64 {
	var result float64
	_, err := fmt.Sscanf(value, "%f", &result)
	if err != nil {
		return defaultValue
	}
	return result
}

// parseColor parses a CSS color value
func parseColor(value string) [3]int {
	if strings.HasPrefix(value, "#") {
		if r, g, b, ok := parseHexColor(value); ok {
			return [3]int{r, g, b}
		}
	}

	var r, g, b int
	if _, err := fmt.Sscanf(value, "rgb(%d,%d,%d)", &r, &g, &b); err == nil {
		return [3]int{r, g, b}
	}
	if _, err := fmt.Sscanf(value, "rgb(%d, %d, %d)", &r, &g, &b); err == nil {
		return [3]int{r, g, b}
	}

	return [3]int{0, 0, 0}
}

// parseHexColor parses #RRGGBB or #RGB into r,g,b
func parseHexColor(s string) (int, int, int, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 6:
		if rv, err := strconv.ParseUint(s[0:2], 16, 8); err == nil {
			if gv, err := strconv.ParseUint(s[2:4], 16, 8); err == nil {
				if bv, err := strconv.ParseUint(s[4:6], 16, 8); err == nil {
					return int(rv), int(gv), int(bv), true
				}
			}
		}
	case 3:
		r := string([]byte{s[0], s[0]})
		g := string([]byte{s[1], s[1]})
		b := string([]byte{s[2], s[2]})
		if rv, err := strconv.ParseUint(r, 16, 8); err == nil {
			if gv, err := strconv.ParseUint(g, 16, 8); err == nil {
				if bv, err := strconv.ParseUint(b, 16, 8); err == nil {
					return int(rv), int(gv), int(bv), true
				}
			}
		}
	}
	return 0, 0, 0, false
}
