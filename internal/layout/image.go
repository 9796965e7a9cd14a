package layout

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/inlinecore/inlinecore/internal/parser/html"
	"github.com/inlinecore/inlinecore/internal/res"
	"github.com/inlinecore/inlinecore/internal/style"
)

// ImageBox represents an <img> element laid out as an inline replaced element
// It implements the Box interface.
// Its intrinsic size comes from decoding the actual image bytes via Loader
// when one is set (spec §4.6 "Image(intrinsic_size)"); absent a loader, or
// on a decode failure, it is a default 40x40. CSS width/height, when set,
// override either size.

type ImageBox struct {
	Loader *res.Loader
	Node   *html.Node
	Style  style.ComputedStyle

	X      float64
	Y      float64
	Width  float64
	Height float64

	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64

	PaddingTop    float64
	PaddingRight  float64
	PaddingBottom float64
	PaddingLeft   float64

	BorderTop    float64
	BorderRight  float64
	BorderBottom float64
	BorderLeft   float64

	Src string // resolved later by renderer via Loader; stores the attribute value
}

func (b *ImageBox) Layout(containingBlock *BlockBox) {
	w, h := 40.0, 40.0
	if iw, ih, ok := b.intrinsicSize(); ok {
		w, h = iw, ih
	}
	if prop, ok := b.Style["width"]; ok && prop.Value != "" {
		if v := parseLength(prop.Value, containingBlock.Width, w); v > 0 {
			w = v
		}
	}
	if prop, ok := b.Style["height"]; ok && prop.Value != "" {
		if v := parseLength(prop.Value, containingBlock.Width, h); v > 0 {
			h = v
		}
	}
	b.Width = w
	b.Height = h
}

// intrinsicSize decodes the image's real pixel dimensions through Loader,
// falling back to (0, 0, false) on any failure so the caller keeps the
// default square.
func (b *ImageBox) intrinsicSize() (w, h float64, ok bool) {
	if b.Loader == nil || b.Src == "" {
		return 0, 0, false
	}
	resource, err := b.Loader.LoadImage(b.Src)
	if err != nil {
		return 0, 0, false
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(resource.Data))
	if err != nil {
		return 0, 0, false
	}
	return float64(cfg.Width), float64(cfg.Height), true
}

func (b *ImageBox) GetX() float64      { return b.X }
func (b *ImageBox) GetY() float64      { return b.Y }
func (b *ImageBox) GetWidth() float64  { return b.Width }
func (b *ImageBox) GetHeight() float64 { return b.Height }

func (b *ImageBox) GetMarginTop() float64    { return b.MarginTop }
func (b *ImageBox) GetMarginBottom() float64 { return b.MarginBottom }
func (b *ImageBox) GetMarginLeft() float64   { return b.MarginLeft }
func (b *ImageBox) GetMarginRight() float64  { return b.MarginRight }

func (b *ImageBox) SetPosition(x, y float64) { b.X, b.Y = x, y }

func (b *ImageBox) GetNode() *html.Node { return b.Node }
