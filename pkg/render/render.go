// Package render paints a layout result onto an RGBA image with gg.
package render

import (
	"image"
	"sort"

	"github.com/fogleman/gg"

	"zenkai/pkg/css"
	"zenkai/pkg/html"
	"zenkai/pkg/images"
	"zenkai/pkg/layout"
	"zenkai/pkg/text"
)

// baseFaceHeight is the pixel height of gg's built-in face.
const baseFaceHeight = 13.0

// FocusColor outlines the focused element.
var FocusColor = css.Color{R: 0x1e, G: 0x90, B: 0xff, A: 1}

type Renderer struct {
	context      *gg.Context
	fontPath     string
	imageFetcher images.ImageFetcher
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{context: gg.NewContext(width, height)}
}

// NewRendererForImage draws directly into target.
func NewRendererForImage(target *image.RGBA) *Renderer {
	return &Renderer{context: gg.NewContextForRGBA(target)}
}

// SetMeasurer makes text use the measurer's font so drawn text matches the
// widths layout measured.
func (r *Renderer) SetMeasurer(m *text.Measurer) {
	if m != nil {
		r.fontPath = m.FontPath
	}
}

// SetImageFetcher sets the fetcher used for network images.
func (r *Renderer) SetImageFetcher(fetcher images.ImageFetcher) {
	r.imageFetcher = fetcher
}

// Image returns the canvas.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

func (r *Renderer) Render(res *layout.Result) {
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()

	allBoxes := collectAllBoxes(res.Boxes())
	sortByZIndex(allBoxes)
	for _, box := range allBoxes {
		r.drawBox(box)
	}
}

// DrawFocus outlines the border box of n. Nodes without a box are ignored.
func (r *Renderer) DrawFocus(res *layout.Result, n *html.Node) {
	if n == nil || res.IsHidden(n) {
		return
	}
	rect := res.BoundingClientRect(n)
	setColor(r.context, FocusColor)
	r.context.SetLineWidth(2)
	r.context.DrawRectangle(rect.Left-1, rect.Top-1, rect.Width()+2, rect.Height()+2)
	r.context.Stroke()
}

// collectAllBoxes flattens the box tree into a single list
func collectAllBoxes(boxes []*layout.Box) []*layout.Box {
	result := make([]*layout.Box, 0)
	for _, box := range boxes {
		result = append(result, box)
		result = append(result, collectAllBoxes(box.Children)...)
	}
	return result
}

// paintLevel orders block boxes before inline content within one z-index.
func paintLevel(box *layout.Box) int {
	if box.IsText() {
		return 1
	}
	if disp, ok := box.Style.Get("display"); ok && disp != "block" {
		return 1
	}
	return 0
}

// sortByZIndex sorts boxes by z-index and painting order
func sortByZIndex(boxes []*layout.Box) {
	sort.SliceStable(boxes, func(i, j int) bool {
		if boxes[i].ZIndex != boxes[j].ZIndex {
			return boxes[i].ZIndex < boxes[j].ZIndex
		}
		return paintLevel(boxes[i]) < paintLevel(boxes[j])
	})
}

func (r *Renderer) drawBox(box *layout.Box) {
	if box.IsText() {
		r.drawText(box)
		return
	}

	// Background covers content + padding (but not margin or border)
	if bgColor, ok := box.Style.Get("background-color"); ok {
		if color, ok := css.ParseColor(bgColor); ok && color.A > 0 {
			setColor(r.context, color)
			w := box.Width + box.Padding.Left + box.Padding.Right
			h := box.Height + box.Padding.Top + box.Padding.Bottom
			if w > 0 && h > 0 {
				r.context.DrawRectangle(box.X+box.Border.Left, box.Y+box.Border.Top, w, h)
				r.context.Fill()
			}
		}
	}

	r.drawBorder(box)
	r.drawImage(box)
}

// borderColor returns the color for a specific border side
func borderColor(box *layout.Box, side string) css.Color {
	for _, prop := range []string{"border-" + side + "-color", "border-color", "color"} {
		if colorStr, ok := box.Style.Get(prop); ok {
			if color, ok := css.ParseColor(colorStr); ok {
				return color
			}
		}
	}
	return css.Color{A: 1}
}

// drawBorder draws each side as a trapezoid, mitered at the corners.
func (r *Renderer) drawBorder(box *layout.Box) {
	if box.Border.Top <= 0 && box.Border.Right <= 0 && box.Border.Bottom <= 0 && box.Border.Left <= 0 {
		return
	}

	outer := box.BorderBox()
	innerLeft := outer.Left + box.Border.Left
	innerTop := outer.Top + box.Border.Top
	innerRight := outer.Right - box.Border.Right
	innerBottom := outer.Bottom - box.Border.Bottom

	sides := []struct {
		name  string
		width float64
		quad  [4][2]float64
	}{
		{"top", box.Border.Top, [4][2]float64{{outer.Left, outer.Top}, {outer.Right, outer.Top}, {innerRight, innerTop}, {innerLeft, innerTop}}},
		{"right", box.Border.Right, [4][2]float64{{outer.Right, outer.Top}, {outer.Right, outer.Bottom}, {innerRight, innerBottom}, {innerRight, innerTop}}},
		{"bottom", box.Border.Bottom, [4][2]float64{{outer.Left, outer.Bottom}, {outer.Right, outer.Bottom}, {innerRight, innerBottom}, {innerLeft, innerBottom}}},
		{"left", box.Border.Left, [4][2]float64{{outer.Left, outer.Top}, {outer.Left, outer.Bottom}, {innerLeft, innerBottom}, {innerLeft, innerTop}}},
	}
	for _, s := range sides {
		if s.width <= 0 {
			continue
		}
		color := borderColor(box, s.name)
		if color.A <= 0 {
			continue
		}
		setColor(r.context, color)
		r.context.MoveTo(s.quad[0][0], s.quad[0][1])
		for _, p := range s.quad[1:] {
			r.context.LineTo(p[0], p[1])
		}
		r.context.ClosePath()
		r.context.Fill()
	}
}

// drawText draws one line fragment at its baseline.
func (r *Renderer) drawText(box *layout.Box) {
	if box.Text == "" || box.FontSize <= 0 {
		return
	}
	setColor(r.context, layout.InheritedColor(box.Parent))

	if r.fontPath != "" {
		if err := r.context.LoadFontFace(r.fontPath, box.FontSize); err == nil {
			r.context.DrawString(box.Text, box.X, box.Y+box.FontSize)
			return
		}
	}

	// The built-in face is a 13px bitmap; scale it to the font size.
	scale := box.FontSize / baseFaceHeight
	r.context.Push()
	r.context.Translate(box.X, box.Y)
	r.context.Scale(scale, scale)
	r.context.DrawString(box.Text, 0, baseFaceHeight*0.8)
	r.context.Pop()
}

// drawImage renders an image element, or a crossed placeholder when the
// image fails to load.
func (r *Renderer) drawImage(box *layout.Box) {
	if box.ImagePath == "" || box.Width <= 0 || box.Height <= 0 {
		return
	}
	x := box.X + box.Border.Left + box.Padding.Left
	y := box.Y + box.Border.Top + box.Padding.Top

	img, err := images.LoadImageWithFetcher(box.ImagePath, r.imageFetcher)
	if err != nil {
		r.context.SetRGB(0.9, 0.9, 0.9)
		r.context.DrawRectangle(x, y, box.Width, box.Height)
		r.context.Fill()

		r.context.SetRGB(0.5, 0.5, 0.5)
		r.context.SetLineWidth(2)
		r.context.DrawLine(x, y, x+box.Width, y+box.Height)
		r.context.DrawLine(x+box.Width, y, x, y+box.Height)
		r.context.Stroke()
		return
	}

	bounds := img.Bounds()
	r.context.Push()
	r.context.Translate(x, y)
	r.context.Scale(box.Width/float64(bounds.Dx()), box.Height/float64(bounds.Dy()))
	r.context.DrawImage(img, 0, 0)
	r.context.Pop()
}

func setColor(dc *gg.Context, c css.Color) {
	dc.SetRGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, c.A)
}

func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}
