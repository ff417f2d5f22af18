package layout

import (
	"zenkai/pkg/css"
	"zenkai/pkg/html"
	"zenkai/pkg/nav"
)

// Box is the laid-out rectangle of one element, or one line fragment of a
// text node. X and Y locate the border box; Width and Height are the
// content size.
type Box struct {
	Node      *html.Node
	Style     *css.Style // nil for text fragments
	X         float64
	Y         float64
	Width     float64 // Content width
	Height    float64 // Content height
	Margin    css.BoxEdge
	Padding   css.BoxEdge
	Border    css.BoxEdge
	Children  []*Box
	Parent    *Box
	Position  css.PositionType
	ZIndex    int
	ImagePath string

	// Text fragments only.
	Text     string
	FontSize float64
}

// IsText reports whether the box is a text fragment.
func (b *Box) IsText() bool {
	return b.Node != nil && b.Node.Type == html.TextNode
}

// BorderBox returns the border box as a rect.
func (b *Box) BorderBox() nav.Rect {
	return nav.Rect{
		Top:    b.Y,
		Left:   b.X,
		Right:  b.X + b.borderWidth(),
		Bottom: b.Y + b.borderHeight(),
	}
}

func (b *Box) borderWidth() float64 {
	return b.Border.Left + b.Padding.Left + b.Width + b.Padding.Right + b.Border.Right
}

func (b *Box) borderHeight() float64 {
	return b.Border.Top + b.Padding.Top + b.Height + b.Padding.Bottom + b.Border.Bottom
}

func (b *Box) outerWidth() float64 {
	return b.Margin.Left + b.borderWidth() + b.Margin.Right
}

func (b *Box) outerHeight() float64 {
	return b.Margin.Top + b.borderHeight() + b.Margin.Bottom
}

// marginBottom is the y coordinate just below the margin box.
func (b *Box) marginBottom() float64 {
	return b.Y + b.borderHeight() + b.Margin.Bottom
}

func (b *Box) contentX() float64 { return b.X + b.Border.Left + b.Padding.Left }
func (b *Box) contentY() float64 { return b.Y + b.Border.Top + b.Padding.Top }

// line tracks inline placement inside one containing box.
type line struct {
	left   float64 // content-box left
	top    float64 // top of the current line
	width  float64 // available width
	x      float64 // advance on the current line
	height float64 // tallest item on the current line
}

// breakLine moves to the next line if the current one holds anything.
func (l *line) breakLine() {
	if l.x > 0 || l.height > 0 {
		l.top += l.height
	}
	l.x = 0
	l.height = 0
}

func (l *line) fits(w float64) bool {
	return l.x == 0 || l.x+w <= l.width+0.01
}
