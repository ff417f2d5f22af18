package layout

import (
	"zenkai/pkg/html"
	"zenkai/pkg/nav"
)

// Result is the box tree of one layout pass. It implements nav.Geometry.
type Result struct {
	Root *Box

	boxes map[*html.Node]*Box
}

var _ nav.Geometry = (*Result)(nil)

func newResult(root *Box) *Result {
	r := &Result{Root: root, boxes: make(map[*html.Node]*Box)}
	var index func(*Box)
	index = func(b *Box) {
		if !b.IsText() {
			r.boxes[b.Node] = b
		}
		for _, c := range b.Children {
			index(c)
		}
	}
	index(root)
	return r
}

// Box returns the box laid out for an element.
func (r *Result) Box(n *html.Node) (*Box, bool) {
	b, ok := r.boxes[n]
	return b, ok
}

// Boxes returns the top-level boxes, the children of the document root.
func (r *Result) Boxes() []*Box {
	return r.Root.Children
}

// BoundingClientRect returns the border box of n, or a zero rect when n
// has no box.
func (r *Result) BoundingClientRect(n *html.Node) nav.Rect {
	if b, ok := r.boxes[n]; ok {
		return b.BorderBox()
	}
	return nav.Rect{}
}

// Edges returns the margin, border and padding of n.
func (r *Result) Edges(n *html.Node) nav.Edges {
	b, ok := r.boxes[n]
	if !ok {
		return nav.Edges{}
	}
	return nav.Edges{Margin: b.Margin, Border: b.Border, Padding: b.Padding}
}

// IsHidden reports whether n has no box, which covers display:none on n
// or any ancestor, or a border box with neither width nor height.
func (r *Result) IsHidden(n *html.Node) bool {
	b, ok := r.boxes[n]
	if !ok {
		return true
	}
	rect := b.BorderBox()
	return rect.Width() <= 0 && rect.Height() <= 0
}
