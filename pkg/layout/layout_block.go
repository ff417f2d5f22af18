package layout

import (
	"strings"

	"zenkai/pkg/css"
	"zenkai/pkg/html"
	"zenkai/pkg/images"
)

// layoutBox lays out node with its margin box starting at (x, y). Block
// boxes fill avail; shrink boxes take their max-content width capped at
// avail. Returns nil for display:none.
func (e *Engine) layoutBox(node *html.Node, x, y, avail float64, parent *Box, shrink bool) *Box {
	style := e.styleOf(node)
	if style.GetDisplay() == css.DisplayNone {
		return nil
	}

	box := &Box{
		Node:     node,
		Style:    style,
		Parent:   parent,
		Margin:   style.GetMargin(),
		Padding:  style.GetPadding(),
		Border:   borderOf(style),
		Position: style.GetPosition(),
		ZIndex:   style.GetZIndex(),
	}
	box.X = x + box.Margin.Left
	box.Y = y + box.Margin.Top

	horizontal := box.Margin.Left + box.Margin.Right +
		box.Border.Left + box.Border.Right + box.Padding.Left + box.Padding.Right
	room := max(0, avail-horizontal)

	if node.TagName == "img" {
		e.sizeImage(box)
		return box
	}

	switch w, ok := style.GetLength("width"); {
	case ok:
		box.Width = w
	case shrink:
		box.Width = min(e.intrinsicWidth(box), room)
	default:
		box.Width = room
	}

	contentHeight := e.layoutChildren(box)
	if h, ok := style.GetLength("height"); ok {
		box.Height = h
	} else {
		box.Height = contentHeight
	}
	return box
}

// layoutChildren lays out the children of box inside its content box and
// returns the height they use.
func (e *Engine) layoutChildren(box *Box) float64 {
	l := &line{left: box.contentX(), top: box.contentY(), width: box.Width}
	start := l.top
	for _, child := range box.Node.Children {
		switch child.Type {
		case html.TextNode:
			e.layoutText(box, child, l)
		case html.ElementNode:
			e.layoutChild(box, child, l)
		}
	}
	l.breakLine()
	return l.top - start
}

func (e *Engine) layoutChild(parent *Box, node *html.Node, l *line) {
	style := e.styleOf(node)
	display := style.GetDisplay()
	if display == css.DisplayNone {
		return
	}

	if node.TagName == "br" {
		if l.x == 0 && l.height == 0 {
			l.top += e.lineHeight(parent)
		}
		l.breakLine()
		return
	}

	switch style.GetPosition() {
	case css.PositionAbsolute, css.PositionFixed:
		box := e.layoutBox(node, l.left, l.top, l.width, parent, true)
		parent.Children = append(parent.Children, box)
		e.absolute = append(e.absolute, box)
		return
	}

	if display == css.DisplayBlock {
		l.breakLine()
		box := e.layoutBox(node, l.left, l.top, l.width, parent, false)
		parent.Children = append(parent.Children, box)
		l.top = box.marginBottom()
		applyRelativePositioning(box)
		return
	}

	// Inline and inline-block boxes are atomic on the line.
	box := e.layoutBox(node, 0, 0, l.width, parent, true)
	w, h := box.outerWidth(), box.outerHeight()
	if !l.fits(w) {
		l.breakLine()
	}
	shiftBox(box, l.left+l.x, l.top)
	l.x += w
	l.height = max(l.height, h)
	parent.Children = append(parent.Children, box)
	applyRelativePositioning(box)
}

// sizeImage sizes an <img> from its style, its width/height attributes or
// the decoded image, keeping the aspect ratio when one side is given.
func (e *Engine) sizeImage(box *Box) {
	src, _ := box.Node.GetAttribute("src")
	box.ImagePath = strings.TrimSpace(src)

	w, hasW := box.Style.GetLength("width")
	if !hasW {
		w, hasW = attrLength(box.Node, "width")
	}
	h, hasH := box.Style.GetLength("height")
	if !hasH {
		h, hasH = attrLength(box.Node, "height")
	}

	if (!hasW || !hasH) && box.ImagePath != "" {
		iw, ih, err := images.GetImageDimensionsWithFetcher(box.ImagePath, e.imageFetcher)
		if err == nil && iw > 0 && ih > 0 {
			switch {
			case !hasW && !hasH:
				w, h = float64(iw), float64(ih)
			case !hasW:
				w = h * float64(iw) / float64(ih)
			default:
				h = w * float64(ih) / float64(iw)
			}
		}
	}
	box.Width, box.Height = w, h
}

func attrLength(n *html.Node, name string) (float64, bool) {
	v, ok := n.GetAttribute(name)
	if !ok {
		return 0, false
	}
	return css.ParseLength(v)
}

// borderOf returns the border widths, zeroed when border-style is none.
func borderOf(style *css.Style) css.BoxEdge {
	if bs, ok := style.Get("border-style"); ok && bs == "none" {
		return css.BoxEdge{}
	}
	return style.GetBorderWidth()
}
