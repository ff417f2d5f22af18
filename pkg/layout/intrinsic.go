package layout

import (
	"zenkai/pkg/css"
	"zenkai/pkg/html"
	"zenkai/pkg/text"
)

// intrinsicWidth is the max-content width of the children of box: the
// widest line they would form without wrapping.
func (e *Engine) intrinsicWidth(box *Box) float64 {
	fontSize := e.fontSize(box)
	space, _ := e.measurer.MeasureText(" ", fontSize)

	var lineW, widest float64
	for _, child := range box.Node.Children {
		if child.Type == html.TextNode {
			t := text.CollapseWhitespace(child.Text)
			if t == "" {
				continue
			}
			w, _ := e.measurer.MeasureText(t, fontSize)
			if lineW > 0 {
				w += space
			}
			lineW += w
			continue
		}
		if !child.IsElement() {
			continue
		}

		style := e.styleOf(child)
		display := style.GetDisplay()
		switch pos := style.GetPosition(); {
		case display == css.DisplayNone, pos == css.PositionAbsolute, pos == css.PositionFixed:
			continue
		}
		if child.TagName == "br" {
			widest = max(widest, lineW)
			lineW = 0
			continue
		}

		w := e.outerIntrinsicWidth(child, style, box)
		if display == css.DisplayBlock {
			widest = max(widest, lineW, w)
			lineW = 0
		} else {
			lineW += w
		}
	}
	return max(widest, lineW)
}

// outerIntrinsicWidth is the margin-box max-content width of node.
func (e *Engine) outerIntrinsicWidth(node *html.Node, style *css.Style, parent *Box) float64 {
	trial := &Box{
		Node:    node,
		Style:   style,
		Parent:  parent,
		Margin:  style.GetMargin(),
		Padding: style.GetPadding(),
		Border:  borderOf(style),
	}
	switch w, ok := style.GetLength("width"); {
	case ok:
		trial.Width = w
	case node.TagName == "img":
		e.sizeImage(trial)
	default:
		trial.Width = e.intrinsicWidth(trial)
	}
	return trial.outerWidth()
}
