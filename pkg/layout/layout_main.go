package layout

import (
	"zenkai/pkg/css"
	"zenkai/pkg/html"
)

// Layout computes the styles of doc and lays out every rendered element.
// The document root becomes a viewport-wide block at the origin.
func (e *Engine) Layout(doc *html.Document) *Result {
	e.styles = css.ApplyStylesToDocument(doc)
	e.absolute = e.absolute[:0]

	root := &Box{
		Node:     doc.Root,
		Style:    css.NewStyle(),
		Width:    e.viewport.width,
		Position: css.PositionStatic,
	}
	root.Height = max(e.layoutChildren(root), e.viewport.height)

	for _, box := range e.absolute {
		e.applyAbsolutePositioning(box)
	}
	e.absolute = e.absolute[:0]

	return newResult(root)
}
