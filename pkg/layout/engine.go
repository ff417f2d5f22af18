// Package layout computes box geometry for a parsed document: block flow,
// inline-block line wrapping, absolute and relative positioning. The
// resulting Result answers nav.Geometry queries.
package layout

import (
	"zenkai/pkg/css"
	"zenkai/pkg/html"
	"zenkai/pkg/images"
	"zenkai/pkg/text"
)

type Engine struct {
	viewport struct {
		width  float64
		height float64
	}
	measurer     *text.Measurer
	imageFetcher images.ImageFetcher // Optional fetcher for network images

	styles   map[*html.Node]*css.Style
	absolute []*Box // positioned after in-flow layout, innermost first
}

func NewEngine(viewportWidth, viewportHeight float64) *Engine {
	e := &Engine{measurer: text.Default()}
	e.viewport.width = viewportWidth
	e.viewport.height = viewportHeight
	return e
}

// SetImageFetcher sets the image fetcher used to load network images during layout.
func (e *Engine) SetImageFetcher(fetcher images.ImageFetcher) {
	e.imageFetcher = fetcher
}

// SetMeasurer replaces the text measurer. A nil measurer restores the
// built-in face.
func (e *Engine) SetMeasurer(m *text.Measurer) {
	if m == nil {
		m = text.Default()
	}
	e.measurer = m
}

// Viewport returns the viewport size.
func (e *Engine) Viewport() (width, height float64) {
	return e.viewport.width, e.viewport.height
}

func (e *Engine) styleOf(node *html.Node) *css.Style {
	if s, ok := e.styles[node]; ok {
		return s
	}
	return css.NewStyle()
}
