package layout

import (
	"strings"

	"zenkai/pkg/css"
	"zenkai/pkg/html"
	"zenkai/pkg/text"
)

// layoutText flows the words of a text node onto the current line,
// wrapping at the line width. Each run of words that shares a line becomes
// one text fragment box.
func (e *Engine) layoutText(parent *Box, node *html.Node, l *line) {
	words := text.SplitIntoWords(node.Text)
	if len(words) == 0 {
		return
	}
	fontSize := e.fontSize(parent)
	lineHeight := e.lineHeight(parent)
	space, _ := e.measurer.MeasureText(" ", fontSize)

	var (
		run        []string
		runX, runW float64
	)
	flush := func() {
		if len(run) == 0 {
			return
		}
		parent.Children = append(parent.Children, &Box{
			Node:     node,
			Parent:   parent,
			X:        l.left + runX,
			Y:        l.top,
			Width:    runW,
			Height:   lineHeight,
			Text:     strings.Join(run, " "),
			FontSize: fontSize,
		})
		run = nil
	}

	for _, word := range words {
		w, _ := e.measurer.MeasureText(word, fontSize)
		gap := 0.0
		if l.x > 0 {
			gap = space
		}
		if !l.fits(gap + w) {
			flush()
			l.breakLine()
			gap = 0
		}
		if len(run) == 0 {
			runX, runW = l.x+gap, w
		} else {
			runW += gap + w
		}
		run = append(run, word)
		l.x += gap + w
		l.height = max(l.height, lineHeight)
	}
	flush()
}

// fontSize is the font-size of the nearest box that sets one.
func (e *Engine) fontSize(box *Box) float64 {
	if v, ok := inherited(box, "font-size"); ok {
		return v
	}
	return 16
}

// lineHeight is the line-height of the nearest box that sets one, or 1.2
// times the font size. Unitless values multiply the font size.
func (e *Engine) lineHeight(box *Box) float64 {
	fontSize := e.fontSize(box)
	raw, ok := inheritedValue(box, "line-height")
	if !ok {
		return fontSize * 1.2
	}
	v, ok := css.ParseLength(raw)
	switch {
	case !ok:
		return fontSize * 1.2
	case strings.HasSuffix(strings.TrimSpace(raw), "px"):
		return v
	}
	return v * fontSize
}
