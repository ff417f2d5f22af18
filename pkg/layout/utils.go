package layout

import (
	"fmt"

	"zenkai/pkg/css"
	"zenkai/pkg/html"
)

// inheritedValue returns the value of an inherited property from the
// nearest box that sets it.
func inheritedValue(box *Box, property string) (string, bool) {
	for b := box; b != nil; b = b.Parent {
		if b.Style == nil {
			continue
		}
		if v, ok := b.Style.Get(property); ok && v != "inherit" {
			return v, true
		}
	}
	return "", false
}

func inherited(box *Box, property string) (float64, bool) {
	v, ok := inheritedValue(box, property)
	if !ok {
		return 0, false
	}
	return css.ParseLength(v)
}

// InheritedColor returns the text color in effect for a box.
func InheritedColor(box *Box) css.Color {
	if v, ok := inheritedValue(box, "color"); ok {
		if c, ok := css.ParseColor(v); ok {
			return c
		}
	}
	return css.Color{A: 1}
}

// getNodeName returns a debug string for a node
func getNodeName(node *html.Node) string {
	if node == nil {
		return "<nil>"
	}
	if node.Type == html.TextNode {
		return fmt.Sprintf("TEXT(%q)", truncateString(node.Text, 20))
	}
	if node.TagName != "" {
		return "<" + node.TagName + ">"
	}
	return "<element>"
}

// truncateString truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// String renders the box for debugging.
func (b *Box) String() string {
	r := b.BorderBox()
	return fmt.Sprintf("%s [%.0f,%.0f %.0fx%.0f]", getNodeName(b.Node), r.Left, r.Top, r.Width(), r.Height())
}
