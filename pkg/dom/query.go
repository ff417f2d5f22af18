package dom

import (
	"zenkai/pkg/css"
	"zenkai/pkg/html"
)

// QuerySelector returns the first descendant of root matching the selector
// group, or nil.
func QuerySelector(root *html.Node, selector string) *html.Node {
	if root == nil {
		return nil
	}
	sels := parseGroup(selector)
	var found *html.Node
	root.Walk(func(n *html.Node) bool {
		if n != root && matchesParsed(n, sels) {
			found = n
			return true
		}
		return false
	})
	return found
}

// QuerySelectorAll returns every descendant of root matching the selector
// group in document order.
func QuerySelectorAll(root *html.Node, selector string) []*html.Node {
	if root == nil {
		return nil
	}
	sels := parseGroup(selector)
	var out []*html.Node
	root.Walk(func(n *html.Node) bool {
		if n != root && matchesParsed(n, sels) {
			out = append(out, n)
		}
		return false
	})
	return out
}

// Matches reports whether n matches the selector group.
func Matches(n *html.Node, selector string) bool {
	return n.IsElement() && css.MatchesAny(n, selector)
}

// Closest returns n or its nearest ancestor matching selector.
func Closest(n *html.Node, selector string) *html.Node {
	sels := parseGroup(selector)
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.IsElement() && cur.TagName != "document" && matchesParsed(cur, sels) {
			return cur
		}
	}
	return nil
}

// FindAncestor walks up from n's parent and returns the first ancestor
// satisfying pred. limit bounds the number of levels visited; limit <= 0 means
// no bound.
func FindAncestor(n *html.Node, pred func(*html.Node) bool, limit int) *html.Node {
	if n == nil || pred == nil {
		return nil
	}
	level := 0
	for cur := n.Parent; cur != nil && cur.TagName != "document"; cur = cur.Parent {
		level++
		if limit > 0 && level > limit {
			return nil
		}
		if pred(cur) {
			return cur
		}
	}
	return nil
}

// GetElement resolves a selector against the whole document. A bare
// identifier is treated as an id first, as zenkai does.
func GetElement(doc *html.Document, selector string) *html.Node {
	if doc == nil {
		return nil
	}
	if el := doc.GetElementByID(selector); el != nil {
		return el
	}
	return QuerySelector(doc.Root, selector)
}

// GetElements returns every element matching selector in doc.
func GetElements(doc *html.Document, selector string) []*html.Node {
	if doc == nil {
		return nil
	}
	return QuerySelectorAll(doc.Root, selector)
}

func parseGroup(group string) []css.Selector {
	parts := css.SplitSelectorGroup(group)
	out := make([]css.Selector, 0, len(parts))
	for _, p := range parts {
		out = append(out, css.ParseSelector(p))
	}
	return out
}

func matchesParsed(n *html.Node, sels []css.Selector) bool {
	for _, s := range sels {
		if css.MatchesSelector(n, s) {
			return true
		}
	}
	return false
}
