package dom

import (
	"strings"

	"zenkai/pkg/html"
)

// Classes returns the class tokens of n in order, without duplicates.
func Classes(n *html.Node) []string {
	if !n.IsElement() {
		return nil
	}
	raw, _ := n.GetAttribute("class")
	return uniqueTokens(strings.Fields(raw))
}

func uniqueTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// splitClasses flattens arguments that may hold several space separated
// classes.
func splitClasses(classes []string) []string {
	var out []string
	for _, c := range classes {
		out = append(out, strings.Fields(c)...)
	}
	return out
}

func setClasses(n *html.Node, tokens []string) {
	if len(tokens) == 0 {
		n.RemoveAttribute("class")
		return
	}
	n.SetAttribute("class", strings.Join(tokens, " "))
}

// AddClass adds classes to n. The class attribute ends up single-spaced
// with no duplicates.
func AddClass(n *html.Node, classes ...string) {
	if !n.IsElement() {
		return
	}
	tokens := append(Classes(n), splitClasses(classes)...)
	setClasses(n, uniqueTokens(tokens))
}

// RemoveClass removes classes from n.
func RemoveClass(n *html.Node, classes ...string) {
	if !n.IsElement() {
		return
	}
	drop := make(map[string]bool)
	for _, c := range splitClasses(classes) {
		drop[c] = true
	}
	var kept []string
	for _, c := range Classes(n) {
		if !drop[c] {
			kept = append(kept, c)
		}
	}
	if _, had := n.GetAttribute("class"); had {
		setClasses(n, kept)
	}
}

// HasClass reports whether n carries every one of classes.
func HasClass(n *html.Node, classes ...string) bool {
	if !n.IsElement() {
		return false
	}
	have := make(map[string]bool)
	for _, c := range Classes(n) {
		have[c] = true
	}
	wanted := splitClasses(classes)
	if len(wanted) == 0 {
		return false
	}
	for _, c := range wanted {
		if !have[c] {
			return false
		}
	}
	return true
}

// ToggleClass flips class on n and reports whether it is now present. A
// force value adds (true) or removes (false) unconditionally.
func ToggleClass(n *html.Node, class string, force ...bool) bool {
	on := !HasClass(n, class)
	if len(force) > 0 {
		on = force[0]
	}
	if on {
		AddClass(n, class)
	} else {
		RemoveClass(n, class)
	}
	return on
}

// ReplaceClass swaps oldClass for newClass in place. It reports false when
// oldClass is absent.
func ReplaceClass(n *html.Node, oldClass, newClass string) bool {
	if !HasClass(n, oldClass) {
		return false
	}
	var tokens []string
	for _, c := range Classes(n) {
		if c == oldClass {
			c = newClass
		}
		tokens = append(tokens, c)
	}
	setClasses(n, uniqueTokens(tokens))
	return true
}
