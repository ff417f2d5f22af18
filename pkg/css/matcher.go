package css

import (
	"strconv"
	"strings"

	"zenkai/pkg/html"
)

// MatchesSelector returns true if the node matches the complex selector
func MatchesSelector(node *html.Node, selector Selector) bool {
	if !node.IsElement() || len(selector.Parts) == 0 {
		return false
	}
	// Start matching from the rightmost part (the target element)
	return matchesCompoundSelector(node, selector, len(selector.Parts)-1)
}

// MatchesAny parses a selector group and reports whether node matches any
// member of it.
func MatchesAny(node *html.Node, group string) bool {
	for _, s := range SplitSelectorGroup(group) {
		if MatchesSelector(node, ParseSelector(s)) {
			return true
		}
	}
	return false
}

// matchesCompoundSelector checks if the node matches the selector at the given part index
// and all ancestor requirements
func matchesCompoundSelector(node *html.Node, selector Selector, partIndex int) bool {
	if !matchesSelectorPart(node, selector.Parts[partIndex]) {
		return false
	}
	if partIndex == 0 {
		return true
	}

	prevPartIndex := partIndex - 1
	switch selector.Combinators[prevPartIndex] {
	case DescendantCombinator:
		return matchesAncestor(node, selector, prevPartIndex)
	case ChildCombinator:
		// Skip the synthetic document node
		if node.Parent != nil && node.Parent.TagName != "document" {
			return matchesCompoundSelector(node.Parent, selector, prevPartIndex)
		}
		return false
	case AdjacentSiblingCombinator:
		if prev := previousElementSibling(node); prev != nil {
			return matchesCompoundSelector(prev, selector, prevPartIndex)
		}
		return false
	case GeneralSiblingCombinator:
		for sib := previousElementSibling(node); sib != nil; sib = previousElementSibling(sib) {
			if matchesCompoundSelector(sib, selector, prevPartIndex) {
				return true
			}
		}
	}
	return false
}

// matchesSelectorPart checks if a node matches a single selector part
func matchesSelectorPart(node *html.Node, part SelectorPart) bool {
	if node.Type != html.ElementNode {
		return false
	}
	if part.Element != "" && part.Element != "*" && node.TagName != part.Element {
		return false
	}
	if part.ID != "" {
		if id, ok := node.GetAttribute("id"); !ok || id != part.ID {
			return false
		}
	}
	if len(part.Classes) > 0 {
		classAttr, ok := node.GetAttribute("class")
		if !ok {
			return false
		}
		nodeClasses := strings.Fields(classAttr)
		for _, required := range part.Classes {
			if !containsString(nodeClasses, required) {
				return false
			}
		}
	}
	for _, attrSel := range part.Attributes {
		if !matchesAttributeSelector(node, attrSel) {
			return false
		}
	}
	for _, pc := range part.PseudoClasses {
		if !matchesPseudoClass(node, pc) {
			return false
		}
	}
	return true
}

// matchesPseudoClass handles the structural pseudo-classes. Dynamic ones
// (hover, focus, ...) never match in a static tree.
func matchesPseudoClass(node *html.Node, pc string) bool {
	switch {
	case pc == "first-child":
		return previousElementSibling(node) == nil
	case pc == "last-child":
		return nextElementSibling(node) == nil
	case pc == "only-child":
		return previousElementSibling(node) == nil && nextElementSibling(node) == nil
	case pc == "checked":
		return node.HasAttribute("checked") || node.HasAttribute("selected")
	case pc == "disabled":
		return node.HasAttribute("disabled")
	case strings.HasPrefix(pc, "nth-child(") && strings.HasSuffix(pc, ")"):
		a, b, ok := parseNth(pc[len("nth-child(") : len(pc)-1])
		return ok && matchesNth(elementIndex(node)+1, a, b)
	case strings.HasPrefix(pc, "not(") && strings.HasSuffix(pc, ")"):
		return !MatchesAny(node, pc[len("not("):len(pc)-1])
	}
	return false
}

// matchesAttributeSelector checks if a node matches an attribute selector
func matchesAttributeSelector(node *html.Node, attr AttributeSelector) bool {
	value, ok := node.GetAttribute(attr.Name)
	if !ok {
		return false
	}

	switch attr.Operator {
	case "":
		return true
	case "=":
		return value == attr.Value
	case "^=":
		return strings.HasPrefix(value, attr.Value)
	case "$=":
		return strings.HasSuffix(value, attr.Value)
	case "*=":
		return strings.Contains(value, attr.Value)
	case "~=":
		return containsString(strings.Fields(value), attr.Value)
	case "|=":
		return value == attr.Value || strings.HasPrefix(value, attr.Value+"-")
	}
	return false
}

// matchesAncestor checks if any ancestor matches the selector part
func matchesAncestor(node *html.Node, selector Selector, partIndex int) bool {
	for ancestor := node.Parent; ancestor != nil; ancestor = ancestor.Parent {
		if ancestor.Type == html.ElementNode && ancestor.TagName != "document" {
			if matchesCompoundSelector(ancestor, selector, partIndex) {
				return true
			}
		}
	}
	return false
}

func previousElementSibling(node *html.Node) *html.Node {
	idx := node.IndexInParent()
	if idx < 0 {
		return nil
	}
	for i := idx - 1; i >= 0; i-- {
		if sib := node.Parent.Children[i]; sib.Type == html.ElementNode {
			return sib
		}
	}
	return nil
}

func nextElementSibling(node *html.Node) *html.Node {
	idx := node.IndexInParent()
	if idx < 0 {
		return nil
	}
	for i := idx + 1; i < len(node.Parent.Children); i++ {
		if sib := node.Parent.Children[i]; sib.Type == html.ElementNode {
			return sib
		}
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// FindMatchingRules returns all rules that match the given node
func FindMatchingRules(node *html.Node, stylesheet *Stylesheet) []Rule {
	matches := make([]Rule, 0)
	for _, rule := range stylesheet.Rules {
		if MatchesSelector(node, rule.Selector) {
			matches = append(matches, rule)
		}
	}
	return matches
}

// elementIndex returns the position of node among its element siblings.
func elementIndex(node *html.Node) int {
	idx := 0
	for sib := previousElementSibling(node); sib != nil; sib = previousElementSibling(sib) {
		idx++
	}
	return idx
}

// parseNth parses the an+b argument of :nth-child, including the even and
// odd keywords.
func parseNth(expr string) (a, b int, ok bool) {
	expr = strings.ToLower(strings.ReplaceAll(expr, " ", ""))
	switch expr {
	case "even":
		return 2, 0, true
	case "odd":
		return 2, 1, true
	}
	n := strings.IndexByte(expr, 'n')
	if n < 0 {
		b, err := strconv.Atoi(expr)
		return 0, b, err == nil
	}
	switch coef := expr[:n]; coef {
	case "", "+":
		a = 1
	case "-":
		a = -1
	default:
		v, err := strconv.Atoi(coef)
		if err != nil {
			return 0, 0, false
		}
		a = v
	}
	if rest := expr[n+1:]; rest != "" {
		v, err := strconv.Atoi(rest)
		if err != nil {
			return 0, 0, false
		}
		b = v
	}
	return a, b, true
}

// matchesNth reports whether pos (1-based) equals a*k+b for some k >= 0.
func matchesNth(pos, a, b int) bool {
	if a == 0 {
		return pos == b
	}
	k := pos - b
	return k%a == 0 && k/a >= 0
}
