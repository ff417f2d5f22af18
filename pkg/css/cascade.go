package css

import (
	"sort"

	"zenkai/pkg/html"
)

// applyUserAgentStyles applies default browser styles based on element type
func applyUserAgentStyles(node *html.Node, style *Style) {
	switch node.TagName {
	case "a":
		style.Set("color", "#0645ad")
		style.Set("display", "inline")
	case "span", "b", "i", "em", "strong", "label", "code", "small":
		style.Set("display", "inline")
	case "input", "button", "select", "textarea", "img":
		style.Set("display", "inline-block")
	case "head", "script", "style", "template", "meta", "link", "title":
		style.Set("display", "none")
	}
	if node.HasAttribute("hidden") {
		style.Set("display", "none")
	}
}

// ComputeStyle computes the final style for a node by applying the cascade:
// user agent defaults, then sheet rules by specificity and source order,
// then the inline style attribute.
func ComputeStyle(node *html.Node, stylesheets []*Stylesheet) *Style {
	finalStyle := NewStyle()
	applyUserAgentStyles(node, finalStyle)

	type ranked struct {
		rule  Rule
		sheet int
	}
	var all []ranked
	for i, stylesheet := range stylesheets {
		for _, r := range FindMatchingRules(node, stylesheet) {
			all = append(all, ranked{r, i})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.rule.Selector.Specificity != b.rule.Selector.Specificity {
			return a.rule.Selector.Specificity < b.rule.Selector.Specificity
		}
		if a.sheet != b.sheet {
			return a.sheet < b.sheet
		}
		return a.rule.order < b.rule.order
	})
	for _, r := range all {
		for property, value := range r.rule.Declarations {
			finalStyle.Set(property, value)
		}
	}

	if styleAttr, ok := node.GetAttribute("style"); ok {
		for property, value := range ParseInlineStyle(styleAttr).Properties {
			finalStyle.Set(property, value)
		}
	}
	return finalStyle
}

// ParseStylesheets parses every stylesheet text of the document, dropping
// those that fail.
func ParseStylesheets(doc *html.Document) []*Stylesheet {
	sheets := make([]*Stylesheet, 0, len(doc.Stylesheets))
	for _, cssText := range doc.Stylesheets {
		if sheet, err := ParseStylesheet(cssText); err == nil {
			sheets = append(sheets, sheet)
		}
	}
	return sheets
}

// ApplyStylesToDocument computes the style of every element in the document.
func ApplyStylesToDocument(doc *html.Document) map[*html.Node]*Style {
	styles := make(map[*html.Node]*Style)
	sheets := ParseStylesheets(doc)
	doc.Root.Walk(func(n *html.Node) bool {
		if n.TagName != "document" {
			styles[n] = ComputeStyle(n, sheets)
		}
		return false
	})
	return styles
}
