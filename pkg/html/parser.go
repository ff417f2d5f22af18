package html

import (
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CSSFetcher loads the text of an external stylesheet.
type CSSFetcher func(uri string) (string, error)

type Parser struct {
	doc      *Document
	fetchCSS CSSFetcher
}

func NewParser(fetcher CSSFetcher) *Parser {
	return &Parser{doc: NewDocument(), fetchCSS: fetcher}
}

// Parse builds a Document from a complete HTML page.
func (p *Parser) Parse(markup string) (*Document, error) {
	root, err := xhtml.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, errors.Wrap(err, "parse html")
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if n := p.convert(c); n != nil {
			p.doc.Root.AddChild(n)
		}
	}
	return p.doc, nil
}

// convert maps an x/net/html node onto our tree. <style> and <script>
// bodies are collected on the document instead of being kept as nodes.
func (p *Parser) convert(src *xhtml.Node) *Node {
	switch src.Type {
	case xhtml.TextNode:
		return &Node{Type: TextNode, Text: src.Data}
	case xhtml.ElementNode:
	default:
		return nil
	}

	switch src.DataAtom {
	case atom.Style:
		p.doc.Stylesheets = append(p.doc.Stylesheets, innerText(src))
		return nil
	case atom.Script:
		if t := attrOf(src, "type"); t == "" || strings.Contains(t, "javascript") || t == "module" {
			p.doc.Scripts = append(p.doc.Scripts, innerText(src))
		}
		return nil
	case atom.Link:
		if strings.Contains(attrOf(src, "rel"), "stylesheet") {
			if css := p.loadLinkStylesheet(attrOf(src, "href")); css != "" {
				p.doc.Stylesheets = append(p.doc.Stylesheets, css)
			}
		}
	}

	node := NewElement(src.Data)
	for _, a := range src.Attr {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + a.Key
		}
		node.Attributes[key] = a.Val
	}
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		if child := p.convert(c); child != nil {
			node.AddChild(child)
		}
	}
	return node
}

// loadLinkStylesheet resolves data URIs inline and defers everything else
// to the configured fetcher.
func (p *Parser) loadLinkStylesheet(href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "data:text/css,") {
		encoded := href[len("data:text/css,"):]
		decoded, err := url.PathUnescape(encoded)
		if err != nil {
			return encoded
		}
		return decoded
	}
	if p.fetchCSS == nil || href == "" {
		return ""
	}
	css, err := p.fetchCSS(href)
	if err != nil {
		return ""
	}
	return css
}

func attrOf(n *xhtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func innerText(n *xhtml.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xhtml.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

func Parse(markup string) (*Document, error) {
	return NewParser(nil).Parse(markup)
}

func ParseWithFetcher(markup string, fetcher CSSFetcher) (*Document, error) {
	return NewParser(fetcher).Parse(markup)
}

// ParseFragment parses markup in a <body> context and returns the detached
// top-level nodes.
func ParseFragment(markup string) ([]*Node, error) {
	context := &xhtml.Node{Type: xhtml.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := xhtml.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, errors.Wrap(err, "parse fragment")
	}
	p := NewParser(nil)
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if converted := p.convert(n); converted != nil {
			out = append(out, converted)
		}
	}
	return out, nil
}

var sanitizer = newSanitizer()

func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class", "role", "tabindex").Globally()
	p.AllowDataAttributes()
	p.AllowAttrs("type", "name", "value", "checked", "placeholder").OnElements("input")
	p.AllowElements("input", "label", "button", "select", "option", "textarea")
	return p
}

// ParseFragmentSanitized strips scripts, event handlers and unsafe URLs
// before parsing.
func ParseFragmentSanitized(markup string) ([]*Node, error) {
	return ParseFragment(sanitizer.Sanitize(markup))
}

// SetInnerHTML replaces the node's children with the parsed markup.
// Markup that fails to parse leaves the node empty.
func (n *Node) SetInnerHTML(markup string) {
	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = make([]*Node, 0)
	if markup == "" {
		return
	}
	children, err := ParseFragment(markup)
	if err != nil {
		return
	}
	for _, c := range children {
		n.AddChild(c)
	}
}
