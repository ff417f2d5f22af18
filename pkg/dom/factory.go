// Package dom builds configured elements from declarative attribute
// mappings and offers class, query and mutation helpers over the tree in
// zenkai/pkg/html.
package dom

import (
	"fmt"

	"zenkai/pkg/html"
)

// Host is the document environment elements are created in.
// *html.Document implements it.
type Host interface {
	CreateElement(tag string) *html.Node
	CreateTextNode(text string) *html.Node
	CreateDocumentFragment() *html.Node
}

// Factory constructs elements against a Host.
type Factory struct {
	host Host
}

// New returns a factory bound to host.
func New(host Host) *Factory {
	return &Factory{host: host}
}

// Host returns the document environment of the factory.
func (f *Factory) Host() Host {
	return f.host
}

// CreateElement creates tag, applies the accepted attributes and appends
// content. It returns nil when the host cannot produce an element for tag.
//
// An attribute is accepted when it is global, when allowed is nil, or when
// allowed lists it; other keys are skipped. Attributes with nil values are
// skipped. An accepted key with no dispatch entry panics.
//
// Content may be a *html.Node, a string (appended as text), or a slice of
// those; slices are appended in order.
func (f *Factory) CreateElement(tag string, allowed Whitelist, attrs Attributes, content ...any) *html.Node {
	el := f.CreateEmptyElement(tag, allowed, attrs)
	if el == nil {
		return nil
	}
	f.appendContent(el, content)
	return el
}

// CreateEmptyElement is CreateElement without the content step, for void
// elements.
func (f *Factory) CreateEmptyElement(tag string, allowed Whitelist, attrs Attributes) *html.Node {
	el := f.host.CreateElement(tag)
	if !el.IsElement() {
		return nil
	}
	for _, attr := range attrs {
		if attr.Value == nil || !allowed.Accepts(attr.Name) {
			continue
		}
		h, ok := handlers[attr.Name]
		if !ok {
			panic(fmt.Sprintf("dom: attribute %q on <%s> has no dispatch entry", attr.Name, tag))
		}
		h.Apply(el, attr.Value)
	}
	return el
}

// CreateDocumentFragment returns a fragment holding content.
func (f *Factory) CreateDocumentFragment(content ...any) *html.Node {
	frag := f.host.CreateDocumentFragment()
	f.appendContent(frag, content)
	return frag
}

// CreateTextNode returns a detached text node.
func (f *Factory) CreateTextNode(text string) *html.Node {
	return f.host.CreateTextNode(text)
}

func (f *Factory) appendContent(parent *html.Node, content []any) {
	for _, c := range content {
		f.appendOne(parent, c)
	}
}

func (f *Factory) appendOne(parent *html.Node, c any) {
	switch v := c.(type) {
	case nil:
	case *html.Node:
		if v != nil {
			parent.AddChild(v)
		}
	case string:
		parent.AddChild(f.host.CreateTextNode(v))
	case []*html.Node:
		for _, n := range v {
			f.appendOne(parent, n)
		}
	case []string:
		for _, s := range v {
			f.appendOne(parent, s)
		}
	case []any:
		for _, item := range v {
			f.appendOne(parent, item)
		}
	case fmt.Stringer:
		parent.AddChild(f.host.CreateTextNode(v.String()))
	default:
		panic(fmt.Sprintf("dom: unsupported content of type %T", c))
	}
}
