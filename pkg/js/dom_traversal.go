package js

import (
	"github.com/dop251/goja"

	"zenkai/pkg/html"
)

// Traversal property methods on elementAccessor

func (e *elementAccessor) firstChild() goja.Value {
	if len(e.node.Children) == 0 {
		return goja.Null()
	}
	return e.ctx.elementProxy(e.node.Children[0])
}

func (e *elementAccessor) lastChild() goja.Value {
	if len(e.node.Children) == 0 {
		return goja.Null()
	}
	return e.ctx.elementProxy(e.node.Children[len(e.node.Children)-1])
}

func (e *elementAccessor) firstElementChild() goja.Value {
	for _, child := range e.node.Children {
		if child.Type == html.ElementNode {
			return e.ctx.elementProxy(child)
		}
	}
	return goja.Null()
}

func (e *elementAccessor) lastElementChild() goja.Value {
	for i := len(e.node.Children) - 1; i >= 0; i-- {
		if e.node.Children[i].Type == html.ElementNode {
			return e.ctx.elementProxy(e.node.Children[i])
		}
	}
	return goja.Null()
}

func (e *elementAccessor) nextSibling() goja.Value {
	return e.siblingAt(1, false)
}

func (e *elementAccessor) previousSibling() goja.Value {
	return e.siblingAt(-1, false)
}

func (e *elementAccessor) nextElementSibling() goja.Value {
	return e.siblingAt(1, true)
}

func (e *elementAccessor) previousElementSibling() goja.Value {
	return e.siblingAt(-1, true)
}

// siblingAt steps from the node in direction step (+1 or -1), optionally
// skipping non-element siblings.
func (e *elementAccessor) siblingAt(step int, elementsOnly bool) goja.Value {
	parent := e.node.Parent
	if parent == nil {
		return goja.Null()
	}
	idx := e.node.IndexInParent()
	if idx < 0 {
		return goja.Null()
	}
	for i := idx + step; i >= 0 && i < len(parent.Children); i += step {
		sib := parent.Children[i]
		if !elementsOnly || sib.Type == html.ElementNode {
			return e.ctx.elementProxy(sib)
		}
	}
	return goja.Null()
}

// registerDocumentProperties adds document.body, document.head and
// document.documentElement as live getters, so scripts that replace the
// body still see the current one.
func registerDocumentProperties(ctx *domContext, docObj *goja.Object) {
	doc := ctx.doc
	getter := func(find func() *html.Node) goja.Value {
		return ctx.vm.ToValue(func(goja.FunctionCall) goja.Value {
			return ctx.nodeValue(find())
		})
	}

	docObj.DefineAccessorProperty("documentElement", getter(func() *html.Node {
		return doc.Root.FirstByTag("html")
	}), nil, goja.FLAG_TRUE, goja.FLAG_TRUE)
	docObj.DefineAccessorProperty("head", getter(func() *html.Node {
		return doc.Root.FirstByTag("head")
	}), nil, goja.FLAG_TRUE, goja.FLAG_TRUE)
	docObj.DefineAccessorProperty("body", getter(doc.Body), nil, goja.FLAG_TRUE, goja.FLAG_TRUE)
}
