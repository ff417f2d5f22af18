package js

import (
	"github.com/dop251/goja"

	"zenkai/pkg/dom"
	"zenkai/pkg/html"
)

// appendChildFn returns a JS function that implements node.appendChild(child).
func (e *elementAccessor) appendChildFn() func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		child := e.nodeArg(call, "appendChild")
		detach(child)
		e.node.AddChild(child)
		return e.ctx.elementProxy(child)
	}
}

// removeChildFn returns a JS function that implements node.removeChild(child).
func (e *elementAccessor) removeChildFn() func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		child := e.nodeArg(call, "removeChild")
		removed := e.node.RemoveChild(child)
		if removed == nil {
			panic(e.ctx.vm.NewTypeError("Failed to execute 'removeChild': The node to be removed is not a child of this node"))
		}
		return e.ctx.elementProxy(removed)
	}
}

// insertBeforeFn returns a JS function that implements node.insertBefore(newNode, refNode).
func (e *elementAccessor) insertBeforeFn() func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		newChild := e.nodeArg(call, "insertBefore")
		refChild := e.ctx.unwrapNode(call.Argument(1))
		if refChild != nil && refChild.Parent != e.node {
			panic(e.ctx.vm.NewTypeError("Failed to execute 'insertBefore': The reference node is not a child of this node"))
		}
		detach(newChild)
		e.node.InsertBefore(newChild, refChild)
		return e.ctx.elementProxy(newChild)
	}
}

// nodeArg unwraps the first argument, throwing a TypeError when it is not
// a node.
func (e *elementAccessor) nodeArg(call goja.FunctionCall, method string) *html.Node {
	if len(call.Arguments) == 0 {
		panic(e.ctx.vm.NewTypeError("Failed to execute '%s': 1 argument required", method))
	}
	n := e.ctx.unwrapNode(call.Arguments[0])
	if n == nil {
		panic(e.ctx.vm.NewTypeError("Failed to execute '%s': parameter 1 is not of type 'Node'", method))
	}
	return n
}

// nodesOf converts arguments to nodes. Non-node arguments become text nodes.
func (e *elementAccessor) nodesOf(args []goja.Value) []*html.Node {
	out := make([]*html.Node, 0, len(args))
	for _, arg := range args {
		if n := e.ctx.unwrapNode(arg); n != nil {
			detach(n)
			out = append(out, n)
			continue
		}
		out = append(out, e.ctx.doc.CreateTextNode(arg.String()))
	}
	return out
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// appendFn returns a JS function for element.append(...nodes).
// Accepts nodes and strings (strings become text nodes).
func (e *elementAccessor) appendFn() func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		dom.AppendChildren(e.node, e.nodesOf(call.Arguments)...)
		return goja.Undefined()
	}
}

// prependFn returns a JS function for element.prepend(...nodes).
func (e *elementAccessor) prependFn() func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		nodes := e.nodesOf(call.Arguments)
		for i := len(nodes) - 1; i >= 0; i-- {
			dom.PrependChild(e.node, nodes[i])
		}
		return goja.Undefined()
	}
}

// beforeFn returns a JS function for element.before(...nodes).
func (e *elementAccessor) beforeFn() func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if e.node.Parent == nil {
			return goja.Undefined()
		}
		for _, n := range e.nodesOf(call.Arguments) {
			dom.InsertBefore(n, e.node)
		}
		return goja.Undefined()
	}
}

// afterFn returns a JS function for element.after(...nodes).
func (e *elementAccessor) afterFn() func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if e.node.Parent == nil {
			return goja.Undefined()
		}
		ref := e.node
		for _, n := range e.nodesOf(call.Arguments) {
			dom.InsertAfter(n, ref)
			ref = n
		}
		return goja.Undefined()
	}
}

// replaceWithFn returns a JS function for element.replaceWith(...nodes).
func (e *elementAccessor) replaceWithFn() func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		parent := e.node.Parent
		if parent == nil {
			return goja.Undefined()
		}
		for _, n := range e.nodesOf(call.Arguments) {
			if n == e.node {
				continue
			}
			dom.InsertBefore(n, e.node)
		}
		if e.node.Parent == parent {
			parent.RemoveChild(e.node)
		}
		return goja.Undefined()
	}
}

// replaceChildrenFn returns a JS function for element.replaceChildren(...nodes).
func (e *elementAccessor) replaceChildrenFn() func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		nodes := e.nodesOf(call.Arguments)
		dom.RemoveChildren(e.node)
		dom.AppendChildren(e.node, nodes...)
		return goja.Undefined()
	}
}
