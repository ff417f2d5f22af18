package js

import (
	"strings"

	"github.com/dop251/goja"

	"zenkai/pkg/css"
	"zenkai/pkg/dom"
	"zenkai/pkg/html"
)

// domContext holds shared state for DOM bindings within one engine. It
// keeps a node-to-proxy cache so the same JS object is returned for the
// same *html.Node (needed for === identity checks).
type domContext struct {
	vm    *goja.Runtime
	doc   *html.Document
	cache map[*html.Node]*goja.Object
}

func newDOMContext(vm *goja.Runtime, doc *html.Document) *domContext {
	return &domContext{
		vm:    vm,
		doc:   doc,
		cache: make(map[*html.Node]*goja.Object),
	}
}

// registerDocument sets up the global `document` object.
func registerDocument(ctx *domContext) {
	vm, doc := ctx.vm, ctx.doc

	docObj := vm.NewObject()
	docObj.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		return ctx.nodeValue(doc.GetElementByID(call.Argument(0).String()))
	})
	docObj.Set("getElementsByTagName", func(call goja.FunctionCall) goja.Value {
		return ctx.elementArray(elementsByTag(doc.Root, call.Argument(0).String()))
	})
	docObj.Set("getElementsByClassName", func(call goja.FunctionCall) goja.Value {
		return ctx.elementArray(elementsByClass(doc.Root, call.Argument(0).String()))
	})
	docObj.Set("createElement", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(vm.NewTypeError("Failed to execute 'createElement' on 'Document': 1 argument required"))
		}
		node := doc.CreateElement(call.Arguments[0].String())
		if node == nil {
			panic(vm.NewTypeError("Failed to execute 'createElement' on 'Document': invalid tag name"))
		}
		return ctx.elementProxy(node)
	})
	docObj.Set("createTextNode", func(call goja.FunctionCall) goja.Value {
		text := ""
		if len(call.Arguments) > 0 {
			text = call.Arguments[0].String()
		}
		return ctx.elementProxy(doc.CreateTextNode(text))
	})
	docObj.Set("createDocumentFragment", func(call goja.FunctionCall) goja.Value {
		return ctx.elementProxy(doc.CreateDocumentFragment())
	})

	registerQuerySelectors(ctx, docObj, doc.Root)
	registerDocumentProperties(ctx, docObj)

	vm.Set("document", docObj)
}

func elementsByTag(root *html.Node, tag string) []*html.Node {
	tag = strings.ToLower(tag)
	var out []*html.Node
	root.Walk(func(n *html.Node) bool {
		if n != root && (tag == "*" || n.TagName == tag) {
			out = append(out, n)
		}
		return false
	})
	return out
}

func elementsByClass(root *html.Node, classes string) []*html.Node {
	want := strings.Fields(classes)
	if len(want) == 0 {
		return nil
	}
	var out []*html.Node
	root.Walk(func(n *html.Node) bool {
		if n != root && dom.HasClass(n, want...) {
			out = append(out, n)
		}
		return false
	})
	return out
}

// elementArray creates a JS array of node proxies.
func (ctx *domContext) elementArray(nodes []*html.Node) goja.Value {
	vals := make([]any, len(nodes))
	for i, n := range nodes {
		vals[i] = ctx.elementProxy(n)
	}
	return ctx.vm.NewArray(vals...)
}

// nodeValue is elementProxy with null for a nil node.
func (ctx *domContext) nodeValue(node *html.Node) goja.Value {
	if node == nil {
		return goja.Null()
	}
	return ctx.elementProxy(node)
}

// elementProxy creates (or retrieves from cache) a JS object wrapping node.
func (ctx *domContext) elementProxy(node *html.Node) *goja.Object {
	if v, ok := ctx.cache[node]; ok {
		return v
	}
	v := ctx.vm.NewDynamicObject(&elementAccessor{ctx: ctx, node: node})
	ctx.cache[node] = v
	return v
}

// unwrapNode extracts the *html.Node behind a proxy, or nil for anything
// else.
func (ctx *domContext) unwrapNode(val goja.Value) *html.Node {
	if val == nil || goja.IsNull(val) || goja.IsUndefined(val) {
		return nil
	}
	if acc, ok := val.Export().(*elementAccessor); ok && acc.ctx == ctx {
		return acc.node
	}
	return nil
}

// elementAccessor implements goja.DynamicObject over one node.
type elementAccessor struct {
	ctx  *domContext
	node *html.Node
}

// elementKeys lists the properties served by Get besides reflected ones.
var elementKeys = []string{
	"tagName", "nodeName", "nodeType", "nodeValue", "id", "className",
	"textContent", "innerHTML", "outerHTML", "dataset",
	"getAttribute", "setAttribute", "hasAttribute", "removeAttribute",
	"children", "childNodes", "parentElement", "parentNode", "style",
	"appendChild", "removeChild", "insertBefore",
	"firstChild", "lastChild", "firstElementChild", "lastElementChild",
	"nextSibling", "previousSibling", "nextElementSibling", "previousElementSibling",
	"childElementCount",
	"querySelector", "querySelectorAll", "matches", "closest",
	"classList",
	"remove", "append", "prepend", "before", "after", "replaceWith", "replaceChildren",
	"cloneNode", "contains", "hasChildNodes",
	"getElementsByTagName", "getElementsByClassName",
}

func (e *elementAccessor) Get(key string) goja.Value {
	vm := e.ctx.vm
	n := e.node

	switch key {
	case "nodeType":
		switch n.Type {
		case html.TextNode:
			return vm.ToValue(3)
		case html.FragmentNode:
			return vm.ToValue(11)
		}
		return vm.ToValue(1)
	case "nodeName":
		switch n.Type {
		case html.TextNode:
			return vm.ToValue("#text")
		case html.FragmentNode:
			return vm.ToValue("#document-fragment")
		}
		return vm.ToValue(strings.ToUpper(n.TagName))
	case "nodeValue":
		if n.Type == html.TextNode {
			return vm.ToValue(n.Text)
		}
		return goja.Null()
	case "tagName":
		if !n.IsElement() {
			return goja.Undefined()
		}
		return vm.ToValue(strings.ToUpper(n.TagName))
	case "id":
		v, _ := n.GetAttribute("id")
		return vm.ToValue(v)
	case "className":
		v, _ := n.GetAttribute("class")
		return vm.ToValue(v)
	case "textContent":
		return vm.ToValue(n.TextContent())
	case "innerHTML":
		return vm.ToValue(n.Serialize())
	case "outerHTML":
		return vm.ToValue(n.SerializeOuter())
	case "dataset":
		return vm.ToValue(n.Dataset())

	case "getAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			val, ok := n.GetAttribute(call.Argument(0).String())
			if !ok {
				return goja.Null()
			}
			return vm.ToValue(val)
		})
	case "setAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) < 2 {
				panic(vm.NewTypeError("Failed to execute 'setAttribute': 2 arguments required"))
			}
			n.SetAttribute(call.Arguments[0].String(), call.Arguments[1].String())
			return goja.Undefined()
		})
	case "hasAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return vm.ToValue(n.HasAttribute(call.Argument(0).String()))
		})
	case "removeAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			n.RemoveAttribute(call.Argument(0).String())
			return goja.Undefined()
		})

	case "children":
		return e.ctx.elementArray(n.ElementChildren())
	case "childNodes":
		return e.ctx.elementArray(n.Children)
	case "parentElement", "parentNode":
		if p := n.Parent; p != nil && p.IsElement() && p.TagName != "document" {
			return e.ctx.elementProxy(p)
		}
		return goja.Null()
	case "style":
		return vm.NewDynamicObject(&styleAccessor{vm: vm, node: n})

	case "appendChild":
		return vm.ToValue(e.appendChildFn())
	case "removeChild":
		return vm.ToValue(e.removeChildFn())
	case "insertBefore":
		return vm.ToValue(e.insertBeforeFn())

	case "firstChild":
		return e.firstChild()
	case "lastChild":
		return e.lastChild()
	case "firstElementChild":
		return e.firstElementChild()
	case "lastElementChild":
		return e.lastElementChild()
	case "nextSibling":
		return e.nextSibling()
	case "previousSibling":
		return e.previousSibling()
	case "nextElementSibling":
		return e.nextElementSibling()
	case "previousElementSibling":
		return e.previousElementSibling()
	case "childElementCount":
		return vm.ToValue(len(n.ElementChildren()))

	case "querySelector":
		return vm.ToValue(querySelectorFn(e.ctx, n))
	case "querySelectorAll":
		return vm.ToValue(querySelectorAllFn(e.ctx, n))
	case "matches":
		return vm.ToValue(matchesFn(e.ctx, n))
	case "closest":
		return vm.ToValue(closestFn(e.ctx, n))
	case "classList":
		return newClassListProxy(e.ctx, n)

	case "remove":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if n.Parent != nil {
				n.Parent.RemoveChild(n)
			}
			return goja.Undefined()
		})
	case "append":
		return vm.ToValue(e.appendFn())
	case "prepend":
		return vm.ToValue(e.prependFn())
	case "before":
		return vm.ToValue(e.beforeFn())
	case "after":
		return vm.ToValue(e.afterFn())
	case "replaceWith":
		return vm.ToValue(e.replaceWithFn())
	case "replaceChildren":
		return vm.ToValue(e.replaceChildrenFn())

	case "cloneNode":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return e.ctx.elementProxy(n.CloneNode(call.Argument(0).ToBoolean()))
		})
	case "contains":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			other := e.ctx.unwrapNode(call.Argument(0))
			return vm.ToValue(other != nil && n.Contains(other))
		})
	case "hasChildNodes":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return vm.ToValue(len(n.Children) > 0)
		})
	case "getElementsByTagName":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return e.ctx.elementArray(elementsByTag(n, call.Argument(0).String()))
		})
	case "getElementsByClassName":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return e.ctx.elementArray(elementsByClass(n, call.Argument(0).String()))
		})
	}

	// Reflected IDL properties (value, checked, href, ...) and expandos.
	if v := n.Prop(key); v != nil {
		return vm.ToValue(v)
	}
	return goja.Undefined()
}

func (e *elementAccessor) Set(key string, val goja.Value) bool {
	n := e.node
	switch key {
	case "textContent":
		n.SetTextContent(val.String())
	case "id":
		n.SetAttribute("id", val.String())
	case "innerHTML":
		n.SetInnerHTML(val.String())
	case "nodeValue":
		if n.Type == html.TextNode {
			n.Text = val.String()
		}
	default:
		n.SetProp(key, val.Export())
	}
	return true
}

func (e *elementAccessor) Has(key string) bool {
	for _, k := range elementKeys {
		if k == key {
			return true
		}
	}
	return html.Reflects(key) || e.node.Prop(key) != nil
}

func (e *elementAccessor) Delete(key string) bool {
	return false
}

func (e *elementAccessor) Keys() []string {
	return elementKeys
}

// styleAccessor maps camelCase property access onto the node's inline
// style attribute.
type styleAccessor struct {
	vm   *goja.Runtime
	node *html.Node
}

func (s *styleAccessor) Get(key string) goja.Value {
	if key == "cssText" {
		v, _ := s.node.GetAttribute("style")
		return s.vm.ToValue(v)
	}
	return s.vm.ToValue(parseInlineStyle(s.attr())[css.CamelToKebab(key)])
}

func (s *styleAccessor) Set(key string, val goja.Value) bool {
	if key == "cssText" {
		s.node.SetAttribute("style", val.String())
		return true
	}
	decls := parseInlineStyle(s.attr())
	if v := val.String(); v == "" {
		delete(decls, css.CamelToKebab(key))
	} else {
		decls[css.CamelToKebab(key)] = v
	}
	s.store(decls)
	return true
}

func (s *styleAccessor) Has(key string) bool {
	return true
}

func (s *styleAccessor) Delete(key string) bool {
	decls := parseInlineStyle(s.attr())
	delete(decls, css.CamelToKebab(key))
	s.store(decls)
	return true
}

func (s *styleAccessor) Keys() []string {
	decls := parseInlineStyle(s.attr())
	keys := make([]string, 0, len(decls))
	for k := range decls {
		keys = append(keys, k)
	}
	return keys
}

func (s *styleAccessor) attr() string {
	v, _ := s.node.GetAttribute("style")
	return v
}

func (s *styleAccessor) store(decls map[string]string) {
	if len(decls) == 0 {
		s.node.RemoveAttribute("style")
		return
	}
	s.node.SetAttribute("style", css.SerializeInlineStyle(decls))
}

// parseInlineStyle splits a style attribute into declarations without
// expanding shorthands.
func parseInlineStyle(s string) map[string]string {
	result := make(map[string]string)
	for _, decl := range strings.Split(s, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		if prop = strings.TrimSpace(prop); prop != "" {
			result[prop] = strings.TrimSpace(val)
		}
	}
	return result
}
