package js

import (
	"strconv"
	"time"

	"github.com/dop251/goja"

	"zenkai/pkg/dom"
	"zenkai/pkg/html"
	"zenkai/pkg/nav"
	"zenkai/pkg/std"
)

// registerBundle installs the `zenkai` global.
func registerBundle(e *Engine) {
	vm := e.vm
	z := vm.NewObject()

	// Element factory
	z.Set("createElement", func(call goja.FunctionCall) goja.Value {
		tag := call.Argument(0).String()
		attrs := e.attrsArg(call.Argument(1))
		content := e.contentArgs(restOf(call, 2))
		return e.guard(func() *html.Node {
			return e.factory.CreateElement(tag, nil, attrs, content...)
		})
	})
	z.Set("createEmptyElement", func(call goja.FunctionCall) goja.Value {
		tag := call.Argument(0).String()
		attrs := e.attrsArg(call.Argument(1))
		return e.guard(func() *html.Node {
			return e.factory.CreateEmptyElement(tag, nil, attrs)
		})
	})
	z.Set("createDocumentFragment", func(call goja.FunctionCall) goja.Value {
		content := e.contentArgs(call.Arguments)
		return e.guard(func() *html.Node {
			return e.factory.CreateDocumentFragment(content...)
		})
	})
	z.Set("createTextNode", func(call goja.FunctionCall) goja.Value {
		return e.dom.elementProxy(e.factory.CreateTextNode(call.Argument(0).String()))
	})
	for _, t := range dom.Tags() {
		tag := t.Tag
		z.Set("create"+t.Name, func(call goja.FunctionCall) goja.Value {
			attrs := e.attrsArg(call.Argument(0))
			content := e.contentArgs(restOf(call, 1))
			return e.guard(func() *html.Node {
				return e.factory.Create(tag, attrs, content...)
			})
		})
	}

	// Class helpers
	z.Set("addClass", func(call goja.FunctionCall) goja.Value {
		dom.AddClass(e.elementArg(call.Argument(0), "addClass"), tokens(restOf(call, 1))...)
		return call.Argument(0)
	})
	z.Set("removeClass", func(call goja.FunctionCall) goja.Value {
		dom.RemoveClass(e.elementArg(call.Argument(0), "removeClass"), tokens(restOf(call, 1))...)
		return call.Argument(0)
	})
	z.Set("toggleClass", func(call goja.FunctionCall) goja.Value {
		el := e.elementArg(call.Argument(0), "toggleClass")
		class := call.Argument(1).String()
		if force := call.Argument(2); !goja.IsUndefined(force) {
			return vm.ToValue(dom.ToggleClass(el, class, force.ToBoolean()))
		}
		return vm.ToValue(dom.ToggleClass(el, class))
	})
	z.Set("hasClass", func(call goja.FunctionCall) goja.Value {
		el := e.elementArg(call.Argument(0), "hasClass")
		return vm.ToValue(dom.HasClass(el, tokens(restOf(call, 1))...))
	})

	// Lookup
	z.Set("getElement", func(call goja.FunctionCall) goja.Value {
		return e.dom.nodeValue(dom.GetElement(e.doc, call.Argument(0).String()))
	})
	z.Set("getElements", func(call goja.FunctionCall) goja.Value {
		return e.dom.elementArray(dom.GetElements(e.doc, call.Argument(0).String()))
	})

	// Navigation
	z.Set("closest", e.closest)
	z.Set("isInElement", func(call goja.FunctionCall) goja.Value {
		n := e.elementArg(call.Argument(0), "isInElement")
		container := e.elementArg(call.Argument(1), "isInElement")
		return vm.ToValue(nav.InElement(e.geometry(), n, container))
	})
	extremes := map[string]func(nav.Geometry, *html.Node) (*html.Node, error){
		"getTopElement":    nav.TopElement,
		"getBottomElement": nav.BottomElement,
		"getLeftElement":   nav.LeftElement,
		"getRightElement":  nav.RightElement,
	}
	for name, fn := range extremes {
		name, fn := name, fn
		z.Set(name, func(call goja.FunctionCall) goja.Value {
			container := e.elementArg(call.Argument(0), name)
			n, err := fn(e.geometry(), container)
			if err != nil {
				panic(vm.NewTypeError("%v", err))
			}
			return e.dom.nodeValue(n)
		})
	}

	// Std helpers
	z.Set("isNull", std.IsNull)
	z.Set("isEmpty", std.IsEmpty)
	z.Set("isNullOrEmpty", std.IsNullOrEmpty)
	z.Set("isNullOrWhitespace", std.IsNullOrWhitespace)
	z.Set("valuable", std.Valuable)
	z.Set("toBoolean", std.ToBoolean)
	z.Set("capitalize", std.Capitalize)
	z.Set("capitalizeFirst", std.CapitalizeFirst)
	z.Set("camelCase", std.CamelCase)
	z.Set("pascalCase", std.PascalCase)
	z.Set("kebabCase", std.KebabCase)
	z.Set("snakeCase", std.SnakeCase)
	z.Set("removeAccents", std.RemoveAccents)
	z.Set("formatDate", func(call goja.FunctionCall) goja.Value {
		t, ok := timeArg(call.Argument(0))
		if !ok {
			panic(vm.NewTypeError("formatDate: argument 1 is not a date"))
		}
		return vm.ToValue(std.FormatDate(t, call.Argument(1).String()))
	})

	vm.Set("zenkai", z)
}

// closest implements zenkai.closest(source, dir, container, relative).
// container defaults to the source's parent and relative to true.
func (e *Engine) closest(call goja.FunctionCall) goja.Value {
	vm := e.vm
	source := e.elementArg(call.Argument(0), "closest")
	dir, err := nav.ParseDirection(call.Argument(1).String())
	if err != nil {
		panic(vm.NewTypeError("%v", err))
	}
	container := source.Parent
	if c := call.Argument(2); !goja.IsUndefined(c) && !goja.IsNull(c) {
		container = e.elementArg(c, "closest")
	}
	relative := true
	if r := call.Argument(3); !goja.IsUndefined(r) {
		relative = r.ToBoolean()
	}

	n, err := nav.Closest(e.geometry(), source, container, dir, relative)
	if err != nil {
		panic(vm.NewTypeError("%v", err))
	}
	return e.dom.nodeValue(n)
}

// guard runs a factory call, turning its contract panics into TypeErrors
// and a nil node into null.
func (e *Engine) guard(fn func() *html.Node) goja.Value {
	defer func() {
		if r := recover(); r != nil {
			if msg, ok := r.(string); ok {
				panic(e.vm.NewTypeError(msg))
			}
			panic(r)
		}
	}()
	return e.dom.nodeValue(fn())
}

// elementArg unwraps an element argument or throws a TypeError.
func (e *Engine) elementArg(v goja.Value, fn string) *html.Node {
	n := e.dom.unwrapNode(v)
	if n == nil || !n.IsElement() {
		panic(e.vm.NewTypeError("%s: argument is not an element", fn))
	}
	return n
}

// attrsArg converts a plain JS object into attributes in property order.
// Anything else yields no attributes.
func (e *Engine) attrsArg(v goja.Value) dom.Attributes {
	obj, ok := v.(*goja.Object)
	if !ok || obj.ClassName() != "Object" || e.dom.unwrapNode(v) != nil {
		return nil
	}
	keys := obj.Keys()
	attrs := make(dom.Attributes, 0, len(keys))
	for _, k := range keys {
		val := obj.Get(k)
		if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
			continue
		}
		attrs = append(attrs, dom.Attribute{Name: k, Value: val.Export()})
	}
	return attrs
}

// contentArgs converts script values into factory content: node proxies,
// strings and arrays of those. null and undefined are skipped; other
// values are appended as their string form.
func (e *Engine) contentArgs(args []goja.Value) []any {
	out := make([]any, 0, len(args))
	for _, a := range args {
		if c := e.contentOf(a); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func (e *Engine) contentOf(v goja.Value) any {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	if n := e.dom.unwrapNode(v); n != nil {
		return n
	}
	if obj, ok := v.(*goja.Object); ok && obj.ClassName() == "Array" {
		length := int(obj.Get("length").ToInteger())
		items := make([]goja.Value, length)
		for i := range items {
			items[i] = obj.Get(strconv.Itoa(i))
		}
		return e.contentArgs(items)
	}
	return v.String()
}

// timeArg accepts a Date or a millisecond timestamp.
func timeArg(v goja.Value) (time.Time, bool) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return time.Time{}, false
	}
	switch x := v.Export().(type) {
	case time.Time:
		return x, true
	case int64:
		return time.UnixMilli(x), true
	case float64:
		return time.UnixMilli(int64(x)), true
	}
	return time.Time{}, false
}

func restOf(call goja.FunctionCall, from int) []goja.Value {
	if len(call.Arguments) <= from {
		return nil
	}
	return call.Arguments[from:]
}
