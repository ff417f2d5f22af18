package js

import (
	"github.com/dop251/goja"

	"zenkai/pkg/dom"
	"zenkai/pkg/html"
)

// registerQuerySelectors adds querySelector/querySelectorAll to a document object.
func registerQuerySelectors(ctx *domContext, obj *goja.Object, root *html.Node) {
	obj.Set("querySelector", querySelectorFn(ctx, root))
	obj.Set("querySelectorAll", querySelectorAllFn(ctx, root))
}

// selectorArg returns the first argument as a selector string, throwing a
// TypeError named after method when it is missing.
func selectorArg(ctx *domContext, call goja.FunctionCall, method string) string {
	if len(call.Arguments) == 0 {
		panic(ctx.vm.NewTypeError("Failed to execute '%s': 1 argument required", method))
	}
	return call.Arguments[0].String()
}

// querySelectorFn returns a JS function implementing querySelector.
func querySelectorFn(ctx *domContext, root *html.Node) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		sel := selectorArg(ctx, call, "querySelector")
		return ctx.nodeValue(dom.QuerySelector(root, sel))
	}
}

// querySelectorAllFn returns a JS function implementing querySelectorAll.
func querySelectorAllFn(ctx *domContext, root *html.Node) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		sel := selectorArg(ctx, call, "querySelectorAll")
		return ctx.elementArray(dom.QuerySelectorAll(root, sel))
	}
}

// matchesFn returns a JS function implementing element.matches(selector).
func matchesFn(ctx *domContext, node *html.Node) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		sel := selectorArg(ctx, call, "matches")
		return ctx.vm.ToValue(dom.Matches(node, sel))
	}
}

// closestFn returns a JS function implementing element.closest(selector).
func closestFn(ctx *domContext, node *html.Node) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		sel := selectorArg(ctx, call, "closest")
		return ctx.nodeValue(dom.Closest(node, sel))
	}
}
