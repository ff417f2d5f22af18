package dom

import (
	"fmt"
	"sort"
	"strings"

	"zenkai/pkg/css"
	"zenkai/pkg/html"
)

// Strategy is how a dispatch entry applies a value to an element.
type Strategy int

const (
	// DirectAssign sets the typed property named by Target.
	DirectAssign Strategy = iota
	// MergeAssign merges a map into the nested property named by Target.
	// Only the dataset uses it.
	MergeAssign
	// AttributeAssign sets the literal content attribute named by Target.
	AttributeAssign
)

func (s Strategy) String() string {
	switch s {
	case DirectAssign:
		return "direct"
	case MergeAssign:
		return "merge"
	case AttributeAssign:
		return "attribute"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Handler is one entry of the dispatch table.
type Handler struct {
	Strategy Strategy
	Target   string
}

func direct(target string) Handler    { return Handler{DirectAssign, target} }
func attribute(target string) Handler { return Handler{AttributeAssign, target} }

// handlers maps attribute keys to their setter. Written once at init.
var handlers = map[string]Handler{
	"accept":          direct("accept"),
	"accesskey":       direct("accessKey"),
	"action":          direct("action"),
	"alt":             direct("alt"),
	"async":           direct("async"),
	"autocomplete":    direct("autocomplete"),
	"autofocus":       direct("autofocus"),
	"autoplay":        direct("autoplay"),
	"charset":         attribute("charset"),
	"checked":         direct("checked"),
	"cite":            direct("cite"),
	"class":           direct("className"),
	"cols":            direct("cols"),
	"colspan":         direct("colSpan"),
	"content":         direct("content"),
	"contenteditable": direct("contentEditable"),
	"controls":        direct("controls"),
	"coords":          direct("coords"),
	"crossorigin":     direct("crossOrigin"),
	"data":            {MergeAssign, "dataset"},
	"datetime":        direct("dateTime"),
	"default":         direct("default"),
	"defer":           direct("defer"),
	"dir":             direct("dir"),
	"dirname":         direct("dirName"),
	"disabled":        direct("disabled"),
	"download":        direct("download"),
	"draggable":       direct("draggable"),
	"enctype":         direct("enctype"),
	"for":             direct("htmlFor"),
	"form":            attribute("form"),
	"formaction":      direct("formAction"),
	"formnovalidate":  direct("formNoValidate"),
	"headers":         direct("headers"),
	"height":          direct("height"),
	"hidden":          direct("hidden"),
	"high":            direct("high"),
	"href":            direct("href"),
	"hreflang":        direct("hreflang"),
	"html":            direct("innerHTML"),
	"http-equiv":      direct("httpEquiv"),
	"id":              direct("id"),
	"ismap":           direct("isMap"),
	"kind":            direct("kind"),
	"label":           direct("label"),
	"lang":            direct("lang"),
	"list":            attribute("list"),
	"loop":            direct("loop"),
	"low":             direct("low"),
	"max":             direct("max"),
	"maxlength":       direct("maxLength"),
	"media":           direct("media"),
	"method":          direct("method"),
	"min":             direct("min"),
	"minlength":       direct("minLength"),
	"multiple":        direct("multiple"),
	"muted":           direct("muted"),
	"name":            direct("name"),
	"novalidate":      direct("noValidate"),
	"open":            direct("open"),
	"optimum":         direct("optimum"),
	"pattern":         direct("pattern"),
	"placeholder":     direct("placeholder"),
	"playsinline":     attribute("playsinline"),
	"poster":          direct("poster"),
	"preload":         direct("preload"),
	"readonly":        direct("readOnly"),
	"referrerpolicy":  direct("referrerPolicy"),
	"rel":             direct("rel"),
	"required":        direct("required"),
	"reversed":        direct("reversed"),
	"role":            attribute("role"),
	"rows":            direct("rows"),
	"rowspan":         direct("rowSpan"),
	"sandbox":         direct("sandbox"),
	"scope":           direct("scope"),
	"selected":        direct("selected"),
	"shape":           direct("shape"),
	"size":            direct("size"),
	"sizes":           direct("sizes"),
	"span":            direct("span"),
	"spellcheck":      attribute("spellcheck"),
	"src":             direct("src"),
	"srcdoc":          direct("srcdoc"),
	"srclang":         direct("srclang"),
	"srcset":          direct("srcset"),
	"start":           direct("start"),
	"step":            direct("step"),
	"style":           attribute("style"),
	"tabindex":        direct("tabIndex"),
	"target":          direct("target"),
	"text":            direct("textContent"),
	"title":           direct("title"),
	"translate":       direct("translate"),
	"type":            direct("type"),
	"usemap":          direct("useMap"),
	"value":           direct("value"),
	"width":           direct("width"),
	"wrap":            direct("wrap"),
}

// globalAttributes are accepted on every element whatever its whitelist.
var globalAttributes = map[string]bool{
	"accesskey":       true,
	"class":           true,
	"contenteditable": true,
	"data":            true,
	"dir":             true,
	"draggable":       true,
	"hidden":          true,
	"html":            true,
	"id":              true,
	"lang":            true,
	"role":            true,
	"spellcheck":      true,
	"style":           true,
	"tabindex":        true,
	"text":            true,
	"title":           true,
	"translate":       true,
}

// Lookup returns the dispatch entry for an attribute key.
func Lookup(key string) (Handler, bool) {
	h, ok := handlers[key]
	return h, ok
}

// IsGlobal reports whether key is accepted on every element.
func IsGlobal(key string) bool {
	return globalAttributes[key]
}

// GlobalAttributes lists the global attribute keys in sorted order.
func GlobalAttributes() []string {
	out := make([]string, 0, len(globalAttributes))
	for k := range globalAttributes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Apply runs the handler against n. Values of the wrong shape for a merge
// are ignored.
func (h Handler) Apply(n *html.Node, value any) {
	switch h.Strategy {
	case DirectAssign:
		n.SetProp(h.Target, value)
	case MergeAssign:
		mergeDataset(n, value)
	case AttributeAssign:
		n.SetAttribute(h.Target, attributeString(h.Target, value))
	default:
		panic(fmt.Sprintf("dom: unknown strategy %v for %q", h.Strategy, h.Target))
	}
}

func mergeDataset(n *html.Node, value any) {
	switch m := value.(type) {
	case map[string]string:
		for _, k := range sortedKeys(m) {
			n.SetData(k, m[k])
		}
	case map[string]any:
		for _, k := range sortedKeys(m) {
			if m[k] != nil {
				n.SetData(k, fmt.Sprint(m[k]))
			}
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// attributeString renders a value for a literal attribute. A style map is
// serialized as declarations.
func attributeString(target string, value any) string {
	if target == "style" {
		switch m := value.(type) {
		case map[string]string:
			return css.SerializeInlineStyle(m)
		case map[string]any:
			decls := make(map[string]string, len(m))
			for k, v := range m {
				if v != nil {
					decls[k] = fmt.Sprint(v)
				}
			}
			return css.SerializeInlineStyle(decls)
		}
	}
	return fmt.Sprint(value)
}

// Attribute is one key/value pair passed to the element factory.
type Attribute struct {
	Name  string
	Value any
}

// Attributes is an ordered attribute mapping. Application follows slice
// order.
type Attributes []Attribute

// Attrs builds Attributes from alternating keys and values. A trailing key
// without a value is dropped; non-string keys panic.
func Attrs(kv ...any) Attributes {
	out := make(Attributes, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("dom: attribute key %v is not a string", kv[i]))
		}
		out = append(out, Attribute{Name: key, Value: kv[i+1]})
	}
	return out
}

// FromMap converts an unordered mapping, sorting keys for a stable order.
func FromMap(m map[string]any) Attributes {
	out := make(Attributes, 0, len(m))
	for _, k := range sortedKeys(m) {
		out = append(out, Attribute{Name: k, Value: m[k]})
	}
	return out
}

// Get returns the last value set for name.
func (a Attributes) Get(name string) (any, bool) {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i].Name == name {
			return a[i].Value, true
		}
	}
	return nil, false
}

// Whitelist is the set of attribute keys accepted by a tag in addition to
// the global ones. A nil Whitelist accepts every dispatchable key; an empty
// non-nil one accepts only the globals.
type Whitelist map[string]struct{}

// NewWhitelist parses a comma separated list of keys. The result is never
// nil.
func NewWhitelist(names string) Whitelist {
	w := Whitelist{}
	for _, name := range strings.Split(names, ",") {
		if name = strings.TrimSpace(name); name != "" {
			w[name] = struct{}{}
		}
	}
	return w
}

// WhitelistOf builds a whitelist from individual keys.
func WhitelistOf(names ...string) Whitelist {
	w := make(Whitelist, len(names))
	for _, name := range names {
		w[name] = struct{}{}
	}
	return w
}

// Accepts reports whether key passes the whitelist, globals included.
func (w Whitelist) Accepts(key string) bool {
	if w == nil || globalAttributes[key] {
		return true
	}
	_, ok := w[key]
	return ok
}

// Names returns the whitelist keys in sorted order.
func (w Whitelist) Names() []string {
	out := make([]string, 0, len(w))
	for k := range w {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
