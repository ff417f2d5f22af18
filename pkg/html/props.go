package html

import (
	"strconv"
	"strings"
)

type propKind int

const (
	stringProp propKind = iota
	boolProp
	intProp
)

type reflection struct {
	attr string
	kind propKind
}

// reflected maps IDL property names onto their content attributes. Properties
// missing from this table live only in the node's property bag.
var reflected = map[string]reflection{
	"accept":          {"accept", stringProp},
	"accessKey":       {"accesskey", stringProp},
	"action":          {"action", stringProp},
	"align":           {"align", stringProp},
	"alt":             {"alt", stringProp},
	"async":           {"async", boolProp},
	"autocomplete":    {"autocomplete", stringProp},
	"autofocus":       {"autofocus", boolProp},
	"autoplay":        {"autoplay", boolProp},
	"checked":         {"checked", boolProp},
	"cite":            {"cite", stringProp},
	"className":       {"class", stringProp},
	"cols":            {"cols", intProp},
	"colSpan":         {"colspan", intProp},
	"content":         {"content", stringProp},
	"contentEditable": {"contenteditable", stringProp},
	"controls":        {"controls", boolProp},
	"coords":          {"coords", stringProp},
	"crossOrigin":     {"crossorigin", stringProp},
	"dateTime":        {"datetime", stringProp},
	"default":         {"default", boolProp},
	"defer":           {"defer", boolProp},
	"dir":             {"dir", stringProp},
	"dirName":         {"dirname", stringProp},
	"disabled":        {"disabled", boolProp},
	"download":        {"download", stringProp},
	"draggable":       {"draggable", stringProp},
	"enctype":         {"enctype", stringProp},
	"formAction":      {"formaction", stringProp},
	"formNoValidate":  {"formnovalidate", boolProp},
	"headers":         {"headers", stringProp},
	"height":          {"height", intProp},
	"hidden":          {"hidden", boolProp},
	"high":            {"high", stringProp},
	"href":            {"href", stringProp},
	"hreflang":        {"hreflang", stringProp},
	"htmlFor":         {"for", stringProp},
	"httpEquiv":       {"http-equiv", stringProp},
	"id":              {"id", stringProp},
	"isMap":           {"ismap", boolProp},
	"kind":            {"kind", stringProp},
	"label":           {"label", stringProp},
	"lang":            {"lang", stringProp},
	"loop":            {"loop", boolProp},
	"low":             {"low", stringProp},
	"max":             {"max", stringProp},
	"maxLength":       {"maxlength", intProp},
	"media":           {"media", stringProp},
	"method":          {"method", stringProp},
	"min":             {"min", stringProp},
	"minLength":       {"minlength", intProp},
	"multiple":        {"multiple", boolProp},
	"muted":           {"muted", boolProp},
	"name":            {"name", stringProp},
	"noValidate":      {"novalidate", boolProp},
	"open":            {"open", boolProp},
	"optimum":         {"optimum", stringProp},
	"pattern":         {"pattern", stringProp},
	"placeholder":     {"placeholder", stringProp},
	"poster":          {"poster", stringProp},
	"preload":         {"preload", stringProp},
	"readOnly":        {"readonly", boolProp},
	"referrerPolicy":  {"referrerpolicy", stringProp},
	"rel":             {"rel", stringProp},
	"required":        {"required", boolProp},
	"reversed":        {"reversed", boolProp},
	"rows":            {"rows", intProp},
	"rowSpan":         {"rowspan", intProp},
	"sandbox":         {"sandbox", stringProp},
	"scope":           {"scope", stringProp},
	"selected":        {"selected", boolProp},
	"shape":           {"shape", stringProp},
	"size":            {"size", intProp},
	"sizes":           {"sizes", stringProp},
	"span":            {"span", intProp},
	"src":             {"src", stringProp},
	"srcdoc":          {"srcdoc", stringProp},
	"srclang":         {"srclang", stringProp},
	"srcset":          {"srcset", stringProp},
	"start":           {"start", intProp},
	"step":            {"step", stringProp},
	"tabIndex":        {"tabindex", intProp},
	"target":          {"target", stringProp},
	"title":           {"title", stringProp},
	"translate":       {"translate", stringProp},
	"type":            {"type", stringProp},
	"useMap":          {"usemap", stringProp},
	"value":           {"value", stringProp},
	"width":           {"width", intProp},
	"wrap":            {"wrap", stringProp},
}

// Reflects reports whether the property name has a content attribute.
func Reflects(name string) bool {
	_, ok := reflected[name]
	return ok
}

// SetProp assigns a typed property. Reflected properties are stored only in
// their content attribute; textContent and innerHTML replace children.
func (n *Node) SetProp(name string, value any) {
	switch name {
	case "textContent", "innerText":
		n.SetTextContent(stringify(value))
		return
	case "innerHTML":
		n.SetInnerHTML(stringify(value))
		return
	}

	r, ok := reflected[name]
	if !ok {
		if n.props == nil {
			n.props = make(map[string]any)
		}
		n.props[name] = value
		return
	}
	if r.kind == boolProp {
		if truthy(value) {
			n.SetAttribute(r.attr, "")
		} else {
			n.RemoveAttribute(r.attr)
		}
		return
	}
	n.SetAttribute(r.attr, stringify(value))
}

// Prop reads a property. Reflected properties are read from their content
// attribute, typed by kind; unknown unassigned properties are nil.
func (n *Node) Prop(name string) any {
	switch name {
	case "textContent", "innerText":
		return n.TextContent()
	case "innerHTML":
		return n.Serialize()
	case "tagName":
		return strings.ToUpper(n.TagName)
	}

	if r, ok := reflected[name]; ok {
		return n.reflectedValue(r)
	}
	return n.props[name]
}

func (n *Node) reflectedValue(r reflection) any {
	val, has := n.GetAttribute(r.attr)
	switch r.kind {
	case boolProp:
		return has
	case intProp:
		i, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0
		}
		return i
	}
	return val
}

// Dataset returns a copy of the data-* attributes keyed by camelCase name.
func (n *Node) Dataset() map[string]string {
	out := make(map[string]string)
	for k, v := range n.Attributes {
		if strings.HasPrefix(k, "data-") {
			out[dataKeyToProp(k[len("data-"):])] = v
		}
	}
	return out
}

// SetData writes a single dataset entry (camelCase key -> data-kebab-case).
func (n *Node) SetData(key, value string) {
	n.SetAttribute("data-"+dataPropToKey(key), value)
}

// Data reads a single dataset entry.
func (n *Node) Data(key string) (string, bool) {
	return n.GetAttribute("data-" + dataPropToKey(key))
}

func dataPropToKey(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			sb.WriteByte('-')
			sb.WriteRune(r + ('a' - 'A'))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func dataKeyToProp(s string) string {
	var sb strings.Builder
	upper := false
	for _, r := range s {
		if r == '-' {
			upper = true
			continue
		}
		if upper && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		upper = false
		sb.WriteRune(r)
	}
	return sb.String()
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	}
	return true
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case interface{ String() string }:
		return t.String()
	}
	return ""
}
