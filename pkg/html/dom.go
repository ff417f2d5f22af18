package html

import (
	"sort"
	"strings"
)

type Node struct {
	Type       NodeType
	TagName    string
	Attributes map[string]string
	Text       string
	Children   []*Node
	Parent     *Node

	// props holds typed IDL properties that were assigned directly.
	props map[string]any
}

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
	FragmentNode
)

type Document struct {
	Root        *Node
	Stylesheets []string // CSS from <style> tags
	Scripts     []string // JavaScript from <script> tags
}

func NewDocument() *Document {
	return &Document{
		Root: &Node{
			Type:     ElementNode,
			TagName:  "document",
			Children: make([]*Node, 0),
		},
		Stylesheets: make([]string, 0),
		Scripts:     make([]string, 0),
	}
}

// CreateElement returns a detached element owned by nobody, or nil when the
// tag name is not a valid element name.
func (d *Document) CreateElement(tagName string) *Node {
	if !validTagName(tagName) {
		return nil
	}
	return NewElement(strings.ToLower(tagName))
}

// CreateTextNode returns a detached text node.
func (d *Document) CreateTextNode(data string) *Node {
	return &Node{Type: TextNode, Text: data}
}

// CreateDocumentFragment returns an empty fragment. Appending a fragment to
// a node moves the fragment's children instead of the fragment itself.
func (d *Document) CreateDocumentFragment() *Node {
	return &Node{Type: FragmentNode, TagName: "#document-fragment", Children: make([]*Node, 0)}
}

// Body returns the <body> element, or the root when the document has none.
func (d *Document) Body() *Node {
	if body := d.Root.FirstByTag("body"); body != nil {
		return body
	}
	return d.Root
}

// GetElementByID returns the first element whose id attribute equals id.
func (d *Document) GetElementByID(id string) *Node {
	var found *Node
	d.Root.Walk(func(n *Node) bool {
		if v, ok := n.GetAttribute("id"); ok && v == id {
			found = n
			return true
		}
		return false
	})
	return found
}

// NewElement builds a detached element with the given tag name.
func NewElement(tagName string) *Node {
	return &Node{
		Type:       ElementNode,
		TagName:    tagName,
		Attributes: make(map[string]string),
		Children:   make([]*Node, 0),
	}
}

func validTagName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '_' || r == '.'):
		default:
			return false
		}
	}
	return true
}

// IsElement reports whether n is a non-nil element node.
func (n *Node) IsElement() bool {
	return n != nil && n.Type == ElementNode
}

func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	val, ok := n.Attributes[name]
	return val, ok
}

func (n *Node) HasAttribute(name string) bool {
	_, ok := n.GetAttribute(name)
	return ok
}

func (n *Node) SetAttribute(name, value string) {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[strings.ToLower(name)] = value
}

func (n *Node) RemoveAttribute(name string) {
	if n.Attributes != nil {
		delete(n.Attributes, strings.ToLower(name))
	}
}

// AddChild adds a child node and sets up the parent relationship.
// A fragment child donates its children and stays empty.
func (n *Node) AddChild(child *Node) {
	if child.Type == FragmentNode {
		moved := child.Children
		child.Children = make([]*Node, 0)
		for _, c := range moved {
			c.Parent = nil
			n.AddChild(c)
		}
		return
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// AppendText creates a text node and adds it as a child
func (n *Node) AppendText(text string) {
	if text == "" {
		return
	}
	textNode := &Node{
		Type:   TextNode,
		Text:   text,
		Parent: n,
	}
	n.Children = append(n.Children, textNode)
}

// RemoveChild removes the given child from this node's children list,
// clears its parent pointer, and returns the removed child.
// Returns nil if child is not found.
func (n *Node) RemoveChild(child *Node) *Node {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return child
		}
	}
	return nil
}

// InsertBefore inserts newChild before refChild in this node's children.
// If refChild is nil or not a child, appends newChild at the end.
func (n *Node) InsertBefore(newChild, refChild *Node) *Node {
	if newChild == refChild {
		return newChild
	}
	if newChild.Type == FragmentNode {
		moved := newChild.Children
		newChild.Children = make([]*Node, 0)
		for _, c := range moved {
			c.Parent = nil
			n.InsertBefore(c, refChild)
		}
		return newChild
	}
	if newChild.Parent != nil {
		newChild.Parent.RemoveChild(newChild)
	}

	if refChild == nil {
		n.AddChild(newChild)
		return newChild
	}

	for i, c := range n.Children {
		if c == refChild {
			n.Children = append(n.Children, nil)
			copy(n.Children[i+1:], n.Children[i:])
			n.Children[i] = newChild
			newChild.Parent = n
			return newChild
		}
	}

	n.AddChild(newChild)
	return newChild
}

// CloneNode returns a copy of the node. If deep is true, all descendants
// are cloned recursively. The clone has no parent.
func (n *Node) CloneNode(deep bool) *Node {
	clone := &Node{
		Type:    n.Type,
		TagName: n.TagName,
		Text:    n.Text,
	}
	if n.Attributes != nil {
		clone.Attributes = make(map[string]string, len(n.Attributes))
		for k, v := range n.Attributes {
			clone.Attributes[k] = v
		}
	}
	if n.props != nil {
		clone.props = make(map[string]any, len(n.props))
		for k, v := range n.props {
			clone.props[k] = v
		}
	}
	clone.Children = make([]*Node, 0, len(n.Children))
	if deep {
		for _, child := range n.Children {
			childClone := child.CloneNode(true)
			childClone.Parent = clone
			clone.Children = append(clone.Children, childClone)
		}
	}
	return clone
}

// Contains returns true if other is a descendant of n (or n itself).
func (n *Node) Contains(other *Node) bool {
	for c := other; c != nil; c = c.Parent {
		if c == n {
			return true
		}
	}
	return false
}

// IndexInParent returns the index of this node among its parent's children,
// or -1 if it has no parent.
func (n *Node) IndexInParent() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// ElementChildren returns the element children in document order.
func (n *Node) ElementChildren() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Type == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Walk visits every element in the subtree rooted at n, n included, in
// document order. fn returns true to stop the walk.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n.Type == ElementNode && fn(n) {
		return true
	}
	for _, child := range n.Children {
		if child.Walk(fn) {
			return true
		}
	}
	return false
}

// FirstByTag returns the first descendant element with the given tag.
func (n *Node) FirstByTag(tag string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if c != n && c.TagName == tag {
			found = c
			return true
		}
		return false
	})
	return found
}

// TextContent returns the concatenated text of the node and its descendants.
func (n *Node) TextContent() string {
	if n.Type == TextNode {
		return n.Text
	}
	var sb strings.Builder
	for _, child := range n.Children {
		sb.WriteString(child.TextContent())
	}
	return sb.String()
}

// SetTextContent replaces all children with a single text node.
func (n *Node) SetTextContent(text string) {
	if n.Type == TextNode {
		n.Text = text
		return
	}
	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = make([]*Node, 0)
	n.AppendText(text)
}

// Serialize returns the innerHTML of this node: the serialized HTML of
// all child nodes, but not the node's own tags.
func (n *Node) Serialize() string {
	var sb strings.Builder
	for _, child := range n.Children {
		serializeNode(&sb, child)
	}
	return sb.String()
}

// SerializeOuter returns the outerHTML of this node: the node's own tags
// plus all descendants.
func (n *Node) SerializeOuter() string {
	var sb strings.Builder
	serializeNode(&sb, n)
	return sb.String()
}

func serializeNode(sb *strings.Builder, n *Node) {
	switch n.Type {
	case TextNode:
		sb.WriteString(escapeHTML(n.Text))
		return
	case FragmentNode:
		for _, child := range n.Children {
			serializeNode(sb, child)
		}
		return
	}

	sb.WriteByte('<')
	sb.WriteString(n.TagName)

	// Sort attributes for deterministic output
	if len(n.Attributes) > 0 {
		keys := make([]string, 0, len(n.Attributes))
		for k := range n.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteByte(' ')
			sb.WriteString(k)
			if v := n.Attributes[k]; v != "" {
				sb.WriteString(`="`)
				sb.WriteString(escapeAttr(v))
				sb.WriteByte('"')
			}
		}
	}

	if IsVoidElement(n.TagName) {
		sb.WriteString(">")
		return
	}

	sb.WriteByte('>')
	for _, child := range n.Children {
		serializeNode(sb, child)
	}
	sb.WriteString("</")
	sb.WriteString(n.TagName)
	sb.WriteByte('>')
}

func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func escapeAttr(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// IsVoidElement reports whether tag can never have children.
func IsVoidElement(tag string) bool {
	switch tag {
	case "br", "hr", "img", "input", "meta", "link", "area", "base",
		"col", "embed", "param", "source", "track", "wbr":
		return true
	}
	return false
}
