package dom

import (
	"github.com/pkg/errors"

	"zenkai/pkg/html"
)

// ErrNoParent is returned when a sibling insertion targets a detached node.
var ErrNoParent = errors.New("dom: reference node has no parent")

// AppendChildren appends children to parent in order and returns parent.
// Nil children are skipped.
func AppendChildren(parent *html.Node, children ...*html.Node) *html.Node {
	if parent == nil {
		return nil
	}
	for _, c := range children {
		if c != nil {
			parent.AddChild(c)
		}
	}
	return parent
}

// InsertBefore inserts target immediately before ref.
func InsertBefore(target, ref *html.Node) error {
	if target == nil || ref == nil {
		return errors.New("dom: InsertBefore needs a target and a reference node")
	}
	if ref.Parent == nil {
		return errors.WithStack(ErrNoParent)
	}
	ref.Parent.InsertBefore(target, ref)
	return nil
}

// InsertAfter inserts target immediately after ref.
func InsertAfter(target, ref *html.Node) error {
	if target == nil || ref == nil {
		return errors.New("dom: InsertAfter needs a target and a reference node")
	}
	parent := ref.Parent
	if parent == nil {
		return errors.WithStack(ErrNoParent)
	}
	idx := ref.IndexInParent()
	if idx+1 < len(parent.Children) {
		parent.InsertBefore(target, parent.Children[idx+1])
	} else {
		parent.AddChild(target)
	}
	return nil
}

// PrependChild inserts child as the first child of parent.
func PrependChild(parent, child *html.Node) {
	if parent == nil || child == nil {
		return
	}
	var first *html.Node
	if len(parent.Children) > 0 {
		first = parent.Children[0]
	}
	parent.InsertBefore(child, first)
}

// RemoveChildren detaches the children of parent. With a predicate only
// the children it accepts are removed. It returns the number removed.
func RemoveChildren(parent *html.Node, pred ...func(*html.Node) bool) int {
	if parent == nil {
		return 0
	}
	keep := func(*html.Node) bool { return false }
	if len(pred) > 0 && pred[0] != nil {
		keep = func(n *html.Node) bool { return !pred[0](n) }
	}
	kept := make([]*html.Node, 0, len(parent.Children))
	removed := 0
	for _, c := range parent.Children {
		if keep(c) {
			kept = append(kept, c)
			continue
		}
		c.Parent = nil
		removed++
	}
	parent.Children = kept
	return removed
}

// CloneTemplate returns a fragment holding copies of a template's children.
// Shallow clones copy the children without their descendants.
func CloneTemplate(f *Factory, template *html.Node, deep bool) *html.Node {
	if template == nil {
		return nil
	}
	frag := f.CreateDocumentFragment()
	for _, c := range template.Children {
		frag.AddChild(c.CloneNode(deep))
	}
	return frag
}
