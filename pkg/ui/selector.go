package ui

import (
	"github.com/pkg/errors"

	"zenkai/pkg/dom"
	"zenkai/pkg/html"
	"zenkai/pkg/nav"
)

// Binding mirrors selection changes onto the document.
type Binding interface {
	Select(item *html.Node)
	Unselect(item *html.Node)
}

// PlainBinding marks the selected item with the selected class and
// aria-selected.
type PlainBinding struct{}

func (PlainBinding) Select(item *html.Node) {
	dom.AddClass(item, SelectedClass)
	item.SetAttribute("aria-selected", "true")
}

func (PlainBinding) Unselect(item *html.Node) {
	dom.RemoveClass(item, SelectedClass)
	item.SetAttribute("aria-selected", "false")
}

// FormBinding is a PlainBinding that also writes the selected item's value
// into Input. The value is the item's data-value, or its text when it has
// none.
type FormBinding struct {
	Input *html.Node
}

func (b FormBinding) Select(item *html.Node) {
	PlainBinding{}.Select(item)
	if b.Input != nil {
		b.Input.SetProp("value", ItemValue(item))
	}
}

func (b FormBinding) Unselect(item *html.Node) {
	PlainBinding{}.Unselect(item)
	if b.Input == nil {
		return
	}
	if v, _ := b.Input.Prop("value").(string); v == ItemValue(item) {
		b.Input.SetProp("value", "")
	}
}

// ItemValue returns data-value of item, falling back to its text.
func ItemValue(item *html.Node) string {
	if v, ok := item.Data("value"); ok {
		return v
	}
	return item.TextContent()
}

// Selector keeps at most one selected item among the items of a container.
// Items are the element children with the selector-item class, or all
// element children when none has it.
type Selector struct {
	Container *html.Node
	Binding   Binding

	// OnSelect and OnUnselect are called after the binding ran.
	OnSelect   func(item *html.Node, index int)
	OnUnselect func(item *html.Node, index int)

	selected *html.Node
}

// NewSelector creates a selector over container. An item already carrying
// the selected class becomes the initial selection and is passed to the
// binding. A nil binding is a PlainBinding.
func NewSelector(container *html.Node, binding Binding) (*Selector, error) {
	if err := checkElement(container, "selector container"); err != nil {
		return nil, err
	}
	if binding == nil {
		binding = PlainBinding{}
	}
	s := &Selector{Container: container, Binding: binding}
	for _, item := range s.Items() {
		if dom.HasClass(item, SelectedClass) {
			s.selected = item
			binding.Select(item)
			break
		}
	}
	return s, nil
}

// Items returns the current items in document order.
func (s *Selector) Items() []*html.Node {
	children := s.Container.ElementChildren()
	var marked []*html.Node
	for _, c := range children {
		if dom.HasClass(c, ItemClass) {
			marked = append(marked, c)
		}
	}
	if len(marked) > 0 {
		return marked
	}
	return children
}

func (s *Selector) indexOf(n *html.Node) int {
	for i, item := range s.Items() {
		if item == n {
			return i
		}
	}
	return -1
}

// Selected returns the selected item and its index, or nil and -1. An item
// removed from the container is no longer selected.
func (s *Selector) Selected() (*html.Node, int) {
	if s.selected == nil {
		return nil, -1
	}
	idx := s.indexOf(s.selected)
	if idx < 0 {
		s.selected = nil
		return nil, -1
	}
	return s.selected, idx
}

// Select selects the item at index i.
func (s *Selector) Select(i int) error {
	items := s.Items()
	if i < 0 || i >= len(items) {
		return errors.Wrapf(ErrIndex, "select %d of %d items", i, len(items))
	}
	s.set(items[i], i)
	return nil
}

// SelectNode selects n, which must be an item.
func (s *Selector) SelectNode(n *html.Node) error {
	idx := s.indexOf(n)
	if idx < 0 {
		return errors.WithStack(ErrNotItem)
	}
	s.set(n, idx)
	return nil
}

// Clear unselects the selected item, if any.
func (s *Selector) Clear() {
	prev, prevIdx := s.Selected()
	if prev == nil {
		return
	}
	s.selected = nil
	s.Binding.Unselect(prev)
	if s.OnUnselect != nil {
		s.OnUnselect(prev, prevIdx)
	}
}

func (s *Selector) set(item *html.Node, idx int) {
	if prev, _ := s.Selected(); prev == item {
		return
	}
	s.Clear()
	s.selected = item
	s.Binding.Select(item)
	if s.OnSelect != nil {
		s.OnSelect(item, idx)
	}
}

// Move selects the closest item in dir from the current selection. With no
// selection it selects the item at the edge opposite to dir, so moving down
// starts at the top. Children that are not items are skipped. It returns
// the newly selected item, or nil when the selection is already at the
// edge.
func (s *Selector) Move(g nav.Geometry, dir nav.Direction) (*html.Node, error) {
	current, _ := s.Selected()
	items := s.Items()
	isItem := func(n *html.Node) bool {
		for _, item := range items {
			if item == n {
				return true
			}
		}
		return false
	}

	var next *html.Node
	var err error
	if current == nil {
		next, err = nav.ExtremeElement(g, s.Container, opposite(dir), isItem)
	} else {
		next, err = nav.ClosestMatching(g, current, s.Container, dir, true, isItem)
	}
	if err != nil || next == nil {
		return nil, err
	}
	return next, s.SelectNode(next)
}

func opposite(dir nav.Direction) nav.Direction {
	switch dir {
	case nav.Up:
		return nav.Down
	case nav.Down:
		return nav.Up
	case nav.Left:
		return nav.Right
	case nav.Right:
		return nav.Left
	}
	return dir
}
