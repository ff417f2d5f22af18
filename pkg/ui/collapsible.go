package ui

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"zenkai/pkg/dom"
	"zenkai/pkg/html"
)

// Collapsible is a header that shows or hides a content element.
type Collapsible struct {
	Container *html.Node
	Header    *html.Node
	Content   *html.Node

	// OnToggle is called after the state changed.
	OnToggle func(c *Collapsible, open bool)

	open bool
}

// NewCollapsible builds a collapsible from container. The header is the
// .collapsible-header descendant or the first element child; the content
// is the .collapsible-content descendant or the second element child.
// It starts closed when the container has the collapsed class or the
// content is hidden.
func NewCollapsible(container *html.Node) (*Collapsible, error) {
	if err := checkElement(container, "collapsible container"); err != nil {
		return nil, err
	}
	children := container.ElementChildren()
	header := dom.QuerySelector(container, "."+HeaderClass)
	if header == nil && len(children) > 0 {
		header = children[0]
	}
	content := dom.QuerySelector(container, "."+ContentClass)
	if content == nil && len(children) > 1 {
		content = children[1]
	}
	if header == nil || content == nil || header == content {
		return nil, errors.Wrap(ErrMissingPart, "collapsible needs a header and a content element")
	}

	id, ok := content.GetAttribute("id")
	if !ok || id == "" {
		id = "collapsible-" + uuid.NewString()
		content.SetAttribute("id", id)
	}
	header.SetAttribute("aria-controls", id)

	c := &Collapsible{Container: container, Header: header, Content: content}
	c.open = !dom.HasClass(container, CollapsedClass) && !content.HasAttribute("hidden")
	c.sync()
	return c, nil
}

// IsOpen reports whether the content is shown.
func (c *Collapsible) IsOpen() bool {
	return c.open
}

// Open shows the content.
func (c *Collapsible) Open() {
	c.set(true)
}

// Close hides the content.
func (c *Collapsible) Close() {
	c.set(false)
}

// Toggle flips the state and returns it.
func (c *Collapsible) Toggle() bool {
	c.set(!c.open)
	return c.open
}

func (c *Collapsible) set(open bool) {
	if c.open == open {
		return
	}
	c.open = open
	c.sync()
	if c.OnToggle != nil {
		c.OnToggle(c, open)
	}
}

func (c *Collapsible) sync() {
	dom.ToggleClass(c.Container, CollapsedClass, !c.open)
	c.Content.SetProp("hidden", !c.open)
	c.Header.SetAttribute("aria-expanded", strconv.FormatBool(c.open))
}

// Accordion groups collapsibles. Opening one closes the others unless
// Multiple is set.
type Accordion struct {
	Container *html.Node
	Items     []*Collapsible
	Multiple  bool
}

// NewAccordion builds a collapsible from every element child of container
// with the collapsible class, or from every element child when none has
// it. Without multiple, only the first initially open section stays open.
func NewAccordion(container *html.Node, multiple bool) (*Accordion, error) {
	if err := checkElement(container, "accordion container"); err != nil {
		return nil, err
	}
	sections := container.ElementChildren()
	var marked []*html.Node
	for _, s := range sections {
		if dom.HasClass(s, "collapsible") {
			marked = append(marked, s)
		}
	}
	if len(marked) > 0 {
		sections = marked
	}

	a := &Accordion{Container: container, Multiple: multiple}
	for i, s := range sections {
		c, err := NewCollapsible(s)
		if err != nil {
			return nil, errors.Wrapf(err, "accordion section %d", i)
		}
		a.Items = append(a.Items, c)
	}
	if !multiple {
		seen := false
		for _, c := range a.Items {
			if c.IsOpen() {
				if seen {
					c.Close()
				}
				seen = true
			}
		}
	}
	return a, nil
}

func (a *Accordion) item(i int) (*Collapsible, error) {
	if i < 0 || i >= len(a.Items) {
		return nil, errors.Wrapf(ErrIndex, "section %d of %d", i, len(a.Items))
	}
	return a.Items[i], nil
}

// Open opens section i, closing the others unless Multiple is set.
func (a *Accordion) Open(i int) error {
	c, err := a.item(i)
	if err != nil {
		return err
	}
	if !a.Multiple {
		for j, other := range a.Items {
			if j != i {
				other.Close()
			}
		}
	}
	c.Open()
	return nil
}

// Close closes section i.
func (a *Accordion) Close(i int) error {
	c, err := a.item(i)
	if err != nil {
		return err
	}
	c.Close()
	return nil
}

// Toggle opens section i when closed and closes it when open.
func (a *Accordion) Toggle(i int) error {
	c, err := a.item(i)
	if err != nil {
		return err
	}
	if c.IsOpen() {
		c.Close()
		return nil
	}
	return a.Open(i)
}

// OpenSections returns the indexes of the open sections.
func (a *Accordion) OpenSections() []int {
	var out []int
	for i, c := range a.Items {
		if c.IsOpen() {
			out = append(out, i)
		}
	}
	return out
}
