// Package ui holds the zenkai widgets as plain structs over document
// nodes: a selector with plain and form-bound variants, a switch, and
// collapsibles grouped into accordions. Activate builds them from
// [data-boost] markers.
package ui

import (
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"zenkai/pkg/dom"
	"zenkai/pkg/html"
	"zenkai/pkg/std"
)

// Class names written and read by the widgets.
const (
	ItemClass      = "selector-item"
	SelectedClass  = "selected"
	CheckedClass   = "checked"
	CollapsedClass = "collapsed"
	HeaderClass    = "collapsible-header"
	ContentClass   = "collapsible-content"
)

var (
	// ErrNotElement is returned when a widget root is nil or not an element.
	ErrNotElement = errors.New("ui: not an element")
	// ErrMissingPart is returned when a widget lacks a required child.
	ErrMissingPart = errors.New("ui: missing widget part")
	// ErrIndex is returned for an out of range item index.
	ErrIndex = errors.New("ui: index out of range")
	// ErrNotItem is returned when a node is not an item of the widget.
	ErrNotItem = errors.New("ui: node is not an item")
)

func checkElement(n *html.Node, what string) error {
	if n == nil || !n.IsElement() {
		return errors.Wrapf(ErrNotElement, "%s", what)
	}
	return nil
}

// Options configures Activate.
type Options struct {
	// Logger receives warnings for markers that could not be activated.
	// Nil uses log.Default().
	Logger *log.Logger
}

// Widgets are the widgets built by Activate, in document order.
type Widgets struct {
	Selectors    []*Selector
	Switches     []*Switch
	Collapsibles []*Collapsible
	Accordions   []*Accordion
}

// Len returns the number of widgets.
func (w *Widgets) Len() int {
	return len(w.Selectors) + len(w.Switches) + len(w.Collapsibles) + len(w.Accordions)
}

// SelectorFor returns the selector whose container is n.
func (w *Widgets) SelectorFor(n *html.Node) *Selector {
	for _, s := range w.Selectors {
		if s.Container == n {
			return s
		}
	}
	return nil
}

// Activate scans doc for elements with a data-boost attribute and builds
// the widget it names: selector, switch, collapsible or accordion.
//
// A selector with a data-input attribute is form-bound to the input that
// selector finds. An accordion with a truthy data-multiple allows several
// open sections. Markers that cannot be built are logged and skipped.
func Activate(doc *html.Document, opts Options) *Widgets {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	w := &Widgets{}
	if doc == nil {
		return w
	}

	for _, n := range dom.QuerySelectorAll(doc.Root, "[data-boost]") {
		kind, _ := n.Data("boost")
		var err error
		switch kind {
		case "selector":
			var s *Selector
			if s, err = NewSelector(n, bindingFor(doc, n)); err == nil {
				w.Selectors = append(w.Selectors, s)
			}
		case "switch":
			var s *Switch
			if s, err = NewSwitch(n); err == nil {
				w.Switches = append(w.Switches, s)
			}
		case "collapsible":
			var c *Collapsible
			if c, err = NewCollapsible(n); err == nil {
				w.Collapsibles = append(w.Collapsibles, c)
			}
		case "accordion":
			multiple, _ := n.Data("multiple")
			var a *Accordion
			if a, err = NewAccordion(n, std.ToBoolean(multiple)); err == nil {
				w.Accordions = append(w.Accordions, a)
			}
		default:
			err = errors.Errorf("unknown widget %q", kind)
		}
		if err != nil {
			logger.Warn("widget not activated", "boost", kind, "id", n.Attributes["id"], "err", err)
		}
	}
	logger.Debug("widgets activated", "count", w.Len())
	return w
}

func bindingFor(doc *html.Document, container *html.Node) Binding {
	sel, ok := container.Data("input")
	if !ok || std.IsNullOrWhitespace(sel) {
		return PlainBinding{}
	}
	if input := dom.GetElement(doc, sel); input != nil {
		return FormBinding{Input: input}
	}
	return PlainBinding{}
}
