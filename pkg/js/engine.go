// Package js runs scripts against a document with goja. Scripts see a
// minimal `document`, a `console` routed to the logger, and the `zenkai`
// global carrying the element factory, class helpers, lookups and the
// directional neighbor finder.
package js

import (
	"github.com/charmbracelet/log"
	"github.com/dop251/goja"
	"github.com/pkg/errors"

	"zenkai/pkg/dom"
	"zenkai/pkg/html"
	"zenkai/pkg/layout"
	"zenkai/pkg/nav"
)

const (
	defaultViewportWidth  = 1024
	defaultViewportHeight = 768
)

// Engine executes JavaScript against one document's DOM.
type Engine struct {
	vm       *goja.Runtime
	doc      *html.Document
	dom      *domContext
	factory  *dom.Factory
	logger   *log.Logger
	geometry func() nav.Geometry

	viewportWidth, viewportHeight float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes console output to logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithGeometry sets the geometry used by the navigation functions. fn is
// called on every navigation call so it can reflect DOM changes.
func WithGeometry(fn func() nav.Geometry) Option {
	return func(e *Engine) {
		e.geometry = fn
	}
}

// WithViewport sets the viewport of the layout pass used when no geometry
// was supplied.
func WithViewport(width, height float64) Option {
	return func(e *Engine) {
		e.viewportWidth, e.viewportHeight = width, height
	}
}

// New creates an engine with a fresh goja runtime bound to doc.
func New(doc *html.Document, opts ...Option) *Engine {
	vm := goja.New()
	e := &Engine{
		vm:             vm,
		doc:            doc,
		factory:        dom.New(doc),
		logger:         log.Default(),
		viewportWidth:  defaultViewportWidth,
		viewportHeight: defaultViewportHeight,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.geometry == nil {
		e.geometry = e.layoutGeometry
	}

	c := &consoleAPI{logger: e.logger}
	c.register(vm)

	e.dom = newDOMContext(vm, doc)
	registerDocument(e.dom)
	registerBundle(e)

	return e
}

// layoutGeometry lays the document out again so navigation sees the
// current tree.
func (e *Engine) layoutGeometry() nav.Geometry {
	return layout.NewEngine(e.viewportWidth, e.viewportHeight).Layout(e.doc)
}

// Run evaluates one script and returns its completion value.
func (e *Engine) Run(script string) (goja.Value, error) {
	v, err := e.vm.RunString(script)
	if err != nil {
		return nil, errors.Wrap(err, "js")
	}
	return v, nil
}

// Execute runs all scripts from the document in order. It stops at the
// first failing script.
func (e *Engine) Execute() error {
	for i, script := range e.doc.Scripts {
		if _, err := e.vm.RunString(script); err != nil {
			return errors.Wrapf(err, "script %d", i)
		}
	}
	return nil
}

// Document returns the document the engine is bound to.
func (e *Engine) Document() *html.Document {
	return e.doc
}
