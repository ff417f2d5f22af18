package resource

import (
	"context"
	"image"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"zenkai/pkg/dom"
	"zenkai/pkg/html"
	"zenkai/pkg/images"
	"zenkai/pkg/js"
	"zenkai/pkg/layout"
	"zenkai/pkg/render"
	"zenkai/pkg/text"
)

// Renderer renders HTML content onto an image.
type Renderer interface {
	Render(ctx context.Context, htmlContent string, target *image.RGBA) error
}

// Page is a loaded document with its current layout.
type Page struct {
	Doc    *html.Document
	Layout *layout.Result

	engine *layout.Engine
}

// Relayout lays the document out again after it changed.
func (p *Page) Relayout() *layout.Result {
	p.Layout = p.engine.Layout(p.Doc)
	return p.Layout
}

// PageRenderer runs the page pipeline: parse with linked stylesheets,
// run scripts, lay out, and paint.
type PageRenderer struct {
	fetcher  Fetcher
	measurer *text.Measurer
	logger   *log.Logger
	scripts  bool
	focus    string
	extra    []string
}

var _ Renderer = (*PageRenderer)(nil)

// Option configures a PageRenderer.
type Option func(*PageRenderer)

// WithLogger sets the logger for script console output and pipeline
// warnings.
func WithLogger(logger *log.Logger) Option {
	return func(r *PageRenderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMeasurer sets the text measurer shared by layout and painting.
func WithMeasurer(m *text.Measurer) Option {
	return func(r *PageRenderer) {
		r.measurer = m
	}
}

// WithScripts enables or disables script execution. Scripts run by default.
func WithScripts(enabled bool) Option {
	return func(r *PageRenderer) {
		r.scripts = enabled
	}
}

// WithExtraScripts appends scripts that run after the page's own.
func WithExtraScripts(scripts ...string) Option {
	return func(r *PageRenderer) {
		r.extra = append(r.extra, scripts...)
	}
}

// WithFocus outlines the first element matching selector after painting.
func WithFocus(selector string) Option {
	return func(r *PageRenderer) {
		r.focus = selector
	}
}

// NewPageRenderer creates a PageRenderer. fetcher loads linked stylesheets
// and images; it may be nil.
func NewPageRenderer(fetcher Fetcher, opts ...Option) *PageRenderer {
	r := &PageRenderer{
		fetcher:  fetcher,
		measurer: text.Default(),
		logger:   log.Default(),
		scripts:  true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load parses markup, runs its scripts and lays it out in a viewport of
// width x height. A failing script is logged and the page is kept as the
// script left it.
func (r *PageRenderer) Load(ctx context.Context, markup string, width, height float64) (*Page, error) {
	doc, err := html.ParseWithFetcher(markup, r.cssFetcher(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "parsing page")
	}

	doc.Scripts = append(doc.Scripts, r.extra...)
	if r.scripts && len(doc.Scripts) > 0 {
		engine := js.New(doc, js.WithLogger(r.logger), js.WithViewport(width, height))
		if err := engine.Execute(); err != nil {
			r.logger.Warn("script failed", "err", err)
		}
	}

	page := &Page{Doc: doc, engine: layout.NewEngine(width, height)}
	page.engine.SetMeasurer(r.measurer)
	if f := r.imageFetcher(ctx); f != nil {
		page.engine.SetImageFetcher(f)
	}
	page.Relayout()
	return page, nil
}

// Paint draws a loaded page onto target, outlining focus when it is
// non-nil.
func (r *PageRenderer) Paint(ctx context.Context, page *Page, target *image.RGBA, focus *html.Node) {
	painter := render.NewRendererForImage(target)
	painter.SetMeasurer(r.measurer)
	if f := r.imageFetcher(ctx); f != nil {
		painter.SetImageFetcher(f)
	}
	painter.Render(page.Layout)
	if focus != nil {
		painter.DrawFocus(page.Layout, focus)
	}
}

// Render loads htmlContent in a viewport the size of target and paints it.
func (r *PageRenderer) Render(ctx context.Context, htmlContent string, target *image.RGBA) error {
	bounds := target.Bounds()
	page, err := r.Load(ctx, htmlContent, float64(bounds.Dx()), float64(bounds.Dy()))
	if err != nil {
		return err
	}

	var focus *html.Node
	if r.focus != "" {
		if focus = dom.GetElement(page.Doc, r.focus); focus == nil {
			r.logger.Warn("focus selector matched nothing", "selector", r.focus)
		}
	}
	r.Paint(ctx, page, target, focus)
	return nil
}

// LoadFile fetches a page through the fetcher and loads it.
func (r *PageRenderer) LoadFile(ctx context.Context, uri string, width, height float64) (*Page, error) {
	if r.fetcher == nil {
		return nil, errors.New("resource: no fetcher configured")
	}
	body, _, err := r.fetcher.Fetch(ctx, uri)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", uri)
	}
	return r.Load(ctx, string(body), width, height)
}

func (r *PageRenderer) cssFetcher(ctx context.Context) html.CSSFetcher {
	if r.fetcher == nil {
		return nil
	}
	return func(uri string) (string, error) {
		css, err := FetchCSS(ctx, r.fetcher, uri)
		if err != nil {
			r.logger.Warn("stylesheet not loaded", "uri", uri, "err", err)
		}
		return css, err
	}
}

func (r *PageRenderer) imageFetcher(ctx context.Context) images.ImageFetcher {
	if r.fetcher == nil {
		return nil
	}
	return func(uri string) ([]byte, error) {
		body, _, err := r.fetcher.Fetch(ctx, uri)
		return body, err
	}
}
