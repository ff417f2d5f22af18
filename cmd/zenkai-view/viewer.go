package main

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"zenkai/internal/config"
	"zenkai/pkg/dom"
	"zenkai/pkg/html"
	"zenkai/pkg/nav"
	"zenkai/pkg/resource"
	"zenkai/pkg/std"
	"zenkai/pkg/ui"
)

// frame is a painted page handed to the UI goroutine.
type frame struct {
	page   string
	image  *image.RGBA
	status string
	err    error
}

// viewer owns the loaded page. Loading, navigation and painting run off the
// UI goroutine; mu serializes them.
type viewer struct {
	ctx    context.Context
	cfg    config.Config
	logger *log.Logger

	onPaint func(frame)

	mu       sync.Mutex
	name     string
	renderer *resource.PageRenderer
	page     *resource.Page
	selector *ui.Selector
}

func newViewer(ctx context.Context, cfg config.Config, logger *log.Logger) *viewer {
	return &viewer{ctx: ctx, cfg: cfg, logger: logger, onPaint: func(frame) {}}
}

// open loads name, a file path or URL, and paints it.
func (v *viewer) open(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	base, uri := name, name
	if !std.IsNetworkURL(name) {
		base, uri = filepath.Dir(name), filepath.Base(name)
	}
	r := resource.NewPageRenderer(resource.NewFetcher(base, 0), resource.WithLogger(v.logger))
	page, err := r.LoadFile(v.ctx, uri, v.cfg.Viewport.Width, v.cfg.Viewport.Height)
	if err != nil {
		v.logger.Error("page not loaded", "page", name, "err", err)
		v.onPaint(frame{page: name, err: err})
		return
	}

	container := dom.GetElement(page.Doc, v.cfg.Nav.Container)
	if container == nil {
		err := errors.Errorf("container %q matched nothing", v.cfg.Nav.Container)
		v.logger.Error("page not loaded", "page", name, "err", err)
		v.onPaint(frame{page: name, err: err})
		return
	}
	sel, err := ui.NewSelector(container, nil)
	if err != nil {
		v.onPaint(frame{page: name, err: err})
		return
	}

	v.name, v.renderer, v.page, v.selector = name, r, page, sel
	v.paint(fmt.Sprintf("%s: %d items", name, len(sel.Items())))
}

// move shifts the selection in dir and repaints.
func (v *viewer) move(dir nav.Direction) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.page == nil {
		return
	}

	next, err := v.selector.Move(v.page.Layout, dir)
	if err != nil {
		v.logger.Warn("move failed", "dir", dir, "err", err)
		return
	}
	if next == nil {
		v.logger.Debug("no element in that direction", "dir", dir)
		return
	}
	// The binding changed classes; styles may depend on them.
	v.page.Relayout()
	_, idx := v.selector.Selected()
	v.paint(fmt.Sprintf("%s: item %d of %d", v.name, idx+1, len(v.selector.Items())))
}

func (v *viewer) paint(status string) {
	var focus *html.Node
	if v.selector != nil {
		focus, _ = v.selector.Selected()
	}
	target := image.NewRGBA(image.Rect(0, 0, int(v.cfg.Viewport.Width), int(v.cfg.Viewport.Height)))
	v.renderer.Paint(v.ctx, v.page, target, focus)
	v.onPaint(frame{page: v.name, image: target, status: status})
}
