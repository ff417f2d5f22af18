package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"

	"zenkai/pkg/html"
	"zenkai/pkg/resource"
	"zenkai/pkg/std"
)

// viewport returns the flag values, falling back to the configured
// viewport for zero values.
func (g *globalOpts) viewport(width, height float64) (float64, float64) {
	if width <= 0 {
		width = g.cfg.Viewport.Width
	}
	if height <= 0 {
		height = g.cfg.Viewport.Height
	}
	return width, height
}

// loadPage loads page, a file path or URL, with its linked resources
// resolved relative to it. The returned renderer paints the page with the
// same fetcher.
func (g *globalOpts) loadPage(ctx context.Context, page string, width, height float64, opts ...resource.Option) (*resource.PageRenderer, *resource.Page, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	base, uri := page, page
	if !std.IsNetworkURL(page) {
		base, uri = filepath.Dir(page), filepath.Base(page)
	}
	fetcher := resource.NewFetcher(base, 0)

	opts = append([]resource.Option{resource.WithLogger(logger)}, opts...)
	r := resource.NewPageRenderer(fetcher, opts...)
	p, err := r.LoadFile(ctx, uri, width, height)
	if err != nil {
		return nil, nil, err
	}
	prog.done("page loaded", "page", page, "boxes", len(p.Layout.Boxes()))
	return r, p, nil
}

// selectorPath returns a selector that matches n alone: the path from the
// nearest ancestor with an id, or from the root, using nth-child steps.
func selectorPath(n *html.Node) string {
	var parts []string
	for ; n != nil && n.IsElement() && n.TagName != "document"; n = n.Parent {
		if id, ok := n.GetAttribute("id"); ok && id != "" {
			parts = append(parts, "#"+id)
			break
		}
		part := n.TagName
		if n.TagName != "html" && n.TagName != "body" {
			part = fmt.Sprintf("%s:nth-child(%d)", n.TagName, elementPosition(n))
		}
		parts = append(parts, part)
	}
	slices.Reverse(parts)
	return strings.Join(parts, " > ")
}

func elementPosition(n *html.Node) int {
	if n.Parent == nil {
		return 1
	}
	for i, c := range n.Parent.ElementChildren() {
		if c == n {
			return i + 1
		}
	}
	return 1
}

func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	return data, errors.Wrap(err, "reading stdin")
}
