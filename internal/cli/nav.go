package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"zenkai/pkg/dom"
	"zenkai/pkg/html"
	"zenkai/pkg/nav"
)

type navOpts struct {
	from     string
	in       string
	dir      string
	absolute bool
	width    float64
	height   float64
}

// newNavCmd prints the selector path of the element nearest to --from in
// --dir among the children of --in. It prints nothing when there is none.
// Without --from it prints the child at the edge of the container in --dir.
func newNavCmd(g *globalOpts) *cobra.Command {
	var opts navOpts

	cmd := &cobra.Command{
		Use:   "nav <page>",
		Short: "Find the neighbor of an element in a direction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := nav.ParseDirection(opts.dir)
			if err != nil {
				return err
			}

			w, h := g.viewport(opts.width, opts.height)
			_, page, err := g.loadPage(cmd.Context(), args[0], w, h)
			if err != nil {
				return err
			}

			in := opts.in
			if in == "" {
				in = g.cfg.Nav.Container
			}
			container := dom.GetElement(page.Doc, in)
			if container == nil {
				return errors.Errorf("container %q matched nothing", in)
			}

			var found *html.Node
			if opts.from == "" {
				found, err = edgeElement(page.Layout, container, dir)
			} else {
				source := dom.GetElement(page.Doc, opts.from)
				if source == nil {
					return errors.Errorf("source %q matched nothing", opts.from)
				}
				found, err = nav.Closest(page.Layout, source, container, dir, !opts.absolute)
			}
			if err != nil {
				return err
			}

			logger := loggerFromContext(cmd.Context())
			if found == nil {
				logger.Info("no element in that direction", "dir", dir)
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), selectorPath(found))
			return err
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "selector of the source element")
	cmd.Flags().StringVar(&opts.in, "in", "", "selector of the container (default from config)")
	cmd.Flags().StringVar(&opts.dir, "dir", "down", "direction: up, down, left or right")
	cmd.Flags().BoolVar(&opts.absolute, "absolute", false, "search past the container edge")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "viewport width (default from config)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "viewport height (default from config)")
	return cmd
}

func edgeElement(g nav.Geometry, container *html.Node, dir nav.Direction) (*html.Node, error) {
	switch dir {
	case nav.Up:
		return nav.TopElement(g, container)
	case nav.Down:
		return nav.BottomElement(g, container)
	case nav.Left:
		return nav.LeftElement(g, container)
	default:
		return nav.RightElement(g, container)
	}
}
