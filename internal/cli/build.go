package cli

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"zenkai/pkg/resource"
)

type buildOpts struct {
	scripts   []string
	noScripts bool
	width     float64
	height    float64
}

// newBuildCmd loads a page, runs its scripts plus any --script files, and
// prints the resulting markup.
func newBuildCmd(g *globalOpts) *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build <page>",
		Short: "Run a page's scripts and print the resulting HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var extra []string
			for _, path := range opts.scripts {
				src, err := os.ReadFile(path)
				if err != nil {
					return errors.Wrapf(err, "reading script %s", path)
				}
				extra = append(extra, string(src))
			}

			w, h := g.viewport(opts.width, opts.height)
			_, page, err := g.loadPage(cmd.Context(), args[0], w, h,
				resource.WithScripts(!opts.noScripts),
				resource.WithExtraScripts(extra...),
			)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), page.Doc.Root.Serialize())
			return err
		},
	}

	cmd.Flags().StringArrayVar(&opts.scripts, "script", nil, "extra script to run after the page's own (repeatable)")
	cmd.Flags().BoolVar(&opts.noScripts, "no-scripts", false, "do not run any script")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "viewport width (default from config)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "viewport height (default from config)")
	return cmd
}
