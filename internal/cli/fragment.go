package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"zenkai/pkg/dom"
	"zenkai/pkg/html"
)

// newFragmentCmd parses an HTML fragment the way the element factory does
// and prints it back. Sanitizing follows [parse] sanitize unless --raw is
// given.
func newFragmentCmd(g *globalOpts) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "fragment <file|->",
		Short: "Parse an HTML fragment and print the sanitized result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			sanitize := g.cfg.Parse.Sanitize && !raw
			loggerFromContext(cmd.Context()).Debug("parsing fragment", "sanitize", sanitize)

			frag, err := dom.New(html.NewDocument()).ParseHTML(string(data), sanitize)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), frag.Serialize())
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "do not sanitize")
	return cmd
}
