package dom

import (
	"github.com/pkg/errors"

	"zenkai/pkg/html"
)

// ParseHTML parses markup into a fragment created by the factory's host.
// With sanitize set, scripts, event handlers and unsafe URLs are stripped
// first.
func (f *Factory) ParseHTML(markup string, sanitize bool) (*html.Node, error) {
	parse := html.ParseFragment
	if sanitize {
		parse = html.ParseFragmentSanitized
	}
	nodes, err := parse(markup)
	if err != nil {
		return nil, errors.Wrap(err, "dom: parse markup")
	}
	return f.CreateDocumentFragment(nodes), nil
}
