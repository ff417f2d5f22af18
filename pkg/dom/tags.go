package dom

import (
	_ "embed"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"zenkai/pkg/html"
)

//go:embed tags.yaml
var tagsYAML []byte

// Tag is one entry of the per-tag constructor table.
type Tag struct {
	Tag        string   `yaml:"tag"`
	Name       string   `yaml:"name"`
	Void       bool     `yaml:"void"`
	Attributes []string `yaml:"attributes"`

	allowed Whitelist
}

// Allowed returns the tag's whitelist. It is never nil.
func (t Tag) Allowed() Whitelist {
	return t.allowed
}

var (
	tagTable  map[string]Tag
	tagByName map[string]string
)

func init() {
	tags, err := loadTags(tagsYAML)
	if err != nil {
		panic(err)
	}
	tagTable = make(map[string]Tag, len(tags))
	tagByName = make(map[string]string, len(tags))
	for _, t := range tags {
		tagTable[t.Tag] = t
		tagByName[t.Name] = t.Tag
	}
}

// loadTags parses a tag table and checks every listed attribute against the
// dispatch table.
func loadTags(data []byte) ([]Tag, error) {
	var tags []Tag
	if err := yaml.Unmarshal(data, &tags); err != nil {
		return nil, errors.Wrap(err, "dom: parse tag table")
	}
	seen := make(map[string]bool, len(tags))
	for i := range tags {
		t := &tags[i]
		if t.Tag == "" || t.Name == "" {
			return nil, errors.Errorf("dom: tag table entry %d is missing tag or name", i)
		}
		if seen[t.Tag] {
			return nil, errors.Errorf("dom: tag %q listed twice", t.Tag)
		}
		seen[t.Tag] = true
		for _, a := range t.Attributes {
			if _, ok := handlers[a]; !ok {
				return nil, errors.Errorf("dom: tag %q allows %q which has no dispatch entry", t.Tag, a)
			}
		}
		t.allowed = WhitelistOf(t.Attributes...)
	}
	return tags, nil
}

// Tags returns the constructor table sorted by tag.
func Tags() []Tag {
	out := make([]Tag, 0, len(tagTable))
	for _, t := range tagTable {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

// LookupTag returns the table entry for tag.
func LookupTag(tag string) (Tag, bool) {
	t, ok := tagTable[tag]
	return t, ok
}

// LookupName returns the table entry whose constructor name is name, e.g.
// "TableCell".
func LookupName(name string) (Tag, bool) {
	tag, ok := tagByName[name]
	if !ok {
		return Tag{}, false
	}
	return tagTable[tag], true
}

// Create builds tag with its table whitelist. Content is dropped for void
// tags. Tags missing from the table are built with globals only.
func (f *Factory) Create(tag string, attrs Attributes, content ...any) *html.Node {
	t, ok := tagTable[tag]
	if !ok {
		return f.CreateElement(tag, Whitelist{}, attrs, content...)
	}
	if t.Void {
		return f.CreateEmptyElement(t.Tag, t.allowed, attrs)
	}
	return f.CreateElement(t.Tag, t.allowed, attrs, content...)
}

func (f *Factory) Anchor(attrs Attributes, content ...any) *html.Node {
	return f.Create("a", attrs, content...)
}

func (f *Factory) Div(attrs Attributes, content ...any) *html.Node {
	return f.Create("div", attrs, content...)
}

func (f *Factory) Span(attrs Attributes, content ...any) *html.Node {
	return f.Create("span", attrs, content...)
}

func (f *Factory) Paragraph(attrs Attributes, content ...any) *html.Node {
	return f.Create("p", attrs, content...)
}

func (f *Factory) Button(attrs Attributes, content ...any) *html.Node {
	return f.Create("button", attrs, content...)
}

func (f *Factory) Input(attrs Attributes) *html.Node {
	return f.Create("input", attrs)
}

func (f *Factory) Label(attrs Attributes, content ...any) *html.Node {
	return f.Create("label", attrs, content...)
}

func (f *Factory) Image(attrs Attributes) *html.Node {
	return f.Create("img", attrs)
}

func (f *Factory) LineBreak(attrs Attributes) *html.Node {
	return f.Create("br", attrs)
}

func (f *Factory) ListItem(attrs Attributes, content ...any) *html.Node {
	return f.Create("li", attrs, content...)
}

func (f *Factory) UnorderedList(attrs Attributes, content ...any) *html.Node {
	return f.Create("ul", attrs, content...)
}

func (f *Factory) OrderedList(attrs Attributes, content ...any) *html.Node {
	return f.Create("ol", attrs, content...)
}

func (f *Factory) Table(attrs Attributes, content ...any) *html.Node {
	return f.Create("table", attrs, content...)
}

func (f *Factory) TableRow(attrs Attributes, content ...any) *html.Node {
	return f.Create("tr", attrs, content...)
}

func (f *Factory) TableCell(attrs Attributes, content ...any) *html.Node {
	return f.Create("td", attrs, content...)
}

func (f *Factory) TableHeaderCell(attrs Attributes, content ...any) *html.Node {
	return f.Create("th", attrs, content...)
}

func (f *Factory) Form(attrs Attributes, content ...any) *html.Node {
	return f.Create("form", attrs, content...)
}

func (f *Factory) Select(attrs Attributes, content ...any) *html.Node {
	return f.Create("select", attrs, content...)
}

func (f *Factory) Option(attrs Attributes, content ...any) *html.Node {
	return f.Create("option", attrs, content...)
}

func (f *Factory) TextArea(attrs Attributes, content ...any) *html.Node {
	return f.Create("textarea", attrs, content...)
}

func (f *Factory) Header(attrs Attributes, content ...any) *html.Node {
	return f.Create("header", attrs, content...)
}

func (f *Factory) Footer(attrs Attributes, content ...any) *html.Node {
	return f.Create("footer", attrs, content...)
}

func (f *Factory) Section(attrs Attributes, content ...any) *html.Node {
	return f.Create("section", attrs, content...)
}

// Heading builds h1..h6. Levels outside that range are clamped.
func (f *Factory) Heading(level int, attrs Attributes, content ...any) *html.Node {
	level = min(max(level, 1), 6)
	return f.Create("h"+strconv.Itoa(level), attrs, content...)
}

func (f *Factory) Template(attrs Attributes, content ...any) *html.Node {
	return f.Create("template", attrs, content...)
}
