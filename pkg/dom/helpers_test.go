package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenkai/pkg/html"
)

func TestAddClassNormalizes(t *testing.T) {
	f := newFactory()
	el := f.Div(Attrs("class", "a  b"))
	AddClass(el, "c")

	v, _ := el.GetAttribute("class")
	assert.Equal(t, "a b c", v)
	assert.Equal(t, []string{"a", "b", "c"}, Classes(el))

	AddClass(el, " b   d ", "", "a")
	v, _ = el.GetAttribute("class")
	assert.Equal(t, "a b c d", v)
}

func TestRemoveClass(t *testing.T) {
	f := newFactory()
	el := f.Div(Attrs("class", "a b c"))
	RemoveClass(el, "b", "missing")
	assert.Equal(t, []string{"a", "c"}, Classes(el))

	RemoveClass(el, "a c")
	assert.False(t, el.HasAttribute("class"))

	bare := f.Div(nil)
	RemoveClass(bare, "x")
	assert.False(t, bare.HasAttribute("class"))
}

func TestReflectedPropertiesFollowAttributeRemoval(t *testing.T) {
	f := newFactory()
	el := f.Div(Attrs("class", "a"))
	RemoveClass(el, "a")
	assert.False(t, el.HasAttribute("class"))
	assert.Equal(t, "", el.Prop("className"))

	input := f.Input(Attrs("value", "x", "tabindex", 2))
	assert.Equal(t, "x", input.Prop("value"))
	input.RemoveAttribute("value")
	input.RemoveAttribute("tabindex")
	assert.Equal(t, "", input.Prop("value"))
	assert.Equal(t, 0, input.Prop("tabIndex"))

	input.SetAttribute("value", "y")
	assert.Equal(t, "y", input.Prop("value"))
}

func TestHasClass(t *testing.T) {
	f := newFactory()
	el := f.Div(Attrs("class", "a b"))
	assert.True(t, HasClass(el, "a"))
	assert.True(t, HasClass(el, "a", "b"))
	assert.True(t, HasClass(el, "b a"))
	assert.False(t, HasClass(el, "a", "c"))
	assert.False(t, HasClass(el))
	assert.False(t, HasClass(nil, "a"))
}

func TestToggleClass(t *testing.T) {
	f := newFactory()
	el := f.Div(nil)
	assert.True(t, ToggleClass(el, "open"))
	assert.True(t, HasClass(el, "open"))
	assert.False(t, ToggleClass(el, "open"))
	assert.False(t, HasClass(el, "open"))

	assert.True(t, ToggleClass(el, "on", true))
	assert.True(t, ToggleClass(el, "on", true))
	assert.False(t, ToggleClass(el, "on", false))
	assert.False(t, HasClass(el, "on"))
}

func TestReplaceClass(t *testing.T) {
	f := newFactory()
	el := f.Div(Attrs("class", "a b c"))
	assert.True(t, ReplaceClass(el, "b", "x"))
	assert.Equal(t, []string{"a", "x", "c"}, Classes(el))
	assert.False(t, ReplaceClass(el, "zzz", "y"))
	assert.True(t, ReplaceClass(el, "a", "c"))
	assert.Equal(t, []string{"c", "x"}, Classes(el))
}

const page = `
<div id="app" class="container">
	<ul class="menu">
		<li class="item" id="one">One</li>
		<li class="item active" id="two"><a href="#">Two</a></li>
		<li class="item" id="three">Three</li>
	</ul>
	<p class="note">Note</p>
</div>`

func parsePage(t *testing.T) *html.Document {
	t.Helper()
	doc, err := html.Parse(page)
	require.NoError(t, err)
	return doc
}

func ids(nodes []*html.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		id, _ := n.GetAttribute("id")
		out = append(out, id)
	}
	return out
}

func TestQuerySelector(t *testing.T) {
	doc := parsePage(t)
	app := doc.GetElementByID("app")

	assert.Equal(t, "two", ids([]*html.Node{QuerySelector(app, ".item.active")})[0])
	assert.Equal(t, []string{"one", "two", "three"}, ids(QuerySelectorAll(app, "ul > li")))
	assert.Equal(t, []string{"one", "three"}, ids(QuerySelectorAll(app, "li:not(.active)")))
	assert.Len(t, QuerySelectorAll(app, "p, a"), 2)
	assert.Nil(t, QuerySelector(app, "table"))
	assert.Nil(t, QuerySelector(nil, "div"))
	// The root itself is not a descendant.
	assert.Nil(t, QuerySelector(app, "#app"))
}

func TestMatchesAndClosest(t *testing.T) {
	doc := parsePage(t)
	link := QuerySelector(doc.Root, "a")
	require.NotNil(t, link)

	assert.True(t, Matches(link, "li > a"))
	assert.False(t, Matches(link, "ul > a"))

	li := Closest(link, "li")
	require.NotNil(t, li)
	assert.Equal(t, "two", ids([]*html.Node{li})[0])
	assert.Same(t, link, Closest(link, "a"))
	assert.Nil(t, Closest(link, "table"))
}

func TestFindAncestor(t *testing.T) {
	doc := parsePage(t)
	link := QuerySelector(doc.Root, "a")
	isMenu := func(n *html.Node) bool { return HasClass(n, "menu") }

	assert.NotNil(t, FindAncestor(link, isMenu, 0))
	assert.NotNil(t, FindAncestor(link, isMenu, 2))
	assert.Nil(t, FindAncestor(link, isMenu, 1))
	assert.Nil(t, FindAncestor(link, func(n *html.Node) bool { return n.TagName == "document" }, 0))
}

func TestGetElement(t *testing.T) {
	doc := parsePage(t)
	assert.Equal(t, "p", GetElement(doc, "p").TagName)
	assert.Equal(t, "li", GetElement(doc, "three").TagName)
	assert.Len(t, GetElements(doc, ".item"), 3)
	assert.Nil(t, GetElement(nil, "p"))
}

func TestInsertHelpers(t *testing.T) {
	f := newFactory()
	a, b, c := f.Span(Attrs("id", "a")), f.Span(Attrs("id", "b")), f.Span(Attrs("id", "c"))
	parent := AppendChildren(f.Div(nil), a, nil, c)
	assert.Equal(t, []string{"a", "c"}, ids(parent.Children))

	require.NoError(t, InsertAfter(b, a))
	assert.Equal(t, []string{"a", "b", "c"}, ids(parent.Children))

	d := f.Span(Attrs("id", "d"))
	require.NoError(t, InsertAfter(d, c))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(parent.Children))

	require.NoError(t, InsertBefore(d, a))
	assert.Equal(t, []string{"d", "a", "b", "c"}, ids(parent.Children))

	e := f.Span(Attrs("id", "e"))
	PrependChild(parent, e)
	assert.Equal(t, "e", ids(parent.Children)[0])

	err := InsertAfter(f.Span(nil), f.Span(nil))
	assert.ErrorIs(t, err, ErrNoParent)
	assert.Error(t, InsertBefore(nil, a))
}

func TestPrependChildToEmptyParent(t *testing.T) {
	f := newFactory()
	parent := f.Div(nil)
	PrependChild(parent, f.Span(nil))
	assert.Len(t, parent.Children, 1)
}

func TestRemoveChildren(t *testing.T) {
	f := newFactory()
	parent := f.Div(nil, f.Span(nil), f.Paragraph(nil), "text", f.Span(nil))

	n := RemoveChildren(parent, func(c *html.Node) bool { return c.TagName == "span" })
	assert.Equal(t, 2, n)
	assert.Len(t, parent.Children, 2)

	n = RemoveChildren(parent)
	assert.Equal(t, 2, n)
	assert.Empty(t, parent.Children)
}

func TestCloneTemplate(t *testing.T) {
	f := newFactory()
	tpl := f.Template(nil, f.Div(Attrs("class", "card"), f.Span(nil, "title")))

	deep := CloneTemplate(f, tpl, true)
	require.Len(t, deep.Children, 1)
	assert.Equal(t, `<div class="card"><span>title</span></div>`, deep.SerializeOuter())
	assert.NotSame(t, tpl.Children[0], deep.Children[0])

	shallow := CloneTemplate(f, tpl, false)
	assert.Empty(t, shallow.Children[0].Children)
	assert.Len(t, tpl.Children, 1)
}

func TestParseHTML(t *testing.T) {
	f := newFactory()
	frag, err := f.ParseHTML(`<p onclick="x()">hi <a href="javascript:alert(1)">x</a></p>`, true)
	require.NoError(t, err)
	require.Len(t, frag.Children, 1)
	p := frag.Children[0]
	assert.False(t, p.HasAttribute("onclick"))
	assert.False(t, QuerySelector(p, "a") != nil && QuerySelector(p, "a").HasAttribute("href"))

	frag, err = f.ParseHTML(`<p onclick="x()">hi</p>`, false)
	require.NoError(t, err)
	assert.True(t, frag.Children[0].HasAttribute("onclick"))
}
