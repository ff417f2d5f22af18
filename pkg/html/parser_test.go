package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_BuildsHTMLSkeleton(t *testing.T) {
	doc, err := Parse("<div></div>")
	require.NoError(t, err)
	require.Len(t, doc.Root.Children, 1)
	assert.Equal(t, "html", doc.Root.Children[0].TagName)

	body := doc.Body()
	require.Equal(t, "body", body.TagName)
	require.Len(t, body.Children, 1)
	assert.Equal(t, "div", body.Children[0].TagName)
}

func TestParser_WithAttributes(t *testing.T) {
	doc, err := Parse(`<div style="color: red" data-role="x"></div>`)
	require.NoError(t, err)
	div := doc.Body().Children[0]
	style, ok := div.GetAttribute("style")
	assert.True(t, ok)
	assert.Equal(t, "color: red", style)
	role, ok := div.Data("role")
	assert.True(t, ok)
	assert.Equal(t, "x", role)
}

func TestParser_NestedElements(t *testing.T) {
	doc, err := Parse(`<div><p>Hello</p></div>`)
	require.NoError(t, err)

	div := doc.Body().Children[0]
	require.Len(t, div.Children, 1)
	p := div.Children[0]
	assert.Equal(t, "p", p.TagName)
	require.Len(t, p.Children, 1)
	assert.Equal(t, TextNode, p.Children[0].Type)
	assert.Equal(t, "Hello", p.Children[0].Text)
	assert.Same(t, div, p.Parent)
}

func TestParser_CollectsStylesAndScripts(t *testing.T) {
	doc, err := Parse(`<html><head><style>p { color: red }</style>
<link rel="stylesheet" href="data:text/css,div%20%7B%20margin%3A%201px%20%7D">
</head><body><script>var x = 1;</script><script type="text/template">nope</script></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, []string{"p { color: red }", "div { margin: 1px }"}, doc.Stylesheets)
	assert.Equal(t, []string{"var x = 1;"}, doc.Scripts)
	assert.Nil(t, doc.Root.FirstByTag("script"))
}

func TestParser_FetcherLoadsExternalStylesheet(t *testing.T) {
	var asked string
	doc, err := ParseWithFetcher(`<link rel="stylesheet" href="site.css"><p></p>`, func(uri string) (string, error) {
		asked = uri
		return ".x { width: 10px }", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "site.css", asked)
	assert.Equal(t, []string{".x { width: 10px }"}, doc.Stylesheets)
}

func TestParseFragment(t *testing.T) {
	nodes, err := ParseFragment(`<li>a</li><li>b</li>text`)
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	assert.Equal(t, "li", nodes[0].TagName)
	assert.Equal(t, "b", nodes[1].TextContent())
	assert.Equal(t, TextNode, nodes[2].Type)
	assert.Nil(t, nodes[0].Parent)
}

func TestParseFragmentSanitized(t *testing.T) {
	nodes, err := ParseFragmentSanitized(`<a href="javascript:alert(1)" onclick="x()" class="link">go</a><script>evil()</script>`)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	a := nodes[0]
	assert.Equal(t, "a", a.TagName)
	assert.False(t, a.HasAttribute("onclick"))
	assert.False(t, a.HasAttribute("href"))
	cls, _ := a.GetAttribute("class")
	assert.Equal(t, "link", cls)
}

func TestSetInnerHTML(t *testing.T) {
	n := NewElement("div")
	n.AppendText("old")
	n.SetInnerHTML(`<span>new</span>`)
	require.Len(t, n.Children, 1)
	assert.Equal(t, "<span>new</span>", n.Serialize())
	assert.Same(t, n, n.Children[0].Parent)
}
