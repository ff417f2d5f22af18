package css

import (
	"testing"

	"zenkai/pkg/html"
)

func buildTree(t *testing.T) *html.Document {
	t.Helper()
	doc, err := html.Parse(`<div id="menu" class="nav">
		<ul>
			<li class="item first">One</li>
			<li class="item" data-kind="x-large">Two</li>
			<li class="item badge" hidden>Three</li>
		</ul>
	</div>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func items(doc *html.Document) []*html.Node {
	var out []*html.Node
	doc.Root.Walk(func(n *html.Node) bool {
		if n.TagName == "li" {
			out = append(out, n)
		}
		return false
	})
	return out
}

func TestMatchesSelector_ElementSelector(t *testing.T) {
	node := html.NewElement("div")
	if !MatchesSelector(node, ParseSelector("div")) {
		t.Error("div should match selector 'div'")
	}
	if MatchesSelector(node, ParseSelector("p")) {
		t.Error("div should not match selector 'p'")
	}
}

func TestMatchesSelector_ClassSelector(t *testing.T) {
	node := html.NewElement("div")
	node.SetAttribute("class", "highlight wide")

	if !MatchesSelector(node, ParseSelector(".highlight")) {
		t.Error("div with class='highlight' should match selector '.highlight'")
	}
	if !MatchesSelector(node, ParseSelector("div.highlight.wide")) {
		t.Error("compound class selector should match")
	}
	if MatchesSelector(node, ParseSelector(".other")) {
		t.Error("div with class='highlight' should not match selector '.other'")
	}
}

func TestMatchesSelector_IDSelector(t *testing.T) {
	node := html.NewElement("div")
	node.SetAttribute("id", "header")

	if !MatchesSelector(node, ParseSelector("#header")) {
		t.Error("div with id='header' should match selector '#header'")
	}
	if MatchesSelector(node, ParseSelector("#footer")) {
		t.Error("div with id='header' should not match selector '#footer'")
	}
}

func TestMatchesSelector_Combinators(t *testing.T) {
	doc := buildTree(t)
	li := items(doc)
	if len(li) != 3 {
		t.Fatalf("expected 3 items, got %d", len(li))
	}

	tests := []struct {
		selector string
		node     *html.Node
		want     bool
	}{
		{"#menu li", li[0], true},
		{"#menu > li", li[0], false},
		{"ul > li", li[1], true},
		{".first + li", li[1], true},
		{".first + li", li[2], false},
		{".first ~ li", li[2], true},
		{"body div.nav ul li.badge", li[2], true},
	}
	for _, tt := range tests {
		if got := MatchesSelector(tt.node, ParseSelector(tt.selector)); got != tt.want {
			t.Errorf("%q on <%s>: got %v, want %v", tt.selector, tt.node.TagName, got, tt.want)
		}
	}
}

func TestMatchesSelector_AttributesAndPseudoClasses(t *testing.T) {
	doc := buildTree(t)
	li := items(doc)

	tests := []struct {
		selector string
		node     *html.Node
		want     bool
	}{
		{"[hidden]", li[2], true},
		{"[hidden]", li[1], false},
		{`[data-kind="x-large"]`, li[1], true},
		{"[data-kind^=x]", li[1], true},
		{"[data-kind$=large]", li[1], true},
		{"[data-kind|=x]", li[1], true},
		{"[class~=badge]", li[2], true},
		{"li:first-child", li[0], true},
		{"li:first-child", li[1], false},
		{"li:last-child", li[2], true},
		{".item:not(.badge)", li[1], true},
		{".item:not(.badge)", li[2], false},
		{".item:not([hidden], .first)", li[0], false},
	}
	for i, tt := range tests {
		if got := MatchesSelector(tt.node, ParseSelector(tt.selector)); got != tt.want {
			t.Errorf("case %d %q: got %v, want %v", i, tt.selector, got, tt.want)
		}
	}
}

func TestMatchesSelector_TextNode(t *testing.T) {
	text := &html.Node{Type: html.TextNode, Text: "hi"}
	if MatchesSelector(text, ParseSelector("*")) {
		t.Error("text nodes never match")
	}
}

func TestMatchesAny(t *testing.T) {
	node := html.NewElement("span")
	if !MatchesAny(node, "div, span") {
		t.Error("span should match 'div, span'")
	}
	if MatchesAny(node, "div, p") {
		t.Error("span should not match 'div, p'")
	}
}
