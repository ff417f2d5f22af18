package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenkai/pkg/html"
	"zenkai/pkg/layout"
	"zenkai/pkg/nav"
)

func parse(t *testing.T, markup string) *html.Document {
	t.Helper()
	doc, err := html.Parse(markup)
	require.NoError(t, err)
	return doc
}

func byID(t *testing.T, doc *html.Document, id string) *html.Node {
	t.Helper()
	n := doc.GetElementByID(id)
	require.NotNil(t, n, "no element #%s", id)
	return n
}

const gridPage = `<body style="margin: 0">
<div id="grid" style="width: 300px">
	<div id="a" class="selector-item" style="display: inline-block; width: 100px; height: 40px"></div>
	<div id="b" class="selector-item" style="display: inline-block; width: 100px; height: 40px"></div>
	<div id="c" class="selector-item" style="display: inline-block; width: 100px; height: 40px"></div>
	<div id="d" class="selector-item" style="display: inline-block; width: 100px; height: 40px"></div>
	<span class="badge">3</span>
</div>
</body>`

func TestSelector_SelectAndCallbacks(t *testing.T) {
	doc := parse(t, gridPage)
	s, err := NewSelector(byID(t, doc, "grid"), nil)
	require.NoError(t, err)
	require.Len(t, s.Items(), 4, "only marked children are items")

	var events []string
	s.OnSelect = func(item *html.Node, i int) { events = append(events, "select "+item.Attributes["id"]) }
	s.OnUnselect = func(item *html.Node, i int) { events = append(events, "unselect "+item.Attributes["id"]) }

	require.NoError(t, s.Select(1))
	require.NoError(t, s.SelectNode(byID(t, doc, "c")))
	require.NoError(t, s.SelectNode(byID(t, doc, "c")))

	item, idx := s.Selected()
	assert.Equal(t, byID(t, doc, "c"), item)
	assert.Equal(t, 2, idx)
	assert.Equal(t, []string{"select b", "unselect b", "select c"}, events)
	assert.Equal(t, "selector-item", byID(t, doc, "b").Attributes["class"])
	assert.Equal(t, "selector-item selected", byID(t, doc, "c").Attributes["class"])
	assert.Equal(t, "true", byID(t, doc, "c").Attributes["aria-selected"])

	s.Clear()
	item, idx = s.Selected()
	assert.Nil(t, item)
	assert.Equal(t, -1, idx)

	assert.True(t, errors.Is(s.Select(9), ErrIndex))
	assert.True(t, errors.Is(s.SelectNode(doc.Body()), ErrNotItem))
}

func TestSelector_InitialSelectionAndRemoval(t *testing.T) {
	doc := parse(t, `<ul id="list"><li>a</li><li id="b" class="selected">b</li></ul>`)
	s, err := NewSelector(byID(t, doc, "list"), PlainBinding{})
	require.NoError(t, err)

	item, idx := s.Selected()
	assert.Equal(t, byID(t, doc, "b"), item)
	assert.Equal(t, 1, idx)

	byID(t, doc, "list").RemoveChild(item)
	item, _ = s.Selected()
	assert.Nil(t, item)
}

func TestSelector_Move(t *testing.T) {
	doc := parse(t, gridPage)
	s, err := NewSelector(byID(t, doc, "grid"), nil)
	require.NoError(t, err)
	g := layout.NewEngine(800, 600).Layout(doc)

	steps := []struct {
		dir  nav.Direction
		want string
	}{
		{nav.Right, "a"},
		{nav.Right, "b"},
		{nav.Right, "c"},
		{nav.Down, "d"},
		{nav.Up, "a"},
	}
	for _, step := range steps {
		next, err := s.Move(g, step.dir)
		require.NoError(t, err)
		require.NotNil(t, next, "move %v", step.dir)
		assert.Equal(t, step.want, next.Attributes["id"], "move %v", step.dir)
	}

	next, err := s.Move(g, nav.Left)
	require.NoError(t, err)
	assert.Nil(t, next, "already at the left edge")
	item, _ := s.Selected()
	assert.Equal(t, "a", item.Attributes["id"])
}

func TestSelector_MoveSkipsNonItems(t *testing.T) {
	doc := parse(t, `<body style="margin: 0">
<div id="list" style="width: 200px">
	<div id="title" style="height: 20px">Sizes</div>
	<div id="a" class="selector-item" style="height: 20px">S</div>
	<div id="sep" style="height: 4px"></div>
	<div id="b" class="selector-item" style="height: 20px">L</div>
</div>
</body>`)
	s, err := NewSelector(byID(t, doc, "list"), nil)
	require.NoError(t, err)
	g := layout.NewEngine(400, 300).Layout(doc)

	next, err := s.Move(g, nav.Down)
	require.NoError(t, err)
	require.NotNil(t, next, "entry skips the title")
	assert.Equal(t, "a", next.Attributes["id"])

	next, err = s.Move(g, nav.Down)
	require.NoError(t, err)
	require.NotNil(t, next, "move skips the separator")
	assert.Equal(t, "b", next.Attributes["id"])

	next, err = s.Move(g, nav.Down)
	require.NoError(t, err)
	assert.Nil(t, next)

	next, err = s.Move(g, nav.Up)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "a", next.Attributes["id"])

	_, err = s.Move(g, nav.Direction(42))
	assert.True(t, errors.Is(err, nav.ErrDirection))
}

func TestFormBinding(t *testing.T) {
	doc := parse(t, `<form>
		<input id="field" name="size">
		<ul id="sizes"><li data-value="s">Small</li><li>Large</li></ul>
	</form>`)
	input := byID(t, doc, "field")
	s, err := NewSelector(byID(t, doc, "sizes"), FormBinding{Input: input})
	require.NoError(t, err)

	require.NoError(t, s.Select(0))
	assert.Equal(t, "s", input.Attributes["value"])
	require.NoError(t, s.Select(1))
	assert.Equal(t, "Large", input.Attributes["value"])
	s.Clear()
	assert.Equal(t, "", input.Attributes["value"])
}

func TestSwitch(t *testing.T) {
	doc := parse(t, `<label id="sw"><input type="checkbox" checked> Wi-Fi</label>`)
	s, err := NewSwitch(byID(t, doc, "sw"))
	require.NoError(t, err)
	assert.True(t, s.On())
	assert.Equal(t, "checked", s.Container.Attributes["class"])

	var changes []bool
	s.OnChange = func(on bool) { changes = append(changes, on) }

	assert.False(t, s.Toggle())
	assert.False(t, s.Input.HasAttribute("checked"))
	assert.Equal(t, "", s.Container.Attributes["class"])
	s.Set(false)
	s.Set(true)
	assert.Equal(t, []bool{false, true}, changes)

	s.Input.SetAttribute("disabled", "")
	s.Set(false)
	assert.True(t, s.On(), "disabled switch keeps its state")

	_, err = NewSwitch(doc.Body().FirstByTag("input"))
	assert.True(t, errors.Is(err, ErrMissingPart))
}

func TestCollapsible(t *testing.T) {
	doc := parse(t, `<div id="c"><h3>Title</h3><div>Body</div></div>`)
	c, err := NewCollapsible(byID(t, doc, "c"))
	require.NoError(t, err)

	contentID := c.Content.Attributes["id"]
	assert.True(t, strings.HasPrefix(contentID, "collapsible-"))
	assert.Equal(t, contentID, c.Header.Attributes["aria-controls"])
	assert.True(t, c.IsOpen())
	assert.Equal(t, "true", c.Header.Attributes["aria-expanded"])

	var seen []bool
	c.OnToggle = func(_ *Collapsible, open bool) { seen = append(seen, open) }

	assert.False(t, c.Toggle())
	assert.True(t, c.Content.HasAttribute("hidden"))
	assert.Equal(t, "collapsed", c.Container.Attributes["class"])
	assert.Equal(t, "false", c.Header.Attributes["aria-expanded"])

	c.Close()
	c.Open()
	assert.False(t, c.Content.HasAttribute("hidden"))
	assert.Equal(t, []bool{false, true}, seen)
}

func TestCollapsible_KeepsIDAndStartsClosed(t *testing.T) {
	doc := parse(t, `<div id="c" class="collapsed"><button class="collapsible-header">T</button><p>x</p><div id="body" class="collapsible-content">B</div></div>`)
	c, err := NewCollapsible(byID(t, doc, "c"))
	require.NoError(t, err)
	assert.Equal(t, "body", c.Header.Attributes["aria-controls"])
	assert.False(t, c.IsOpen())
	assert.True(t, c.Content.HasAttribute("hidden"))

	_, err = NewCollapsible(byID(t, doc, "body"))
	assert.True(t, errors.Is(err, ErrMissingPart))
}

func TestCollapsible_HiddenContentIsLaidOutAsHidden(t *testing.T) {
	doc := parse(t, `<div id="c"><h3>Title</h3><div id="body" style="height: 20px">Body</div></div>`)
	c, err := NewCollapsible(byID(t, doc, "c"))
	require.NoError(t, err)

	c.Close()
	g := layout.NewEngine(400, 300).Layout(doc)
	assert.True(t, g.IsHidden(c.Content))
	c.Open()
	g = layout.NewEngine(400, 300).Layout(doc)
	assert.False(t, g.IsHidden(c.Content))
}

const accordionPage = `<div id="acc">
	<div><h3>One</h3><div>1</div></div>
	<div><h3>Two</h3><div>2</div></div>
	<div class="collapsed"><h3>Three</h3><div>3</div></div>
</div>`

func TestAccordion_Single(t *testing.T) {
	doc := parse(t, accordionPage)
	a, err := NewAccordion(byID(t, doc, "acc"), false)
	require.NoError(t, err)
	require.Len(t, a.Items, 3)
	assert.Equal(t, []int{0}, a.OpenSections(), "only the first open section stays open")

	require.NoError(t, a.Open(2))
	assert.Equal(t, []int{2}, a.OpenSections())
	require.NoError(t, a.Toggle(1))
	assert.Equal(t, []int{1}, a.OpenSections())
	require.NoError(t, a.Toggle(1))
	assert.Empty(t, a.OpenSections())
	assert.True(t, errors.Is(a.Open(3), ErrIndex))
}

func TestAccordion_Multiple(t *testing.T) {
	doc := parse(t, accordionPage)
	a, err := NewAccordion(byID(t, doc, "acc"), true)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, a.OpenSections())

	require.NoError(t, a.Open(2))
	require.NoError(t, a.Close(0))
	assert.Equal(t, []int{1, 2}, a.OpenSections())
}

func TestActivate(t *testing.T) {
	doc := parse(t, `<body>
		<input id="choice">
		<ul id="sel" data-boost="selector" data-input="#choice"><li data-value="x" class="selected">X</li></ul>
		<label id="sw" data-boost="switch"><input type="checkbox"></label>
		<div id="col" data-boost="collapsible"><b>h</b><p>c</p></div>
		<div id="acc" data-boost="accordion" data-multiple="true">
			<div><b>1</b><p>1</p></div>
			<div><b>2</b><p>2</p></div>
		</div>
		<div data-boost="carousel"></div>
		<div data-boost="switch"></div>
	</body>`)
	var buf bytes.Buffer
	w := Activate(doc, Options{Logger: log.New(&buf)})

	assert.Equal(t, 4, w.Len())
	require.NotNil(t, w.SelectorFor(byID(t, doc, "sel")))
	assert.IsType(t, FormBinding{}, w.Selectors[0].Binding)
	require.NoError(t, w.Selectors[0].Select(0))
	assert.Equal(t, "x", byID(t, doc, "choice").Attributes["value"])
	assert.Len(t, w.Switches, 1)
	assert.Len(t, w.Collapsibles, 1)
	require.Len(t, w.Accordions, 1)
	assert.True(t, w.Accordions[0].Multiple)

	logged := buf.String()
	assert.Contains(t, logged, "carousel")
	assert.Equal(t, 2, strings.Count(logged, "widget not activated"))
}
