package js

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenkai/pkg/dom"
	"zenkai/pkg/html"
)

func TestClassList_AddMatchesAddClass(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		add     []string
	}{
		{"collapses whitespace", "  a   b ", []string{"c"}},
		{"drops duplicates", "a b a", []string{"b", "d"}},
		{"splits multi-class tokens", "a", []string{"b c", "a"}},
		{"starts empty", "", []string{"x", "x"}},
		{"no tokens normalizes", " y  x y", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := make([]string, len(tt.add))
			for i, c := range tt.add {
				args[i] = strconv.Quote(c)
			}
			doc := parseHTML(t, blankPage)
			e := run(t, doc, fmt.Sprintf(`
				var el = zenkai.createDiv({id: "el", class: %s});
				document.body.append(el);
				el.classList.add(%s);
			`, strconv.Quote(tt.initial), strings.Join(args, ", ")))

			want := html.NewElement("div")
			want.SetAttribute("class", tt.initial)
			dom.AddClass(want, tt.add...)

			got := doc.GetElementByID("el")
			require.NotNil(t, got)
			assert.Equal(t, want.Attributes["class"], got.Attributes["class"])
			assert.Equal(t, want.Attributes["class"], evalString(t, e, `el.classList.value`))
		})
	}
}

func TestClassList_Operations(t *testing.T) {
	doc := parseHTML(t, blankPage)
	e := New(doc)

	got := evalString(t, e, `
		var btn = zenkai.createButton({id: "btn", class: "primary big"});
		document.body.append(btn);
		var cl = btn.classList;
		[
			cl.toggle("active"), cl.toggle("big"), cl.toggle("big", true), cl.toggle("primary", false),
			cl.contains("active"), cl.contains("primary"), cl.replace("active", "on"), cl.replace("gone", "x"),
			cl.length, cl.item(0), cl[1], cl.item(5) === null, cl.value, cl.toString(),
		].join();
	`)
	assert.Equal(t, "true,false,true,false,true,false,true,false,2,on,big,true,on big,on big", got)

	got = evalString(t, e, `
		btn.classList.remove("on", "big");
		[btn.hasAttribute("class"), zenkai.hasClass(btn, "on"), btn.className === ""].join();
	`)
	assert.Equal(t, "false,false,true", got, "removing the last class drops the attribute")

	got = evalString(t, e, `
		btn.classList.value = " x  y x";
		btn.classList.length + "|" + btn.className + "|" + zenkai.hasClass(btn, "x y");
	`)
	assert.Equal(t, "2| x  y x|true", got)

	assert.True(t, throwsTypeError(t, e, `btn.classList.toggle()`))
	assert.True(t, throwsTypeError(t, e, `btn.classList.replace("x")`))
}

func TestDataset_MergesFactoryAndAttributes(t *testing.T) {
	doc := parseHTML(t, blankPage)
	e := New(doc)

	got := evalString(t, e, `
		var card = zenkai.createDiv({id: "card", data: {userId: 7, itemKind: "row", skip: null}});
		document.body.append(card);
		var first = card.dataset.userId;
		card.setAttribute("data-extra", "x");
		card.setAttribute("data-user-id", "8");
		var ds = card.dataset;
		[first, ds.userId, ds.itemKind, ds.extra, "skip" in ds].join();
	`)
	assert.Equal(t, "7,8,row,x,false", got)

	card := doc.GetElementByID("card")
	assert.Equal(t, "8", card.Attributes["data-user-id"])
	assert.Equal(t, "row", card.Attributes["data-item-kind"])
	assert.NotContains(t, card.Attributes, "data-skip", "null entries are not written")
}
