package js

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraversal_ChildrenAndSiblings(t *testing.T) {
	e := New(parseHTML(t, blankPage))

	got := evalString(t, e, `
		var list = zenkai.createUnorderedList({id: "list"},
			"lead", zenkai.createListItem({id: "a"}, "A"), " ",
			zenkai.createListItem({id: "b"}, "B"), zenkai.createListItem({id: "c"}, "C"), "tail");
		document.body.appendChild(list);
		var a = document.getElementById("a"), b = document.getElementById("b"), c = document.getElementById("c");
		[
			list.firstChild.nodeValue, list.lastChild.nodeValue,
			list.firstElementChild.id, list.lastElementChild.id,
			list.childNodes.length, list.children.length, list.childElementCount,
			a.nextSibling.nodeType, a.nextElementSibling.id, b.previousElementSibling.id,
			c.nextElementSibling === null, a.previousSibling.nodeValue,
			a.parentElement === list, list.parentNode === document.body,
		].join("|");
	`)
	assert.Equal(t, "lead|tail|a|c|6|3|3|3|b|a|true|lead|true|true", got)

	got = evalString(t, e, `
		var empty = zenkai.createDiv();
		[empty.firstChild, empty.lastChild, empty.firstElementChild, empty.nextSibling, empty.parentNode].every(function (v) { return v === null; });
	`)
	assert.Equal(t, "true", got, "detached empty elements have no relatives")
}

func TestTraversal_DocumentProperties(t *testing.T) {
	doc := parseHTML(t, `<html><head><title>t</title></head><body><main id="m"></main></body></html>`)
	e := New(doc)

	got := evalString(t, e, `[
		document.body.tagName, document.head.tagName, document.documentElement.tagName,
		document.body.parentElement === document.documentElement,
		document.documentElement.parentElement === null,
		document.head.nextElementSibling === document.body,
	].join()`)
	assert.Equal(t, "BODY,HEAD,HTML,true,true,true", got)

	got = evalString(t, e, `
		var old = document.body;
		var fresh = zenkai.createElement("body", {id: "fresh"});
		old.replaceWith(fresh);
		[document.body.id, document.body === fresh, old.parentNode === null].join();
	`)
	assert.Equal(t, "fresh,true,true", got, "document.body follows a replaced body")
	assert.Equal(t, "fresh", doc.Body().Attributes["id"])
}

func TestTraversal_CloneAndContains(t *testing.T) {
	e := New(parseHTML(t, blankPage))

	got := evalString(t, e, `
		var card = zenkai.createArticle({id: "card", data: {kind: "note"}}, zenkai.createParagraph(null, "body"));
		document.body.append(card);
		var shallow = card.cloneNode(false), deep = card.cloneNode(true);
		[
			shallow.hasChildNodes(), deep.hasChildNodes(), deep.dataset.kind,
			deep.firstElementChild.textContent, deep.parentNode === null,
			card.contains(card.firstChild), card.contains(deep.firstChild),
			document.body.contains(card), card.contains(null),
		].join();
	`)
	assert.Equal(t, "false,true,note,body,true,true,false,true,false", got)
}
