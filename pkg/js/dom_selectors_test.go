package js

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const signupForm = `
	document.body.append(zenkai.createForm({id: "signup"},
		zenkai.createFieldset({class: "group"},
			zenkai.createLabel({for: "email"}, "Email"),
			zenkai.createInput({id: "email", name: "email", type: "email"})),
		zenkai.createFieldset({class: "group extra"},
			zenkai.createInput({id: "agree", type: "checkbox", checked: true})),
		zenkai.createButton({id: "go", type: "submit", class: "primary"}, "Go")));
`

func TestSelectors_DocumentQueries(t *testing.T) {
	e := run(t, parseHTML(t, blankPage), signupForm)

	got := evalString(t, e, `[
		document.querySelector("#signup .primary").id,
		document.querySelectorAll("input, button").length,
		document.querySelectorAll("fieldset.group").length,
		document.querySelector('input[type="checkbox"]').id,
		document.querySelector("fieldset:first-child input").id,
		document.querySelector("fieldset:last-child") === null,
		document.querySelector(".missing") === null,
		document.querySelectorAll(".missing").length,
	].join()`)
	assert.Equal(t, "go,3,2,agree,email,true,true,0", got)
}

func TestSelectors_ElementScoped(t *testing.T) {
	e := run(t, parseHTML(t, blankPage), signupForm)

	got := evalString(t, e, `
		var form = document.getElementById("signup");
		var agree = zenkai.getElement("agree");
		[
			form.querySelectorAll("input").length,
			form.querySelector("label").textContent,
			agree.matches("fieldset.extra > input"),
			agree.matches("#email, [checked]"),
			agree.closest("fieldset").className,
			agree.closest("form") === form,
			agree.closest("#agree") === agree,
			agree.closest("section") === null,
			form.getElementsByTagName("fieldset").length,
			document.getElementsByClassName("group extra").length,
			zenkai.getElements("fieldset.group")[1] === form.querySelectorAll(".group")[1],
		].join();
	`)
	assert.Equal(t, "2,Email,true,true,group extra,true,true,true,2,1,true", got)
}

func TestSelectors_MissingArgumentThrows(t *testing.T) {
	e := run(t, parseHTML(t, blankPage), signupForm)

	for _, script := range []string{
		`document.querySelector()`,
		`document.querySelectorAll()`,
		`zenkai.getElement("go").matches()`,
		`zenkai.getElement("go").closest()`,
	} {
		assert.True(t, throwsTypeError(t, e, script), script)
	}
}
