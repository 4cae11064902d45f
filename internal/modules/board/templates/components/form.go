package components

import (
	"maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/nfrund/signupboard/internal/modules/board/boardview"
)

// FormValues are the values the sign-up form is rendered with.
type FormValues struct {
	Email    string
	Activity string
}

// SignupForm is the #signup-form. It posts through htmx and falls back to a
// plain form post.
func SignupForm(boardID string, options []boardview.Option, values FormValues) gomponents.Node {
	action := BoardPath(boardID) + "/signup"
	return Form(ID("signup-form"), Method("post"), Action(action),
		hx.Post(action),
		hx.Target("#board-content"),
		hx.Swap("outerHTML"),
		hx.Indicator("#signup-indicator"),
		Div(Class("form-group"),
			Label(For("email"), gomponents.Text("Student Email:")),
			Input(Type("email"), ID("email"), Name("email"), Required(),
				Placeholder("your-email@mergington.edu"), Value(values.Email)),
		),
		Div(Class("form-group"),
			Label(For("activity"), gomponents.Text("Activity:")),
			Select(ID("activity"), Name("activity"), Required(),
				gomponents.Map(options, func(o boardview.Option) gomponents.Node {
					return Option(Value(o.Value),
						gomponents.If(o.Value != "" && o.Value == values.Activity, Selected()),
						gomponents.Text(o.Label),
					)
				}),
			),
		),
		Button(Type("submit"), gomponents.Text("Sign Up")),
		Span(ID("signup-indicator"), Class("htmx-indicator message info"),
			gomponents.Text(boardview.MsgSigningUp)),
	)
}
