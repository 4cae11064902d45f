package components

import (
	"maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/nfrund/signupboard/internal/modules/board/boardview"
)

// PageTitle is the document title of the board page.
const PageTitle = "Mergington High School Activities"

// PageProps is everything the board page needs.
type PageProps struct {
	BoardID string
	View    boardview.View
	Message boardview.Message
	Form    FormValues
}

// Page is the body of the board page. It connects to the board's WebSocket
// so hidden and shown messages arrive without polling.
func Page(p PageProps) gomponents.Node {
	return Main(ID("board"),
		hx.Ext("ws"),
		gomponents.Attr("ws-connect", "/ws"+BoardPath(p.BoardID)),
		Header(
			H1(gomponents.Text("Mergington High School")),
			H2(gomponents.Text("Extracurricular Activities")),
		),
		BoardContent(p.BoardID, p.View, p.Form),
		StatusMessage(p.Message),
	)
}

// BoardContent is the part of the page that htmx requests replace: the
// activity list and the sign-up form with its select options.
func BoardContent(boardID string, v boardview.View, form FormValues) gomponents.Node {
	return Div(ID("board-content"),
		Section(ID("activities-container"),
			H3(gomponents.Text("Available Activities")),
			ActivitiesList(boardID, v),
		),
		Section(ID("signup-container"),
			H3(gomponents.Text("Sign Up for an Activity")),
			SignupForm(boardID, v.Options, form),
		),
	)
}

// BoardUpdate is the htmx response to a submission: the new board content
// plus the status message swapped out of band.
func BoardUpdate(boardID string, v boardview.View, form FormValues, m boardview.Message) gomponents.Node {
	return gomponents.Group{
		BoardContent(boardID, v, form),
		StatusMessageOOB(m),
	}
}
