package components

import (
	"maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/nfrund/signupboard/internal/modules/board/boardview"
)

// StatusMessage is the #message element.
func StatusMessage(m boardview.Message) gomponents.Node {
	return Div(ID("message"), Class(messageClass(m)), Role("status"),
		gomponents.Text(m.Text),
	)
}

// StatusMessageOOB is StatusMessage marked for an out-of-band swap, for
// htmx responses and WebSocket pushes.
func StatusMessageOOB(m boardview.Message) gomponents.Node {
	return Div(ID("message"), Class(messageClass(m)), Role("status"),
		hx.SwapOOB("true"),
		gomponents.Text(m.Text),
	)
}

func messageClass(m boardview.Message) string {
	class := "message"
	if m.Kind != "" {
		class += " " + string(m.Kind)
	}
	if !m.Visible {
		class += " hidden"
	}
	return class
}
