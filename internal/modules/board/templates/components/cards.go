package components

import (
	"net/url"
	"strconv"

	"maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/nfrund/signupboard/internal/modules/board/boardview"
)

// ActivitiesList is the #activities-list container: one card per activity,
// or the inline load error.
func ActivitiesList(boardID string, v boardview.View) gomponents.Node {
	if v.LoadError != "" {
		return Div(ID("activities-list"),
			P(Class("error"), gomponents.Text(v.LoadError)),
		)
	}
	return Div(ID("activities-list"),
		gomponents.Map(v.Cards, func(card boardview.Card) gomponents.Node {
			return ActivityCard(boardID, card)
		}),
	)
}

// ActivityCard renders one activity.
func ActivityCard(boardID string, card boardview.Card) gomponents.Node {
	return Div(Class("activity-card"),
		H4(
			gomponents.Text(card.Name),
			Span(Class("participant-count"), gomponents.Text(strconv.Itoa(card.Count))),
			SpotsBadge(card.Badge),
		),
		P(gomponents.Text(card.Description)),
		P(Strong(gomponents.Text("Schedule:")), gomponents.Text(" "+card.Schedule)),
		Div(Class("participants"),
			H5(gomponents.Text("Participants")),
			participantList(boardID, card.Participants),
		),
	)
}

// SpotsBadge renders the capacity badge; nil renders nothing.
func SpotsBadge(b *boardview.Badge) gomponents.Node {
	if b == nil {
		return nil
	}
	class := "spots-badge"
	if b.Full {
		class += " full"
	}
	return Span(Class(class), gomponents.Text(b.Text))
}

func participantList(boardID string, participants []boardview.Participant) gomponents.Node {
	if len(participants) == 0 {
		return Div(Class("empty"), gomponents.Text(boardview.EmptyParticipants))
	}
	return Ul(
		gomponents.Map(participants, func(p boardview.Participant) gomponents.Node {
			return Li(
				Span(Class("participant-email"), gomponents.Text(p.Email)),
				removeControl(boardID, p),
			)
		}),
	)
}

// removeControl is a button that issues an htmx DELETE, wrapped in a form
// that posts to the fallback route when scripts are unavailable.
func removeControl(boardID string, p boardview.Participant) gomponents.Node {
	q := url.Values{"activity": {p.Activity}, "email": {p.Email}}
	return Form(Method("post"), Action(BoardPath(boardID)+"/participants/remove"), Class("remove-form"),
		Input(Type("hidden"), Name("activity"), Value(p.Activity)),
		Input(Type("hidden"), Name("email"), Value(p.Email)),
		Button(Type("submit"), Class("remove-participant"),
			Data("activity", p.Activity),
			Data("email", p.Email),
			gomponents.Attr("aria-label", "Unregister "+p.Email),
			hx.Delete(BoardPath(boardID)+"/participants?"+q.Encode()),
			hx.Target("#board-content"),
			hx.Swap("outerHTML"),
			gomponents.Text("✕"),
		),
	)
}

// BoardPath is the URL path of a board page.
func BoardPath(boardID string) string {
	return "/boards/" + url.PathEscape(boardID)
}
