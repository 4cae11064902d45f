// Package boardview turns an activity collection into what the board page
// shows. Everything here is pure and safe to call concurrently.
package boardview

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/nfrund/signupboard/internal/domain"
)

// User-facing texts.
const (
	MsgMissingInput     = "Please enter your email and select an activity."
	MsgSigningUp        = "Signing up..."
	MsgSignupOK         = "Signed up successfully"
	MsgSignupFailed     = "Signup failed"
	MsgUnregisterOK     = "Unregistered successfully"
	MsgUnregisterFailed = "Unregister failed"
	MsgLoadFailedPrefix = "Could not load activities: "
	PlaceholderOption   = "-- Select an activity --"
	EmptyParticipants   = "No participants yet."
	BadgeFull           = "Full"
)

const spotsAvailableKey = "%d spots available"

var printer = newPrinter()

func newPrinter() *message.Printer {
	cat := catalog.NewBuilder()
	_ = cat.Set(language.English, spotsAvailableKey, plural.Selectf(1, "%d",
		"=1", "%d spot available",
		"other", "%d spots available",
	))
	return message.NewPrinter(language.English, message.Catalog(cat))
}

// View is everything the page shows for one board, derived from the mirror.
type View struct {
	Cards   []Card
	Options []Option
	// LoadError replaces the card list when the initial fetch failed.
	LoadError string
}

// Card is the rendered form of one activity.
type Card struct {
	Name         string
	Description  string
	Schedule     string
	Count        int
	Badge        *Badge
	Participants []Participant
}

// Participant is one row of a card's participant list. It carries the
// activity name so its removal control is self-contained.
type Participant struct {
	Activity string
	Email    string
}

// Badge is the capacity badge of a card.
type Badge struct {
	Text      string
	Full      bool
	Remaining int
}

// Option is one entry of the activity select control.
type Option struct {
	Value string
	Label string
}

// Render derives the view of a collection. It is pure: the same collection
// always yields the same view, in collection order.
func Render(c *domain.Collection) View {
	v := View{Options: []Option{{Value: "", Label: PlaceholderOption}}}
	if c == nil {
		return v
	}

	for _, name := range c.Names() {
		a, _ := c.Get(name)
		v.Cards = append(v.Cards, renderCard(name, a))
		v.Options = append(v.Options, Option{Value: name, Label: name})
	}
	return v
}

// RenderLoadError is the view shown when the initial fetch failed: the
// inline error and a select with only the placeholder.
func RenderLoadError(reason string) View {
	return View{
		Options:   []Option{{Value: "", Label: PlaceholderOption}},
		LoadError: MsgLoadFailedPrefix + reason,
	}
}

func renderCard(name string, a *domain.Activity) Card {
	card := Card{
		Name:         name,
		Description:  a.Description,
		Schedule:     a.Schedule,
		Count:        len(a.Participants),
		Badge:        CapacityBadge(a),
		Participants: make([]Participant, 0, len(a.Participants)),
	}
	for _, email := range a.Participants {
		card.Participants = append(card.Participants, Participant{Activity: name, Email: email})
	}
	return card
}

// CapacityBadge returns the badge for a, or nil when a has no maximum.
func CapacityBadge(a *domain.Activity) *Badge {
	remaining, ok := a.RemainingSpots()
	if !ok {
		return nil
	}
	if remaining == 0 {
		return &Badge{Text: BadgeFull, Full: true}
	}
	return &Badge{
		Text:      printer.Sprintf(spotsAvailableKey, remaining),
		Remaining: remaining,
	}
}
