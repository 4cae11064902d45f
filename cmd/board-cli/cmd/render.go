package cmd

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nfrund/signupboard/internal/modules/board/boardview"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			MarginBottom(1)
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("18"))
	countStyle     = lipgloss.NewStyle().Faint(true)
	openBadgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("28"))
	fullBadgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
	labelStyle     = lipgloss.NewStyle().Bold(true)
	emptyStyle     = lipgloss.NewStyle().Italic(true).Faint(true)

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("28"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
)

// renderCard draws one activity card as a bordered terminal box.
func renderCard(card boardview.Card) string {
	header := titleStyle.Render(card.Name) + " " + countStyle.Render("("+strconv.Itoa(card.Count)+")")
	if card.Badge != nil {
		style := openBadgeStyle
		if card.Badge.Full {
			style = fullBadgeStyle
		}
		header += " " + style.Render("["+card.Badge.Text+"]")
	}

	lines := []string{
		header,
		card.Description,
		labelStyle.Render("Schedule:") + " " + card.Schedule,
		labelStyle.Render("Participants"),
	}
	if len(card.Participants) == 0 {
		lines = append(lines, emptyStyle.Render(boardview.EmptyParticipants))
	}
	for _, p := range card.Participants {
		lines = append(lines, "  - "+p.Email)
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

// renderView draws every card, or the load error.
func renderView(v boardview.View) string {
	if v.LoadError != "" {
		return errorStyle.Render(v.LoadError)
	}
	cards := make([]string, 0, len(v.Cards))
	for _, card := range v.Cards {
		cards = append(cards, renderCard(card))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func renderMessage(m boardview.Message) string {
	switch m.Kind {
	case boardview.KindSuccess:
		return successStyle.Render(m.Text)
	case boardview.KindError:
		return errorStyle.Render(m.Text)
	default:
		return infoStyle.Render(m.Text)
	}
}
