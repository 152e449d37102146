package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/metinatakli/cinebook/internal/view"
)

// Theme is the TUI palette in ANSI 256-color codes.
type Theme struct {
	Accent      lipgloss.Color
	NormalText  lipgloss.Color
	FaintText   lipgloss.Color
	ErrorText   lipgloss.Color
	SeatFree    lipgloss.Color
	SeatTaken   lipgloss.Color
	SeatChosen  lipgloss.Color
	ButtonOn    lipgloss.Color
	ButtonOff   lipgloss.Color
	BorderColor lipgloss.Color
}

var DefaultTheme = Theme{
	Accent:      lipgloss.Color("212"),
	NormalText:  lipgloss.Color("252"),
	FaintText:   lipgloss.Color("243"),
	ErrorText:   lipgloss.Color("203"),
	SeatFree:    lipgloss.Color("78"),
	SeatTaken:   lipgloss.Color("238"),
	SeatChosen:  lipgloss.Color("39"),
	ButtonOn:    lipgloss.Color("212"),
	ButtonOff:   lipgloss.Color("240"),
	BorderColor: lipgloss.Color("99"),
}

type styles struct {
	title      lipgloss.Style
	heading    lipgloss.Style
	normal     lipgloss.Style
	faint      lipgloss.Style
	cursor     lipgloss.Style
	chip       lipgloss.Style
	chipActive lipgloss.Style
	fieldError lipgloss.Style
	notice     lipgloss.Style
	screen     lipgloss.Style
	buttonOn   lipgloss.Style
	buttonOff  lipgloss.Style
	ticket     lipgloss.Style
	seats      map[view.SeatClass]lipgloss.Style
}

func newStyles(theme Theme) styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		heading:    lipgloss.NewStyle().Bold(true).Foreground(theme.NormalText),
		normal:     lipgloss.NewStyle().Foreground(theme.NormalText),
		faint:      lipgloss.NewStyle().Foreground(theme.FaintText),
		cursor:     lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		chip:       lipgloss.NewStyle().Foreground(theme.FaintText).Padding(0, 1),
		chipActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(theme.Accent).Padding(0, 1),
		fieldError: lipgloss.NewStyle().Foreground(theme.ErrorText),
		notice:     lipgloss.NewStyle().Bold(true).Foreground(theme.ErrorText),
		screen:     lipgloss.NewStyle().Foreground(theme.FaintText).Align(lipgloss.Center),
		buttonOn:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(theme.ButtonOn).Padding(0, 2),
		buttonOff:  lipgloss.NewStyle().Foreground(theme.ButtonOff).Padding(0, 2),
		ticket: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.BorderColor).
			Padding(1, 3),
		seats: map[view.SeatClass]lipgloss.Style{
			view.SeatAvailable: lipgloss.NewStyle().Foreground(theme.SeatFree),
			view.SeatOccupied:  lipgloss.NewStyle().Foreground(theme.SeatTaken),
			view.SeatSelected:  lipgloss.NewStyle().Bold(true).Foreground(theme.SeatChosen),
		},
	}
}
