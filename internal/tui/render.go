package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/metinatakli/cinebook/internal/domain"
	"github.com/metinatakli/cinebook/internal/view"
)

var fieldLabels = map[domain.ContactField]string{
	domain.FieldName:  "Name",
	domain.FieldEmail: "Email",
	domain.FieldPhone: "Phone",
}

func (model Model) View() string {
	var b strings.Builder

	b.WriteString(model.styles.title.Render("🎬 CineBook"))
	b.WriteString("\n")
	b.WriteString(model.viewport.View())
	b.WriteString("\n")
	b.WriteString(model.statusLine())
	b.WriteString("\n")
	b.WriteString(model.help.ShortHelpView(model.helpBindings()))

	return b.String()
}

func (model Model) statusLine() string {
	if model.notice != "" {
		return model.styles.notice.Render("! " + model.notice)
	}

	if model.page.Summary != nil {
		return model.styles.faint.Render(fmt.Sprintf("%d seat(s) · %s", model.page.Summary.SeatCount, model.page.Summary.TotalPrice))
	}

	return ""
}

func (model Model) helpBindings() []key.Binding {
	switch {
	case model.booking.Screen == domain.ScreenCatalog:
		return model.keys.catalogHelp()
	case model.booking.Screen == domain.ScreenConfirmation:
		return model.keys.confirmationHelp()
	case model.focus == focusForm:
		return model.keys.formHelp()
	default:
		return model.keys.seatHelp()
	}
}

func (model Model) renderPage() string {
	switch model.page.Screen {
	case domain.ScreenSeatSelection:
		return model.renderSeatSelection()
	case domain.ScreenConfirmation:
		return model.renderConfirmation()
	default:
		return model.renderCatalog()
	}
}

func (model Model) renderCatalog() string {
	s := model.styles
	var b strings.Builder

	b.WriteString(s.heading.Render("Now Showing"))
	b.WriteString("\n\n")

	for i, card := range model.page.Movies {
		pointer := "  "
		title := s.normal.Render(card.Poster + " " + card.Title)
		if i == model.movieCursor {
			pointer = s.cursor.Render("▸ ")
			title = s.cursor.Render(card.Poster + " " + card.Title)
		}

		b.WriteString(pointer + title + "\n")
		b.WriteString("    " + s.faint.Render(card.Genre+" · "+card.Duration+" · "+card.PriceLabel) + "\n")

		chips := make([]string, len(card.Showtimes))
		for j, showtime := range card.Showtimes {
			if i == model.movieCursor && j == model.showtimeCursor {
				chips[j] = s.chipActive.Render(showtime)
			} else {
				chips[j] = s.chip.Render(showtime)
			}
		}

		b.WriteString("    " + lipgloss.JoinHorizontal(lipgloss.Top, chips...) + "\n\n")
	}

	return b.String()
}

func (model Model) renderSeatSelection() string {
	s := model.styles
	page := model.page
	var b strings.Builder

	if page.Selected != nil {
		b.WriteString(s.heading.Render(page.Selected.Title))
		b.WriteString("\n")
		b.WriteString(s.faint.Render(strings.Join([]string{
			page.Selected.Genre, page.Selected.Duration, page.Selected.Showtime, page.Selected.PriceLabel,
		}, " · ")))
		b.WriteString("\n\n")
	}

	gridWidth := 3
	if len(page.SeatRows) > 0 {
		gridWidth += 3 * len(page.SeatRows[0].Seats)
	}

	b.WriteString(s.screen.Width(gridWidth).Render("━━━━ SCREEN ━━━━"))
	b.WriteString("\n\n")

	for _, row := range page.SeatRows {
		b.WriteString(s.faint.Render(fmt.Sprintf("%-2s ", row.Label)))

		for _, seat := range row.Seats {
			glyph := s.seats[seat.Class].Render("■")

			if model.focus == focusSeats && seat.Row == model.seatCursor.Row && seat.Number == model.seatCursor.Number {
				b.WriteString(s.cursor.Render("[") + glyph + s.cursor.Render("]"))
			} else {
				b.WriteString(" " + glyph + " ")
			}
		}

		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(strings.Join([]string{
		s.seats[view.SeatAvailable].Render("■") + s.faint.Render(" available"),
		s.seats[view.SeatSelected].Render("■") + s.faint.Render(" selected"),
		s.seats[view.SeatOccupied].Render("■") + s.faint.Render(" occupied"),
	}, "   "))
	b.WriteString("\n\n")

	if page.Summary != nil {
		b.WriteString(s.normal.Render(fmt.Sprintf("Selected seats: %d   Total: %s", page.Summary.SeatCount, page.Summary.TotalPrice)))
		b.WriteString("\n\n")
	}

	if page.Form != nil {
		b.WriteString(model.renderForm(*page.Form))
	}

	return b.String()
}

func (model Model) renderForm(form view.Form) string {
	s := model.styles
	var b strings.Builder

	b.WriteString(s.heading.Render("Your details"))
	b.WriteString("\n")

	for i, field := range form.Fields {
		label := fmt.Sprintf("%-6s", fieldLabels[field.Name])
		if model.focus == focusForm && model.field == i {
			label = s.cursor.Render(label)
		} else {
			label = s.faint.Render(label)
		}

		b.WriteString(label + " " + model.inputs[i].View() + "\n")

		if field.Error != "" {
			b.WriteString("       " + s.fieldError.Render(field.Error) + "\n")
		}
	}

	b.WriteString("\n")

	if form.SubmitEnabled {
		b.WriteString(s.buttonOn.Render("Confirm Booking"))
	} else {
		b.WriteString(s.buttonOff.Render("Confirm Booking"))
	}

	b.WriteString("\n")

	return b.String()
}

func (model Model) renderConfirmation() string {
	s := model.styles
	ticket := model.page.Ticket
	if ticket == nil {
		return ""
	}

	lines := []string{
		s.title.Render("Booking Confirmed!"),
		"",
		fmt.Sprintf("Name:      %s", ticket.Name),
		fmt.Sprintf("Movie:     %s", ticket.Movie),
		fmt.Sprintf("Showtime:  %s", ticket.Showtime),
		fmt.Sprintf("Seats:     %s", ticket.Seats),
		fmt.Sprintf("Tickets:   %d", ticket.SeatCount),
		fmt.Sprintf("Total:     %s", ticket.TotalPrice),
		"",
		s.faint.Render("Reference " + ticket.Reference),
	}

	return s.ticket.Render(strings.Join(lines, "\n")) + "\n"
}
