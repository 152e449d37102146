// Package view projects a Booking into the display models of each screen.
// The functions are pure; painting them is left to the HTTP and terminal
// adapters.
package view

import (
	"github.com/metinatakli/cinebook/internal/booking"
	"github.com/metinatakli/cinebook/internal/domain"
	"github.com/shopspring/decimal"
)

type SeatClass string

const (
	SeatAvailable SeatClass = "available"
	SeatOccupied  SeatClass = "occupied"
	SeatSelected  SeatClass = "selected"
)

type MovieCard struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Genre      string   `json:"genre"`
	Duration   string   `json:"duration"`
	Poster     string   `json:"poster"`
	PriceLabel string   `json:"priceLabel"`
	Showtimes  []string `json:"showtimes"`
}

type SelectedMovie struct {
	Title      string `json:"title"`
	Genre      string `json:"genre"`
	Duration   string `json:"duration"`
	Showtime   string `json:"showtime"`
	PriceLabel string `json:"priceLabel"`
}

type Seat struct {
	Row    int       `json:"row"`
	Number int       `json:"seat"`
	Label  string    `json:"label"`
	Class  SeatClass `json:"class"`
}

type SeatRow struct {
	Label string `json:"label"`
	Seats []Seat `json:"seats"`
}

type Summary struct {
	SeatCount  int    `json:"seatCount"`
	TotalPrice string `json:"totalPrice"`
}

type FormField struct {
	Name    domain.ContactField `json:"name"`
	Value   string              `json:"value"`
	Error   string              `json:"error,omitempty"`
	Invalid bool                `json:"invalid"`
}

type Form struct {
	Fields        []FormField `json:"fields"`
	SubmitEnabled bool        `json:"submitEnabled"`
}

type Ticket struct {
	Reference  string `json:"reference"`
	Name       string `json:"name"`
	Movie      string `json:"movie"`
	Showtime   string `json:"showtime"`
	Seats      string `json:"seats"`
	SeatCount  int    `json:"seatCount"`
	TotalPrice string `json:"totalPrice"`
}

// Page is the visible screen with only the fragments that screen shows.
type Page struct {
	Screen    domain.Screen  `json:"screen"`
	Phase     domain.Phase   `json:"phase"`
	ScrollTop bool           `json:"scrollTop"`
	Movies    []MovieCard    `json:"movies,omitempty"`
	Selected  *SelectedMovie `json:"selectedMovie,omitempty"`
	SeatRows  []SeatRow      `json:"seatRows,omitempty"`
	Summary   *Summary       `json:"summary,omitempty"`
	Form      *Form          `json:"form,omitempty"`
	Ticket    *Ticket        `json:"ticket,omitempty"`
}

// Money formats an amount the way the booking screens show it: "$20",
// "$10.50".
func Money(d decimal.Decimal) string {
	if d.IsInteger() {
		return "$" + d.String()
	}

	return "$" + d.StringFixed(2)
}

func Card(m domain.Movie) MovieCard {
	return MovieCard{
		ID:         m.ID,
		Title:      m.Title,
		Genre:      m.Genre,
		Duration:   m.Duration,
		Poster:     m.Poster,
		PriceLabel: Money(m.Price) + " / ticket",
		Showtimes:  append([]string(nil), m.Showtimes...),
	}
}

func Catalog(movies []domain.Movie) []MovieCard {
	cards := make([]MovieCard, len(movies))
	for i, m := range movies {
		cards[i] = Card(m)
	}

	return cards
}

func Selected(b domain.Booking) *SelectedMovie {
	if b.Movie == nil {
		return nil
	}

	return &SelectedMovie{
		Title:      b.Movie.Title,
		Genre:      b.Movie.Genre,
		Duration:   b.Movie.Duration,
		Showtime:   b.Showtime,
		PriceLabel: Money(b.Movie.Price) + " per ticket",
	}
}

// SeatGrid lays out the hall row by row; nil when no seat map is loaded.
func SeatGrid(b domain.Booking) []SeatRow {
	if b.SeatMap == nil {
		return nil
	}

	selected := make(map[domain.SeatID]bool, len(b.Seats))
	for _, s := range b.Seats {
		selected[s] = true
	}

	rows := make([]SeatRow, b.SeatMap.Rows)
	for r := range rows {
		rows[r] = SeatRow{
			Label: domain.RowLabel(r),
			Seats: make([]Seat, b.SeatMap.PerRow),
		}

		for n := range rows[r].Seats {
			id := domain.SeatID{Row: r, Number: n}

			class := SeatAvailable
			switch {
			case b.SeatMap.IsOccupied(id):
				class = SeatOccupied
			case selected[id]:
				class = SeatSelected
			}

			rows[r].Seats[n] = Seat{Row: r, Number: n, Label: id.Label(), Class: class}
		}
	}

	return rows
}

func BookingSummary(b domain.Booking) Summary {
	return Summary{
		SeatCount:  b.TotalSeats(),
		TotalPrice: Money(b.TotalPrice()),
	}
}

func ContactForm(b domain.Booking) Form {
	fields := make([]FormField, len(domain.ContactFields))
	for i, f := range domain.ContactFields {
		msg := b.FieldErrors[f]
		fields[i] = FormField{
			Name:    f,
			Value:   b.Form.Get(f),
			Error:   msg,
			Invalid: msg != "",
		}
	}

	return Form{
		Fields:        fields,
		SubmitEnabled: booking.FormValid(b),
	}
}

// BookingTicket renders the confirmation; nil before a successful submit.
func BookingTicket(b domain.Booking) *Ticket {
	c := b.Confirmation
	if c == nil {
		return nil
	}

	return &Ticket{
		Reference:  c.Reference,
		Name:       c.Customer.Name,
		Movie:      c.MovieTitle,
		Showtime:   c.Showtime,
		Seats:      domain.SeatLabels(c.Seats),
		SeatCount:  c.TotalSeats,
		TotalPrice: Money(c.TotalPrice),
	}
}

// Render builds the page for the screen b is on. prev is the booking before
// the last event and only decides ScrollTop.
func Render(prev, b domain.Booking, movies []domain.Movie) Page {
	page := Page{
		Screen:    b.Screen,
		Phase:     booking.PhaseOf(b),
		ScrollTop: booking.Navigated(prev, b),
	}

	switch b.Screen {
	case domain.ScreenSeatSelection:
		summary := BookingSummary(b)
		form := ContactForm(b)

		page.Selected = Selected(b)
		page.SeatRows = SeatGrid(b)
		page.Summary = &summary
		page.Form = &form
	case domain.ScreenConfirmation:
		page.Ticket = BookingTicket(b)
	default:
		page.Movies = Catalog(movies)
	}

	return page
}
