package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Screen is the single visible step of the booking flow.
type Screen string

const (
	ScreenCatalog       Screen = "catalog"
	ScreenSeatSelection Screen = "seatSelection"
	ScreenConfirmation  Screen = "confirmation"
)

// Phase is the booking progress derived from a Booking.
type Phase string

const (
	PhaseBrowsing       Phase = "browsing"
	PhaseShowtimeChosen Phase = "showtimeChosen"
	PhaseSeatsChosen    Phase = "seatsChosen"
	PhaseDetailsValid   Phase = "detailsValid"
	PhaseConfirmed      Phase = "confirmed"
)

type ContactField string

const (
	FieldName  ContactField = "name"
	FieldEmail ContactField = "email"
	FieldPhone ContactField = "phone"
)

var ContactFields = []ContactField{FieldName, FieldEmail, FieldPhone}

type Contact struct {
	Name  string `json:"name" validate:"cinema_name"`
	Email string `json:"email" validate:"cinema_email"`
	Phone string `json:"phone" validate:"cinema_phone"`
}

func (c Contact) Get(field ContactField) string {
	switch field {
	case FieldName:
		return c.Name
	case FieldEmail:
		return c.Email
	case FieldPhone:
		return c.Phone
	default:
		return ""
	}
}

func (c *Contact) Set(field ContactField, value string) {
	switch field {
	case FieldName:
		c.Name = value
	case FieldEmail:
		c.Email = value
	case FieldPhone:
		c.Phone = value
	}
}

// Confirmation is the ticket snapshot taken on a successful submit.
type Confirmation struct {
	Reference   string          `json:"reference"`
	Customer    Contact         `json:"customer"`
	MovieTitle  string          `json:"movieTitle"`
	Showtime    string          `json:"showtime"`
	Seats       []SeatID        `json:"seats"`
	TotalSeats  int             `json:"totalSeats"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	ConfirmedAt time.Time       `json:"confirmedAt"`
}

// Booking is the in-progress selection of one browsing session.
//
// Form holds the contact fields as typed; Customer is only set once a
// submit passes validation.
type Booking struct {
	Screen       Screen                  `json:"screen"`
	Movie        *Movie                  `json:"movie,omitempty"`
	Showtime     string                  `json:"showtime,omitempty"`
	Seats        []SeatID                `json:"seats"`
	SeatMap      *SeatMap                `json:"seatMap,omitempty"`
	Form         Contact                 `json:"form"`
	FieldErrors  map[ContactField]string `json:"fieldErrors,omitempty"`
	Customer     *Contact                `json:"customer,omitempty"`
	Confirmation *Confirmation           `json:"confirmation,omitempty"`
}

// NewBooking returns the empty booking shown on the catalog screen.
func NewBooking() Booking {
	return Booking{
		Screen: ScreenCatalog,
		Seats:  []SeatID{},
	}
}

func (b Booking) TotalSeats() int {
	return len(b.Seats)
}

// TotalPrice is always TotalSeats times the unit price of the selected movie.
func (b Booking) TotalPrice() decimal.Decimal {
	if b.Movie == nil {
		return decimal.Zero
	}

	return b.Movie.Price.Mul(decimal.NewFromInt(int64(b.TotalSeats())))
}

func (b Booking) IsSelected(s SeatID) bool {
	for _, v := range b.Seats {
		if v == s {
			return true
		}
	}

	return false
}
