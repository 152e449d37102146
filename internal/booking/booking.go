// Package booking implements the booking flow as a pure state machine. Every
// user action is an Event, and Apply returns the next Booking without
// touching the one it was given.
package booking

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/cinebook/internal/domain"
	"github.com/metinatakli/cinebook/internal/seatmap"
	"github.com/metinatakli/cinebook/internal/validator"
)

type Event interface {
	event()
}

// SelectMovie picks a movie and showtime and enters the seat screen.
type SelectMovie struct {
	MovieID  int
	Showtime string
}

type ToggleSeat struct {
	Seat domain.SeatID
}

type EditContact struct {
	Field domain.ContactField
	Value string
}

type Submit struct{}

// Reset is "start over" from the seat screen.
type Reset struct{}

// BookAnother leaves the confirmation screen for a fresh booking.
type BookAnother struct{}

func (SelectMovie) event() {}
func (ToggleSeat) event()  {}
func (EditContact) event() {}
func (Submit) event()      {}
func (Reset) event()       {}
func (BookAnother) event() {}

type Machine struct {
	catalog domain.MovieCatalog
	seats   *seatmap.Generator
	cinema  domain.CinemaConfig
	now     func() time.Time
	newRef  func() string
}

type Option func(*Machine)

func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

func WithReferenceFunc(fn func() string) Option {
	return func(m *Machine) {
		m.newRef = fn
	}
}

func WithCinema(cfg domain.CinemaConfig) Option {
	return func(m *Machine) {
		m.cinema = cfg
	}
}

func NewMachine(catalog domain.MovieCatalog, seats *seatmap.Generator, opts ...Option) *Machine {
	m := &Machine{
		catalog: catalog,
		seats:   seats,
		cinema:  domain.DefaultCinemaConfig,
		now:     time.Now,
		newRef:  func() string { return uuid.New().String() },
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *Machine) Cinema() domain.CinemaConfig {
	return m.cinema
}

func (m *Machine) Catalog() domain.MovieCatalog {
	return m.catalog
}

// Apply returns the booking that results from ev. On error the returned
// booking is b unchanged.
func (m *Machine) Apply(b domain.Booking, ev Event) (domain.Booking, error) {
	switch ev := ev.(type) {
	case SelectMovie:
		return m.selectMovie(b, ev)
	case ToggleSeat:
		return toggleSeat(b, ev.Seat)
	case EditContact:
		return editContact(b, ev.Field, ev.Value)
	case Submit:
		return m.submit(b)
	case Reset, BookAnother:
		return domain.NewBooking(), nil
	default:
		return b, fmt.Errorf("%w: %T", domain.ErrUnknownEvent, ev)
	}
}

func (m *Machine) selectMovie(b domain.Booking, ev SelectMovie) (domain.Booking, error) {
	if b.Screen == domain.ScreenConfirmation {
		return b, domain.ErrBookingConfirmed
	}

	movie, err := m.catalog.GetById(ev.MovieID)
	if err != nil {
		return b, err
	}

	showtime := strings.TrimSpace(ev.Showtime)
	if showtime == "" {
		return b, domain.ErrShowtimeRequired
	}

	if !movie.HasShowtime(showtime) {
		return b, domain.ErrUnknownShowtime
	}

	seatMap := m.seats.GenerateFor(m.cinema)

	next := b
	next.Screen = domain.ScreenSeatSelection
	next.Movie = &movie
	next.Showtime = showtime
	next.Seats = []domain.SeatID{}
	next.SeatMap = &seatMap
	next.Customer = nil
	next.Confirmation = nil

	return next, nil
}

func toggleSeat(b domain.Booking, seat domain.SeatID) (domain.Booking, error) {
	switch {
	case b.Screen == domain.ScreenConfirmation:
		return b, domain.ErrBookingConfirmed
	case b.Movie == nil || b.SeatMap == nil:
		return b, domain.ErrNoMovieSelected
	case !b.SeatMap.InBounds(seat):
		return b, domain.ErrSeatOutOfRange
	case b.SeatMap.IsOccupied(seat):
		return b, nil
	}

	next := b
	if b.IsSelected(seat) {
		next.Seats = slices.DeleteFunc(slices.Clone(b.Seats), func(s domain.SeatID) bool {
			return s == seat
		})
	} else {
		next.Seats = append(slices.Clone(b.Seats), seat)
	}

	return next, nil
}

func editContact(b domain.Booking, field domain.ContactField, value string) (domain.Booking, error) {
	switch {
	case b.Screen == domain.ScreenConfirmation:
		return b, domain.ErrBookingConfirmed
	case b.Movie == nil:
		return b, domain.ErrNoMovieSelected
	}

	valid, msg, err := validator.Field(field, value)
	if err != nil {
		return b, err
	}

	next := b
	next.Form.Set(field, value)

	next.FieldErrors = maps.Clone(b.FieldErrors)
	if next.FieldErrors == nil {
		next.FieldErrors = make(map[domain.ContactField]string)
	}

	// Blank fields show no error text until the user types something.
	if valid || validator.Trim(value) == "" {
		delete(next.FieldErrors, field)
	} else {
		next.FieldErrors[field] = msg
	}

	if len(next.FieldErrors) == 0 {
		next.FieldErrors = nil
	}

	return next, nil
}

func (m *Machine) submit(b domain.Booking) (domain.Booking, error) {
	if b.Screen == domain.ScreenConfirmation {
		return b, domain.ErrBookingConfirmed
	}

	if b.Movie == nil || !FormValid(b) {
		return b, domain.ErrFormInvalid
	}

	customer := domain.Contact{
		Name:  validator.Trim(b.Form.Name),
		Email: validator.Trim(b.Form.Email),
		Phone: validator.Trim(b.Form.Phone),
	}

	next := b
	next.Screen = domain.ScreenConfirmation
	next.Customer = &customer
	next.Confirmation = &domain.Confirmation{
		Reference:   m.newRef(),
		Customer:    customer,
		MovieTitle:  b.Movie.Title,
		Showtime:    b.Showtime,
		Seats:       slices.Clone(b.Seats),
		TotalSeats:  b.TotalSeats(),
		TotalPrice:  b.TotalPrice(),
		ConfirmedAt: m.now(),
	}

	return next, nil
}

// FormValid reports whether the booking may be submitted.
func FormValid(b domain.Booking) bool {
	return validator.FormValid(b.Form, b.TotalSeats())
}

// PhaseOf derives the booking progress from b.
func PhaseOf(b domain.Booking) domain.Phase {
	switch {
	case b.Screen == domain.ScreenConfirmation && b.Confirmation != nil:
		return domain.PhaseConfirmed
	case b.Movie == nil:
		return domain.PhaseBrowsing
	case FormValid(b):
		return domain.PhaseDetailsValid
	case b.TotalSeats() > 0:
		return domain.PhaseSeatsChosen
	default:
		return domain.PhaseShowtimeChosen
	}
}

// Navigated reports whether going from prev to next switched screens.
func Navigated(prev, next domain.Booking) bool {
	return prev.Screen != next.Screen
}
