package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/cinebook/api"
	"github.com/metinatakli/cinebook/internal/booking"
	"github.com/metinatakli/cinebook/internal/domain"
	"github.com/metinatakli/cinebook/internal/view"
)

const confirmationTemplate = "booking_confirmation.tmpl"

func (app *Application) GetBooking(w http.ResponseWriter, r *http.Request) {
	b := app.loadBooking(r)

	app.writePage(w, r, b, b)
}

func (app *Application) SelectMovieHandler(w http.ResponseWriter, r *http.Request) {
	var input api.SelectMovieRequest

	err := app.readValidatedJSON(w, r, "SelectMovieRequest", &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	prev, next, ok := app.dispatch(w, r, booking.SelectMovie{
		MovieID:  input.MovieId,
		Showtime: input.Showtime,
	})
	if !ok {
		return
	}

	app.contextGetLogger(r).Info("movie selected",
		"movie_id", input.MovieId, "showtime", next.Showtime,
		"occupied_seats", len(next.SeatMap.Occupied))

	app.writePage(w, r, prev, next)
}

func (app *Application) ToggleSeatHandler(w http.ResponseWriter, r *http.Request) {
	var input api.ToggleSeatRequest

	err := app.readValidatedJSON(w, r, "ToggleSeatRequest", &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	seat := domain.SeatID{Row: *input.Row, Number: *input.Seat}

	prev, next, ok := app.dispatch(w, r, booking.ToggleSeat{Seat: seat})
	if !ok {
		return
	}

	if prev.TotalSeats() != next.TotalSeats() {
		app.metrics.seatToggled(r.Context(), next.Movie.Title, next.IsSelected(seat))
	}

	app.writePage(w, r, prev, next)
}

func (app *Application) EditContactHandler(w http.ResponseWriter, r *http.Request) {
	var input api.EditContactRequest

	err := app.readValidatedJSON(w, r, "EditContactRequest", &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var events []booking.Event

	for _, field := range domain.ContactFields {
		value := contactValue(input, field)
		if value == nil {
			continue
		}

		events = append(events, booking.EditContact{Field: field, Value: *value})
	}

	if len(events) == 0 {
		app.badRequestResponse(w, r, errors.New("body must contain at least one contact field"))
		return
	}

	prev, next, ok := app.dispatch(w, r, events...)
	if !ok {
		return
	}

	app.writePage(w, r, prev, next)
}

func (app *Application) SubmitBookingHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	prev, next, ok := app.dispatch(w, r, booking.Submit{})
	if !ok {
		return
	}

	confirmation := *next.Confirmation

	logger.Info("booking confirmed",
		"reference", confirmation.Reference,
		"movie", confirmation.MovieTitle,
		"showtime", confirmation.Showtime,
		"seats", confirmation.TotalSeats)

	app.metrics.bookingConfirmed(r.Context(), confirmation.MovieTitle, confirmation.TotalSeats)

	app.background(func() {
		data := map[string]any{
			"reference":  confirmation.Reference,
			"name":       confirmation.Customer.Name,
			"movie":      confirmation.MovieTitle,
			"showtime":   confirmation.Showtime,
			"seats":      domain.SeatLabels(confirmation.Seats),
			"seatCount":  confirmation.TotalSeats,
			"totalPrice": view.Money(confirmation.TotalPrice),
		}

		err := app.mailer.Send(confirmation.Customer.Email, confirmationTemplate, data)
		if err != nil {
			logger.Error("failed to send booking confirmation", "reference", confirmation.Reference, "error", err)
		} else {
			logger.Info("booking confirmation sent", "reference", confirmation.Reference)
		}
	})

	app.writePage(w, r, prev, next)
}

func (app *Application) ResetBookingHandler(w http.ResponseWriter, r *http.Request) {
	prev, next, ok := app.dispatch(w, r, booking.Reset{})
	if !ok {
		return
	}

	app.writePage(w, r, prev, next)
}

func (app *Application) BookAnotherHandler(w http.ResponseWriter, r *http.Request) {
	prev, next, ok := app.dispatch(w, r, booking.BookAnother{})
	if !ok {
		return
	}

	app.writePage(w, r, prev, next)
}

// dispatch applies events in order to the session booking and stores the
// result. If any event is rejected nothing is stored, an error response is
// written and ok is false.
func (app *Application) dispatch(w http.ResponseWriter, r *http.Request, events ...booking.Event) (prev, next domain.Booking, ok bool) {
	prev = app.loadBooking(r)
	next = prev

	for _, ev := range events {
		var err error

		next, err = app.machine.Apply(next, ev)
		if err != nil {
			app.contextGetLogger(r).Warn("booking event rejected", "event", eventName(ev), "error", err)
			app.bookingErrorResponse(w, r, err)

			return prev, prev, false
		}
	}

	err := app.saveBooking(r, next)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return prev, prev, false
	}

	return prev, next, true
}

func (app *Application) writePage(w http.ResponseWriter, r *http.Request, prev, next domain.Booking) {
	var resp api.PageResponse = view.Render(prev, next, app.machine.Catalog().GetAll())

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func contactValue(input api.EditContactRequest, field domain.ContactField) *string {
	switch field {
	case domain.FieldName:
		return input.Name
	case domain.FieldEmail:
		return input.Email
	case domain.FieldPhone:
		return input.Phone
	default:
		return nil
	}
}

func eventName(ev booking.Event) string {
	switch ev.(type) {
	case booking.SelectMovie:
		return "select_movie"
	case booking.ToggleSeat:
		return "toggle_seat"
	case booking.EditContact:
		return "edit_contact"
	case booking.Submit:
		return "submit"
	case booking.Reset:
		return "reset"
	case booking.BookAnother:
		return "book_another"
	default:
		return "unknown"
	}
}
