package app

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/metinatakli/cinebook/internal/domain"
)

type sessionKey string

const (
	SessionKeyBooking = sessionKey("booking")
)

func (s sessionKey) String() string {
	return string(s)
}

// loadBooking reads the visitor's booking. A missing or unreadable entry
// yields a fresh booking.
func (app *Application) loadBooking(r *http.Request) domain.Booking {
	data := app.sessionManager.GetBytes(r.Context(), SessionKeyBooking.String())
	if len(data) == 0 {
		return domain.NewBooking()
	}

	var b domain.Booking

	err := json.Unmarshal(data, &b)
	if err != nil {
		app.contextGetLogger(r).Warn("discarding booking session",
			"error", fmt.Errorf("%w: %w", domain.ErrSessionStateBroken, err))

		return domain.NewBooking()
	}

	if b.Seats == nil {
		b.Seats = []domain.SeatID{}
	}

	return b
}

func (app *Application) saveBooking(r *http.Request, b domain.Booking) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to encode booking: %w", err)
	}

	app.sessionManager.Put(r.Context(), SessionKeyBooking.String(), data)

	return nil
}
