package domain

import "errors"

var (
	ErrMovieNotFound      = errors.New("movie not found")
	ErrShowtimeRequired   = errors.New("showtime is required")
	ErrUnknownShowtime    = errors.New("the selected showtime is not offered for this movie")
	ErrNoMovieSelected    = errors.New("select a movie and showtime before choosing seats")
	ErrSeatOutOfRange     = errors.New("seat is outside the hall")
	ErrUnknownField       = errors.New("unknown contact field")
	ErrFormInvalid        = errors.New("contact details are invalid or no seat is selected")
	ErrBookingConfirmed   = errors.New("booking is already confirmed, start over to book again")
	ErrUnknownEvent       = errors.New("unknown booking event")
	ErrSessionStateBroken = errors.New("booking state in session is unreadable")
)
