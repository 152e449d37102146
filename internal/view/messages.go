package view

import (
	"errors"

	"github.com/metinatakli/cinebook/internal/domain"
)

const (
	MsgShowtimeRequired = "Please select a showtime first!"
	MsgFormInvalid      = "Please fill in all required fields correctly and select at least one seat."
)

var messages = []struct {
	err error
	msg string
}{
	{domain.ErrShowtimeRequired, MsgShowtimeRequired},
	{domain.ErrFormInvalid, MsgFormInvalid},
}

// Message returns the text shown to the user for a rejected booking event.
// Errors without a dedicated wording are shown as they are.
func Message(err error) string {
	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}

	return err.Error()
}
