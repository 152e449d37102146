package mailer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func confirmationData() map[string]any {
	return map[string]any{
		"reference":  "5b7e2d1c",
		"name":       "Grace <Hopper>",
		"movie":      "Barbie",
		"showtime":   "3:00 PM",
		"seats":      "A1, A2",
		"seatCount":  2,
		"totalPrice": "$20",
	}
}

func TestRenderBookingConfirmation(t *testing.T) {
	subject, plainBody, htmlBody, err := render("booking_confirmation.tmpl", confirmationData())
	require.NoError(t, err)

	assert.Equal(t, "Your tickets for Barbie at 3:00 PM", subject)
	assert.Contains(t, plainBody, "Seats:     A1, A2")
	assert.Contains(t, plainBody, "Total:     $20")
	assert.Contains(t, plainBody, "Booking reference: 5b7e2d1c")
	assert.Contains(t, htmlBody, "Grace &lt;Hopper&gt;")
	assert.NotContains(t, htmlBody, "<Hopper>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := render("missing.tmpl", nil)
	assert.Error(t, err)
}

func TestComposeSetsHeaders(t *testing.T) {
	m := NewSMTPMailer("localhost", 2525, "", "", "CineBook <no-reply@cinebook.local>")

	msg, err := m.compose("grace@example.com", "booking_confirmation.tmpl", confirmationData())
	require.NoError(t, err)

	assert.Equal(t, []string{"grace@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Your tickets for Barbie at 3:00 PM"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.True(t, strings.Contains(buf.String(), "text/html"))
}

func TestMockMailer(t *testing.T) {
	m := NewMockMailer()

	require.NoError(t, m.Send("a@b.co", "booking_confirmation.tmpl", nil))

	sent := m.GetSentEmails()
	require.Len(t, sent, 1)
	assert.Equal(t, "a@b.co", sent[0].Recipient)

	sent[0].Recipient = "changed"
	assert.Equal(t, "a@b.co", m.GetSentEmails()[0].Recipient)
}
