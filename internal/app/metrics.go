package app

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type bookingMetrics struct {
	seatToggles       metric.Int64Counter
	bookingsConfirmed metric.Int64Counter
}

// newBookingMetrics registers the counters on the global meter provider.
// Without a configured provider the counters are no-ops.
func newBookingMetrics() *bookingMetrics {
	meter := otel.Meter(serviceName)

	seatToggles, _ := meter.Int64Counter(
		"cinebook.seat_toggles",
		metric.WithDescription("Seats added to or removed from a booking"),
	)

	bookingsConfirmed, _ := meter.Int64Counter(
		"cinebook.bookings_confirmed",
		metric.WithDescription("Bookings that passed submit"),
	)

	return &bookingMetrics{
		seatToggles:       seatToggles,
		bookingsConfirmed: bookingsConfirmed,
	}
}

func (m *bookingMetrics) seatToggled(ctx context.Context, movie string, selected bool) {
	if m == nil || m.seatToggles == nil {
		return
	}

	m.seatToggles.Add(ctx, 1, metric.WithAttributes(
		attribute.String("movie", movie),
		attribute.Bool("selected", selected),
	))
}

func (m *bookingMetrics) bookingConfirmed(ctx context.Context, movie string, seats int) {
	if m == nil || m.bookingsConfirmed == nil {
		return
	}

	m.bookingsConfirmed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("movie", movie),
		attribute.Int("seats", seats),
	))
}
