package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/metinatakli/cinebook/api"
	"github.com/metinatakli/cinebook/internal/booking"
	"github.com/metinatakli/cinebook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cinema  domain.CinemaConfig
		wantErr string
	}{
		{"default hall", domain.DefaultCinemaConfig, ""},
		{"no rows", domain.CinemaConfig{Rows: 0, SeatsPerRow: 12}, "rows must be between 1 and 26"},
		{"too many rows", domain.CinemaConfig{Rows: 27, SeatsPerRow: 12}, "rows must be between 1 and 26"},
		{"no seats", domain.CinemaConfig{Rows: 8, SeatsPerRow: 0}, "seats-per-row must be positive"},
		{"full hall", domain.CinemaConfig{Rows: 8, SeatsPerRow: 12, OccupiedFraction: 1}, "occupied-fraction"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Cinema = tt.cinema

			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFailedValidationResponse(t *testing.T) {
	app := newTestApplication(t)

	err := app.validator.Struct(api.ToggleSeatRequest{Row: ptr(-1)})
	require.Error(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/v1/booking/seats", nil)

	app.failedValidationResponse(w, r, err)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp api.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	issues := map[string]string{}
	for _, v := range resp.ValidationErrors {
		issues[v.Field] = v.Issue
	}

	assert.Equal(t, "must be at least 0", issues["Row"])
	assert.Equal(t, "is required", issues["Seat"])
}

func TestRecoverPanic(t *testing.T) {
	app := newTestApplication(t)

	handler := app.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "close", w.Header().Get("Connection"))
}

func TestLoadBookingDiscardsUnreadableState(t *testing.T) {
	app := newTestApplication(t)

	ctx, err := app.sessionManager.Load(context.Background(), "")
	require.NoError(t, err)

	app.sessionManager.Put(ctx, SessionKeyBooking.String(), []byte("{not json"))

	r := httptest.NewRequest(http.MethodGet, "/v1/booking", nil).WithContext(ctx)

	b := app.loadBooking(r)

	assert.Equal(t, domain.ScreenCatalog, b.Screen)
	assert.Empty(t, b.Seats)
}

func TestSaveAndLoadBooking(t *testing.T) {
	app := newTestApplication(t)

	ctx, err := app.sessionManager.Load(context.Background(), "")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/v1/booking", nil).WithContext(ctx)

	b, err := app.machine.Apply(domain.NewBooking(), booking.SelectMovie{MovieID: 2, Showtime: "3:00 PM"})
	require.NoError(t, err)
	b.Seats = []domain.SeatID{{Row: 2, Number: 5}}

	require.NoError(t, app.saveBooking(r, b))

	got := app.loadBooking(r)
	assert.Equal(t, "Barbie", got.Movie.Title)
	assert.Equal(t, b.Seats, got.Seats)
	assert.Equal(t, b.SeatMap.Rows, got.SeatMap.Rows)
	assert.True(t, got.TotalPrice().Equal(b.TotalPrice()))
}

func TestMultiHandler(t *testing.T) {
	var info, debug bytes.Buffer

	logger := slog.New(NewMultiHandler(
		slog.NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)).With("request_id", "abc").WithGroup("booking")

	logger.Debug("seat toggled", "seat", "A1")
	logger.Info("booking confirmed", "seats", 2)

	assert.NotContains(t, info.String(), "seat toggled")
	assert.Contains(t, info.String(), "booking.seats=2")
	assert.Contains(t, debug.String(), "booking.seat=A1")
	assert.Equal(t, 2, strings.Count(debug.String(), "request_id=abc"))
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("CINEBOOK_TEST_PORT", "8080")
	t.Setenv("CINEBOOK_TEST_BAD", "eighty")

	assert.Equal(t, 8080, envInt("CINEBOOK_TEST_PORT", 3000))
	assert.Equal(t, 3000, envInt("CINEBOOK_TEST_BAD", 3000))
	assert.Equal(t, 3000, envInt("CINEBOOK_TEST_MISSING", 3000))
	assert.Equal(t, "dev", envString("CINEBOOK_TEST_MISSING", "dev"))
}
