package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/metinatakli/cinebook/api"
	"github.com/metinatakli/cinebook/internal/booking"
	"github.com/metinatakli/cinebook/internal/catalog"
	"github.com/metinatakli/cinebook/internal/domain"
	"github.com/metinatakli/cinebook/internal/mailer"
	"github.com/metinatakli/cinebook/internal/seatmap"
	"github.com/metinatakli/cinebook/internal/validator"
	"github.com/stretchr/testify/require"
)

const testReference = "5b7e2d1c-0f3a-4c6e-9d8b-2a1f4e6c8b90"

var testNow = time.Date(2026, 10, 15, 19, 30, 0, 0, time.UTC)

func testConfig() Config {
	return Config{
		Port: 3000,
		Env:  "test",
		Cinema: domain.CinemaConfig{
			Rows:             domain.DefaultCinemaConfig.Rows,
			SeatsPerRow:      domain.DefaultCinemaConfig.SeatsPerRow,
			OccupiedFraction: 0,
		},
		Session: SessionConfig{
			IdleTimeout: 20 * time.Minute,
			Lifetime:    time.Hour,
			CookieName:  "session_id",
		},
	}
}

// newTestApplication builds an app on the in-memory session store with an
// empty hall, a fixed clock and a fixed booking reference.
func newTestApplication(t *testing.T, opts ...func(*Application)) *Application {
	t.Helper()

	cfg := testConfig()

	sessionManager, closeStore, err := NewSessionManager(cfg)
	require.NoError(t, err)
	t.Cleanup(closeStore)

	spec, err := api.LoadSpec()
	require.NoError(t, err)

	machine := booking.NewMachine(
		catalog.Default(),
		seatmap.NewSeeded(42),
		booking.WithCinema(cfg.Cinema),
		booking.WithClock(func() time.Time { return testNow }),
		booking.WithReferenceFunc(func() string { return testReference }),
	)

	app := NewApp(
		cfg,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		machine,
		validator.NewValidator(),
		mailer.NewMockMailer(),
		sessionManager,
		spec,
	)

	for _, opt := range opts {
		opt(app)
	}

	return app
}

type testClient struct {
	t      *testing.T
	server *httptest.Server
	client *http.Client
}

// newTestClient serves the app's routes and returns a client that keeps the
// session cookie between requests.
func newTestClient(t *testing.T, app *Application) *testClient {
	t.Helper()

	server := httptest.NewServer(app.Routes())
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testClient{
		t:      t,
		server: server,
		client: &http.Client{Jar: jar},
	}
}

// do sends body as JSON (raw when it is a string) and decodes the response
// into dst when dst is not nil.
func (c *testClient) do(method, path string, body any, dst any) int {
	c.t.Helper()

	var reader io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		data, err := json.Marshal(v)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.server.URL+path, reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if dst != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(dst))
	}

	return resp.StatusCode
}

func ptr[T any](v T) *T {
	return &v
}
