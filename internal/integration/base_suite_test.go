package integration_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/metinatakli/cinebook/internal/app"
	"github.com/metinatakli/cinebook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

const cacheImageName = "redis:7"

type BaseSuite struct {
	suite.Suite
	cfg            app.Config
	app            *TestApp
	cacheContainer *RedisContainer
	server         *httptest.Server
}

func (s *BaseSuite) SetupSuite() {
	testcontainers.SkipIfProviderIsNotHealthy(s.T())

	redisContainer, err := getCacheContainer(context.Background())
	s.Require().NoError(err)

	s.cacheContainer = redisContainer

	s.cfg = app.Config{
		Port: 3000,
		Env:  "test",
		Seed: 1,
		Cinema: domain.CinemaConfig{
			Rows:             8,
			SeatsPerRow:      12,
			OccupiedFraction: 0,
		},
		Redis: app.RedisConfig{
			URL:          redisContainer.ConnectionString,
			MaxOpenConns: 10,
			MaxIdleConns: 10,
			MaxIdleTime:  2 * time.Minute,
		},
		Session: app.SessionConfig{
			IdleTimeout: 20 * time.Minute,
			Lifetime:    time.Hour,
			CookieName:  "session_id",
		},
	}

	testApp, err := newTestApp(s.cfg)
	s.Require().NoError(err)

	s.app = testApp
	s.server = httptest.NewServer(testApp.App.Routes())
}

func (s *BaseSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}

	if s.app != nil {
		s.app.Close()
	}

	if s.cacheContainer != nil {
		if err := testcontainers.TerminateContainer(s.cacheContainer.Container); err != nil {
			s.T().Logf("failed to terminate container: %s", err)
		}
	}
}

func (s *BaseSuite) newClient() *http.Client {
	jar, err := cookiejar.New(nil)
	s.Require().NoError(err)

	return &http.Client{Jar: jar}
}

type Scenario struct {
	Name             string
	Method           string
	URL              string
	Body             io.Reader
	Headers          map[string]string
	ExpectedStatus   int
	ExpectedResponse string
	BeforeTestFunc   func(t testing.TB, client *http.Client, baseURL string)
}

// Run sends the scenario request through a fresh cookie-keeping client so
// each scenario starts with its own booking session.
func (sc Scenario) Run(t *testing.T, server *httptest.Server) {
	t.Run(sc.Name, func(t *testing.T) {
		jar, err := cookiejar.New(nil)
		require.NoError(t, err)

		client := &http.Client{Jar: jar}

		if sc.BeforeTestFunc != nil {
			sc.BeforeTestFunc(t, client, server.URL)
		}

		req, err := prepareRequest(sc.Method, server.URL+sc.URL, sc.Body, sc.Headers)
		require.NoError(t, err)

		res, err := client.Do(req)
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, sc.ExpectedStatus, res.StatusCode)

		if sc.ExpectedResponse != "" {
			compareResponse(t, res.Body, sc.ExpectedResponse)
		}
	})
}
