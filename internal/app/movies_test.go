package app

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/cinebook/api"
	"github.com/metinatakli/cinebook/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMovies(t *testing.T) {
	app := newTestApplication(t)
	client := newTestClient(t, app)

	var resp api.MovieListResponse
	status := client.do(http.MethodGet, "/v1/movies", nil, &resp)

	require.Equal(t, http.StatusOK, status)
	require.Len(t, resp.Movies, 6)

	titles := make([]string, len(resp.Movies))
	for i, m := range resp.Movies {
		titles[i] = m.Title
	}

	want := []string{"Avengers: Endgame", "Barbie", "Oppenheimer", "The Batman", "Dune: Part Two", "Interstellar"}
	if diff := cmp.Diff(want, titles); diff != "" {
		t.Errorf("titles mismatch (-want +got):\n%s", diff)
	}
}

func TestGetMovieById(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantStatus int
		wantMovie  *view.MovieCard
	}{
		{
			name:       "existing movie",
			url:        "/v1/movies/2",
			wantStatus: http.StatusOK,
			wantMovie: &view.MovieCard{
				ID:         2,
				Title:      "Barbie",
				Genre:      "Comedy/Fantasy",
				Duration:   "114 min",
				Poster:     "💖",
				PriceLabel: "$10 / ticket",
				Showtimes:  []string{"11:00 AM", "3:00 PM", "7:00 PM", "10:00 PM"},
			},
		},
		{
			name:       "unknown movie",
			url:        "/v1/movies/99",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "non numeric id",
			url:        "/v1/movies/barbie",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "zero id",
			url:        "/v1/movies/0",
			wantStatus: http.StatusBadRequest,
		},
	}

	app := newTestApplication(t)
	client := newTestClient(t, app)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantMovie == nil {
				var resp api.ErrorResponse
				status := client.do(http.MethodGet, tt.url, nil, &resp)

				assert.Equal(t, tt.wantStatus, status)
				assert.NotEmpty(t, resp.Message)
				return
			}

			var card view.MovieCard
			status := client.do(http.MethodGet, tt.url, nil, &card)

			assert.Equal(t, tt.wantStatus, status)
			if diff := cmp.Diff(*tt.wantMovie, card); diff != "" {
				t.Errorf("movie mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGetHealth(t *testing.T) {
	app := newTestApplication(t)
	client := newTestClient(t, app)

	var resp api.HealthcheckResponse
	status := client.do(http.MethodGet, "/v1/healthcheck", nil, &resp)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "UP", resp.Status)
	assert.Equal(t, "test", resp.SystemInfo.Environment)
	assert.Equal(t, version, resp.SystemInfo.Version)
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApplication(t)
	client := newTestClient(t, app)

	var resp api.ErrorResponse
	status := client.do(http.MethodGet, "/v1/tickets", nil, &resp)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "The requested resource not found", resp.Message)
}

func TestGetOpenAPISpec(t *testing.T) {
	app := newTestApplication(t)
	client := newTestClient(t, app)

	var doc map[string]any
	status := client.do(http.MethodGet, "/openapi.json", nil, &doc)

	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, doc["paths"], "/v1/booking/submit")
}
