package app

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/cinebook/api"
	"github.com/metinatakli/cinebook/internal/domain"
	"github.com/metinatakli/cinebook/internal/view"
)

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request) {
	movies := app.machine.Catalog().GetAll()

	resp := api.MovieListResponse{
		Movies: view.Catalog(movies),
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovieById(w http.ResponseWriter, r *http.Request) {
	movieId, err := strconv.Atoi(chi.URLParam(r, "movieId"))
	if err != nil || movieId < 1 {
		app.badRequestResponse(w, r, errors.New("movie ID must be a positive integer"))
		return
	}

	movie, err := app.machine.Catalog().GetById(movieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMovieNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, view.Card(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	err := app.writeJSON(w, http.StatusOK, app.spec, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
