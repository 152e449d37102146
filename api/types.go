package api

import (
	"time"

	"github.com/metinatakli/cinebook/internal/view"
)

type SelectMovieRequest struct {
	MovieId  int    `json:"movieId" validate:"gte=1"`
	Showtime string `json:"showtime"`
}

type ToggleSeatRequest struct {
	Row  *int `json:"row" validate:"required,gte=0"`
	Seat *int `json:"seat" validate:"required,gte=0"`
}

// EditContactRequest carries the fields the user changed; absent fields are
// left as they are.
type EditContactRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type MovieListResponse struct {
	Movies []view.MovieCard `json:"movies"`
}

type PageResponse = view.Page

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}
