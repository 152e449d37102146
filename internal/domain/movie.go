package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Movie is a bookable catalog offering. Movies are loaded once at startup
// and never modified afterwards.
type Movie struct {
	ID        int             `json:"id" yaml:"id"`
	Title     string          `json:"title" yaml:"title"`
	Genre     string          `json:"genre" yaml:"genre"`
	Duration  string          `json:"duration" yaml:"duration"`
	Price     decimal.Decimal `json:"price" yaml:"price"`
	Poster    string          `json:"poster" yaml:"poster"`
	Showtimes []string        `json:"showtimes" yaml:"showtimes"`
}

func (m Movie) HasShowtime(showtime string) bool {
	return slices.Contains(m.Showtimes, showtime)
}

type MovieCatalog interface {
	GetAll() []Movie
	GetById(id int) (Movie, error)
}
