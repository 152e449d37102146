package catalog

import (
	"fmt"
	"os"

	"github.com/metinatakli/cinebook/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var defaultMovies = []domain.Movie{
	{
		ID:        1,
		Title:     "Avengers: Endgame",
		Genre:     "Action/Sci-Fi",
		Duration:  "181 min",
		Price:     decimal.NewFromInt(12),
		Poster:    "🦸",
		Showtimes: []string{"10:00 AM", "2:00 PM", "6:00 PM", "9:30 PM"},
	},
	{
		ID:        2,
		Title:     "Barbie",
		Genre:     "Comedy/Fantasy",
		Duration:  "114 min",
		Price:     decimal.NewFromInt(10),
		Poster:    "💖",
		Showtimes: []string{"11:00 AM", "3:00 PM", "7:00 PM", "10:00 PM"},
	},
	{
		ID:        3,
		Title:     "Oppenheimer",
		Genre:     "Biography/Drama",
		Duration:  "180 min",
		Price:     decimal.NewFromInt(13),
		Poster:    "💣",
		Showtimes: []string{"10:30 AM", "2:30 PM", "6:30 PM", "9:00 PM"},
	},
	{
		ID:        4,
		Title:     "The Batman",
		Genre:     "Action/Crime",
		Duration:  "176 min",
		Price:     decimal.NewFromInt(12),
		Poster:    "🦇",
		Showtimes: []string{"11:30 AM", "3:30 PM", "7:30 PM", "10:30 PM"},
	},
	{
		ID:        5,
		Title:     "Dune: Part Two",
		Genre:     "Sci-Fi/Adventure",
		Duration:  "166 min",
		Price:     decimal.NewFromInt(14),
		Poster:    "🏜️",
		Showtimes: []string{"10:00 AM", "1:30 PM", "5:00 PM", "8:30 PM"},
	},
	{
		ID:        6,
		Title:     "Interstellar",
		Genre:     "Sci-Fi/Drama",
		Duration:  "169 min",
		Price:     decimal.NewFromInt(11),
		Poster:    "🚀",
		Showtimes: []string{"9:00 AM", "1:00 PM", "5:30 PM", "9:00 PM"},
	},
}

// StaticCatalog is an in-memory, read-only list of movies.
type StaticCatalog struct {
	movies []domain.Movie
}

// Default returns the built-in catalog.
func Default() *StaticCatalog {
	return New(defaultMovies)
}

func New(movies []domain.Movie) *StaticCatalog {
	return &StaticCatalog{movies: cloneMovies(movies)}
}

type catalogFile struct {
	Movies []domain.Movie `yaml:"movies"`
}

// LoadFile reads a YAML catalog of the form
//
//	movies:
//	  - id: 1
//	    title: Barbie
//	    price: 10
//	    showtimes: ["3:00 PM"]
func LoadFile(path string) (*StaticCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	return Parse(data)
}

func Parse(data []byte) (*StaticCatalog, error) {
	var file catalogFile

	err := yaml.Unmarshal(data, &file)
	if err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	if len(file.Movies) == 0 {
		return nil, fmt.Errorf("parse catalog: no movies defined")
	}

	seen := make(map[int]bool, len(file.Movies))
	for _, m := range file.Movies {
		switch {
		case m.ID < 1:
			return nil, fmt.Errorf("parse catalog: movie %q must have a positive id", m.Title)
		case seen[m.ID]:
			return nil, fmt.Errorf("parse catalog: duplicate movie id %d", m.ID)
		case m.Price.IsNegative():
			return nil, fmt.Errorf("parse catalog: movie %d has a negative price", m.ID)
		case len(m.Showtimes) == 0:
			return nil, fmt.Errorf("parse catalog: movie %d has no showtimes", m.ID)
		}
		seen[m.ID] = true
	}

	return New(file.Movies), nil
}

func (c *StaticCatalog) GetAll() []domain.Movie {
	return cloneMovies(c.movies)
}

func (c *StaticCatalog) GetById(id int) (domain.Movie, error) {
	for _, m := range c.movies {
		if m.ID == id {
			return cloneMovie(m), nil
		}
	}

	return domain.Movie{}, domain.ErrMovieNotFound
}

func cloneMovies(movies []domain.Movie) []domain.Movie {
	out := make([]domain.Movie, len(movies))
	for i, m := range movies {
		out[i] = cloneMovie(m)
	}

	return out
}

func cloneMovie(m domain.Movie) domain.Movie {
	m.Showtimes = append([]string(nil), m.Showtimes...)
	return m
}
