package seatmap

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/metinatakli/cinebook/internal/domain"
)

// Source yields uniformly distributed ints in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

// lockedSource serializes access to a *rand.Rand, which is not safe for
// concurrent use.
type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rnd.IntN(n)
}

type Generator struct {
	src Source
}

// NewGenerator returns a generator drawing from src, or from the process-wide
// random generator when src is nil.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = globalSource{}
	}

	return &Generator{src: src}
}

// NewSeeded returns a generator whose output is fully determined by seed.
// It may be shared between goroutines.
func NewSeeded(seed uint64) *Generator {
	return NewGenerator(&lockedSource{
		rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	})
}

// OccupiedCount is floor(rows*perRow*fraction), with fraction clamped to [0, 1].
func OccupiedCount(rows, perRow int, fraction float64) int {
	if rows <= 0 || perRow <= 0 || fraction <= 0 || math.IsNaN(fraction) {
		return 0
	}

	fraction = min(fraction, 1)

	return int(math.Floor(float64(rows*perRow) * fraction))
}

// Generate marks OccupiedCount distinct seats as occupied, picking seats
// uniformly at random and rejecting duplicates.
func (g *Generator) Generate(rows, perRow int, fraction float64) domain.SeatMap {
	target := OccupiedCount(rows, perRow, fraction)
	occupied := make(map[domain.SeatID]bool, target)

	for len(occupied) < target {
		seat := domain.SeatID{
			Row:    g.src.IntN(rows),
			Number: g.src.IntN(perRow),
		}
		occupied[seat] = true
	}

	return domain.SeatMap{
		Rows:     max(rows, 0),
		PerRow:   max(perRow, 0),
		Occupied: occupied,
	}
}

// GenerateFor applies the hall layout in cfg.
func (g *Generator) GenerateFor(cfg domain.CinemaConfig) domain.SeatMap {
	return g.Generate(cfg.Rows, cfg.SeatsPerRow, cfg.OccupiedFraction)
}
