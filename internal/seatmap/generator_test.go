package seatmap

import (
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/cinebook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSizeAndBounds(t *testing.T) {
	grids := []struct{ rows, perRow int }{
		{8, 12},
		{1, 1},
		{3, 7},
		{26, 40},
	}
	fractions := []float64{0, 0.01, 0.1, 0.3, 0.5, 0.75, 0.99}

	g := NewSeeded(7)

	for _, grid := range grids {
		for _, f := range fractions {
			m := g.Generate(grid.rows, grid.perRow, f)

			want := int(math.Floor(float64(grid.rows*grid.perRow) * f))
			require.Len(t, m.Occupied, want, "grid %dx%d fraction %v", grid.rows, grid.perRow, f)

			for s := range m.Occupied {
				assert.True(t, m.InBounds(s), "seat %v outside %dx%d", s, grid.rows, grid.perRow)
			}
		}
	}
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	a := NewSeeded(42).GenerateFor(domain.DefaultCinemaConfig)
	b := NewSeeded(42).GenerateFor(domain.DefaultCinemaConfig)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("seat maps differ (-a +b):\n%s", diff)
	}

	assert.Len(t, a.Occupied, 28)
}

func TestGenerateDiffersAcrossCalls(t *testing.T) {
	g := NewSeeded(1)

	first := g.GenerateFor(domain.DefaultCinemaConfig)
	second := g.GenerateFor(domain.DefaultCinemaConfig)

	assert.NotEqual(t, first.OccupiedSeats(), second.OccupiedSeats())
}

func TestOccupiedCountClamps(t *testing.T) {
	assert.Equal(t, 0, OccupiedCount(8, 12, -0.5))
	assert.Equal(t, 0, OccupiedCount(0, 12, 0.5))
	assert.Equal(t, 0, OccupiedCount(8, 12, math.NaN()))
	assert.Equal(t, 96, OccupiedCount(8, 12, 1.5))
	assert.Equal(t, 28, OccupiedCount(8, 12, 0.3))
}

func TestGenerateFullHall(t *testing.T) {
	m := NewSeeded(3).Generate(2, 3, 1)
	assert.Len(t, m.Occupied, 6)
}

type fixedSource struct {
	values []int
	next   int
}

func (f *fixedSource) IntN(n int) int {
	v := f.values[f.next%len(f.values)] % n
	f.next++
	return v
}

func TestGenerateRejectsDuplicates(t *testing.T) {
	// (0,0) twice, then (1,1).
	src := &fixedSource{values: []int{0, 0, 0, 0, 1, 1}}

	m := NewGenerator(src).Generate(2, 2, 0.5)

	assert.Equal(t, []domain.SeatID{{Row: 0, Number: 0}, {Row: 1, Number: 1}}, m.OccupiedSeats())
	assert.Equal(t, 6, src.next)
}

func TestSeededGeneratorIsSafeToShare(t *testing.T) {
	g := NewSeeded(7)
	want := OccupiedCount(8, 12, 0.3)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 25 {
				assert.Len(t, g.Generate(8, 12, 0.3).Occupied, want)
			}
		}()
	}
	wg.Wait()
}
