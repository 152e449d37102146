package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// SeatID addresses a seat by zero-based row and seat number. It encodes as
// "row-number" so it can key JSON objects.
type SeatID struct {
	Row    int
	Number int
}

// Label returns the display label, e.g. {0, 3} is "A4".
func (s SeatID) Label() string {
	return RowLabel(s.Row) + strconv.Itoa(s.Number+1)
}

func (s SeatID) String() string {
	return fmt.Sprintf("%d-%d", s.Row, s.Number)
}

func (s SeatID) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SeatID) UnmarshalText(text []byte) error {
	row, number, ok := strings.Cut(string(text), "-")
	if !ok {
		return fmt.Errorf("invalid seat id %q", text)
	}

	r, err := strconv.Atoi(row)
	if err != nil {
		return fmt.Errorf("invalid seat row %q: %w", row, err)
	}

	n, err := strconv.Atoi(number)
	if err != nil {
		return fmt.Errorf("invalid seat number %q: %w", number, err)
	}

	s.Row, s.Number = r, n

	return nil
}

// RowLabel maps a row index to its letter: 0 is "A", 7 is "H".
func RowLabel(row int) string {
	return string(rune('A' + row))
}

// SeatLabels joins the display labels of seats in the given order.
func SeatLabels(seats []SeatID) string {
	labels := make([]string, len(seats))
	for i, s := range seats {
		labels[i] = s.Label()
	}

	return strings.Join(labels, ", ")
}

// SeatMap is the occupancy of the hall for one visit to the seat screen.
type SeatMap struct {
	Rows     int             `json:"rows"`
	PerRow   int             `json:"perRow"`
	Occupied map[SeatID]bool `json:"occupied"`
}

func (m *SeatMap) InBounds(s SeatID) bool {
	return s.Row >= 0 && s.Row < m.Rows && s.Number >= 0 && s.Number < m.PerRow
}

func (m *SeatMap) IsOccupied(s SeatID) bool {
	return m.Occupied[s]
}

// OccupiedSeats returns the occupied seats ordered by row, then number.
func (m *SeatMap) OccupiedSeats() []SeatID {
	seats := make([]SeatID, 0, len(m.Occupied))
	for s := range m.Occupied {
		seats = append(seats, s)
	}

	slices.SortFunc(seats, func(a, b SeatID) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Number - b.Number
	})

	return seats
}

// CinemaConfig describes the hall every showtime plays in.
type CinemaConfig struct {
	Rows             int
	SeatsPerRow      int
	OccupiedFraction float64
}

var DefaultCinemaConfig = CinemaConfig{
	Rows:             8,
	SeatsPerRow:      12,
	OccupiedFraction: 0.3,
}
