// cinebook-tui runs the movie booking flow in the terminal: pick a movie and
// showtime, choose seats, enter contact details and get a ticket.
//
// Everything is local to the process. The catalog is the built-in one unless
// --catalog points to a YAML file.
package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/metinatakli/cinebook/internal/booking"
	"github.com/metinatakli/cinebook/internal/catalog"
	"github.com/metinatakli/cinebook/internal/domain"
	"github.com/metinatakli/cinebook/internal/seatmap"
	"github.com/metinatakli/cinebook/internal/tui"
	"github.com/metinatakli/cinebook/internal/vcs"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		catalogFile string
		seed        uint64
		cinema      = domain.DefaultCinemaConfig
	)

	flagSet := pflag.NewFlagSet("cinebook-tui", pflag.ContinueOnError)
	flagSet.StringVar(&catalogFile, "catalog", "", "YAML catalog file (built-in catalog when empty)")
	flagSet.Uint64Var(&seed, "seed", 0, "seat map random seed (0 for a random seed)")
	flagSet.IntVar(&cinema.Rows, "rows", cinema.Rows, "hall rows (max 26)")
	flagSet.IntVar(&cinema.SeatsPerRow, "seats-per-row", cinema.SeatsPerRow, "seats per hall row")
	flagSet.Float64Var(&cinema.OccupiedFraction, "occupied-fraction", cinema.OccupiedFraction, "fraction of seats shown as taken")
	showVersion := flagSet.Bool("version", false, "print version and exit")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if *showVersion {
		fmt.Printf("cinebook-tui %s\n", vcs.Version())
		return nil
	}

	if cinema.Rows < 1 || cinema.Rows > 26 || cinema.SeatsPerRow < 1 {
		return fmt.Errorf("invalid hall size %dx%d", cinema.Rows, cinema.SeatsPerRow)
	}

	if cinema.OccupiedFraction < 0 || cinema.OccupiedFraction >= 1 {
		return fmt.Errorf("occupied-fraction must be in [0, 1), got %v", cinema.OccupiedFraction)
	}

	movies := catalog.Default()
	if catalogFile != "" {
		var err error

		movies, err = catalog.LoadFile(catalogFile)
		if err != nil {
			return err
		}
	}

	generator := seatmap.NewGenerator(nil)
	if seed != 0 {
		generator = seatmap.NewSeeded(seed)
	}

	machine := booking.NewMachine(movies, generator, booking.WithCinema(cinema))

	program := tea.NewProgram(tui.NewModel(machine), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()

	return err
}
