package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/metinatakli/cinebook/internal/booking"
	"github.com/metinatakli/cinebook/internal/domain"
	"github.com/metinatakli/cinebook/internal/view"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// title line above the viewport, status and help lines below it
	chromeHeight = 4

	noShowtime = -1
)

type focus int

const (
	focusSeats focus = iota
	focusForm
)

var placeholders = map[domain.ContactField]string{
	domain.FieldName:  "Full name",
	domain.FieldEmail: "you@example.com",
	domain.FieldPhone: "(555) 123-4567",
}

// Model is the bubbletea model of the booking flow. It owns one booking and
// feeds every key press through the booking state machine.
type Model struct {
	machine *booking.Machine
	movies  []domain.Movie
	booking domain.Booking
	page    view.Page

	keys     KeyMap
	styles   styles
	help     help.Model
	viewport viewport.Model
	inputs   []textinput.Model

	movieCursor    int
	showtimeCursor int
	seatCursor     domain.SeatID
	focus          focus
	field          int

	// notice is the last rejected action, shown in the status bar until the
	// next accepted one.
	notice string
}

func NewModel(machine *booking.Machine) Model {
	movies := machine.Catalog().GetAll()
	b := domain.NewBooking()

	inputs := make([]textinput.Model, len(domain.ContactFields))
	for i, f := range domain.ContactFields {
		input := textinput.New()
		input.Placeholder = placeholders[f]
		input.Prompt = ""
		input.Width = 32
		inputs[i] = input
	}

	vp := viewport.New(defaultWidth, defaultHeight-chromeHeight)
	vp.KeyMap = viewport.KeyMap{
		PageUp:   DefaultKeyMap.PageUp,
		PageDown: DefaultKeyMap.PageDown,
	}

	model := Model{
		machine:        machine,
		movies:         movies,
		booking:        b,
		page:           view.Render(b, b, movies),
		keys:           DefaultKeyMap,
		styles:         newStyles(DefaultTheme),
		help:           help.New(),
		viewport:       vp,
		inputs:         inputs,
		showtimeCursor: noShowtime,
	}
	model.refresh()

	return model
}

func (model Model) Init() tea.Cmd {
	return nil
}

// Booking returns the current booking state.
func (model Model) Booking() domain.Booking {
	return model.booking
}

// Notice returns the message of the last rejected action, if any.
func (model Model) Notice() string {
	return model.notice
}

func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.viewport.Width = message.Width
		model.viewport.Height = max(message.Height-chromeHeight, 3)
		model.help.Width = message.Width
		model.refresh()

		return model, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		model.viewport, cmd = model.viewport.Update(message)

		return model, cmd

	case tea.KeyMsg:
		if key.Matches(message, model.keys.ForceQuit) {
			return model, tea.Quit
		}

		if key.Matches(message, model.keys.PageUp, model.keys.PageDown) {
			var cmd tea.Cmd
			model.viewport, cmd = model.viewport.Update(message)

			return model, cmd
		}

		var cmd tea.Cmd

		switch {
		case model.booking.Screen == domain.ScreenCatalog:
			cmd = model.handleCatalogKeys(message)
		case model.booking.Screen == domain.ScreenConfirmation:
			cmd = model.handleConfirmationKeys(message)
		case model.focus == focusForm:
			cmd = model.handleFormKeys(message)
		default:
			cmd = model.handleSeatKeys(message)
		}

		return model, cmd
	}

	return model, nil
}

func (model *Model) handleCatalogKeys(message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Quit):
		return tea.Quit
	case key.Matches(message, model.keys.Up):
		model.moveMovieCursor(-1)
	case key.Matches(message, model.keys.Down):
		model.moveMovieCursor(1)
	case key.Matches(message, model.keys.Left):
		model.moveShowtimeCursor(-1)
	case key.Matches(message, model.keys.Right):
		model.moveShowtimeCursor(1)
	case key.Matches(message, model.keys.Select):
		if len(model.movies) == 0 {
			return nil
		}

		movie := model.movies[model.movieCursor]

		showtime := ""
		if model.showtimeCursor != noShowtime {
			showtime = movie.Showtimes[model.showtimeCursor]
		}

		model.apply(booking.SelectMovie{MovieID: movie.ID, Showtime: showtime})
	}

	model.refresh()

	return nil
}

func (model *Model) handleSeatKeys(message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Quit):
		return tea.Quit
	case key.Matches(message, model.keys.Up):
		model.moveSeatCursor(-1, 0)
	case key.Matches(message, model.keys.Down):
		model.moveSeatCursor(1, 0)
	case key.Matches(message, model.keys.Left):
		model.moveSeatCursor(0, -1)
	case key.Matches(message, model.keys.Right):
		model.moveSeatCursor(0, 1)
	case key.Matches(message, model.keys.ToggleSeat):
		model.apply(booking.ToggleSeat{Seat: model.seatCursor})
	case key.Matches(message, model.keys.NextField):
		return model.focusField(0)
	case key.Matches(message, model.keys.PrevField):
		return model.focusField(len(model.inputs) - 1)
	case key.Matches(message, model.keys.Back):
		model.apply(booking.Reset{})
	}

	model.refresh()

	return nil
}

func (model *Model) handleFormKeys(message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.NextField):
		return model.focusField(model.field + 1)
	case key.Matches(message, model.keys.PrevField):
		return model.focusField(model.field - 1)
	case key.Matches(message, model.keys.Submit):
		model.apply(booking.Submit{})
		model.refresh()

		return nil
	case key.Matches(message, model.keys.Back):
		model.apply(booking.Reset{})
		model.refresh()

		return nil
	}

	input := model.inputs[model.field]
	before := input.Value()

	var cmd tea.Cmd
	model.inputs[model.field], cmd = input.Update(message)

	if value := model.inputs[model.field].Value(); value != before {
		model.apply(booking.EditContact{Field: domain.ContactFields[model.field], Value: value})
	}

	model.refresh()

	return cmd
}

func (model *Model) handleConfirmationKeys(message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.BookAnother):
		model.apply(booking.BookAnother{})
	case key.Matches(message, model.keys.Back):
		model.apply(booking.Reset{})
	case key.Matches(message, model.keys.Quit):
		return tea.Quit
	}

	model.refresh()

	return nil
}

// apply runs ev through the state machine. A rejected event leaves the
// booking as it was and becomes the status bar notice.
func (model *Model) apply(ev booking.Event) bool {
	prev := model.booking

	next, err := model.machine.Apply(prev, ev)
	if err != nil {
		model.notice = view.Message(err)
		return false
	}

	model.notice = ""
	model.booking = next
	model.page = view.Render(prev, next, model.movies)

	if model.page.ScrollTop {
		model.resetCursors()
		model.viewport.GotoTop()
	}

	model.syncInputs()

	return true
}

func (model *Model) resetCursors() {
	model.movieCursor = 0
	model.showtimeCursor = noShowtime
	model.seatCursor = domain.SeatID{}
	model.focusSeats()
}

func (model *Model) focusField(field int) tea.Cmd {
	if field < 0 || field >= len(model.inputs) {
		model.focusSeats()
		model.refresh()

		return nil
	}

	for i := range model.inputs {
		model.inputs[i].Blur()
	}

	model.focus = focusForm
	model.field = field
	cmd := model.inputs[field].Focus()
	model.refresh()

	return cmd
}

func (model *Model) focusSeats() {
	for i := range model.inputs {
		model.inputs[i].Blur()
	}

	model.focus = focusSeats
	model.field = 0
}

// syncInputs copies the booking's form values into the text inputs, e.g.
// after a reset cleared them.
func (model *Model) syncInputs() {
	for i, f := range domain.ContactFields {
		if value := model.booking.Form.Get(f); model.inputs[i].Value() != value {
			model.inputs[i].SetValue(value)
		}
	}
}

func (model *Model) moveMovieCursor(delta int) {
	if len(model.movies) == 0 {
		return
	}

	next := min(max(model.movieCursor+delta, 0), len(model.movies)-1)
	if next != model.movieCursor {
		model.movieCursor = next
		model.showtimeCursor = noShowtime
	}
}

func (model *Model) moveShowtimeCursor(delta int) {
	if len(model.movies) == 0 {
		return
	}

	count := len(model.movies[model.movieCursor].Showtimes)
	if model.showtimeCursor == noShowtime {
		model.showtimeCursor = 0
		return
	}

	model.showtimeCursor = min(max(model.showtimeCursor+delta, 0), count-1)
}

func (model *Model) moveSeatCursor(dRow, dSeat int) {
	seatMap := model.booking.SeatMap
	if seatMap == nil {
		return
	}

	model.seatCursor.Row = min(max(model.seatCursor.Row+dRow, 0), seatMap.Rows-1)
	model.seatCursor.Number = min(max(model.seatCursor.Number+dSeat, 0), seatMap.PerRow-1)
}

func (model *Model) refresh() {
	model.viewport.SetContent(model.renderPage())
}
