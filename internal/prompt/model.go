package prompt

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rxtech-lab/fxgold/pkg/marketdata"
)

// Prompt states.
const (
	StateStart = iota
	StateEnd
	StateDone
	StateAborted
)

// Model is the Bubble Tea model of the month range prompt.
type Model struct {
	state      int
	startInput textinput.Model
	endInput   textinput.Model
	start      time.Time
	dateRange  marketdata.DateRange
	today      time.Time
	err        error
}

// NewMonthInput creates a text input for one YYYY-MM month.
func NewMonthInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = len(marketdata.MonthLayout)
	ti.Width = 10

	return ti
}

// NewModel creates a prompt focused on the start month.
func NewModel(today time.Time) Model {
	m := Model{
		state:      StateStart,
		startInput: NewMonthInput("2015-01"),
		endInput:   NewMonthInput("2024-12"),
		today:      today,
	}
	m.startInput.Focus()

	return m
}

// Range returns the accepted range. It is only meaningful in StateDone.
func (m Model) Range() marketdata.DateRange {
	return m.dateRange
}

// State returns the current prompt state.
func (m Model) State() int {
	return m.state
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.state = StateAborted

			return m, tea.Quit
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd

	switch m.state {
	case StateStart:
		m.startInput, cmd = m.startInput.Update(msg)
	case StateEnd:
		m.endInput, cmd = m.endInput.Update(msg)
	}

	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateStart:
		start, err := marketdata.ParseMonth(m.startInput.Value())
		if err != nil {
			m.err = err
			m.startInput.Reset()

			return m, nil
		}

		m.err = nil
		m.start = start
		m.state = StateEnd
		m.startInput.Blur()
		m.endInput.Focus()

		return m, textinput.Blink

	case StateEnd:
		end, err := marketdata.ParseMonth(m.endInput.Value())
		if err != nil {
			m.err = err
			m.endInput.Reset()

			return m, nil
		}

		r, err := resolve(m.start, end, m.today)
		if err != nil {
			// start over from the start month
			m.err = err
			m.state = StateStart
			m.startInput.Reset()
			m.endInput.Reset()
			m.endInput.Blur()
			m.startInput.Focus()

			return m, textinput.Blink
		}

		m.err = nil
		m.dateRange = r
		m.state = StateDone

		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Exchange Rates vs Gold Price"))
	s.WriteString("\n\n")

	switch m.state {
	case StateStart:
		s.WriteString(StartLabel + ":\n")
		s.WriteString(m.startInput.View())
		s.WriteString("\n")

	case StateEnd:
		s.WriteString(StartLabel + ": ")
		s.WriteString(AcceptedStyle.Render(m.start.Format(marketdata.MonthLayout)))
		s.WriteString("\n")
		s.WriteString(EndLabel + ":\n")
		s.WriteString(m.endInput.View())
		s.WriteString("\n")

	case StateDone:
		s.WriteString("Charting " + AcceptedStyle.Render(m.dateRange.String()) + "\n")

		return s.String()

	case StateAborted:
		return ""
	}

	if m.err != nil {
		s.WriteString("\n")
		s.WriteString(ErrorStyle.Render(m.err.Error()))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("Press Enter to confirm, Esc to cancel"))

	return s.String()
}
