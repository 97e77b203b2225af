package prompt

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rxtech-lab/fxgold/pkg/marketdata"
)

// TUIPrompter runs the Bubble Tea month range prompt on a terminal.
type TUIPrompter struct {
	in  io.Reader
	out io.Writer
	now func() time.Time
}

// NewTUIPrompter creates a terminal prompter.
func NewTUIPrompter(in io.Reader, out io.Writer, now func() time.Time) *TUIPrompter {
	if now == nil {
		now = time.Now
	}

	return &TUIPrompter{in: in, out: out, now: now}
}

// PromptRange implements Prompter.
func (p *TUIPrompter) PromptRange(ctx context.Context) (marketdata.DateRange, error) {
	program := tea.NewProgram(NewModel(p.now()),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
		tea.WithContext(ctx))

	final, err := program.Run()
	if err != nil {
		if ctx.Err() != nil {
			return marketdata.DateRange{}, ctx.Err()
		}

		return marketdata.DateRange{}, fmt.Errorf("date prompt failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok || m.State() != StateDone {
		return marketdata.DateRange{}, ErrAborted
	}

	return m.Range(), nil
}
