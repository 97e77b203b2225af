package prompt

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeMonth(m Model, month string) Model {
	for _, r := range month {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	return next.(Model)
}

func TestNewModel(t *testing.T) {
	m := NewModel(today)

	assert.Equal(t, StateStart, m.State())
	assert.True(t, m.startInput.Focused())
	assert.False(t, m.endInput.Focused())
	assert.Nil(t, m.err)
}

func TestModelAcceptsRange(t *testing.T) {
	m := NewModel(today)

	m = typeMonth(m, "2020-01")
	assert.Equal(t, StateEnd, m.State())
	assert.True(t, m.endInput.Focused())

	m = typeMonth(m, "2020-03")
	require.Equal(t, StateDone, m.State())
	assert.Equal(t, "2020-01-01 to 2020-03-31", m.Range().String())
}

func TestModelMalformedMonth(t *testing.T) {
	m := NewModel(today)

	m = typeMonth(m, "20-01")
	assert.Equal(t, StateStart, m.State())
	assert.Error(t, m.err)
	assert.Empty(t, m.startInput.Value())

	m = typeMonth(m, "2020-01")
	m = typeMonth(m, "2020-00")
	assert.Equal(t, StateEnd, m.State())
	assert.Error(t, m.err)
}

func TestModelInvertedRangeStartsOver(t *testing.T) {
	m := NewModel(today)

	m = typeMonth(m, "2020-03")
	m = typeMonth(m, "2020-01")

	assert.Equal(t, StateStart, m.State())
	assert.Error(t, m.err)
	assert.Empty(t, m.startInput.Value())
	assert.Empty(t, m.endInput.Value())
	assert.True(t, m.startInput.Focused())
	assert.Contains(t, m.View(), "after end")
}

func TestModelEscAborts(t *testing.T) {
	m := NewModel(today)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateAborted, next.(Model).State())
	assert.NotNil(t, cmd)
}

func TestModelTeatest(t *testing.T) {
	tm := teatest.NewTestModel(t, NewModel(today), teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Start month"))
	}, teatest.WithDuration(2*time.Second))

	tm.Type("2019-06")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("End month"))
	}, teatest.WithDuration(2*time.Second))

	tm.Type("2019-12")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	final, ok := tm.FinalModel(t, teatest.WithFinalTimeout(2*time.Second)).(Model)
	require.True(t, ok)
	assert.Equal(t, StateDone, final.State())
	assert.Equal(t, "2019-06-01 to 2019-12-31", final.Range().String())
}

func TestModelCtrlCQuits(t *testing.T) {
	tm := teatest.NewTestModel(t, NewModel(today), teatest.WithInitialTermSize(80, 24))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))
}

func TestTUIPrompterCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewTUIPrompter(&bytes.Buffer{}, &bytes.Buffer{}, fixedClock)

	_, err := p.PromptRange(ctx)
	assert.Error(t, err)
}
