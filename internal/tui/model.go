// Package tui is a terminal keypad for the calculator engine.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-chi-calculator/internal/display"
	"go-chi-calculator/internal/engine"
	"go-chi-calculator/internal/history"
	"go-chi-calculator/internal/observability"
)

// recordedMsg reports the outcome of writing an evaluation to history.
type recordedMsg struct {
	err error
}

// Model is the bubbletea model of one calculator.
type Model struct {
	engine    engine.Engine
	state     engine.State
	recorder  history.Recorder
	sessionID string

	keys keyMap
	help help.Model

	status string
	width  int
}

// New creates a cleared calculator. A nil recorder keeps no history.
func New(eng engine.Engine, recorder history.Recorder) Model {
	if recorder == nil {
		recorder = history.Nop{}
	}
	return Model{
		engine:    eng,
		state:     engine.NewState(),
		recorder:  recorder,
		sessionID: "tui-" + uuid.NewString(),
		keys:      defaultKeyMap(),
		help:      help.New(),
	}
}

// State returns the current calculator state.
func (m Model) State() engine.State {
	return m.state
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case recordedMsg:
		if msg.err != nil {
			observability.Logger.Warn("recording calculation failed", zap.Error(msg.err))
			m.status = "history unavailable"
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		k, ok := m.keys.keypadKey(msg)
		if !ok {
			return m, nil
		}
		return m.press(k)
	}

	return m, nil
}

func (m Model) press(k string) (tea.Model, tea.Cmd) {
	before := m.state
	next, err := m.engine.Press(m.state, k)
	m.state = next
	m.status = ""

	switch {
	case errors.Is(err, engine.ErrMalformedExpression):
		// The expression is left as it was; the keypress is simply ignored.
		observability.Logger.Debug("ignored key", zap.String("key", k), zap.Error(err))
	case errors.Is(err, engine.ErrNumericIndeterminate):
		m.status = "not a finite number"
	case err != nil:
		observability.Logger.Warn("key rejected", zap.String("key", k), zap.Error(err))
		m.status = err.Error()
	}

	if next.Evaluations > before.Evaluations {
		return m, m.record(next)
	}
	return m, nil
}

func (m Model) record(s engine.State) tea.Cmd {
	entry := history.Entry{
		SessionID:     m.sessionID,
		Expression:    engine.JoinTokens(s.LastEvaluated),
		Result:        s.Operand,
		Indeterminate: s.Indeterminate(),
	}
	recorder := m.recorder

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return recordedMsg{err: recorder.Record(ctx, entry)}
	}
}

// View implements tea.Model
func (m Model) View() string {
	return render(display.Render(m.state), m.status, m.help.View(m.keys), m.width)
}
