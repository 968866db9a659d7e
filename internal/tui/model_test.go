package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-chi-calculator/internal/engine"
	"go-chi-calculator/internal/history"
)

type memoryRecorder struct {
	entries []history.Entry
}

func (r *memoryRecorder) Record(_ context.Context, e history.Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *memoryRecorder) List(context.Context, string, int) ([]history.Entry, error) {
	return r.entries, nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msgs through Update and runs any command it returns once,
// feeding the resulting message back in.
func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()

	for _, msg := range msgs {
		updated, cmd := m.Update(msg)
		m = updated.(Model)
		if cmd == nil {
			continue
		}
		if out := cmd(); out != nil {
			if _, quit := out.(tea.QuitMsg); quit {
				continue
			}
			updated, _ = m.Update(out)
			m = updated.(Model)
		}
	}
	return m
}

func TestTypingAndEvaluating(t *testing.T) {
	m := New(engine.New(engine.DefaultOptions()), nil)

	m = send(t, m, runes("1"), runes("2"), runes("+"), runes("3"), runes("*"), runes("2"))
	if got := m.State().ExpressionString(); got != "12 + 3 ×" {
		t.Fatalf("expected expression %q, got %q", "12 + 3 ×", got)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.State().Operand != "18" {
		t.Fatalf("expected 18, got %q", m.State().Operand)
	}
	if !strings.Contains(m.View(), "18") {
		t.Fatalf("expected view to show result, got:\n%s", m.View())
	}
}

func TestEditingKeys(t *testing.T) {
	m := New(engine.New(engine.DefaultOptions()), nil)

	m = send(t, m, runes("4"), runes("5"), tea.KeyMsg{Type: tea.KeyBackspace})
	if m.State().Operand != "4" {
		t.Fatalf("expected 4 after backspace, got %q", m.State().Operand)
	}

	m = send(t, m, runes("+"), runes("7"), tea.KeyMsg{Type: tea.KeyDelete})
	if m.State().Operand != "0" || m.State().ExpressionString() != "4 +" {
		t.Fatalf("expected clear entry to keep the expression, got %+v", m.State())
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.State().Operand != "0" || len(m.State().Expression) != 0 {
		t.Fatalf("expected cleared state, got %+v", m.State())
	}
}

func TestUnmappedKeysAreIgnored(t *testing.T) {
	m := New(engine.New(engine.DefaultOptions()), nil)
	m = send(t, m, runes("7"), runes("z"), tea.KeyMsg{Type: tea.KeyTab})

	if m.State().Operand != "7" {
		t.Fatalf("expected 7, got %q", m.State().Operand)
	}
}

func TestIndeterminateResultSetsStatus(t *testing.T) {
	m := New(engine.New(engine.DefaultOptions()), nil)
	m = send(t, m, runes("1"), runes("/"), runes("0"), runes("="))

	if !m.State().Indeterminate() {
		t.Fatalf("expected indeterminate state, got %+v", m.State())
	}
	if m.status == "" {
		t.Fatal("expected a status message")
	}
	if !strings.Contains(m.View(), "Infinity") {
		t.Fatalf("expected Infinity in view, got:\n%s", m.View())
	}

	m = send(t, m, runes("2"))
	if m.status != "" {
		t.Fatalf("expected status to clear on next key, got %q", m.status)
	}
}

func TestEvaluationsAreRecorded(t *testing.T) {
	rec := &memoryRecorder{}
	m := New(engine.New(engine.DefaultOptions()), rec)

	m = send(t, m, runes("2"), runes("+"), runes("3"), runes("="), runes("="))

	if len(rec.entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(rec.entries))
	}
	if rec.entries[0].Expression != "2 + 3" || rec.entries[0].Result != "5" {
		t.Fatalf("unexpected first entry %+v", rec.entries[0])
	}
	if rec.entries[1].Result != "8" {
		t.Fatalf("expected repeat equals to record 8, got %+v", rec.entries[1])
	}
	if !strings.HasPrefix(rec.entries[0].SessionID, "tui-") {
		t.Fatalf("unexpected session id %q", rec.entries[0].SessionID)
	}
}

func TestQuitAndHelp(t *testing.T) {
	m := New(engine.New(engine.DefaultOptions()), nil)

	updated, _ := m.Update(runes("?"))
	m = updated.(Model)
	if !m.help.ShowAll {
		t.Fatal("expected full help after ?")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestWindowSize(t *testing.T) {
	m := New(engine.New(engine.DefaultOptions()), nil)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)
	if m.width != 80 || m.help.Width != 80 {
		t.Fatalf("expected width 80, got %d/%d", m.width, m.help.Width)
	}
}

func TestViewIsCentredInWindow(t *testing.T) {
	m := New(engine.New(engine.DefaultOptions()), nil)

	narrow := m.View()
	for _, line := range strings.Split(narrow, "\n") {
		if lipgloss.Width(line) >= 80 {
			t.Fatalf("expected unsized view narrower than 80 columns, got %q", line)
		}
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)

	for _, line := range strings.Split(m.View(), "\n") {
		if w := lipgloss.Width(line); w != 80 {
			t.Fatalf("expected every line padded to 80 columns, got %d in %q", w, line)
		}
	}
	if !strings.HasPrefix(m.View(), " ") {
		t.Fatal("expected view to be indented when centred")
	}
}
