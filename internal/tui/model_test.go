package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harper/tap-coach/internal/models"
)

type fakeChat struct {
	messages []models.Message
	degraded bool
	cleared  bool
}

func (f *fakeChat) Submit(_ context.Context, text string) (models.Message, error) {
	f.messages = append(f.messages, models.Message{ID: 1, Role: models.RoleUser, Content: text})
	reply := models.Message{ID: 2, Role: models.RoleAssistant, Content: "Try **Module 4: Email Outreach Campaign**.", RecommendedModule: models.ModulePtr(models.ModuleOutreach)}
	f.messages = append(f.messages, reply)
	return reply, nil
}

func (f *fakeChat) History() []models.Message { return f.messages }
func (f *fakeChat) ClearHistory() error       { f.messages = nil; f.cleared = true; return nil }
func (f *fakeChat) Degraded() bool            { return f.degraded }

func sized(m Model) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func TestModel_SubmitRoundTrip(t *testing.T) {
	chat := &fakeChat{}
	m := sized(New(context.Background(), chat))
	m.input.SetValue("how do I write a cold email?")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if !m.busy {
		t.Fatal("model should be busy after Enter")
	}
	if m.input.Value() != "" {
		t.Error("input should be cleared after Enter")
	}
	if cmd == nil {
		t.Fatal("Enter should return a submit command")
	}

	// A second Enter while busy is ignored
	m.input.SetValue("again")
	if _, again := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); again != nil {
		t.Error("Enter while busy should not submit")
	}

	next, _ = m.Update(cmd())
	m = next.(Model)
	if m.busy {
		t.Error("model should be idle after the reply")
	}
	if !strings.Contains(m.status, "M4") {
		t.Errorf("status = %q, want suggested module", m.status)
	}
	if len(chat.messages) != 2 {
		t.Errorf("chat has %d messages, want 2", len(chat.messages))
	}
}

func TestModel_ClearNeedsConfirmation(t *testing.T) {
	chat := &fakeChat{messages: []models.Message{{ID: 1, Role: models.RoleUser, Content: "hi"}}}
	m := sized(New(context.Background(), chat))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	m = next.(Model)
	if chat.cleared {
		t.Fatal("history cleared without confirmation")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	m = next.(Model)
	if !chat.cleared {
		t.Error("history should be cleared after confirming")
	}
}

func TestModel_ViewShowsLimitedMode(t *testing.T) {
	chat := &fakeChat{degraded: true}
	m := New(context.Background(), chat)
	if m.View() != "Loading..." {
		t.Error("View() before sizing should show loading")
	}
	m = sized(m)
	if !strings.Contains(m.View(), "limited mode") {
		t.Error("View() should show the limited mode badge")
	}
}

func TestRenderTranscript(t *testing.T) {
	if got := RenderTranscript(nil, false); !strings.Contains(got, "No messages yet") {
		t.Errorf("empty transcript = %q", got)
	}

	got := RenderTranscript([]models.Message{
		{ID: 1, Role: models.RoleUser, Content: "pricing?"},
		{ID: 2, Role: models.RoleAssistant, Content: "See Module 5: Sponsorship Packages.", RecommendedModule: models.ModulePtr(models.ModuleProposals)},
	}, true)

	for _, want := range []string{"You:", "pricing?", "Coach:", "Module 5: Sponsorship Packages", "Recommended: M5", "Coach is typing..."} {
		if !strings.Contains(got, want) {
			t.Errorf("transcript missing %q", want)
		}
	}
}
