// ABOUTME: Bubble Tea chat view for the coaching session
// ABOUTME: Async submissions, highlighted module links, limited-mode badge
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harper/tap-coach/internal/interpret"
	"github.com/harper/tap-coach/internal/models"
)

// ChatPort is the TUI-facing subset of the session
type ChatPort interface {
	Submit(ctx context.Context, text string) (models.Message, error)
	History() []models.Message
	ClearHistory() error
	Degraded() bool
}

// replyMsg carries the outcome of an async submission
type replyMsg struct {
	message models.Message
	err     error
}

// Model is the Bubble Tea model for the chat
type Model struct {
	chat         ChatPort
	ctx          context.Context
	input        textinput.Model
	viewport     viewport.Model
	status       string
	busy         bool
	confirmClear bool
	ready        bool
}

// New creates a chat model over the session
func New(ctx context.Context, chat ChatPort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about sponsorship outreach and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	return Model{
		chat:     chat,
		ctx:      ctx,
		input:    ti,
		viewport: viewport.New(0, 0),
		status:   "Ctrl+L clears history, Ctrl+C quits.",
	}
}

// Init starts the cursor blink
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and reply events
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, bh := transcriptStyle.GetFrameSize()
		_, ih := inputStyle.GetFrameSize()
		reserved := 2 + ih + bh + 1 // header, status, spacer
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = max(3, msg.Height-reserved)
		m.refresh()
		return m, nil

	case replyMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
		} else if id := msg.message.Recommendation(); id != "" {
			m.status = fmt.Sprintf("Suggested: %s · %s", id, id.Title())
		} else {
			m.status = "Ready."
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}

		if m.confirmClear {
			m.confirmClear = false
			if msg.String() == "y" || msg.String() == "Y" {
				if err := m.chat.ClearHistory(); err != nil {
					m.status = "Error: " + err.Error()
				} else {
					m.status = "Chat history cleared."
				}
				m.refresh()
			} else {
				m.status = "Clear cancelled."
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlL:
			m.confirmClear = true
			m.status = "Clear all chat history? This cannot be undone. (y/n)"
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.busy {
				return m, nil
			}
			m.busy = true
			m.input.SetValue("")
			m.status = "Thinking..."
			m.refresh()
			return m, m.submit(text)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit(text string) tea.Cmd {
	chat, ctx := m.chat, m.ctx
	return func() tea.Msg {
		reply, err := chat.Submit(ctx, text)
		return replyMsg{message: reply, err: err}
	}
}

// View renders the transcript, input and status line
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("TAP Sponsorship Coach")
	if m.chat.Degraded() {
		header += " " + limitedStyle.Render("limited mode")
	}
	transcript := transcriptStyle.Render(m.viewport.View())
	input := inputStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + transcript + "\n" + input + "\n" + status
}

// refresh re-renders the transcript and scrolls to the newest message
func (m *Model) refresh() {
	m.viewport.SetContent(RenderTranscript(m.chat.History(), m.busy))
	m.viewport.GotoBottom()
}

// RenderTranscript formats the chat log for display
func RenderTranscript(messages []models.Message, pending bool) string {
	if len(messages) == 0 && !pending {
		return mutedStyle.Render("No messages yet. Ask how to find sponsors, write outreach emails, or price packages.")
	}

	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch msg.Role {
		case models.RoleUser:
			b.WriteString(userStyle.Render("You: "))
			b.WriteString(msg.Content)
		default:
			b.WriteString(coachStyle.Render("Coach: "))
			b.WriteString(interpret.RenderLinks(msg.Content, func(l interpret.Link) string {
				return linkStyle.Render(l.Text)
			}))
			if id := msg.Recommendation(); id != "" {
				b.WriteString("\n")
				b.WriteString(suggestStyle.Render(fmt.Sprintf("→ Recommended: %s %s", id, id.Title())))
			}
		}
	}
	if pending {
		if len(messages) > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(mutedStyle.Render("Coach is typing..."))
	}
	return b.String()
}

var (
	headerStyle     = lipgloss.NewStyle().Bold(true)
	limitedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")).Padding(0, 1)
	transcriptStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	userStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	coachStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	linkStyle       = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("6"))
	suggestStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("6"))
)
