// ABOUTME: Conversation session: owns the chat log and drives each exchange
// ABOUTME: retrieve → compose → complete → interpret, with a fixed fallback reply
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/harper/tap-coach/internal/corpus"
	"github.com/harper/tap-coach/internal/interpret"
	"github.com/harper/tap-coach/internal/llm"
	"github.com/harper/tap-coach/internal/logging"
	"github.com/harper/tap-coach/internal/models"
	"github.com/harper/tap-coach/internal/prompt"
	"github.com/harper/tap-coach/internal/retrieval"
	"github.com/harper/tap-coach/internal/storage"
)

var (
	// ErrEmptyInput rejects blank submissions
	ErrEmptyInput = errors.New("message is empty")
	// ErrBusy rejects a submission while another is in flight
	ErrBusy = errors.New("a reply is already in progress")
	// ErrInitializing rejects submissions until the corpus load finishes
	ErrInitializing = errors.New("knowledge base is still loading")
	// ErrNoCompleter marks a session running without a completion service
	ErrNoCompleter = errors.New("no completion service configured")
)

const fallbackFormat = "I'd be happy to help with TAP sponsorship questions! Based on your question, I'd suggest starting with %s for guidance on this topic."

// FallbackText is the reply used when the completion call fails
func FallbackText(id models.ModuleID) string {
	return fmt.Sprintf(fallbackFormat, id.Label())
}

// State is where the session is in its single-flight cycle
type State string

const (
	StateIdle         State = "idle"
	StateInitializing State = "initializing"
	StateAwaiting     State = "awaiting-completion"
)

// Options tunes a session
type Options struct {
	TopK   int
	Logger logging.Logger
}

// Session is the single conversation of this process
type Session struct {
	store     *storage.Storage
	loader    *corpus.Loader
	completer llm.Completer
	topK      int
	log       logging.Logger

	mu       sync.Mutex
	messages []models.Message
	state    State
	degraded bool
	lastID   int64
}

// New creates a session. A nil completer leaves the session permanently in
// limited mode: every submission gets the fallback reply.
func New(store *storage.Storage, loader *corpus.Loader, completer llm.Completer, opts Options) *Session {
	if opts.TopK <= 0 {
		opts.TopK = retrieval.DefaultTopK
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Session{
		store:     store,
		loader:    loader,
		completer: completer,
		topK:      opts.TopK,
		log:       opts.Logger,
		state:     StateIdle,
		degraded:  completer == nil,
	}
}

// Initialize restores the persisted log and loads the corpus. Submissions
// made while it runs fail with ErrInitializing; it refuses to run while a
// submission is in flight.
func (s *Session) Initialize(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case StateInitializing:
		s.mu.Unlock()
		return ErrInitializing
	case StateAwaiting:
		s.mu.Unlock()
		return ErrBusy
	}
	s.state = StateInitializing
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.state = StateIdle
		s.mu.Unlock()
	}()

	history, err := s.store.LoadHistory()
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.log.Warn("discarding unreadable chat history", "err", err)
	}

	s.mu.Lock()
	s.messages = history
	for _, m := range history {
		if m.ID > s.lastID {
			s.lastID = m.ID
		}
	}
	s.mu.Unlock()

	chunks := s.loader.Load(ctx)
	s.log.Info("session ready", "messages", len(history), "chunks", len(chunks))
	return nil
}

// Submit runs one exchange and returns the appended assistant message.
// Completion failures are absorbed into a fallback reply; only input and
// state errors are returned.
func (s *Session) Submit(ctx context.Context, text string) (models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Message{}, ErrEmptyInput
	}

	s.mu.Lock()
	switch s.state {
	case StateInitializing:
		s.mu.Unlock()
		return models.Message{}, ErrInitializing
	case StateAwaiting:
		s.mu.Unlock()
		return models.Message{}, ErrBusy
	}
	s.state = StateAwaiting
	s.appendLocked(models.RoleUser, text, nil)
	history := s.snapshotLocked()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.state = StateIdle
		s.mu.Unlock()
	}()

	trace := uuid.New().String()
	chunks := retrieval.Search(s.loader.Chunks(), text, s.topK)
	s.log.Debug("retrieved context", "trace", trace, "chunks", len(chunks))

	raw, err := s.complete(ctx, prompt.Compose(chunks), history)

	var result interpret.Result
	if err == nil {
		result = interpret.Interpret(raw, text, chunks)
		if result.ModuleID == nil {
			err = llm.ErrEmptyCompletion
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		id, tier := interpret.InferTier("", text, chunks)
		s.log.Warn("completion failed, using fallback reply", "trace", trace, "module", id, "tier", tier, "err", err)
		s.degraded = true
		return s.appendLocked(models.RoleAssistant, FallbackText(id), models.ModulePtr(id)), nil
	}

	s.log.Debug("interpreted reply", "trace", trace, "module", *result.ModuleID, "tier", result.Tier)
	s.degraded = false
	return s.appendLocked(models.RoleAssistant, result.Text, result.ModuleID), nil
}

func (s *Session) complete(ctx context.Context, system string, history []models.Message) (string, error) {
	if s.completer == nil {
		return "", ErrNoCompleter
	}

	messages := make([]llm.ChatMessage, 0, len(history)+1)
	messages = append(messages, llm.ChatMessage{Role: llm.RoleSystem, Content: system})
	for _, m := range history {
		role := llm.RoleUser
		if m.Role == models.RoleAssistant {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.ChatMessage{Role: role, Content: m.Content})
	}
	return s.completer.Complete(ctx, messages)
}

// appendLocked adds a message and persists the log. Persistence failures
// are logged and never undo the append.
func (s *Session) appendLocked(role models.Role, content string, module *models.ModuleID) models.Message {
	s.lastID = models.NewMessageID(s.lastID)
	msg := models.Message{
		ID:                s.lastID,
		Role:              role,
		Content:           content,
		RecommendedModule: module,
	}
	s.messages = append(s.messages, msg)

	if err := s.store.SaveHistory(s.messages); err != nil {
		s.log.Error("failed to persist chat history", "err", err)
	}
	return msg
}

func (s *Session) snapshotLocked() []models.Message {
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// History returns a copy of the chat log in insertion order
func (s *Session) History() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// ClearHistory empties the log in memory and in storage. It fails with
// ErrBusy while a submission is in flight.
func (s *Session) ClearHistory() error {
	s.mu.Lock()
	if s.state == StateAwaiting {
		s.mu.Unlock()
		return ErrBusy
	}
	s.messages = nil
	s.mu.Unlock()

	if err := s.store.ClearHistory(); err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}
	return nil
}

// Search exposes retrieval over the loaded corpus
func (s *Session) Search(query string, k int) []models.Chunk {
	return retrieval.Search(s.loader.Chunks(), query, k)
}

// State reports the current single-flight state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Busy reports whether a submission is in flight
func (s *Session) Busy() bool {
	return s.State() == StateAwaiting
}

// Degraded reports limited mode: the last completion failed or none is configured
func (s *Session) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}
