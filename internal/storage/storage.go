// ABOUTME: Persistent state for the coach: chunk cache, chat log and lookup spend
// ABOUTME: Serializes state as JSON under fixed keys in a key-value store
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/harper/tap-coach/internal/charm"
	"github.com/harper/tap-coach/internal/models"
)

// Fixed keys in the key-value store
const (
	KnowledgeBaseKey = "tap-knowledge-base"
	ChatHistoryKey   = "tap-chat-history"
	LookupUsageKey   = "apify_usage_stats"
)

// ErrNotFound is returned when a key has never been written (first run)
var ErrNotFound = errors.New("not found")

// KV is the minimal key-value surface the coach persists through.
// Get returns (nil, nil) for a missing key.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// Storage reads and writes the coach's persisted state
type Storage struct {
	kv KV
}

// NewStorage opens the charm-backed store
func NewStorage(cfg *charm.Config) (*Storage, error) {
	client, err := charm.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open key-value store: %w", err)
	}
	return &Storage{kv: client}, nil
}

// NewStorageWithKV wraps an arbitrary KV implementation
func NewStorageWithKV(kv KV) *Storage {
	return &Storage{kv: kv}
}

// NewStorageInMemory creates a process-local store (for tests and --ephemeral)
func NewStorageInMemory() *Storage {
	return &Storage{kv: NewMemoryKV()}
}

// Close releases the underlying store if it holds resources
func (s *Storage) Close() error {
	if c, ok := s.kv.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// ErrSyncUnsupported is returned by Sync for stores without a remote
var ErrSyncUnsupported = errors.New("store does not sync")

// Sync pushes and pulls the store's remote copy when it has one
func (s *Storage) Sync() error {
	syncer, ok := s.kv.(interface{ Sync() error })
	if !ok {
		return ErrSyncUnsupported
	}
	return syncer.Sync()
}

// LoadChunks returns the cached chunk set.
// ErrNotFound means no cache; any other error means the cache is unusable.
func (s *Storage) LoadChunks() ([]models.Chunk, error) {
	var chunks []models.Chunk
	if err := s.getJSON(KnowledgeBaseKey, &chunks); err != nil {
		return nil, err
	}
	for _, c := range chunks {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("cached chunk set is invalid: %w", err)
		}
	}
	return chunks, nil
}

// SaveChunks caches the chunk set
func (s *Storage) SaveChunks(chunks []models.Chunk) error {
	return s.setJSON(KnowledgeBaseKey, chunks)
}

// ClearChunks drops the cached chunk set so the next load refetches
func (s *Storage) ClearChunks() error {
	return s.kv.Delete(KnowledgeBaseKey)
}

// LoadHistory returns the persisted chat log in insertion order
func (s *Storage) LoadHistory() ([]models.Message, error) {
	var messages []models.Message
	if err := s.getJSON(ChatHistoryKey, &messages); err != nil {
		return nil, err
	}
	for _, m := range messages {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("persisted chat history is invalid: %w", err)
		}
	}
	return messages, nil
}

// SaveHistory overwrites the persisted chat log
func (s *Storage) SaveHistory(messages []models.Message) error {
	if messages == nil {
		messages = []models.Message{}
	}
	return s.setJSON(ChatHistoryKey, messages)
}

// ClearHistory removes the persisted chat log
func (s *Storage) ClearHistory() error {
	return s.kv.Delete(ChatHistoryKey)
}

// LoadUsage returns this month's lookup spending, starting fresh when absent
// or unreadable and resetting when a new month has begun
func (s *Storage) LoadUsage(now time.Time) models.UsageStats {
	var usage models.UsageStats
	if err := s.getJSON(LookupUsageKey, &usage); err != nil {
		return models.NewUsageStats(now)
	}
	usage.ResetIfNewMonth(now)
	return usage
}

// SaveUsage persists lookup spending
func (s *Storage) SaveUsage(usage models.UsageStats) error {
	return s.setJSON(LookupUsageKey, usage)
}

func (s *Storage) setJSON(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return s.kv.Set(key, data)
}

func (s *Storage) getJSON(key string, dest interface{}) error {
	data, err := s.kv.Get(key)
	if err != nil {
		return err
	}
	if data == nil {
		return ErrNotFound
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return nil
}
