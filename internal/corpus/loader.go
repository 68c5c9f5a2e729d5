// ABOUTME: Corpus loader: fetches module documents, chunks them, caches the result
// ABOUTME: Loads at most once per session; a cached chunk set skips all fetching
package corpus

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/harper/tap-coach/internal/logging"
	"github.com/harper/tap-coach/internal/models"
	"github.com/harper/tap-coach/internal/storage"
)

// DefaultFetchTimeout bounds a single remote document fetch
const DefaultFetchTimeout = 30 * time.Second

// Stats summarizes the loaded chunk set
type Stats struct {
	Loaded    bool                    `json:"loaded"`
	FromCache bool                    `json:"fromCache"`
	Chunks    int                     `json:"chunks"`
	PerModule map[models.ModuleID]int `json:"perModule"`
	Failed    []models.ModuleID       `json:"failed,omitempty"`
}

// Loader produces the chunk set used by retrieval
type Loader struct {
	store   *storage.Storage
	sources []Source
	http    *resty.Client
	log     logging.Logger

	mu        sync.Mutex
	chunks    []models.Chunk
	loaded    bool
	fromCache bool
	failed    []models.ModuleID
}

// NewLoader creates a loader over the given sources
func NewLoader(store *storage.Storage, sources []Source, log logging.Logger) *Loader {
	if log == nil {
		log = logging.Discard()
	}
	return &Loader{
		store:   store,
		sources: sources,
		http: resty.New().
			SetTimeout(DefaultFetchTimeout).
			SetHeader("Accept", "text/markdown, text/plain, */*"),
		log: log,
	}
}

// Load returns the chunk set, reading the cache or fetching every source on
// first use. Fetch failures for individual modules are logged and skipped; an
// empty result means no context is available and is not an error.
func (l *Loader) Load(ctx context.Context) []models.Chunk {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded {
		return l.snapshot()
	}

	if cached, err := l.store.LoadChunks(); err == nil && len(cached) > 0 {
		l.log.Debug("using cached knowledge base", "chunks", len(cached))
		l.setLoaded(cached, true, nil)
		return l.snapshot()
	} else if err != nil && !errors.Is(err, storage.ErrNotFound) {
		l.log.Warn("ignoring unusable knowledge base cache", "err", err)
	}

	var chunks []models.Chunk
	var failed []models.ModuleID
	for _, src := range l.sources {
		if ctx.Err() != nil {
			l.log.Warn("corpus load interrupted", "err", ctx.Err())
			break
		}
		text, err := l.fetch(ctx, src)
		if err != nil {
			l.log.Warn("could not load module", "module", src.ModuleID, "source", src.Location, "err", err)
			failed = append(failed, src.ModuleID)
			continue
		}
		moduleChunks := Split(src.ModuleID, src.Title, text)
		l.log.Debug("chunked module", "module", src.ModuleID, "chunks", len(moduleChunks))
		chunks = append(chunks, moduleChunks...)
	}

	if len(chunks) > 0 {
		if err := l.store.SaveChunks(chunks); err != nil {
			l.log.Error("failed to cache knowledge base", "err", err)
		}
	}

	l.setLoaded(chunks, false, failed)
	l.log.Info("knowledge base loaded", "chunks", len(chunks), "failed", len(failed))
	return l.snapshot()
}

// Reload drops the cache and loads every source again
func (l *Loader) Reload(ctx context.Context) []models.Chunk {
	if err := l.Clear(); err != nil {
		l.log.Warn("failed to clear knowledge base cache", "err", err)
	}
	return l.Load(ctx)
}

// Clear forgets the in-memory chunk set and deletes the cache
func (l *Loader) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.chunks = nil
	l.loaded = false
	l.fromCache = false
	l.failed = nil
	return l.store.ClearChunks()
}

// Chunks returns the chunk set loaded so far without triggering a load
func (l *Loader) Chunks() []models.Chunk {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

// Stats reports what the last load produced
func (l *Loader) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	perModule := make(map[models.ModuleID]int)
	for _, c := range l.chunks {
		perModule[c.ModuleID]++
	}
	return Stats{
		Loaded:    l.loaded,
		FromCache: l.fromCache,
		Chunks:    len(l.chunks),
		PerModule: perModule,
		Failed:    append([]models.ModuleID(nil), l.failed...),
	}
}

func (l *Loader) setLoaded(chunks []models.Chunk, fromCache bool, failed []models.ModuleID) {
	l.chunks = chunks
	l.loaded = true
	l.fromCache = fromCache
	l.failed = failed
}

func (l *Loader) snapshot() []models.Chunk {
	out := make([]models.Chunk, len(l.chunks))
	copy(out, l.chunks)
	return out
}

func (l *Loader) fetch(ctx context.Context, src Source) (string, error) {
	if !src.IsRemote() {
		data, err := os.ReadFile(src.Location)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	resp, err := l.http.R().SetContext(ctx).Get(src.Location)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode())
	}
	return resp.String(), nil
}
