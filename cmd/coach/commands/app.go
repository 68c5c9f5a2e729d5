// ABOUTME: Wires config, storage, corpus, completion client and session
// ABOUTME: Shared by every command that needs the coaching stack
package commands

import (
	"context"
	"fmt"

	"github.com/harper/tap-coach/internal/config"
	"github.com/harper/tap-coach/internal/corpus"
	"github.com/harper/tap-coach/internal/llm"
	"github.com/harper/tap-coach/internal/logging"
	"github.com/harper/tap-coach/internal/lookup"
	"github.com/harper/tap-coach/internal/session"
	"github.com/harper/tap-coach/internal/storage"
)

// app holds the wired coaching stack for one command run
type app struct {
	cfg     *config.Config
	store   *storage.Storage
	loader  *corpus.Loader
	session *session.Session
}

// openStore picks the in-memory store for --ephemeral runs, charm KV otherwise
var openStore = func(cfg *config.Config) (*storage.Storage, error) {
	if ephemeral {
		return storage.NewStorageInMemory(), nil
	}
	return storage.NewStorage(cfg.Charm())
}

// newApp builds the stack without loading anything
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	sources, err := corpus.ResolveSources(cfg.CorpusManifest, cfg.CorpusDir)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("resolving corpus sources: %w", err)
	}
	loader := corpus.NewLoader(store, sources, logging.For("corpus"))

	var completer llm.Completer
	if cfg.OpenAIKey != "" {
		client, err := llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
			APIKey:      cfg.OpenAIKey,
			BaseURL:     cfg.OpenAIBaseURL,
			ChatModel:   cfg.ChatModel,
			Temperature: float32(cfg.Temperature),
			MaxTokens:   cfg.MaxTokens,
			Timeout:     cfg.CompletionTimeout,
			MaxRetries:  cfg.MaxRetries,
			RetryDelay:  cfg.RetryDelay,
		})
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("initializing OpenAI client: %w", err)
		}
		logging.For("app").Debug("completion client ready", "model", client.Model())
		completer = client
	} else {
		logging.For("app").Warn("OPENAI_API_KEY not set, running in limited mode")
	}

	sess := session.New(store, loader, completer, session.Options{
		TopK:   cfg.TopK,
		Logger: logging.For("session"),
	})

	return &app{cfg: cfg, store: store, loader: loader, session: sess}, nil
}

// openApp builds the stack and initializes the session (history + corpus)
func openApp(ctx context.Context) (*app, error) {
	a, err := newApp()
	if err != nil {
		return nil, err
	}
	if err := a.session.Initialize(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// hunter returns the contact lookup client, or nil when unconfigured
func (a *app) hunter() *lookup.HunterClient {
	if a.cfg.HunterAPIKey == "" {
		return nil
	}
	return lookup.NewHunterClient(a.cfg.HunterAPIKey, a.cfg.HunterBaseURL, a.cfg.LookupTimeout)
}

func (a *app) Close() error {
	return a.store.Close()
}
