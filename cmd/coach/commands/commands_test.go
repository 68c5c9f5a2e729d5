// ABOUTME: Shared helpers for command tests
// ABOUTME: Builds a temporary corpus and runs the root command in memory
package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harper/tap-coach/internal/config"
	"github.com/harper/tap-coach/internal/storage"
)

var testModules = map[string]string{
	"module1.md": `# Foundation

## Defining Your Mission
Write a one-paragraph mission statement that explains who you serve, what changes because of your work, and why a sponsor should care about that change.
`,
	"module4.md": `# Email Outreach

## Cold Email Structure
A cold email to a sponsor should open with a specific connection to their brand, state the ask in one sentence, and close with a clear next step and a follow-up date.
`,
	"module5.md": `# Packages

## Sponsorship Tiers
Offer three sponsorship tiers such as bronze, silver and gold. Each tier lists concrete benefits, audience reach, recognition placements, and the price the sponsor pays.
`,
}

// setupCorpus writes module documents to a temp dir and points the config at it
func setupCorpus(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range testModules {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	for _, key := range []string{
		"OPENAI_API_KEY", "HUNTER_API_KEY", "APIFY_API_TOKEN",
		"COACH_CORPUS_MANIFEST", "COACH_LOG_LEVEL", "COACH_LOG_JSON",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("COACH_CORPUS_DIR", dir)
	return dir
}

// runRoot executes the root command with args, returning stdout and stderr
func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func assertContains(t *testing.T, s, want string) {
	t.Helper()
	if !strings.Contains(s, want) {
		t.Errorf("output missing %q:\n%s", want, s)
	}
}

// useSharedStore makes every command run in the test see the same store
func useSharedStore(t *testing.T) *storage.Storage {
	t.Helper()

	store := storage.NewStorageInMemory()
	original := openStore
	openStore = func(*config.Config) (*storage.Storage, error) { return store, nil }
	t.Cleanup(func() { openStore = original })
	return store
}
