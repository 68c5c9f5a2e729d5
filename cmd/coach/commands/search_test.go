// ABOUTME: Tests for the search command
// ABOUTME: Verifies ranking output, limits and empty results
package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/harper/tap-coach/internal/retrieval"
)

func TestNewSearchCmd(t *testing.T) {
	cmd := NewSearchCmd()

	if cmd.Use != "search <query>" {
		t.Errorf("Use = %q, want %q", cmd.Use, "search <query>")
	}
	limit := cmd.Flags().Lookup("limit")
	if limit == nil {
		t.Fatal("--limit flag not found")
	}
	if limit.DefValue != "5" {
		t.Errorf("--limit default = %q, want %q", limit.DefValue, "5")
	}
}

func TestSearchCmd_Table(t *testing.T) {
	setupCorpus(t)

	stdout, _, err := runRoot(t, "--ephemeral", "search", "sponsorship", "tiers")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	assertContains(t, stdout, "SCORE")
	assertContains(t, stdout, "M5")
	assertContains(t, stdout, "Sponsorship Tiers")
}

func TestSearchCmd_JSONLimit(t *testing.T) {
	setupCorpus(t)

	stdout, _, err := runRoot(t, "--ephemeral", "--format", "json", "search", "--limit", "1", "sponsor")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	var results []retrieval.Result
	if err := json.Unmarshal([]byte(stdout), &results); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Score <= 0 {
		t.Errorf("score = %d, want > 0", results[0].Score)
	}
}

func TestSearchCmd_NoResults(t *testing.T) {
	setupCorpus(t)

	stdout, _, err := runRoot(t, "--ephemeral", "search", "zzzqqq")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	assertContains(t, stdout, "No sections found")
}

func TestSearchCmd_InvalidLimit(t *testing.T) {
	setupCorpus(t)

	_, _, err := runRoot(t, "--ephemeral", "search", "--limit", "0", "tiers")
	if err == nil || !strings.Contains(err.Error(), "limit") {
		t.Errorf("expected limit error, got %v", err)
	}
}
