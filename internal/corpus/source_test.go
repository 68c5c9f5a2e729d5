package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harper/tap-coach/internal/models"
)

func TestDefaultSources(t *testing.T) {
	sources := DefaultSources("data/modules")
	if len(sources) != len(models.Catalog) {
		t.Fatalf("DefaultSources() returned %d, want %d", len(sources), len(models.Catalog))
	}
	if sources[2].Location != filepath.Join("data/modules", "module3.md") {
		t.Errorf("sources[2].Location = %s", sources[2].Location)
	}
	if sources[2].Title != "Finding the Right Contacts" {
		t.Errorf("sources[2].Title = %s", sources[2].Title)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.yaml")
	manifest := `modules:
  - id: M1
    source: lessons/one.md
  - id: M4
    source: https://example.org/module4.md
    title: Outreach
`
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest() failed: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("got %d sources, want 2", len(sources))
	}
	if sources[0].Location != filepath.Join(dir, "lessons/one.md") {
		t.Errorf("relative source not resolved: %s", sources[0].Location)
	}
	if sources[0].Title != "Foundation & Preparation" {
		t.Errorf("missing title should default, got %s", sources[0].Title)
	}
	if !sources[1].IsRemote() || sources[1].Title != "Outreach" {
		t.Errorf("sources[1] = %+v", sources[1])
	}
}

func TestLoadManifest_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown module", "modules:\n  - id: M9\n    source: x.md\n"},
		{"missing source", "modules:\n  - id: M2\n"},
		{"empty", "modules: []\n"},
		{"not yaml", "modules: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "corpus.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadManifest(path); err == nil {
				t.Error("LoadManifest() expected error")
			}
		})
	}
}
