// ABOUTME: Describes where each curriculum module document lives
// ABOUTME: Sources come from the built-in catalog or a YAML manifest
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harper/tap-coach/internal/models"
)

// Source is one module document: a local path or an http(s) URL
type Source struct {
	ModuleID models.ModuleID `yaml:"id"`
	Location string          `yaml:"source"`
	Title    string          `yaml:"title"`
}

// Manifest is the on-disk list of module sources
type Manifest struct {
	Modules []Source `yaml:"modules"`
}

// IsRemote reports whether the source must be fetched over HTTP
func (s Source) IsRemote() bool {
	return strings.HasPrefix(s.Location, "http://") || strings.HasPrefix(s.Location, "https://")
}

// DefaultSources maps every catalog module to dir/moduleN.md
func DefaultSources(dir string) []Source {
	sources := make([]Source, 0, len(models.Catalog))
	for _, m := range models.Catalog {
		sources = append(sources, Source{
			ModuleID: m.ID,
			Location: filepath.Join(dir, fmt.Sprintf("module%d.md", m.ID.Number())),
			Title:    m.Title,
		})
	}
	return sources
}

// LoadManifest reads a YAML manifest. Relative local paths resolve against
// the manifest's directory and a missing title defaults to the catalog title.
func LoadManifest(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	if len(manifest.Modules) == 0 {
		return nil, fmt.Errorf("manifest %s lists no modules", path)
	}

	base := filepath.Dir(path)
	for i := range manifest.Modules {
		src := &manifest.Modules[i]
		if !src.ModuleID.IsValid() {
			return nil, fmt.Errorf("manifest entry %d: unknown module %q", i, src.ModuleID)
		}
		if src.Location == "" {
			return nil, fmt.Errorf("manifest entry %d (%s): source is required", i, src.ModuleID)
		}
		if !src.IsRemote() && !filepath.IsAbs(src.Location) {
			src.Location = filepath.Join(base, src.Location)
		}
		if src.Title == "" {
			src.Title = src.ModuleID.Title()
		}
	}
	return manifest.Modules, nil
}

// ResolveSources picks the manifest when one is configured, otherwise the
// catalog defaults under dir
func ResolveSources(manifestPath, dir string) ([]Source, error) {
	if manifestPath != "" {
		return LoadManifest(manifestPath)
	}
	return DefaultSources(dir), nil
}
