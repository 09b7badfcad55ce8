package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed styles/*.css
var styles embed.FS

//go:embed templates/*.yaml
var templates embed.FS

// EmbeddedLoader loads assets from embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a CSS style from embedded assets by name.
// The name should not include the .css extension.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// LoadTemplate loads and parses a built-in template by identifier.
func (e *EmbeddedLoader) LoadTemplate(id string) (*Template, error) {
	if err := ValidateAssetName(id); err != nil {
		return nil, err
	}

	content, err := templates.ReadFile("templates/" + id + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}

	return ParseTemplate(id, content)
}

// ListTemplates returns the identifiers of the built-in templates.
func (e *EmbeddedLoader) ListTemplates() ([]string, error) {
	entries, err := fs.ReadDir(templates, "templates")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return templateIDs(entries), nil
}

// templateIDs extracts sorted identifiers from *.yaml directory entries.
func templateIDs(entries []fs.DirEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".yaml")
		if ValidateAssetName(id) != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
