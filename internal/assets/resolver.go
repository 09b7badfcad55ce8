package assets

import (
	"errors"
	"sort"
)

// AssetResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the asset is not found in the custom location.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded assets are used.
// If customBasePath is set, custom assets take precedence with fallback to embedded.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadStyle loads a CSS style, trying custom loader first if available.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return loadWithFallback(r, func(loader AssetLoader) (string, error) {
		return loader.LoadStyle(name)
	})
}

// LoadTemplate loads a template, trying custom loader first if available.
func (r *AssetResolver) LoadTemplate(id string) (*Template, error) {
	return loadWithFallback(r, func(loader AssetLoader) (*Template, error) {
		return loader.LoadTemplate(id)
	})
}

// ListTemplates returns the union of custom and embedded identifiers, sorted.
func (r *AssetResolver) ListTemplates() ([]string, error) {
	ids, err := r.embedded.ListTemplates()
	if err != nil {
		return nil, err
	}
	if r.custom == nil {
		return ids, nil
	}

	custom, err := r.custom.ListTemplates()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(ids)+len(custom))
	for _, id := range ids {
		seen[id] = true
	}
	for _, id := range custom {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// loadWithFallback implements the custom-first, fallback-to-embedded logic.
func loadWithFallback[T any](r *AssetResolver, loadFn func(AssetLoader) (T, error)) (T, error) {
	// If no custom loader, use embedded directly
	if r.custom == nil {
		return loadFn(r.embedded)
	}

	// Try custom loader first
	v, err := loadFn(r.custom)
	if err == nil {
		return v, nil
	}

	// Only fall back for "not found" errors, not validation, parse or I/O errors
	if !isNotFoundError(err) {
		var zero T
		return zero, err
	}

	// Fall back to embedded
	return loadFn(r.embedded)
}

// isNotFoundError checks if the error indicates the asset was not found.
func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) ||
		errors.Is(err, ErrTemplateNotFound)
}

// HasCustomLoader returns true if a custom asset loader is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
