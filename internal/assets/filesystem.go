package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader reads custom assets from a user directory laid out as
// styles/{name}.css and templates/{id}.yaml.
type FilesystemLoader struct {
	basePath string // absolute, symlinks resolved
}

// NewFilesystemLoader returns ErrInvalidBasePath unless basePath is a
// readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, abs)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, abs)
	}
	if _, err := os.ReadDir(abs); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{basePath: abs}, nil
}

// LoadStyle returns the contents of styles/{name}.css.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	data, err := f.readAsset("styles", name, ".css", ErrStyleNotFound)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LoadTemplate parses templates/{id}.yaml.
func (f *FilesystemLoader) LoadTemplate(id string) (*Template, error) {
	data, err := f.readAsset("templates", id, ".yaml", ErrTemplateNotFound)
	if err != nil {
		return nil, err
	}
	return ParseTemplate(id, data)
}

// ListTemplates returns the identifiers found in templates/. A missing
// directory yields an empty list.
func (f *FilesystemLoader) ListTemplates() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(f.basePath, "templates"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return templateIDs(entries), nil
}

func (f *FilesystemLoader) readAsset(dir, name, ext string, notFound error) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	path := filepath.Join(f.basePath, dir, name+ext)
	if err := f.contain(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- name validated, path contained
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", notFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return data, nil
}

// contain returns ErrPathTraversal when path, after resolving symlinks,
// lies outside basePath. Paths that do not exist yet are checked as given.
func (f *FilesystemLoader) contain(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	// Trailing separator so /base/cv does not match /base/cv-old.
	if !strings.HasPrefix(abs, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}
	return nil
}
