package assets

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a CSS file by name using the default embedded loader.
// The name should not include the .css extension or path components.
// Returns ErrStyleNotFound if the style does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads a built-in template using the default embedded loader.
// Returns ErrTemplateNotFound if the template does not exist.
// Returns ErrInvalidAssetName if the identifier contains path separators or traversal.
func LoadTemplate(id string) (*Template, error) {
	return defaultLoader.LoadTemplate(id)
}

// ListTemplates returns the built-in template identifiers, sorted.
func ListTemplates() ([]string, error) {
	return defaultLoader.ListTemplates()
}
