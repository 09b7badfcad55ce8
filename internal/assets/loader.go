package assets

// AssetLoader defines the contract for loading resume templates and stylesheets.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads and parses a resume template by identifier.
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the identifier contains invalid characters.
	LoadTemplate(id string) (*Template, error)

	// ListTemplates returns the identifiers of all available templates, sorted.
	ListTemplates() ([]string, error)
}
