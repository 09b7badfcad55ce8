package md2resume

import (
	"fmt"
	"sort"
	"sync"

	"github.com/alnah/go-md2resume/internal/assets"
)

// DefaultTemplate is the identifier of the template used when none is chosen.
const DefaultTemplate = assets.DefaultTemplateID

// Template is a named set of style rules applied to rendered resume HTML.
type Template = assets.Template

// StyleRule holds the declarations for one selector, relative to the resume
// container. The empty selector targets the container itself.
type StyleRule = assets.StyleRule

// Declaration is a single CSS property/value pair. Property may be camelCase
// or kebab-case.
type Declaration = assets.Declaration

// builtinTemplates parses the embedded templates once per process.
var builtinTemplates = sync.OnceValues(func() (map[string]*Template, error) {
	loader := assets.NewEmbeddedLoader()
	ids, err := loader.ListTemplates()
	if err != nil {
		return nil, err
	}
	registry := make(map[string]*Template, len(ids))
	for _, id := range ids {
		tmpl, err := loader.LoadTemplate(id)
		if err != nil {
			return nil, convertAssetError(err)
		}
		registry[id] = tmpl
	}
	return registry, nil
})

// LookupTemplate returns a copy of the built-in template with the given
// identifier, or ErrTemplateNotFound.
func LookupTemplate(id string) (*Template, error) {
	registry, err := builtinTemplates()
	if err != nil {
		return nil, err
	}
	tmpl, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	return tmpl.Clone(), nil
}

// Templates returns copies of all built-in templates, sorted by identifier.
func Templates() ([]*Template, error) {
	registry, err := builtinTemplates()
	if err != nil {
		return nil, err
	}
	out := make([]*Template, 0, len(registry))
	for _, tmpl := range registry {
		out = append(out, tmpl.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
