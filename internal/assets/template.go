package assets

import (
	"fmt"

	"github.com/alnah/go-md2resume/internal/yamlutil"
)

// DefaultTemplateID is the template used when none is configured.
const DefaultTemplateID = "modern"

// PageStyleName is the embedded stylesheet with page box and print rules.
const PageStyleName = "page"

// Declaration is a single CSS property/value pair.
// Property may be camelCase or kebab-case.
type Declaration struct {
	Property string
	Value    string
}

// StyleRule holds the declarations applied to one selector, relative to the
// resume container. The empty selector targets the container itself.
type StyleRule struct {
	Selector     string
	Declarations []Declaration
}

// Template is a named set of style rules applied to rendered resume HTML.
type Template struct {
	ID     string
	Name   string
	Styles []StyleRule
}

// Clone returns a deep copy so callers cannot mutate registry data.
func (t *Template) Clone() *Template {
	if t == nil {
		return nil
	}
	styles := make([]StyleRule, len(t.Styles))
	for i, r := range t.Styles {
		styles[i] = StyleRule{
			Selector:     r.Selector,
			Declarations: append([]Declaration(nil), r.Declarations...),
		}
	}
	return &Template{ID: t.ID, Name: t.Name, Styles: styles}
}

// Validate checks that every selector appears at most once.
func (t *Template) Validate() error {
	seen := make(map[string]bool, len(t.Styles))
	for _, r := range t.Styles {
		if seen[r.Selector] {
			return fmt.Errorf("%w: %q in template %q", ErrDuplicateSelector, r.Selector, t.ID)
		}
		seen[r.Selector] = true
	}
	return nil
}

// templateFile mirrors the on-disk YAML layout.
type templateFile struct {
	Name   string     `yaml:"name"`
	Styles []ruleFile `yaml:"styles"`
}

type ruleFile struct {
	Selector     string              `yaml:"selector"`
	Declarations []map[string]string `yaml:"declarations"`
}

// ParseTemplate decodes template YAML. The identifier comes from the file
// name, not the document.
func ParseTemplate(id string, data []byte) (*Template, error) {
	var f templateFile
	if err := yamlutil.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrTemplateParse, id, err)
	}
	if f.Name == "" {
		return nil, fmt.Errorf("%w: %q: missing name", ErrTemplateParse, id)
	}

	tmpl := &Template{
		ID:     id,
		Name:   f.Name,
		Styles: make([]StyleRule, 0, len(f.Styles)),
	}
	for _, rf := range f.Styles {
		rule := StyleRule{
			Selector:     rf.Selector,
			Declarations: make([]Declaration, 0, len(rf.Declarations)),
		}
		for i, d := range rf.Declarations {
			if len(d) != 1 {
				return nil, fmt.Errorf("%w: %q: selector %q declaration %d must have exactly one property, got %d",
					ErrTemplateParse, id, rf.Selector, i, len(d))
			}
			for prop, value := range d {
				rule.Declarations = append(rule.Declarations, Declaration{Property: prop, Value: value})
			}
		}
		tmpl.Styles = append(tmpl.Styles, rule)
	}

	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return tmpl, nil
}
