package md2resume

import (
	"fmt"
	"strings"
)

// PrintMode selects how a resume is laid out.
type PrintMode string

const (
	// PrintModeSingle fits the whole resume on one self-scaling page.
	PrintModeSingle PrintMode = "single"

	// PrintModePaged splits the resume into pages at level-2 headings.
	PrintModePaged PrintMode = "paged"
)

// ParsePrintMode parses a print mode name, case-insensitively.
func ParsePrintMode(s string) (PrintMode, error) {
	m := PrintMode(strings.ToLower(strings.TrimSpace(s)))
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

// Validate checks that m is a known print mode.
func (m PrintMode) Validate() error {
	switch m {
	case PrintModeSingle, PrintModePaged:
		return nil
	}
	return fmt.Errorf("%w: %q (must be single or paged)", ErrInvalidPrintMode, string(m))
}

// PageSize names the paper format used for page boxes and printing.
type PageSize string

const (
	PageSizeA4     PageSize = "a4"
	PageSizeLetter PageSize = "letter"

	// DefaultPageSize is used when Input.PageSize is empty.
	DefaultPageSize = PageSizeA4
)

// ParsePageSize parses a page size name, case-insensitively.
func ParsePageSize(s string) (PageSize, error) {
	p := PageSize(strings.ToLower(strings.TrimSpace(s)))
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

// Validate checks that p is a known page size.
func (p PageSize) Validate() error {
	switch p {
	case PageSizeA4, PageSizeLetter:
		return nil
	}
	return fmt.Errorf("%w: %q (must be a4 or letter)", ErrInvalidPageSize, string(p))
}

// Dimensions returns the paper width and height in inches.
func (p PageSize) Dimensions() (width, height float64) {
	if p == PageSizeLetter {
		return 8.5, 11
	}
	return 8.27, 11.69
}

// Input contains render parameters.
type Input struct {
	Markdown  string    // Markdown content; empty renders an empty page
	Template  *Template // Visual template (required)
	Mode      PrintMode // single or paged (required)
	PageSize  PageSize  // a4 or letter (optional, empty = DefaultPageSize)
	SourceDir string    // Directory for resolving relative image paths (optional)
}

// RenderResult is the output of a render.
type RenderResult struct {
	HTML  string    // <style> block followed by page markup
	Pages int       // Number of page containers in HTML
	Mode  PrintMode // Mode the markup was laid out for
}
