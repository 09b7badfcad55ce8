package md2resume

import (
	"context"
	"fmt"
	"sync"

	"github.com/alnah/go-md2resume/internal/pipeline"
)

// DefaultPageBudget is the approximate number of characters per page in
// paged mode.
const DefaultPageBudget = pipeline.DefaultPageBudget

// HTMLConverter converts Markdown to an HTML fragment.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// Compile-time interface implementation checks.
var (
	_ HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector = (*pipeline.CSSInjection)(nil)
	_ Printer              = (*ChromePrinter)(nil)
	_ pdfRenderer          = (*rodRenderer)(nil)
)

// Renderer turns Markdown resumes into styled page markup.
// A Renderer holds no per-render state and is safe for concurrent use.
type Renderer struct {
	converter  HTMLConverter
	pageBudget int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPageBudget sets the approximate number of characters per page in paged
// mode. Panics if n <= 0 (programmer error, similar to time.NewTicker).
func WithPageBudget(n int) Option {
	if n <= 0 {
		panic("md2resume: WithPageBudget must be positive")
	}
	return func(r *Renderer) {
		r.pageBudget = n
	}
}

// WithConverter replaces the Markdown converter.
func WithConverter(c HTMLConverter) Option {
	return func(r *Renderer) {
		if c != nil {
			r.converter = c
		}
	}
}

// NewRenderer creates a Renderer with Goldmark conversion and the default
// page budget.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		converter:  pipeline.NewGoldmarkConverter(),
		pageBudget: DefaultPageBudget,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PageBudget returns the configured characters-per-page budget.
func (r *Renderer) PageBudget() int {
	return r.pageBudget
}

// Render converts in.Markdown and lays it out with in.Template for in.Mode.
// The output depends only on the input and the renderer's configuration.
// Panics in the pipeline are returned as errors.
func (r *Renderer) Render(ctx context.Context, in Input) (result *RenderResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	size, err := validateInput(in)
	if err != nil {
		return nil, err
	}

	md := pipeline.PreprocessMarkdown(ctx, in.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	md, err = pipeline.ExpandRawBlocks(ctx, r.converter, md)
	if err != nil {
		return nil, fmt.Errorf("expanding raw blocks: %w", err)
	}

	body, err := r.converter.ToHTML(ctx, md)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	if in.SourceDir != "" {
		body, err = pipeline.ResolveLocalAssets(body, in.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("resolving local assets: %w", err)
		}
	}

	// Completes the ==text== feature started in preprocessing.
	body = pipeline.ConvertMarkPlaceholders(body)

	css := pipeline.CompileCSS(in.Template.Styles, 1.0)

	res := &RenderResult{Mode: in.Mode}
	var markup string
	switch in.Mode {
	case PrintModeSingle:
		markup = pipeline.SinglePage(body, string(size))
		res.Pages = 1
	case PrintModePaged:
		pages := pipeline.SplitPages(body, r.pageBudget)
		markup = pipeline.MultiPage(pages, string(size))
		res.Pages = len(pages)
	}

	res.HTML = pipeline.StyleBlock(css) + markup
	return res, nil
}

// validateInput checks the input and resolves the effective page size.
func validateInput(in Input) (PageSize, error) {
	if in.Template == nil {
		return "", ErrNilTemplate
	}
	if err := in.Mode.Validate(); err != nil {
		return "", err
	}
	size := in.PageSize
	if size == "" {
		size = DefaultPageSize
	}
	if err := size.Validate(); err != nil {
		return "", err
	}
	return size, nil
}

var defaultRenderer = sync.OnceValue(func() *Renderer { return NewRenderer() })

// Render renders with a shared default Renderer.
func Render(ctx context.Context, in Input) (*RenderResult, error) {
	return defaultRenderer().Render(ctx, in)
}

// WrapDocument places rendered markup in a standalone HTML5 document with
// pageCSS (usually the PageStyle stylesheet) in its head.
func WrapDocument(ctx context.Context, html, title, pageCSS string) string {
	return pipeline.WrapDocument(ctx, html, title, pageCSS)
}
