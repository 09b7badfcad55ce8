package md2resume

import (
	"errors"

	"github.com/alnah/go-md2resume/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrNilTemplate      = errors.New("template cannot be nil")
	ErrInvalidPrintMode = errors.New("invalid print mode")
	ErrInvalidPageSize  = errors.New("invalid page size")
	ErrHTMLConversion   = pipeline.ErrHTMLConversion

	// Printing errors.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPoolClosed     = errors.New("printer pool closed")

	// Asset loading errors.
	ErrStyleNotFound     = errors.New("style not found")
	ErrTemplateNotFound  = errors.New("template not found")
	ErrTemplateParse     = errors.New("template parse failed")
	ErrDuplicateSelector = errors.New("duplicate selector in template")
	ErrInvalidAssetPath  = errors.New("invalid asset path")
)
