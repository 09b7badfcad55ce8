package main

import (
	"errors"
	"os"

	md2resume "github.com/alnah/go-md2resume"
	"github.com/alnah/go-md2resume/internal/config"
)

// Exit codes for the md2resume CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All resumes rendered
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or template
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, md2resume.ErrBrowserConnect) ||
		errors.Is(err, md2resume.ErrPageCreate) ||
		errors.Is(err, md2resume.ErrPageLoad) ||
		errors.Is(err, md2resume.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWritePDF) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoMarkdownFiles) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2resume.ErrInvalidPrintMode) ||
		errors.Is(err, md2resume.ErrInvalidPageSize) ||
		errors.Is(err, md2resume.ErrTemplateNotFound) ||
		errors.Is(err, md2resume.ErrTemplateParse) ||
		errors.Is(err, md2resume.ErrDuplicateSelector) ||
		errors.Is(err, md2resume.ErrStyleNotFound) ||
		errors.Is(err, md2resume.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrInvalidPageBudget) {
		return ExitUsage
	}

	return ExitGeneral
}
