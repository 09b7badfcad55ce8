package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	md2resume "github.com/alnah/go-md2resume"
	"github.com/alnah/go-md2resume/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// RenderOutcome holds the outcome of a single resume.
type RenderOutcome struct {
	InputPath  string
	OutputPath string
	Pages      int
	Err        error
	Duration   time.Duration
}

// renderBatch processes files concurrently, one printer per worker.
// Workers skip the pool entirely in HTML-only mode.
func renderBatch(ctx context.Context, pool Pool, files []FileToRender, params *renderParams) []RenderOutcome {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))
	results := make([]RenderOutcome, len(files))
	jobs := make(chan int, len(files))

	var wg sync.WaitGroup
	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			var printer md2resume.Printer
			if !params.htmlOnly {
				printer = pool.Acquire()
				defer pool.Release(printer)
			}

			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = RenderOutcome{InputPath: files[idx].InputPath, Err: err}
					continue
				}
				results[idx] = renderFile(ctx, printer, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderFile renders one resume to HTML and, unless HTML-only, prints it.
func renderFile(ctx context.Context, printer md2resume.Printer, f FileToRender, params *renderParams) RenderOutcome {
	start := time.Now()
	result := RenderOutcome{InputPath: f.InputPath, OutputPath: f.OutputPath}
	fail := func(err error) RenderOutcome {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	sourceDir, err := filepath.Abs(filepath.Dir(f.InputPath))
	if err != nil {
		return fail(fmt.Errorf("resolving source directory: %w", err))
	}

	rendered, err := params.renderer.Render(ctx, md2resume.Input{
		Markdown:  string(content),
		Template:  params.template,
		Mode:      params.mode,
		PageSize:  params.pageSize,
		SourceDir: sourceDir,
	})
	if err != nil {
		return fail(err)
	}
	result.Pages = rendered.Pages

	title := extractTitle(string(content))
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(f.InputPath), filepath.Ext(f.InputPath))
	}
	document := md2resume.WrapDocument(ctx, rendered.HTML, title, params.pageCSS)

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory()))
	}

	if params.htmlOnly || params.htmlOutput {
		htmlPath := htmlOutputPath(f.OutputPath)
		// #nosec G306 -- HTML files are meant to be readable
		if err := os.WriteFile(htmlPath, []byte(document), filePermissions); err != nil {
			return fail(fmt.Errorf("%w: %v", ErrWriteHTML, err))
		}
		if params.htmlOnly {
			result.OutputPath = htmlPath
			result.Duration = time.Since(start)
			return result
		}
	}

	pdf, err := printer.Print(ctx, document, &md2resume.PrintOptions{PageSize: params.pageSize, Mode: params.mode})
	if err != nil {
		return fail(err)
	}

	// #nosec G306 -- PDFs are meant to be readable
	if err := os.WriteFile(f.OutputPath, pdf, filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWritePDF, err))
	}

	result.Duration = time.Since(start)
	return result
}

// extractTitle returns the text of the first level-1 ATX heading.
func extractTitle(markdown string) string {
	scanner := bufio.NewScanner(strings.NewReader(markdown))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if rest, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

// ResultSummary holds the count of succeeded and failed renders.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed renders.
func countResults(results []RenderOutcome) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// reportResults prints one line per file and returns an error wrapping the
// first failure, if any.
func reportResults(results []RenderOutcome, quiet, verbose bool, env *Environment) error {
	summary := countResults(results)
	var firstErr error

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			if firstErr == nil {
				firstErr = r.Err
			}
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d page(s), %v)\n", r.InputPath, r.OutputPath, r.Pages, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	if firstErr != nil {
		return fmt.Errorf("%d of %d render(s) failed: %w", summary.Failed, len(results), firstErr)
	}
	return nil
}
