// Package md2resume renders Markdown resumes into styled, paginated HTML and,
// through headless Chrome, into PDF.
//
// # Quick Start
//
// Pick a built-in template and render:
//
//	tmpl, err := md2resume.LookupTemplate("modern")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := md2resume.Render(ctx, md2resume.Input{
//	    Markdown: "# Jane Doe\n\n## Experience\n\n...",
//	    Template: tmpl,
//	    Mode:     md2resume.PrintModePaged,
//	    PageSize: md2resume.PageSizeA4,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.HTML)
//
// The result holds one HTML fragment: an inline <style> block with the
// template rules scoped under .resume-container, followed by the page markup.
//
// # Rendering Pipeline
//
//  1. Markdown preprocessing (line normalization, ==highlight== syntax)
//  2. Markdown inside raw <div> blocks converted in place
//  3. Markdown to HTML conversion via Goldmark (GFM, hard line breaks)
//  4. Template rules compiled to CSS
//  5. Layout by print mode:
//     - paged: content split at level-2 headings into pages of roughly
//     DefaultPageBudget characters
//     - single: one page whose embedded script steps through ScalingLevels
//     in the browser until the content fits
//
// Rendering never touches the network or the filesystem, except for optional
// relative path resolution when Input.SourceDir is set.
//
// # Templates
//
// Five templates are built in: modern, classic, minimalist, professional and
// creative. Use Templates to list them. Custom templates are YAML files loaded
// through NewAssetLoader:
//
//	assets/
//	├── styles/
//	│   └── page.css
//	└── templates/
//	    └── ocean.yaml
//
// # Printing
//
// NewPrinter and PrinterPool turn rendered resumes into PDF with headless
// Chrome. Wrap the render result with WrapDocument first. Single-page resumes
// are printed only after their scaling script has settled.
//
// The go-rod library downloads a managed Chromium on first run
// (~/.cache/rod/browser/). Use ROD_BROWSER_BIN to point at a custom Chrome
// binary; set CI=true in containers to disable the sandbox.
package md2resume
