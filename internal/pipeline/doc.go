// Package pipeline implements the Markdown-to-resume-HTML stages:
//   - Markdown preprocessing (line normalization, highlight syntax)
//   - Raw <div> block expansion and Markdown to HTML conversion via Goldmark
//   - Template style compilation with optional value scaling
//   - Pagination into page containers, or a single self-scaling page
//   - Standalone document wrapping with page CSS
//
// PDF printing is handled separately by the root md2resume package using
// headless Chrome (go-rod).
package pipeline
