package pipeline

import (
	"context"
	"html"
	"strings"
)

// Standalone HTML5 shell used when rendered resumes are written to disk or printed.
const (
	documentHead = "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n" +
		"<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n<title>"
	documentBody = "</title>\n</head>\n<body>\n"
	documentTail = "\n</body>\n</html>"
)

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	if ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := StyleBlock(cssContent)
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		closeIdx := strings.Index(htmlContent[idx:], ">")
		if closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

// StyleBlock wraps css in a <style> element after neutralizing sequences that
// could close it early.
func StyleBlock(css string) string {
	return "<style>" + sanitizeCSS(css) + "</style>"
}

// sanitizeCSS escapes </ so template values cannot break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// WrapDocument places rendered resume markup in a complete HTML5 document
// titled title, with pageCSS injected into the head.
func WrapDocument(ctx context.Context, body, title, pageCSS string) string {
	if title == "" {
		title = "Resume"
	}
	doc := documentHead + html.EscapeString(title) + documentBody + body + documentTail

	injector := &CSSInjection{}
	return injector.InjectCSS(ctx, doc, pageCSS)
}
