package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Highlight placeholders use Unicode Private Use Area characters so they pass
// through goldmark untouched. ConvertMarkPlaceholders turns them into <mark>.
const (
	MarkStartPlaceholder = "\uE000"
	MarkEndPlaceholder   = "\uE001"
)

var (
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// ==text==
	highlightPattern = regexp.MustCompile(`==(.*?)==`)

	// Single-level <div ...>inner</div>. Nested divs close at the first </div>.
	rawBlockPattern = regexp.MustCompile(`<div([^>]*)>([\s\S]*?)</div>`)
)

// PreprocessMarkdown normalizes line endings, rewrites ==highlight== marks to
// placeholders and compresses runs of blank lines.
func PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	content = convertHighlights(content)
	content = compressBlankLines(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// convertHighlights replaces ==text== with placeholders outside fenced code
// blocks and inline code spans.
func convertHighlights(content string) string {
	var sb strings.Builder
	sb.Grow(len(content))
	inFence := false
	for _, line := range strings.SplitAfter(content, "\n") {
		trimmed := strings.TrimLeft(line, " ")
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			sb.WriteString(line)
			continue
		}
		if inFence {
			sb.WriteString(line)
			continue
		}
		sb.WriteString(highlightOutsideCodeSpans(line))
	}
	return sb.String()
}

// highlightOutsideCodeSpans treats text between backtick pairs as code. A
// trailing unmatched backtick does not open a span.
func highlightOutsideCodeSpans(line string) string {
	if !strings.Contains(line, "==") {
		return line
	}
	parts := strings.Split(line, "`")
	for i := range parts {
		unmatched := i == len(parts)-1 && len(parts)%2 == 0
		if i%2 == 0 || unmatched {
			parts[i] = highlightPattern.ReplaceAllString(parts[i], MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
		}
	}
	return strings.Join(parts, "`")
}

// ConvertMarkPlaceholders converts placeholder markers to <mark> tags.
func ConvertMarkPlaceholders(content string) string {
	return strings.ReplaceAll(
		strings.ReplaceAll(content, MarkStartPlaceholder, "<mark>"),
		MarkEndPlaceholder, "</mark>",
	)
}

// ExpandRawBlocks converts the Markdown inside raw <div> blocks to HTML before
// the main conversion, which would otherwise copy it verbatim. The block's
// attributes are kept and one wrapping paragraph is removed from the result.
func ExpandRawBlocks(ctx context.Context, conv HTMLConverter, content string) (string, error) {
	matches := rawBlockPattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content, nil
	}

	var sb strings.Builder
	sb.Grow(len(content))
	last := 0
	for _, m := range matches {
		attrs := content[m[2]:m[3]]
		inner := strings.TrimSpace(content[m[4]:m[5]])

		converted, err := conv.ToHTML(ctx, inner)
		if err != nil {
			return "", err
		}
		converted = strings.TrimSuffix(converted, "\n")
		converted = strings.TrimPrefix(converted, "<p>")
		converted = strings.TrimSuffix(converted, "</p>")

		sb.WriteString(content[last:m[0]])
		sb.WriteString("<div")
		sb.WriteString(attrs)
		sb.WriteString(">")
		sb.WriteString(converted)
		sb.WriteString("</div>")
		last = m[1]
	}
	sb.WriteString(content[last:])
	return sb.String(), nil
}
