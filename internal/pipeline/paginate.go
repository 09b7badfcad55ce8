package pipeline

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultPageBudget is the approximate number of characters that fit on one
// printed page. It is a heuristic, not a layout measurement.
const DefaultPageBudget = 2500

// PageBreakMarkup separates consecutive pages in paged output.
const PageBreakMarkup = `<div class="resume-page-break"></div>`

var (
	h2OpenTag = regexp.MustCompile(`<h2[^>]*>`)

	// Opening wrapper emitted by SinglePage and MultiPage.
	pageOpenMarkup = regexp.MustCompile(`^<div class="resume-page [a-z0-9]+( single-page)?"><div class="resume-container"(?: data-scale="0")?>`)
)

// ScalingLevel is one step of the single-page fit-to-page ladder.
type ScalingLevel struct {
	Scale    float64
	Padding  string
	FontSize string
}

var scalingLevels = []ScalingLevel{
	{Scale: 1.0, Padding: "40px", FontSize: "1em"},
	{Scale: 0.95, Padding: "35px", FontSize: "0.95em"},
	{Scale: 0.9, Padding: "30px", FontSize: "0.9em"},
	{Scale: 0.85, Padding: "25px", FontSize: "0.85em"},
	{Scale: 0.8, Padding: "20px", FontSize: "0.8em"},
	{Scale: 0.75, Padding: "15px", FontSize: "0.75em"},
	{Scale: 0.7, Padding: "10px", FontSize: "0.7em"},
}

// ScalingLevels returns a copy of the fit-to-page ladder, largest first.
func ScalingLevels() []ScalingLevel {
	return append([]ScalingLevel(nil), scalingLevels...)
}

// SplitPages breaks rendered HTML into pages at level-2 heading boundaries.
//
// The content before the first heading and the first heading section always
// share a page. Each later section starts a new page when adding it would push
// the current page past budget characters. Heading tags are kept verbatim, so
// joining the pages reproduces html exactly. Budget <= 0 selects
// DefaultPageBudget.
func SplitPages(html string, budget int) []string {
	if budget <= 0 {
		budget = DefaultPageBudget
	}

	starts := h2OpenTag.FindAllStringIndex(html, -1)
	if len(starts) == 0 {
		return []string{html}
	}

	sections := make([]string, 0, len(starts)+1)
	sections = append(sections, html[:starts[0][0]])
	for i, loc := range starts {
		end := len(html)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		sections = append(sections, html[loc[0]:end])
	}

	var pages []string
	current := sections[0]
	currentLen := utf8.RuneCountInString(current)
	for i := 1; i < len(sections); i++ {
		section := sections[i]
		sectionLen := utf8.RuneCountInString(section)
		if currentLen+sectionLen > budget && i > 1 {
			pages = append(pages, current)
			current, currentLen = section, sectionLen
			continue
		}
		current += section
		currentLen += sectionLen
	}
	if current != "" {
		pages = append(pages, current)
	}
	return pages
}

// SinglePage wraps html in one page container that shrinks itself in the
// browser, one scaling level at a time, until the content fits or the last
// level is reached. The container gets data-scale-settled="true" once it
// stops.
func SinglePage(html, size string) string {
	var sb strings.Builder
	sb.Grow(len(html) + 2048)

	sb.WriteString(`<div class="resume-page `)
	sb.WriteString(size)
	sb.WriteString(` single-page"><div class="resume-container" data-scale="0">`)
	sb.WriteString(html)
	sb.WriteString(`</div><script>`)
	sb.WriteString(strings.Replace(fitScript, "{{LEVELS}}", strconv.Itoa(len(scalingLevels)), 1))
	sb.WriteString(`</script><style>`)
	for i, level := range scalingLevels {
		sb.WriteString(`.resume-container[data-scale="`)
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString(`"] { --scale-factor: `)
		sb.WriteString(strconv.FormatFloat(level.Scale, 'f', -1, 64))
		sb.WriteString(`; --container-padding: `)
		sb.WriteString(level.Padding)
		sb.WriteString(`; font-size: `)
		sb.WriteString(level.FontSize)
		sb.WriteString("; }\n")
	}
	sb.WriteString(".resume-container { padding: var(--container-padding, 40px); transition: all 0.2s ease; }\n")
	sb.WriteString(`</style></div>`)
	return sb.String()
}

// fitScript locates its own page through document.currentScript so several
// single pages can coexist in one document.
const fitScript = `(function() {
  var page = document.currentScript ? document.currentScript.parentElement : document.querySelector('.resume-page.single-page');
  function check() {
    if (!page) return;
    var container = page.querySelector('.resume-container');
    if (!container) return;
    var level = parseInt(container.getAttribute('data-scale') || '0', 10);
    if (container.scrollHeight <= page.offsetHeight || level + 1 >= {{LEVELS}}) {
      container.setAttribute('data-scale-settled', 'true');
      return;
    }
    container.removeAttribute('data-scale-settled');
    container.setAttribute('data-scale', String(level + 1));
    setTimeout(check, 10);
  }
  window.addEventListener('load', check);
  window.addEventListener('resize', check);
  setTimeout(check, 100);
})();`

// MultiPage wraps each page in its own container, separated by page-break
// markers. No marker follows the last page.
func MultiPage(pages []string, size string) string {
	var sb strings.Builder
	for i, page := range pages {
		if i > 0 {
			sb.WriteString(PageBreakMarkup)
		}
		sb.WriteString(`<div class="resume-page `)
		sb.WriteString(size)
		sb.WriteString(`"><div class="resume-container">`)
		sb.WriteString(page)
		sb.WriteString(`</div></div>`)
	}
	return sb.String()
}

// StripPageMarkup removes the wrappers added by SinglePage and MultiPage,
// returning the concatenated page content. Markup that does not start with a
// page wrapper is returned unchanged.
func StripPageMarkup(markup string) string {
	const pageClose = `</div></div>`
	nextPage := pageClose + PageBreakMarkup + `<div class="resume-page `

	var sb strings.Builder
	rest := markup
	for {
		m := pageOpenMarkup.FindStringSubmatchIndex(rest)
		if m == nil {
			sb.WriteString(rest)
			return sb.String()
		}
		single := m[2] >= 0
		rest = rest[m[1]:]

		if single {
			if end := strings.LastIndex(rest, `</div><script>`); end >= 0 {
				sb.WriteString(rest[:end])
				return sb.String()
			}
			sb.WriteString(rest)
			return sb.String()
		}

		if end := strings.Index(rest, nextPage); end >= 0 {
			sb.WriteString(rest[:end])
			rest = rest[end+len(pageClose)+len(PageBreakMarkup):]
			continue
		}
		sb.WriteString(strings.TrimSuffix(rest, pageClose))
		return sb.String()
	}
}
