package pipeline

import (
	"strconv"
	"strings"

	"github.com/alnah/go-md2resume/internal/assets"
)

// ContainerSelector scopes every compiled rule to the resume content.
const ContainerSelector = ".resume-container"

// CompileCSS turns template rules into one CSS rule per selector, scoped under
// the resume container. The empty selector styles the container itself.
// A scale of 1 or less than or equal to 0 leaves every value unchanged.
func CompileCSS(rules []assets.StyleRule, scale float64) string {
	if scale <= 0 {
		scale = 1.0
	}

	var sb strings.Builder
	for _, rule := range rules {
		sb.WriteString(ContainerSelector)
		if rule.Selector != "" {
			sb.WriteByte(' ')
			sb.WriteString(rule.Selector)
		}
		sb.WriteString(" { ")
		for _, d := range rule.Declarations {
			if d.Value == "" {
				continue
			}
			prop := camelToKebab(d.Property)
			sb.WriteString(prop)
			sb.WriteString(": ")
			sb.WriteString(scaleValue(prop, d.Value, scale))
			sb.WriteString("; ")
		}
		sb.WriteString(" }\n")
	}
	return sb.String()
}

// scaleValue multiplies em font sizes and em/px margins and paddings.
func scaleValue(prop, value string, scale float64) string {
	if scale == 1.0 {
		return value
	}

	var unit string
	switch {
	case strings.Contains(prop, "font-size") && strings.HasSuffix(value, "em"):
		unit = "em"
	case strings.Contains(prop, "margin") || strings.Contains(prop, "padding"):
		switch {
		case strings.HasSuffix(value, "em"):
			unit = "em"
		case strings.HasSuffix(value, "px"):
			unit = "px"
		default:
			return value
		}
	default:
		return value
	}

	size, ok := leadingFloat(value)
	if !ok {
		return value
	}
	scaled := size * scale
	if scaled == 0 {
		scaled = 0 // no "-0.00"
	}
	return strconv.FormatFloat(scaled, 'f', 2, 64) + unit
}

// leadingFloat parses the longest numeric prefix of s, ignoring leading
// whitespace. "1.5em" yields 1.5, "1e2px" yields 100 and "0 0 1em" yields 0.
// An "e" only starts an exponent when digits follow, so "1em" yields 1.
func leadingFloat(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\n")
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	digits := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for ; i < len(s) && isDigit(s[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '-' || s[j] == '+') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			end = j
		}
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// camelToKebab inserts a hyphen before every uppercase ASCII letter not
// already preceded by one and lowercases the result. Kebab-case input
// passes through unchanged.
func camelToKebab(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 4)
	prev := rune(0)
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			if prev != '-' {
				sb.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		sb.WriteRune(r)
		prev = r
	}
	return sb.String()
}
