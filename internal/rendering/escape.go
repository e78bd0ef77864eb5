package rendering

import (
	"regexp"
	"strings"
)

// EscapeLaTeX escapes special LaTeX characters in text
// Special characters: \ { } $ & % # ^ _ ~
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2) // Pre-allocate space for potential escaping

	for _, r := range text {
		switch r {
		case '\\':
			result.WriteString(`\textbackslash{}`)
		case '{':
			result.WriteString(`\{`)
		case '}':
			result.WriteString(`\}`)
		case '$':
			result.WriteString(`\$`)
		case '&':
			result.WriteString(`\&`)
		case '%':
			result.WriteString(`\%`)
		case '#':
			result.WriteString(`\#`)
		case '^':
			result.WriteString(`\textasciicircum{}`)
		case '_':
			result.WriteString(`\_`)
		case '~':
			result.WriteString(`\textasciitilde{}`)
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

var (
	markupSpecial = regexp.MustCompile(`([_#$%&])`)
	openDouble    = regexp.MustCompile(`(^|\s)"`)
	openSingle    = regexp.MustCompile(`(^|\s)'`)
	boldMarkup    = regexp.MustCompile(`\*\*([^*]+?)\*\*`)
	italicMarkup  = regexp.MustCompile(`\*([^*]+?)\*`)
	linkMarkup    = regexp.MustCompile(`\[(.+?)\]\((.+?)\)`)
)

// maxEmphasisPasses bounds the rewriting of nested **bold** and *italic* spans.
const maxEmphasisPasses = 3

// Markup converts the lightweight markup allowed in résumé values to LaTeX:
// **bold**, *italic*, [text](url) links, \* for a literal asterisk and
// straight opening quotes. Unlike EscapeLaTeX it leaves backslashes and
// braces alone so values may carry LaTeX commands.
func Markup(text string) string {
	s := strings.ReplaceAll(text, `\*`, `{\char"002A}`)

	s = markupSpecial.ReplaceAllString(s, `\$1`)
	s = strings.ReplaceAll(s, "^", `\^{}`)

	s = openDouble.ReplaceAllString(s, "${1}``")
	s = openSingle.ReplaceAllString(s, "${1}`")

	for passes := 0; strings.Contains(s, "*") && passes < maxEmphasisPasses; passes++ {
		s = boldMarkup.ReplaceAllString(s, `\textbf{$1}`)
		s = italicMarkup.ReplaceAllString(s, `\emph{$1}`)
	}

	return linkMarkup.ReplaceAllString(s, `\href{$2}{$1}`)
}
