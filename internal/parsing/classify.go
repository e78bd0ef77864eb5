package parsing

import (
	"strings"

	"github.com/jonathan/cvtext/internal/dates"
)

// Classification is the result of classifying one line. It is one of Blank,
// Matched, Bullet, SectionHeading, Unclassified or Invalid.
type Classification interface {
	classification()
}

// Blank is an empty or whitespace-only line.
type Blank struct{}

// Matched is a keyword line. Date holds the parsed value when Field.IsDate().
type Matched struct {
	Field Field
	Value string
	Date  dates.PartialDate
}

// Bullet is a "- text" or "• text" line.
type Bullet struct {
	Text string
}

// SectionHeading is a "# title" line.
type SectionHeading struct {
	Title string
}

// Unclassified is a non-blank line that matched nothing.
type Unclassified struct {
	Line string
}

// Invalid is a line that was recognized but cannot be accepted.
type Invalid struct {
	Line string
	Err  error
}

func (Blank) classification()          {}
func (Matched) classification()        {}
func (Bullet) classification()         {}
func (SectionHeading) classification() {}
func (Unclassified) classification()   {}
func (Invalid) classification()        {}

// Classifier maps single lines to classifications
type Classifier struct {
	registry *Registry
}

// NewClassifier creates a classifier backed by reg.
func NewClassifier(reg *Registry) *Classifier {
	return &Classifier{registry: reg}
}

// Classify normalizes and classifies one line. It has no side effects.
func (c *Classifier) Classify(line string) Classification {
	line = NormalizeLine(line)
	if line == "" {
		return Blank{}
	}

	if field, value, ok := c.registry.MatchField(line); ok {
		m := Matched{Field: field, Value: value}
		if field.IsDate() {
			d, err := dates.Parse(value)
			if err != nil {
				return Invalid{Line: line, Err: &DateError{Line: line, Cause: err}}
			}
			m.Date = d
		}
		return m
	}

	if title, ok := c.registry.matchSection(line); ok {
		return SectionHeading{Title: title}
	}
	if text, ok := c.registry.matchBullet(line); ok {
		return Bullet{Text: text}
	}
	return Unclassified{Line: line}
}

// NormalizeLine collapses every run of whitespace to a single space and trims the ends.
func NormalizeLine(line string) string {
	return strings.Join(strings.Fields(line), " ")
}
