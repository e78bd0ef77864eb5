// Package observability provides logging and formatted output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cvtext/internal/dates"
	"github.com/jonathan/cvtext/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out   io.Writer
	style dates.Style
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, style: dates.StyleAmerican}
}

// WithStyle returns a copy of p that formats dates in style.
func (p *Printer) WithStyle(style dates.Style) *Printer {
	return &Printer{out: p.out, style: style}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

func (p *Printer) span(start, end dates.PartialDate) string {
	text, err := dates.FormatRange(start, end, p.style)
	if err != nil {
		return start.String() + dates.RangeSeparator + end.String()
	}
	return text
}

// PrintDocument outputs a human-readable summary of a parsed résumé.
func (p *Printer) PrintDocument(doc *types.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", doc.Name))
	if doc.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", doc.Email))
	}
	sb.WriteString("\n")

	if len(doc.Education) > 0 {
		sb.WriteString("Education:\n")
		for _, e := range doc.Education {
			sb.WriteString(fmt.Sprintf("  • %s", e.School))
			if span := p.span(e.StartDate, e.EndDate); span != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", span))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	for _, section := range doc.SectionsWithActivities() {
		title := section
		if title == "" {
			title = "Activities"
		}
		activities := doc.ActivitiesOfSection(section)
		sb.WriteString(title + ":\n")
		count := min(len(activities), maxItemsToShow)
		for i := 0; i < count; i++ {
			a := activities[i]
			sb.WriteString(fmt.Sprintf("  • %s", a.Role))
			if a.Org != "" {
				sb.WriteString(fmt.Sprintf(", %s", a.Org))
			}
			if len(a.Descriptions) > 0 {
				sb.WriteString(fmt.Sprintf(" [%d bullets]", len(a.Descriptions)))
			}
			sb.WriteString("\n")
		}
		if len(activities) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(activities)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Awards: %d  Tests: %d  Skill sets: %d",
		len(doc.Awards), len(doc.Tests), len(doc.SkillSets)))

	p.printBox("PARSED RESUME", sb.String())
}

// PrintUnparsed lists the lines of source that matched nothing.
func (p *Printer) PrintUnparsed(source string, lines []string) {
	if len(lines) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d unrecognized lines in %s:\n\n", len(lines), source))
	for i, line := range lines {
		sb.WriteString(fmt.Sprintf("⚠ %s", line))
		if i < len(lines)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("UNPARSED LINES", sb.String())
}

// PrintSummary outputs a one-line result for a parsed file.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSummary(source, dest string, unparsed int) {
	if unparsed == 0 {
		fmt.Fprintf(p.out, "✅ %s -> %s\n", source, dest)
		return
	}
	fmt.Fprintf(p.out, "⚠ %s -> %s (%d unparsed lines)\n", source, dest, unparsed)
}
