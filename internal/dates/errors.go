// Package dates implements the partial calendar dates found in résumés.
package dates

import "fmt"

// DateFormatError is returned when text matches the numeric date grammar
// but names a month or day that does not exist
type DateFormatError struct {
	Value   string
	Message string
}

func (e *DateFormatError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("date format error: %s: %q", e.Message, e.Value)
	}
	return fmt.Sprintf("date format error: %s", e.Message)
}

// StyleError is returned when a formatting call names an unknown style
type StyleError struct {
	Style string
}

func (e *StyleError) Error() string {
	return fmt.Sprintf("unrecognized date style: %q", e.Style)
}
