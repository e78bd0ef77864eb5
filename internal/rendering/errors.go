package rendering

import (
	"fmt"
	"strings"
)

// TemplateError reports a LaTeX template that could not be read, parsed or
// executed. Template is the file path, or "classic" for the built-in one.
type TemplateError struct {
	Template string
	Message  string
	Cause    error
}

func (e *TemplateError) Error() string {
	prefix := "template error"
	if e.Template != "" {
		prefix = fmt.Sprintf("template error in %s", e.Template)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError reports a document that cannot be rendered. Settings names
// the YAML keys that failed validation, if any.
type RenderError struct {
	Settings []string
	Message  string
	Cause    error
}

func (e *RenderError) Error() string {
	msg := e.Message
	if len(e.Settings) > 0 {
		msg = fmt.Sprintf("%s (%s)", msg, strings.Join(e.Settings, ", "))
	}
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("render error: %s", msg)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
