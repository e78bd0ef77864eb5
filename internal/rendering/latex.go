// Package rendering provides functionality to render LaTeX resumes from templates.
package rendering

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/cvtext/internal/config"
	"github.com/jonathan/cvtext/internal/dates"
	"github.com/jonathan/cvtext/internal/types"
)

//go:embed templates/classic.tex
var classicTemplate string

// TemplateData represents the data structure passed to the LaTeX template
type TemplateData struct {
	Doc      *types.Document
	Settings *config.Settings
	Contact  string // marked-up contact details joined by the divider
	Sections []ActivitySection
}

// ActivitySection groups the activities listed under one heading
type ActivitySection struct {
	Title      string
	Activities []types.Activity
}

// RenderLaTeX renders doc through the template at templatePath, or through
// the built-in classic template when templatePath is empty.
func RenderLaTeX(doc *types.Document, settings *config.Settings, templatePath string) (string, error) {
	if doc == nil {
		return "", &RenderError{Message: "document is nil"}
	}
	if settings == nil {
		defaults := config.DefaultSettings()
		settings = &defaults
	}
	if err := settings.Validate(); err != nil {
		return "", &RenderError{Settings: invalidSettings(err), Message: "invalid settings", Cause: err}
	}

	tmpl, err := parseTemplate(templatePath, settings.Style())
	if err != nil {
		return "", err
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, buildTemplateData(doc, settings)); err != nil {
		return "", &TemplateError{
			Template: tmpl.Name(),
			Message:  "failed to execute template",
			Cause:    err,
		}
	}

	return result.String(), nil
}

// invalidSettings lists the settings keys a validation error names.
func invalidSettings(err error) []string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}
	keys := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		keys = append(keys, fe.Field())
	}
	return keys
}

// parseTemplate reads and parses a LaTeX template file, or the classic
// template when templatePath is empty
func parseTemplate(templatePath string, style dates.Style) (*template.Template, error) {
	content := classicTemplate
	name := "classic"
	if templatePath != "" {
		data, err := os.ReadFile(templatePath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, &TemplateError{
					Template: templatePath,
					Message:  "template file not found",
					Cause:    err,
				}
			}
			return nil, &TemplateError{
				Template: templatePath,
				Message:  "failed to read template file",
				Cause:    err,
			}
		}
		content = string(data)
		name = templatePath
	}

	tmpl, err := template.New(name).Funcs(funcMap(style)).Parse(content)
	if err != nil {
		return nil, &TemplateError{
			Template: name,
			Message:  "failed to parse template",
			Cause:    err,
		}
	}

	return tmpl, nil
}

func funcMap(style dates.Style) template.FuncMap {
	return template.FuncMap{
		"escape": EscapeLaTeX,
		"markup": Markup,
		"date": func(d dates.PartialDate) (string, error) {
			text, err := dates.FormatSingle(d, style)
			return Markup(text), err
		},
		"daterange": func(start, end dates.PartialDate) (string, error) {
			text, err := dates.FormatRange(start, end, style)
			return Markup(text), err
		},
		"commitment": FormatCommitment,
	}
}

// buildTemplateData constructs the template data structure from the document
func buildTemplateData(doc *types.Document, settings *config.Settings) *TemplateData {
	var contact []string
	for _, item := range []string{doc.Email, doc.Phone, doc.Address, doc.Website} {
		if item != "" {
			contact = append(contact, Markup(item))
		}
	}
	divider := " "
	if settings.ContactDivider != "" {
		divider = ` \enspace ` + EscapeLaTeX(settings.ContactDivider) + ` \enspace `
	}

	sections := make([]ActivitySection, 0)
	for _, heading := range doc.SectionsWithActivities() {
		title := heading
		if title == "" {
			title = settings.DefaultActivitiesSectionTitle
		}
		sections = append(sections, ActivitySection{
			Title:      title,
			Activities: doc.ActivitiesOfSection(heading),
		})
	}

	return &TemplateData{
		Doc:      doc,
		Settings: settings,
		Contact:  strings.Join(contact, divider),
		Sections: sections,
	}
}
