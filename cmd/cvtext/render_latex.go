package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/cvtext/internal/config"
	"github.com/jonathan/cvtext/internal/ingestion"
	"github.com/jonathan/cvtext/internal/observability"
	"github.com/jonathan/cvtext/internal/parsing"
	"github.com/jonathan/cvtext/internal/rendering"
	"github.com/jonathan/cvtext/internal/types"
)

var renderLaTeXCmd = &cobra.Command{
	Use:   "render-latex",
	Short: "Render a résumé as LaTeX",
	Long: "Renders a résumé text file, or a document JSON file written by parse, through the classic " +
		"LaTeX template or a custom one. Layout comes from the settings file and CVTEXT_* variables.",
	RunE: runRenderLaTeX,
}

var (
	renderLaTeXInput    string
	renderLaTeXSettings string
	renderLaTeXTemplate string
	renderLaTeXOutput   string
)

func init() {
	renderLaTeXCmd.Flags().StringVarP(&renderLaTeXInput, "in", "i", "", "Path to résumé text or document JSON (required)")
	renderLaTeXCmd.Flags().StringVar(&renderLaTeXSettings, "settings", "", "Path to settings YAML file")
	renderLaTeXCmd.Flags().StringVarP(&renderLaTeXTemplate, "template", "t", "", "Path to LaTeX template (default: built-in classic)")
	renderLaTeXCmd.Flags().StringVarP(&renderLaTeXOutput, "out", "o", "", "Path to output .tex file (required)")

	_ = renderLaTeXCmd.MarkFlagRequired("in")
	_ = renderLaTeXCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(renderLaTeXCmd)
}

func runRenderLaTeX(cmd *cobra.Command, _ []string) error {
	settings, err := config.LoadSettings(renderLaTeXSettings)
	if err != nil {
		return err
	}

	doc, unparsed, err := loadDocument(renderLaTeXInput)
	if err != nil {
		return err
	}
	observability.NewPrinter(cmd.ErrOrStderr()).PrintUnparsed(renderLaTeXInput, unparsed)

	latex, err := rendering.RenderLaTeX(doc, settings, renderLaTeXTemplate)
	if err != nil {
		return fmt.Errorf("failed to render LaTeX: %w", err)
	}

	if err := writeFile(renderLaTeXOutput, []byte(latex)); err != nil {
		return err
	}
	logger.Debug("rendered LaTeX",
		zap.String("source", renderLaTeXInput),
		zap.String("template", renderLaTeXTemplate),
		zap.Int("bytes", len(latex)),
	)

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully rendered LaTeX resume\n")
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", renderLaTeXOutput)
	return nil
}

// loadDocument reads a document JSON file (by .json extension) or parses a résumé text file.
func loadDocument(path string) (*types.Document, []string, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		doc := types.NewDocument()
		if err := json.Unmarshal(content, doc); err != nil {
			return nil, nil, fmt.Errorf("failed to unmarshal document %s: %w", path, err)
		}
		return doc, nil, nil
	}

	text, _, err := ingestion.IngestFromFile(path)
	if err != nil {
		return nil, nil, err
	}
	doc, unparsed, err := parsing.NewParser(parsing.NewRegistry()).Parse(text)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, unparsed, nil
}
