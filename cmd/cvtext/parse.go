package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cvtext/internal/db"
	"github.com/jonathan/cvtext/internal/ingestion"
	"github.com/jonathan/cvtext/internal/observability"
	"github.com/jonathan/cvtext/internal/parsing"
	"github.com/jonathan/cvtext/internal/schemas"
	"github.com/jonathan/cvtext/internal/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse résumé text files into JSON documents",
	Long: "Parses one or more plain-text résumés concurrently. A single input is written to --out " +
		"or stdout; several inputs are written as <name>.json into --out (a directory) or next to each input.",
	RunE: runParse,
}

var (
	parseInputs      []string
	parseOutput      string
	parseValidate    bool
	parseSave        bool
	parseDatabaseURL string
)

func init() {
	parseCmd.Flags().StringSliceVarP(&parseInputs, "in", "i", nil, "Path to résumé text file (repeatable)")
	parseCmd.Flags().StringVarP(&parseOutput, "out", "o", "", "Output file, or directory for several inputs")
	parseCmd.Flags().BoolVar(&parseValidate, "validate", false, "Validate each document against the document schema")
	parseCmd.Flags().BoolVar(&parseSave, "save", false, "Store each document in the database")
	parseCmd.Flags().StringVar(&parseDatabaseURL, "db-url", "", "Database URL (defaults to DATABASE_URL)")

	_ = parseCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(parseCmd)
}

// parseResult is the outcome of parsing one input file
type parseResult struct {
	Source   string
	Document *types.Document
	Unparsed []string
}

func runParse(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	results, err := parseFiles(ctx, parsing.NewParser(parsing.NewRegistry()), parseInputs)
	if err != nil {
		return err
	}

	if parseValidate {
		for _, res := range results {
			if err := schemas.ValidateDocument(res.Document); err != nil {
				return fmt.Errorf("%s: %w", res.Source, err)
			}
		}
	}

	printer := observability.NewPrinter(cmd.ErrOrStderr())
	multi := len(results) > 1
	for _, res := range results {
		data, err := json.MarshalIndent(res.Document, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal document for %s: %w", res.Source, err)
		}
		data = append(data, '\n')

		dest := outputPath(res.Source, parseOutput, multi)
		if dest == "" {
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			dest = "stdout"
		} else if err := writeFile(dest, data); err != nil {
			return err
		}

		printer.PrintUnparsed(res.Source, res.Unparsed)
		printer.PrintSummary(res.Source, dest, len(res.Unparsed))
	}

	if parseSave {
		return saveDocuments(ctx, cmd, results)
	}
	return nil
}

// parseFiles parses every path concurrently and returns results in input
// order. The first read or parse error cancels the rest.
func parseFiles(ctx context.Context, parser *parsing.Parser, paths []string) ([]parseResult, error) {
	results := make([]parseResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, meta, err := ingestion.IngestFromFile(path)
			if err != nil {
				return err
			}
			doc, unparsed, err := parser.Parse(text)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			logger.Debug("parsed résumé",
				zap.String("source", path),
				zap.String("hash", meta.Hash),
				zap.Int("lines", meta.Lines),
				zap.Int("education", len(doc.Education)),
				zap.Int("activities", len(doc.Activities)),
				zap.Int("unparsed", len(unparsed)),
			)
			results[i] = parseResult{Source: path, Document: doc, Unparsed: unparsed}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// outputPath decides where the JSON for input goes. "" means stdout.
func outputPath(input, out string, multi bool) string {
	jsonName := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".json"
	switch {
	case out == "" && !multi:
		return ""
	case out == "":
		return filepath.Join(filepath.Dir(input), jsonName)
	case multi || isDir(out):
		return filepath.Join(out, jsonName)
	default:
		return out
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func databaseURL(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv("DATABASE_URL"); env != "" {
		return env, nil
	}
	return "", fmt.Errorf("DATABASE_URL not set and --db-url not provided")
}

func saveDocuments(ctx context.Context, cmd *cobra.Command, results []parseResult) error {
	url, err := databaseURL(parseDatabaseURL)
	if err != nil {
		return err
	}

	database, err := db.Connect(ctx, url)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}

	for _, res := range results {
		id, err := database.SaveDocument(ctx, res.Document, res.Source)
		if err != nil {
			return fmt.Errorf("%s: %w", res.Source, err)
		}
		logger.Info("document stored", zap.String("source", res.Source), zap.String("id", id.String()))
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s as %s\n", res.Source, id)
	}
	return nil
}
