// Package main provides the cvtext command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/cvtext/internal/observability"
)

var (
	verbose   bool
	logFormat string

	// logger is set up by the root command before any subcommand runs.
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "cvtext",
	Short: "Parse plain-text résumés into structured documents",
	Long: "cvtext reads résumés written as \"Keyword: value\" lines, bullets and # headings, " +
		"and turns them into JSON documents, LaTeX, or stored records.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level := "warn"
		if verbose {
			level = "debug"
		}
		l, err := newLogger(cmd, level)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

func newLogger(cmd *cobra.Command, level string) (*zap.Logger, error) {
	return observability.NewLogger(observability.Options{
		Level:  level,
		Format: logFormat,
		Output: cmd.ErrOrStderr(),
	})
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format: console or json")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	err := rootCmd.Execute()
	_ = observability.Sync(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
