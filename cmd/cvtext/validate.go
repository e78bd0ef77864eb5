package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cvtext/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a document JSON file against the document schema",
	Long:  "Validates a JSON file against the built-in document schema, or against --schema when given.",
	RunE:  runValidate,
}

var (
	validateInput  string
	validateSchema string
)

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to JSON file (required)")
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "Path to a JSON Schema file")

	_ = validateCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if err := validateFile(validateInput, validateSchema); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✅ %s is valid\n", validateInput)
	return nil
}

func validateFile(jsonPath, schemaPath string) error {
	if schemaPath == "" {
		content, err := os.ReadFile(jsonPath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", jsonPath, err)
		}
		return schemas.ValidateDocumentJSON(content)
	}

	resolved := schemaPath
	if _, err := os.Stat(resolved); err != nil {
		if found := schemas.ResolveSchemaPath(schemaPath); found != "" {
			resolved = found
		}
	}
	return schemas.ValidateJSON(resolved, jsonPath)
}
