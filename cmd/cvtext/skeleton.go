package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cvtext/internal/parsing"
)

var skeletonCmd = &cobra.Command{
	Use:   "skeleton",
	Short: "Write a blank résumé listing every keyword",
	RunE:  runSkeleton,
}

var skeletonOutput string

func init() {
	skeletonCmd.Flags().StringVarP(&skeletonOutput, "out", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(skeletonCmd)
}

func runSkeleton(cmd *cobra.Command, _ []string) error {
	text := parsing.Skeleton()
	if skeletonOutput == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	if err := writeFile(skeletonOutput, []byte(text)); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Skeleton written to %s\n", skeletonOutput)
	return nil
}
