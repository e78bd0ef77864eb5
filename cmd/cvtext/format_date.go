package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/cvtext/internal/dates"
)

var formatDateCmd = &cobra.Command{
	Use:   "format-date",
	Short: "Format a date or date range",
	Long:  "Formats --start, or the range --start to --end, in one of the styles: " + styleList() + ".",
	RunE:  runFormatDate,
}

var (
	formatDateStart string
	formatDateEnd   string
	formatDateStyle string
)

func init() {
	formatDateCmd.Flags().StringVarP(&formatDateStart, "start", "s", "", "Date, e.g. 2023-05-22, 2023-05, 2023 or free text (required)")
	formatDateCmd.Flags().StringVarP(&formatDateEnd, "end", "e", "", "End of the range (optional)")
	formatDateCmd.Flags().StringVar(&formatDateStyle, "style", string(dates.StyleAmerican), "Date style")

	_ = formatDateCmd.MarkFlagRequired("start")
	rootCmd.AddCommand(formatDateCmd)
}

func styleList() string {
	names := make([]string, 0, len(dates.Styles()))
	for _, s := range dates.Styles() {
		names = append(names, fmt.Sprintf("%q", s))
	}
	return strings.Join(names, ", ")
}

func runFormatDate(cmd *cobra.Command, _ []string) error {
	text, err := formatDate(formatDateStart, formatDateEnd, formatDateStyle, cmd.Flags().Changed("end"))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}

func formatDate(startText, endText, styleName string, isRange bool) (string, error) {
	style, err := dates.ParseStyle(styleName)
	if err != nil {
		return "", err
	}
	start, err := dates.Parse(startText)
	if err != nil {
		return "", fmt.Errorf("invalid --start: %w", err)
	}
	if !isRange {
		return dates.FormatSingle(start, style)
	}
	end, err := dates.Parse(endText)
	if err != nil {
		return "", fmt.Errorf("invalid --end: %w", err)
	}
	return dates.FormatRange(start, end, style)
}
