package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/cvtext/internal/config"
)

// defaultSettingsFile is where settings init writes when --out is not given.
const defaultSettingsFile = "cvtext.yaml"

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Create or inspect rendering settings",
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default settings to a YAML file",
	RunE:  runSettingsInit,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings after file and environment overrides",
	RunE:  runSettingsShow,
}

var (
	settingsOutput string
	settingsForce  bool
	settingsPath   string
)

func init() {
	settingsInitCmd.Flags().StringVarP(&settingsOutput, "out", "o", defaultSettingsFile, "Output YAML file")
	settingsInitCmd.Flags().BoolVar(&settingsForce, "force", false, "Overwrite an existing file")
	settingsShowCmd.Flags().StringVar(&settingsPath, "settings", "", "Path to settings YAML file")

	settingsCmd.AddCommand(settingsInitCmd, settingsShowCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsInit(cmd *cobra.Command, _ []string) error {
	if _, err := os.Stat(settingsOutput); err == nil && !settingsForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", settingsOutput)
	}

	settings := config.DefaultSettings()
	if err := settings.Save(settingsOutput); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Settings written to %s\n", settingsOutput)
	return nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(settings); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return enc.Close()
}
