package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var forceWrite bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the settings file",
}

var configInitCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write the current settings to a YAML file",
	Long: `Write the effective settings (the defaults, or the file named by --config)
to path so they can be edited. An existing file is only replaced with --force.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(cmd, args[0], forceWrite)
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&forceWrite, "force", "f", false, "Replace an existing file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to replace it)", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if err := settings.SaveFile(path); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote settings to %s\n", path)
	return nil
}
