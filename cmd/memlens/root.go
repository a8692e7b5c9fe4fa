package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/joshuapare/memlens/config"
	"github.com/joshuapare/memlens/internal/logger"
)

const defaultRefresh = 100 * time.Millisecond

var (
	// Global flags
	configPath string
	debugMode  bool
	logKeep    int
	refresh    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "memlens",
	Short: "Browse and annotate the memory of a running process",
	Long: `memlens shows a region of process memory as a tree of typed fields.
Fields can be retyped, edited in place, grouped into structs and arrays, and
the view refreshes continuously while the target runs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Must run before any logging call.
		if err := logger.Init(logger.Options{
			Enabled:       debugMode,
			Level:         slog.LevelDebug,
			RetentionDays: logKeep,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Settings file (YAML)")
	rootCmd.PersistentFlags().
		BoolVarP(&debugMode, "debug", "d", false, "Enable debug logging to ~/.memlens/logs/")
	rootCmd.PersistentFlags().
		IntVar(&logKeep, "log-days", 30, "Days of debug logs to keep")
	rootCmd.PersistentFlags().
		DurationVar(&refresh, "refresh", defaultRefresh, "Memory refresh interval")
}

func execute() {
	err := rootCmd.Execute()
	if cerr := logger.Close(); cerr != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close log: %v\n", cerr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadSettings returns the settings named by --config, or the defaults.
func loadSettings() (*config.Settings, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	s, err := config.LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return s, nil
}

// runTUI runs the interactive view until the user quits.
func runTUI(opts ModelOptions) error {
	if refresh <= 0 {
		return fmt.Errorf("--refresh must be positive, got %s", refresh)
	}
	opts.Refresh = refresh
	logger.SetTarget(opts.Title)

	m := NewModel(opts)
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // motion drives hover tooltips
	)

	finalModel, err := p.Run()
	if model, ok := finalModel.(Model); ok {
		if cerr := model.Close(); cerr != nil {
			logger.Warn("error closing resources", "error", cerr)
		}
	}
	if err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("error running TUI: %w", err)
	}

	logger.Info("memlens exited normally")
	return nil
}

var _ io.Closer = (*Model)(nil)
