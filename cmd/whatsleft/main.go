package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mmcdole/whatsleft/internal/backnav"
	"github.com/mmcdole/whatsleft/internal/config"
	"github.com/mmcdole/whatsleft/internal/domain"
	"github.com/mmcdole/whatsleft/internal/store"
	"github.com/mmcdole/whatsleft/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath  string
		showVersion bool
	)

	rootCmd := &cobra.Command{
		Use:   "whatsleft",
		Short: "Track what is left in your pantry before it expires",
		Long: `WhatsLeft keeps a list of perishable items and a shopping list.

The first launch walks you through adding an item. Press ? for help once
running and esc to go back; esc on the dashboard asks before exiting.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "whatsleft %s\n", Version)
				return nil
			}
			return run(configPath)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: config.yaml in the user config dir)")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")

	rootCmd.AddCommand(
		newResetCmd(&configPath),
		newFlagsCmd(&configPath),
		newConfigCmd(&configPath),
	)
	return rootCmd
}

func run(configPath string) error {
	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, closer, err := config.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = config.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting whatsleft", "version", Version)

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	shell := backnav.NewTermShell()
	model := tui.NewModel(tui.Deps{
		Config: cfg,
		Store:  st,
		Shell:  shell,
		Logger: logger,
	})
	defer model.Shutdown()

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, opts...)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down", "confirmed", shell.ExitRequested())
	return nil
}

// onboardingFlags are the one-time hints a reset brings back
var onboardingFlags = []domain.PreferenceKey{
	domain.PrefTutorialCompleted,
	domain.PrefScannerGuidanceShown,
}

func openStore(configPath string) (*store.LocalStore, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return st, nil
}

func newResetCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Show the tutorial and scanner tips again on next launch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := openStore(*configPath)
			if err != nil {
				return err
			}
			defer st.Close()

			for _, key := range onboardingFlags {
				if err := st.ClearFlag(key); err != nil {
					return fmt.Errorf("failed to clear %s: %w", key, err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Onboarding reset.")
			return nil
		},
	}
}

func newFlagsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "flags",
		Short: "Print the stored onboarding flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := openStore(*configPath)
			if err != nil {
				return err
			}
			defer st.Close()

			for _, key := range onboardingFlags {
				set, err := st.Flag(key)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", key, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %t\n", key, set)
			}
			return nil
		},
	}
}

func newConfigCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Write the effective configuration to a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// A target that does not exist yet starts from the default search path
			source := *configPath
			if source != "" {
				if _, err := os.Stat(source); errors.Is(err, fs.ErrNotExist) {
					source = ""
				}
			}
			cfg, err := config.LoadConfig(source)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			path, err := config.SaveConfig(cfg, *configPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
}
