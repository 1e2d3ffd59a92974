// Package cmd implements the riseup command line.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/riseup/internal/config"
	"github.com/abhisek/riseup/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "riseup",
	Short: "Alarm clock you can only silence by solving a challenge",
	Long: `riseup keeps terminal alarms that ring until you solve a wake-up challenge:
mental math, a code-output quiz, or a rhythm tapping game.

Run "riseup watch" in a long-lived terminal to fire alarms, and manage them
with "riseup alarm". Running riseup with no command opens practice mode.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadSettings(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHome(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides RISEUP_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides RISEUP_CONFIG env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(alarmCmd)
	rootCmd.AddCommand(ringCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// settings holds the resolved configuration and logger for the running
// command.
var settings struct {
	cfg    *config.Config
	logger *slog.Logger
}

// loadSettings resolves configuration: defaults, then the config file,
// then RISEUP_* env vars, then flags.
func loadSettings(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}

	level, _ := config.ParseLogLevel(cfg.LogLevel)
	settings.cfg = cfg
	settings.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then RISEUP_DB env var or db_path from the config file, then the default
// XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if p := settings.cfg.DBPath; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
