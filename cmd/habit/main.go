// Package main implements the habit CLI: a local, offline habit tracker
// backed by a single JSON file.
package main

import (
	"fmt"
	"os"

	"habit/internal/config"
	"habit/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose     bool
	configPath  string
	storagePath string

	// Resolved at PersistentPreRunE
	cfgFile     string
	cfg         *config.Config
	logger      *zap.Logger
	storeLogger *zap.Logger
)

// newRootCmd builds the command tree. Flag variables are reset to their
// defaults on every call.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "habit",
		Short: "Habit Tracker CLI",
		Long: `habit tracks recurring behaviors and the days you completed them.

All data lives in a single JSON file (habits.json by default, or the path in
$HABIT_STORAGE, the --storage flag, or storage.path in habit.yaml).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $HABIT_CONFIG or ./habit.yaml)")
	rootCmd.PersistentFlags().StringVar(&storagePath, "storage", "", "Storage file (overrides config and $HABIT_STORAGE)")

	rootCmd.AddCommand(
		newAddCmd(),
		newListCmd(),
		newCompleteCmd(),
		newRemoveCmd(),
		newEditCmd(),
		newShowCmd(),
		newInitCmd(),
	)
	return rootCmd
}

// setup resolves configuration and builds loggers.
func setup() error {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfgFile = path

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}
	if storagePath != "" {
		cfg.Storage.Path = storagePath
	}

	base, err := logging.New(cfg.Logging, verbose)
	if err != nil {
		return err
	}
	logger = logging.For(base, cfg.Logging, logging.CategoryCLI)
	storeLogger = logging.For(base, cfg.Logging, logging.CategoryStore)

	logging.For(base, cfg.Logging, logging.CategoryBoot).Debug("Configuration resolved",
		zap.String("config", path),
		zap.String("storage", cfg.Storage.Path),
		zap.String("level", cfg.Logging.Level),
	)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
