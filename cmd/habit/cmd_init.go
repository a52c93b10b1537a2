package main

import (
	"fmt"

	"habit/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a habit.yaml with the current settings",
		Long: `Writes the configuration file (--config, $HABIT_CONFIG or ./habit.yaml)
with default settings and the storage path currently in effect.

An existing file is left alone unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := config.DefaultConfig()
			out.Storage.Path = cfg.Storage.Path
			if err := out.Save(cfgFile, force); err != nil {
				return err
			}

			logger.Info("Config written", zap.String("path", cfgFile))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote config: %s\n", cfgFile)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing config file")
	return cmd
}
