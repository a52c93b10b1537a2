package main

import (
	"habit/internal/habit"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <identifier>",
		Short: "Show a habit's details and recent history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			h, err := s.Find(args[0])
			if err != nil {
				return err
			}
			renderHabitDetail(cmd.OutOrStdout(), h, habit.Today(), cfg.GetRecentWindow())
			return nil
		},
	}
}
