package main

import (
	"fmt"

	"habit/internal/habit"
	"habit/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// =============================================================================
// HABIT COMMANDS (add, list, complete, remove)
// =============================================================================

func openStore() (*store.HabitStore, error) {
	return store.Load(cfg.Storage.Path, store.WithLogger(storeLogger))
}

func saveStore(s *store.HabitStore) error {
	if err := s.Save(cfg.Storage.Path); err != nil {
		return fmt.Errorf("failed to save habits: %w", err)
	}
	return nil
}

func newAddCmd() *cobra.Command {
	var (
		description string
		frequency   int
	)
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new habit",
		Long: `Adds a habit to the store.

Example:
  habit add "Read 30 minutes" --frequency 7 --description "fiction counts"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []habit.Option
			if cmd.Flags().Changed("description") {
				opts = append(opts, habit.WithDescription(description))
			}
			if cmd.Flags().Changed("frequency") {
				opts = append(opts, habit.WithTargetFrequency(frequency))
			}
			h, err := habit.New(args[0], opts...)
			if err != nil {
				return err
			}

			s, err := openStore()
			if err != nil {
				return err
			}
			if err := s.Add(h); err != nil {
				return err
			}
			if err := saveStore(s); err != nil {
				return err
			}

			logger.Info("Habit added", zap.String("id", h.ID()), zap.String("name", h.Name()))
			fmt.Fprintf(cmd.OutOrStdout(), "Added habit: '%s' (ID: %s)\n", h.Name(), h.ID())
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "Free-text description")
	cmd.Flags().IntVar(&frequency, "frequency", 0, "Target completions per week (at least 1)")
	return cmd
}

func newListCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List habits",
		Long:  `Lists active habits in creation order. Use --all to include inactive ones.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			habits := s.List(!all)
			logger.Debug("Listing habits", zap.Int("shown", len(habits)), zap.Int("total", s.Len()))
			renderHabitList(cmd.OutOrStdout(), habits, !all, habit.Today())
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Include inactive habits")
	return cmd
}

func newCompleteCmd() *cobra.Command {
	var dateFlag string
	cmd := &cobra.Command{
		Use:   "complete <identifier>",
		Short: "Mark a habit complete for a day",
		Long: `Marks the habit identified by id or name complete for today (UTC),
or for the day given with --date. A day can only be completed once.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := habit.Today()
			if dateFlag != "" {
				d, err := habit.ParseDate(dateFlag)
				if err != nil {
					return err
				}
				day = d
			}

			s, err := openStore()
			if err != nil {
				return err
			}
			h, err := s.Find(args[0])
			if err != nil {
				return err
			}
			if err := h.MarkComplete(day); err != nil {
				return err
			}
			if err := saveStore(s); err != nil {
				return err
			}

			logger.Info("Habit completed", zap.String("id", h.ID()), zap.Stringer("date", day))
			fmt.Fprintf(cmd.OutOrStdout(), "Marked complete: '%s' (%s)\n", h.Name(), day)
			return nil
		},
	}
	cmd.Flags().StringVar(&dateFlag, "date", "", "Day to mark, YYYY-MM-DD (default today, UTC)")
	return cmd
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <identifier>",
		Short: "Remove a habit and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			h, err := s.Remove(args[0])
			if err != nil {
				return err
			}
			if err := saveStore(s); err != nil {
				return err
			}

			logger.Info("Habit removed", zap.String("id", h.ID()), zap.String("name", h.Name()))
			fmt.Fprintf(cmd.OutOrStdout(), "Removed habit: '%s' (ID: %s)\n", h.Name(), h.ID())
			return nil
		},
	}
}
