package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"habit/internal/habit"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// clearValue passed to --description or --frequency removes the field.
const clearValue = "null"

// habitEdit is a fully validated set of changes.
type habitEdit struct {
	name        *string
	description *string
	clearDesc   bool
	frequency   *int
	clearFreq   bool
	active      *bool
}

func (e habitEdit) empty() bool {
	return e.name == nil && e.description == nil && !e.clearDesc &&
		e.frequency == nil && !e.clearFreq && e.active == nil
}

// apply cannot fail: every value was validated when the edit was built.
func (e habitEdit) apply(h *habit.Habit) {
	if e.name != nil {
		_ = h.Rename(*e.name)
	}
	switch {
	case e.clearDesc:
		h.ClearDescription()
	case e.description != nil:
		h.SetDescription(*e.description)
	}
	switch {
	case e.clearFreq:
		h.ClearTargetFrequency()
	case e.frequency != nil:
		_ = h.SetTargetFrequency(*e.frequency)
	}
	if e.active != nil {
		h.SetActive(*e.active)
	}
}

func newEditCmd() *cobra.Command {
	var (
		name        string
		description string
		frequency   string
		active      bool
	)
	cmd := &cobra.Command{
		Use:   "edit <identifier>",
		Short: "Edit habit details",
		Long: `Changes a habit's name, description, target frequency or active flag.
Pass "null" to --description or --frequency to clear it.

Examples:
  habit edit Gym --name "Gym session" --frequency 3
  habit edit Gym --description null --active=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var edit habitEdit
			flags := cmd.Flags()

			if flags.Changed("name") {
				if err := habit.ValidateName(name); err != nil {
					return err
				}
				edit.name = &name
			}
			if flags.Changed("description") {
				if strings.EqualFold(description, clearValue) {
					edit.clearDesc = true
				} else {
					edit.description = &description
				}
			}
			if flags.Changed("frequency") {
				if strings.EqualFold(frequency, clearValue) {
					edit.clearFreq = true
				} else {
					n, err := strconv.Atoi(frequency)
					if err != nil {
						return &habit.Error{Kind: habit.KindInvalidFrequency, Subject: frequency, Err: err}
					}
					if err := habit.ValidateFrequency(n); err != nil {
						return err
					}
					edit.frequency = &n
				}
			}
			if flags.Changed("active") {
				edit.active = &active
			}
			if edit.empty() {
				return errors.New("nothing to edit: pass at least one of --name, --description, --frequency, --active")
			}

			s, err := openStore()
			if err != nil {
				return err
			}
			h, err := s.Find(args[0])
			if err != nil {
				return err
			}
			edit.apply(h)
			if err := saveStore(s); err != nil {
				return err
			}

			logger.Info("Habit updated", zap.String("id", h.ID()), zap.String("name", h.Name()))
			fmt.Fprintf(cmd.OutOrStdout(), "Updated habit: '%s'\n", h.Name())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "description", "", `New description, or "null" to clear`)
	cmd.Flags().StringVar(&frequency, "frequency", "", `New weekly target, or "null" to clear`)
	cmd.Flags().BoolVar(&active, "active", true, "Whether the habit is active")
	return cmd
}
