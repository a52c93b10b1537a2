package main

import (
	"fmt"
	"io"
	"strings"

	"habit/internal/habit"

	"github.com/charmbracelet/lipgloss"
)

var (
	success = lipgloss.Color("#8BC34A")
	muted   = lipgloss.Color("#7A8699")
	warning = lipgloss.Color("#FFC107")

	titleStyle    = lipgloss.NewStyle().Bold(true)
	nameStyle     = lipgloss.NewStyle().Bold(true).Foreground(success)
	labelStyle    = lipgloss.NewStyle().Foreground(muted)
	inactiveStyle = lipgloss.NewStyle().Foreground(warning)
)

const ruleWidth = 50

func renderHabitList(w io.Writer, habits []*habit.Habit, activeOnly bool, today habit.Date) {
	if len(habits) == 0 {
		fmt.Fprintf(w, "No habits to display (active only = %v)\n", activeOnly)
		return
	}

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Habits (%d)", len(habits))))
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))
	for _, h := range habits {
		renderSummary(w, h, today)
	}
}

func renderSummary(w io.Writer, h *habit.Habit, today habit.Date) {
	header := "ID: " + h.ID() + " | " + nameStyle.Render(h.Name())
	if !h.IsActive() {
		header += " " + inactiveStyle.Render("(inactive)")
	}
	fmt.Fprintln(w, header)
	if desc, ok := h.Description(); ok {
		field(w, "Description", desc)
	}
	field(w, "Created", habit.DateOf(h.CreatedAt()).String())
	field(w, "Completions", fmt.Sprintf("%d total, %d in last %d days",
		len(h.Completions()), len(h.RecentCompletionsAsOf(today, habit.RateWindowDays)), habit.RateWindowDays))
	if freq, ok := h.TargetFrequency(); ok {
		rate, _ := h.CompletionRateAsOf(today)
		field(w, "Target", fmt.Sprintf("%d per week (%.0f%% this week)", freq, rate*100))
	}
	field(w, "Active", fmt.Sprintf("%v", h.IsActive()))
}

func renderHabitDetail(w io.Writer, h *habit.Habit, today habit.Date, window int) {
	renderSummary(w, h, today)

	recent := h.RecentCompletionsAsOf(today, window)
	if len(recent) == 0 {
		field(w, fmt.Sprintf("Last %d days", window), "none")
		return
	}
	days := make([]string, len(recent))
	for i, d := range recent {
		days[i] = d.String()
	}
	field(w, fmt.Sprintf("Last %d days", window), strings.Join(days, ", "))
}

func field(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(label+":"), value)
}
