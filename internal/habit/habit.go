// Package habit defines the Habit entity and its completion history.
//
// A Habit exclusively owns its state. Every mutator validates before it
// changes anything, so a failed call leaves the habit untouched, and every
// accessor returns a copy.
package habit

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RateWindowDays is the trailing window used by CompletionRate.
const RateWindowDays = 7

// now is swapped in tests.
var now = time.Now

// Habit is one tracked recurring behavior.
type Habit struct {
	id              string
	name            string
	description     *string
	createdAt       time.Time
	completions     []Date
	targetFrequency *int
	isActive        bool
}

// Option configures a Habit at construction.
type Option func(*Habit)

// WithDescription sets the free-text description.
func WithDescription(description string) Option {
	return func(h *Habit) {
		h.description = &description
	}
}

// WithTargetFrequency sets the intended completions per 7-day week.
func WithTargetFrequency(n int) Option {
	return func(h *Habit) {
		h.targetFrequency = &n
	}
}

// New creates an active habit with a fresh id and no completions.
func New(name string, opts ...Option) (*Habit, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	h := &Habit{
		id:        uuid.NewString(),
		name:      name,
		createdAt: now().UTC(),
		isActive:  true,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.targetFrequency != nil {
		if err := ValidateFrequency(*h.targetFrequency); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// ValidateName rejects empty and whitespace-only names.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &Error{Kind: KindInvalidName, Subject: name}
	}
	return nil
}

// ValidateFrequency rejects targets below one.
func ValidateFrequency(n int) error {
	if n < 1 {
		return &Error{Kind: KindInvalidFrequency, Subject: strconv.Itoa(n)}
	}
	return nil
}

func (h *Habit) ID() string { return h.id }

func (h *Habit) Name() string { return h.name }

// Description returns the description and whether one is set.
func (h *Habit) Description() (string, bool) {
	if h.description == nil {
		return "", false
	}
	return *h.description, true
}

func (h *Habit) CreatedAt() time.Time { return h.createdAt }

// TargetFrequency returns the weekly target and whether one is set.
func (h *Habit) TargetFrequency() (int, bool) {
	if h.targetFrequency == nil {
		return 0, false
	}
	return *h.targetFrequency, true
}

func (h *Habit) IsActive() bool { return h.isActive }

// Completions returns a copy of the completion dates in ascending order.
func (h *Habit) Completions() []Date {
	out := make([]Date, len(h.completions))
	copy(out, h.completions)
	return out
}

// HasCompletion reports whether date is already recorded.
func (h *Habit) HasCompletion(date Date) bool {
	_, found := h.search(date)
	return found
}

// search returns the insertion index for date and whether it is present.
func (h *Habit) search(date Date) (int, bool) {
	i := sort.Search(len(h.completions), func(i int) bool {
		return !h.completions[i].Before(date)
	})
	return i, i < len(h.completions) && h.completions[i] == date
}

// MarkComplete records date. A date already recorded is rejected with
// AlreadyCompleted and the history is left as is.
func (h *Habit) MarkComplete(date Date) error {
	if date.IsZero() {
		return &Error{Kind: KindInvalidDate}
	}
	i, found := h.search(date)
	if found {
		return &Error{Kind: KindAlreadyCompleted, Subject: date.String()}
	}
	h.completions = append(h.completions, Date{})
	copy(h.completions[i+1:], h.completions[i:])
	h.completions[i] = date
	return nil
}

// CompletionRate is CompletionRateAsOf(Today()).
func (h *Habit) CompletionRate() (float64, bool) {
	return h.CompletionRateAsOf(Today())
}

// CompletionRateAsOf returns completions in the 7 days ending today divided by
// the target frequency, capped at 1. ok is false when no target is set.
func (h *Habit) CompletionRateAsOf(today Date) (rate float64, ok bool) {
	if h.targetFrequency == nil || *h.targetFrequency < 1 {
		return 0, false
	}
	done := len(h.RecentCompletionsAsOf(today, RateWindowDays))
	rate = float64(done) / float64(*h.targetFrequency)
	if rate > 1 {
		rate = 1
	}
	return rate, true
}

// RecentCompletions is RecentCompletionsAsOf(Today(), window).
func (h *Habit) RecentCompletions(window int) []Date {
	return h.RecentCompletionsAsOf(Today(), window)
}

// RecentCompletionsAsOf returns the completions in (today-window, today],
// ascending. The result is a fresh slice.
func (h *Habit) RecentCompletionsAsOf(today Date, window int) []Date {
	out := []Date{}
	if window <= 0 {
		return out
	}
	start := today.AddDays(-(window - 1))
	for _, d := range h.completions {
		if d.Before(start) {
			continue
		}
		if d.After(today) {
			break
		}
		out = append(out, d)
	}
	return out
}

// SetActive moves the habit between Active and Inactive.
func (h *Habit) SetActive(active bool) { h.isActive = active }

// Rename replaces the name.
func (h *Habit) Rename(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	h.name = name
	return nil
}

func (h *Habit) SetDescription(description string) { h.description = &description }

func (h *Habit) ClearDescription() { h.description = nil }

// SetTargetFrequency replaces the weekly target.
func (h *Habit) SetTargetFrequency(n int) error {
	if err := ValidateFrequency(n); err != nil {
		return err
	}
	h.targetFrequency = &n
	return nil
}

func (h *Habit) ClearTargetFrequency() { h.targetFrequency = nil }
