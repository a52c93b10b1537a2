package habit

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Record is the persisted form of a Habit.
type Record struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	Completions     []Date    `json:"completions"`
	TargetFrequency *int      `json:"target_frequency,omitempty"`
	IsActive        bool      `json:"is_active"`
}

// Record returns a detached copy of h in persisted form.
func (h *Habit) Record() Record {
	r := Record{
		ID:          h.id,
		Name:        h.name,
		CreatedAt:   h.createdAt,
		Completions: h.Completions(),
		IsActive:    h.isActive,
	}
	if h.description != nil {
		d := *h.description
		r.Description = &d
	}
	if h.targetFrequency != nil {
		n := *h.targetFrequency
		r.TargetFrequency = &n
	}
	return r
}

// FromRecord rebuilds a Habit, rejecting any record that breaks an entity
// invariant. Ids are stored in canonical lowercase form. The returned habit
// shares no memory with r.
func FromRecord(r Record) (*Habit, error) {
	u, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, &Error{Kind: KindInvalidHabit, Subject: r.ID, Err: err}
	}
	if err := ValidateName(r.Name); err != nil {
		return nil, err
	}
	if r.CreatedAt.IsZero() {
		return nil, &Error{Kind: KindInvalidHabit, Subject: r.ID, Err: errors.New("created_at is required")}
	}
	h := &Habit{
		id:        u.String(),
		name:      r.Name,
		createdAt: r.CreatedAt.UTC(),
		isActive:  r.IsActive,
	}
	if r.Description != nil {
		d := *r.Description
		h.description = &d
	}
	if r.TargetFrequency != nil {
		if err := ValidateFrequency(*r.TargetFrequency); err != nil {
			return nil, err
		}
		n := *r.TargetFrequency
		h.targetFrequency = &n
	}
	h.completions = make([]Date, 0, len(r.Completions))
	for i, d := range r.Completions {
		if d.IsZero() {
			return nil, &Error{Kind: KindInvalidHabit, Subject: r.ID, Err: fmt.Errorf("completion %d is empty", i)}
		}
		if i > 0 && !r.Completions[i-1].Before(d) {
			return nil, &Error{Kind: KindInvalidHabit, Subject: r.ID,
				Err: fmt.Errorf("completions not strictly ascending at index %d (%s)", i, d)}
		}
		h.completions = append(h.completions, d)
	}
	return h, nil
}

// Validate reports whether h could be persisted and read back. Habits built
// with New or FromRecord always pass; a zero Habit does not.
func (h *Habit) Validate() error {
	if h == nil {
		return &Error{Kind: KindInvalidHabit, Subject: "<nil>"}
	}
	_, err := FromRecord(h.Record())
	return err
}
