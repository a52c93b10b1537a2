// Package store holds the authoritative in-memory habit collection and its
// JSON file persistence.
//
// A HabitStore is loaded once, mutated in place and saved wholesale. It is not
// safe for concurrent use.
package store

import (
	"errors"
	"os"
	"slices"
	"time"

	"habit/internal/habit"
	"habit/internal/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// slowSave is the duration after which a save is logged as a warning.
const slowSave = 500 * time.Millisecond

// document is the top-level layout of the storage file.
type document struct {
	Habits []habit.Record `json:"habits"`
}

// HabitStore exclusively owns every Habit it contains.
type HabitStore struct {
	habits []*habit.Habit
	logger *zap.Logger
}

// Option configures a HabitStore.
type Option func(*HabitStore)

// WithLogger sets the logger used for store tracing.
func WithLogger(l *zap.Logger) Option {
	return func(s *HabitStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns an empty store.
func New(opts ...Option) *HabitStore {
	s := &HabitStore{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the collection from path. A missing file yields an empty store.
// Unreadable files fail with a Storage error; anything that does not decode
// to a valid collection fails with a Serialization error.
func Load(path string, opts ...Option) (*HabitStore, error) {
	s := New(opts...)
	log := s.logger.With(zap.String("path", path))
	defer logging.StartTimer(log, "load").Stop()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug("Storage file absent, starting empty")
			return s, nil
		}
		log.Error("Failed to read storage file", zap.Error(err))
		return nil, habit.StorageError(path, err)
	}

	var doc document
	if err := decodeStrict(data, &doc); err != nil {
		log.Error("Failed to decode storage file", zap.Error(err))
		return nil, habit.SerializationError(path, err)
	}

	seen := make(map[string]struct{}, len(doc.Habits))
	s.habits = make([]*habit.Habit, 0, len(doc.Habits))
	for _, r := range doc.Habits {
		h, err := habit.FromRecord(r)
		if err != nil {
			log.Error("Invalid habit record", zap.String("id", r.ID), zap.Error(err))
			return nil, habit.SerializationError(path, err)
		}
		if _, dup := seen[h.ID()]; dup {
			err := habit.DuplicateID(h.ID())
			log.Error("Duplicate habit id in storage file", zap.Error(err))
			return nil, habit.SerializationError(path, err)
		}
		seen[h.ID()] = struct{}{}
		s.habits = append(s.habits, h)
	}

	log.Debug("Loaded habits", zap.Int("habits", len(s.habits)), zap.Int("bytes", len(data)))
	return s, nil
}

// Save writes the whole collection to path, atomically replacing any
// previous content. On failure the previous file is left intact.
func (s *HabitStore) Save(path string) error {
	log := s.logger.With(zap.String("path", path))
	defer logging.StartTimer(log, "save").StopWithThreshold(slowSave)

	doc := document{Habits: make([]habit.Record, 0, len(s.habits))}
	for _, h := range s.habits {
		doc.Habits = append(doc.Habits, h.Record())
	}
	data, err := marshalStable(doc)
	if err != nil {
		log.Error("Failed to encode habits", zap.Error(err))
		return habit.SerializationError(path, err)
	}
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		log.Error("Failed to write storage file", zap.Error(err))
		return habit.StorageError(path, err)
	}

	log.Debug("Saved habits", zap.Int("habits", len(s.habits)), zap.Int("bytes", len(data)))
	return nil
}

// Add inserts h. A habit that could not be read back once saved fails with
// InvalidHabit (or InvalidName); an id already present fails with DuplicateID.
func (s *HabitStore) Add(h *habit.Habit) error {
	if err := h.Validate(); err != nil {
		s.logger.Error("Rejected invalid habit on insert", zap.Error(err))
		return err
	}
	for _, existing := range s.habits {
		if existing.ID() == h.ID() {
			s.logger.Error("Duplicate habit id on insert", zap.String("id", h.ID()))
			return habit.DuplicateID(h.ID())
		}
	}
	s.habits = append(s.habits, h)
	s.logger.Debug("Added habit", zap.String("id", h.ID()), zap.String("name", h.Name()))
	return nil
}

// Find resolves identifier as an id first, then as an exact name. When
// several habits share the name, the earliest created wins.
func (s *HabitStore) Find(identifier string) (*habit.Habit, error) {
	i := s.indexOf(identifier)
	if i < 0 {
		s.logger.Debug("Habit lookup missed", zap.String("identifier", identifier))
		return nil, habit.NotFound(identifier)
	}
	return s.habits[i], nil
}

// Remove resolves identifier like Find and deletes the match.
func (s *HabitStore) Remove(identifier string) (*habit.Habit, error) {
	i := s.indexOf(identifier)
	if i < 0 {
		return nil, habit.NotFound(identifier)
	}
	h := s.habits[i]
	s.habits = slices.Delete(s.habits, i, i+1)
	s.logger.Debug("Removed habit", zap.String("id", h.ID()), zap.String("name", h.Name()))
	return h, nil
}

// indexOf returns the position of the habit identifier resolves to, or -1.
// Ids are matched in any spelling uuid.Parse accepts.
func (s *HabitStore) indexOf(identifier string) int {
	id := identifier
	if u, err := uuid.Parse(identifier); err == nil {
		id = u.String()
	}
	for i, h := range s.habits {
		if h.ID() == id {
			return i
		}
	}
	best := -1
	for i, h := range s.habits {
		if h.Name() != identifier {
			continue
		}
		if best < 0 || h.CreatedAt().Before(s.habits[best].CreatedAt()) {
			best = i
		}
	}
	return best
}

// List returns the habits in insertion order, optionally only active ones.
// The slice is fresh, so reordering it leaves the store alone, but the habits
// are the store's own: mutating one is mutating the store, as with Find.
func (s *HabitStore) List(activeOnly bool) []*habit.Habit {
	out := make([]*habit.Habit, 0, len(s.habits))
	for _, h := range s.habits {
		if activeOnly && !h.IsActive() {
			continue
		}
		out = append(out, h)
	}
	return out
}

// Len returns the number of habits, active or not.
func (s *HabitStore) Len() int { return len(s.habits) }
