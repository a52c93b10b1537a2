package habit

import (
	"errors"
	"fmt"
)

// Kind classifies every error the habit core can return.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalidName
	KindInvalidFrequency
	KindAlreadyCompleted
	KindDuplicateID
	KindStorage
	KindSerialization
	KindInvalidDate
	KindInvalidHabit
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalidName:
		return "invalid name"
	case KindInvalidFrequency:
		return "invalid frequency"
	case KindAlreadyCompleted:
		return "already completed"
	case KindDuplicateID:
		return "duplicate id"
	case KindStorage:
		return "storage"
	case KindSerialization:
		return "serialization"
	case KindInvalidDate:
		return "invalid date"
	case KindInvalidHabit:
		return "invalid habit"
	default:
		return "unknown"
	}
}

// Error is the single error type of the habit core. Subject carries the
// contextual payload (the missing identifier, the duplicate date, the path).
type Error struct {
	Kind    Kind
	Subject string
	Err     error
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrInvalidName      = &Error{Kind: KindInvalidName}
	ErrInvalidFrequency = &Error{Kind: KindInvalidFrequency}
	ErrAlreadyCompleted = &Error{Kind: KindAlreadyCompleted}
	ErrDuplicateID      = &Error{Kind: KindDuplicateID}
	ErrStorage          = &Error{Kind: KindStorage}
	ErrSerialization    = &Error{Kind: KindSerialization}
	ErrInvalidDate      = &Error{Kind: KindInvalidDate}
	ErrInvalidHabit     = &Error{Kind: KindInvalidHabit}
)

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindNotFound:
		msg = fmt.Sprintf("habit not found: %s", e.Subject)
	case KindInvalidName:
		msg = fmt.Sprintf("invalid habit name: %q", e.Subject)
	case KindInvalidFrequency:
		msg = fmt.Sprintf("invalid target frequency: %s (must be at least 1)", e.Subject)
	case KindAlreadyCompleted:
		msg = fmt.Sprintf("habit already completed for date: %s", e.Subject)
	case KindDuplicateID:
		msg = fmt.Sprintf("duplicate habit id: %s", e.Subject)
	case KindStorage:
		msg = fmt.Sprintf("storage error: %s", e.Subject)
	case KindSerialization:
		msg = fmt.Sprintf("serialization error: %s", e.Subject)
	case KindInvalidDate:
		msg = fmt.Sprintf("invalid date: %q", e.Subject)
	case KindInvalidHabit:
		msg = fmt.Sprintf("invalid habit %q", e.Subject)
	default:
		msg = e.Subject
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// NotFound reports that identifier matched no habit.
func NotFound(identifier string) error {
	return &Error{Kind: KindNotFound, Subject: identifier}
}

// DuplicateID reports an id collision on insert.
func DuplicateID(id string) error {
	return &Error{Kind: KindDuplicateID, Subject: id}
}

// StorageError wraps an I/O failure on path.
func StorageError(path string, err error) error {
	return &Error{Kind: KindStorage, Subject: path, Err: err}
}

// SerializationError wraps an encode or decode failure on path.
func SerializationError(path string, err error) error {
	return &Error{Kind: KindSerialization, Subject: path, Err: err}
}
