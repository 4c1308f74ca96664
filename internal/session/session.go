// Package session holds per-caller editable copies of a canonical table.
package session

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/custlens-cli/internal/cleaner"
	"github.com/KaramelBytes/custlens-cli/internal/table"
)

// ErrRowOutOfRange is returned when an edit names a row the table does not have.
var ErrRowOutOfRange = errors.New("row out of range")

var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// ValidationError reports an edit whose value was rejected.
type ValidationError struct {
	Row    int
	Column string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("invalid %s %q: %s", e.Column, e.Value, e.Reason)
	}
	return fmt.Sprintf("row %d: invalid %s %q: %s", e.Row, e.Column, e.Value, e.Reason)
}

// Session is an editable view over a base table. The base is never
// modified; every edit replaces the current table with a new one.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	base    *table.Table
	current *table.Table
	history []Edit
}

// New starts a session over base.
func New(base *table.Table) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		base:      base,
		current:   base,
	}
}

// Base returns the table the session started from.
func (s *Session) Base() *table.Table { return s.base }

// Table returns the current state of the session.
func (s *Session) Table() *table.Table { return s.current }

// History returns the edits applied since the last Reset, oldest first.
func (s *Session) History() []Edit {
	out := make([]Edit, len(s.history))
	copy(out, s.history)
	return out
}

// Reset discards every edit.
func (s *Session) Reset() {
	s.current = s.base
	s.history = nil
	s.UpdatedAt = time.Now()
}

// Set replaces the value of one cell.
func (s *Session) Set(row int, column, value string) (*table.Table, error) {
	return s.Apply(Edit{Op: OpSet, Row: row, Column: column, Value: value})
}

// Delete removes the row at the given position.
func (s *Session) Delete(row int) (*table.Table, error) {
	return s.Apply(Edit{Op: OpDelete, Row: row})
}

// Append adds a row built from column/value pairs.
func (s *Session) Append(values map[string]string) (*table.Table, error) {
	return s.Apply(Edit{Op: OpAppend, Values: values})
}

// Apply runs a single edit against the current table and records it.
func (s *Session) Apply(e Edit) (*table.Table, error) {
	next, err := apply(s.current, e)
	if err != nil {
		return nil, err
	}
	e.ID = uuid.NewString()
	e.AppliedAt = time.Now()
	s.current = next
	s.history = append(s.history, e)
	s.UpdatedAt = e.AppliedAt
	return next, nil
}

// ApplyAll applies edits in order. If any edit fails the session is left
// as it was before the call.
func (s *Session) ApplyAll(edits []Edit) (*table.Table, error) {
	cur, hist, upd := s.current, len(s.history), s.UpdatedAt
	for i, e := range edits {
		if _, err := s.Apply(e); err != nil {
			s.current, s.history, s.UpdatedAt = cur, s.history[:hist], upd
			return nil, fmt.Errorf("edit %d (%s): %w", i+1, e.Op, err)
		}
	}
	return s.current, nil
}

func apply(t *table.Table, e Edit) (*table.Table, error) {
	switch e.Op {
	case OpSet:
		if err := checkRow(t, e.Row); err != nil {
			return nil, err
		}
		if !t.HasColumn(e.Column) {
			return nil, fmt.Errorf("unknown column %q", e.Column)
		}
		if err := validate(e.Row, e.Column, e.Value); err != nil {
			return nil, err
		}
		return t.WithValue(e.Row, e.Column, e.Value)
	case OpDelete:
		if err := checkRow(t, e.Row); err != nil {
			return nil, err
		}
		return t.WithoutRow(e.Row)
	case OpAppend:
		for col, v := range e.Values {
			if err := validate(-1, col, v); err != nil {
				return nil, err
			}
		}
		return t.WithRow(e.Values)
	default:
		return nil, fmt.Errorf("unknown edit op %q", e.Op)
	}
}

func checkRow(t *table.Table, row int) error {
	if row < 0 || row >= t.Len() {
		return fmt.Errorf("row %d of %d: %w", row, t.Len(), ErrRowOutOfRange)
	}
	return nil
}

// validate checks values that carry a format. Empty emails are accepted so
// a record can be cleared; export warns about them.
func validate(row int, column, value string) error {
	if column != cleaner.ColEmail || value == "" {
		return nil
	}
	if !emailPattern.MatchString(value) {
		return &ValidationError{Row: row, Column: column, Value: value, Reason: "not a valid email address"}
	}
	return nil
}
