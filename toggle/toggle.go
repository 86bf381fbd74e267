// Package toggle implements the flip-or-create semantics shared by post
// likes, comment likes and follows.
package toggle

import (
	"errors"

	"gorm.io/gorm"
)

// Outcome describes the state after a toggle.
type Outcome struct {
	// Active is the new state of the relationship.
	Active bool
	// Created is true when the toggle inserted the first row for the pair.
	Created bool
}

// Next computes the state transition for a toggle. A nil prior means no row
// exists yet and the toggle creates an active one; otherwise the stored flag
// is flipped. Rows are never deleted, so repeated toggles alternate state.
func Next(prior *bool) Outcome {
	if prior == nil {
		return Outcome{Active: true, Created: true}
	}
	return Outcome{Active: !*prior}
}

// Conflict reports whether err is a uniqueness violation from a concurrent
// insert of the same pair. Callers re-read the row and retry as an update.
func Conflict(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Store persists the relationship row for one pair.
type Store interface {
	// Current returns the stored active flag, or nil when no row exists.
	Current() (*bool, error)
	// Insert creates the row with the given state.
	Insert(active bool) error
	// SetActive flips the existing row to the given state.
	SetActive(active bool) error
}

// Apply runs one flip-or-create toggle against a store. When two requests
// race on the first toggle for a pair, the loser's insert hits the unique
// index; the surviving row is re-read and flipped as an update, so exactly
// one row ever exists per pair.
func Apply(s Store) (Outcome, error) {
	prior, err := s.Current()
	if err != nil {
		return Outcome{}, err
	}
	out := Next(prior)
	if prior != nil {
		return out, s.SetActive(out.Active)
	}

	insertErr := s.Insert(out.Active)
	if insertErr == nil {
		return out, nil
	}
	if !Conflict(insertErr) {
		return Outcome{}, insertErr
	}

	prior, err = s.Current()
	if err != nil {
		return Outcome{}, err
	}
	if prior == nil {
		return Outcome{}, insertErr
	}
	out = Next(prior)
	return out, s.SetActive(out.Active)
}
