package toggle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestNextCreatesActiveRowWhenMissing(t *testing.T) {
	out := Next(nil)
	assert.True(t, out.Active)
	assert.True(t, out.Created)
}

func TestNextFlipsExistingState(t *testing.T) {
	active := true
	out := Next(&active)
	assert.False(t, out.Active)
	assert.False(t, out.Created)

	inactive := false
	out = Next(&inactive)
	assert.True(t, out.Active)
	assert.False(t, out.Created)
}

func TestNextIsAnInvolutionOverStoredState(t *testing.T) {
	state := true
	for i := 0; i < 6; i++ {
		state = Next(&state).Active
	}
	assert.True(t, state, "even number of flips restores the state")
}

func TestConflict(t *testing.T) {
	assert.True(t, Conflict(gorm.ErrDuplicatedKey))
	assert.True(t, Conflict(errors.Join(errors.New("wrapped"), gorm.ErrDuplicatedKey)))
	assert.False(t, Conflict(gorm.ErrRecordNotFound))
	assert.False(t, Conflict(nil))
}

// memStore keeps the relationship row in memory and counts writes.
type memStore struct {
	row        *bool
	inserts    int
	updates    int
	insertErrs []error
}

func (m *memStore) Current() (*bool, error) {
	if m.row == nil {
		return nil, nil
	}
	v := *m.row
	return &v, nil
}

func (m *memStore) Insert(active bool) error {
	m.inserts++
	if len(m.insertErrs) > 0 {
		err := m.insertErrs[0]
		m.insertErrs = m.insertErrs[1:]
		return err
	}
	m.row = &active
	return nil
}

func (m *memStore) SetActive(active bool) error {
	m.updates++
	m.row = &active
	return nil
}

func TestApplyCreatesThenAlternatesWithoutDeleting(t *testing.T) {
	store := &memStore{}

	out, err := Apply(store)
	assert.NoError(t, err)
	assert.True(t, out.Active)
	assert.True(t, out.Created)

	for i := 0; i < 5; i++ {
		prev := *store.row
		out, err = Apply(store)
		assert.NoError(t, err)
		assert.False(t, out.Created)
		assert.Equal(t, !prev, out.Active)
	}

	assert.Equal(t, 1, store.inserts, "the row is created once and only flipped afterwards")
	assert.NotNil(t, store.row)
}

func TestApplyRetriesLostInsertRaceAsUpdate(t *testing.T) {
	store := &memStore{insertErrs: []error{gorm.ErrDuplicatedKey}}

	out, err := Apply(&racingStore{memStore: store, winnerState: true})
	assert.NoError(t, err)
	assert.False(t, out.Active, "the winner's active row is flipped off")
	assert.False(t, out.Created)
	assert.Equal(t, 1, store.inserts)
	assert.Equal(t, 1, store.updates)
}

// racingStore commits a competing request's row whenever an insert fails,
// simulating the losing side of a first-toggle race.
type racingStore struct {
	*memStore
	winnerState bool
}

func (r *racingStore) Insert(active bool) error {
	err := r.memStore.Insert(active)
	if err != nil {
		r.memStore.row = &r.winnerState
	}
	return err
}

func TestApplySurfacesNonConflictInsertErrors(t *testing.T) {
	boom := errors.New("connection lost")
	store := &memStore{insertErrs: []error{boom}}

	_, err := Apply(store)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, store.updates)
}
