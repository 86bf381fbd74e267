package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCommentApplyUpdateNilFieldsKeepStoredValues(t *testing.T) {
	parent := uuid.New()
	c := Comment{Content: "original", ParentCommentID: &parent, IsActive: true}

	c.ApplyUpdate(nil, nil, nil)

	assert.Equal(t, "original", c.Content)
	assert.Equal(t, &parent, c.ParentCommentID)
	assert.True(t, c.IsActive)
}

func TestCommentApplyUpdateMutatesOnlyProvidedFields(t *testing.T) {
	c := Comment{Content: "original", IsActive: true}

	edited := "edited"
	c.ApplyUpdate(&edited, nil, nil)
	assert.Equal(t, "edited", c.Content)
	assert.Nil(t, c.ParentCommentID)
	assert.True(t, c.IsActive)

	parent := uuid.New()
	c.ApplyUpdate(nil, &parent, nil)
	assert.Equal(t, "edited", c.Content)
	assert.Equal(t, &parent, c.ParentCommentID)

	inactive := false
	c.ApplyUpdate(nil, nil, &inactive)
	assert.False(t, c.IsActive)
	assert.Equal(t, "edited", c.Content)
	assert.Equal(t, &parent, c.ParentCommentID)
}

func TestCommentApplyUpdateReactivates(t *testing.T) {
	c := Comment{Content: "hidden", IsActive: false}

	active := true
	c.ApplyUpdate(nil, nil, &active)
	assert.True(t, c.IsActive)
}
