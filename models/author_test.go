package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsValidActorType(t *testing.T) {
	assert.True(t, IsValidActorType(ActorUser))
	assert.True(t, IsValidActorType(ActorBusiness))
	assert.False(t, IsValidActorType("admin"))
	assert.False(t, IsValidActorType(""))
}

func TestResolveAuthorUnknownActorType(t *testing.T) {
	a := ResolveAuthor(nil, uuid.Nil, "bot")
	assert.Equal(t, UnknownAuthorName, a.Name)
	assert.Nil(t, a.Username)
	assert.Empty(t, a.ProfilePic)
}

func TestUserAsAuthor(t *testing.T) {
	u := User{FirstName: "Ada", LastName: "Lovelace", Username: "ada", ProfilePic: "/p.png", IsActive: true}
	a := u.AsAuthor()
	assert.Equal(t, "Ada Lovelace", a.Name)
	if assert.NotNil(t, a.Username) {
		assert.Equal(t, "ada", *a.Username)
	}
	assert.Equal(t, "/p.png", a.ProfilePic)
}

func TestUserAsAuthorDeactivatedResolvesUnknown(t *testing.T) {
	u := User{FirstName: "Ada", LastName: "Lovelace", Username: "ada", ProfilePic: "/p.png", IsActive: false}
	a := u.AsAuthor()
	assert.Equal(t, UnknownAuthorName, a.Name)
	assert.Nil(t, a.Username)
	assert.Empty(t, a.ProfilePic)
}

func TestUserDisplayName(t *testing.T) {
	u := User{FirstName: "Ada", LastName: "Lovelace"}
	assert.Equal(t, "Ada Lovelace", u.DisplayName())

	assert.Equal(t, "Ada", (&User{FirstName: "Ada"}).DisplayName())
	assert.Equal(t, UnknownAuthorName, (&User{}).DisplayName())
	assert.Equal(t, UnknownAuthorName, (&User{FirstName: "  ", LastName: " "}).DisplayName())
}
