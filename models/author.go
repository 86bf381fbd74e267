package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Actor type discriminators used across comments, likes and community creators.
const (
	ActorUser     = "user"
	ActorBusiness = "business"
)

// UnknownAuthorName is shown when an author record is missing or has no name.
const UnknownAuthorName = "Unknown"

// Author is the display identity attached to comments and likes. Users carry a
// username and profile picture, businesses a company name and logo.
type Author struct {
	Name       string  `json:"name"`
	Username   *string `json:"username,omitempty"`
	ProfilePic string  `json:"profile_pic,omitempty"`
}

// IsValidActorType reports whether t names a known actor kind.
func IsValidActorType(t string) bool {
	return t == ActorUser || t == ActorBusiness
}

// ResolveAuthor looks up the display identity for an actor. Lookups never fail
// the caller: a missing or deactivated record resolves to the Unknown
// placeholder so that listings stay renderable after account deletions.
func ResolveAuthor(db *gorm.DB, actorID uuid.UUID, actorType string) Author {
	switch actorType {
	case ActorUser:
		var u User
		if err := db.Select("first_name", "last_name", "username", "profile_pic", "is_active").
			First(&u, "id = ?", actorID).Error; err != nil {
			return Author{Name: UnknownAuthorName}
		}
		return u.AsAuthor()
	case ActorBusiness:
		var b BusinessAccount
		if err := db.Select("company_name", "logo_url").
			First(&b, "id = ?", actorID).Error; err != nil {
			return Author{Name: UnknownAuthorName}
		}
		name := b.CompanyName
		if name == "" {
			name = UnknownAuthorName
		}
		return Author{Name: name, ProfilePic: b.LogoURL}
	default:
		return Author{Name: UnknownAuthorName}
	}
}
