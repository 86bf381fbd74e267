package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a member profile. Passwords are stored as bcrypt hashes only.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName    string     `gorm:"size:64;not null" json:"first_name"`
	LastName     string     `gorm:"size:64;not null" json:"last_name"`
	Username     string     `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:255" json:"-"`
	Mobile       string     `gorm:"size:20" json:"mobile,omitempty"`
	Organisation string     `gorm:"size:255" json:"organisation,omitempty"`
	Bio          JSONValue  `gorm:"type:jsonb" json:"bio,omitempty"`
	ProfilePic   string     `gorm:"size:512" json:"profile_pic,omitempty"`
	ResumeURL    string     `gorm:"size:512" json:"resume_url,omitempty"`
	Interests    StringList `gorm:"type:jsonb" json:"interests"`
	Skills       StringList `gorm:"type:jsonb" json:"skills"`

	// OAuth identity, set by the backend during provider logins.
	Provider       string `gorm:"size:32" json:"provider,omitempty"`
	ProviderUserID string `gorm:"size:255" json:"-"`
	AccessToken    string `gorm:"size:512" json:"-"`

	College         string    `gorm:"size:255" json:"college,omitempty"`
	Batch           string    `gorm:"size:32" json:"batch,omitempty"`
	Stream          string    `gorm:"size:255" json:"stream,omitempty"`
	LinkedIn        string    `gorm:"size:512" json:"linkedin,omitempty"`
	GitHub          string    `gorm:"size:512" json:"github,omitempty"`
	WorkExperiences JSONValue `gorm:"type:jsonb" json:"work_experiences,omitempty"`
	Projects        JSONValue `gorm:"type:jsonb" json:"projects,omitempty"`
	Pronouns        string    `gorm:"size:64" json:"pronouns,omitempty"`
	Location        string    `gorm:"size:255" json:"location,omitempty"`
	HackingOn       string    `gorm:"size:255" json:"hacking_on,omitempty"`
	Learning        string    `gorm:"size:255" json:"learning,omitempty"`
	AvailableFor    string    `gorm:"size:255" json:"available_for,omitempty"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// DisplayName joins first and last name, falling back to "Unknown" when both are empty.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return UnknownAuthorName
	}
	return name
}

// AsAuthor projects the user onto a display identity. Deactivated accounts
// resolve to the Unknown placeholder so authored content stays renderable
// without exposing who wrote it.
func (u *User) AsAuthor() Author {
	if !u.IsActive {
		return Author{Name: UnknownAuthorName}
	}
	username := u.Username
	return Author{Name: u.DisplayName(), Username: &username, ProfilePic: u.ProfilePic}
}

// PublicProfile is the subset of User safe to expose to other members.
type PublicProfile struct {
	ID           uuid.UUID  `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Username     string     `json:"username"`
	ProfilePic   string     `json:"profile_pic,omitempty"`
	Bio          JSONValue  `json:"bio,omitempty"`
	Organisation string     `json:"organisation,omitempty"`
	Interests    StringList `json:"interests"`
	Skills       StringList `json:"skills"`
	Location     string     `json:"location,omitempty"`
	Pronouns     string     `json:"pronouns,omitempty"`
}

// Public projects the user onto its shareable profile.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Username:     u.Username,
		ProfilePic:   u.ProfilePic,
		Bio:          u.Bio,
		Organisation: u.Organisation,
		Interests:    u.Interests,
		Skills:       u.Skills,
		Location:     u.Location,
		Pronouns:     u.Pronouns,
	}
}
