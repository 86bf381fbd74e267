package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Community is a topic space created by either a user or a business account.
// Exactly one of CreatorID / CreatorBusinessID is set, matching CreatorType.
type Community struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string     `gorm:"size:255;not null" json:"name"`
	Description       string     `gorm:"type:text" json:"description,omitempty"`
	CoverImage        string     `gorm:"size:512" json:"cover_image,omitempty"`
	Tags              StringList `gorm:"type:jsonb" json:"tags"`
	CreatorType       string     `gorm:"size:16;not null" json:"creator_type"`
	CreatorID         *uuid.UUID `gorm:"type:uuid;index" json:"creator_id,omitempty"`
	CreatorBusinessID *uuid.UUID `gorm:"type:uuid;index" json:"creator_business_id,omitempty"`
	IsPrivate         bool       `gorm:"not null;default:false" json:"is_private"`
	IsActive          bool       `gorm:"not null" json:"is_active"`
	MemberCount       int64      `gorm:"-" json:"member_count,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (c *Community) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CommunityMember links a user to a community. Membership is unique per pair.
type CommunityMember struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CommunityID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_community_member" json:"community_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_community_member" json:"user_id"`
	Role        string    `gorm:"size:32;not null;default:member" json:"role"`
	JoinedAt    time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

func (m *CommunityMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
