package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a feed entry. Title and Content are structured documents stored as
// jsonb, Tags drive the interest feed ranking. Likes is a denormalized
// counter kept in sync by the like toggle; the post_likes rows stay the
// source of truth.
type Post struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       JSONValue  `gorm:"type:jsonb" json:"title,omitempty"`
	Content     JSONValue  `gorm:"type:jsonb;not null" json:"content"`
	PostType    string     `gorm:"size:32;not null;default:standard" json:"post_type"`
	Tags        StringList `gorm:"type:jsonb" json:"tags"`
	Likes       int64      `gorm:"not null;default:0" json:"likes"`
	IsActive    bool       `gorm:"not null" json:"is_active"`
	CommunityID *uuid.UUID `gorm:"type:uuid;index" json:"community_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Media []PostMedia `gorm:"foreignKey:PostID" json:"media,omitempty"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PostMedia is an attachment on a post, ordered by Position.
type PostMedia struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index" json:"post_id"`
	MediaURL  string    `gorm:"size:512;not null" json:"media_url"`
	MediaType string    `gorm:"size:32;not null" json:"media_type"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *PostMedia) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// RankedPost is a post enriched with counters and feed rank metadata.
type RankedPost struct {
	Post
	LikeCount    int64 `gorm:"-" json:"like_count"`
	CommentCount int64 `gorm:"-" json:"comment_count"`
	MatchCount   int   `gorm:"-" json:"match_count,omitempty"`
}

// SharedPost records a post being sent by one user to another.
type SharedPost struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostID     uuid.UUID `gorm:"type:uuid;not null;index" json:"post_id"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"sender_id"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null;index" json:"receiver_id"`
	Message    string    `gorm:"size:1024" json:"message,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (s *SharedPost) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
