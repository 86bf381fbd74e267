package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a reply on a post. ParentCommentID builds the thread tree; a nil
// parent marks a top level comment. Authors may be users or businesses.
// Hidden comments keep their row with IsActive false so replies survive.
type Comment struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PostID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"post_id"`
	ActorID         uuid.UUID  `gorm:"type:uuid;not null" json:"actor_id"`
	ActorType       string     `gorm:"size:16;not null" json:"actor_type"`
	Content         string     `gorm:"type:text;not null" json:"content"`
	ParentCommentID *uuid.UUID `gorm:"type:uuid;index" json:"parent_comment_id,omitempty"`
	IsActive        bool       `gorm:"not null" json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ApplyUpdate mutates the fields an edit may change. Nil inputs leave the
// stored value untouched, matching coalesce-style partial updates.
func (c *Comment) ApplyUpdate(content *string, parent *uuid.UUID, active *bool) {
	if content != nil {
		c.Content = *content
	}
	if parent != nil {
		c.ParentCommentID = parent
	}
	if active != nil {
		c.IsActive = *active
	}
}

// CommentLike is a toggleable like on a comment, unique per actor.
type CommentLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CommentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_comment_like_actor" json:"comment_id"`
	ActorID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_comment_like_actor" json:"actor_id"`
	ActorType string    `gorm:"size:16;not null;uniqueIndex:idx_comment_like_actor" json:"actor_type"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *CommentLike) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
