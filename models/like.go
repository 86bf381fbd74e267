package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostLike is a toggleable like on a post, unique per (post, actor, actor type).
// Toggling flips IsActive in place rather than deleting the row.
type PostLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_like_actor" json:"post_id"`
	ActorID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_like_actor" json:"actor_id"`
	ActorType string    `gorm:"size:16;not null;uniqueIndex:idx_post_like_actor" json:"actor_type"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *PostLike) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
