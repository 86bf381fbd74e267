package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobListing is an opening posted by a business account.
type JobListing struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"business_id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Description   string     `gorm:"type:text;not null" json:"description"`
	Location      string     `gorm:"size:255" json:"location,omitempty"`
	JobType       string     `gorm:"size:64" json:"job_type,omitempty"`
	SalaryRange   string     `gorm:"size:128" json:"salary_range,omitempty"`
	SkillsNeeded  StringList `gorm:"type:jsonb" json:"skills_needed"`
	ApplyDeadline *time.Time `json:"apply_deadline,omitempty"`
	IsOpen        bool       `gorm:"not null;default:true" json:"is_open"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (j *JobListing) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// Application statuses.
const (
	ApplicationApplied  = "applied"
	ApplicationReviewed = "reviewed"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// JobApplication records a user applying to a listing. The resume URL is
// snapshotted from the user profile at apply time.
type JobApplication struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	JobID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_job_applicant" json:"job_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_job_applicant" json:"user_id"`
	ResumeURL   string    `gorm:"size:512" json:"resume_url,omitempty"`
	CoverLetter string    `gorm:"type:text" json:"cover_letter,omitempty"`
	Status      string    `gorm:"size:32;not null;default:applied" json:"status"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (a *JobApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
