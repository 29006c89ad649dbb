package models

import (
	"time"

	"github.com/google/uuid"
)

// Submission is append-only; status only moves off 'pending' through an
// admin decision. Seq gives a global audit ordering across all workers.
type Submission struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Seq       int64     `gorm:"autoIncrement;uniqueIndex" json:"seq"`
	UserID    uuid.UUID `gorm:"not null;index" json:"user_id"`
	TaskID    uuid.UUID `gorm:"not null" json:"task_id"`
	ProofURL  string    `gorm:"size:512;not null" json:"proof_url"`
	WordCount int       `gorm:"default:0" json:"word_count"`
	Status    string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	Reward    int64     `gorm:"not null" json:"reward"`

	ReviewNotes *string    `gorm:"type:text" json:"review_notes"`
	ReviewedAt  *time.Time `json:"reviewed_at"`

	User User      `gorm:"foreignkey:UserID" json:"user,omitempty"`
	Task DailyTask `gorm:"foreignkey:TaskID" json:"task,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
