package models

import (
	"time"

	"github.com/google/uuid"
)

type KYCRecord struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID `gorm:"not null;unique" json:"user_id"`
	CNICNumber      string    `gorm:"size:20;not null" json:"cnic_number"`
	DocumentFront   string    `gorm:"size:512;not null" json:"document_front"`
	DocumentBack    string    `gorm:"size:512;not null" json:"document_back"`
	Status          string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	RejectionReason *string   `gorm:"type:text" json:"rejection_reason"`

	SubmittedAt time.Time  `gorm:"not null" json:"submitted_at"`
	ReviewedAt  *time.Time `json:"reviewed_at"`

	User User `gorm:"foreignkey:UserID" json:"user,omitempty"`
}
