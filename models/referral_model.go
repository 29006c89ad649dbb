package models

import (
	"time"

	"github.com/google/uuid"
)

// Referral edges are created once at registration and never mutated, so
// the referred-by chain can be walked without cycle checks.
type Referral struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ReferrerID     uuid.UUID `gorm:"not null;index"`
	ReferredUserID uuid.UUID `gorm:"not null;unique"`

	Referrer     User `gorm:"foreignkey:ReferrerID"`
	ReferredUser User `gorm:"foreignkey:ReferredUserID"`

	CreatedAt time.Time
}

// ReferralCommission is the audit row written whenever an upline account
// is credited a share of a downline submission reward.
type ReferralCommission struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	EarnerID     uuid.UUID `gorm:"not null;index" json:"earner_id"`
	SourceUserID uuid.UUID `gorm:"not null" json:"source_user_id"`
	SubmissionID uuid.UUID `gorm:"not null" json:"submission_id"`
	Level        int       `gorm:"not null" json:"level"`
	Amount       int64     `gorm:"not null" json:"amount"`

	CreatedAt time.Time `json:"created_at"`
}
