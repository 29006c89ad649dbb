package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is the single plan attached to a worker. A new purchase
// replaces the previous row wholesale; status moves pending -> active
// (admin approval) or pending -> rejected, and active -> expired.
type Subscription struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID  `gorm:"not null;index" json:"user_id"`
	PlanID    uuid.UUID  `gorm:"not null" json:"plan_id"`
	Status    string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	StartsAt  *time.Time `json:"starts_at"`
	ExpiresAt *time.Time `json:"expires_at"`

	User User `gorm:"foreignkey:UserID" json:"-"`
	Plan Plan `gorm:"foreignkey:PlanID" json:"plan"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
