package models

import (
	"time"

	"github.com/google/uuid"
)

// Withdrawal holds funds-out requests. Balance is debited only when an
// admin approves; a decided row is never re-decided.
type Withdrawal struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID `gorm:"not null;index" json:"user_id"`
	Amount        int64     `gorm:"not null" json:"amount"`
	Method        string    `gorm:"size:20;not null" json:"method"`
	AccountNumber string    `gorm:"size:30;not null" json:"account_number"`
	AccountTitle  string    `gorm:"size:100;not null" json:"account_title"`
	Status        string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	AdminNotes    *string   `gorm:"type:text" json:"admin_notes"`

	RequestedAt time.Time  `gorm:"not null" json:"requested_at"`
	ProcessedAt *time.Time `json:"processed_at"`

	User User `gorm:"foreignkey:UserID" json:"user,omitempty"`
}
