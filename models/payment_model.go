package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment records a plan purchase attempt. Provider is 'jazzcash',
// 'easypaisa' or 'manual' (worker pastes a wallet transaction reference
// plus a proof screenshot URL instead of going through the STK rail).
type Payment struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID            uuid.UUID  `gorm:"not null;index" json:"user_id"`
	SubscriptionID    *uuid.UUID `gorm:"unique" json:"subscription_id"`
	Amount            int64      `gorm:"not null" json:"amount"`
	Provider          string     `gorm:"size:50;not null" json:"provider"`
	ProviderTxnID     *string    `gorm:"size:255;unique" json:"provider_txn_id"`
	MerchantRequestID *string    `gorm:"size:255;unique" json:"-"`
	ProofURL          *string    `gorm:"size:512" json:"proof_url"`
	Status            string     `gorm:"size:20;not null" json:"status"`

	User         User         `gorm:"foreignkey:UserID" json:"-"`
	Subscription Subscription `gorm:"foreignkey:SubscriptionID" json:"subscription,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
