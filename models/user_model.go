package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Phone    string    `gorm:"size:20;not null" json:"phone"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'worker'" json:"role"`

	ReferralCode   *string `gorm:"size:10;unique" json:"referral_code"`
	ReferredByCode *string `gorm:"size:10" json:"referred_by_code"`

	// All money amounts are whole rupees.
	WalletBalance    int64 `gorm:"not null;default:0" json:"wallet_balance"`
	TaskEarnings     int64 `gorm:"not null;default:0" json:"task_earnings"`
	ReferralEarnings int64 `gorm:"not null;default:0" json:"referral_earnings"`

	// TasksDoneToday is only meaningful while LastTaskDate is today (PKT);
	// the nightly reset job zeroes it and the gate treats a stale date as zero.
	TasksDoneToday int        `gorm:"not null;default:0" json:"tasks_done_today"`
	LastTaskDate   *time.Time `json:"last_task_date"`

	KYCStatus string `gorm:"size:20;not null;default:'none'" json:"kyc_status"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`

	ResetPasswordToken          *string    `gorm:"size:255;unique" json:"-"`
	ResetPasswordTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
