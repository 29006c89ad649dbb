package models

import "time"

// SiteSettings is a single-row table (ID always 1) holding the knobs the
// admin panel exposes. Rates are whole percentages.
type SiteSettings struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	PlatformName string `gorm:"size:100;not null;default:'TaskPay'" json:"platform_name"`

	MinWithdrawal       int64 `gorm:"not null;default:500" json:"min_withdrawal"`
	ReferralGateEnabled bool  `gorm:"not null;default:false" json:"referral_gate_enabled"`
	ReferralMinActive   int   `gorm:"not null;default:1" json:"referral_min_active"`
	KYCRequired         bool  `gorm:"not null;default:false" json:"kyc_required"`

	TaskWindowOpenHour  int `gorm:"not null;default:8" json:"task_window_open_hour"`
	TaskWindowCloseHour int `gorm:"not null;default:23" json:"task_window_close_hour"`

	Level1RatePct int `gorm:"not null;default:15" json:"level1_rate_pct"`
	Level2RatePct int `gorm:"not null;default:5" json:"level2_rate_pct"`
	Level3RatePct int `gorm:"not null;default:2" json:"level3_rate_pct"`

	UpdatedAt time.Time `json:"updated_at"`
}
