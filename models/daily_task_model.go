package models

import (
	"time"

	"github.com/google/uuid"
)

// DailyTask is the single writing assignment published for one calendar
// day (PKT). TaskDate is stored at midnight PKT.
type DailyTask struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title    string    `gorm:"size:255;not null" json:"title"`
	Body     string    `gorm:"type:text;not null" json:"body"`
	Reward   int64     `gorm:"not null" json:"reward"`
	TaskDate time.Time `gorm:"not null;uniqueIndex" json:"task_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
