package services

import (
	"fmt"
	"time"

	"github.com/taskpay/taskpay_backend/models"
)

// The platform runs on a fixed UTC+5 clock, no DST.
var PKT = time.FixedZone("PKT", 5*60*60)

// swapped in tests
var nowFunc = time.Now

const (
	StatusOpen      = "OPEN"
	StatusBlocked   = "BLOCKED"
	StatusExpired   = "EXPIRED"
	StatusClosed    = "CLOSED"
	StatusCompleted = "COMPLETED"
)

type GateDecision struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func (d GateDecision) Allowed() bool {
	return d.Status == StatusOpen
}

// CheckTaskAccess decides whether a worker may fetch or submit today's
// task. Checks run in a fixed order and the first failing one wins:
// plan status, plan expiry, working-hours window, daily quota.
func CheckTaskAccess(sub *models.Subscription, doneToday int, settings models.SiteSettings) GateDecision {
	now := nowFunc().In(PKT)

	if sub == nil || sub.Status != "active" {
		return GateDecision{
			Status:  StatusBlocked,
			Message: "No active plan. Purchase a plan to start working.",
		}
	}

	if sub.ExpiresAt != nil && sub.ExpiresAt.Before(now) {
		return GateDecision{
			Status:  StatusExpired,
			Message: "Your plan has expired. Renew it to continue working.",
		}
	}

	hour := now.Hour()
	if hour < settings.TaskWindowOpenHour || hour >= settings.TaskWindowCloseHour {
		return GateDecision{
			Status: StatusClosed,
			Message: fmt.Sprintf("Tasks are open from %02d:00 to %02d:00 (PKT).",
				settings.TaskWindowOpenHour, settings.TaskWindowCloseHour),
		}
	}

	if doneToday >= sub.Plan.DailyQuota {
		return GateDecision{
			Status:  StatusCompleted,
			Message: "You have completed all of today's tasks. Come back tomorrow.",
		}
	}

	return GateDecision{Status: StatusOpen}
}

// TodayCounter maps the stored per-user counter onto today's value: the
// counter only counts if its date is today in PKT, otherwise it is stale
// and reads as zero. This keeps the gate correct even between nightly
// reset runs.
func TodayCounter(doneToday int, lastTaskDate *time.Time) int {
	if lastTaskDate == nil {
		return 0
	}
	now := nowFunc().In(PKT)
	last := lastTaskDate.In(PKT)
	if last.Year() == now.Year() && last.YearDay() == now.YearDay() {
		return doneToday
	}
	return 0
}

// TodayPKT returns midnight of the current PKT day, the key used to look
// up the day's published task.
func TodayPKT() time.Time {
	now := nowFunc().In(PKT)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, PKT)
}
