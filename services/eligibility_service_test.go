package services

import (
	"testing"
	"time"

	"github.com/taskpay/taskpay_backend/models"
)

func defaultSettings() models.SiteSettings {
	return models.SiteSettings{
		TaskWindowOpenHour:  8,
		TaskWindowCloseHour: 23,
		Level1RatePct:       15,
		Level2RatePct:       5,
		Level3RatePct:       2,
		MinWithdrawal:       500,
	}
}

func activeSub(quota int, expiresAt time.Time) *models.Subscription {
	return &models.Subscription{
		Status:    "active",
		ExpiresAt: &expiresAt,
		Plan:      models.Plan{DailyQuota: quota},
	}
}

func TestCheckTaskAccess(t *testing.T) {
	// 2026-03-10 14:00 PKT
	base := time.Date(2026, 3, 10, 14, 0, 0, 0, PKT)
	future := base.Add(10 * 24 * time.Hour)
	past := base.Add(-24 * time.Hour)

	tests := []struct {
		name       string
		now        time.Time
		sub        *models.Subscription
		doneToday  int
		wantStatus string
	}{
		{name: "no subscription", now: base, sub: nil, wantStatus: StatusBlocked},
		{name: "pending subscription", now: base, sub: &models.Subscription{Status: "pending"}, wantStatus: StatusBlocked},
		{name: "expired status", now: base, sub: &models.Subscription{Status: "expired"}, wantStatus: StatusBlocked},
		{name: "active but past expiry", now: base, sub: activeSub(8, past), wantStatus: StatusExpired},
		{name: "before window", now: time.Date(2026, 3, 10, 7, 59, 0, 0, PKT), sub: activeSub(8, future), wantStatus: StatusClosed},
		{name: "after window", now: time.Date(2026, 3, 10, 23, 5, 0, 0, PKT), sub: activeSub(8, future), wantStatus: StatusClosed},
		{name: "window opens at 8", now: time.Date(2026, 3, 10, 8, 0, 0, 0, PKT), sub: activeSub(8, future), wantStatus: StatusOpen},
		{name: "last open minute", now: time.Date(2026, 3, 10, 22, 59, 0, 0, PKT), sub: activeSub(8, future), wantStatus: StatusOpen},
		{name: "quota reached", now: base, sub: activeSub(8, future), doneToday: 8, wantStatus: StatusCompleted},
		{name: "quota exceeded", now: base, sub: activeSub(8, future), doneToday: 9, wantStatus: StatusCompleted},
		{name: "mid-quota afternoon", now: base, sub: activeSub(8, future), doneToday: 3, wantStatus: StatusOpen},
		// closed wins over quota: window check runs first
		{name: "closed beats completed", now: time.Date(2026, 3, 10, 23, 5, 0, 0, PKT), sub: activeSub(8, future), doneToday: 8, wantStatus: StatusClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nowFunc = func() time.Time { return tt.now }
			defer func() { nowFunc = time.Now }()

			got := CheckTaskAccess(tt.sub, tt.doneToday, defaultSettings())
			if got.Status != tt.wantStatus {
				t.Errorf("CheckTaskAccess() status = %s, want %s", got.Status, tt.wantStatus)
			}
			if got.Allowed() != (tt.wantStatus == StatusOpen) {
				t.Errorf("Allowed() = %v for status %s", got.Allowed(), got.Status)
			}
			if !got.Allowed() && got.Message == "" {
				t.Error("rejection must carry a message")
			}
		})
	}
}

func TestCheckTaskAccessUsesUTCPlus5(t *testing.T) {
	// 18:30 UTC is 23:30 PKT, past closing even though a UTC clock
	// would still be inside the window.
	nowFunc = func() time.Time { return time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC) }
	defer func() { nowFunc = time.Now }()

	future := time.Date(2026, 4, 1, 0, 0, 0, 0, PKT)
	got := CheckTaskAccess(activeSub(8, future), 0, defaultSettings())
	if got.Status != StatusClosed {
		t.Errorf("CheckTaskAccess() status = %s, want %s", got.Status, StatusClosed)
	}
}

func TestTodayCounter(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, PKT)
	nowFunc = func() time.Time { return now }
	defer func() { nowFunc = time.Now }()

	yesterday := now.Add(-24 * time.Hour)
	lateLastNight := time.Date(2026, 3, 9, 22, 45, 0, 0, PKT)
	earlierToday := time.Date(2026, 3, 10, 8, 5, 0, 0, PKT)

	tests := []struct {
		name string
		done int
		last *time.Time
		want int
	}{
		{name: "never submitted", done: 0, last: nil, want: 0},
		{name: "stale from yesterday", done: 5, last: &yesterday, want: 0},
		{name: "stale from last night", done: 8, last: &lateLastNight, want: 0},
		{name: "fresh from this morning", done: 3, last: &earlierToday, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TodayCounter(tt.done, tt.last); got != tt.want {
				t.Errorf("TodayCounter() = %d, want %d", got, tt.want)
			}
		})
	}
}
