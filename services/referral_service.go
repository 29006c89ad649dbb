package services

import (
	"github.com/google/uuid"
	"github.com/taskpay/taskpay_backend/database"
	"github.com/taskpay/taskpay_backend/models"
	"gorm.io/gorm"
)

const MaxReferralDepth = 3

// ReferralNode is the slice of a referred account the ledger needs.
type ReferralNode struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	TaskEarnings int64     `json:"task_earnings"`
	Active       bool      `json:"active"`
}

type LevelSummary struct {
	Level      int   `json:"level"`
	Count      int   `json:"count"`
	Earnings   int64 `json:"earnings"`
	Commission int64 `json:"commission"`
}

type ReferralSummary struct {
	TotalReferrals  int            `json:"total_referrals"`
	TotalCommission int64          `json:"total_commission"`
	Levels          []LevelSummary `json:"levels"`
}

// BuildReferralSummary walks the referred network of root breadth-first,
// capped at MaxReferralDepth. Each visited account lands on the level
// equal to its BFS depth; commission for a level is the level's summed
// task earnings times its rate. A child's subscription status is
// reported but does not gate accrual.
func BuildReferralSummary(root uuid.UUID, childrenOf func(uuid.UUID) []ReferralNode, ratesPct [MaxReferralDepth]int) ReferralSummary {
	summary := ReferralSummary{Levels: make([]LevelSummary, MaxReferralDepth)}

	frontier := []uuid.UUID{root}
	for depth := 1; depth <= MaxReferralDepth; depth++ {
		var next []uuid.UUID
		level := LevelSummary{Level: depth}
		for _, parent := range frontier {
			for _, child := range childrenOf(parent) {
				level.Count++
				level.Earnings += child.TaskEarnings
				next = append(next, child.ID)
			}
		}
		level.Commission = level.Earnings * int64(ratesPct[depth-1]) / 100
		summary.Levels[depth-1] = level
		summary.TotalReferrals += level.Count
		summary.TotalCommission += level.Commission
		frontier = next
	}
	return summary
}

// ReferralChildren loads the direct referred accounts of a user.
func ReferralChildren(db *gorm.DB, userID uuid.UUID) []ReferralNode {
	var nodes []ReferralNode
	db.Model(&models.Referral{}).
		Select("users.id, users.full_name, users.task_earnings, COALESCE(subscriptions.status = 'active', false) AS active").
		Joins("JOIN users ON users.id = referrals.referred_user_id").
		Joins("LEFT JOIN subscriptions ON subscriptions.user_id = users.id").
		Where("referrals.referrer_id = ?", userID).
		Scan(&nodes)
	return nodes
}

// ActiveReferralCount counts direct referrals holding an active plan,
// used by the withdrawal gate.
func ActiveReferralCount(db *gorm.DB, userID uuid.UUID) int {
	var count int64
	db.Model(&models.Referral{}).
		Joins("JOIN subscriptions ON subscriptions.user_id = referrals.referred_user_id").
		Where("referrals.referrer_id = ? AND subscriptions.status = ?", userID, "active").
		Count(&count)
	return int(count)
}

// CommissionCredit reports one upline credit so the caller can notify
// the earner after the transaction commits.
type CommissionCredit struct {
	Earner models.User
	Level  int
	Amount int64
}

// AccrueCommissions credits each ancestor up to MaxReferralDepth levels
// above the submitting worker with its share of an approved submission
// reward, and writes a ReferralCommission audit row per credit. Must run
// inside the approval transaction.
func AccrueCommissions(tx *gorm.DB, submission models.Submission, settings models.SiteSettings) ([]CommissionCredit, error) {
	rates := [MaxReferralDepth]int{settings.Level1RatePct, settings.Level2RatePct, settings.Level3RatePct}

	var credits []CommissionCredit
	childID := submission.UserID
	for level := 1; level <= MaxReferralDepth; level++ {
		var edge models.Referral
		if err := tx.Preload("Referrer").Where("referred_user_id = ?", childID).First(&edge).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				break
			}
			return nil, err
		}

		amount := submission.Reward * int64(rates[level-1]) / 100
		if amount > 0 {
			earner := edge.Referrer
			err := tx.Model(&models.User{}).Where("id = ?", earner.ID).
				Updates(map[string]interface{}{
					"wallet_balance":    gorm.Expr("wallet_balance + ?", amount),
					"referral_earnings": gorm.Expr("referral_earnings + ?", amount),
				}).Error
			if err != nil {
				return nil, err
			}

			commission := models.ReferralCommission{
				EarnerID:     earner.ID,
				SourceUserID: submission.UserID,
				SubmissionID: submission.ID,
				Level:        level,
				Amount:       amount,
			}
			if err := tx.Create(&commission).Error; err != nil {
				return nil, err
			}
			credits = append(credits, CommissionCredit{Earner: earner, Level: level, Amount: amount})
		}

		childID = edge.ReferrerID
	}
	return credits, nil
}

// SummaryFor builds the three-level ledger for a user from the database.
func SummaryFor(userID uuid.UUID, settings models.SiteSettings) ReferralSummary {
	rates := [MaxReferralDepth]int{settings.Level1RatePct, settings.Level2RatePct, settings.Level3RatePct}
	return BuildReferralSummary(userID, func(id uuid.UUID) []ReferralNode {
		return ReferralChildren(database.DB, id)
	}, rates)
}
