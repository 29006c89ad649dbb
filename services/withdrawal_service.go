package services

import (
	"fmt"

	"github.com/taskpay/taskpay_backend/models"
)

const (
	ReasonReferralRequired  = "REFERRAL_REQUIRED"
	ReasonKYCRequired       = "KYC_REQUIRED"
	ReasonBelowMinimum      = "BELOW_MINIMUM"
	ReasonInsufficientFunds = "INSUFFICIENT_FUNDS"
)

// WithdrawalRejection carries the machine reason plus the message shown
// to the worker.
type WithdrawalRejection struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func (r *WithdrawalRejection) Error() string {
	return r.Message
}

// ValidateWithdrawal gates a withdrawal request before it is recorded.
// Checks run in a fixed order: referral gate, KYC gate, minimum amount
// (inclusive boundary), balance. It never mutates anything; the balance
// is only debited when an admin approves the request.
func ValidateWithdrawal(amount, balance int64, activeReferrals int, kycStatus string, settings models.SiteSettings) *WithdrawalRejection {
	if settings.ReferralGateEnabled && activeReferrals < settings.ReferralMinActive {
		return &WithdrawalRejection{
			Reason: ReasonReferralRequired,
			Message: fmt.Sprintf("You need at least %d active referral(s) to withdraw.",
				settings.ReferralMinActive),
		}
	}

	if settings.KYCRequired && kycStatus != "approved" {
		return &WithdrawalRejection{
			Reason:  ReasonKYCRequired,
			Message: "Complete KYC verification before withdrawing.",
		}
	}

	if amount < settings.MinWithdrawal {
		return &WithdrawalRejection{
			Reason:  ReasonBelowMinimum,
			Message: fmt.Sprintf("Minimum withdrawal is Rs. %d", settings.MinWithdrawal),
		}
	}

	if amount > balance {
		return &WithdrawalRejection{
			Reason:  ReasonInsufficientFunds,
			Message: "Requested amount exceeds your wallet balance.",
		}
	}

	return nil
}
