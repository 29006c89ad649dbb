package services

import (
	"testing"

	"github.com/taskpay/taskpay_backend/models"
)

func TestValidateWithdrawal(t *testing.T) {
	settings := defaultSettings() // min withdrawal Rs. 500
	gated := settings
	gated.ReferralGateEnabled = true
	gated.ReferralMinActive = 2
	kyc := settings
	kyc.KYCRequired = true

	tests := []struct {
		name            string
		amount          int64
		balance         int64
		activeReferrals int
		kycStatus       string
		settings        models.SiteSettings
		wantReason      string
	}{
		{name: "exactly the minimum passes", amount: 500, balance: 1000, settings: settings},
		{name: "one rupee below minimum", amount: 499, balance: 1000, settings: settings, wantReason: ReasonBelowMinimum},
		{name: "exceeds balance", amount: 600, balance: 500, settings: settings, wantReason: ReasonInsufficientFunds},
		{name: "whole balance passes", amount: 500, balance: 500, settings: settings},
		{name: "referral gate blocks", amount: 500, balance: 1000, activeReferrals: 1, settings: gated, wantReason: ReasonReferralRequired},
		{name: "referral gate satisfied", amount: 500, balance: 1000, activeReferrals: 2, settings: gated},
		{name: "kyc missing", amount: 500, balance: 1000, kycStatus: "none", settings: kyc, wantReason: ReasonKYCRequired},
		{name: "kyc pending still blocks", amount: 500, balance: 1000, kycStatus: "pending", settings: kyc, wantReason: ReasonKYCRequired},
		{name: "kyc approved passes", amount: 500, balance: 1000, kycStatus: "approved", settings: kyc},
		// check order: KYC is evaluated before the amount checks
		{name: "kyc reported before minimum", amount: 1, balance: 0, kycStatus: "none", settings: kyc, wantReason: ReasonKYCRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rej := ValidateWithdrawal(tt.amount, tt.balance, tt.activeReferrals, tt.kycStatus, tt.settings)
			if tt.wantReason == "" {
				if rej != nil {
					t.Fatalf("ValidateWithdrawal() = %v, want pass", rej)
				}
				return
			}
			if rej == nil {
				t.Fatalf("ValidateWithdrawal() passed, want %s", tt.wantReason)
			}
			if rej.Reason != tt.wantReason {
				t.Errorf("reason = %s, want %s", rej.Reason, tt.wantReason)
			}
			if rej.Message == "" {
				t.Error("rejection must carry a message")
			}
		})
	}
}

func TestValidateWithdrawalMinimumMessage(t *testing.T) {
	rej := ValidateWithdrawal(499, 1000, 0, "none", defaultSettings())
	if rej == nil {
		t.Fatal("expected rejection")
	}
	if rej.Error() != "Minimum withdrawal is Rs. 500" {
		t.Errorf("message = %q, want %q", rej.Error(), "Minimum withdrawal is Rs. 500")
	}
}
