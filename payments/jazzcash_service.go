package payments

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	config "github.com/taskpay/taskpay_backend/configs"
)

const jazzCashBaseURL = "https://payments.jazzcash.com.pk/ApplicationAPI/API/2.0"

type WalletChargeRequest struct {
	PhoneNumber     string `json:"pp_MobileNumber"`
	Amount          string `json:"pp_Amount"`
	BillReference   string `json:"pp_BillReference"`
	MerchantID      string `json:"pp_MerchantID"`
	ReturnURL       string `json:"pp_ReturnURL"`
	TxnRefNo        string `json:"pp_TxnRefNo"`
	Description     string `json:"pp_Description"`
	TxnCurrency     string `json:"pp_TxnCurrency"`
	TxnDateTime     string `json:"pp_TxnDateTime"`
}

type WalletChargeResponse struct {
	ResponseCode    string `json:"pp_ResponseCode"`
	ResponseMessage string `json:"pp_ResponseMessage"`
	TxnRefNo        string `json:"pp_TxnRefNo"`
	RetrievalRefNo  string `json:"pp_RetreivalReferenceNo"`
	AuthCode        string `json:"pp_AuthCode"`
}

var nonNumericRegex = regexp.MustCompile(`[^0-9]`)

// SanitizeWalletNumber normalizes a Pakistani mobile-wallet number to
// the 923xxxxxxxxx form the gateway expects.
func SanitizeWalletNumber(phone string) (string, error) {
	sanitized := nonNumericRegex.ReplaceAllString(phone, "")

	if strings.HasPrefix(sanitized, "03") && len(sanitized) == 11 {
		return "92" + sanitized[1:], nil
	}
	if strings.HasPrefix(sanitized, "3") && len(sanitized) == 10 {
		return "92" + sanitized, nil
	}
	if strings.HasPrefix(sanitized, "923") && len(sanitized) == 12 {
		return sanitized, nil
	}
	if strings.HasPrefix(sanitized, "0092") && len(sanitized) == 14 {
		return sanitized[2:], nil
	}

	return "", errors.New("invalid mobile wallet number format")
}

// InitiateWalletCharge asks the gateway to push a payment prompt to the
// worker's mobile wallet for a pending plan payment. The gateway result
// lands asynchronously on the payment webhook.
func InitiateWalletCharge(amount int64, phoneNumber string, paymentRefID string) (*WalletChargeResponse, error) {
	accessToken, err := GetGatewayAccessToken()
	if err != nil {
		return nil, fmt.Errorf("failed to get gateway access token: %v", err)
	}

	sanitizedPhone, err := SanitizeWalletNumber(phoneNumber)
	if err != nil {
		return nil, err
	}

	merchantID := config.Config("JAZZCASH_MERCHANT_ID")
	if merchantID == "" {
		return nil, fmt.Errorf("JAZZCASH_MERCHANT_ID is not set in .env")
	}
	returnURL := config.Config("WEBHOOK_BASE_URL") + "/api/v1/payments/webhook"

	now := time.Now()
	payload := WalletChargeRequest{
		PhoneNumber:   sanitizedPhone,
		Amount:        strconv.FormatInt(amount*100, 10), // gateway wants paisa
		BillReference: paymentRefID,
		MerchantID:    merchantID,
		ReturnURL:     returnURL,
		TxnRefNo:      fmt.Sprintf("T%d", now.UnixNano()),
		Description:   config.ConfigDefault("JAZZCASH_TXN_DESC", "TaskPay plan purchase"),
		TxnCurrency:   "PKR",
		TxnDateTime:   now.Format("20060102150405"),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wallet charge payload: %v", err)
	}

	req, err := http.NewRequest("POST", jazzCashBaseURL+"/Purchase/DoMWalletTransaction", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet charge request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send wallet charge request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read wallet charge response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("JazzCash API Error: %s", string(respBody))
		return nil, fmt.Errorf("JazzCash API returned non-200 status: %d", resp.StatusCode)
	}

	var chargeResp WalletChargeResponse
	if err := json.Unmarshal(respBody, &chargeResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet charge response: %v", err)
	}

	// "000" is success, "124" is pending-on-handset; anything else failed.
	if chargeResp.ResponseCode != "000" && chargeResp.ResponseCode != "124" {
		log.Printf("JazzCash wallet charge failed: %s", chargeResp.ResponseMessage)
		return nil, fmt.Errorf("wallet charge failed: %s", chargeResp.ResponseMessage)
	}

	log.Println("✅ Wallet charge initiated successfully for payment:", paymentRefID)
	return &chargeResp, nil
}
