package payments

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	config "github.com/taskpay/taskpay_backend/configs"
)

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

var (
	gatewayToken       string
	gatewayTokenExpiry time.Time
	tokenMutex         sync.RWMutex
)

const gatewayTokenURL = jazzCashBaseURL + "/token?grant_type=client_credentials"

// GetGatewayAccessToken returns the cached gateway token, refreshing it
// shortly before expiry.
func GetGatewayAccessToken() (string, error) {
	tokenMutex.RLock()
	if gatewayToken != "" && time.Now().Before(gatewayTokenExpiry) {
		token := gatewayToken
		tokenMutex.RUnlock()
		return token, nil
	}
	tokenMutex.RUnlock()

	tokenMutex.Lock()
	defer tokenMutex.Unlock()

	if gatewayToken != "" && time.Now().Before(gatewayTokenExpiry) {
		return gatewayToken, nil
	}

	apiKey := config.Config("JAZZCASH_API_KEY")
	apiSecret := config.Config("JAZZCASH_API_SECRET")

	reqBody := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequest("POST", gatewayTokenURL, reqBody)
	if err != nil {
		return "", err
	}

	req.SetBasicAuth(apiKey, apiSecret)
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway token API returned non-200 status: %s", resp.Status)
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", err
	}

	gatewayToken = tokenResp.AccessToken
	gatewayTokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn-300) * time.Second)

	return gatewayToken, nil
}
