package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const twilioBaseURL = "https://api.twilio.com/2010-04-01"

// MockSID is returned when no Twilio credentials are configured.
const MockSID = "mock-sid"

// TwilioSender posts messages to the Twilio REST API. Without credentials it only logs.
type TwilioSender struct {
	AccountSID string
	AuthToken  string
	From       string
	BaseURL    string
	HTTP       *http.Client
	Logger     *zap.Logger
}

func NewTwilioSender(accountSID, authToken, from string, logger *zap.Logger) *TwilioSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TwilioSender{
		AccountSID: accountSID,
		AuthToken:  authToken,
		From:       from,
		BaseURL:    twilioBaseURL,
		HTTP:       &http.Client{Timeout: 10 * time.Second},
		Logger:     logger,
	}
}

func (t *TwilioSender) configured() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.From != ""
}

func (t *TwilioSender) Send(ctx context.Context, to, body string) (string, error) {
	if !t.configured() {
		t.Logger.Info("[SMS mock]", zap.String("to", to), zap.String("body", body))
		return MockSID, nil
	}

	form := url.Values{"To": {to}, "From": {t.From}, "Body": {body}}
	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", t.BaseURL, t.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(t.AccountSID, t.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("twilio request failed: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		SID     string `json:"sid"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("twilio response decode failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("twilio returned %d: %s", resp.StatusCode, out.Message)
	}
	return out.SID, nil
}
