package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dealership-backoffice/internal/otp/domain"
)

const smsTimeout = 15 * time.Second

// SMSLocal sends codes through the SMS Local OTP route to the user's phone.
type SMSLocal struct {
	users      UserLookup
	APIKey     string
	BaseURL    string
	Sender     string
	HTTPClient *http.Client
}

// NewSMSLocal returns an SMS channel using the given API key and optional base URL/sender.
func NewSMSLocal(users UserLookup, apiKey, baseURL, sender string) *SMSLocal {
	if baseURL == "" {
		baseURL = "https://app.smslocal.in/api/smsapi"
	}
	return &SMSLocal{
		users:      users,
		APIKey:     apiKey,
		BaseURL:    baseURL,
		Sender:     sender,
		HTTPClient: &http.Client{Timeout: smsTimeout},
	}
}

func (c *SMSLocal) Deliver(ctx context.Context, userID, code string, purpose domain.Purpose) error {
	u, err := lookup(ctx, c.users, userID)
	if err != nil {
		return err
	}
	phone := digitsOnly(u.Phone)
	if phone == "" {
		return ErrNoRecipient
	}
	return c.SendOTP(ctx, phone, code)
}

// SendOTP posts the code to SMS Local (route=otp). phone must be digits only, country code
// first. The code is never logged.
func (c *SMSLocal) SendOTP(ctx context.Context, phone, code string) error {
	if c.APIKey == "" {
		return fmt.Errorf("sms: API key not configured")
	}
	payload := map[string]any{
		"route":     "otp",
		"numbers":   phone,
		"variables": code,
	}
	if c.Sender != "" {
		payload["sender_id"] = c.Sender
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.APIKey)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("sms: request failed status=%d body=%s", resp.StatusCode, string(b))
	}
	return nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
