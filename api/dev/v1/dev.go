// Package devv1 holds the development-only DevService.
package devv1

import "time"

type GetOTPRequest struct {
	UserID  string `json:"userId"`
	Purpose string `json:"purpose"`
}

type GetOTPResponse struct {
	OTP       string    `json:"otp"`
	ExpiresAt time.Time `json:"expiresAt"`
	Note      string    `json:"note"`
}
