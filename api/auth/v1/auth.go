// Package authv1 holds the AuthService messages and service descriptor.
package authv1

import "time"

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OTPSentResponse answers the first step of register and login.
type OTPSentResponse struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

type VerifyOTPRequest struct {
	UserID string `json:"userId"`
	Code   string `json:"code"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
}

type ListCustomersRequest struct{}

type Customer struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type ListCustomersResponse struct {
	Customers []*Customer `json:"customers"`
}
