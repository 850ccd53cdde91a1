// ABOUTME: Auth request and response types for the NullPointer /auth endpoints
// ABOUTME: Covers login, register, OTP verification, refresh and Google OAuth

package models

// User is the identity snapshot attached to a token grant.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Roles    string `json:"roles"`
}

// LoginRequest authenticates with username or email.
type LoginRequest struct {
	Account  string `json:"account"`
	Password string `json:"password"`
	DeviceID string `json:"deviceId,omitempty"`
}

// TokenResponse is returned by login, verify-otp, refresh and the
// Google callback. The refresh token is never in the body; it travels
// as an httpOnly cookie.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
	User        User   `json:"user"`
}

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type RegisterResponse struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	NeedsVerification bool   `json:"needsVerification"`
	Message           string `json:"message,omitempty"`
}

type VerifyOtpRequest struct {
	Email    string `json:"email"`
	Otp      string `json:"otp"`
	DeviceID string `json:"deviceId,omitempty"`
}

type ResendOtpRequest struct {
	Email string `json:"email"`
}

// GoogleLoginRequest exchanges an OAuth authorization code for tokens.
type GoogleLoginRequest struct {
	Code     string `json:"code"`
	DeviceID string `json:"deviceId,omitempty"`
}
