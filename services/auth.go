// ABOUTME: Auth service wrapping the /auth endpoints
// ABOUTME: Login, registration, OTP verification and the Google OAuth exchange

package services

import (
	"context"
	"errors"
	"net/url"
	"regexp"

	"github.com/Katya1803/nullpointer-cli/client"
	"github.com/Katya1803/nullpointer-cli/models"
)

var otpPattern = regexp.MustCompile(`^\d{6}$`)

// ErrInvalidOtp rejects malformed OTP codes before they reach the
// backend. The code is exactly six digits.
var ErrInvalidOtp = errors.New("otp must be exactly 6 digits")

// AuthService drives the credential flows. Successful token grants are
// installed into the client's session store; the httpOnly refresh
// cookie rides along on the shared cookie jar.
type AuthService struct {
	c *client.Client
}

func NewAuthService(c *client.Client) *AuthService {
	return &AuthService{c: c}
}

// Login authenticates with a username or email plus password.
func (s *AuthService) Login(ctx context.Context, account, password string) (*models.TokenResponse, error) {
	if account == "" || password == "" {
		return nil, errors.New("account and password are required")
	}

	req := models.LoginRequest{
		Account:  account,
		Password: password,
		DeviceID: s.c.DeviceID(),
	}

	var tokens models.TokenResponse
	if err := s.c.Post(ctx, "/auth/login", req, &tokens); err != nil {
		return nil, err
	}

	s.c.SetSession(&tokens)
	return &tokens, nil
}

// Register creates an account. The backend sends the verification OTP
// out-of-band; the returned NeedsVerification flag tells the caller to
// continue with VerifyOtp.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, errors.New("username, email and password are required")
	}

	var resp models.RegisterResponse
	if err := s.c.Post(ctx, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyOtp confirms the emailed code and completes registration with a
// token grant.
func (s *AuthService) VerifyOtp(ctx context.Context, email, otp string) (*models.TokenResponse, error) {
	if !otpPattern.MatchString(otp) {
		return nil, ErrInvalidOtp
	}

	req := models.VerifyOtpRequest{
		Email:    email,
		Otp:      otp,
		DeviceID: s.c.DeviceID(),
	}

	var tokens models.TokenResponse
	if err := s.c.Post(ctx, "/auth/verify-otp", req, &tokens); err != nil {
		return nil, err
	}

	s.c.SetSession(&tokens)
	return &tokens, nil
}

// ResendOtp asks the backend to email a fresh code. Rate limiting is
// server-side.
func (s *AuthService) ResendOtp(ctx context.Context, email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	return s.c.Post(ctx, "/auth/resend-otp", models.ResendOtpRequest{Email: email}, nil)
}

// Logout ends the session best-effort and clears local state.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.c.Logout(ctx)
}

// GoogleAuthURL builds the Google consent URL the user must visit to
// obtain an authorization code.
func (s *AuthService) GoogleAuthURL(clientID, redirectURI string) string {
	params := url.Values{}
	params.Set("client_id", clientID)
	params.Set("redirect_uri", redirectURI)
	params.Set("response_type", "code")
	params.Set("scope", "openid email profile")
	params.Set("access_type", "offline")
	params.Set("prompt", "consent")
	return "https://accounts.google.com/o/oauth2/v2/auth?" + params.Encode()
}

// GoogleCallback exchanges the authorization code for a token grant.
func (s *AuthService) GoogleCallback(ctx context.Context, code string) (*models.TokenResponse, error) {
	if code == "" {
		return nil, errors.New("authorization code is required")
	}

	req := models.GoogleLoginRequest{Code: code, DeviceID: s.c.DeviceID()}

	var tokens models.TokenResponse
	if err := s.c.Post(ctx, "/auth/google/callback", req, &tokens); err != nil {
		return nil, err
	}

	s.c.SetSession(&tokens)
	return &tokens, nil
}
