// ABOUTME: User account and profile types for the /api/users endpoints
// ABOUTME: Mirrors the backend account DTOs including timestamps

package models

type UserResponse struct {
	ID        string `json:"id"`
	AccountID string `json:"accountId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Roles     string `json:"roles"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type UserProfileResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	FullName    string `json:"fullName,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type UpdateUserRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

type UpdateUserProfileRequest struct {
	FullName    string `json:"fullName,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}
