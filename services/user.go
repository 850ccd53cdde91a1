// ABOUTME: User account and profile service over the /api/users endpoints
// ABOUTME: Account listing and deletion are admin operations

package services

import (
	"context"

	"github.com/Katya1803/nullpointer-cli/client"
	"github.com/Katya1803/nullpointer-cli/models"
)

type UserService struct {
	c *client.Client
}

func NewUserService(c *client.Client) *UserService {
	return &UserService{c: c}
}

// Me returns the authenticated user's account.
func (s *UserService) Me(ctx context.Context) (*models.UserResponse, error) {
	var user models.UserResponse
	if err := s.c.Get(ctx, "/api/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetByID(ctx context.Context, userID string) (*models.UserResponse, error) {
	var user models.UserResponse
	if err := s.c.Get(ctx, "/api/users/"+userID, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.UserResponse, error) {
	var user models.UserResponse
	if err := s.c.Get(ctx, "/api/users/username/"+username, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all user accounts (admin only).
func (s *UserService) List(ctx context.Context, page, size int) (*models.Page[models.UserResponse], error) {
	var result models.Page[models.UserResponse]
	if err := s.c.Get(ctx, "/api/users", pageQuery(page, size), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *UserService) Update(ctx context.Context, userID string, req models.UpdateUserRequest) (*models.UserResponse, error) {
	var user models.UserResponse
	if err := s.c.Put(ctx, "/api/users/"+userID, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Delete(ctx context.Context, userID string) error {
	return s.c.Delete(ctx, "/api/users/"+userID)
}

// Profile returns a user's public profile.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.UserProfileResponse, error) {
	var profile models.UserProfileResponse
	if err := s.c.Get(ctx, "/api/users/"+userID+"/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile updates the authenticated user's profile.
func (s *UserService) UpdateProfile(ctx context.Context, req models.UpdateUserProfileRequest) (*models.UserProfileResponse, error) {
	var profile models.UserProfileResponse
	if err := s.c.Put(ctx, "/api/users/me/profile", req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
