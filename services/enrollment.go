// ABOUTME: Enrollment and lecture-progress service over the /api/enrollments endpoints
// ABOUTME: Enrollment is payment-free; the backend owns all access rules

package services

import (
	"context"
	"errors"

	"github.com/Katya1803/nullpointer-cli/client"
	"github.com/Katya1803/nullpointer-cli/models"
)

type EnrollmentService struct {
	c *client.Client
}

func NewEnrollmentService(c *client.Client) *EnrollmentService {
	return &EnrollmentService{c: c}
}

// Enroll joins the authenticated user to a course.
func (s *EnrollmentService) Enroll(ctx context.Context, courseID string) (*models.EnrollmentResponse, error) {
	if courseID == "" {
		return nil, errors.New("course ID is required")
	}

	var resp models.EnrollmentResponse
	if err := s.c.Post(ctx, "/api/enrollments", models.EnrollmentRequest{CourseID: courseID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MyEnrollments lists the user's enrollments with progress summaries.
func (s *EnrollmentService) MyEnrollments(ctx context.Context, page, size int) (*models.Page[models.EnrollmentDetail], error) {
	var result models.Page[models.EnrollmentDetail]
	if err := s.c.Get(ctx, "/api/enrollments/me", pageQuery(page, size), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Progress returns per-section, per-lecture progress for a course.
func (s *EnrollmentService) Progress(ctx context.Context, courseID string) (*models.CourseProgressDetail, error) {
	var detail models.CourseProgressDetail
	if err := s.c.Get(ctx, "/api/enrollments/"+courseID+"/progress", nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// IsEnrolled reports whether the user is enrolled in the course.
func (s *EnrollmentService) IsEnrolled(ctx context.Context, courseID string) (bool, error) {
	var enrolled bool
	if err := s.c.Get(ctx, "/api/enrollments/"+courseID+"/check", nil, &enrolled); err != nil {
		return false, err
	}
	return enrolled, nil
}

// UpdateLectureProgress records completion or a watch position for a
// lecture.
func (s *EnrollmentService) UpdateLectureProgress(ctx context.Context, lectureID string, req models.LectureProgressRequest) (*models.LectureProgressResponse, error) {
	var resp models.LectureProgressResponse
	if err := s.c.Put(ctx, "/api/enrollments/lectures/"+lectureID+"/progress", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
