// ABOUTME: Blog post and series service over the /api/blogs endpoints
// ABOUTME: Includes the admin moderation workflow (submit, approve, reject)

package services

import (
	"context"
	"errors"

	"github.com/Katya1803/nullpointer-cli/client"
	"github.com/Katya1803/nullpointer-cli/models"
)

// PostService covers public browsing, authoring and moderation of blog
// posts. Moderation transitions are owned by the backend; the client
// only issues the operations.
type PostService struct {
	c *client.Client
}

func NewPostService(c *client.Client) *PostService {
	return &PostService{c: c}
}

// ListPublished returns published posts, paginated, optionally filtered
// by keyword.
func (s *PostService) ListPublished(ctx context.Context, page, size int, keyword string) (*models.Page[models.PostListItem], error) {
	query := pageQuery(page, size)
	if keyword != "" {
		query.Set("keyword", keyword)
	}

	var result models.Page[models.PostListItem]
	if err := s.c.Get(ctx, "/api/blogs/posts", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListMine returns the authenticated user's own posts in any status.
func (s *PostService) ListMine(ctx context.Context, page, size int) (*models.Page[models.PostListItem], error) {
	var result models.Page[models.PostListItem]
	if err := s.c.Get(ctx, "/api/blogs/posts/my-posts", pageQuery(page, size), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListPending returns posts awaiting moderation (admin only).
func (s *PostService) ListPending(ctx context.Context, page, size int) (*models.Page[models.PostListItem], error) {
	var result models.Page[models.PostListItem]
	if err := s.c.Get(ctx, "/api/blogs/posts/pending", pageQuery(page, size), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *PostService) GetByID(ctx context.Context, postID string) (*models.PostDetail, error) {
	var detail models.PostDetail
	if err := s.c.Get(ctx, "/api/blogs/posts/"+postID, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *PostService) GetBySlug(ctx context.Context, slug string) (*models.PostDetail, error) {
	var detail models.PostDetail
	if err := s.c.Get(ctx, "/api/blogs/posts/slug/"+slug, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *PostService) Create(ctx context.Context, req models.PostCreateRequest) (*models.PostDetail, error) {
	if req.Title == "" || req.Content == "" {
		return nil, errors.New("title and content are required")
	}

	var detail models.PostDetail
	if err := s.c.Post(ctx, "/api/blogs/posts", req, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *PostService) Update(ctx context.Context, postID string, req models.PostUpdateRequest) (*models.PostDetail, error) {
	var detail models.PostDetail
	if err := s.c.Put(ctx, "/api/blogs/posts/"+postID, req, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// SubmitForReview moves a draft into the moderation queue.
func (s *PostService) SubmitForReview(ctx context.Context, postID string) (*models.PostDetail, error) {
	return s.moderate(ctx, postID, "submit")
}

// Approve publishes a pending post (admin only).
func (s *PostService) Approve(ctx context.Context, postID string) (*models.PostDetail, error) {
	return s.moderate(ctx, postID, "approve")
}

// Reject returns a pending post to its author (admin only).
func (s *PostService) Reject(ctx context.Context, postID string) (*models.PostDetail, error) {
	return s.moderate(ctx, postID, "reject")
}

func (s *PostService) moderate(ctx context.Context, postID, action string) (*models.PostDetail, error) {
	var detail models.PostDetail
	if err := s.c.Post(ctx, "/api/blogs/posts/"+postID+"/"+action, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *PostService) Delete(ctx context.Context, postID string) error {
	return s.c.Delete(ctx, "/api/blogs/posts/"+postID)
}

// SeriesService manages post series.
type SeriesService struct {
	c *client.Client
}

func NewSeriesService(c *client.Client) *SeriesService {
	return &SeriesService{c: c}
}

func (s *SeriesService) List(ctx context.Context) ([]models.SeriesListItem, error) {
	var series []models.SeriesListItem
	if err := s.c.Get(ctx, "/api/blogs/series", nil, &series); err != nil {
		return nil, err
	}
	return series, nil
}

func (s *SeriesService) Get(ctx context.Context, seriesID string) (*models.SeriesDetail, error) {
	var detail models.SeriesDetail
	if err := s.c.Get(ctx, "/api/blogs/series/"+seriesID, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *SeriesService) Create(ctx context.Context, req models.SeriesCreateRequest) (*models.SeriesDetail, error) {
	var detail models.SeriesDetail
	if err := s.c.Post(ctx, "/api/blogs/series", req, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *SeriesService) Update(ctx context.Context, seriesID string, req models.SeriesUpdateRequest) (*models.SeriesDetail, error) {
	var detail models.SeriesDetail
	if err := s.c.Put(ctx, "/api/blogs/series/"+seriesID, req, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *SeriesService) Delete(ctx context.Context, seriesID string) error {
	return s.c.Delete(ctx, "/api/blogs/series/"+seriesID)
}
