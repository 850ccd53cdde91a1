// ABOUTME: eBook service over the /api/blogs/ebooks endpoints
// ABOUTME: Listings are cached briefly like course listings

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Katya1803/nullpointer-cli/cache"
	"github.com/Katya1803/nullpointer-cli/client"
	"github.com/Katya1803/nullpointer-cli/models"
)

type EbookService struct {
	c         *client.Client
	listCache *cache.Cache[*models.Page[models.EbookListItem]]
}

func NewEbookService(c *client.Client, cacheTTL time.Duration) *EbookService {
	return &EbookService{
		c:         c,
		listCache: cache.New[*models.Page[models.EbookListItem]](cacheTTL),
	}
}

// List returns ebooks, paginated, optionally filtered by keyword.
func (s *EbookService) List(ctx context.Context, page, size int, keyword string) (*models.Page[models.EbookListItem], error) {
	key := fmt.Sprintf("ebooks:%d:%d:%s", page, size, keyword)
	if cached, ok := s.listCache.Get(key); ok {
		return cached, nil
	}

	query := pageQuery(page, size)
	if keyword != "" {
		query.Set("keyword", keyword)
	}

	var result models.Page[models.EbookListItem]
	if err := s.c.Get(ctx, "/api/blogs/ebooks", query, &result); err != nil {
		return nil, err
	}

	s.listCache.Set(key, &result)
	return &result, nil
}

func (s *EbookService) Get(ctx context.Context, ebookID string) (*models.EbookDetail, error) {
	var detail models.EbookDetail
	if err := s.c.Get(ctx, "/api/blogs/ebooks/"+ebookID, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *EbookService) Create(ctx context.Context, req models.EbookCreateRequest) (*models.EbookDetail, error) {
	var detail models.EbookDetail
	if err := s.c.Post(ctx, "/api/blogs/ebooks", req, &detail); err != nil {
		return nil, err
	}
	s.listCache.Flush()
	return &detail, nil
}

func (s *EbookService) Update(ctx context.Context, ebookID string, req models.EbookUpdateRequest) (*models.EbookDetail, error) {
	var detail models.EbookDetail
	if err := s.c.Put(ctx, "/api/blogs/ebooks/"+ebookID, req, &detail); err != nil {
		return nil, err
	}
	s.listCache.Flush()
	return &detail, nil
}

func (s *EbookService) Delete(ctx context.Context, ebookID string) error {
	if err := s.c.Delete(ctx, "/api/blogs/ebooks/"+ebookID); err != nil {
		return err
	}
	s.listCache.Flush()
	return nil
}

// Close releases the listing cache.
func (s *EbookService) Close() {
	s.listCache.Close()
}
