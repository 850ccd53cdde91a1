// ABOUTME: Course, section and lecture service over the /api/courses endpoints
// ABOUTME: Published listings are cached briefly; admin operations bypass the cache

package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/Katya1803/nullpointer-cli/cache"
	"github.com/Katya1803/nullpointer-cli/client"
	"github.com/Katya1803/nullpointer-cli/models"
)

// CourseService covers browsing, admin management and course structure.
type CourseService struct {
	c         *client.Client
	listCache *cache.Cache[*models.Page[models.CourseListItem]]
}

func NewCourseService(c *client.Client, cacheTTL time.Duration) *CourseService {
	return &CourseService{
		c:         c,
		listCache: cache.New[*models.Page[models.CourseListItem]](cacheTTL),
	}
}

// ListPublished returns published courses, paginated, optionally
// filtered by keyword. Results are cached for the configured TTL.
func (s *CourseService) ListPublished(ctx context.Context, page, size int, keyword string) (*models.Page[models.CourseListItem], error) {
	key := fmt.Sprintf("courses:%d:%d:%s", page, size, keyword)
	if cached, ok := s.listCache.Get(key); ok {
		return cached, nil
	}

	query := pageQuery(page, size)
	if keyword != "" {
		query.Set("keyword", keyword)
	}

	var result models.Page[models.CourseListItem]
	if err := s.c.Get(ctx, "/api/courses", query, &result); err != nil {
		return nil, err
	}

	s.listCache.Set(key, &result)
	return &result, nil
}

// GetBySlug returns a published course with its sections and lectures.
func (s *CourseService) GetBySlug(ctx context.Context, slug string) (*models.CourseDetail, error) {
	var detail models.CourseDetail
	if err := s.c.Get(ctx, "/api/courses/"+slug, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// AdminGet returns a course by ID, drafts included.
func (s *CourseService) AdminGet(ctx context.Context, courseID string) (*models.CourseDetail, error) {
	var detail models.CourseDetail
	if err := s.c.Get(ctx, "/api/courses/admin/"+courseID, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// AdminList returns all courses for moderation, optionally filtered by
// status.
func (s *CourseService) AdminList(ctx context.Context, page, size int, status models.CourseStatus) (*models.Page[models.CourseListItem], error) {
	query := pageQuery(page, size)
	if status != "" {
		query.Set("status", string(status))
	}

	var result models.Page[models.CourseListItem]
	if err := s.c.Get(ctx, "/api/courses/admin/all", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *CourseService) Create(ctx context.Context, req models.CourseCreateRequest) (*models.CourseResponse, error) {
	var resp models.CourseResponse
	if err := s.c.Post(ctx, "/api/courses", req, &resp); err != nil {
		return nil, err
	}
	s.listCache.Flush()
	return &resp, nil
}

func (s *CourseService) Update(ctx context.Context, courseID string, req models.CourseUpdateRequest) (*models.CourseResponse, error) {
	var resp models.CourseResponse
	if err := s.c.Put(ctx, "/api/courses/"+courseID, req, &resp); err != nil {
		return nil, err
	}
	s.listCache.Flush()
	return &resp, nil
}

// UpdateStatus moves a course between DRAFT and PUBLISHED.
func (s *CourseService) UpdateStatus(ctx context.Context, courseID string, status models.CourseStatus) (*models.CourseResponse, error) {
	var resp models.CourseResponse
	req := models.UpdateCourseStatusRequest{Status: status}
	if err := s.c.Patch(ctx, "/api/courses/"+courseID+"/status", req, &resp); err != nil {
		return nil, err
	}
	s.listCache.Flush()
	return &resp, nil
}

func (s *CourseService) Delete(ctx context.Context, courseID string) error {
	if err := s.c.Delete(ctx, "/api/courses/"+courseID); err != nil {
		return err
	}
	s.listCache.Flush()
	return nil
}

// ListSections returns the sections of a course.
func (s *CourseService) ListSections(ctx context.Context, courseID string) ([]models.SectionResponse, error) {
	var sections []models.SectionResponse
	if err := s.c.Get(ctx, "/api/courses/"+courseID+"/sections", nil, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

func (s *CourseService) CreateSection(ctx context.Context, courseID string, req models.SectionCreateRequest) (*models.SectionResponse, error) {
	var resp models.SectionResponse
	if err := s.c.Post(ctx, "/api/courses/"+courseID+"/sections", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *CourseService) UpdateSection(ctx context.Context, sectionID string, req models.SectionUpdateRequest) (*models.SectionResponse, error) {
	var resp models.SectionResponse
	if err := s.c.Put(ctx, "/api/courses/sections/"+sectionID, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *CourseService) DeleteSection(ctx context.Context, sectionID string) error {
	return s.c.Delete(ctx, "/api/courses/sections/"+sectionID)
}

// ListLectures returns the lectures of a section.
func (s *CourseService) ListLectures(ctx context.Context, sectionID string) ([]models.LectureResponse, error) {
	var lectures []models.LectureResponse
	if err := s.c.Get(ctx, "/api/courses/sections/"+sectionID+"/lectures", nil, &lectures); err != nil {
		return nil, err
	}
	return lectures, nil
}

func (s *CourseService) GetLecture(ctx context.Context, lectureID string) (*models.LectureResponse, error) {
	var lecture models.LectureResponse
	if err := s.c.Get(ctx, "/api/courses/lectures/"+lectureID, nil, &lecture); err != nil {
		return nil, err
	}
	return &lecture, nil
}

func (s *CourseService) CreateLecture(ctx context.Context, sectionID string, req models.LectureCreateRequest) (*models.LectureResponse, error) {
	var resp models.LectureResponse
	if err := s.c.Post(ctx, "/api/courses/sections/"+sectionID+"/lectures", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *CourseService) UpdateLecture(ctx context.Context, lectureID string, req models.LectureUpdateRequest) (*models.LectureResponse, error) {
	var resp models.LectureResponse
	if err := s.c.Put(ctx, "/api/courses/lectures/"+lectureID, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *CourseService) DeleteLecture(ctx context.Context, lectureID string) error {
	return s.c.Delete(ctx, "/api/courses/lectures/"+lectureID)
}

// Close releases the listing cache.
func (s *CourseService) Close() {
	s.listCache.Close()
}

// pageQuery builds the standard pagination query parameters.
func pageQuery(page, size int) url.Values {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	return query
}
