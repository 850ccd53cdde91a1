// ABOUTME: Course, section, lecture, enrollment and progress types
// ABOUTME: Mirrors the backend course-service DTOs

package models

// CourseStatus is the moderation state of a course.
type CourseStatus string

const (
	CourseDraft     CourseStatus = "DRAFT"
	CoursePublished CourseStatus = "PUBLISHED"
)

// LectureType distinguishes lecture content kinds.
type LectureType string

const (
	LectureVideo   LectureType = "VIDEO"
	LectureArticle LectureType = "ARTICLE"
	LectureQuiz    LectureType = "QUIZ"
)

type CourseListItem struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Slug          string       `json:"slug"`
	Description   string       `json:"description"`
	Thumbnail     string       `json:"thumbnail"`
	Status        CourseStatus `json:"status"`
	TotalSections int          `json:"totalSections"`
	TotalLectures int          `json:"totalLectures"`
	CreatedAt     string       `json:"createdAt"`
}

type CourseDetail struct {
	ID            string                `json:"id"`
	Title         string                `json:"title"`
	Slug          string                `json:"slug"`
	Description   string                `json:"description"`
	Thumbnail     string                `json:"thumbnail"`
	Status        CourseStatus          `json:"status"`
	TotalSections int                   `json:"totalSections"`
	TotalLectures int                   `json:"totalLectures"`
	CreatedAt     string                `json:"createdAt"`
	UpdatedAt     string                `json:"updatedAt"`
	Sections      []SectionWithLectures `json:"sections"`
}

type CourseResponse struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	Thumbnail   string       `json:"thumbnail"`
	Status      CourseStatus `json:"status"`
	CreatedAt   string       `json:"createdAt"`
	UpdatedAt   string       `json:"updatedAt"`
}

type CourseCreateRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

type CourseUpdateRequest struct {
	Title       string `json:"title,omitempty"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

type UpdateCourseStatusRequest struct {
	Status CourseStatus `json:"status"`
}

type SectionWithLectures struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	SortOrder int               `json:"sortOrder"`
	Lectures  []LectureListItem `json:"lectures"`
}

type SectionResponse struct {
	ID            string `json:"id"`
	CourseID      string `json:"courseId"`
	Title         string `json:"title"`
	SortOrder     int    `json:"sortOrder"`
	TotalLectures int    `json:"totalLectures"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

type SectionCreateRequest struct {
	Title     string `json:"title"`
	SortOrder int    `json:"sortOrder"`
}

type SectionUpdateRequest struct {
	Title     string `json:"title,omitempty"`
	SortOrder *int   `json:"sortOrder,omitempty"`
}

type LectureListItem struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Type      LectureType `json:"type"`
	Duration  int         `json:"duration"`
	SortOrder int         `json:"sortOrder"`
	IsPreview bool        `json:"isPreview"`
}

type LectureResponse struct {
	ID        string      `json:"id"`
	SectionID string      `json:"sectionId"`
	Title     string      `json:"title"`
	Type      LectureType `json:"type"`
	Content   string      `json:"content,omitempty"`
	VideoURL  string      `json:"videoUrl,omitempty"`
	Duration  int         `json:"duration"`
	SortOrder int         `json:"sortOrder"`
	IsPreview bool        `json:"isPreview"`
	CreatedAt string      `json:"createdAt"`
	UpdatedAt string      `json:"updatedAt"`
}

type LectureCreateRequest struct {
	Title     string      `json:"title"`
	Type      LectureType `json:"type"`
	Content   string      `json:"content,omitempty"`
	VideoURL  string      `json:"videoUrl,omitempty"`
	Duration  int         `json:"duration,omitempty"`
	SortOrder int         `json:"sortOrder"`
	IsPreview bool        `json:"isPreview,omitempty"`
}

type LectureUpdateRequest struct {
	Title     string `json:"title,omitempty"`
	Content   string `json:"content,omitempty"`
	VideoURL  string `json:"videoUrl,omitempty"`
	Duration  *int   `json:"duration,omitempty"`
	SortOrder *int   `json:"sortOrder,omitempty"`
	IsPreview *bool  `json:"isPreview,omitempty"`
}

type EnrollmentRequest struct {
	CourseID string `json:"courseId"`
}

type EnrollmentResponse struct {
	ID                 string  `json:"id"`
	AccountID          string  `json:"accountId"`
	CourseID           string  `json:"courseId"`
	EnrolledAt         string  `json:"enrolledAt"`
	CompletedAt        string  `json:"completedAt,omitempty"`
	ProgressPercentage float64 `json:"progressPercentage"`
}

type CourseInfo struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Thumbnail     string `json:"thumbnail"`
	TotalLectures int    `json:"totalLectures"`
}

type EnrollmentDetail struct {
	ID                 string     `json:"id"`
	EnrolledAt         string     `json:"enrolledAt"`
	CompletedAt        string     `json:"completedAt,omitempty"`
	ProgressPercentage float64    `json:"progressPercentage"`
	Course             CourseInfo `json:"course"`
}

type LectureProgressRequest struct {
	IsCompleted         *bool `json:"isCompleted,omitempty"`
	LastWatchedPosition *int  `json:"lastWatchedPosition,omitempty"`
}

type LectureProgressResponse struct {
	ID                  string `json:"id"`
	EnrollmentID        string `json:"enrollmentId"`
	LectureID           string `json:"lectureId"`
	IsCompleted         bool   `json:"isCompleted"`
	CompletedAt         string `json:"completedAt,omitempty"`
	LastWatchedPosition int    `json:"lastWatchedPosition"`
}

type LectureProgressItem struct {
	LectureID           string      `json:"lectureId"`
	LectureTitle        string      `json:"lectureTitle"`
	LectureType         LectureType `json:"lectureType"`
	Duration            int         `json:"duration"`
	SortOrder           int         `json:"sortOrder"`
	IsCompleted         bool        `json:"isCompleted"`
	CompletedAt         string      `json:"completedAt,omitempty"`
	LastWatchedPosition int         `json:"lastWatchedPosition"`
}

type SectionProgressItem struct {
	SectionID    string                `json:"sectionId"`
	SectionTitle string                `json:"sectionTitle"`
	SortOrder    int                   `json:"sortOrder"`
	Lectures     []LectureProgressItem `json:"lectures"`
}

type CourseProgressDetail struct {
	EnrollmentID       string                `json:"enrollmentId"`
	CourseID           string                `json:"courseId"`
	CourseTitle        string                `json:"courseTitle"`
	EnrolledAt         string                `json:"enrolledAt"`
	CompletedAt        string                `json:"completedAt,omitempty"`
	TotalLectures      int                   `json:"totalLectures"`
	CompletedLectures  int                   `json:"completedLectures"`
	ProgressPercentage float64               `json:"progressPercentage"`
	Sections           []SectionProgressItem `json:"sections"`
}
