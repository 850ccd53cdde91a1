// ABOUTME: Blog post, series and moderation types for the /api/blogs endpoints
// ABOUTME: Posts move DRAFT -> PENDING -> PUBLISHED through the admin workflow

package models

// PostStatus is the moderation state of a blog post.
type PostStatus string

const (
	PostDraft     PostStatus = "DRAFT"
	PostPending   PostStatus = "PENDING"
	PostPublished PostStatus = "PUBLISHED"
)

type PostListItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Excerpt   string `json:"excerpt"`
	CreatedAt string `json:"createdAt"`
	Author    string `json:"author"`
}

type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// SeriesInfo is the series reference embedded in a post detail.
type SeriesInfo struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	OrderInSeries *int   `json:"orderInSeries,omitempty"`
}

type PostDetail struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Slug      string      `json:"slug"`
	Excerpt   string      `json:"excerpt"`
	Content   string      `json:"content"`
	Status    PostStatus  `json:"status"`
	CreatedAt string      `json:"createdAt"`
	UpdatedAt string      `json:"updatedAt"`
	Author    Author      `json:"author"`
	Series    *SeriesInfo `json:"series,omitempty"`
}

type PostCreateRequest struct {
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Excerpt       string `json:"excerpt,omitempty"`
	Content       string `json:"content"`
	SeriesID      string `json:"seriesId,omitempty"`
	OrderInSeries *int   `json:"orderInSeries,omitempty"`
}

type PostUpdateRequest struct {
	Title         string `json:"title,omitempty"`
	Slug          string `json:"slug,omitempty"`
	Content       string `json:"content,omitempty"`
	Status        string `json:"status,omitempty"`
	SeriesID      string `json:"seriesId,omitempty"`
	OrderInSeries *int   `json:"orderInSeries,omitempty"`
}

type SeriesListItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type SeriesPostItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Order *int   `json:"order,omitempty"`
}

type SeriesDetail struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Slug        string           `json:"slug"`
	Description string           `json:"description,omitempty"`
	Thumbnail   string           `json:"thumbnail,omitempty"`
	Posts       []SeriesPostItem `json:"posts"`
}

type SeriesCreateRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

type SeriesUpdateRequest struct {
	Title       string `json:"title,omitempty"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}
