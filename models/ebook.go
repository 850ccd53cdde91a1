// ABOUTME: eBook listing and management types for the /api/blogs/ebooks endpoints
// ABOUTME: Mirrors the backend ebook DTOs

package models

type EbookListItem struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublishedYear int    `json:"publishedYear,omitempty"`
	CoverURL      string `json:"coverUrl,omitempty"`
}

type EbookDetail struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublishedYear int    `json:"publishedYear,omitempty"`
	Description   string `json:"description,omitempty"`
	CoverURL      string `json:"coverUrl,omitempty"`
	DownloadURL   string `json:"downloadUrl"`
	CreatedAt     string `json:"createdAt"`
}

type EbookCreateRequest struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublishedYear int    `json:"publishedYear,omitempty"`
	Description   string `json:"description,omitempty"`
	CoverURL      string `json:"coverUrl,omitempty"`
	DownloadURL   string `json:"downloadUrl"`
}

type EbookUpdateRequest struct {
	Title         string `json:"title,omitempty"`
	Author        string `json:"author,omitempty"`
	PublishedYear *int   `json:"publishedYear,omitempty"`
	Description   string `json:"description,omitempty"`
	CoverURL      string `json:"coverUrl,omitempty"`
	DownloadURL   string `json:"downloadUrl,omitempty"`
}
