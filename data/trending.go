package data

import "time"

const (
	TrendingMinRating  = 4.0
	TrendingMinReviews = 5
)

// BookSummary defines a ranked book as returned by discovery endpoints.
type BookSummary struct {
	ID            int64          `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Category      string         `json:"category,omitempty"`
	Price         float64        `json:"price"`
	CoverImage    string         `json:"cover_image,omitempty"`
	Genres        []string       `json:"genres,omitempty"`
	Language      string         `json:"language,omitempty"`
	Pages         int32          `json:"pages,omitempty"`
	AverageRating float64        `json:"average_rating"`
	ReviewCount   int64          `json:"review_count"`
	PublishedAt   time.Time      `json:"published_at"`
	Writer        *WriterSummary `json:"writer,omitempty"`
}

// Trending defines the trending ranking payload.
type Trending struct {
	Items []*BookSummary `json:"items"`
}
