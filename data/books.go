package data

import (
	"time"

	"github.com/emzola/shelfwise/internal/validator"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Book defines a book model. AverageRating and ReviewCount are denormalized
// from the reviews table and only written by the rating aggregator.
type Book struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"writer_id"`
	CreatedAt     time.Time  `json:"created_at"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Category      string     `json:"category,omitempty"`
	Genres        []string   `json:"genres,omitempty"`
	Language      string     `json:"language,omitempty"`
	Pages         int32      `json:"pages,omitempty"`
	Price         float64    `json:"price"`
	CoverImage    string     `json:"cover_image,omitempty"`
	Status        string     `json:"status"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	AverageRating float64    `json:"average_rating"`
	ReviewCount   int64      `json:"review_count"`
	Views         int64      `json:"views"`
	Sales         int64      `json:"sales"`
	Version       int32      `json:"-"`
}

// IsPublished reports whether the book is visible to readers.
func (b *Book) IsPublished() bool {
	return b.Status == StatusPublished && b.PublishedAt != nil
}

// DraftInput defines the fields a writer supplies when creating a draft.
type DraftInput struct {
	WriterID    int64    `validate:"required,gt=0"`
	Title       string   `validate:"required,max=500"`
	Description string   `validate:"max=2000"`
	Category    string   `validate:"required,max=100"`
	Genres      []string `validate:"max=10,unique,dive,required,max=50"`
	Language    string   `validate:"required,max=50"`
	Pages       int32    `validate:"gte=0"`
	Price       float64  `validate:"gte=0"`
	CoverImage  string   `validate:"omitempty,url"`
}

func ValidateDraft(v *validator.Validator, input DraftInput) {
	v.CheckStruct(input)
	v.Check(validator.Unique(input.Genres), "genres", "must not contain duplicate values")
}
