package data

import (
	"math"
	"time"

	"github.com/emzola/shelfwise/internal/validator"
)

// Rating defines the rating breakdown for the reviews of a book.
type Rating struct {
	FiveStars  int64   `json:"fivestars"`
	FourStars  int64   `json:"fourstars"`
	ThreeStars int64   `json:"threestars"`
	TwoStars   int64   `json:"twostars"`
	OneStar    int64   `json:"onestar"`
	Average    float64 `json:"average"`
	Total      int64   `json:"total"`
}

// Add counts n ratings of the given value into the breakdown.
func (r *Rating) Add(rating int8, n int64) {
	switch rating {
	case 5:
		r.FiveStars += n
	case 4:
		r.FourStars += n
	case 3:
		r.ThreeStars += n
	case 2:
		r.TwoStars += n
	case 1:
		r.OneStar += n
	default:
		return
	}
	r.Total += n
}

// Sum returns the sum of all ratings in the breakdown.
func (r Rating) Sum() int64 {
	return 5*r.FiveStars + 4*r.FourStars + 3*r.ThreeStars + 2*r.TwoStars + r.OneStar
}

// DefaultReviewSort lists the newest reviews first.
const DefaultReviewSort = "-created_at"

var ReviewSortSafeList = []string{"id", "created_at", "updated_at", "rating", "-id", "-created_at", "-updated_at", "-rating"}

// Review defines a book review. A reader holds at most one review per book.
type Review struct {
	ID        int64     `json:"id"`
	BookID    int64     `json:"book_id"`
	UserID    int64     `json:"user_id"`
	UserName  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Rating    int8      `json:"rating"`
	Comment   string    `json:"comment"`
	Version   int32     `json:"-"`
}

// ReviewInput defines the arguments of a review upsert. Rating is decoded as
// any JSON number and only narrowed once ValidateReview accepts it.
type ReviewInput struct {
	ReviewerID int64   `validate:"required,gt=0"`
	BookID     int64   `validate:"required,gt=0"`
	Rating     float64 `validate:"required,min=1,max=5"`
	Comment    string  `validate:"max=5000"`
}

// ReviewResult is returned by a review upsert.
type ReviewResult struct {
	Review  *Review `json:"review"`
	Created bool    `json:"created"`
}

func ValidateReview(v *validator.Validator, input ReviewInput) {
	v.CheckStruct(input)
	v.Check(input.Rating >= 1 && input.Rating <= 5, "rating", "must be between 1 and 5")
	v.Check(input.Rating == math.Trunc(input.Rating), "rating", "must be a whole number")
}
