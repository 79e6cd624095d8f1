package dto

import "github.com/emzola/shelfwise/data"

// UpsertReviewRequestBody defines a request body for UpsertReview service.
type UpsertReviewRequestBody struct {
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}

// QsListReviews defines the query strings used for listing reviews.
type QsListReviews struct {
	Filters data.Filters
}
