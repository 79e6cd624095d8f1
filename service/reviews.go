package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/emzola/shelfwise/data"
	"github.com/emzola/shelfwise/internal/validator"
	"github.com/emzola/shelfwise/repository"
)

type reviews interface {
	UpsertReview(ctx context.Context, input data.ReviewInput) (*data.ReviewResult, error)
	GetReview(ctx context.Context, reviewID int64) (*data.Review, error)
	DeleteReview(ctx context.Context, reviewerID, reviewID int64) error
	ListBookReviews(ctx context.Context, bookID int64, filters data.Filters) (data.Rating, []*data.Review, data.Metadata, error)
}

// UpsertReview creates or replaces the reviewer's review of a published book
// and then recomputes the book's rating aggregates.
func (s *service) UpsertReview(ctx context.Context, input data.ReviewInput) (*data.ReviewResult, error) {
	v := validator.New()
	if data.ValidateReview(v, input); !v.Valid() {
		return nil, failedValidation(v)
	}
	book, err := s.repo.GetBook(ctx, input.BookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, fmt.Errorf("get book %d: %w", input.BookID, err)
		}
	}
	// Writers cannot review their own books, and drafts are not reviewable.
	if book.UserID == input.ReviewerID || !book.IsPublished() {
		return nil, ErrNotPermitted
	}
	review := &data.Review{
		BookID:  input.BookID,
		UserID:  input.ReviewerID,
		Rating:  int8(input.Rating),
		Comment: input.Comment,
	}
	created, err := s.repo.UpsertReview(ctx, review)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		case errors.Is(err, repository.ErrCheckViolation):
			v.AddError("rating", "must be between 1 and 5")
			return nil, failedValidation(v)
		default:
			return nil, fmt.Errorf("upsert review: %w", err)
		}
	}
	if err := s.RecomputeAggregates(ctx, book.ID); err != nil {
		return nil, err
	}
	if created {
		s.recorder.Record(data.ActivityReviewCreated, input.ReviewerID, book.ID, map[string]any{
			"review_id": review.ID,
			"rating":    review.Rating,
			"title":     book.Title,
		})
	}
	stored, err := s.repo.GetReview(ctx, review.ID)
	if err != nil {
		return nil, fmt.Errorf("get review %d: %w", review.ID, err)
	}
	return &data.ReviewResult{Review: stored, Created: created}, nil
}

// GetReview service retrieves a review.
func (s *service) GetReview(ctx context.Context, reviewID int64) (*data.Review, error) {
	review, err := s.repo.GetReview(ctx, reviewID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, fmt.Errorf("get review %d: %w", reviewID, err)
		}
	}
	return review, nil
}

// DeleteReview deletes a review owned by reviewerID and recomputes the
// aggregates of the reviewed book.
func (s *service) DeleteReview(ctx context.Context, reviewerID, reviewID int64) error {
	review, err := s.repo.GetReview(ctx, reviewID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return fmt.Errorf("get review %d: %w", reviewID, err)
		}
	}
	if review.UserID != reviewerID {
		return ErrNotPermitted
	}
	err = s.repo.DeleteReview(ctx, reviewID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return fmt.Errorf("delete review %d: %w", reviewID, err)
		}
	}
	return s.RecomputeAggregates(ctx, review.BookID)
}

// ListBookReviews service retrieves a page of the reviews of a book along
// with its rating breakdown.
func (s *service) ListBookReviews(ctx context.Context, bookID int64, filters data.Filters) (data.Rating, []*data.Review, data.Metadata, error) {
	if filters.Sort == "" {
		filters.Sort = data.DefaultReviewSort
	}
	filters.SortSafeList = data.ReviewSortSafeList
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		return data.Rating{}, nil, data.Metadata{}, failedValidation(v)
	}
	_, err := s.repo.GetBook(ctx, bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return data.Rating{}, nil, data.Metadata{}, ErrRecordNotFound
		default:
			return data.Rating{}, nil, data.Metadata{}, fmt.Errorf("get book %d: %w", bookID, err)
		}
	}
	ratings, err := s.repo.GetRatingsForBook(ctx, bookID)
	if err != nil {
		return data.Rating{}, nil, data.Metadata{}, fmt.Errorf("read ratings for book %d: %w", bookID, err)
	}
	ratings.Average = averageRating(ratings.Sum(), ratings.Total)
	reviews, metadata, err := s.repo.GetAllReviewsForBook(ctx, bookID, filters)
	if err != nil {
		return data.Rating{}, nil, data.Metadata{}, fmt.Errorf("list reviews for book %d: %w", bookID, err)
	}
	return ratings, reviews, metadata, nil
}
