package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/emzola/shelfwise/repository"
)

type ratings interface {
	RecomputeAggregates(ctx context.Context, bookID int64) error
}

// RecomputeAggregates rewrites the review count and average rating of a book
// from its current reviews. It runs after the review write, not inside it, so
// concurrent recomputes of the same book may briefly publish stale values.
func (s *service) RecomputeAggregates(ctx context.Context, bookID int64) error {
	ratings, err := s.repo.GetRatingsForBook(ctx, bookID)
	if err != nil {
		return fmt.Errorf("read ratings for book %d: %w", bookID, err)
	}
	average := averageRating(ratings.Sum(), ratings.Total)
	err = s.repo.UpdateBookRatings(ctx, bookID, average, ratings.Total)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return fmt.Errorf("update ratings for book %d: %w", bookID, err)
		}
	}
	return nil
}

// averageRating returns sum/count rounded to two decimals, or 0 for no ratings.
func averageRating(sum, count int64) float64 {
	if count == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(count)*100) / 100
}
