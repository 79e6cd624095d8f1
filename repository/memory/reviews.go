package memory

import (
	"context"
	"sort"

	"github.com/emzola/shelfwise/data"
	"github.com/emzola/shelfwise/repository"
)

func (s *Store) UpsertReview(_ context.Context, review *data.Review) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpUpsertReview); err != nil {
		return false, err
	}
	if _, ok := s.books[review.BookID]; !ok {
		return false, repository.ErrRecordNotFound
	}
	user, ok := s.users[review.UserID]
	if !ok {
		return false, repository.ErrRecordNotFound
	}
	if review.Rating < 1 || review.Rating > 5 {
		return false, repository.ErrCheckViolation
	}
	now := s.now()
	for _, existing := range s.reviews {
		if existing.BookID == review.BookID && existing.UserID == review.UserID {
			existing.Rating = review.Rating
			existing.Comment = review.Comment
			existing.UpdatedAt = now
			existing.Version++
			*review = *existing
			return false, nil
		}
	}
	review.ID = s.id()
	review.UserName = user.Name
	review.CreatedAt = now
	review.UpdatedAt = now
	review.Version = 1
	stored := *review
	s.reviews[review.ID] = &stored
	return true, nil
}

func (s *Store) GetReview(_ context.Context, reviewID int64) (*data.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpGetReview); err != nil {
		return nil, err
	}
	review, ok := s.reviews[reviewID]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	out := *review
	return &out, nil
}

func (s *Store) DeleteReview(_ context.Context, reviewID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpDeleteReview); err != nil {
		return err
	}
	if _, ok := s.reviews[reviewID]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(s.reviews, reviewID)
	return nil
}

func (s *Store) GetRatingsForBook(_ context.Context, bookID int64) (data.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpGetRatingsForBook); err != nil {
		return data.Rating{}, err
	}
	ratings := data.Rating{}
	for _, review := range s.reviews {
		if review.BookID == bookID {
			ratings.Add(review.Rating, 1)
		}
	}
	return ratings, nil
}

func (s *Store) GetAllReviewsForBook(_ context.Context, bookID int64, filters data.Filters) ([]*data.Review, data.Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpGetAllReviewsForBook); err != nil {
		return nil, data.Metadata{}, err
	}
	all := []*data.Review{}
	for _, review := range s.reviews {
		if review.BookID == bookID {
			out := *review
			all = append(all, &out)
		}
	}
	column, desc := filters.SortColumn(), filters.SortDirection() == "DESC"
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		var less, equal bool
		switch column {
		case "rating":
			less, equal = a.Rating < b.Rating, a.Rating == b.Rating
		case "created_at":
			less, equal = a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
		case "updated_at":
			less, equal = a.UpdatedAt.Before(b.UpdatedAt), a.UpdatedAt.Equal(b.UpdatedAt)
		default:
			less, equal = a.ID < b.ID, a.ID == b.ID
		}
		if equal {
			return a.ID > b.ID
		}
		if desc {
			return !less
		}
		return less
	})
	return paginate(all, filters.Offset(), filters.Limit()), data.CalculateMetadata(len(all), filters.Page, filters.PageSize), nil
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
