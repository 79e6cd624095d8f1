package memory

import (
	"context"
	"sort"
	"time"

	"github.com/emzola/shelfwise/data"
	"github.com/emzola/shelfwise/repository"
)

func (s *Store) CreateBook(_ context.Context, book *data.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpCreateBook); err != nil {
		return err
	}
	if _, ok := s.users[book.UserID]; !ok {
		return repository.ErrRecordNotFound
	}
	if book.Status == "" {
		book.Status = data.StatusDraft
	}
	book.ID = s.id()
	book.CreatedAt = s.now()
	book.Version = 1
	stored := *book
	s.books[book.ID] = &stored
	return nil
}

func (s *Store) GetBook(_ context.Context, ID int64) (*data.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpGetBook); err != nil {
		return nil, err
	}
	book, ok := s.books[ID]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	out := *book
	return &out, nil
}

func (s *Store) PublishBook(_ context.Context, book *data.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpPublishBook); err != nil {
		return err
	}
	stored, ok := s.books[book.ID]
	if !ok || stored.Version != book.Version {
		return repository.ErrEditConflict
	}
	stored.Status = data.StatusPublished
	stored.PublishedAt = book.PublishedAt
	stored.Version++
	book.Status = stored.Status
	book.Version = stored.Version
	return nil
}

func (s *Store) UpdateBookRatings(_ context.Context, bookID int64, averageRating float64, reviewCount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpUpdateBookRatings); err != nil {
		return err
	}
	book, ok := s.books[bookID]
	if !ok {
		return repository.ErrRecordNotFound
	}
	book.AverageRating = averageRating
	book.ReviewCount = reviewCount
	return nil
}

func (s *Store) GetTrendingCandidates(_ context.Context, cutoff time.Time) ([]*data.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpGetTrendingCandidates); err != nil {
		return nil, err
	}
	books := []*data.Book{}
	for _, book := range s.books {
		if !book.IsPublished() || book.PublishedAt.Before(cutoff) {
			continue
		}
		out := *book
		books = append(books, &out)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books, nil
}
