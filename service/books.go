package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/emzola/shelfwise/data"
	"github.com/emzola/shelfwise/internal/validator"
	"github.com/emzola/shelfwise/repository"
)

type books interface {
	CreateDraft(ctx context.Context, input data.DraftInput) (*data.Book, error)
	GetBook(ctx context.Context, bookID int64) (*data.Book, error)
	PublishBook(ctx context.Context, writerID, bookID int64) (*data.Book, error)
}

// CreateDraft service creates a draft book for a writer.
func (s *service) CreateDraft(ctx context.Context, input data.DraftInput) (*data.Book, error) {
	v := validator.New()
	if data.ValidateDraft(v, input); !v.Valid() {
		return nil, failedValidation(v)
	}
	book := &data.Book{
		UserID:      input.WriterID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Genres:      input.Genres,
		Language:    input.Language,
		Pages:       input.Pages,
		Price:       input.Price,
		CoverImage:  input.CoverImage,
		Status:      data.StatusDraft,
	}
	err := s.repo.CreateBook(ctx, book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, fmt.Errorf("create draft: %w", err)
		}
	}
	s.recorder.Record(data.ActivityDraftCreated, book.UserID, book.ID, map[string]any{
		"title": book.Title,
	})
	return book, nil
}

// GetBook service retrieves a book. Drafts are returned too; callers decide
// who may see them.
func (s *service) GetBook(ctx context.Context, bookID int64) (*data.Book, error) {
	book, err := s.repo.GetBook(ctx, bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return book, nil
}

// PublishBook publishes a draft owned by writerID. Publishing an already
// published book returns it unchanged.
func (s *service) PublishBook(ctx context.Context, writerID, bookID int64) (*data.Book, error) {
	book, err := s.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book.UserID != writerID {
		return nil, ErrNotPermitted
	}
	if book.IsPublished() {
		return book, nil
	}
	publishedAt := s.now().UTC()
	book.PublishedAt = &publishedAt
	err = s.repo.PublishBook(ctx, book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, fmt.Errorf("publish book %d: %w", bookID, err)
		}
	}
	s.recorder.Record(data.ActivityBookPublished, writerID, book.ID, map[string]any{
		"title":    book.Title,
		"category": book.Category,
	})
	return book, nil
}
