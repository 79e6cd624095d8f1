package service

import (
	"context"
	"errors"

	"github.com/emzola/shelfwise/data"
	"github.com/emzola/shelfwise/repository"
)

type users interface {
	GetUser(ctx context.Context, userID int64) (*data.User, error)
	GetUserForToken(ctx context.Context, tokenScope, tokenPlaintext string) (*data.User, error)
}

// GetUser service retrieves a user.
func (s *service) GetUser(ctx context.Context, userID int64) (*data.User, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return user, nil
}

// GetUserForToken service retrieves the user owning an authentication token.
func (s *service) GetUserForToken(ctx context.Context, tokenScope, tokenPlaintext string) (*data.User, error) {
	user, err := s.repo.GetUserForToken(ctx, tokenScope, tokenPlaintext)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return user, nil
}
