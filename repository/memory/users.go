package memory

import (
	"context"

	"github.com/emzola/shelfwise/data"
	"github.com/emzola/shelfwise/repository"
)

func (s *Store) CreateUser(_ context.Context, user *data.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpCreateUser); err != nil {
		return err
	}
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateRecord
		}
	}
	user.ID = s.id()
	user.CreatedAt = s.now()
	user.Version = 1
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *Store) GetUser(_ context.Context, ID int64) (*data.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpGetUser); err != nil {
		return nil, err
	}
	user, ok := s.users[ID]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	out := *user
	return &out, nil
}

func (s *Store) GetUserForToken(_ context.Context, tokenScope, tokenPlaintext string) (*data.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpGetUserForToken); err != nil {
		return nil, err
	}
	t, ok := s.tokens[string(data.TokenHash(tokenPlaintext))]
	if !ok || t.scope != tokenScope || !t.expiry.After(s.now()) {
		return nil, repository.ErrRecordNotFound
	}
	user, ok := s.users[t.userID]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	out := *user
	return &out, nil
}

func (s *Store) GetWriterSummaries(_ context.Context, IDs []int64) (map[int64]*data.WriterSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpGetWriterSummaries); err != nil {
		return nil, err
	}
	summaries := make(map[int64]*data.WriterSummary, len(IDs))
	for _, id := range IDs {
		user, ok := s.users[id]
		if !ok {
			continue
		}
		summaries[id] = &data.WriterSummary{
			ID:             user.ID,
			Username:       user.Name,
			Profile:        user.Profile,
			Bio:            user.Bio,
			Avatar:         user.Avatar,
			FollowersCount: s.countFollowers(id),
		}
	}
	return summaries, nil
}
