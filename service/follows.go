package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/emzola/shelfwise/data"
	"github.com/emzola/shelfwise/internal/validator"
	"github.com/emzola/shelfwise/repository"
)

type follows interface {
	Follow(ctx context.Context, followerID, followingID int64) (*data.FollowResult, error)
	Unfollow(ctx context.Context, followerID, followingID int64) (*data.FollowResult, error)
	FollowStatus(ctx context.Context, followerID, followingID int64) (*data.FollowResult, error)
	ListFollowers(ctx context.Context, userID int64, filters data.Filters) ([]*data.User, data.Metadata, error)
}

// Follow makes followerID follow followingID. Following an already followed
// user succeeds without writing anything.
func (s *service) Follow(ctx context.Context, followerID, followingID int64) (*data.FollowResult, error) {
	if followerID == followingID {
		return nil, ErrSelfFollow
	}
	if err := s.userExists(ctx, followingID); err != nil {
		return nil, err
	}
	follow := &data.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
	}
	activity := &data.Activity{
		UserID:   followerID,
		Type:     data.ActivityFollowCreated,
		TargetID: followingID,
		Metadata: map[string]any{"following_id": followingID},
	}
	created, err := s.repo.CreateFollow(ctx, follow, activity)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		case errors.Is(err, repository.ErrCheckViolation):
			return nil, ErrSelfFollow
		default:
			return nil, fmt.Errorf("create follow: %w", err)
		}
	}
	count, err := s.repo.CountFollowers(ctx, followingID)
	if err != nil {
		return nil, fmt.Errorf("count followers: %w", err)
	}
	return &data.FollowResult{Following: true, Created: created, FollowersCount: count}, nil
}

// Unfollow removes the follow edge from followerID to followingID, if any.
func (s *service) Unfollow(ctx context.Context, followerID, followingID int64) (*data.FollowResult, error) {
	if followerID == followingID {
		return nil, ErrSelfFollow
	}
	activity := &data.Activity{
		UserID:   followerID,
		Type:     data.ActivityFollowRemoved,
		TargetID: followingID,
		Metadata: map[string]any{"following_id": followingID},
	}
	removed, err := s.repo.DeleteFollow(ctx, followerID, followingID, activity)
	if err != nil {
		return nil, fmt.Errorf("delete follow: %w", err)
	}
	count, err := s.repo.CountFollowers(ctx, followingID)
	if err != nil {
		return nil, fmt.Errorf("count followers: %w", err)
	}
	return &data.FollowResult{Following: false, Removed: removed, FollowersCount: count}, nil
}

// FollowStatus reports whether followerID follows followingID.
func (s *service) FollowStatus(ctx context.Context, followerID, followingID int64) (*data.FollowResult, error) {
	if err := s.userExists(ctx, followingID); err != nil {
		return nil, err
	}
	following, err := s.repo.FollowExists(ctx, followerID, followingID)
	if err != nil {
		return nil, fmt.Errorf("check follow: %w", err)
	}
	count, err := s.repo.CountFollowers(ctx, followingID)
	if err != nil {
		return nil, fmt.Errorf("count followers: %w", err)
	}
	return &data.FollowResult{Following: following, FollowersCount: count}, nil
}

// ListFollowers service retrieves a page of the users following userID.
func (s *service) ListFollowers(ctx context.Context, userID int64, filters data.Filters) ([]*data.User, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		return nil, data.Metadata{}, failedValidation(v)
	}
	if err := s.userExists(ctx, userID); err != nil {
		return nil, data.Metadata{}, err
	}
	return s.repo.GetAllFollowersForUser(ctx, userID, filters)
}

func (s *service) userExists(ctx context.Context, userID int64) error {
	_, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return fmt.Errorf("get user %d: %w", userID, err)
		}
	}
	return nil
}
