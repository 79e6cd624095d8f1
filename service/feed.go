package service

import (
	"context"

	"github.com/emzola/shelfwise/data"
	"github.com/emzola/shelfwise/internal/validator"
)

type feed interface {
	PersonalFeed(ctx context.Context, userID int64, page, limit int) (*data.Feed, error)
	GlobalFeed(ctx context.Context, page, limit int) (*data.Feed, error)
}

// PersonalFeed returns the activities of the users userID follows, newest
// first. Storage failures degrade to an empty page.
func (s *service) PersonalFeed(ctx context.Context, userID int64, page, limit int) (*data.Feed, error) {
	if err := validatePage(page, limit); err != nil {
		return nil, err
	}
	following, err := s.repo.GetFollowingIDs(ctx, userID)
	if err != nil {
		s.degraded("personal_feed", err)
		return data.EmptyFeed(page, limit), nil
	}
	if len(following) == 0 {
		return data.EmptyFeed(page, limit), nil
	}
	activities, total, err := s.repo.GetActivitiesForActors(ctx, following, limit, (page-1)*limit)
	if err != nil {
		s.degraded("personal_feed", err)
		return data.EmptyFeed(page, limit), nil
	}
	return newFeed(activities, total, page, limit), nil
}

// GlobalFeed returns every activity, newest first. Storage failures degrade
// to an empty page.
func (s *service) GlobalFeed(ctx context.Context, page, limit int) (*data.Feed, error) {
	if err := validatePage(page, limit); err != nil {
		return nil, err
	}
	activities, total, err := s.repo.GetAllActivities(ctx, limit, (page-1)*limit)
	if err != nil {
		s.degraded("global_feed", err)
		return data.EmptyFeed(page, limit), nil
	}
	return newFeed(activities, total, page, limit), nil
}

func newFeed(activities []*data.Activity, total, page, limit int) *data.Feed {
	return &data.Feed{
		Activities: activities,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: data.TotalPages(total, limit),
	}
}

func validatePage(page, limit int) error {
	v := validator.New()
	v.Check(page > 0, "page", "must be greater than zero")
	v.Check(page <= data.MaxPage, "page", "must be a maximum of 10 million")
	v.Check(limit > 0, "limit", "must be greater than zero")
	v.Check(limit <= data.MaxPageSize, "limit", "must be a maximum of 100")
	if !v.Valid() {
		return failedValidation(v)
	}
	return nil
}
