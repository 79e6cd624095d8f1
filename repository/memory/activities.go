package memory

import (
	"context"
	"sort"

	"github.com/emzola/shelfwise/data"
	"github.com/emzola/shelfwise/repository"
)

func (s *Store) InsertActivity(_ context.Context, activity *data.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertActivity(activity)
}

// insertActivity also backs the follow transactions so an InsertActivity
// fault aborts them. Callers must hold mu.
func (s *Store) insertActivity(activity *data.Activity) error {
	if err := s.enter(OpInsertActivity); err != nil {
		return err
	}
	if _, ok := s.users[activity.UserID]; !ok {
		return repository.ErrRecordNotFound
	}
	valid := false
	for _, t := range data.ActivityTypes {
		if activity.Type == t {
			valid = true
			break
		}
	}
	if !valid {
		return repository.ErrCheckViolation
	}
	activity.ID = s.id()
	activity.CreatedAt = s.now()
	stored := *activity
	stored.Actor = nil
	s.activities = append(s.activities, &stored)
	return nil
}

func (s *Store) GetActivitiesForActors(_ context.Context, actorIDs []int64, limit, offset int) ([]*data.Activity, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpGetActivitiesForActors); err != nil {
		return nil, 0, err
	}
	actors := make(map[int64]bool, len(actorIDs))
	for _, id := range actorIDs {
		actors[id] = true
	}
	return s.pageActivities(func(a *data.Activity) bool { return actors[a.UserID] }, limit, offset)
}

func (s *Store) GetAllActivities(_ context.Context, limit, offset int) ([]*data.Activity, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpGetAllActivities); err != nil {
		return nil, 0, err
	}
	return s.pageActivities(func(*data.Activity) bool { return true }, limit, offset)
}

func (s *Store) pageActivities(match func(*data.Activity) bool, limit, offset int) ([]*data.Activity, int, error) {
	matched := []*data.Activity{}
	for _, a := range s.activities {
		if !match(a) {
			continue
		}
		out := *a
		user := s.users[a.UserID]
		out.Actor = &data.ActorSummary{ID: user.ID, Name: user.Name, Avatar: user.Avatar}
		matched = append(matched, &out)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return paginate(matched, offset, limit), len(matched), nil
}
