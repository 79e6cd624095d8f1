package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/emzola/shelfwise/data"
	"github.com/emzola/shelfwise/repository"
)

// CreateFollow applies the edge and its activity together: an injected
// InsertActivity fault leaves the edge unwritten.
func (s *Store) CreateFollow(_ context.Context, follow *data.Follow, activity *data.Activity) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpCreateFollow); err != nil {
		return false, err
	}
	if follow.FollowerID == follow.FollowingID {
		return false, repository.ErrCheckViolation
	}
	_, okFollower := s.users[follow.FollowerID]
	_, okFollowing := s.users[follow.FollowingID]
	if !okFollower || !okFollowing {
		return false, repository.ErrRecordNotFound
	}
	key := followKey{follow.FollowerID, follow.FollowingID}
	if _, ok := s.follows[key]; ok {
		return false, nil
	}
	if err := s.insertActivity(activity); err != nil {
		return false, fmt.Errorf("insert follow activity: %w", err)
	}
	follow.ID = s.id()
	follow.CreatedAt = s.now()
	stored := *follow
	s.follows[key] = &stored
	return true, nil
}

func (s *Store) DeleteFollow(_ context.Context, followerID, followingID int64, activity *data.Activity) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpDeleteFollow); err != nil {
		return false, err
	}
	key := followKey{followerID, followingID}
	if _, ok := s.follows[key]; !ok {
		return false, nil
	}
	if err := s.insertActivity(activity); err != nil {
		return false, fmt.Errorf("insert unfollow activity: %w", err)
	}
	delete(s.follows, key)
	return true, nil
}

func (s *Store) FollowExists(_ context.Context, followerID, followingID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpFollowExists); err != nil {
		return false, err
	}
	_, ok := s.follows[followKey{followerID, followingID}]
	return ok, nil
}

func (s *Store) CountFollowers(_ context.Context, userID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpCountFollowers); err != nil {
		return 0, err
	}
	return s.countFollowers(userID), nil
}

func (s *Store) countFollowers(userID int64) int64 {
	var count int64
	for key := range s.follows {
		if key.followingID == userID {
			count++
		}
	}
	return count
}

func (s *Store) GetFollowingIDs(_ context.Context, userID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpGetFollowingIDs); err != nil {
		return nil, err
	}
	ids := []int64{}
	for key := range s.follows {
		if key.followerID == userID {
			ids = append(ids, key.followingID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *Store) GetAllFollowersForUser(_ context.Context, userID int64, filters data.Filters) ([]*data.User, data.Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpGetAllFollowersForUser); err != nil {
		return nil, data.Metadata{}, err
	}
	edges := []*data.Follow{}
	for key, follow := range s.follows {
		if key.followingID == userID {
			edges = append(edges, follow)
		}
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].ID > edges[j].ID })
	users := make([]*data.User, 0, len(edges))
	for _, edge := range edges {
		out := *s.users[edge.FollowerID]
		users = append(users, &out)
	}
	return paginate(users, filters.Offset(), filters.Limit()), data.CalculateMetadata(len(users), filters.Page, filters.PageSize), nil
}
