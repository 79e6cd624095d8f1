package data

import "time"

// Follow defines a directed follow edge from FollowerID to FollowingID.
type Follow struct {
	ID          int64     `json:"id"`
	FollowerID  int64     `json:"follower_id"`
	FollowingID int64     `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// FollowResult defines the outcome of a follow or unfollow.
type FollowResult struct {
	Following      bool  `json:"following"`
	Created        bool  `json:"created,omitempty"`
	Removed        bool  `json:"removed,omitempty"`
	FollowersCount int64 `json:"followers_count"`
}
