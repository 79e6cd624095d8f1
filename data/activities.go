package data

import (
	"time"

	"github.com/emzola/shelfwise/internal/validator"
)

// ActivityType is one of the closed set of feed event kinds.
type ActivityType string

const (
	ActivityBookPublished  ActivityType = "book_published"
	ActivityStoryPublished ActivityType = "story_published"
	ActivityReviewCreated  ActivityType = "review_created"
	ActivityFollowCreated  ActivityType = "follow_created"
	ActivityFollowRemoved  ActivityType = "follow_removed"
	ActivityDraftCreated   ActivityType = "draft_created"
)

// ActivityTypes lists every valid ActivityType.
var ActivityTypes = []ActivityType{
	ActivityBookPublished,
	ActivityStoryPublished,
	ActivityReviewCreated,
	ActivityFollowCreated,
	ActivityFollowRemoved,
	ActivityDraftCreated,
}

// Activity defines an append-only feed event. Actor is only populated on reads.
type Activity struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"user_id"`
	Type      ActivityType   `json:"activity_type"`
	TargetID  int64          `json:"target_id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	Actor     *ActorSummary  `json:"actor,omitempty"`
}

// Feed defines a page of activities.
type Feed struct {
	Activities []*Activity `json:"activities"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"totalPages"`
}

// EmptyFeed returns a feed page with no activities.
func EmptyFeed(page, limit int) *Feed {
	return &Feed{
		Activities: []*Activity{},
		Page:       page,
		Limit:      limit,
	}
}

func ValidateActivity(v *validator.Validator, activity *Activity) {
	v.Check(activity.UserID > 0, "user_id", "must be provided")
	v.Check(activity.TargetID > 0, "target_id", "must be provided")
	v.Check(validator.PermittedValue(activity.Type, ActivityTypes...), "activity_type", "invalid activity type")
}
