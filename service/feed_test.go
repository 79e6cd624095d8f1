package service

import (
	"errors"
	"testing"

	"github.com/emzola/shelfwise/data"
	"github.com/emzola/shelfwise/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonalFeedWithoutFollowsSkipsActivityQuery(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	writer := f.user(t, "writer")
	require.NoError(t, f.store.InsertActivity(f.ctx, &data.Activity{UserID: writer.ID, Type: data.ActivityBookPublished, TargetID: 1}))

	feed, err := f.svc.PersonalFeed(f.ctx, alice.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, data.EmptyFeed(1, 20), feed)
	assert.Equal(t, 1, f.store.Calls(memory.OpGetFollowingIDs))
	assert.Zero(t, f.store.Calls(memory.OpGetActivitiesForActors))
}

func TestPersonalFeed(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	writer := f.user(t, "writer")
	stranger := f.user(t, "stranger")
	_, err := f.svc.Follow(f.ctx, alice.ID, writer.ID)
	require.NoError(t, err)

	for i := int64(1); i <= 4; i++ {
		require.NoError(t, f.store.InsertActivity(f.ctx, &data.Activity{UserID: writer.ID, Type: data.ActivityBookPublished, TargetID: i}))
	}
	require.NoError(t, f.store.InsertActivity(f.ctx, &data.Activity{UserID: stranger.ID, Type: data.ActivityDraftCreated, TargetID: 99}))

	feed, err := f.svc.PersonalFeed(f.ctx, alice.ID, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, feed.Total)
	assert.Equal(t, 2, feed.TotalPages)
	assert.Equal(t, 1, feed.Page)
	assert.Equal(t, 3, feed.Limit)
	require.Len(t, feed.Activities, 3)
	assert.Equal(t, int64(4), feed.Activities[0].TargetID, "newest first")
	for _, activity := range feed.Activities {
		assert.Equal(t, writer.ID, activity.UserID)
		require.NotNil(t, activity.Actor)
		assert.Equal(t, "writer", activity.Actor.Name)
	}

	feed, err = f.svc.PersonalFeed(f.ctx, alice.ID, 2, 3)
	require.NoError(t, err)
	require.Len(t, feed.Activities, 1)
	assert.Equal(t, int64(1), feed.Activities[0].TargetID)

	feed, err = f.svc.PersonalFeed(f.ctx, writer.ID, 1, 3)
	require.NoError(t, err)
	assert.Zero(t, feed.Total, "alice's follow activity is not in the feed of the user she follows")
}

func TestGlobalFeed(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	writer := f.user(t, "writer")
	_, err := f.svc.Follow(f.ctx, alice.ID, writer.ID)
	require.NoError(t, err)
	require.NoError(t, f.store.InsertActivity(f.ctx, &data.Activity{UserID: writer.ID, Type: data.ActivityStoryPublished, TargetID: 7}))

	feed, err := f.svc.GlobalFeed(f.ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, feed.Total)
	assert.Equal(t, 1, feed.TotalPages)
	require.Len(t, feed.Activities, 2)
	assert.Equal(t, data.ActivityStoryPublished, feed.Activities[0].Type)
	assert.Equal(t, data.ActivityFollowCreated, feed.Activities[1].Type)
}

func TestFeedValidation(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name        string
		page, limit int
		key         string
	}{
		{"zero page", 0, 10, "page"},
		{"page too large", data.MaxPage + 1, 10, "page"},
		{"zero limit", 1, 0, "limit"},
		{"limit too large", 1, 101, "limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.PersonalFeed(f.ctx, 1, tt.page, tt.limit)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Errors, tt.key)

			_, err = f.svc.GlobalFeed(f.ctx, tt.page, tt.limit)
			assert.ErrorIs(t, err, ErrFailedValidation)
		})
	}
	assert.Zero(t, f.store.Calls(memory.OpGetFollowingIDs))
}

func TestFeedDegradesOnStorageError(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	writer := f.user(t, "writer")
	_, err := f.svc.Follow(f.ctx, alice.ID, writer.ID)
	require.NoError(t, err)
	f.store.FailOn(memory.OpGetActivitiesForActors, errors.New("timeout"))
	f.store.FailOn(memory.OpGetAllActivities, errors.New("timeout"))

	feed, err := f.svc.PersonalFeed(f.ctx, alice.ID, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, data.EmptyFeed(2, 5), feed)

	feed, err = f.svc.GlobalFeed(f.ctx, 1, 5)
	require.NoError(t, err)
	assert.Zero(t, feed.Total)
	assert.Empty(t, feed.Activities)

	f.store.FailOn(memory.OpGetFollowingIDs, errors.New("timeout"))
	feed, err = f.svc.PersonalFeed(f.ctx, alice.ID, 1, 5)
	require.NoError(t, err)
	assert.Zero(t, feed.Total)
}
