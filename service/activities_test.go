package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/emzola/shelfwise/config"
	"github.com/emzola/shelfwise/data"
	"github.com/emzola/shelfwise/internal/jsonlog"
	"github.com/emzola/shelfwise/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecorder(t *testing.T, queueSize int, failures uint32) (*Recorder, *memory.Store, *data.User) {
	t.Helper()
	var cfg config.Config
	cfg.Activity.QueueSize = queueSize
	cfg.Activity.BreakerFailures = failures
	cfg.Activity.BreakerTimeout = time.Hour
	store := memory.New()
	user := &data.User{Name: "writer", Email: "writer@example.com"}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return NewRecorder(cfg, jsonlog.New(io.Discard, jsonlog.LevelOff), store), store, user
}

func runRecorder(t *testing.T, r *Recorder) (cancel func()) {
	t.Helper()
	ctx, stop := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = r.Serve(ctx)
	}()
	return func() {
		stop()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("recorder did not stop")
		}
	}
}

func TestRecorderPersistsActivities(t *testing.T) {
	r, store, user := newTestRecorder(t, 8, 5)
	stop := runRecorder(t, r)
	defer stop()

	r.Record(data.ActivityBookPublished, user.ID, 42, map[string]any{"title": "Dune"})
	assert.Eventually(t, func() bool {
		return len(store.Activities()) == 1
	}, time.Second, 10*time.Millisecond)

	activity := store.Activities()[0]
	assert.Equal(t, data.ActivityBookPublished, activity.Type)
	assert.Equal(t, int64(42), activity.TargetID)
	assert.Equal(t, "Dune", activity.Metadata["title"])
}

func TestRecordDoesNotBlockWhenQueueIsFull(t *testing.T) {
	r, store, user := newTestRecorder(t, 1, 5)

	done := make(chan struct{})
	go func() {
		defer close(done)
		r.Record(data.ActivityDraftCreated, user.ID, 1, nil)
		r.Record(data.ActivityDraftCreated, user.ID, 2, nil)
		r.Record(data.ActivityDraftCreated, user.ID, 3, nil)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Record blocked on a full queue")
	}
	assert.Equal(t, 1, r.Pending())

	stop := runRecorder(t, r)
	stop()
	activities := store.Activities()
	require.Len(t, activities, 1)
	assert.Equal(t, int64(1), activities[0].TargetID, "later activities were dropped")
}

func TestRecordDropsInvalidActivities(t *testing.T) {
	r, _, user := newTestRecorder(t, 4, 5)

	r.Record("book_deleted", user.ID, 1, nil)
	r.Record(data.ActivityBookPublished, 0, 1, nil)
	assert.Zero(t, r.Pending())
}

func TestRecorderSwallowsStoreErrorsAndTripsBreaker(t *testing.T) {
	r, store, user := newTestRecorder(t, 16, 2)
	store.FailOn(memory.OpInsertActivity, errors.New("connection refused"))
	stop := runRecorder(t, r)

	for i := int64(1); i <= 5; i++ {
		r.Record(data.ActivityReviewCreated, user.ID, i, nil)
	}
	assert.Eventually(t, func() bool { return r.Pending() == 0 }, time.Second, 10*time.Millisecond)
	stop()

	assert.Equal(t, 2, store.Calls(memory.OpInsertActivity), "open breaker short-circuits further writes")
	assert.Empty(t, store.Activities())
}

func TestRecorderDrainsQueueOnShutdown(t *testing.T) {
	r, store, user := newTestRecorder(t, 16, 5)
	for i := int64(1); i <= 3; i++ {
		r.Record(data.ActivityBookPublished, user.ID, i, nil)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.Serve(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, store.Activities(), 3)
	assert.Zero(t, r.Pending())
}
