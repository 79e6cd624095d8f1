package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/emzola/shelfwise/config"
	"github.com/emzola/shelfwise/data"
	"github.com/emzola/shelfwise/internal/cache"
	"github.com/emzola/shelfwise/internal/jsonlog"
	"github.com/emzola/shelfwise/repository/memory"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

type recordedActivity struct {
	Type     data.ActivityType
	UserID   int64
	TargetID int64
	Metadata map[string]any
}

type fakeRecorder struct {
	mu      sync.Mutex
	records []recordedActivity
}

func (f *fakeRecorder) Record(activityType data.ActivityType, userID, targetID int64, metadata map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, recordedActivity{activityType, userID, targetID, metadata})
}

func (f *fakeRecorder) recorded() []recordedActivity {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedActivity(nil), f.records...)
}

type fixture struct {
	svc      *service
	store    *memory.Store
	recorder *fakeRecorder
	ctx      context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	var cfg config.Config
	cfg.Cache.TrendingTTL = time.Minute
	cfg.Cache.CategoriesTTL = time.Minute
	return newFixtureWithConfig(t, cfg)
}

func newFixtureWithConfig(t *testing.T, cfg config.Config) *fixture {
	t.Helper()
	store := memory.New()
	store.SetClock(func() time.Time { return testNow })
	recorder := &fakeRecorder{}
	svc := New(cfg, jsonlog.New(io.Discard, jsonlog.LevelOff), store, cache.New(64), recorder)
	svc.now = func() time.Time { return testNow }
	return &fixture{svc: svc, store: store, recorder: recorder, ctx: context.Background()}
}

func (f *fixture) user(t *testing.T, name string) *data.User {
	t.Helper()
	user := &data.User{Name: name, Email: name + "@example.com", Activated: true}
	require.NoError(t, f.store.CreateUser(f.ctx, user))
	return user
}

func (f *fixture) draft(t *testing.T, writerID int64, title string) *data.Book {
	t.Helper()
	book := &data.Book{UserID: writerID, Title: title, Category: "Fiction", Status: data.StatusDraft}
	require.NoError(t, f.store.CreateBook(f.ctx, book))
	return book
}

func (f *fixture) published(t *testing.T, writerID int64, title string, age time.Duration) *data.Book {
	t.Helper()
	book := f.draft(t, writerID, title)
	publishedAt := testNow.Add(-age)
	book.PublishedAt = &publishedAt
	require.NoError(t, f.store.PublishBook(f.ctx, book))
	return book
}

// rated publishes a book and overwrites its aggregates directly.
func (f *fixture) rated(t *testing.T, writerID int64, title string, age time.Duration, avg float64, count int64) *data.Book {
	t.Helper()
	book := f.published(t, writerID, title, age)
	require.NoError(t, f.store.UpdateBookRatings(f.ctx, book.ID, avg, count))
	return book
}

func (f *fixture) book(t *testing.T, id int64) *data.Book {
	t.Helper()
	book, err := f.store.GetBook(f.ctx, id)
	require.NoError(t, err)
	return book
}

const day = 24 * time.Hour
