//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"os/exec"
	"testing"
	"time"

	"github.com/emzola/shelfwise/config"
	"github.com/emzola/shelfwise/data"
	"github.com/emzola/shelfwise/repository"
	"github.com/emzola/shelfwise/repository/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func dockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return exec.CommandContext(ctx, "docker", "info").Run() == nil
}

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	if !dockerAvailable() {
		t.Skip("Skipping test: Docker not available")
	}
	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "shelfwise",
			"POSTGRES_PASSWORD": "shelfwise",
			"POSTGRES_DB":       "shelfwise",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(time.Minute),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})
	endpoint, err := container.PortEndpoint(ctx, "5432/tcp", "")
	require.NoError(t, err)

	var cfg config.Config
	cfg.Database.DSN = "postgres://shelfwise:shelfwise@" + endpoint + "/shelfwise?sslmode=disable"
	cfg.Database.MaxOpenConns = 5
	cfg.Database.MaxIdleConns = 5
	cfg.Database.MaxIdleTime = "1m"
	db, err := postgres.OpenDBConn(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, postgres.Migrate(ctx, db))
	require.NoError(t, postgres.Migrate(ctx, db), "migrations must be re-runnable")
	return db
}

func createUser(t *testing.T, repo repository.Repository, name string) *data.User {
	t.Helper()
	user := &data.User{Name: name, Email: name + "@example.com", Activated: true}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

func TestPostgresRepository(t *testing.T) {
	db := setupDB(t)
	repo := repository.New(db)
	ctx := context.Background()

	writer := createUser(t, repo, "writer")
	reader := createUser(t, repo, "reader")
	other := createUser(t, repo, "other")

	t.Run("review upsert and ratings", func(t *testing.T) {
		book := &data.Book{UserID: writer.ID, Title: "Dune", Category: "Fiction", Genres: []string{"scifi"}, Status: data.StatusDraft}
		require.NoError(t, repo.CreateBook(ctx, book))

		review := &data.Review{BookID: book.ID, UserID: reader.ID, Rating: 5}
		created, err := repo.UpsertReview(ctx, review)
		require.NoError(t, err)
		assert.True(t, created)

		review = &data.Review{BookID: book.ID, UserID: reader.ID, Rating: 3, Comment: "changed my mind"}
		created, err = repo.UpsertReview(ctx, review)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, int32(2), review.Version)

		_, err = repo.UpsertReview(ctx, &data.Review{BookID: book.ID, UserID: other.ID, Rating: 4})
		require.NoError(t, err)

		ratings, err := repo.GetRatingsForBook(ctx, book.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), ratings.Total)
		assert.Equal(t, int64(7), ratings.Sum())

		_, err = repo.UpsertReview(ctx, &data.Review{BookID: book.ID, UserID: other.ID, Rating: 9})
		assert.ErrorIs(t, err, repository.ErrCheckViolation)

		require.NoError(t, repo.UpdateBookRatings(ctx, book.ID, 3.5, 2))
		got, err := repo.GetBook(ctx, book.ID)
		require.NoError(t, err)
		assert.Equal(t, 3.5, got.AverageRating)
		assert.Equal(t, int64(2), got.ReviewCount)
	})

	t.Run("follow transaction", func(t *testing.T) {
		activity := &data.Activity{UserID: reader.ID, Type: data.ActivityFollowCreated, TargetID: writer.ID}
		created, err := repo.CreateFollow(ctx, &data.Follow{FollowerID: reader.ID, FollowingID: writer.ID}, activity)
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotZero(t, activity.ID)

		created, err = repo.CreateFollow(ctx, &data.Follow{FollowerID: reader.ID, FollowingID: writer.ID}, &data.Activity{UserID: reader.ID, Type: data.ActivityFollowCreated, TargetID: writer.ID})
		require.NoError(t, err)
		assert.False(t, created)

		// An invalid activity type violates the check constraint and must roll back the edge.
		created, err = repo.CreateFollow(ctx, &data.Follow{FollowerID: other.ID, FollowingID: writer.ID}, &data.Activity{UserID: other.ID, Type: "bogus", TargetID: writer.ID})
		require.ErrorIs(t, err, repository.ErrCheckViolation)
		assert.False(t, created)
		exists, err := repo.FollowExists(ctx, other.ID, writer.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		count, err := repo.CountFollowers(ctx, writer.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		ids, err := repo.GetFollowingIDs(ctx, reader.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{writer.ID}, ids)

		summaries, err := repo.GetWriterSummaries(ctx, []int64{writer.ID, other.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(1), summaries[writer.ID].FollowersCount)
		assert.Equal(t, int64(0), summaries[other.ID].FollowersCount)

		activities, total, err := repo.GetActivitiesForActors(ctx, []int64{reader.ID}, 10, 0)
		require.NoError(t, err)
		require.Equal(t, 1, total)
		assert.Equal(t, data.ActivityFollowCreated, activities[0].Type)
		assert.Equal(t, "reader", activities[0].Actor.Name)

		removed, err := repo.DeleteFollow(ctx, reader.ID, writer.ID, &data.Activity{UserID: reader.ID, Type: data.ActivityFollowRemoved, TargetID: writer.ID})
		require.NoError(t, err)
		assert.True(t, removed)
		removed, err = repo.DeleteFollow(ctx, reader.ID, writer.ID, &data.Activity{UserID: reader.ID, Type: data.ActivityFollowRemoved, TargetID: writer.ID})
		require.NoError(t, err)
		assert.False(t, removed)

		_, err = repo.CreateFollow(ctx, &data.Follow{FollowerID: reader.ID, FollowingID: reader.ID}, &data.Activity{UserID: reader.ID, Type: data.ActivityFollowCreated, TargetID: reader.ID})
		assert.ErrorIs(t, err, repository.ErrCheckViolation)
	})

	t.Run("trending candidates and categories", func(t *testing.T) {
		book := &data.Book{UserID: writer.ID, Title: "Recent", Category: "Fantasy", Genres: []string{"epic", "magic"}, Status: data.StatusDraft}
		require.NoError(t, repo.CreateBook(ctx, book))
		publishedAt := time.Now().Add(-48 * time.Hour)
		book.PublishedAt = &publishedAt
		require.NoError(t, repo.PublishBook(ctx, book))
		assert.Equal(t, data.StatusPublished, book.Status)

		candidates, err := repo.GetTrendingCandidates(ctx, time.Now().Add(-72*time.Hour))
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, book.ID, candidates[0].ID)

		candidates, err = repo.GetTrendingCandidates(ctx, time.Now().Add(-24*time.Hour))
		require.NoError(t, err)
		assert.Empty(t, candidates)

		categories, err := repo.GetCategoryCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Fantasy"}, categories.Categories)
		assert.Equal(t, []data.GenreCount{{Name: "epic", Count: 1}, {Name: "magic", Count: 1}}, categories.Genres)
	})

	t.Run("token lookup", func(t *testing.T) {
		_, err := db.ExecContext(ctx, `INSERT INTO tokens (hash, user_id, expiry, scope) VALUES ($1, $2, $3, $4)`,
			data.TokenHash("ABCDEFGHIJKLMNOPQRSTUVWXYZ"), reader.ID, time.Now().Add(time.Hour), data.ScopeAuthentication)
		require.NoError(t, err)
		user, err := repo.GetUserForToken(ctx, data.ScopeAuthentication, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
		require.NoError(t, err)
		assert.Equal(t, reader.ID, user.ID)
		_, err = repo.GetUserForToken(ctx, data.ScopeAuthentication, "ZZZZZZZZZZZZZZZZZZZZZZZZZZ")
		assert.ErrorIs(t, err, repository.ErrRecordNotFound)
	})
}
