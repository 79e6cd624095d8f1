package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/emzola/shelfwise/data"
)

type follows interface {
	CreateFollow(ctx context.Context, follow *data.Follow, activity *data.Activity) (bool, error)
	DeleteFollow(ctx context.Context, followerID, followingID int64, activity *data.Activity) (bool, error)
	FollowExists(ctx context.Context, followerID, followingID int64) (bool, error)
	CountFollowers(ctx context.Context, userID int64) (int64, error)
	GetFollowingIDs(ctx context.Context, userID int64) ([]int64, error)
	GetAllFollowersForUser(ctx context.Context, userID int64, filters data.Filters) ([]*data.User, data.Metadata, error)
}

// CreateFollow creates a follow edge and its activity in one transaction. An
// already existing edge is left untouched and no activity is written; the
// returned bool reports whether the edge was created.
func (r *repository) CreateFollow(ctx context.Context, follow *data.Follow, activity *data.Activity) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()
	query := `
		INSERT INTO follows (follower_id, following_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, following_id) DO NOTHING
		RETURNING id, created_at`
	err = tx.QueryRowContext(ctx, query, follow.FollowerID, follow.FollowingID).Scan(&follow.ID, &follow.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return false, nil
		default:
			return false, translateError(err)
		}
	}
	if err := insertActivity(ctx, tx, activity); err != nil {
		return false, fmt.Errorf("insert follow activity: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteFollow removes a follow edge and writes its activity in one
// transaction. The returned bool reports whether an edge was removed.
func (r *repository) DeleteFollow(ctx context.Context, followerID, followingID int64, activity *data.Activity) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()
	query := `
		DELETE FROM follows
		WHERE follower_id = $1 AND following_id = $2`
	result, err := tx.ExecContext(ctx, query, followerID, followingID)
	if err != nil {
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if rowsAffected == 0 {
		return false, nil
	}
	if err := insertActivity(ctx, tx, activity); err != nil {
		return false, fmt.Errorf("insert unfollow activity: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// FollowExists checks whether followerID follows followingID.
func (r *repository) FollowExists(ctx context.Context, followerID, followingID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2
		)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var exists bool
	err := r.db.QueryRowContext(ctx, query, followerID, followingID).Scan(&exists)
	return exists, err
}

// CountFollowers returns the number of users following userID.
func (r *repository) CountFollowers(ctx context.Context, userID int64) (int64, error) {
	query := `
		SELECT count(*)
		FROM follows
		WHERE following_id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var count int64
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	return count, err
}

// GetFollowingIDs returns the ids of every user userID follows.
func (r *repository) GetFollowingIDs(ctx context.Context, userID int64) ([]int64, error) {
	query := `
		SELECT following_id
		FROM follows
		WHERE follower_id = $1
		ORDER BY following_id ASC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// GetAllFollowersForUser retrieves a paginated list of the users following userID.
func (r *repository) GetAllFollowersForUser(ctx context.Context, userID int64, filters data.Filters) ([]*data.User, data.Metadata, error) {
	query := `
		SELECT count(*) OVER(), users.id, users.created_at, users.name, users.email, users.profile, users.bio, users.avatar, users.activated, users.version
		FROM follows
		INNER JOIN users ON follows.follower_id = users.id
		WHERE follows.following_id = $1
		ORDER BY follows.created_at DESC, follows.id DESC
		LIMIT $2 OFFSET $3`
	args := []interface{}{userID, filters.Limit(), filters.Offset()}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	totalRecords := 0
	users := []*data.User{}
	for rows.Next() {
		var user data.User
		err := rows.Scan(
			&totalRecords,
			&user.ID,
			&user.CreatedAt,
			&user.Name,
			&user.Email,
			&user.Profile,
			&user.Bio,
			&user.Avatar,
			&user.Activated,
			&user.Version,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		users = append(users, &user)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return users, metadata, nil
}
