package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/emzola/shelfwise/data"
	"github.com/lib/pq"
)

type users interface {
	CreateUser(ctx context.Context, user *data.User) error
	GetUser(ctx context.Context, ID int64) (*data.User, error)
	GetUserForToken(ctx context.Context, tokenScope, tokenPlaintext string) (*data.User, error)
	GetWriterSummaries(ctx context.Context, IDs []int64) (map[int64]*data.WriterSummary, error)
}

// CreateUser creates a user record.
func (r *repository) CreateUser(ctx context.Context, user *data.User) error {
	query := `
		INSERT INTO users (name, email, profile, bio, avatar, activated)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version`
	args := []interface{}{user.Name, user.Email, user.Profile, user.Bio, user.Avatar, user.Activated}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.Version)
	if err != nil {
		return translateError(err)
	}
	return nil
}

// GetUser retrieves a user record by its ID.
func (r *repository) GetUser(ctx context.Context, ID int64) (*data.User, error) {
	if ID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, created_at, name, email, profile, bio, avatar, activated, version
		FROM users
		WHERE id = $1`
	var user data.User
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, ID).Scan(
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
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &user, nil
}

// GetUserForToken returns the user record associated with an unexpired token.
func (r *repository) GetUserForToken(ctx context.Context, tokenScope, tokenPlaintext string) (*data.User, error) {
	query := `
		SELECT users.id, users.created_at, users.name, users.email, users.profile, users.bio, users.avatar, users.activated, users.version
		FROM users
		INNER JOIN tokens
		ON users.id = tokens.user_id
		WHERE tokens.hash = $1
		AND tokens.scope = $2
		AND tokens.expiry > $3`
	args := []interface{}{data.TokenHash(tokenPlaintext), tokenScope, time.Now()}
	var user data.User
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
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
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &user, nil
}

// GetWriterSummaries retrieves the public profile and follower count of every
// user in IDs with a single query. Unknown ids are absent from the result.
func (r *repository) GetWriterSummaries(ctx context.Context, IDs []int64) (map[int64]*data.WriterSummary, error) {
	summaries := make(map[int64]*data.WriterSummary, len(IDs))
	if len(IDs) == 0 {
		return summaries, nil
	}
	query := `
		SELECT users.id, users.name, users.profile, users.bio, users.avatar, count(follows.id)
		FROM users
		LEFT JOIN follows ON follows.following_id = users.id
		WHERE users.id = ANY($1)
		GROUP BY users.id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, pq.Array(IDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var summary data.WriterSummary
		err := rows.Scan(
			&summary.ID,
			&summary.Username,
			&summary.Profile,
			&summary.Bio,
			&summary.Avatar,
			&summary.FollowersCount,
		)
		if err != nil {
			return nil, err
		}
		summaries[summary.ID] = &summary
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}
