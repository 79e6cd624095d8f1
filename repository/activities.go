package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/emzola/shelfwise/data"
	"github.com/goccy/go-json"
	"github.com/lib/pq"
)

type activities interface {
	InsertActivity(ctx context.Context, activity *data.Activity) error
	GetActivitiesForActors(ctx context.Context, actorIDs []int64, limit, offset int) ([]*data.Activity, int, error)
	GetAllActivities(ctx context.Context, limit, offset int) ([]*data.Activity, int, error)
}

// InsertActivity appends an activity record.
func (r *repository) InsertActivity(ctx context.Context, activity *data.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return insertActivity(ctx, r.db, activity)
}

func insertActivity(ctx context.Context, q querier, activity *data.Activity) error {
	metadata, err := json.Marshal(activity.Metadata)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO activities (user_id, activity_type, target_id, metadata)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	args := []interface{}{activity.UserID, activity.Type, activity.TargetID, metadata}
	err = q.QueryRowContext(ctx, query, args...).Scan(&activity.ID, &activity.CreatedAt)
	if err != nil {
		return translateError(err)
	}
	return nil
}

// GetActivitiesForActors retrieves a page of activities performed by any of
// actorIDs, newest first, along with the total number of matching records.
func (r *repository) GetActivitiesForActors(ctx context.Context, actorIDs []int64, limit, offset int) ([]*data.Activity, int, error) {
	countQuery := `
		SELECT count(*)
		FROM activities
		WHERE user_id = ANY($1)`
	query := `
		SELECT activities.id, activities.user_id, activities.activity_type, activities.target_id, activities.metadata, activities.created_at, users.id, users.name, users.avatar
		FROM activities
		INNER JOIN users ON activities.user_id = users.id
		WHERE activities.user_id = ANY($1)
		ORDER BY activities.created_at DESC, activities.id DESC
		LIMIT $2 OFFSET $3`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var total int
	err := r.db.QueryRowContext(ctx, countQuery, pq.Array(actorIDs)).Scan(&total)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx, query, pq.Array(actorIDs), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	activities, err := scanActivities(rows)
	if err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}

// GetAllActivities retrieves a page of all activities, newest first, along
// with the total number of records.
func (r *repository) GetAllActivities(ctx context.Context, limit, offset int) ([]*data.Activity, int, error) {
	countQuery := `
		SELECT count(*)
		FROM activities`
	query := `
		SELECT activities.id, activities.user_id, activities.activity_type, activities.target_id, activities.metadata, activities.created_at, users.id, users.name, users.avatar
		FROM activities
		INNER JOIN users ON activities.user_id = users.id
		ORDER BY activities.created_at DESC, activities.id DESC
		LIMIT $1 OFFSET $2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var total int
	err := r.db.QueryRowContext(ctx, countQuery).Scan(&total)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	activities, err := scanActivities(rows)
	if err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}

func scanActivities(rows *sql.Rows) ([]*data.Activity, error) {
	defer rows.Close()
	activities := []*data.Activity{}
	for rows.Next() {
		var (
			activity data.Activity
			actor    data.ActorSummary
			metadata []byte
		)
		err := rows.Scan(
			&activity.ID,
			&activity.UserID,
			&activity.Type,
			&activity.TargetID,
			&metadata,
			&activity.CreatedAt,
			&actor.ID,
			&actor.Name,
			&actor.Avatar,
		)
		if err != nil {
			return nil, err
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &activity.Metadata); err != nil {
				return nil, err
			}
		}
		activity.Actor = &actor
		activities = append(activities, &activity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return activities, nil
}
