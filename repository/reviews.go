package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/emzola/shelfwise/data"
)

type reviews interface {
	UpsertReview(ctx context.Context, review *data.Review) (bool, error)
	GetReview(ctx context.Context, reviewID int64) (*data.Review, error)
	DeleteReview(ctx context.Context, reviewID int64) error
	GetRatingsForBook(ctx context.Context, bookID int64) (data.Rating, error)
	GetAllReviewsForBook(ctx context.Context, bookID int64, filters data.Filters) ([]*data.Review, data.Metadata, error)
}

// UpsertReview creates the review of a user for a book or, if one already
// exists, overwrites its rating and comment. The returned bool reports whether
// a new record was created.
func (r *repository) UpsertReview(ctx context.Context, review *data.Review) (bool, error) {
	query := `
		INSERT INTO reviews (book_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (book_id, user_id) DO UPDATE
		SET rating = EXCLUDED.rating, comment = EXCLUDED.comment, updated_at = now(), version = reviews.version + 1
		RETURNING id, created_at, updated_at, version, (xmax = 0) AS inserted`
	args := []interface{}{review.BookID, review.UserID, review.Rating, review.Comment}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var inserted bool
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&review.ID,
		&review.CreatedAt,
		&review.UpdatedAt,
		&review.Version,
		&inserted,
	)
	if err != nil {
		return false, translateError(err)
	}
	return inserted, nil
}

// GetReview retrieves a review record.
func (r *repository) GetReview(ctx context.Context, reviewID int64) (*data.Review, error) {
	if reviewID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT reviews.id, reviews.book_id, reviews.user_id, users.name, reviews.created_at, reviews.updated_at, reviews.rating, reviews.comment, reviews.version
		FROM reviews
		INNER JOIN users ON reviews.user_id = users.id
		WHERE reviews.id = $1`
	var review data.Review
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, reviewID).Scan(
		&review.ID,
		&review.BookID,
		&review.UserID,
		&review.UserName,
		&review.CreatedAt,
		&review.UpdatedAt,
		&review.Rating,
		&review.Comment,
		&review.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &review, nil
}

// DeleteReview deletes a review record.
func (r *repository) DeleteReview(ctx context.Context, reviewID int64) error {
	if reviewID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM reviews
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, reviewID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// GetRatingsForBook retrieves the rating breakdown of a single book.
func (r *repository) GetRatingsForBook(ctx context.Context, bookID int64) (data.Rating, error) {
	query := `
		SELECT rating, count(*)
		FROM reviews
		WHERE book_id = $1
		GROUP BY rating`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, bookID)
	if err != nil {
		return data.Rating{}, err
	}
	defer rows.Close()
	ratings := data.Rating{}
	for rows.Next() {
		var (
			rating int8
			count  int64
		)
		if err := rows.Scan(&rating, &count); err != nil {
			return data.Rating{}, err
		}
		ratings.Add(rating, count)
	}
	if err = rows.Err(); err != nil {
		return data.Rating{}, err
	}
	return ratings, nil
}

// GetAllReviewsForBook retrieves a paginated list of the reviews of a book.
// Records can be sorted.
func (r *repository) GetAllReviewsForBook(ctx context.Context, bookID int64, filters data.Filters) ([]*data.Review, data.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), reviews.id, reviews.book_id, reviews.user_id, users.name, reviews.created_at, reviews.updated_at, reviews.rating, reviews.comment, reviews.version
		FROM reviews
		INNER JOIN users ON reviews.user_id = users.id
		WHERE reviews.book_id = $1
		ORDER BY reviews.%s %s, reviews.id DESC
		LIMIT $2 OFFSET $3`,
		filters.SortColumn(), filters.SortDirection(),
	)
	args := []interface{}{bookID, filters.Limit(), filters.Offset()}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	totalRecords := 0
	reviews := []*data.Review{}
	for rows.Next() {
		var review data.Review
		err := rows.Scan(
			&totalRecords,
			&review.ID,
			&review.BookID,
			&review.UserID,
			&review.UserName,
			&review.CreatedAt,
			&review.UpdatedAt,
			&review.Rating,
			&review.Comment,
			&review.Version,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		reviews = append(reviews, &review)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return reviews, metadata, nil
}
