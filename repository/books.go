package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/emzola/shelfwise/data"
	"github.com/lib/pq"
)

type books interface {
	CreateBook(ctx context.Context, book *data.Book) error
	GetBook(ctx context.Context, ID int64) (*data.Book, error)
	PublishBook(ctx context.Context, book *data.Book) error
	UpdateBookRatings(ctx context.Context, bookID int64, averageRating float64, reviewCount int64) error
	GetTrendingCandidates(ctx context.Context, cutoff time.Time) ([]*data.Book, error)
}

// CreateBook creates a new draft book record.
func (r *repository) CreateBook(ctx context.Context, book *data.Book) error {
	query := `
		INSERT INTO books (user_id, title, description, category, genres, language, pages, price, cover_image, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, version`
	genres := book.Genres
	if genres == nil {
		genres = []string{}
	}
	args := []interface{}{
		book.UserID,
		book.Title,
		book.Description,
		book.Category,
		pq.Array(genres),
		book.Language,
		book.Pages,
		book.Price,
		book.CoverImage,
		book.Status,
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&book.ID, &book.CreatedAt, &book.Version)
	if err != nil {
		return translateError(err)
	}
	return nil
}

// GetBook retrieves a book record by its ID.
func (r *repository) GetBook(ctx context.Context, ID int64) (*data.Book, error) {
	if ID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, user_id, created_at, title, description, category, genres, language, pages, price, cover_image, status, published_at, average_rating, review_count, views, sales, version
		FROM books
		WHERE id = $1`
	var book data.Book
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, ID).Scan(
		&book.ID,
		&book.UserID,
		&book.CreatedAt,
		&book.Title,
		&book.Description,
		&book.Category,
		pq.Array(&book.Genres),
		&book.Language,
		&book.Pages,
		&book.Price,
		&book.CoverImage,
		&book.Status,
		&book.PublishedAt,
		&book.AverageRating,
		&book.ReviewCount,
		&book.Views,
		&book.Sales,
		&book.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}

// PublishBook moves a draft to published. The version check guards against
// concurrent publishes of the same draft.
func (r *repository) PublishBook(ctx context.Context, book *data.Book) error {
	query := `
		UPDATE books
		SET status = 'published', published_at = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING status, version`
	args := []interface{}{book.PublishedAt, book.ID, book.Version}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&book.Status, &book.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	return nil
}

// UpdateBookRatings overwrites the denormalized rating aggregates of a book.
// There is no version check: the last recompute wins.
func (r *repository) UpdateBookRatings(ctx context.Context, bookID int64, averageRating float64, reviewCount int64) error {
	query := `
		UPDATE books
		SET average_rating = $1, review_count = $2
		WHERE id = $3`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, averageRating, reviewCount, bookID)
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

// GetTrendingCandidates retrieves the published books whose publication date
// falls on or after cutoff.
func (r *repository) GetTrendingCandidates(ctx context.Context, cutoff time.Time) ([]*data.Book, error) {
	query := `
		SELECT id, user_id, created_at, title, description, category, genres, language, pages, price, cover_image, status, published_at, average_rating, review_count, views, sales, version
		FROM books
		WHERE status = 'published' AND published_at IS NOT NULL AND published_at >= $1
		ORDER BY id ASC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	books := []*data.Book{}
	for rows.Next() {
		var book data.Book
		err := rows.Scan(
			&book.ID,
			&book.UserID,
			&book.CreatedAt,
			&book.Title,
			&book.Description,
			&book.Category,
			pq.Array(&book.Genres),
			&book.Language,
			&book.Pages,
			&book.Price,
			&book.CoverImage,
			&book.Status,
			&book.PublishedAt,
			&book.AverageRating,
			&book.ReviewCount,
			&book.Views,
			&book.Sales,
			&book.Version,
		)
		if err != nil {
			return nil, err
		}
		books = append(books, &book)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}
