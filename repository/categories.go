package repository

import (
	"context"
	"time"

	"github.com/emzola/shelfwise/data"
)

type categories interface {
	GetCategoryCounts(ctx context.Context) (*data.Categories, error)
}

// GetCategoryCounts retrieves the distinct categories of published books and
// the number of published books tagged with each genre.
func (r *repository) GetCategoryCounts(ctx context.Context) (*data.Categories, error) {
	categoryQuery := `
		SELECT DISTINCT category
		FROM books
		WHERE status = 'published' AND category <> ''
		ORDER BY category ASC`
	genreQuery := `
		SELECT genre, count(*)
		FROM books, unnest(books.genres) AS genre
		WHERE books.status = 'published'
		GROUP BY genre
		ORDER BY count(*) DESC, genre ASC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	result := &data.Categories{
		Categories: []string{},
		Genres:     []data.GenreCount{},
	}
	rows, err := r.db.QueryContext(ctx, categoryQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		result.Categories = append(result.Categories, category)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()
	rows, err = r.db.QueryContext(ctx, genreQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var genre data.GenreCount
		if err := rows.Scan(&genre.Name, &genre.Count); err != nil {
			return nil, err
		}
		result.Genres = append(result.Genres, genre)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
