package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/emzola/shelfwise/data"
	"github.com/emzola/shelfwise/internal/validator"
	"github.com/goccy/go-json"
)

const (
	MaxTrendingDays  = 365
	MaxTrendingLimit = 100
)

var emptyTrending = []byte(`{"items":[]}`)

type trending interface {
	Trending(ctx context.Context, days, limit int) ([]byte, error)
}

// Trending returns the JSON encoded ranking of books published in the last
// days days. A cached ranking is returned byte for byte until it expires.
func (s *service) Trending(ctx context.Context, days, limit int) ([]byte, error) {
	v := validator.New()
	v.Check(days >= 1 && days <= MaxTrendingDays, "days", "must be between 1 and 365")
	v.Check(limit >= 1 && limit <= MaxTrendingLimit, "limit", "must be between 1 and 100")
	if !v.Valid() {
		return nil, failedValidation(v)
	}
	key := fmt.Sprintf("trending:%d:%d", days, limit)
	if payload, ok := s.cache.Get(key); ok {
		return payload, nil
	}
	ranking, err := s.rankTrending(ctx, days, limit)
	if err != nil {
		s.degraded("trending", err)
		return emptyTrending, nil
	}
	payload, err := json.Marshal(ranking)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, payload, s.config.Cache.TrendingTTL)
	return payload, nil
}

type scoredBook struct {
	book  *data.Book
	score float64
}

func (s *service) rankTrending(ctx context.Context, days, limit int) (*data.Trending, error) {
	now := s.now()
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)
	candidates, err := s.repo.GetTrendingCandidates(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	scored := make([]scoredBook, 0, len(candidates))
	for _, book := range candidates {
		if !eligibleForTrending(book, cutoff) {
			continue
		}
		scored = append(scored, scoredBook{book: book, score: trendingScore(book, now)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		switch {
		case a.score != b.score:
			return a.score > b.score
		case a.book.AverageRating != b.book.AverageRating:
			return a.book.AverageRating > b.book.AverageRating
		case a.book.ReviewCount != b.book.ReviewCount:
			return a.book.ReviewCount > b.book.ReviewCount
		default:
			return a.book.ID < b.book.ID
		}
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	ranking := &data.Trending{Items: make([]*data.BookSummary, 0, len(scored))}
	if len(scored) == 0 {
		return ranking, nil
	}
	writerIDs := make([]int64, 0, len(scored))
	seen := make(map[int64]bool, len(scored))
	for _, sb := range scored {
		if !seen[sb.book.UserID] {
			seen[sb.book.UserID] = true
			writerIDs = append(writerIDs, sb.book.UserID)
		}
	}
	writers, err := s.repo.GetWriterSummaries(ctx, writerIDs)
	if err != nil {
		return nil, err
	}
	for _, sb := range scored {
		ranking.Items = append(ranking.Items, &data.BookSummary{
			ID:            sb.book.ID,
			Title:         sb.book.Title,
			Description:   sb.book.Description,
			Category:      sb.book.Category,
			Price:         sb.book.Price,
			CoverImage:    sb.book.CoverImage,
			Genres:        sb.book.Genres,
			Language:      sb.book.Language,
			Pages:         sb.book.Pages,
			AverageRating: sb.book.AverageRating,
			ReviewCount:   sb.book.ReviewCount,
			PublishedAt:   *sb.book.PublishedAt,
			Writer:        writers[sb.book.UserID],
		})
	}
	return ranking, nil
}

func eligibleForTrending(book *data.Book, cutoff time.Time) bool {
	return book.IsPublished() &&
		!book.PublishedAt.Before(cutoff) &&
		book.AverageRating >= data.TrendingMinRating &&
		book.ReviewCount >= data.TrendingMinReviews
}

// trendingScore weighs rating, review volume and whole days since publication.
// The age term grows with age, so older books within the window rank higher.
func trendingScore(book *data.Book, now time.Time) float64 {
	ageInDays := math.Floor(now.Sub(*book.PublishedAt).Hours() / 24)
	return book.AverageRating*10 + float64(book.ReviewCount)*2 + ageInDays
}
