package memory

import (
	"context"
	"sort"

	"github.com/emzola/shelfwise/data"
)

func (s *Store) GetCategoryCounts(_ context.Context) (*data.Categories, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpGetCategoryCounts); err != nil {
		return nil, err
	}
	categories := map[string]bool{}
	genres := map[string]int64{}
	for _, book := range s.books {
		if book.Status != data.StatusPublished {
			continue
		}
		if book.Category != "" {
			categories[book.Category] = true
		}
		for _, genre := range book.Genres {
			genres[genre]++
		}
	}
	result := &data.Categories{
		Categories: make([]string, 0, len(categories)),
		Genres:     make([]data.GenreCount, 0, len(genres)),
	}
	for category := range categories {
		result.Categories = append(result.Categories, category)
	}
	sort.Strings(result.Categories)
	for name, count := range genres {
		result.Genres = append(result.Genres, data.GenreCount{Name: name, Count: count})
	}
	sort.Slice(result.Genres, func(i, j int) bool {
		if result.Genres[i].Count == result.Genres[j].Count {
			return result.Genres[i].Name < result.Genres[j].Name
		}
		return result.Genres[i].Count > result.Genres[j].Count
	})
	return result, nil
}
