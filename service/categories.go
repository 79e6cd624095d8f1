package service

import (
	"context"

	"github.com/goccy/go-json"
)

const categoriesCacheKey = "categories"

var emptyCategories = []byte(`{"categories":[],"genres":[]}`)

type categories interface {
	Categories(ctx context.Context) ([]byte, error)
}

// Categories returns the JSON encoded categories and genre counts of the
// published catalogue. The payload is cached under a single key.
func (s *service) Categories(ctx context.Context) ([]byte, error) {
	if payload, ok := s.cache.Get(categoriesCacheKey); ok {
		return payload, nil
	}
	counts, err := s.repo.GetCategoryCounts(ctx)
	if err != nil {
		s.degraded("categories", err)
		return emptyCategories, nil
	}
	payload, err := json.Marshal(counts)
	if err != nil {
		return nil, err
	}
	s.cache.Set(categoriesCacheKey, payload, s.config.Cache.CategoriesTTL)
	return payload, nil
}
