package service

import (
	"time"

	"github.com/emzola/shelfwise/config"
	"github.com/emzola/shelfwise/data"
	"github.com/emzola/shelfwise/internal/cache"
	"github.com/emzola/shelfwise/internal/jsonlog"
	"github.com/emzola/shelfwise/internal/metrics"
	"github.com/emzola/shelfwise/repository"
)

const (
	defaultTrendingTTL   = 10 * time.Minute
	defaultCategoriesTTL = 15 * time.Minute
)

type Service interface {
	books
	reviews
	ratings
	follows
	feed
	trending
	categories
	users
}

// activityRecorder is the best-effort sink for activities written outside a
// follow transaction.
type activityRecorder interface {
	Record(activityType data.ActivityType, userID, targetID int64, metadata map[string]any)
}

type service struct {
	config   config.Config
	logger   *jsonlog.Logger
	repo     repository.Repository
	cache    *cache.Cache
	recorder activityRecorder
	now      func() time.Time
}

// New creates a new instance of Service.
func New(cfg config.Config, logger *jsonlog.Logger, repo repository.Repository, cache *cache.Cache, recorder activityRecorder) *service {
	if cfg.Cache.TrendingTTL <= 0 {
		cfg.Cache.TrendingTTL = defaultTrendingTTL
	}
	if cfg.Cache.CategoriesTTL <= 0 {
		cfg.Cache.CategoriesTTL = defaultCategoriesTTL
	}
	return &service{
		config:   cfg,
		logger:   logger,
		repo:     repo,
		cache:    cache,
		recorder: recorder,
		now:      time.Now,
	}
}

// degraded logs a storage failure on a read path that answers with an empty
// result instead of an error.
func (s *service) degraded(operation string, err error) {
	metrics.DegradedReads.WithLabelValues(operation).Inc()
	s.logger.PrintError(err, map[string]string{
		"operation": operation,
	})
}
