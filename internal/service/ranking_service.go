package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"campusforum/internal/cache"
	"campusforum/internal/middleware"
	"campusforum/internal/observability"
	"campusforum/internal/ranking"
)

// RankingFetcher retrieves a league table for a course sector.
type RankingFetcher interface {
	Fetch(ctx context.Context, course string) ranking.Result
}

type RankingService struct {
	fetcher  RankingFetcher
	cacheTTL time.Duration
}

var errNotCacheable = errors.New("ranking result not cacheable")

func NewRankingService(fetcher RankingFetcher, cacheTTL time.Duration) *RankingService {
	if cacheTTL <= 0 {
		cacheTTL = cache.RankingTTL
	}
	return &RankingService{fetcher: fetcher, cacheTTL: cacheTTL}
}

// Sectors returns the course sectors that can be looked up.
func (s *RankingService) Sectors() []ranking.Sector {
	return ranking.Sectors()
}

// Classement returns the ranking for course. Successful results are cached;
// failures are logged, counted, and returned as typed results.
func (s *RankingService) Classement(ctx context.Context, course string) ranking.Result {
	if _, ok := ranking.Lookup(course); !ok {
		res := s.fetcher.Fetch(ctx, course)
		s.record(ctx, res)
		return res
	}

	var res ranking.Result
	err := cache.Aside(ctx, cache.RankingKey(course), &res, s.cacheTTL, func() error {
		res = s.fetcher.Fetch(ctx, course)
		s.record(ctx, res)
		if !res.OK() {
			return errNotCacheable
		}
		return nil
	})
	if err != nil && !errors.Is(err, errNotCacheable) {
		middleware.Logger.ErrorContext(ctx, "ranking lookup failed", slog.String("error", err.Error()))
	}
	return res
}

func (s *RankingService) record(ctx context.Context, res ranking.Result) {
	observability.RankingFetches.WithLabelValues(string(res.Status)).Inc()
	if res.OK() {
		middleware.Logger.InfoContext(ctx, "ranking fetched",
			slog.String("course", res.Course),
			slog.Int("universities", len(res.Universities)),
		)
		return
	}
	middleware.Logger.WarnContext(ctx, "ranking lookup failed",
		slog.String("course", res.Course),
		slog.String("status", string(res.Status)),
		slog.String("error", res.Error),
	)
}
