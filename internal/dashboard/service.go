package dashboard

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const summaryCacheKey = "dashboard:summary"

type Service struct {
	repo     RepositoryAPI
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewService builds the dashboard service. cache may be nil, in which case
// every request hits the database.
func NewService(repo RepositoryAPI, cache *redis.Client, cacheTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func (s *Service) GetSummary(ctx context.Context) (*Summary, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	byStatus, err := s.repo.CountByStatus()
	if err != nil {
		s.logger.Error("failed to count checklists by status", "error", err)
		return nil, err
	}
	bySector, err := s.repo.CountBySector()
	if err != nil {
		s.logger.Error("failed to count checklists by sector", "error", err)
		return nil, err
	}
	pending, err := s.repo.CountPending()
	if err != nil {
		s.logger.Error("failed to count pending checklists", "error", err)
		return nil, err
	}
	alerts, err := s.repo.CountAlerts()
	if err != nil {
		s.logger.Error("failed to count alerts", "error", err)
		return nil, err
	}

	var total int64
	for _, sc := range byStatus {
		total += sc.Count
	}

	summary := &Summary{
		Total:        total,
		ByStatus:     byStatus,
		BySector:     bySector,
		PendingCount: pending,
		AlertCount:   alerts,
	}

	s.toCache(ctx, summary)
	return summary, nil
}

func (s *Service) fromCache(ctx context.Context) *Summary {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, summaryCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("dashboard cache read failed", "error", err)
		}
		return nil
	}

	var summary Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		s.logger.Warn("dashboard cache entry corrupt, ignoring", "error", err)
		return nil
	}
	return &summary
}

func (s *Service) toCache(ctx context.Context, summary *Summary) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, summaryCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("dashboard cache write failed", "error", err)
	}
}
