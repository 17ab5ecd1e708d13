package service

import (
	"context"

	"go.uber.org/zap"

	"folklore-server/internal/models"
	"folklore-server/internal/repository"
)

// StoryService exposes the read side of the story catalog: listing,
// single-story retrieval and aggregate statistics.
type StoryService struct {
	stories    repository.StoryRepository
	statsCache repository.StatsCache
	logger     *zap.Logger
}

// NewStoryService creates a StoryService.
func NewStoryService(stories repository.StoryRepository, statsCache repository.StatsCache, logger *zap.Logger) *StoryService {
	return &StoryService{
		stories:    stories,
		statsCache: statsCache,
		logger:     logger.Named("StoryService"),
	}
}

// List returns one page of stories matching the filter plus the total count.
func (s *StoryService) List(ctx context.Context, filter models.StoryFilter, page, limit int64) ([]models.Story, int64, error) {
	return s.stories.List(ctx, filter, page, limit)
}

// GetByID returns a single story or models.ErrStoryNotFound.
func (s *StoryService) GetByID(ctx context.Context, id string) (*models.Story, error) {
	return s.stories.GetByID(ctx, id)
}

// Stats returns the aggregate statistics, read through the cache. Cache
// failures degrade to a direct aggregation.
func (s *StoryService) Stats(ctx context.Context) (*models.StoryStats, error) {
	if stats, ok := s.statsCache.Get(ctx); ok {
		return stats, nil
	}

	stats, err := s.stories.AggregateStats(ctx)
	if err != nil {
		return nil, err
	}

	s.statsCache.Set(ctx, stats)
	return stats, nil
}
