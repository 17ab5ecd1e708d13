package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"folklore-server/internal/models"
	repomocks "folklore-server/internal/repository/mocks"
)

func TestStatsCacheHit(t *testing.T) {
	stories := new(repomocks.StoryRepository)
	cache := new(repomocks.StatsCache)
	svc := NewStoryService(stories, cache, zap.NewNop())

	cached := &models.StoryStats{TotalStories: 7}
	cache.On("Get", mock.Anything).Return(cached, true)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cached, stats)

	stories.AssertNotCalled(t, "AggregateStats", mock.Anything)
}

func TestStatsCacheMissAggregatesAndCaches(t *testing.T) {
	stories := new(repomocks.StoryRepository)
	cache := new(repomocks.StatsCache)
	svc := NewStoryService(stories, cache, zap.NewNop())

	fresh := &models.StoryStats{
		TotalStories:   3,
		PendingStories: 1,
		CategoriesStats: []models.StatBucket{
			{ID: "legend", Count: 2},
			{ID: "myth", Count: 1},
		},
	}
	cache.On("Get", mock.Anything).Return(nil, false)
	cache.On("Set", mock.Anything, fresh).Return()
	stories.On("AggregateStats", mock.Anything).Return(fresh, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fresh, stats)

	// Category buckets cover all approved stories.
	var sum int64
	for _, bucket := range stats.CategoriesStats {
		sum += bucket.Count
	}
	assert.Equal(t, stats.TotalStories, sum)

	cache.AssertCalled(t, "Set", mock.Anything, fresh)
}

func TestStatsAggregationErrorPropagates(t *testing.T) {
	stories := new(repomocks.StoryRepository)
	cache := new(repomocks.StatsCache)
	svc := NewStoryService(stories, cache, zap.NewNop())

	cache.On("Get", mock.Anything).Return(nil, false)
	stories.On("AggregateStats", mock.Anything).Return(nil, models.ErrPersistence)

	_, err := svc.Stats(context.Background())
	require.ErrorIs(t, err, models.ErrPersistence)

	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestListPassesFilterThrough(t *testing.T) {
	stories := new(repomocks.StoryRepository)
	cache := new(repomocks.StatsCache)
	svc := NewStoryService(stories, cache, zap.NewNop())

	filter := models.StoryFilter{Status: models.StatusApproved, Culture: "Sami"}
	stories.On("List", mock.Anything, filter, int64(2), int64(20)).
		Return([]models.Story{{Title: "Stallo"}}, int64(21), nil)

	result, total, err := svc.List(context.Background(), filter, 2, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(21), total)
	require.Len(t, result, 1)
	assert.Equal(t, "Stallo", result[0].Title)
}
