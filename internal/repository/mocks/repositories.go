package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"folklore-server/internal/models"
)

// Mock StoryRepository
type StoryRepository struct {
	mock.Mock
}

func (m *StoryRepository) Insert(ctx context.Context, story *models.Story) (*models.Story, error) {
	args := m.Called(ctx, story)
	stored, _ := args.Get(0).(*models.Story)
	return stored, args.Error(1)
}

func (m *StoryRepository) List(ctx context.Context, filter models.StoryFilter, page, limit int64) ([]models.Story, int64, error) {
	args := m.Called(ctx, filter, page, limit)
	stories, _ := args.Get(0).([]models.Story)
	total, _ := args.Get(1).(int64)
	return stories, total, args.Error(2)
}

func (m *StoryRepository) GetByID(ctx context.Context, id string) (*models.Story, error) {
	args := m.Called(ctx, id)
	story, _ := args.Get(0).(*models.Story)
	return story, args.Error(1)
}

func (m *StoryRepository) AggregateStats(ctx context.Context) (*models.StoryStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*models.StoryStats)
	return stats, args.Error(1)
}

// Mock ContactRepository
type ContactRepository struct {
	mock.Mock
}

func (m *ContactRepository) Insert(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	args := m.Called(ctx, contact)
	stored, _ := args.Get(0).(*models.Contact)
	return stored, args.Error(1)
}

// Mock StatsCache
type StatsCache struct {
	mock.Mock
}

func (m *StatsCache) Get(ctx context.Context) (*models.StoryStats, bool) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*models.StoryStats)
	return stats, args.Bool(1)
}

func (m *StatsCache) Set(ctx context.Context, stats *models.StoryStats) {
	m.Called(ctx, stats)
}

func (m *StatsCache) Invalidate(ctx context.Context) {
	m.Called(ctx)
}
