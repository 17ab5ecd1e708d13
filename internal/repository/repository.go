package repository

import (
	"context"

	"folklore-server/internal/models"
)

// StoryRepository persists and queries folklore stories. No update or delete
// operation exists on purpose: moderation happens outside this service.
type StoryRepository interface {
	// Insert stores a fully assembled story and returns it with its
	// generated id.
	Insert(ctx context.Context, story *models.Story) (*models.Story, error)

	// List returns one page of stories matching the filter, newest first,
	// plus the total number of matching stories. The submitter email is
	// never included.
	List(ctx context.Context, filter models.StoryFilter, page, limit int64) ([]models.Story, int64, error)

	// GetByID returns a single story without the submitter email, or
	// models.ErrStoryNotFound. Malformed ids are treated as not found.
	GetByID(ctx context.Context, id string) (*models.Story, error)

	// AggregateStats computes the approved/pending totals and the
	// approved-only group-by-count breakdowns.
	AggregateStats(ctx context.Context) (*models.StoryStats, error)
}

// ContactRepository persists contact-form messages.
type ContactRepository interface {
	Insert(ctx context.Context, contact *models.Contact) (*models.Contact, error)
}

// StatsCache is a read-through cache in front of AggregateStats. A failed
// Get is reported as a miss; Set and Invalidate are best-effort.
type StatsCache interface {
	Get(ctx context.Context) (*models.StoryStats, bool)
	Set(ctx context.Context, stats *models.StoryStats)
	Invalidate(ctx context.Context)
}
