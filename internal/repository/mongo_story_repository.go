package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"folklore-server/internal/models"
)

// Compile-time check that mongoStoryRepository implements StoryRepository.
var _ StoryRepository = (*mongoStoryRepository)(nil)

type mongoStoryRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewMongoStoryRepository creates a StoryRepository backed by the Stories
// collection.
func NewMongoStoryRepository(db *mongo.Database, logger *zap.Logger) StoryRepository {
	return &mongoStoryRepository{
		collection: db.Collection(storiesCollection),
		logger:     logger.Named("MongoStoryRepo"),
	}
}

func (r *mongoStoryRepository) Insert(ctx context.Context, story *models.Story) (*models.Story, error) {
	now := time.Now().UTC()
	if story.SubmittedAt.IsZero() {
		story.SubmittedAt = now
	}
	story.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, story)
	if err != nil {
		r.logger.Error("Failed to insert story", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected inserted id type %T", models.ErrPersistence, result.InsertedID)
	}
	story.ID = id

	r.logger.Info("Story saved",
		zap.String("storyID", id.Hex()),
		zap.String("title", story.Title),
		zap.Int("audioFiles", len(story.AudioFiles)),
		zap.Int("imageFiles", len(story.ImageFiles)),
	)
	return story, nil
}

// buildListFilter turns the equality predicates into a bson document.
// Kept separate so the query shape is unit-testable.
func buildListFilter(filter models.StoryFilter) bson.M {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Culture != "" {
		query["culture"] = filter.Culture
	}
	if filter.SubmissionType != "" {
		query["submissionType"] = filter.SubmissionType
	}
	return query
}

func (r *mongoStoryRepository) List(ctx context.Context, filter models.StoryFilter, page, limit int64) ([]models.Story, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	query := buildListFilter(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: count failed: %v", models.ErrPersistence, err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "submittedAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit).
		SetProjection(bson.M{"submitterEmail": 0})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: find failed: %v", models.ErrPersistence, err)
	}
	defer cursor.Close(ctx)

	stories := make([]models.Story, 0, limit)
	if err := cursor.All(ctx, &stories); err != nil {
		return nil, 0, fmt.Errorf("%w: cursor decode failed: %v", models.ErrPersistence, err)
	}

	return stories, total, nil
}

func (r *mongoStoryRepository) GetByID(ctx context.Context, id string) (*models.Story, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id cannot match any story.
		return nil, models.ErrStoryNotFound
	}

	opts := options.FindOne().SetProjection(bson.M{"submitterEmail": 0})

	var story models.Story
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}, opts).Decode(&story)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrStoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find one failed: %v", models.ErrPersistence, err)
	}

	return &story, nil
}

// groupCountPipeline groups approved stories by the given field and sorts
// buckets by descending count.
func groupCountPipeline(field string) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"status": models.StatusApproved}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}}},
		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
	}
}

func (r *mongoStoryRepository) aggregateBuckets(ctx context.Context, field string) ([]models.StatBucket, error) {
	cursor, err := r.collection.Aggregate(ctx, groupCountPipeline(field))
	if err != nil {
		return nil, fmt.Errorf("%w: aggregate by %s failed: %v", models.ErrPersistence, field, err)
	}
	defer cursor.Close(ctx)

	buckets := make([]models.StatBucket, 0)
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("%w: aggregate decode failed: %v", models.ErrPersistence, err)
	}
	return buckets, nil
}

func (r *mongoStoryRepository) AggregateStats(ctx context.Context) (*models.StoryStats, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{"status": models.StatusApproved})
	if err != nil {
		return nil, fmt.Errorf("%w: approved count failed: %v", models.ErrPersistence, err)
	}

	pending, err := r.collection.CountDocuments(ctx, bson.M{"status": models.StatusPending})
	if err != nil {
		return nil, fmt.Errorf("%w: pending count failed: %v", models.ErrPersistence, err)
	}

	categories, err := r.aggregateBuckets(ctx, "category")
	if err != nil {
		return nil, err
	}
	cultures, err := r.aggregateBuckets(ctx, "culture")
	if err != nil {
		return nil, err
	}
	submissionTypes, err := r.aggregateBuckets(ctx, "submissionType")
	if err != nil {
		return nil, err
	}

	return &models.StoryStats{
		TotalStories:        total,
		PendingStories:      pending,
		CategoriesStats:     categories,
		CulturesStats:       cultures,
		SubmissionTypeStats: submissionTypes,
	}, nil
}
