package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"folklore-server/internal/models"
)

// Compile-time check that mongoContactRepository implements ContactRepository.
var _ ContactRepository = (*mongoContactRepository)(nil)

type mongoContactRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewMongoContactRepository creates a ContactRepository backed by the Contact
// collection.
func NewMongoContactRepository(db *mongo.Database, logger *zap.Logger) ContactRepository {
	return &mongoContactRepository{
		collection: db.Collection(contactCollection),
		logger:     logger.Named("MongoContactRepo"),
	}
}

func (r *mongoContactRepository) Insert(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	result, err := r.collection.InsertOne(ctx, contact)
	if err != nil {
		r.logger.Error("Failed to insert contact message", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		contact.ID = id
	}
	return contact, nil
}
