package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/streamhive/video-service/apperror"
	"github.com/streamhive/video-service/domain"
	"github.com/streamhive/video-service/logger"
)

type PremiumRepository interface {
	Create(ctx context.Context, premium *domain.Premium) error
	FindByID(ctx context.Context, id string) (*domain.Premium, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Premium, error)
	FindLatestByUser(ctx context.Context, userID string) (*domain.Premium, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

type premiumRepository struct {
	collection *mongo.Collection
}

func NewPremiumRepository(db *mongo.Database) PremiumRepository {
	collection := db.Collection("premiums")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "closing_date", Value: -1}}},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn(logger.EventDBError, "Failed to create premium indexes", logger.Fields("error", err.Error()))
	}

	return &premiumRepository{collection: collection}
}

func (r *premiumRepository) Create(ctx context.Context, premium *domain.Premium) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, premium); err != nil {
		return apperror.Unavailable("failed to create premium membership", err)
	}
	return nil
}

func (r *premiumRepository) FindByID(ctx context.Context, id string) (*domain.Premium, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var premium domain.Premium
	if err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&premium); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NotFound("premium membership not found")
		}
		return nil, apperror.Unavailable("failed to fetch premium membership", err)
	}
	return &premium, nil
}

func (r *premiumRepository) FindByUser(ctx context.Context, userID string) ([]domain.Premium, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"user": userID},
		options.Find().SetSort(bson.D{{Key: "closing_date", Value: -1}}))
	if err != nil {
		return nil, apperror.Unavailable("failed to fetch premium memberships", err)
	}
	defer cursor.Close(ctx)

	var premiums []domain.Premium
	if err := cursor.All(ctx, &premiums); err != nil {
		return nil, apperror.Unavailable("failed to decode premium memberships", err)
	}
	return premiums, nil
}

func (r *premiumRepository) FindLatestByUser(ctx context.Context, userID string) (*domain.Premium, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "closing_date", Value: -1}})
	var premium domain.Premium
	if err := r.collection.FindOne(ctx, bson.M{"user": userID}, opts).Decode(&premium); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NotFound("no premium membership for user")
		}
		return nil, apperror.Unavailable("failed to fetch premium membership", err)
	}
	return &premium, nil
}

func (r *premiumRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return apperror.Unavailable("failed to delete premium membership", err)
	}
	if result.DeletedCount == 0 {
		return apperror.NotFound("premium membership not found")
	}
	return nil
}

func (r *premiumRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"user": userID})
	if err != nil {
		return 0, apperror.Unavailable("failed to delete premium memberships", err)
	}
	return result.DeletedCount, nil
}
