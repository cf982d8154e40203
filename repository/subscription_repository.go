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

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) error
	FindBySubscriberAndChannel(ctx context.Context, subscriberID, channelID string) (*domain.Subscription, error)
	FindByChannel(ctx context.Context, channelID string) ([]domain.Subscription, error)
	FindBySubscriber(ctx context.Context, subscriberID string) ([]domain.Subscription, error)
	Delete(ctx context.Context, id string) error
	CountByChannel(ctx context.Context, channelID string) (int64, error)
	CountBySubscriber(ctx context.Context, subscriberID string) (int64, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

type subscriptionRepository struct {
	collection *mongo.Collection
}

func NewSubscriptionRepository(db *mongo.Database) SubscriptionRepository {
	collection := db.Collection("subscriptions")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "subscriber", Value: 1}, {Key: "channel", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "channel", Value: 1}}},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn(logger.EventDBError, "Failed to create subscription indexes", logger.Fields("error", err.Error()))
	}

	return &subscriptionRepository{collection: collection}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, sub); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.Conflict("already subscribed to channel %s", sub.Channel)
		}
		return apperror.Unavailable("failed to create subscription", err)
	}
	return nil
}

func (r *subscriptionRepository) FindBySubscriberAndChannel(ctx context.Context, subscriberID, channelID string) (*domain.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sub domain.Subscription
	err := r.collection.FindOne(ctx, bson.M{"subscriber": subscriberID, "channel": channelID}).Decode(&sub)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NotFound("subscription not found")
		}
		return nil, apperror.Unavailable("failed to fetch subscription", err)
	}
	return &sub, nil
}

func (r *subscriptionRepository) FindByChannel(ctx context.Context, channelID string) ([]domain.Subscription, error) {
	return r.findMany(ctx, bson.M{"channel": channelID})
}

func (r *subscriptionRepository) FindBySubscriber(ctx context.Context, subscriberID string) ([]domain.Subscription, error) {
	return r.findMany(ctx, bson.M{"subscriber": subscriberID})
}

func (r *subscriptionRepository) findMany(ctx context.Context, filter bson.M) ([]domain.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, apperror.Unavailable("failed to fetch subscriptions", err)
	}
	defer cursor.Close(ctx)

	var subs []domain.Subscription
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, apperror.Unavailable("failed to decode subscriptions", err)
	}
	return subs, nil
}

func (r *subscriptionRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return apperror.Unavailable("failed to delete subscription", err)
	}
	if result.DeletedCount == 0 {
		return apperror.NotFound("subscription not found")
	}
	return nil
}

func (r *subscriptionRepository) CountByChannel(ctx context.Context, channelID string) (int64, error) {
	return r.count(ctx, bson.M{"channel": channelID})
}

func (r *subscriptionRepository) CountBySubscriber(ctx context.Context, subscriberID string) (int64, error) {
	return r.count(ctx, bson.M{"subscriber": subscriberID})
}

func (r *subscriptionRepository) count(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, apperror.Unavailable("failed to count subscriptions", err)
	}
	return count, nil
}

// DeleteByUser removes subscriptions where the user is on either side, in a
// single filter so a retry cannot land between two passes.
func (r *subscriptionRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"subscriber": userID},
		bson.M{"channel": userID},
	}}
	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, apperror.Unavailable("failed to delete subscriptions", err)
	}
	return result.DeletedCount, nil
}
