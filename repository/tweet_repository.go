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

type TweetRepository interface {
	Create(ctx context.Context, tweet *domain.Tweet) error
	FindByID(ctx context.Context, id string) (*domain.Tweet, error)
	FindByVideo(ctx context.Context, videoID string) ([]domain.Tweet, error)
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Tweet, error)
	Update(ctx context.Context, id string, content string) (*domain.Tweet, error)
	Delete(ctx context.Context, id string) error
	CountByVideo(ctx context.Context, videoID string) (int64, error)
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
	DeleteByVideo(ctx context.Context, videoID string) (int64, error)
}

type tweetRepository struct {
	collection *mongo.Collection
}

func NewTweetRepository(db *mongo.Database) TweetRepository {
	collection := db.Collection("tweets")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "video", Value: 1}}},
		{Keys: bson.D{{Key: "owner", Value: 1}}},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn(logger.EventDBError, "Failed to create tweet indexes", logger.Fields("error", err.Error()))
	}

	return &tweetRepository{collection: collection}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *domain.Tweet) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, tweet); err != nil {
		return apperror.Unavailable("failed to create tweet", err)
	}
	return nil
}

func (r *tweetRepository) FindByID(ctx context.Context, id string) (*domain.Tweet, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var tweet domain.Tweet
	if err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&tweet); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NotFound("tweet not found")
		}
		return nil, apperror.Unavailable("failed to fetch tweet", err)
	}
	return &tweet, nil
}

func (r *tweetRepository) FindByVideo(ctx context.Context, videoID string) ([]domain.Tweet, error) {
	return r.findMany(ctx, bson.M{"video": videoID})
}

func (r *tweetRepository) FindByOwner(ctx context.Context, ownerID string) ([]domain.Tweet, error) {
	return r.findMany(ctx, bson.M{"owner": ownerID})
}

func (r *tweetRepository) findMany(ctx context.Context, filter bson.M) ([]domain.Tweet, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, apperror.Unavailable("failed to fetch tweets", err)
	}
	defer cursor.Close(ctx)

	var tweets []domain.Tweet
	if err := cursor.All(ctx, &tweets); err != nil {
		return nil, apperror.Unavailable("failed to decode tweets", err)
	}
	return tweets, nil
}

func (r *tweetRepository) Update(ctx context.Context, id string, content string) (*domain.Tweet, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"content": content, "updated_at": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var tweet domain.Tweet
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&tweet); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NotFound("tweet not found")
		}
		return nil, apperror.Unavailable("failed to update tweet", err)
	}
	return &tweet, nil
}

func (r *tweetRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return apperror.Unavailable("failed to delete tweet", err)
	}
	if result.DeletedCount == 0 {
		return apperror.NotFound("tweet not found")
	}
	return nil
}

func (r *tweetRepository) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"video": videoID})
	if err != nil {
		return 0, apperror.Unavailable("failed to count tweets", err)
	}
	return count, nil
}

func (r *tweetRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	return r.deleteMany(ctx, bson.M{"owner": ownerID})
}

func (r *tweetRepository) DeleteByVideo(ctx context.Context, videoID string) (int64, error) {
	return r.deleteMany(ctx, bson.M{"video": videoID})
}

func (r *tweetRepository) deleteMany(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, apperror.Unavailable("failed to delete tweets", err)
	}
	return result.DeletedCount, nil
}
