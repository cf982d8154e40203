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

type LikeRepository interface {
	Create(ctx context.Context, like *domain.Like) error
	FindByUserAndVideo(ctx context.Context, userID, videoID string) (*domain.Like, error)
	FindByVideo(ctx context.Context, videoID string) ([]domain.Like, error)
	Delete(ctx context.Context, id string) error
	CountByVideo(ctx context.Context, videoID string) (int64, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	DeleteByVideo(ctx context.Context, videoID string) (int64, error)
}

type likeRepository struct {
	collection *mongo.Collection
}

func NewLikeRepository(db *mongo.Database) LikeRepository {
	collection := db.Collection("likes")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "liked_by", Value: 1}, {Key: "video", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "video", Value: 1}}},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn(logger.EventDBError, "Failed to create like indexes", logger.Fields("error", err.Error()))
	}

	return &likeRepository{collection: collection}
}

func (r *likeRepository) Create(ctx context.Context, like *domain.Like) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, like); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.Conflict("video %s already liked by this user", like.Video)
		}
		return apperror.Unavailable("failed to create like", err)
	}
	return nil
}

func (r *likeRepository) FindByUserAndVideo(ctx context.Context, userID, videoID string) (*domain.Like, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var like domain.Like
	err := r.collection.FindOne(ctx, bson.M{"liked_by": userID, "video": videoID}).Decode(&like)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NotFound("like not found")
		}
		return nil, apperror.Unavailable("failed to fetch like", err)
	}
	return &like, nil
}

func (r *likeRepository) FindByVideo(ctx context.Context, videoID string) ([]domain.Like, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"video": videoID})
	if err != nil {
		return nil, apperror.Unavailable("failed to fetch likes", err)
	}
	defer cursor.Close(ctx)

	var likes []domain.Like
	if err := cursor.All(ctx, &likes); err != nil {
		return nil, apperror.Unavailable("failed to decode likes", err)
	}
	return likes, nil
}

func (r *likeRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return apperror.Unavailable("failed to delete like", err)
	}
	if result.DeletedCount == 0 {
		return apperror.NotFound("like not found")
	}
	return nil
}

func (r *likeRepository) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"video": videoID})
	if err != nil {
		return 0, apperror.Unavailable("failed to count likes", err)
	}
	return count, nil
}

func (r *likeRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	return r.deleteMany(ctx, bson.M{"liked_by": userID})
}

func (r *likeRepository) DeleteByVideo(ctx context.Context, videoID string) (int64, error) {
	return r.deleteMany(ctx, bson.M{"video": videoID})
}

func (r *likeRepository) deleteMany(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, apperror.Unavailable("failed to delete likes", err)
	}
	return result.DeletedCount, nil
}
