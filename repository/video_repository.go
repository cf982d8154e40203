package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/streamhive/video-service/apperror"
	"github.com/streamhive/video-service/domain"
	"github.com/streamhive/video-service/logger"
)

type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) error
	FindByID(ctx context.Context, id string) (*domain.Video, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Video, error)
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Video, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (*domain.Video, error)
	Delete(ctx context.Context, id string) (int64, error)
	List(ctx context.Context, query string, skip, limit int64, sortBy string, sortDesc bool) ([]domain.Video, error)
}

type videoRepository struct {
	collection *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) VideoRepository {
	collection := db.Collection("videos")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn(logger.EventDBError, "Failed to create video indexes", logger.Fields("error", err.Error()))
	}

	return &videoRepository{collection: collection}
}

func (r *videoRepository) Create(ctx context.Context, video *domain.Video) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, video); err != nil {
		return apperror.Unavailable("failed to create video", err)
	}
	return nil
}

func (r *videoRepository) FindByID(ctx context.Context, id string) (*domain.Video, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var video domain.Video
	if err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&video); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NotFound("video not found")
		}
		return nil, apperror.Unavailable("failed to fetch video", err)
	}
	return &video, nil
}

func (r *videoRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, apperror.Unavailable("failed to fetch videos", err)
	}
	defer cursor.Close(ctx)

	var videos []domain.Video
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, apperror.Unavailable("failed to decode videos", err)
	}
	return videos, nil
}

func (r *videoRepository) FindByOwner(ctx context.Context, ownerID string) ([]domain.Video, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"owner": ownerID})
	if err != nil {
		return nil, apperror.Unavailable("failed to fetch videos by owner", err)
	}
	defer cursor.Close(ctx)

	var videos []domain.Video
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, apperror.Unavailable("failed to decode videos", err)
	}
	return videos, nil
}

func (r *videoRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*domain.Video, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	updates["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var video domain.Video
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": updates}, opts).Decode(&video)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NotFound("video not found")
		}
		return nil, apperror.Unavailable("failed to update video", err)
	}
	return &video, nil
}

func (r *videoRepository) Delete(ctx context.Context, id string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return 0, apperror.Unavailable("failed to delete video", err)
	}
	return result.DeletedCount, nil
}

// List pages published videos with an optional free-text match on title and
// description. An empty result is not an error.
func (r *videoRepository) List(ctx context.Context, query string, skip, limit int64, sortBy string, sortDesc bool) ([]domain.Video, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"is_published": true}
	if query != "" {
		regex := primitive.Regex{Pattern: query, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": regex},
			bson.M{"description": regex},
		}
	}

	sortDir := 1
	if sortDesc {
		sortDir = -1
	}
	if sortBy == "" {
		sortBy = "created_at"
		sortDir = -1
	}

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: sortBy, Value: sortDir}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperror.Unavailable("failed to list videos", err)
	}
	defer cursor.Close(ctx)

	var videos []domain.Video
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, apperror.Unavailable("failed to decode videos", err)
	}
	return videos, nil
}
