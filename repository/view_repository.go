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

type ViewRepository interface {
	Create(ctx context.Context, view *domain.View) error
	FindByViewerAndVideo(ctx context.Context, viewerID, videoID string) (*domain.View, error)
	FindByVideo(ctx context.Context, videoID string) ([]domain.View, error)
	UpdateWatchDuration(ctx context.Context, id string, watchDuration float64) (*domain.View, error)
	CountByVideo(ctx context.Context, videoID string) (int64, error)
	DeleteByViewer(ctx context.Context, viewerID string) (int64, error)
	DeleteByVideo(ctx context.Context, videoID string) (int64, error)
}

type viewRepository struct {
	collection *mongo.Collection
}

func NewViewRepository(db *mongo.Database) ViewRepository {
	collection := db.Collection("views")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "viewer", Value: 1}, {Key: "video", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "video", Value: 1}}},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn(logger.EventDBError, "Failed to create view indexes", logger.Fields("error", err.Error()))
	}

	return &viewRepository{collection: collection}
}

func (r *viewRepository) Create(ctx context.Context, view *domain.View) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, view); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.Conflict("view already recorded for video %s", view.Video)
		}
		return apperror.Unavailable("failed to create view", err)
	}
	return nil
}

func (r *viewRepository) FindByViewerAndVideo(ctx context.Context, viewerID, videoID string) (*domain.View, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var view domain.View
	err := r.collection.FindOne(ctx, bson.M{"viewer": viewerID, "video": videoID}).Decode(&view)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NotFound("view not found")
		}
		return nil, apperror.Unavailable("failed to fetch view", err)
	}
	return &view, nil
}

func (r *viewRepository) FindByVideo(ctx context.Context, videoID string) ([]domain.View, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"video": videoID})
	if err != nil {
		return nil, apperror.Unavailable("failed to fetch views", err)
	}
	defer cursor.Close(ctx)

	var views []domain.View
	if err := cursor.All(ctx, &views); err != nil {
		return nil, apperror.Unavailable("failed to decode views", err)
	}
	return views, nil
}

// UpdateWatchDuration raises the stored duration, never lowers it: the
// filter only matches while the stored value is smaller.
func (r *viewRepository) UpdateWatchDuration(ctx context.Context, id string, watchDuration float64) (*domain.View, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "watch_duration": bson.M{"$lt": watchDuration}}
	update := bson.M{"$set": bson.M{"watch_duration": watchDuration, "updated_at": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var view domain.View
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&view)
	if err == nil {
		return &view, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, apperror.Unavailable("failed to update view", err)
	}

	// no-op update: the record exists with an equal or longer duration
	if err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&view); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NotFound("view not found")
		}
		return nil, apperror.Unavailable("failed to fetch view", err)
	}
	return &view, nil
}

func (r *viewRepository) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"video": videoID})
	if err != nil {
		return 0, apperror.Unavailable("failed to count views", err)
	}
	return count, nil
}

func (r *viewRepository) DeleteByViewer(ctx context.Context, viewerID string) (int64, error) {
	return r.deleteMany(ctx, bson.M{"viewer": viewerID})
}

func (r *viewRepository) DeleteByVideo(ctx context.Context, videoID string) (int64, error) {
	return r.deleteMany(ctx, bson.M{"video": videoID})
}

func (r *viewRepository) deleteMany(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, apperror.Unavailable("failed to delete views", err)
	}
	return result.DeletedCount, nil
}
