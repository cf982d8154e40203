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

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	FindByVideo(ctx context.Context, videoID string) ([]domain.Comment, error)
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Comment, error)
	Update(ctx context.Context, id string, content string) (*domain.Comment, error)
	Delete(ctx context.Context, id string) error
	CountByVideo(ctx context.Context, videoID string) (int64, error)
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
	DeleteByVideo(ctx context.Context, videoID string) (int64, error)
}

type commentRepository struct {
	collection *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) CommentRepository {
	collection := db.Collection("comments")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// one comment per (owner, video); duplicates surface as Conflict instead
	// of racing through a check-then-insert
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "video", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "video", Value: 1}}},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn(logger.EventDBError, "Failed to create comment indexes", logger.Fields("error", err.Error()))
	}

	return &commentRepository{collection: collection}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, comment); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.Conflict("video %s already commented by this user", comment.Video)
		}
		return apperror.Unavailable("failed to create comment", err)
	}
	return nil
}

func (r *commentRepository) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var comment domain.Comment
	if err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&comment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NotFound("comment not found")
		}
		return nil, apperror.Unavailable("failed to fetch comment", err)
	}
	return &comment, nil
}

func (r *commentRepository) FindByVideo(ctx context.Context, videoID string) ([]domain.Comment, error) {
	return r.findMany(ctx, bson.M{"video": videoID})
}

func (r *commentRepository) FindByOwner(ctx context.Context, ownerID string) ([]domain.Comment, error) {
	return r.findMany(ctx, bson.M{"owner": ownerID})
}

func (r *commentRepository) findMany(ctx context.Context, filter bson.M) ([]domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, apperror.Unavailable("failed to fetch comments", err)
	}
	defer cursor.Close(ctx)

	var comments []domain.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, apperror.Unavailable("failed to decode comments", err)
	}
	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, id string, content string) (*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"content": content, "updated_at": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var comment domain.Comment
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&comment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NotFound("comment not found")
		}
		return nil, apperror.Unavailable("failed to update comment", err)
	}
	return &comment, nil
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return apperror.Unavailable("failed to delete comment", err)
	}
	if result.DeletedCount == 0 {
		return apperror.NotFound("comment not found")
	}
	return nil
}

func (r *commentRepository) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"video": videoID})
	if err != nil {
		return 0, apperror.Unavailable("failed to count comments", err)
	}
	return count, nil
}

func (r *commentRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	return r.deleteMany(ctx, bson.M{"owner": ownerID})
}

func (r *commentRepository) DeleteByVideo(ctx context.Context, videoID string) (int64, error) {
	return r.deleteMany(ctx, bson.M{"video": videoID})
}

func (r *commentRepository) deleteMany(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, apperror.Unavailable("failed to delete comments", err)
	}
	return result.DeletedCount, nil
}
