package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/streamhive/video-service/apperror"
	"github.com/streamhive/video-service/domain"
	"github.com/streamhive/video-service/logger"
)

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *domain.Playlist) error
	FindByID(ctx context.Context, id string) (*domain.Playlist, error)
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Playlist, error)
	Delete(ctx context.Context, id string) error
	AddVideos(ctx context.Context, id string, videoIDs []string) (bool, error)
	RemoveVideos(ctx context.Context, id string, videoIDs []string) (bool, error)
	PullVideoFromAll(ctx context.Context, videoID string) (int64, error)
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}

type playlistRepository struct {
	collection *mongo.Collection
}

func NewPlaylistRepository(db *mongo.Database) PlaylistRepository {
	collection := db.Collection("playlists")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "videos", Value: 1}}},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn(logger.EventDBError, "Failed to create playlist indexes", logger.Fields("error", err.Error()))
	}

	return &playlistRepository{collection: collection}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *domain.Playlist) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, playlist); err != nil {
		return apperror.Unavailable("failed to create playlist", err)
	}
	return nil
}

func (r *playlistRepository) FindByID(ctx context.Context, id string) (*domain.Playlist, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var playlist domain.Playlist
	if err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&playlist); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NotFound("playlist not found")
		}
		return nil, apperror.Unavailable("failed to fetch playlist", err)
	}
	return &playlist, nil
}

func (r *playlistRepository) FindByOwner(ctx context.Context, ownerID string) ([]domain.Playlist, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"owner": ownerID})
	if err != nil {
		return nil, apperror.Unavailable("failed to fetch playlists", err)
	}
	defer cursor.Close(ctx)

	var playlists []domain.Playlist
	if err := cursor.All(ctx, &playlists); err != nil {
		return nil, apperror.Unavailable("failed to decode playlists", err)
	}
	return playlists, nil
}

func (r *playlistRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return apperror.Unavailable("failed to delete playlist", err)
	}
	if result.DeletedCount == 0 {
		return apperror.NotFound("playlist not found")
	}
	return nil
}

// AddVideos appends the batch in one conditional update that only matches
// while none of the candidates is already a member. A false return means the
// condition no longer held (or the playlist vanished) between the caller's
// membership check and the write.
func (r *playlistRepository) AddVideos(ctx context.Context, id string, videoIDs []string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":     id,
		"videos": bson.M{"$nin": videoIDs},
	}
	update := bson.M{
		"$push": bson.M{"videos": bson.M{"$each": videoIDs}},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, apperror.Unavailable("failed to add videos to playlist", err)
	}
	return result.MatchedCount > 0, nil
}

// RemoveVideos removes the batch in one conditional update that only matches
// while every candidate is a member.
func (r *playlistRepository) RemoveVideos(ctx context.Context, id string, videoIDs []string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":     id,
		"videos": bson.M{"$all": videoIDs},
	}
	update := bson.M{
		"$pull": bson.M{"videos": bson.M{"$in": videoIDs}},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, apperror.Unavailable("failed to remove videos from playlist", err)
	}
	return result.MatchedCount > 0, nil
}

// PullVideoFromAll strips a deleted video's ID out of every playlist that
// contains it, keeping the playlists themselves.
func (r *playlistRepository) PullVideoFromAll(ctx context.Context, videoID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.collection.UpdateMany(ctx,
		bson.M{"videos": videoID},
		bson.M{"$pull": bson.M{"videos": videoID}},
	)
	if err != nil {
		return 0, apperror.Unavailable("failed to remove video from playlists", err)
	}
	return result.ModifiedCount, nil
}

func (r *playlistRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"owner": ownerID})
	if err != nil {
		return 0, apperror.Unavailable("failed to delete playlists", err)
	}
	return result.DeletedCount, nil
}
