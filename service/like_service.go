package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/streamhive/video-service/apperror"
	"github.com/streamhive/video-service/domain"
	"github.com/streamhive/video-service/repository"
)

type LikeService interface {
	Like(ctx context.Context, userID, videoID string) (*domain.Like, error)
	Unlike(ctx context.Context, userID, videoID string) error
	IsLiked(ctx context.Context, userID, videoID string) (bool, error)
	ListByVideo(ctx context.Context, videoID string) ([]domain.Like, error)
}

type likeService struct {
	likes  repository.LikeRepository
	videos repository.VideoRepository
}

func NewLikeService(likes repository.LikeRepository, videos repository.VideoRepository) LikeService {
	return &likeService{likes: likes, videos: videos}
}

func (s *likeService) Like(ctx context.Context, userID, videoID string) (*domain.Like, error) {
	if _, err := s.videos.FindByID(ctx, videoID); err != nil {
		return nil, err
	}

	like := &domain.Like{
		ID:        uuid.New().String(),
		LikedBy:   userID,
		Video:     videoID,
		CreatedAt: time.Now(),
	}
	// the (liked_by, video) unique index turns a double-like into a Conflict
	if err := s.likes.Create(ctx, like); err != nil {
		return nil, err
	}
	return like, nil
}

func (s *likeService) Unlike(ctx context.Context, userID, videoID string) error {
	like, err := s.likes.FindByUserAndVideo(ctx, userID, videoID)
	if err != nil {
		return err
	}
	if like.LikedBy != userID {
		return apperror.Unauthorized("only the like owner can remove the like")
	}
	return s.likes.Delete(ctx, like.ID)
}

func (s *likeService) IsLiked(ctx context.Context, userID, videoID string) (bool, error) {
	_, err := s.likes.FindByUserAndVideo(ctx, userID, videoID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *likeService) ListByVideo(ctx context.Context, videoID string) ([]domain.Like, error) {
	return s.likes.FindByVideo(ctx, videoID)
}
