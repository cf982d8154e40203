package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/streamhive/video-service/apperror"
	"github.com/streamhive/video-service/domain"
	"github.com/streamhive/video-service/repository"
)

type TweetService interface {
	Create(ctx context.Context, ownerID, videoID, content string) (*domain.Tweet, error)
	Update(ctx context.Context, actorID, tweetID, content string) (*domain.Tweet, error)
	Delete(ctx context.Context, actorID, tweetID string) error
	ListByVideo(ctx context.Context, videoID string) ([]domain.Tweet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Tweet, error)
}

type tweetService struct {
	tweets repository.TweetRepository
	videos repository.VideoRepository
	users  repository.UserRepository
}

func NewTweetService(tweets repository.TweetRepository, videos repository.VideoRepository, users repository.UserRepository) TweetService {
	return &tweetService{tweets: tweets, videos: videos, users: users}
}

func (s *tweetService) Create(ctx context.Context, ownerID, videoID, content string) (*domain.Tweet, error) {
	if _, err := s.videos.FindByID(ctx, videoID); err != nil {
		return nil, err
	}

	now := time.Now()
	tweet := &domain.Tweet{
		ID:        uuid.New().String(),
		Owner:     ownerID,
		Video:     videoID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.tweets.Create(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *tweetService) Update(ctx context.Context, actorID, tweetID, content string) (*domain.Tweet, error) {
	tweet, err := s.tweets.FindByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if tweet.Owner != actorID {
		return nil, apperror.Unauthorized("only the tweet owner can update the tweet")
	}
	return s.tweets.Update(ctx, tweetID, content)
}

func (s *tweetService) Delete(ctx context.Context, actorID, tweetID string) error {
	tweet, err := s.tweets.FindByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if tweet.Owner != actorID {
		video, err := s.videos.FindByID(ctx, tweet.Video)
		if err == nil && video.Owner == actorID {
			return s.tweets.Delete(ctx, tweetID)
		}

		actor, err := s.users.FindByID(ctx, actorID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() {
			return apperror.Unauthorized("only the tweet owner, video owner or an admin can delete the tweet")
		}
	}
	return s.tweets.Delete(ctx, tweetID)
}

func (s *tweetService) ListByVideo(ctx context.Context, videoID string) ([]domain.Tweet, error) {
	return s.tweets.FindByVideo(ctx, videoID)
}

func (s *tweetService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Tweet, error) {
	return s.tweets.FindByOwner(ctx, ownerID)
}
