package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/streamhive/video-service/apperror"
	"github.com/streamhive/video-service/domain"
	"github.com/streamhive/video-service/dto"
	"github.com/streamhive/video-service/logger"
	"github.com/streamhive/video-service/repository"
)

type VideoService interface {
	Publish(ctx context.Context, ownerID string, req *dto.PublishVideoRequest) (*domain.Video, error)
	Update(ctx context.Context, actorID, videoID string, req *dto.UpdateVideoRequest) (*domain.Video, error)
	TogglePublish(ctx context.Context, actorID, videoID string) (*domain.Video, error)
	Delete(ctx context.Context, actorID, videoID string) (*CascadeResult, error)
	GetVideoDetail(ctx context.Context, videoID string, includeRelated bool) (*dto.VideoDetail, error)
	ListVideos(ctx context.Context, params dto.ListVideosParams) ([]domain.Video, error)
}

type videoService struct {
	videos   repository.VideoRepository
	users    repository.UserRepository
	likes    repository.LikeRepository
	comments repository.CommentRepository
	tweets   repository.TweetRepository
	views    repository.ViewRepository
	cascade  CascadeService
	metrics  ProfileMetrics
}

func NewVideoService(
	videos repository.VideoRepository,
	users repository.UserRepository,
	likes repository.LikeRepository,
	comments repository.CommentRepository,
	tweets repository.TweetRepository,
	views repository.ViewRepository,
	cascade CascadeService,
	metrics ProfileMetrics,
) VideoService {
	return &videoService{
		videos:   videos,
		users:    users,
		likes:    likes,
		comments: comments,
		tweets:   tweets,
		views:    views,
		cascade:  cascade,
		metrics:  metrics,
	}
}

func (s *videoService) Publish(ctx context.Context, ownerID string, req *dto.PublishVideoRequest) (*domain.Video, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	now := time.Now()
	video := &domain.Video{
		ID:          uuid.New().String(),
		Owner:       ownerID,
		VideoFile:   req.VideoFile,
		Thumbnail:   req.Thumbnail,
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.videos.Create(ctx, video); err != nil {
		return nil, err
	}

	logger.Info(logger.EventGeneral, "Video published", logger.Fields(
		"video_id", video.ID,
		"owner", ownerID,
	))
	return video, nil
}

func (s *videoService) Update(ctx context.Context, actorID, videoID string, req *dto.UpdateVideoRequest) (*domain.Video, error) {
	if err := s.authorizeOwner(ctx, actorID, videoID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Thumbnail != "" {
		updates["thumbnail"] = req.Thumbnail
	}
	if len(updates) == 0 {
		return nil, apperror.Invalid("nothing to update")
	}

	return s.videos.Update(ctx, videoID, updates)
}

func (s *videoService) TogglePublish(ctx context.Context, actorID, videoID string) (*domain.Video, error) {
	if err := s.authorizeOwner(ctx, actorID, videoID); err != nil {
		return nil, err
	}

	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return s.videos.Update(ctx, videoID, map[string]interface{}{"is_published": !video.IsPublished})
}

// Delete removes the video document first, then fans out the cascade. A
// failed cleanup step leaves orphans rather than resurrecting the video; the
// cascade result says what was swept.
func (s *videoService) Delete(ctx context.Context, actorID, videoID string) (*CascadeResult, error) {
	if err := s.authorizeOwner(ctx, actorID, videoID); err != nil {
		return nil, err
	}

	count, err := s.videos.Delete(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperror.NotFound("video not found")
	}

	result := s.cascade.CleanupVideo(ctx, videoID)

	logger.Info(logger.EventGeneral, "Video deleted", logger.Fields(
		"video_id", videoID,
		"actor", actorID,
	))
	return result, nil
}

func (s *videoService) GetVideoDetail(ctx context.Context, videoID string, includeRelated bool) (*dto.VideoDetail, error) {
	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	// ownership is exactly one user, so the owner join is a single lookup
	// collapsing to one summary object
	owner, err := s.users.FindByID(ctx, video.Owner)
	if err != nil {
		return nil, err
	}

	detail := &dto.VideoDetail{
		ID:          video.ID,
		Title:       video.Title,
		Description: video.Description,
		VideoFile:   video.VideoFile,
		Thumbnail:   video.Thumbnail,
		Duration:    video.Duration,
		IsPublished: video.IsPublished,
		Owner: dto.OwnerSummary{
			ID:       owner.ID,
			Username: owner.Username,
			FullName: owner.FullName,
			Avatar:   owner.Avatar,
		},
	}

	if detail.LikesCount, err = s.likes.CountByVideo(ctx, videoID); err != nil {
		return nil, err
	}
	if detail.CommentsCount, err = s.comments.CountByVideo(ctx, videoID); err != nil {
		return nil, err
	}
	if detail.TweetsCount, err = s.tweets.CountByVideo(ctx, videoID); err != nil {
		return nil, err
	}
	if detail.ViewsCount, err = s.views.CountByVideo(ctx, videoID); err != nil {
		return nil, err
	}

	if includeRelated {
		if detail.Likes, err = s.likes.FindByVideo(ctx, videoID); err != nil {
			return nil, err
		}
		if detail.Comments, err = s.comments.FindByVideo(ctx, videoID); err != nil {
			return nil, err
		}
		if detail.Tweets, err = s.tweets.FindByVideo(ctx, videoID); err != nil {
			return nil, err
		}
		if detail.Views, err = s.views.FindByVideo(ctx, videoID); err != nil {
			return nil, err
		}
	}

	if s.metrics != nil {
		s.metrics.ProjectionServed("video_detail")
	}
	return detail, nil
}

// ListVideos pages through published videos, skip = page * limit. No match
// is an empty result, not an error.
func (s *videoService) ListVideos(ctx context.Context, params dto.ListVideosParams) ([]domain.Video, error) {
	if params.Limit <= 0 {
		params.Limit = 10
	}
	if params.Page < 0 {
		params.Page = 0
	}

	skip := int64(params.Page) * int64(params.Limit)
	videos, err := s.videos.List(ctx, params.Query, skip, int64(params.Limit), params.SortBy, params.SortDesc)
	if err != nil {
		return nil, err
	}
	if videos == nil {
		videos = []domain.Video{}
	}
	return videos, nil
}

// authorizeOwner permits the video owner or an admin. Both sides of the
// comparison are plain string IDs.
func (s *videoService) authorizeOwner(ctx context.Context, actorID, videoID string) error {
	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		return err
	}
	if video.Owner == actorID {
		return nil
	}

	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return apperror.Unauthorized("only the video owner or an admin can modify this video")
	}
	return nil
}
