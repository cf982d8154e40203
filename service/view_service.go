package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/streamhive/video-service/apperror"
	"github.com/streamhive/video-service/domain"
	"github.com/streamhive/video-service/logger"
	"github.com/streamhive/video-service/repository"
)

type ViewService interface {
	RecordView(ctx context.Context, viewerID, videoID string, watchDuration float64) (*domain.View, error)
	HasViewed(ctx context.Context, viewerID, videoID string) (bool, error)
	ListByVideo(ctx context.Context, videoID string) ([]domain.View, error)
}

type viewService struct {
	views  repository.ViewRepository
	videos repository.VideoRepository
	users  repository.UserRepository
}

func NewViewService(views repository.ViewRepository, videos repository.VideoRepository, users repository.UserRepository) ViewService {
	return &viewService{views: views, videos: videos, users: users}
}

// RecordView upserts the (viewer, video) view. The watch duration only ever
// grows; a shorter replay does not shrink it. The first view of a video also
// moves it to the most-recent end of the viewer's watch history.
func (s *viewService) RecordView(ctx context.Context, viewerID, videoID string, watchDuration float64) (*domain.View, error) {
	if _, err := s.videos.FindByID(ctx, videoID); err != nil {
		return nil, err
	}

	existing, err := s.views.FindByViewerAndVideo(ctx, viewerID, videoID)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}

	var view *domain.View
	if existing != nil {
		view, err = s.views.UpdateWatchDuration(ctx, existing.ID, watchDuration)
		if err != nil {
			return nil, err
		}
	} else {
		now := time.Now()
		view = &domain.View{
			ID:            uuid.New().String(),
			Viewer:        viewerID,
			Video:         videoID,
			WatchDuration: watchDuration,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.views.Create(ctx, view); err != nil {
			// a concurrent request created the view first; fall back to the
			// monotonic update
			if !apperror.IsConflict(err) {
				return nil, err
			}
			existing, err := s.views.FindByViewerAndVideo(ctx, viewerID, videoID)
			if err != nil {
				return nil, err
			}
			view, err = s.views.UpdateWatchDuration(ctx, existing.ID, watchDuration)
			if err != nil {
				return nil, err
			}
		}
	}

	if err := s.users.TouchWatchHistory(ctx, viewerID, videoID); err != nil {
		// the view itself is recorded; history is best effort
		logger.Warn(logger.EventDBError, "Failed to update watch history", logger.Fields(
			"viewer", viewerID,
			"video_id", videoID,
			"error", err.Error(),
		))
	}

	return view, nil
}

func (s *viewService) HasViewed(ctx context.Context, viewerID, videoID string) (bool, error) {
	_, err := s.views.FindByViewerAndVideo(ctx, viewerID, videoID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *viewService) ListByVideo(ctx context.Context, videoID string) ([]domain.View, error) {
	return s.views.FindByVideo(ctx, videoID)
}
