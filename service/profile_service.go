package service

import (
	"context"
	"time"

	"github.com/streamhive/video-service/apperror"
	"github.com/streamhive/video-service/dto"
	"github.com/streamhive/video-service/repository"
)

// ProfileMetrics is the slice of the metrics collector the projectors use.
type ProfileMetrics interface {
	ProjectionServed(projection string)
}

// ProfileService assembles the channel-profile read model. It joins the
// users, subscriptions, premiums and videos collections without mutating any
// of them: for a fixed store state the result is deterministic.
type ProfileService interface {
	GetProfile(ctx context.Context, userID, viewerID string, includeHistory bool) (*dto.ProfileView, error)
}

type profileService struct {
	users         repository.UserRepository
	videos        repository.VideoRepository
	subscriptions repository.SubscriptionRepository
	premiums      repository.PremiumRepository
	metrics       ProfileMetrics
	now           func() time.Time
}

func NewProfileService(
	users repository.UserRepository,
	videos repository.VideoRepository,
	subscriptions repository.SubscriptionRepository,
	premiums repository.PremiumRepository,
	metrics ProfileMetrics,
) ProfileService {
	return &profileService{
		users:         users,
		videos:        videos,
		subscriptions: subscriptions,
		premiums:      premiums,
		metrics:       metrics,
		now:           time.Now,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID, viewerID string, includeHistory bool) (*dto.ProfileView, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	subscribersCount, err := s.subscriptions.CountByChannel(ctx, userID)
	if err != nil {
		return nil, err
	}

	subscribedToCount, err := s.subscriptions.CountBySubscriber(ctx, userID)
	if err != nil {
		return nil, err
	}

	isSubscriber, err := s.viewerSubscribes(ctx, viewerID, userID)
	if err != nil {
		return nil, err
	}

	isPremium, err := s.hasActivePremium(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &dto.ProfileView{
		ID:                user.ID,
		Username:          user.Username,
		Email:             user.Email,
		FullName:          user.FullName,
		Avatar:            user.Avatar,
		CoverImage:        user.CoverImage,
		Role:              string(user.Role),
		SubscribersCount:  subscribersCount,
		SubscribedToCount: subscribedToCount,
		IsSubscriber:      isSubscriber,
		IsPremiumUser:     isPremium,
		WatchHistory:      []dto.WatchHistoryItem{},
	}

	if includeHistory {
		history, err := s.resolveWatchHistory(ctx, user.WatchHistory)
		if err != nil {
			return nil, err
		}
		profile.WatchHistory = history
	}

	if s.metrics != nil {
		s.metrics.ProjectionServed("profile")
	}
	return profile, nil
}

// viewerSubscribes checks the requesting viewer against the channel's
// subscriber set. The flag is relative to whoever is looking, which is why
// the projector takes a viewer ID alongside the profile subject.
func (s *profileService) viewerSubscribes(ctx context.Context, viewerID, channelID string) (bool, error) {
	if viewerID == "" || viewerID == channelID {
		return false, nil
	}
	_, err := s.subscriptions.FindBySubscriberAndChannel(ctx, viewerID, channelID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *profileService) hasActivePremium(ctx context.Context, userID string) (bool, error) {
	latest, err := s.premiums.FindLatestByUser(ctx, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return latest.ActiveAt(s.now()), nil
}

// resolveWatchHistory denormalizes watch-history entries in their stored
// order. IDs whose video has since been cascade-deleted are skipped.
func (s *profileService) resolveWatchHistory(ctx context.Context, videoIDs []string) ([]dto.WatchHistoryItem, error) {
	items := []dto.WatchHistoryItem{}
	if len(videoIDs) == 0 {
		return items, nil
	}

	videos, err := s.videos.FindByIDs(ctx, videoIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]int, len(videos))
	for i := range videos {
		byID[videos[i].ID] = i
	}

	owners := make(map[string]dto.OwnerSummary)
	for _, id := range videoIDs {
		idx, ok := byID[id]
		if !ok {
			continue
		}
		video := videos[idx]

		owner, ok := owners[video.Owner]
		if !ok {
			ownerUser, err := s.users.FindByID(ctx, video.Owner)
			if err != nil {
				if apperror.IsNotFound(err) {
					// owner cascade already ran; the video is about to go too
					continue
				}
				return nil, err
			}
			owner = dto.OwnerSummary{
				ID:       ownerUser.ID,
				Username: ownerUser.Username,
				FullName: ownerUser.FullName,
				Avatar:   ownerUser.Avatar,
			}
			owners[video.Owner] = owner
		}

		items = append(items, dto.WatchHistoryItem{
			ID:        video.ID,
			Title:     video.Title,
			Thumbnail: video.Thumbnail,
			Duration:  video.Duration,
			Owner:     owner,
		})
	}
	return items, nil
}
