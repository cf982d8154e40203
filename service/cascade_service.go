package service

import (
	"context"

	"github.com/streamhive/video-service/logger"
	"github.com/streamhive/video-service/repository"
)

const (
	ParentKindUser  = "user"
	ParentKindVideo = "video"
)

// CascadeMetrics is the slice of the metrics collector the cascade needs;
// satisfied by *metrics.Collector.
type CascadeMetrics interface {
	CascadeDocsRemoved(parentKind, collection string, count int64)
	CascadeFailure(parentKind, collection string)
}

// CascadeResult records what one cascade invocation cleaned, per collection,
// and which cleanups failed. Failed collections may have left orphans behind;
// the counts and failures are also emitted as logs and metrics so operators
// can reconcile manually.
type CascadeResult struct {
	ParentKind string
	ParentID   string
	Removed    map[string]int64
	Failed     []string
}

func newCascadeResult(parentKind, parentID string) *CascadeResult {
	return &CascadeResult{
		ParentKind: parentKind,
		ParentID:   parentID,
		Removed:    make(map[string]int64),
	}
}

func (r *CascadeResult) merge(other *CascadeResult) {
	for collection, count := range other.Removed {
		r.Removed[collection] += count
	}
	r.Failed = append(r.Failed, other.Failed...)
}

// CascadeService removes every dependent record when a parent user or video
// is deleted. The store has no referential integrity, so this fan-out is the
// only thing standing between a parent deletion and a pile of orphans.
//
// Each collection's cleanup is attempted independently: a failing step is
// logged, counted and skipped, never propagated, so one unavailable
// collection cannot block the rest of the teardown. Re-running the cascade
// on an already-cleaned ID is a no-op.
type CascadeService interface {
	CleanupUser(ctx context.Context, userID string) *CascadeResult
	CleanupVideo(ctx context.Context, videoID string) *CascadeResult
}

type cascadeService struct {
	videos        repository.VideoRepository
	comments      repository.CommentRepository
	likes         repository.LikeRepository
	tweets        repository.TweetRepository
	views         repository.ViewRepository
	subscriptions repository.SubscriptionRepository
	playlists     repository.PlaylistRepository
	premiums      repository.PremiumRepository
	metrics       CascadeMetrics
}

func NewCascadeService(
	videos repository.VideoRepository,
	comments repository.CommentRepository,
	likes repository.LikeRepository,
	tweets repository.TweetRepository,
	views repository.ViewRepository,
	subscriptions repository.SubscriptionRepository,
	playlists repository.PlaylistRepository,
	premiums repository.PremiumRepository,
	metrics CascadeMetrics,
) CascadeService {
	return &cascadeService{
		videos:        videos,
		comments:      comments,
		likes:         likes,
		tweets:        tweets,
		views:         views,
		subscriptions: subscriptions,
		playlists:     playlists,
		premiums:      premiums,
		metrics:       metrics,
	}
}

type cascadeStep struct {
	collection string
	run        func(ctx context.Context) (int64, error)
}

func (s *cascadeService) CleanupUser(ctx context.Context, userID string) *CascadeResult {
	result := newCascadeResult(ParentKindUser, userID)

	steps := []cascadeStep{
		{"views", func(ctx context.Context) (int64, error) { return s.views.DeleteByViewer(ctx, userID) }},
		{"likes", func(ctx context.Context) (int64, error) { return s.likes.DeleteByUser(ctx, userID) }},
		{"comments", func(ctx context.Context) (int64, error) { return s.comments.DeleteByOwner(ctx, userID) }},
		{"tweets", func(ctx context.Context) (int64, error) { return s.tweets.DeleteByOwner(ctx, userID) }},
		{"premiums", func(ctx context.Context) (int64, error) { return s.premiums.DeleteByUser(ctx, userID) }},
		{"playlists", func(ctx context.Context) (int64, error) { return s.playlists.DeleteByOwner(ctx, userID) }},
		{"subscriptions", func(ctx context.Context) (int64, error) { return s.subscriptions.DeleteByUser(ctx, userID) }},
	}
	for _, step := range steps {
		s.runStep(ctx, result, step)
	}

	s.cleanupOwnedVideos(ctx, result, userID)

	return result
}

func (s *cascadeService) CleanupVideo(ctx context.Context, videoID string) *CascadeResult {
	result := newCascadeResult(ParentKindVideo, videoID)

	steps := []cascadeStep{
		{"views", func(ctx context.Context) (int64, error) { return s.views.DeleteByVideo(ctx, videoID) }},
		{"likes", func(ctx context.Context) (int64, error) { return s.likes.DeleteByVideo(ctx, videoID) }},
		{"comments", func(ctx context.Context) (int64, error) { return s.comments.DeleteByVideo(ctx, videoID) }},
		{"tweets", func(ctx context.Context) (int64, error) { return s.tweets.DeleteByVideo(ctx, videoID) }},
		{"playlists", func(ctx context.Context) (int64, error) { return s.playlists.PullVideoFromAll(ctx, videoID) }},
	}
	for _, step := range steps {
		s.runStep(ctx, result, step)
	}

	return result
}

// cleanupOwnedVideos cascades every video the deleted user owned, then
// removes the video documents themselves. Deleting the videos with a bare
// delete-many would skip the per-video fan-out and leave playlist references
// and engagement records orphaned.
func (s *cascadeService) cleanupOwnedVideos(ctx context.Context, result *CascadeResult, userID string) {
	owned, err := s.videos.FindByOwner(ctx, userID)
	if err != nil {
		s.recordFailure(result, "videos", err)
		return
	}

	var removed int64
	for _, video := range owned {
		result.merge(s.CleanupVideo(ctx, video.ID))

		count, err := s.videos.Delete(ctx, video.ID)
		if err != nil {
			s.recordFailure(result, "videos", err)
			continue
		}
		removed += count
	}
	s.recordRemoved(result, "videos", removed)
}

func (s *cascadeService) runStep(ctx context.Context, result *CascadeResult, step cascadeStep) {
	count, err := step.run(ctx)
	if err != nil {
		s.recordFailure(result, step.collection, err)
		return
	}
	s.recordRemoved(result, step.collection, count)
}

func (s *cascadeService) recordRemoved(result *CascadeResult, collection string, count int64) {
	result.Removed[collection] += count
	if s.metrics != nil {
		s.metrics.CascadeDocsRemoved(result.ParentKind, collection, count)
	}
	logger.Info(logger.EventCascadeCleanup, "Cascade cleanup completed for collection", logger.Fields(
		"parent_kind", result.ParentKind,
		"parent_id", result.ParentID,
		"collection", collection,
		"removed", count,
	))
}

func (s *cascadeService) recordFailure(result *CascadeResult, collection string, err error) {
	result.Failed = append(result.Failed, collection)
	if s.metrics != nil {
		s.metrics.CascadeFailure(result.ParentKind, collection)
	}
	logger.Error(logger.EventCascadeFailure, "Cascade cleanup failed, orphans possible", logger.Fields(
		"parent_kind", result.ParentKind,
		"parent_id", result.ParentID,
		"collection", collection,
		"error", err.Error(),
	))
}
