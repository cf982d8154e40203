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

// PlaylistMetrics is the slice of the metrics collector the playlist
// manager uses.
type PlaylistMetrics interface {
	PlaylistConflict()
}

// PlaylistService enforces set semantics over playlist membership: a batch
// add rejects entirely if any candidate is already a member, a batch remove
// rejects entirely if any candidate is absent. Validation re-fetches current
// state and the write is a single conditional update, so a concurrent batch
// that wins the race makes the loser's condition fail instead of corrupting
// the set.
type PlaylistService interface {
	Create(ctx context.Context, ownerID string, req *dto.CreatePlaylistRequest) (*domain.Playlist, error)
	Get(ctx context.Context, playlistID string) (*dto.PlaylistView, error)
	Delete(ctx context.Context, actorID, playlistID string) error
	AddVideos(ctx context.Context, actorID, playlistID string, videoIDs []string) (*domain.Playlist, error)
	RemoveVideos(ctx context.Context, actorID, playlistID string, videoIDs []string) (*domain.Playlist, error)
}

type playlistService struct {
	playlists repository.PlaylistRepository
	videos    repository.VideoRepository
	users     repository.UserRepository
	metrics   PlaylistMetrics
}

func NewPlaylistService(
	playlists repository.PlaylistRepository,
	videos repository.VideoRepository,
	users repository.UserRepository,
	metrics PlaylistMetrics,
) PlaylistService {
	return &playlistService{
		playlists: playlists,
		videos:    videos,
		users:     users,
		metrics:   metrics,
	}
}

func (s *playlistService) Create(ctx context.Context, ownerID string, req *dto.CreatePlaylistRequest) (*domain.Playlist, error) {
	now := time.Now()
	playlist := &domain.Playlist{
		ID:          uuid.New().String(),
		Owner:       ownerID,
		Name:        req.Name,
		Description: req.Description,
		Videos:      dedupe(req.Videos),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.playlists.Create(ctx, playlist); err != nil {
		return nil, err
	}

	logger.Info(logger.EventGeneral, "Playlist created", logger.Fields(
		"playlist_id", playlist.ID,
		"owner", ownerID,
		"videos", len(playlist.Videos),
	))
	return playlist, nil
}

func (s *playlistService) Get(ctx context.Context, playlistID string) (*dto.PlaylistView, error) {
	playlist, err := s.playlists.FindByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	resolved, err := s.videos.FindByIDs(ctx, playlist.Videos)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]int, len(resolved))
	for i := range resolved {
		byID[resolved[i].ID] = i
	}

	view := &dto.PlaylistView{
		ID:          playlist.ID,
		Owner:       playlist.Owner,
		Name:        playlist.Name,
		Description: playlist.Description,
		Videos:      []dto.VideoSummary{},
	}
	for _, id := range playlist.Videos {
		idx, ok := byID[id]
		if !ok {
			// the video was deleted and its cascade has not swept this
			// playlist yet
			continue
		}
		video := resolved[idx]
		view.Videos = append(view.Videos, dto.VideoSummary{
			ID:        video.ID,
			Title:     video.Title,
			Thumbnail: video.Thumbnail,
			Duration:  video.Duration,
		})
	}
	return view, nil
}

func (s *playlistService) Delete(ctx context.Context, actorID, playlistID string) error {
	playlist, err := s.playlists.FindByID(ctx, playlistID)
	if err != nil {
		return err
	}

	if playlist.Owner != actorID {
		actor, err := s.users.FindByID(ctx, actorID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() {
			return apperror.Unauthorized("only the playlist owner or an admin can delete this playlist")
		}
	}

	return s.playlists.Delete(ctx, playlistID)
}

func (s *playlistService) AddVideos(ctx context.Context, actorID, playlistID string, videoIDs []string) (*domain.Playlist, error) {
	if len(videoIDs) == 0 {
		return nil, apperror.Invalid("video ids are required")
	}
	videoIDs = dedupe(videoIDs)

	playlist, err := s.authorizeMember(ctx, actorID, playlistID)
	if err != nil {
		return nil, err
	}

	for _, id := range videoIDs {
		if playlist.Contains(id) {
			s.conflict()
			return nil, apperror.Conflict("video %s is already in the playlist", id)
		}
	}

	matched, err := s.playlists.AddVideos(ctx, playlistID, videoIDs)
	if err != nil {
		return nil, err
	}
	if !matched {
		// lost the read-then-write race: some candidate became a member (or
		// the playlist was deleted) after the check above
		s.conflict()
		return nil, apperror.Conflict("playlist changed concurrently, retry the add")
	}

	return s.playlists.FindByID(ctx, playlistID)
}

func (s *playlistService) RemoveVideos(ctx context.Context, actorID, playlistID string, videoIDs []string) (*domain.Playlist, error) {
	if len(videoIDs) == 0 {
		return nil, apperror.Invalid("video ids are required")
	}
	videoIDs = dedupe(videoIDs)

	playlist, err := s.authorizeMember(ctx, actorID, playlistID)
	if err != nil {
		return nil, err
	}

	for _, id := range videoIDs {
		if !playlist.Contains(id) {
			s.conflict()
			return nil, apperror.Conflict("video %s is not in the playlist", id)
		}
	}

	matched, err := s.playlists.RemoveVideos(ctx, playlistID, videoIDs)
	if err != nil {
		return nil, err
	}
	if !matched {
		s.conflict()
		return nil, apperror.Conflict("playlist changed concurrently, retry the remove")
	}

	return s.playlists.FindByID(ctx, playlistID)
}

// authorizeMember re-fetches the playlist so membership validation always
// runs against current state, and restricts mutation to the owner or an
// admin.
func (s *playlistService) authorizeMember(ctx context.Context, actorID, playlistID string) (*domain.Playlist, error) {
	playlist, err := s.playlists.FindByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.Owner == actorID {
		return playlist, nil
	}

	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, apperror.Unauthorized("only the playlist owner or an admin can modify this playlist")
	}
	return playlist, nil
}

func (s *playlistService) conflict() {
	if s.metrics != nil {
		s.metrics.PlaylistConflict()
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
