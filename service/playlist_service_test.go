package service

import (
	"context"
	"strings"
	"testing"

	"github.com/streamhive/video-service/apperror"
	"github.com/streamhive/video-service/domain"
	"github.com/streamhive/video-service/dto"
)

type playlistFixture struct {
	playlists *fakePlaylistRepo
	videos    *fakeVideoRepo
	users     *fakeUserRepo
	metrics   *fakeMetrics
	svc       PlaylistService
}

func newPlaylistFixture() *playlistFixture {
	f := &playlistFixture{
		playlists: &fakePlaylistRepo{playlists: map[string]*domain.Playlist{}},
		videos:    &fakeVideoRepo{videos: map[string]*domain.Video{}},
		users:     &fakeUserRepo{users: map[string]*domain.User{}},
		metrics:   &fakeMetrics{},
	}
	f.svc = NewPlaylistService(f.playlists, f.videos, f.users, f.metrics)
	return f
}

func (f *playlistFixture) seed(id, owner string, videos ...string) {
	f.playlists.playlists[id] = &domain.Playlist{ID: id, Owner: owner, Videos: videos}
}

func TestAddVideosAppendsBatch(t *testing.T) {
	f := newPlaylistFixture()
	f.seed("p1", "u1", "a", "b")

	playlist, err := f.svc.AddVideos(context.Background(), "u1", "p1", []string{"c", "d"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(playlist.Videos) != 4 || !playlist.Contains("c") || !playlist.Contains("d") {
		t.Fatalf("expected a,b,c,d in playlist, got %v", playlist.Videos)
	}
}

func TestAddVideosRejectsWholeBatchOnDuplicate(t *testing.T) {
	f := newPlaylistFixture()
	f.seed("p1", "u1", "a", "b")

	_, err := f.svc.AddVideos(context.Background(), "u1", "p1", []string{"c", "a"})
	if !apperror.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if !strings.Contains(err.Error(), "a") {
		t.Fatalf("conflict must name the offending video, got %q", err.Error())
	}

	stored := f.playlists.playlists["p1"]
	if len(stored.Videos) != 2 {
		t.Fatalf("no video from the batch may be added, got %v", stored.Videos)
	}
	if f.metrics.conflicts != 1 {
		t.Fatalf("expected one conflict recorded, got %d", f.metrics.conflicts)
	}
}

func TestRemoveVideosRejectsWholeBatchOnMissing(t *testing.T) {
	f := newPlaylistFixture()
	f.seed("p1", "u1", "a", "b")

	_, err := f.svc.RemoveVideos(context.Background(), "u1", "p1", []string{"b", "x"})
	if !apperror.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if !strings.Contains(err.Error(), "x") {
		t.Fatalf("conflict must name the offending video, got %q", err.Error())
	}

	stored := f.playlists.playlists["p1"]
	if len(stored.Videos) != 2 {
		t.Fatalf("no video from the batch may be removed, got %v", stored.Videos)
	}
}

func TestRemoveVideosRemovesBatch(t *testing.T) {
	f := newPlaylistFixture()
	f.seed("p1", "u1", "a", "b", "c")

	playlist, err := f.svc.RemoveVideos(context.Background(), "u1", "p1", []string{"a", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(playlist.Videos) != 1 || playlist.Videos[0] != "b" {
		t.Fatalf("expected only b left, got %v", playlist.Videos)
	}
}

func TestAddVideosDedupesRequest(t *testing.T) {
	f := newPlaylistFixture()
	f.seed("p1", "u1")

	playlist, err := f.svc.AddVideos(context.Background(), "u1", "p1", []string{"a", "a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(playlist.Videos) != 2 {
		t.Fatalf("duplicate request entries must collapse, got %v", playlist.Videos)
	}
}

func TestAddVideosEmptyBatchIsInvalid(t *testing.T) {
	f := newPlaylistFixture()
	f.seed("p1", "u1")

	_, err := f.svc.AddVideos(context.Background(), "u1", "p1", nil)
	if apperror.CodeOf(err) != apperror.CodeInvalid {
		t.Fatalf("expected invalid for empty batch, got %v", err)
	}
}

func TestAddVideosLostRaceIsConflict(t *testing.T) {
	f := newPlaylistFixture()
	f.seed("p1", "u1", "a")
	// validation passes but the conditional write matches nothing, as if a
	// concurrent add landed first
	f.playlists.forceUnmatched = true

	_, err := f.svc.AddVideos(context.Background(), "u1", "p1", []string{"b"})
	if !apperror.IsConflict(err) {
		t.Fatalf("expected conflict on lost race, got %v", err)
	}
	if f.metrics.conflicts != 1 {
		t.Fatalf("expected conflict recorded, got %d", f.metrics.conflicts)
	}
}

func TestPlaylistMutationRequiresOwnerOrAdmin(t *testing.T) {
	f := newPlaylistFixture()
	f.seed("p1", "u1", "a")
	f.users.users["intruder"] = &domain.User{ID: "intruder", Role: domain.RoleUser}
	f.users.users["admin"] = &domain.User{ID: "admin", Role: domain.RoleAdmin}

	_, err := f.svc.AddVideos(context.Background(), "intruder", "p1", []string{"b"})
	if apperror.CodeOf(err) != apperror.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	if _, err := f.svc.AddVideos(context.Background(), "admin", "p1", []string{"b"}); err != nil {
		t.Fatalf("admin must be allowed to modify: %v", err)
	}
}

func TestCreatePlaylistDedupesInitialVideos(t *testing.T) {
	f := newPlaylistFixture()

	playlist, err := f.svc.Create(context.Background(), "u1", &dto.CreatePlaylistRequest{
		Name:   "favorites",
		Videos: []string{"a", "b", "a"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(playlist.Videos) != 2 {
		t.Fatalf("expected initial set deduped, got %v", playlist.Videos)
	}
}

func TestGetPlaylistSkipsDanglingReferences(t *testing.T) {
	f := newPlaylistFixture()
	f.seed("p1", "u1", "gone", "v1")
	f.videos.videos["v1"] = &domain.Video{ID: "v1", Title: "kept"}

	view, err := f.svc.Get(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Videos) != 1 || view.Videos[0].ID != "v1" {
		t.Fatalf("dangling reference must be skipped, got %+v", view.Videos)
	}
}
