package service

import (
	"context"
	"errors"
	"sync"

	"github.com/streamhive/video-service/apperror"
	"github.com/streamhive/video-service/domain"
)

var errBoom = errors.New("collection unavailable")

// In-memory fakes for the repository interfaces, shared by the service tests.
// Delete-many style methods consume their counts so repeated cascades see an
// already-clean store.

type fakeUserRepo struct {
	users     map[string]*domain.User
	createErr error
	touchErr  error
	touched   []string
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.users == nil {
		f.users = map[string]*domain.User{}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperror.NotFound("user not found")
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperror.NotFound("user not found")
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperror.NotFound("user not found")
}

func (f *fakeUserRepo) Update(ctx context.Context, id string, updates map[string]interface{}) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("user not found")
	}
	return u, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("user not found")
	}
	delete(f.users, id)
	return u, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	out := []domain.User{}
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) TouchWatchHistory(ctx context.Context, userID, videoID string) error {
	if f.touchErr != nil {
		return f.touchErr
	}
	f.touched = append(f.touched, videoID)
	return nil
}

type fakeVideoRepo struct {
	videos       map[string]*domain.Video
	findIDsResp  []domain.Video
	findIDsErr   error
	findOwnerErr error
	listResp     []domain.Video
	listErr      error
	deleteErr    error
	deleted      []string

	lastQuery    string
	lastSkip     int64
	lastLimit    int64
	lastSortBy   string
	lastSortDesc bool
}

func (f *fakeVideoRepo) Create(ctx context.Context, video *domain.Video) error {
	if f.videos == nil {
		f.videos = map[string]*domain.Video{}
	}
	f.videos[video.ID] = video
	return nil
}

func (f *fakeVideoRepo) FindByID(ctx context.Context, id string) (*domain.Video, error) {
	if v, ok := f.videos[id]; ok {
		return v, nil
	}
	return nil, apperror.NotFound("video not found")
}

func (f *fakeVideoRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.Video, error) {
	if f.findIDsErr != nil {
		return nil, f.findIDsErr
	}
	if f.findIDsResp != nil {
		return f.findIDsResp, nil
	}
	out := []domain.Video{}
	for _, id := range ids {
		if v, ok := f.videos[id]; ok {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeVideoRepo) FindByOwner(ctx context.Context, ownerID string) ([]domain.Video, error) {
	if f.findOwnerErr != nil {
		return nil, f.findOwnerErr
	}
	out := []domain.Video{}
	for _, v := range f.videos {
		if v.Owner == ownerID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeVideoRepo) Update(ctx context.Context, id string, updates map[string]interface{}) (*domain.Video, error) {
	v, ok := f.videos[id]
	if !ok {
		return nil, apperror.NotFound("video not found")
	}
	if title, ok := updates["title"].(string); ok {
		v.Title = title
	}
	if published, ok := updates["is_published"].(bool); ok {
		v.IsPublished = published
	}
	return v, nil
}

func (f *fakeVideoRepo) Delete(ctx context.Context, id string) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	if _, ok := f.videos[id]; !ok {
		return 0, nil
	}
	delete(f.videos, id)
	f.deleted = append(f.deleted, id)
	return 1, nil
}

func (f *fakeVideoRepo) List(ctx context.Context, query string, skip, limit int64, sortBy string, sortDesc bool) ([]domain.Video, error) {
	f.lastQuery = query
	f.lastSkip = skip
	f.lastLimit = limit
	f.lastSortBy = sortBy
	f.lastSortDesc = sortDesc
	return f.listResp, f.listErr
}

type fakeCommentRepo struct {
	count        int64
	byVideo      map[string]int64
	byOwner      map[string]int64
	byVideoErr   error
	byOwnerErr   error
	findVideoErr error
}

func (f *fakeCommentRepo) Create(ctx context.Context, comment *domain.Comment) error { return nil }

func (f *fakeCommentRepo) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	return nil, apperror.NotFound("comment not found")
}

func (f *fakeCommentRepo) FindByVideo(ctx context.Context, videoID string) ([]domain.Comment, error) {
	if f.findVideoErr != nil {
		return nil, f.findVideoErr
	}
	return []domain.Comment{}, nil
}

func (f *fakeCommentRepo) FindByOwner(ctx context.Context, ownerID string) ([]domain.Comment, error) {
	return []domain.Comment{}, nil
}

func (f *fakeCommentRepo) Update(ctx context.Context, id, content string) (*domain.Comment, error) {
	return nil, apperror.NotFound("comment not found")
}

func (f *fakeCommentRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeCommentRepo) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	return f.count, nil
}

func (f *fakeCommentRepo) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	if f.byOwnerErr != nil {
		return 0, f.byOwnerErr
	}
	n := f.byOwner[ownerID]
	delete(f.byOwner, ownerID)
	return n, nil
}

func (f *fakeCommentRepo) DeleteByVideo(ctx context.Context, videoID string) (int64, error) {
	if f.byVideoErr != nil {
		return 0, f.byVideoErr
	}
	n := f.byVideo[videoID]
	delete(f.byVideo, videoID)
	return n, nil
}

type fakeTweetRepo struct {
	count      int64
	byVideo    map[string]int64
	byOwner    map[string]int64
	byVideoErr error
	byOwnerErr error
}

func (f *fakeTweetRepo) Create(ctx context.Context, tweet *domain.Tweet) error { return nil }

func (f *fakeTweetRepo) FindByID(ctx context.Context, id string) (*domain.Tweet, error) {
	return nil, apperror.NotFound("tweet not found")
}

func (f *fakeTweetRepo) FindByVideo(ctx context.Context, videoID string) ([]domain.Tweet, error) {
	return []domain.Tweet{}, nil
}

func (f *fakeTweetRepo) FindByOwner(ctx context.Context, ownerID string) ([]domain.Tweet, error) {
	return []domain.Tweet{}, nil
}

func (f *fakeTweetRepo) Update(ctx context.Context, id, content string) (*domain.Tweet, error) {
	return nil, apperror.NotFound("tweet not found")
}

func (f *fakeTweetRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeTweetRepo) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	return f.count, nil
}

func (f *fakeTweetRepo) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	if f.byOwnerErr != nil {
		return 0, f.byOwnerErr
	}
	n := f.byOwner[ownerID]
	delete(f.byOwner, ownerID)
	return n, nil
}

func (f *fakeTweetRepo) DeleteByVideo(ctx context.Context, videoID string) (int64, error) {
	if f.byVideoErr != nil {
		return 0, f.byVideoErr
	}
	n := f.byVideo[videoID]
	delete(f.byVideo, videoID)
	return n, nil
}

type fakeLikeRepo struct {
	count      int64
	byVideo    map[string]int64
	byUser     map[string]int64
	byVideoErr error
	byUserErr  error
}

func (f *fakeLikeRepo) Create(ctx context.Context, like *domain.Like) error { return nil }

func (f *fakeLikeRepo) FindByUserAndVideo(ctx context.Context, userID, videoID string) (*domain.Like, error) {
	return nil, apperror.NotFound("like not found")
}

func (f *fakeLikeRepo) FindByVideo(ctx context.Context, videoID string) ([]domain.Like, error) {
	return []domain.Like{}, nil
}

func (f *fakeLikeRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeLikeRepo) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	return f.count, nil
}

func (f *fakeLikeRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	if f.byUserErr != nil {
		return 0, f.byUserErr
	}
	n := f.byUser[userID]
	delete(f.byUser, userID)
	return n, nil
}

func (f *fakeLikeRepo) DeleteByVideo(ctx context.Context, videoID string) (int64, error) {
	if f.byVideoErr != nil {
		return 0, f.byVideoErr
	}
	n := f.byVideo[videoID]
	delete(f.byVideo, videoID)
	return n, nil
}

type fakeViewRepo struct {
	count       int64
	byVideo     map[string]int64
	byViewer    map[string]int64
	byVideoErr  error
	byViewerErr error
}

func (f *fakeViewRepo) Create(ctx context.Context, view *domain.View) error { return nil }

func (f *fakeViewRepo) FindByViewerAndVideo(ctx context.Context, viewerID, videoID string) (*domain.View, error) {
	return nil, apperror.NotFound("view not found")
}

func (f *fakeViewRepo) FindByVideo(ctx context.Context, videoID string) ([]domain.View, error) {
	return []domain.View{}, nil
}

func (f *fakeViewRepo) UpdateWatchDuration(ctx context.Context, id string, watchDuration float64) (*domain.View, error) {
	return nil, apperror.NotFound("view not found")
}

func (f *fakeViewRepo) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	return f.count, nil
}

func (f *fakeViewRepo) DeleteByViewer(ctx context.Context, viewerID string) (int64, error) {
	if f.byViewerErr != nil {
		return 0, f.byViewerErr
	}
	n := f.byViewer[viewerID]
	delete(f.byViewer, viewerID)
	return n, nil
}

func (f *fakeViewRepo) DeleteByVideo(ctx context.Context, videoID string) (int64, error) {
	if f.byVideoErr != nil {
		return 0, f.byVideoErr
	}
	n := f.byVideo[videoID]
	delete(f.byVideo, videoID)
	return n, nil
}

type fakeSubscriptionRepo struct {
	subs              map[string]*domain.Subscription // subscriber + "|" + channel
	countByChannel    map[string]int64
	countBySubscriber map[string]int64
	byUser            map[string]int64
	byUserErr         error
}

func (f *fakeSubscriptionRepo) Create(ctx context.Context, sub *domain.Subscription) error {
	if f.subs == nil {
		f.subs = map[string]*domain.Subscription{}
	}
	f.subs[sub.Subscriber+"|"+sub.Channel] = sub
	return nil
}

func (f *fakeSubscriptionRepo) FindBySubscriberAndChannel(ctx context.Context, subscriberID, channelID string) (*domain.Subscription, error) {
	if s, ok := f.subs[subscriberID+"|"+channelID]; ok {
		return s, nil
	}
	return nil, apperror.NotFound("subscription not found")
}

func (f *fakeSubscriptionRepo) FindByChannel(ctx context.Context, channelID string) ([]domain.Subscription, error) {
	return []domain.Subscription{}, nil
}

func (f *fakeSubscriptionRepo) FindBySubscriber(ctx context.Context, subscriberID string) ([]domain.Subscription, error) {
	return []domain.Subscription{}, nil
}

func (f *fakeSubscriptionRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeSubscriptionRepo) CountByChannel(ctx context.Context, channelID string) (int64, error) {
	return f.countByChannel[channelID], nil
}

func (f *fakeSubscriptionRepo) CountBySubscriber(ctx context.Context, subscriberID string) (int64, error) {
	return f.countBySubscriber[subscriberID], nil
}

func (f *fakeSubscriptionRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	if f.byUserErr != nil {
		return 0, f.byUserErr
	}
	n := f.byUser[userID]
	delete(f.byUser, userID)
	return n, nil
}

type fakePlaylistRepo struct {
	playlists      map[string]*domain.Playlist
	forceUnmatched bool
	pullCounts     map[string]int64
	pulled         []string
	byOwner        map[string]int64
	byOwnerErr     error
}

func (f *fakePlaylistRepo) Create(ctx context.Context, playlist *domain.Playlist) error {
	if f.playlists == nil {
		f.playlists = map[string]*domain.Playlist{}
	}
	f.playlists[playlist.ID] = playlist
	return nil
}

func (f *fakePlaylistRepo) FindByID(ctx context.Context, id string) (*domain.Playlist, error) {
	if p, ok := f.playlists[id]; ok {
		return p, nil
	}
	return nil, apperror.NotFound("playlist not found")
}

func (f *fakePlaylistRepo) FindByOwner(ctx context.Context, ownerID string) ([]domain.Playlist, error) {
	return []domain.Playlist{}, nil
}

func (f *fakePlaylistRepo) Delete(ctx context.Context, id string) error {
	delete(f.playlists, id)
	return nil
}

func (f *fakePlaylistRepo) AddVideos(ctx context.Context, id string, videoIDs []string) (bool, error) {
	if f.forceUnmatched {
		return false, nil
	}
	p, ok := f.playlists[id]
	if !ok {
		return false, nil
	}
	for _, v := range videoIDs {
		if p.Contains(v) {
			return false, nil
		}
	}
	p.Videos = append(p.Videos, videoIDs...)
	return true, nil
}

func (f *fakePlaylistRepo) RemoveVideos(ctx context.Context, id string, videoIDs []string) (bool, error) {
	if f.forceUnmatched {
		return false, nil
	}
	p, ok := f.playlists[id]
	if !ok {
		return false, nil
	}
	for _, v := range videoIDs {
		if !p.Contains(v) {
			return false, nil
		}
	}
	remove := map[string]bool{}
	for _, v := range videoIDs {
		remove[v] = true
	}
	kept := []string{}
	for _, v := range p.Videos {
		if !remove[v] {
			kept = append(kept, v)
		}
	}
	p.Videos = kept
	return true, nil
}

func (f *fakePlaylistRepo) PullVideoFromAll(ctx context.Context, videoID string) (int64, error) {
	f.pulled = append(f.pulled, videoID)
	n := f.pullCounts[videoID]
	delete(f.pullCounts, videoID)
	return n, nil
}

func (f *fakePlaylistRepo) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	if f.byOwnerErr != nil {
		return 0, f.byOwnerErr
	}
	n := f.byOwner[ownerID]
	delete(f.byOwner, ownerID)
	return n, nil
}

type fakePremiumRepo struct {
	latest    map[string]*domain.Premium
	byUser    map[string]int64
	byUserErr error
}

func (f *fakePremiumRepo) Create(ctx context.Context, premium *domain.Premium) error { return nil }

func (f *fakePremiumRepo) FindByID(ctx context.Context, id string) (*domain.Premium, error) {
	return nil, apperror.NotFound("premium membership not found")
}

func (f *fakePremiumRepo) FindByUser(ctx context.Context, userID string) ([]domain.Premium, error) {
	return []domain.Premium{}, nil
}

func (f *fakePremiumRepo) FindLatestByUser(ctx context.Context, userID string) (*domain.Premium, error) {
	if p, ok := f.latest[userID]; ok {
		return p, nil
	}
	return nil, apperror.NotFound("no premium membership for user")
}

func (f *fakePremiumRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakePremiumRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	if f.byUserErr != nil {
		return 0, f.byUserErr
	}
	n := f.byUser[userID]
	delete(f.byUser, userID)
	return n, nil
}

type fakeMetrics struct {
	mu          sync.Mutex
	removed     map[string]int64
	failures    map[string]int
	projections map[string]int
	conflicts   int
}

func (f *fakeMetrics) CascadeDocsRemoved(parentKind, collection string, count int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removed == nil {
		f.removed = map[string]int64{}
	}
	f.removed[parentKind+"/"+collection] += count
}

func (f *fakeMetrics) CascadeFailure(parentKind, collection string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures == nil {
		f.failures = map[string]int{}
	}
	f.failures[parentKind+"/"+collection]++
}

func (f *fakeMetrics) ProjectionServed(projection string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.projections == nil {
		f.projections = map[string]int{}
	}
	f.projections[projection]++
}

func (f *fakeMetrics) PlaylistConflict() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conflicts++
}
