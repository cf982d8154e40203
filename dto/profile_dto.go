package dto

// ProfileView is the channel-profile read model joined from users,
// subscriptions, premiums and videos.
type ProfileView struct {
	ID                string             `json:"id"`
	Username          string             `json:"username"`
	Email             string             `json:"email"`
	FullName          string             `json:"full_name"`
	Avatar            string             `json:"avatar"`
	CoverImage        string             `json:"cover_image"`
	Role              string             `json:"role"`
	SubscribersCount  int64              `json:"subscribers_count"`
	SubscribedToCount int64              `json:"subscribed_to_count"`
	IsSubscriber      bool               `json:"is_subscriber"`
	IsPremiumUser     bool               `json:"is_premium_user"`
	WatchHistory      []WatchHistoryItem `json:"watch_history"`
}

type WatchHistoryItem struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Thumbnail string       `json:"thumbnail"`
	Duration  float64      `json:"duration"`
	Owner     OwnerSummary `json:"owner"`
}
