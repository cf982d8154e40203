package dto

import "github.com/streamhive/video-service/domain"

type PublishVideoRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	VideoFile   string  `json:"video_file" binding:"required"`
	Thumbnail   string  `json:"thumbnail" binding:"required"`
	Duration    float64 `json:"duration" binding:"required,gt=0"`
}

type UpdateVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}

// VideoDetail is the video read model: the owner collapsed to a single
// summary object plus per-collection engagement counts.
type VideoDetail struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	VideoFile   string       `json:"video_file"`
	Thumbnail   string       `json:"thumbnail"`
	Duration    float64      `json:"duration"`
	IsPublished bool         `json:"is_published"`
	Owner       OwnerSummary `json:"owner"`

	LikesCount    int64 `json:"likes_count"`
	CommentsCount int64 `json:"comments_count"`
	TweetsCount   int64 `json:"tweets_count"`
	ViewsCount    int64 `json:"views_count"`

	Likes    []domain.Like    `json:"likes,omitempty"`
	Comments []domain.Comment `json:"comments,omitempty"`
	Tweets   []domain.Tweet   `json:"tweets,omitempty"`
	Views    []domain.View    `json:"views,omitempty"`
}

type ListVideosParams struct {
	Page     int
	Limit    int
	Query    string
	SortBy   string
	SortDesc bool
}

type VideoListResponse struct {
	Data  []domain.Video `json:"data"`
	Count int            `json:"count"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
