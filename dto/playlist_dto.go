package dto

type CreatePlaylistRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Videos      []string `json:"videos"`
}

type PlaylistVideosRequest struct {
	Videos []string `json:"videos" binding:"required,min=1"`
}

// PlaylistView resolves member video IDs to summaries.
type PlaylistView struct {
	ID          string         `json:"id"`
	Owner       string         `json:"owner"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Videos      []VideoSummary `json:"videos"`
}

type VideoSummary struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Thumbnail string  `json:"thumbnail"`
	Duration  float64 `json:"duration"`
}
