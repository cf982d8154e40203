package domain

import "time"

type Playlist struct {
	ID          string    `bson:"id" json:"id"`
	Owner       string    `bson:"owner" json:"owner"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Videos      []string  `bson:"videos" json:"videos"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// Contains reports membership of a video ID in the playlist's video set.
func (p *Playlist) Contains(videoID string) bool {
	for _, v := range p.Videos {
		if v == videoID {
			return true
		}
	}
	return false
}
