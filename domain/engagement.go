package domain

import "time"

// Comment, Like, Tweet and View all reference a user and a video with no
// store-enforced foreign keys; the cascade service is what keeps them from
// going orphaned when either parent is deleted.

type Comment struct {
	ID        string    `bson:"id" json:"id"`
	Owner     string    `bson:"owner" json:"owner"`
	Video     string    `bson:"video" json:"video"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type Like struct {
	ID        string    `bson:"id" json:"id"`
	LikedBy   string    `bson:"liked_by" json:"liked_by"`
	Video     string    `bson:"video" json:"video"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type Tweet struct {
	ID        string    `bson:"id" json:"id"`
	Owner     string    `bson:"owner" json:"owner"`
	Video     string    `bson:"video" json:"video"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type View struct {
	ID            string    `bson:"id" json:"id"`
	Viewer        string    `bson:"viewer" json:"viewer"`
	Video         string    `bson:"video" json:"video"`
	WatchDuration float64   `bson:"watch_duration" json:"watch_duration"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}
