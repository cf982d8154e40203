package domain

import "time"

type Video struct {
	ID          string    `bson:"id" json:"id"`
	Owner       string    `bson:"owner" json:"owner"`
	VideoFile   string    `bson:"video_file" json:"video_file"`
	Thumbnail   string    `bson:"thumbnail" json:"thumbnail"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Duration    float64   `bson:"duration" json:"duration"`
	IsPublished bool      `bson:"is_published" json:"is_published"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
