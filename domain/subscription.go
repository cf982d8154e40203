package domain

import "time"

type Subscription struct {
	ID         string    `bson:"id" json:"id"`
	Subscriber string    `bson:"subscriber" json:"subscriber"`
	Channel    string    `bson:"channel" json:"channel"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
