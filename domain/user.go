package domain

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID           string    `bson:"id" json:"id"`
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email" json:"email"`
	FullName     string    `bson:"full_name" json:"full_name"`
	Avatar       string    `bson:"avatar" json:"avatar"`
	CoverImage   string    `bson:"cover_image" json:"cover_image"`
	Password     string    `bson:"password" json:"-"`
	RefreshToken string    `bson:"refresh_token" json:"-"`
	Role         Role      `bson:"role" json:"role"`
	WatchHistory []string  `bson:"watch_history" json:"watch_history"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
