package models

import "time"

// Like represents a like on a post. At most one per (user, post).
type Like struct {
	UserID    string    `json:"user_id" gorm:"primaryKey;size:64"`
	PostID    string    `json:"post_id" gorm:"primaryKey;size:64;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	Sequence
}

// LikeResult tells a new like apart from a repeated one
type LikeResult int

const (
	Liked LikeResult = iota
	AlreadyLiked
)
