package models

import "time"

// Follow represents a follow relationship
type Follow struct {
	FollowerID  string    `json:"follower_id" gorm:"primaryKey;size:64"`
	FollowingID string    `json:"following_id" gorm:"primaryKey;size:64;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	Sequence
}

type FollowResult int

const (
	Followed FollowResult = iota
	AlreadyFollowing
)
