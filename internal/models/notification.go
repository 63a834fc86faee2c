package models

import "time"

const (
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationFollow  = "follow"
)

// Notification represents a user notification
type Notification struct {
	ID           string    `json:"id" gorm:"primaryKey;size:64"`
	UserID       string    `json:"user_id" gorm:"index;size:64"` // recipient
	Type         string    `json:"type" gorm:"size:30;index"`
	SourceUserID string    `json:"source_user_id" gorm:"size:64"`
	PostID       *string   `json:"post_id"`
	CommentID    *string   `json:"comment_id"`
	Read         bool      `json:"read" gorm:"default:false;index"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
	Sequence
}

// EnrichedNotification includes actor info
type EnrichedNotification struct {
	Notification
	SourceUser UserCompact `json:"source_user"`
}
