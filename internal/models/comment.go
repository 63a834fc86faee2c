package models

import "time"

// Comment represents a comment on a post
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64"`
	PostID    string    `json:"post_id" gorm:"index;size:64"`
	UserID    string    `json:"user_id" gorm:"index;size:64"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	Sequence
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
