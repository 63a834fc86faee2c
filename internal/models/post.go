package models

import (
	"strings"
	"time"
)

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Media is one attachment of a post
type Media struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Post is immutable once created. Like and comment counts are derived.
type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64"`
	UserID    string    `json:"user_id" gorm:"index;size:64"`
	Content   string    `json:"content"`
	Media     []Media   `json:"media" gorm:"serializer:json;type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	Sequence
}

// PostView is a post with author info and viewer-specific flags
type PostView struct {
	Post
	Author        UserCompact `json:"author"`
	LikesCount    int         `json:"likes"`
	CommentsCount int         `json:"comments"`
	HasLiked      bool        `json:"has_liked"`
}

// Upload is a media blob received with a new post
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// MediaTypeFor maps a declared content type to a media type tag
func MediaTypeFor(contentType string) string {
	if strings.HasPrefix(contentType, "image/") {
		return MediaTypeImage
	}
	return MediaTypeVideo
}
