package handlers

import (
	"context"

	"github.com/anonto42/night-walker/backend/internal/models"
)

// The store interfaces below are all satisfied by *store.Store

type UserStore interface {
	GetUserByID(id string) (models.User, error)
	GetUserByUsername(username string) (models.User, error)
	UpdateProfile(userID string, req models.UpdateUserRequest) (models.User, error)
	UploadAvatar(ctx context.Context, userID string, up models.Upload) (models.User, error)
}

type PostStore interface {
	CreatePost(ctx context.Context, userID, content string, uploads []models.Upload) (models.Post, error)
	GetPost(id string) (models.Post, error)
	ListPosts() []models.Post
	GetUserPosts(userID string) []models.Post
	Feed(userID string) []models.Post
	ViewPosts(viewerID string, posts []models.Post) []models.PostView
}

type LikeStore interface {
	Like(userID, postID string) (models.LikeResult, error)
	Unlike(userID, postID string)
}

type CommentStore interface {
	CreateComment(userID, postID, content string) (models.Comment, error)
	GetComments(postID string) []models.Comment
}

type FollowStore interface {
	GetUserByID(id string) (models.User, error)
	Follow(followerID, targetID string) (models.FollowResult, error)
	Unfollow(followerID, targetID string)
	Followers(userID string) []models.User
	Following(userID string) []models.User
}

type NotificationStore interface {
	ListNotifications(userID string) []models.Notification
	EnrichNotifications(notifications []models.Notification) []models.EnrichedNotification
	MarkRead(userID, notificationID string) error
	MarkAllRead(userID string) int
	UnreadCount(userID string) int
}

type SearchStore interface {
	SearchUsers(query string) []models.User
	SearchPosts(query string) []models.Post
}

// Authenticator is satisfied by *auth.Service
type Authenticator interface {
	Signup(ctx context.Context, req models.CreateUserRequest) (string, models.User, error)
	Login(ctx context.Context, email, password string) (string, models.User, error)
	Logout(ctx context.Context, token string) error
	FederatedLogin(ctx context.Context, idToken string) (string, models.User, error)
}
