// Package seed fills an empty store with the demo accounts of the
// Night Walker front end.
package seed

import (
	"fmt"
	"time"

	"github.com/anonto42/night-walker/backend/internal/models"
)

// Restorer is satisfied by *store.Store
type Restorer interface {
	Empty() bool
	Restore(snap models.Snapshot) error
}

// PasswordHasher is satisfied by *auth.Service
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// Demo inserts the demo data when the store is empty and reports whether it did
func Demo(st Restorer, hasher PasswordHasher, now time.Time) (bool, error) {
	if !st.Empty() {
		return false, nil
	}
	snap, err := DemoSnapshot(hasher, now)
	if err != nil {
		return false, err
	}
	if err := st.Restore(snap); err != nil {
		return false, fmt.Errorf("restoring demo data: %w", err)
	}
	return true, nil
}

func strPtr(s string) *string { return &s }

// DemoSnapshot builds the demo data relative to now
func DemoSnapshot(hasher PasswordHasher, now time.Time) (models.Snapshot, error) {
	pw1, err := hasher.HashPassword("password123")
	if err != nil {
		return models.Snapshot{}, err
	}
	pw2, err := hasher.HashPassword("password456")
	if err != nil {
		return models.Snapshot{}, err
	}

	day := 24 * time.Hour
	return models.Snapshot{
		Users: []models.User{
			{
				ID:             "user1",
				Username:       "cosmicwanderer",
				Email:          "cosmic@example.com",
				Password:       pw1,
				DisplayName:    "Cosmic Wanderer",
				Avatar:         strPtr("/static/avatar1.jpg"),
				Bio:            "Exploring the digital cosmos ✨",
				FollowersCount: 1024,
				FollowingCount: 256,
				CreatedAt:      now.Add(-120 * day),
			},
			{
				ID:             "user2",
				Username:       "stardust",
				Email:          "stardust@example.com",
				Password:       pw2,
				DisplayName:    "Star Dust",
				Avatar:         strPtr("/static/avatar2.jpg"),
				Bio:            "Digital artist and night owl 🦉",
				FollowersCount: 3500,
				FollowingCount: 420,
				CreatedAt:      now.Add(-90 * day),
			},
		},
		Posts: []models.Post{
			{
				ID:        "post1",
				UserID:    "user2",
				Content:   "Just finished my latest digital artwork. What do you think? #digitalart #nightwalker",
				Media:     []models.Media{{Type: models.MediaTypeImage, URL: "/static/post1.jpg"}},
				CreatedAt: now.Add(-5 * time.Hour),
			},
			{
				ID:        "post2",
				UserID:    "user1",
				Content:   "The night sky was absolutely breathtaking yesterday. Spent hours just gazing at the stars ✨",
				Media:     []models.Media{{Type: models.MediaTypeImage, URL: "/static/post2.jpg"}},
				CreatedAt: now.Add(-12 * time.Hour),
			},
		},
		Comments: []models.Comment{
			{
				ID:        "comment1",
				PostID:    "post1",
				UserID:    "user1",
				Content:   "This is absolutely stunning! The colors are otherworldly.",
				CreatedAt: now.Add(-4 * time.Hour),
			},
		},
		Likes: []models.Like{
			{UserID: "user1", PostID: "post1", CreatedAt: now.Add(-4 * time.Hour)},
			{UserID: "user2", PostID: "post2", CreatedAt: now.Add(-2 * time.Hour)},
		},
		Notifications: []models.Notification{
			{
				ID:           "notif1",
				UserID:       "user1",
				Type:         models.NotificationLike,
				SourceUserID: "user2",
				PostID:       strPtr("post2"),
				CreatedAt:    now.Add(-2 * time.Hour),
			},
		},
		Follows: []models.Follow{
			{FollowerID: "user1", FollowingID: "user2", CreatedAt: now.Add(-60 * day)},
			{FollowerID: "user2", FollowingID: "user1", CreatedAt: now.Add(-60 * day)},
		},
	}, nil
}
