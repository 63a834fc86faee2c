package store

import (
	"fmt"

	"github.com/anonto42/night-walker/backend/internal/apperrors"
	"github.com/anonto42/night-walker/backend/internal/models"
)

// Snapshot copies every collection in insertion order
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := models.Snapshot{
		Users:         make([]models.User, 0, len(s.users)),
		Posts:         make([]models.Post, 0, len(s.posts)),
		Comments:      make([]models.Comment, 0, len(s.comments)),
		Likes:         append([]models.Like{}, s.likes...),
		Follows:       append([]models.Follow{}, s.follows...),
		Notifications: make([]models.Notification, 0, len(s.notifications)),
	}
	for _, u := range s.users {
		snap.Users = append(snap.Users, *u)
	}
	for _, p := range s.posts {
		snap.Posts = append(snap.Posts, clonePost(p))
	}
	for _, c := range s.comments {
		snap.Comments = append(snap.Comments, *c)
	}
	for _, n := range s.notifications {
		snap.Notifications = append(snap.Notifications, cloneNotification(n))
	}
	return snap
}

// Restore replaces the whole state with snap. On error the store is left
// unchanged.
func (s *Store) Restore(snap models.Snapshot) error {
	next := &Store{}
	next.reset()

	for i := range snap.Users {
		u := snap.Users[i]
		if _, ok := next.usersByUsername[u.Username]; ok {
			return fmt.Errorf("restore: username %q: %w", u.Username, apperrors.ErrConflict)
		}
		if _, ok := next.usersByEmail[u.Email]; ok {
			return fmt.Errorf("restore: email %q: %w", u.Email, apperrors.ErrConflict)
		}
		next.insertUserLocked(&u)
	}
	for i := range snap.Posts {
		p := clonePost(&snap.Posts[i])
		next.posts = append(next.posts, &p)
		next.postsByID[p.ID] = &p
	}
	for i := range snap.Comments {
		c := snap.Comments[i]
		next.comments = append(next.comments, &c)
	}
	for _, l := range snap.Likes {
		key := likeKey{userID: l.UserID, postID: l.PostID}
		if _, ok := next.liked[key]; ok {
			continue
		}
		next.liked[key] = struct{}{}
		next.likes = append(next.likes, l)
	}
	for _, f := range snap.Follows {
		key := followKey{followerID: f.FollowerID, followingID: f.FollowingID}
		if _, ok := next.following[key]; ok {
			continue
		}
		next.following[key] = struct{}{}
		next.follows = append(next.follows, f)
	}
	for i := range snap.Notifications {
		n := cloneNotification(&snap.Notifications[i])
		next.notifications = append(next.notifications, &n)
		next.notificationsByID[n.ID] = &n
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users, s.usersByID, s.usersByUsername, s.usersByEmail = next.users, next.usersByID, next.usersByUsername, next.usersByEmail
	s.posts, s.postsByID = next.posts, next.postsByID
	s.comments = next.comments
	s.likes, s.liked = next.likes, next.liked
	s.follows, s.following = next.follows, next.following
	s.notifications, s.notificationsByID = next.notifications, next.notificationsByID
	return nil
}
