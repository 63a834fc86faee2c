package store

import (
	"fmt"

	"github.com/anonto42/night-walker/backend/internal/apperrors"
	"github.com/anonto42/night-walker/backend/internal/models"
)

// Like records that userID likes postID. Liking twice is not an error; the
// second call reports AlreadyLiked and creates no notification.
func (s *Store) Like(userID, postID string) (models.LikeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.postsByID[postID]
	if !ok {
		return 0, fmt.Errorf("post %q: %w", postID, apperrors.ErrNotFound)
	}

	key := likeKey{userID: userID, postID: postID}
	if _, ok := s.liked[key]; ok {
		return models.AlreadyLiked, nil
	}
	s.liked[key] = struct{}{}
	s.likes = append(s.likes, models.Like{UserID: userID, PostID: postID, CreatedAt: s.clock.Now()})

	s.notifyLocked(post.UserID, models.NotificationLike, userID, post.ID, "")
	return models.Liked, nil
}

// Unlike removes the like if there is one
func (s *Store) Unlike(userID, postID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := likeKey{userID: userID, postID: postID}
	if _, ok := s.liked[key]; !ok {
		return
	}
	delete(s.liked, key)
	for i, l := range s.likes {
		if l.UserID == userID && l.PostID == postID {
			s.likes = append(s.likes[:i], s.likes[i+1:]...)
			break
		}
	}
}

func (s *Store) HasLiked(userID, postID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.liked[likeKey{userID: userID, postID: postID}]
	return ok
}

// Likes returns the likes of a post in insertion order
func (s *Store) Likes(postID string) []models.Like {
	s.mu.RLock()
	defer s.mu.RUnlock()
	likes := make([]models.Like, 0)
	for _, l := range s.likes {
		if l.PostID == postID {
			likes = append(likes, l)
		}
	}
	return likes
}

func (s *Store) CreateComment(userID, postID, content string) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.postsByID[postID]
	if !ok {
		return models.Comment{}, fmt.Errorf("post %q: %w", postID, apperrors.ErrNotFound)
	}

	comment := &models.Comment{
		ID:        s.newID(),
		PostID:    postID,
		UserID:    userID,
		Content:   content,
		CreatedAt: s.clock.Now(),
	}
	s.comments = append(s.comments, comment)

	s.notifyLocked(post.UserID, models.NotificationComment, userID, post.ID, comment.ID)
	return *comment, nil
}

// GetComments returns the comments of postID in insertion order. It does
// not check that the post exists.
func (s *Store) GetComments(postID string) []models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comments := make([]models.Comment, 0)
	for _, c := range s.comments {
		if c.PostID == postID {
			comments = append(comments, *c)
		}
	}
	return comments
}
