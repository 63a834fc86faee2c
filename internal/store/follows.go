package store

import (
	"fmt"

	"github.com/anonto42/night-walker/backend/internal/apperrors"
	"github.com/anonto42/night-walker/backend/internal/models"
)

// Follow makes followerID follow targetID and bumps both counters.
func (s *Store) Follow(followerID, targetID string) (models.FollowResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if followerID == targetID {
		return 0, fmt.Errorf("cannot follow yourself: %w", apperrors.ErrInvalid)
	}
	follower, ok := s.usersByID[followerID]
	if !ok {
		return 0, fmt.Errorf("user %q: %w", followerID, apperrors.ErrNotFound)
	}
	target, ok := s.usersByID[targetID]
	if !ok {
		return 0, fmt.Errorf("user %q: %w", targetID, apperrors.ErrNotFound)
	}

	key := followKey{followerID: followerID, followingID: targetID}
	if _, ok := s.following[key]; ok {
		return models.AlreadyFollowing, nil
	}
	s.following[key] = struct{}{}
	s.follows = append(s.follows, models.Follow{FollowerID: followerID, FollowingID: targetID, CreatedAt: s.clock.Now()})
	follower.FollowingCount++
	target.FollowersCount++

	s.notifyLocked(targetID, models.NotificationFollow, followerID, "", "")
	return models.Followed, nil
}

// Unfollow removes the relation if there is one
func (s *Store) Unfollow(followerID, targetID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := followKey{followerID: followerID, followingID: targetID}
	if _, ok := s.following[key]; !ok {
		return
	}
	delete(s.following, key)
	for i, f := range s.follows {
		if f.FollowerID == followerID && f.FollowingID == targetID {
			s.follows = append(s.follows[:i], s.follows[i+1:]...)
			break
		}
	}
	if u, ok := s.usersByID[followerID]; ok && u.FollowingCount > 0 {
		u.FollowingCount--
	}
	if u, ok := s.usersByID[targetID]; ok && u.FollowersCount > 0 {
		u.FollowersCount--
	}
}

func (s *Store) IsFollowing(followerID, targetID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.following[followKey{followerID: followerID, followingID: targetID}]
	return ok
}

// Followers returns the users following userID, in follow order
func (s *Store) Followers(userID string) []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0)
	for _, f := range s.follows {
		if f.FollowingID == userID {
			if u, ok := s.usersByID[f.FollowerID]; ok {
				users = append(users, *u)
			}
		}
	}
	return users
}

// Following returns the users userID follows, in follow order
func (s *Store) Following(userID string) []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0)
	for _, f := range s.follows {
		if f.FollowerID == userID {
			if u, ok := s.usersByID[f.FollowingID]; ok {
				users = append(users, *u)
			}
		}
	}
	return users
}
