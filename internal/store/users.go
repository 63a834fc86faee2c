package store

import (
	"fmt"

	"github.com/anonto42/night-walker/backend/internal/apperrors"
	"github.com/anonto42/night-walker/backend/internal/models"
)

// CreateUser registers a new user. passwordHash is stored as given.
// Username and email are matched exactly.
func (s *Store) CreateUser(username, email, passwordHash, displayName string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.usersByUsername[username]; ok {
		return models.User{}, fmt.Errorf("username already exists: %w", apperrors.ErrConflict)
	}
	if _, ok := s.usersByEmail[email]; ok {
		return models.User{}, fmt.Errorf("email already exists: %w", apperrors.ErrConflict)
	}

	user := &models.User{
		ID:          s.newID(),
		Username:    username,
		Email:       email,
		Password:    passwordHash,
		DisplayName: displayName,
		CreatedAt:   s.clock.Now(),
	}
	s.insertUserLocked(user)
	return *user, nil
}

func (s *Store) insertUserLocked(user *models.User) {
	s.users = append(s.users, user)
	s.usersByID[user.ID] = user
	s.usersByUsername[user.Username] = user
	s.usersByEmail[user.Email] = user
}

func (s *Store) GetUserByID(id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.usersByID[id]
	if !ok {
		return models.User{}, fmt.Errorf("user %q: %w", id, apperrors.ErrNotFound)
	}
	return *user, nil
}

func (s *Store) GetUserByUsername(username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.usersByUsername[username]
	if !ok {
		return models.User{}, fmt.Errorf("user %q: %w", username, apperrors.ErrNotFound)
	}
	return *user, nil
}

func (s *Store) GetUserByEmail(email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.usersByEmail[email]
	if !ok {
		return models.User{}, fmt.Errorf("user with email %q: %w", email, apperrors.ErrNotFound)
	}
	return *user, nil
}

// UpdateProfile applies every non-nil field of req, empty values included.
func (s *Store) UpdateProfile(userID string, req models.UpdateUserRequest) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.usersByID[userID]
	if !ok {
		return models.User{}, fmt.Errorf("user %q: %w", userID, apperrors.ErrNotFound)
	}

	if req.Email != nil && *req.Email != user.Email {
		if _, taken := s.usersByEmail[*req.Email]; taken {
			return models.User{}, fmt.Errorf("email already exists: %w", apperrors.ErrConflict)
		}
		delete(s.usersByEmail, user.Email)
		user.Email = *req.Email
		s.usersByEmail[user.Email] = user
	}
	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	return *user, nil
}

// compactLocked returns the compact author info, zero value for unknown users
func (s *Store) compactLocked(userID string) models.UserCompact {
	if user, ok := s.usersByID[userID]; ok {
		return user.ToCompact()
	}
	return models.UserCompact{ID: userID}
}
