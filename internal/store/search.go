package store

import (
	"strings"
	"unicode/utf8"

	"github.com/anonto42/night-walker/backend/internal/models"
)

// MinQueryLength is the shortest query the search functions answer
const MinQueryLength = 2

// SearchUsers matches query case-insensitively against username and
// display name.
func (s *Store) SearchUsers(query string) []models.User {
	users := make([]models.User, 0)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return users
	}
	q := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.Contains(strings.ToLower(u.Username), q) || strings.Contains(strings.ToLower(u.DisplayName), q) {
			users = append(users, *u)
		}
	}
	return users
}

// SearchPosts matches query case-insensitively against post content
func (s *Store) SearchPosts(query string) []models.Post {
	if utf8.RuneCountInString(query) < MinQueryLength {
		return make([]models.Post, 0)
	}
	q := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterPostsLocked(func(p *models.Post) bool {
		return strings.Contains(strings.ToLower(p.Content), q)
	})
}
