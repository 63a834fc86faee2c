package store

import (
	"fmt"

	"github.com/anonto42/night-walker/backend/internal/apperrors"
	"github.com/anonto42/night-walker/backend/internal/models"
)

// notifyLocked records a notification for recipientID unless the actor is
// the recipient. Empty postID or commentID are left unset.
func (s *Store) notifyLocked(recipientID, kind, sourceUserID, postID, commentID string) {
	if recipientID == sourceUserID {
		return
	}
	n := &models.Notification{
		ID:           s.newID(),
		UserID:       recipientID,
		Type:         kind,
		SourceUserID: sourceUserID,
		CreatedAt:    s.clock.Now(),
	}
	if postID != "" {
		n.PostID = &postID
	}
	if commentID != "" {
		n.CommentID = &commentID
	}
	s.notifications = append(s.notifications, n)
	s.notificationsByID[n.ID] = n
}

// ListNotifications returns the notifications addressed to userID in
// insertion order, read and unread alike.
func (s *Store) ListNotifications(userID string) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	notifications := make([]models.Notification, 0)
	for _, n := range s.notifications {
		if n.UserID == userID {
			notifications = append(notifications, cloneNotification(n))
		}
	}
	return notifications
}

// EnrichNotifications attaches the compact source user to each notification
func (s *Store) EnrichNotifications(notifications []models.Notification) []models.EnrichedNotification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	enriched := make([]models.EnrichedNotification, len(notifications))
	for i, n := range notifications {
		enriched[i] = models.EnrichedNotification{
			Notification: n,
			SourceUser:   s.compactLocked(n.SourceUserID),
		}
	}
	return enriched
}

// MarkRead flags a notification of userID as read. Marking it again is a no-op.
func (s *Store) MarkRead(userID, notificationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notificationsByID[notificationID]
	if !ok {
		return fmt.Errorf("notification %q: %w", notificationID, apperrors.ErrNotFound)
	}
	if n.UserID != userID {
		return fmt.Errorf("notification %q: %w", notificationID, apperrors.ErrForbidden)
	}
	n.Read = true
	return nil
}

// MarkAllRead flags every notification of userID as read and returns how
// many changed.
func (s *Store) MarkAllRead(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := 0
	for _, n := range s.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			changed++
		}
	}
	return changed
}

func (s *Store) UnreadCount(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count
}
