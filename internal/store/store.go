// Package store is the in-memory social graph: users, posts, comments,
// likes, follows and notifications.
//
// A single RWMutex serialises every mutation, so each check-then-insert
// (signup uniqueness, like, follow) is atomic. All methods return copies.
package store

import (
	"context"
	"sync"

	"github.com/anonto42/night-walker/backend/internal/models"
	"github.com/anonto42/night-walker/backend/internal/util"
	"github.com/google/uuid"
)

// BlobStore persists media blobs and hands back a retrievable reference
type BlobStore interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, ref string) error
}

type likeKey struct {
	userID string
	postID string
}

type followKey struct {
	followerID  string
	followingID string
}

// Store is constructed once per process and shared by every handler
type Store struct {
	mu    sync.RWMutex
	clock util.Clock
	blobs BlobStore
	newID func() string

	users           []*models.User
	usersByID       map[string]*models.User
	usersByUsername map[string]*models.User
	usersByEmail    map[string]*models.User

	posts     []*models.Post
	postsByID map[string]*models.Post

	comments []*models.Comment

	likes []models.Like
	liked map[likeKey]struct{}

	follows   []models.Follow
	following map[followKey]struct{}

	notifications     []*models.Notification
	notificationsByID map[string]*models.Notification
}

type Option func(*Store)

func WithClock(clock util.Clock) Option {
	return func(s *Store) { s.clock = clock }
}

// WithIDGenerator replaces the uuid generator
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New creates an empty store. blobs may be nil when media uploads are not
// supported; posts with media then fail with ErrStorageFailure.
func New(blobs BlobStore, opts ...Option) *Store {
	s := &Store{
		clock: util.NewRealClock(),
		blobs: blobs,
		newID: uuid.NewString,
	}
	s.reset()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) reset() {
	s.users = nil
	s.usersByID = make(map[string]*models.User)
	s.usersByUsername = make(map[string]*models.User)
	s.usersByEmail = make(map[string]*models.User)
	s.posts = nil
	s.postsByID = make(map[string]*models.Post)
	s.comments = nil
	s.likes = nil
	s.liked = make(map[likeKey]struct{})
	s.follows = nil
	s.following = make(map[followKey]struct{})
	s.notifications = nil
	s.notificationsByID = make(map[string]*models.Notification)
}

// Empty reports whether no user has been registered yet
func (s *Store) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users) == 0
}

func clonePost(p *models.Post) models.Post {
	c := *p
	c.Media = append([]models.Media{}, p.Media...)
	return c
}

func cloneNotification(n *models.Notification) models.Notification {
	c := *n
	if n.PostID != nil {
		id := *n.PostID
		c.PostID = &id
	}
	if n.CommentID != nil {
		id := *n.CommentID
		c.CommentID = &id
	}
	return c
}
