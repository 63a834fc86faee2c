package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/anonto42/night-walker/backend/internal/apperrors"
	"github.com/anonto42/night-walker/backend/internal/models"
)

// CreatePost stores every upload through the blob store and then inserts
// the post. Nothing is inserted if an upload fails, and the blobs already
// written are removed again.
func (s *Store) CreatePost(ctx context.Context, userID, content string, uploads []models.Upload) (models.Post, error) {
	if _, err := s.GetUserByID(userID); err != nil {
		return models.Post{}, err
	}

	postID := s.newID()
	media, err := s.storeUploads(ctx, postID, uploads)
	if err != nil {
		return models.Post{}, err
	}

	post := &models.Post{
		ID:        postID,
		UserID:    userID,
		Content:   content,
		Media:     media,
		CreatedAt: s.clock.Now(),
	}

	s.mu.Lock()
	s.posts = append(s.posts, post)
	s.postsByID[post.ID] = post
	s.mu.Unlock()

	return clonePost(post), nil
}

func (s *Store) storeUploads(ctx context.Context, postID string, uploads []models.Upload) ([]models.Media, error) {
	media := make([]models.Media, 0, len(uploads))
	if len(uploads) == 0 {
		return media, nil
	}
	if s.blobs == nil {
		return nil, fmt.Errorf("no blob store configured: %w", apperrors.ErrStorageFailure)
	}

	for i, up := range uploads {
		name := fmt.Sprintf("%s_media_%d%s", postID, i, filepath.Ext(up.Filename))
		ref, err := s.blobs.Put(ctx, name, up.ContentType, up.Data)
		if err != nil {
			s.discardBlobs(media)
			return nil, fmt.Errorf("storing %q: %w: %w", up.Filename, apperrors.ErrStorageFailure, err)
		}
		media = append(media, models.Media{Type: models.MediaTypeFor(up.ContentType), URL: ref})
	}
	return media, nil
}

// discardBlobs is best effort, the caller already reports the failure
func (s *Store) discardBlobs(media []models.Media) {
	for _, m := range media {
		_ = s.blobs.Delete(context.Background(), m.URL)
	}
}

// UploadAvatar stores the image and records it as the user's avatar
func (s *Store) UploadAvatar(ctx context.Context, userID string, up models.Upload) (models.User, error) {
	if _, err := s.GetUserByID(userID); err != nil {
		return models.User{}, err
	}
	if s.blobs == nil {
		return models.User{}, fmt.Errorf("no blob store configured: %w", apperrors.ErrStorageFailure)
	}
	if models.MediaTypeFor(up.ContentType) != models.MediaTypeImage {
		return models.User{}, fmt.Errorf("avatar must be an image: %w", apperrors.ErrInvalid)
	}

	name := fmt.Sprintf("%s_avatar_%s%s", userID, s.newID(), filepath.Ext(up.Filename))
	ref, err := s.blobs.Put(ctx, name, up.ContentType, up.Data)
	if err != nil {
		return models.User{}, fmt.Errorf("storing avatar: %w: %w", apperrors.ErrStorageFailure, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	user := s.usersByID[userID]
	user.Avatar = &ref
	return *user, nil
}

func (s *Store) GetPost(id string) (models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.postsByID[id]
	if !ok {
		return models.Post{}, fmt.Errorf("post %q: %w", id, apperrors.ErrNotFound)
	}
	return clonePost(post), nil
}

// ListPosts returns every post in insertion order
func (s *Store) ListPosts() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterPostsLocked(func(*models.Post) bool { return true })
}

// GetUserPosts returns the posts owned by userID in insertion order. An
// unknown user yields an empty list.
func (s *Store) GetUserPosts(userID string) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterPostsLocked(func(p *models.Post) bool { return p.UserID == userID })
}

// Feed returns the posts of userID and of the users it follows, newest
// first. Posts created at the same instant are ordered latest insert first.
func (s *Store) Feed(userID string) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]models.Post, 0)
	for i := len(s.posts) - 1; i >= 0; i-- {
		p := s.posts[i]
		if p.UserID == userID {
			posts = append(posts, clonePost(p))
			continue
		}
		if _, ok := s.following[followKey{followerID: userID, followingID: p.UserID}]; ok {
			posts = append(posts, clonePost(p))
		}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts
}

func (s *Store) filterPostsLocked(keep func(*models.Post) bool) []models.Post {
	posts := make([]models.Post, 0)
	for _, p := range s.posts {
		if keep(p) {
			posts = append(posts, clonePost(p))
		}
	}
	return posts
}

// ViewPosts enriches posts with author, derived counters and whether
// viewerID liked them. viewerID may be empty for anonymous callers.
func (s *Store) ViewPosts(viewerID string, posts []models.Post) []models.PostView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	likes := make(map[string]int)
	for _, l := range s.likes {
		likes[l.PostID]++
	}
	comments := make(map[string]int)
	for _, c := range s.comments {
		comments[c.PostID]++
	}

	views := make([]models.PostView, len(posts))
	for i, p := range posts {
		_, hasLiked := s.liked[likeKey{userID: viewerID, postID: p.ID}]
		views[i] = models.PostView{
			Post:          p,
			Author:        s.compactLocked(p.UserID),
			LikesCount:    likes[p.ID],
			CommentsCount: comments[p.ID],
			HasLiked:      viewerID != "" && hasLiked,
		}
	}
	return views
}
