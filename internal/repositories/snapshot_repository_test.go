package repositories_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/anonto42/night-walker/backend/internal/models"
	"github.com/anonto42/night-walker/backend/internal/repositories"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Runs against a disposable database, e.g.
// POSTGRES_TEST_DSN="host=localhost user=postgres dbname=nightwalker_test sslmode=disable"
func newTestRepository(t *testing.T) *repositories.PostgresSnapshotRepository {
	t.Helper()
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	repo := repositories.NewPostgresSnapshotRepository(db)
	require.NoError(t, repo.Migrate())
	return repo
}

func TestSnapshotSaveLoad(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	repo := newTestRepository(t)

	now := time.Now().UTC().Truncate(time.Microsecond)
	postID := gofakeit.UUID()
	commentID := gofakeit.UUID()
	snap := models.Snapshot{
		Users: []models.User{
			{ID: "u1", Username: gofakeit.Username(), Email: gofakeit.Email(), Password: "hash", DisplayName: "One", CreatedAt: now},
			{ID: "u2", Username: gofakeit.Username(), Email: gofakeit.Email(), Password: "hash", DisplayName: "Two", CreatedAt: now.Add(time.Second)},
		},
		Posts: []models.Post{
			{ID: postID, UserID: "u1", Content: "hello", Media: []models.Media{{Type: models.MediaTypeImage, URL: "/static/a.jpg"}}, CreatedAt: now},
		},
		Comments: []models.Comment{{ID: commentID, PostID: postID, UserID: "u2", Content: "hi", CreatedAt: now}},
		Likes:    []models.Like{{UserID: "u2", PostID: postID, CreatedAt: now}},
		Follows:  []models.Follow{{FollowerID: "u2", FollowingID: "u1", CreatedAt: now}},
		Notifications: []models.Notification{
			{ID: gofakeit.UUID(), UserID: "u1", Type: models.NotificationComment, SourceUserID: "u2", PostID: &postID, CommentID: &commentID, CreatedAt: now},
		},
	}

	require.NoError(t, repo.Save(ctx, snap))
	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Users, 2)
	require.Equal(t, "u1", loaded.Users[0].ID)
	require.Equal(t, snap.Posts[0].Media, loaded.Posts[0].Media)
	require.Equal(t, commentID, *loaded.Notifications[0].CommentID)

	// saving again replaces the previous state
	require.NoError(t, repo.Save(ctx, models.Snapshot{Users: snap.Users[:1]}))
	loaded, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Users, 1)
	require.Empty(t, loaded.Posts)
}

func TestSnapshotLoadKeepsInsertionOrderOnTimestampTies(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	repo := newTestRepository(t)

	now := time.Now().UTC().Truncate(time.Microsecond)
	// ids sort opposite to insertion order
	snap := models.Snapshot{
		Users: []models.User{
			{ID: "u-z", Username: gofakeit.Username(), Email: gofakeit.Email(), Password: "hash", DisplayName: "Z", CreatedAt: now},
			{ID: "u-m", Username: gofakeit.Username(), Email: gofakeit.Email(), Password: "hash", DisplayName: "M", CreatedAt: now},
			{ID: "u-a", Username: gofakeit.Username(), Email: gofakeit.Email(), Password: "hash", DisplayName: "A", CreatedAt: now},
		},
		Posts: []models.Post{
			{ID: "p-z", UserID: "u-z", Content: "first", CreatedAt: now},
			{ID: "p-a", UserID: "u-a", Content: "second", CreatedAt: now},
		},
	}

	require.NoError(t, repo.Save(ctx, snap))
	require.Zero(t, snap.Users[0].Seq)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Users, 3)
	require.Equal(t, []string{"u-z", "u-m", "u-a"}, []string{loaded.Users[0].ID, loaded.Users[1].ID, loaded.Users[2].ID})
	require.Equal(t, []string{"p-z", "p-a"}, []string{loaded.Posts[0].ID, loaded.Posts[1].ID})
}
