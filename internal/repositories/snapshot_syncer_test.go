package repositories_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/night-walker/backend/internal/models"
	"github.com/anonto42/night-walker/backend/internal/repositories"
	"github.com/anonto42/night-walker/backend/internal/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryRepository struct {
	mu       sync.Mutex
	saved    models.Snapshot
	saves    int
	migrated bool
	loadErr  error
}

func (m *memoryRepository) Migrate() error {
	m.migrated = true
	return nil
}

func (m *memoryRepository) Save(_ context.Context, snap models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = snap
	m.saves++
	return nil
}

func (m *memoryRepository) Load(context.Context) (models.Snapshot, error) {
	return m.saved, m.loadErr
}

func (m *memoryRepository) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func TestSyncerRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := &memoryRepository{}

	first := store.New(nil)
	_, err := first.CreateUser("stardust", "star@example.com", "hash", "Star")
	require.NoError(t, err)
	require.NoError(t, repositories.NewSyncer(first, repo, 0, zap.NewNop()).Flush(ctx))

	second := store.New(nil)
	syncer := repositories.NewSyncer(second, repo, 0, zap.NewNop())
	require.NoError(t, syncer.Restore(ctx))
	require.True(t, repo.migrated)

	user, err := second.GetUserByUsername("stardust")
	require.NoError(t, err)
	require.Equal(t, "star@example.com", user.Email)
}

func TestSyncerRestoreError(t *testing.T) {
	repo := &memoryRepository{loadErr: errors.New("connection refused")}
	err := repositories.NewSyncer(store.New(nil), repo, 0, zap.NewNop()).Restore(context.Background())
	require.ErrorContains(t, err, "connection refused")
}

func TestSyncerRunFlushesPeriodically(t *testing.T) {
	repo := &memoryRepository{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		repositories.NewSyncer(store.New(nil), repo, 10*time.Millisecond, zap.NewNop()).Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return repo.saveCount() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
