package repositories

import (
	"context"
	"time"

	"github.com/anonto42/night-walker/backend/internal/models"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SnapshotSource is satisfied by *store.Store
type SnapshotSource interface {
	Snapshot() models.Snapshot
	Restore(snap models.Snapshot) error
}

// Syncer keeps a store and its snapshot repository in step: it loads the
// saved state once and writes the live state back periodically and on
// Flush.
type Syncer struct {
	source   SnapshotSource
	repo     SnapshotRepository
	interval time.Duration
	log      *zap.Logger
}

func NewSyncer(source SnapshotSource, repo SnapshotRepository, interval time.Duration, log *zap.Logger) *Syncer {
	return &Syncer{source: source, repo: repo, interval: interval, log: log}
}

// Restore migrates the schema and loads the saved state into the store
func (s *Syncer) Restore(ctx context.Context) error {
	if err := s.repo.Migrate(); err != nil {
		return err
	}
	snap, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	if err := s.source.Restore(snap); err != nil {
		return errors.Wrap(err, "restoring snapshot")
	}
	s.log.Info("snapshot restored",
		zap.Int("users", len(snap.Users)),
		zap.Int("posts", len(snap.Posts)),
		zap.Int("notifications", len(snap.Notifications)))
	return nil
}

// Flush writes the current store state
func (s *Syncer) Flush(ctx context.Context) error {
	snap := s.source.Snapshot()
	if err := s.repo.Save(ctx, snap); err != nil {
		return err
	}
	s.log.Debug("snapshot saved", zap.Int("users", len(snap.Users)), zap.Int("posts", len(snap.Posts)))
	return nil
}

// Run flushes every interval until ctx is done. A zero interval disables
// the periodic flush.
func (s *Syncer) Run(ctx context.Context) {
	if s.interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Flush(ctx); err != nil {
				s.log.Error("periodic snapshot failed", zap.Error(err))
			}
		}
	}
}
