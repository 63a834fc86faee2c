package repositories

import (
	"context"

	"github.com/anonto42/night-walker/backend/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotRepository persists the whole store state
type SnapshotRepository interface {
	Migrate() error
	Save(ctx context.Context, snap models.Snapshot) error
	Load(ctx context.Context) (models.Snapshot, error)
}

// PostgresSnapshotRepository implements SnapshotRepository for PostgreSQL
type PostgresSnapshotRepository struct {
	db *gorm.DB
}

// NewPostgresSnapshotRepository creates a new PostgresSnapshotRepository
func NewPostgresSnapshotRepository(db *gorm.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

// tables in dependency order
func snapshotTables() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Notification{},
	}
}

// Migrate creates or updates the snapshot tables
func (r *PostgresSnapshotRepository) Migrate() error {
	if err := r.db.AutoMigrate(snapshotTables()...); err != nil {
		return errors.Wrap(err, "auto migrating snapshot tables failed")
	}
	return nil
}

// Save replaces the stored state with snap in a single transaction
func (r *PostgresSnapshotRepository) Save(ctx context.Context, snap models.Snapshot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tables := snapshotTables()
		for i := len(tables) - 1; i >= 0; i-- {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(tables[i]).Error; err != nil {
				return errors.Wrapf(err, "clearing %T failed", tables[i])
			}
		}

		if err := createAll(tx, snap.Users); err != nil {
			return errors.Wrap(err, "saving users failed")
		}
		if err := createAll(tx, snap.Posts); err != nil {
			return errors.Wrap(err, "saving posts failed")
		}
		if err := createAll(tx, snap.Comments); err != nil {
			return errors.Wrap(err, "saving comments failed")
		}
		if err := createAll(tx, snap.Likes); err != nil {
			return errors.Wrap(err, "saving likes failed")
		}
		if err := createAll(tx, snap.Follows); err != nil {
			return errors.Wrap(err, "saving follows failed")
		}
		if err := createAll(tx, snap.Notifications); err != nil {
			return errors.Wrap(err, "saving notifications failed")
		}
		return nil
	})
}

const batchSize = 500

type sequenced[T any] interface {
	*T
	SetSeq(n int64)
}

// createAll numbers rows by their position before inserting a copy of them
func createAll[T any, PT sequenced[T]](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	ordered := make([]T, len(rows))
	copy(ordered, rows)
	for i := range ordered {
		PT(&ordered[i]).SetSeq(int64(i + 1))
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&ordered, batchSize).Error
}

// Load reads every table back in the order it was saved
func (r *PostgresSnapshotRepository) Load(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot
	db := r.db.WithContext(ctx)

	if err := db.Order("seq").Find(&snap.Users).Error; err != nil {
		return models.Snapshot{}, errors.Wrap(err, "loading users failed")
	}
	if err := db.Order("seq").Find(&snap.Posts).Error; err != nil {
		return models.Snapshot{}, errors.Wrap(err, "loading posts failed")
	}
	if err := db.Order("seq").Find(&snap.Comments).Error; err != nil {
		return models.Snapshot{}, errors.Wrap(err, "loading comments failed")
	}
	if err := db.Order("seq").Find(&snap.Likes).Error; err != nil {
		return models.Snapshot{}, errors.Wrap(err, "loading likes failed")
	}
	if err := db.Order("seq").Find(&snap.Follows).Error; err != nil {
		return models.Snapshot{}, errors.Wrap(err, "loading follows failed")
	}
	if err := db.Order("seq").Find(&snap.Notifications).Error; err != nil {
		return models.Snapshot{}, errors.Wrap(err, "loading notifications failed")
	}
	return snap, nil
}
