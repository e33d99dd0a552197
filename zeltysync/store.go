package zeltysync

import (
	"context"
	"errors"

	"github.com/restoflow/resto_backend/config"
	"github.com/restoflow/resto_backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStoreNotReady is returned while the database connection is still being
// established at startup.
var ErrStoreNotReady = errors.New("database not connected yet")

// Store is the reconciliation store: one table per synced resource, accessed
// only through insert-or-update keyed by the remote identifier, plus the run
// bookkeeping rows. Synchronizers never read back what they write.
type Store interface {
	UpsertRestaurant(ctx context.Context, row *models.Restaurant) error
	UpsertDish(ctx context.Context, row *models.Dish) error
	UpsertOrder(ctx context.Context, row *models.Order) error
	UpsertOrderItem(ctx context.Context, row *models.OrderItem) error

	CreateRun(ctx context.Context, run *models.SyncRun) error
	FinishRun(ctx context.Context, runId uint, updates map[string]interface{}) error
	RecordError(ctx context.Context, rec *models.SyncRecordError) error
	ListRuns(ctx context.Context, resource string, limit int) ([]models.SyncRun, error)
	GetRun(ctx context.Context, id uint) (*models.SyncRun, []models.SyncRecordError, error)
}

// gormStore resolves the global DB handle per call: the service registers its
// routes and starts listening before the database connection is established.
// A non-nil db pins the handle instead, used by tests.
type gormStore struct {
	db *gorm.DB
}

func NewStore() Store {
	return &gormStore{}
}

// NewStoreWithDB returns a store bound to the given handle.
func NewStoreWithDB(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) conn() (*gorm.DB, error) {
	if s.db != nil {
		return s.db, nil
	}
	db := config.GetDB()
	if db == nil {
		return nil, ErrStoreNotReady
	}
	return db, nil
}

// upsertByRemoteId is a full replace: on conflict with the remote id, every
// mutable column is overwritten with the incoming value.
func upsertByRemoteId(ctx context.Context, db *gorm.DB, row interface{}) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "remote_id"}},
		UpdateAll: true,
	}).Create(row).Error
}

func (s *gormStore) UpsertRestaurant(ctx context.Context, row *models.Restaurant) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	return upsertByRemoteId(ctx, db, row)
}

func (s *gormStore) UpsertDish(ctx context.Context, row *models.Dish) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	return upsertByRemoteId(ctx, db, row)
}

func (s *gormStore) UpsertOrder(ctx context.Context, row *models.Order) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	return upsertByRemoteId(ctx, db, row)
}

func (s *gormStore) UpsertOrderItem(ctx context.Context, row *models.OrderItem) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	return upsertByRemoteId(ctx, db, row)
}

func (s *gormStore) CreateRun(ctx context.Context, run *models.SyncRun) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Create(run).Error
}

func (s *gormStore) FinishRun(ctx context.Context, runId uint, updates map[string]interface{}) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	return db.WithContext(ctx).
		Model(&models.SyncRun{}).
		Where("id = ?", runId).
		Updates(updates).Error
}

func (s *gormStore) RecordError(ctx context.Context, rec *models.SyncRecordError) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Create(rec).Error
}

func (s *gormStore) ListRuns(ctx context.Context, resource string, limit int) ([]models.SyncRun, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	q := db.WithContext(ctx).Model(&models.SyncRun{}).Order("id desc").Limit(limit)
	if resource != "" {
		q = q.Where("resource = ?", resource)
	}
	var runs []models.SyncRun
	if err := q.Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (s *gormStore) GetRun(ctx context.Context, id uint) (*models.SyncRun, []models.SyncRecordError, error) {
	db, err := s.conn()
	if err != nil {
		return nil, nil, err
	}
	var run models.SyncRun
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	var errs []models.SyncRecordError
	if err := db.WithContext(ctx).Where("sync_run_id = ?", run.ID).Order("id desc").Find(&errs).Error; err != nil {
		return nil, nil, err
	}
	return &run, errs, nil
}
