package zeltysync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/restoflow/resto_backend/models"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// fakeStore keeps rows in maps keyed by remote id, mirroring the store's
// upsert-by-remote-key contract. Guarded by a mutex so concurrent runner
// tests stay race-free.
type fakeStore struct {
	mu sync.Mutex

	restaurants map[uint]*models.Restaurant
	dishes      map[uint]*models.Dish
	orders      map[uint]*models.Order
	items       map[uint]*models.OrderItem

	runs         []*models.SyncRun
	recordErrors []*models.SyncRecordError

	// itemAttempts records every item upsert attempt in order.
	itemAttempts []uint
	// failItem, when set, decides whether an item upsert fails.
	failItem func(row *models.OrderItem) error
	// failRestaurant, when set, decides whether a restaurant upsert fails.
	failRestaurant func(row *models.Restaurant) error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		restaurants: map[uint]*models.Restaurant{},
		dishes:      map[uint]*models.Dish{},
		orders:      map[uint]*models.Order{},
		items:       map[uint]*models.OrderItem{},
	}
}

func (f *fakeStore) UpsertRestaurant(ctx context.Context, row *models.Restaurant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRestaurant != nil {
		if err := f.failRestaurant(row); err != nil {
			return err
		}
	}
	f.restaurants[row.RemoteId] = row
	return nil
}

func (f *fakeStore) UpsertDish(ctx context.Context, row *models.Dish) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dishes[row.RemoteId] = row
	return nil
}

func (f *fakeStore) UpsertOrder(ctx context.Context, row *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders[row.RemoteId] = row
	return nil
}

func (f *fakeStore) UpsertOrderItem(ctx context.Context, row *models.OrderItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.itemAttempts = append(f.itemAttempts, row.RemoteId)
	if f.failItem != nil {
		if err := f.failItem(row); err != nil {
			return err
		}
	}
	f.items[row.RemoteId] = row
	return nil
}

func (f *fakeStore) CreateRun(ctx context.Context, run *models.SyncRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	run.ID = uint(len(f.runs) + 1)
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeStore) FinishRun(ctx context.Context, runId uint, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, run := range f.runs {
		if run.ID == runId {
			if status, ok := updates["status"].(string); ok {
				run.Status = status
			}
			if n, ok := updates["records_synced"].(int); ok {
				run.RecordsSynced = n
			}
			if n, ok := updates["error_count"].(int); ok {
				run.ErrorCount = n
			}
		}
	}
	return nil
}

func (f *fakeStore) RecordError(ctx context.Context, rec *models.SyncRecordError) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recordErrors = append(f.recordErrors, rec)
	return nil
}

func (f *fakeStore) ListRuns(ctx context.Context, resource string, limit int) ([]models.SyncRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.SyncRun
	for i := len(f.runs) - 1; i >= 0 && len(out) < limit; i-- {
		if resource == "" || f.runs[i].Resource == resource {
			out = append(out, *f.runs[i])
		}
	}
	return out, nil
}

func (f *fakeStore) GetRun(ctx context.Context, id uint) (*models.SyncRun, []models.SyncRecordError, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, run := range f.runs {
		if run.ID == id {
			var errs []models.SyncRecordError
			for _, rec := range f.recordErrors {
				if rec.SyncRunId == id {
					errs = append(errs, *rec)
				}
			}
			return run, errs, nil
		}
	}
	return nil, nil, nil
}

func newTestClient(server *httptest.Server, logger *logrus.Logger) *Client {
	return &Client{
		BaseURL: server.URL,
		APIKey:  "test-key",
		HTTP:    &http.Client{Timeout: 5 * time.Second},
		Logger:  logger,
	}
}

// newTestSyncer wires a syncer against a fake remote and fake store, with a
// fixed clock and no inter-page pause.
func newTestSyncer(server *httptest.Server, store Store, now time.Time) (*Syncer, *test.Hook) {
	logger, hook := test.NewNullLogger()
	s := NewSyncer(newTestClient(server, logger), store, logger)
	s.Now = func() time.Time { return now }
	s.PageDelay = 0
	return s, hook
}
