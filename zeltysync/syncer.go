package zeltysync

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultPageSize  = 100
	defaultPageDelay = 5 * time.Second
)

// Syncer holds the configuration shared by the three resource synchronizers.
// Now and PageDelay are injectable so tests run on a fixed clock without
// wall-clock pauses.
type Syncer struct {
	Client *Client
	Store  Store
	Logger *logrus.Logger

	Now       func() time.Time
	PageSize  int
	PageDelay time.Duration
}

func NewSyncer(client *Client, store Store, logger *logrus.Logger) *Syncer {
	return &Syncer{
		Client:    client,
		Store:     store,
		Logger:    logger,
		Now:       time.Now,
		PageSize:  defaultPageSize,
		PageDelay: defaultPageDelay,
	}
}

// pausePage waits the mandatory inter-page delay, honoring cancellation.
// The delay is a crude rate limit the provider expects between page fetches.
func (s *Syncer) pausePage(ctx context.Context) error {
	if s.PageDelay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.PageDelay):
		return nil
	}
}

func (s *Syncer) statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
