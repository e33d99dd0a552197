package zeltysync

import (
	"context"
	"encoding/json"

	"github.com/restoflow/resto_backend/config"
	"github.com/sirupsen/logrus"
)

// SyncRestaurants fetches the full restaurant list (a single call, the
// endpoint is not paginated) and upserts each record keyed by its remote id.
// Any fetch or upsert error aborts the run; rows already upserted stay
// committed.
func (s *Syncer) SyncRestaurants(ctx context.Context) (int, error) {
	body, err := s.Client.Get(ctx, "/restaurants", nil)
	if err != nil {
		config.LogError(s.Logger, "zeltysync", "SyncRestaurants", "fetch restaurants", logrus.Fields{"status": s.statusOf(err)}, err)
		return 0, err
	}

	var resp restaurantListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		config.LogError(s.Logger, "zeltysync", "SyncRestaurants", "decode restaurants", nil, err)
		return 0, err
	}

	seenAt := s.Now()
	total := 0
	for _, rr := range resp.Restaurants {
		row := mapRemoteRestaurant(rr, seenAt)
		if err := s.Store.UpsertRestaurant(ctx, row); err != nil {
			config.LogError(s.Logger, "zeltysync", "SyncRestaurants", "upsert restaurant", logrus.Fields{"remote_id": rr.ID}, err)
			return total, err
		}
		total++
	}

	s.Logger.WithFields(logrus.Fields{
		"module":   "zeltysync",
		"resource": ResourceRestaurants,
		"total":    total,
	}).Info("restaurants synced")
	return total, nil
}
