package zeltysync

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/restoflow/resto_backend/config"
	"github.com/sirupsen/logrus"
)

// SyncDishes pages through the whole catalog (all restaurants, hidden dishes
// included) and upserts each dish keyed by its remote id. The loop continues
// while the last page came back full; a short or empty page terminates it.
// A mandatory pause separates consecutive page fetches.
func (s *Syncer) SyncDishes(ctx context.Context) (int, error) {
	seenAt := s.Now()
	total := 0
	offset := 0
	page := 0

	for {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(s.PageSize))
		params.Set("offset", strconv.Itoa(offset))
		params.Set("show_all", "true")
		params.Set("all_restaurants", "true")

		body, err := s.Client.Get(ctx, "/catalog/dishes", params)
		if err != nil {
			config.LogError(s.Logger, "zeltysync", "SyncDishes", "fetch dishes page", logrus.Fields{"offset": offset, "status": s.statusOf(err)}, err)
			return total, err
		}

		var resp dishListResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			config.LogError(s.Logger, "zeltysync", "SyncDishes", "decode dishes page", logrus.Fields{"offset": offset}, err)
			return total, err
		}

		for _, rd := range resp.Dishes {
			row := mapRemoteDish(rd, seenAt)
			if err := s.Store.UpsertDish(ctx, row); err != nil {
				config.LogError(s.Logger, "zeltysync", "SyncDishes", "upsert dish", logrus.Fields{"remote_id": rd.ID}, err)
				return total, err
			}
			total++
		}

		page++
		s.Logger.WithFields(logrus.Fields{
			"module":     "zeltysync",
			"resource":   ResourceDishes,
			"page":       page,
			"page_count": len(resp.Dishes),
			"total":      total,
		}).Info("dishes page synced")

		if len(resp.Dishes) < s.PageSize {
			break
		}
		offset += s.PageSize
		if err := s.pausePage(ctx); err != nil {
			return total, err
		}
	}

	s.Logger.WithFields(logrus.Fields{
		"module":   "zeltysync",
		"resource": ResourceDishes,
		"total":    total,
	}).Info("dishes synced")
	return total, nil
}
