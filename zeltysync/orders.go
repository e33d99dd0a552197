package zeltysync

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"github.com/restoflow/resto_backend/config"
	"github.com/restoflow/resto_backend/models"
	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

// ItemResult is the outcome of one order item's upsert. Item failures are a
// deliberate partial-failure policy: they are reported here (and persisted as
// SyncRecordError rows when a run id is set) instead of aborting the run.
type ItemResult struct {
	ItemRemoteId  uint
	OrderRemoteId uint
	Err           error
}

// OrderSyncResult is what one order sync run produced.
type OrderSyncResult struct {
	OrdersSynced int
	ItemResults  []ItemResult
}

// FailedItems returns only the item results that carry an error.
func (r *OrderSyncResult) FailedItems() []ItemResult {
	var failed []ItemResult
	for _, res := range r.ItemResults {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// DefaultOrderWindow computes the date range used when the caller gives no
// explicit bounds: from the last day of the previous month through the last
// day of the current month.
func DefaultOrderWindow(now time.Time) (time.Time, time.Time) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	from := monthStart.AddDate(0, 0, -1)
	to := monthStart.AddDate(0, 1, -1)
	return from, to
}

// SyncOrders pages through the orders of the given date window with inline
// item expansion. The order header is upserted first, then each nested item;
// item failures are isolated per record, order-level and page-level failures
// abort the run. runId links isolated failures to their SyncRun row; zero
// means no bookkeeping.
func (s *Syncer) SyncOrders(ctx context.Context, from time.Time, to time.Time, runId uint) (*OrderSyncResult, error) {
	if from.IsZero() || to.IsZero() {
		defFrom, defTo := DefaultOrderWindow(s.Now())
		if from.IsZero() {
			from = defFrom
		}
		if to.IsZero() {
			to = defTo
		}
	}

	result := &OrderSyncResult{}
	seenAt := s.Now()
	offset := 0
	page := 0

	for {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(s.PageSize))
		params.Set("offset", strconv.Itoa(offset))
		params.Set("from", from.Format(dateLayout))
		params.Set("to", to.Format(dateLayout))
		params.Set("expand", "items")

		body, err := s.Client.Get(ctx, "/orders", params)
		if err != nil {
			config.LogError(s.Logger, "zeltysync", "SyncOrders", "fetch orders page", logrus.Fields{"offset": offset, "status": s.statusOf(err)}, err)
			return result, err
		}

		var resp orderListResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			config.LogError(s.Logger, "zeltysync", "SyncOrders", "decode orders page", logrus.Fields{"offset": offset}, err)
			return result, err
		}

		for _, ro := range resp.Orders {
			if bad := invalidOrderTimestamps(ro); len(bad) > 0 {
				s.Logger.WithFields(logrus.Fields{
					"module":    "zeltysync",
					"remote_id": ro.ID,
					"fields":    bad,
				}).Warn("order has malformed timestamps; stored as zero values")
			}
			row := mapRemoteOrder(ro, seenAt)
			if err := s.Store.UpsertOrder(ctx, row); err != nil {
				config.LogError(s.Logger, "zeltysync", "SyncOrders", "upsert order", logrus.Fields{"remote_id": ro.ID}, err)
				return result, err
			}
			result.OrdersSynced++

			for _, ri := range ro.Items {
				itemErr := s.syncOrderItem(ctx, ri, ro.ID, seenAt, runId)
				result.ItemResults = append(result.ItemResults, ItemResult{
					ItemRemoteId:  ri.ID,
					OrderRemoteId: ro.ID,
					Err:           itemErr,
				})
			}
		}

		page++
		s.Logger.WithFields(logrus.Fields{
			"module":     "zeltysync",
			"resource":   ResourceOrders,
			"page":       page,
			"page_count": len(resp.Orders),
			"total":      result.OrdersSynced,
		}).Info("orders page synced")

		if len(resp.Orders) < s.PageSize {
			break
		}
		offset += s.PageSize
		if err := s.pausePage(ctx); err != nil {
			return result, err
		}
	}

	s.Logger.WithFields(logrus.Fields{
		"module":      "zeltysync",
		"resource":    ResourceOrders,
		"from":        from.Format(dateLayout),
		"to":          to.Format(dateLayout),
		"total":       result.OrdersSynced,
		"item_errors": len(result.FailedItems()),
	}).Info("orders synced")
	return result, nil
}

// syncOrderItem maps and upserts one nested item. Failures are logged with
// the raw payload and recorded, never propagated.
func (s *Syncer) syncOrderItem(ctx context.Context, ri zeltyOrderItem, orderRemoteId uint, seenAt time.Time, runId uint) error {
	row, err := mapRemoteOrderItem(ri, orderRemoteId, seenAt)
	if err == nil {
		err = s.Store.UpsertOrderItem(ctx, row)
	}
	if err == nil {
		return nil
	}

	payload, _ := json.Marshal(ri)
	config.LogError(s.Logger, "zeltysync", "syncOrderItem", "upsert order item", logrus.Fields{
		"remote_id":       ri.ID,
		"order_remote_id": orderRemoteId,
		"payload":         string(payload),
	}, err)

	if runId != 0 {
		recErr := s.Store.RecordError(ctx, &models.SyncRecordError{
			SyncRunId:   runId,
			EntityType:  "order_item",
			RemoteId:    strconv.FormatUint(uint64(ri.ID), 10),
			Message:     err.Error(),
			PayloadJSON: payload,
		})
		if recErr != nil {
			config.LogError(s.Logger, "zeltysync", "syncOrderItem", "record item error", logrus.Fields{"remote_id": ri.ID}, recErr)
		}
	}
	return err
}
