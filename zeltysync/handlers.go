package zeltysync

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/restoflow/resto_backend/appctx"
	"github.com/restoflow/resto_backend/config"
	"github.com/restoflow/resto_backend/models"
)

// TriggerRestaurantsHandler runs the restaurant synchronizer outside the
// schedule.
func TriggerRestaurantsHandler(runner *Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		triggerSync(c, runner, ResourceRestaurants, RunOptions{})
	}
}

func TriggerDishesHandler(runner *Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		triggerSync(c, runner, ResourceDishes, RunOptions{})
	}
}

// TriggerOrdersHandler runs the order synchronizer with an optional explicit
// date window, used for backfills and recovery after an outage.
func TriggerOrdersHandler(runner *Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TriggerOrdersRequest
		if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		var opts RunOptions
		if strings.TrimSpace(req.From) != "" {
			from, err := time.Parse(dateLayout, req.From)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
				return
			}
			opts.From = from
		}
		if strings.TrimSpace(req.To) != "" {
			to, err := time.Parse(dateLayout, req.To)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
				return
			}
			opts.To = to
		}

		triggerSync(c, runner, ResourceOrders, opts)
	}
}

func triggerSync(c *gin.Context, runner *Runner, resource string, opts RunOptions) {
	ctx := appctx.SetTriggerSourceInContext(c.Request.Context(), models.SyncTriggeredManual)

	result, err := runner.Run(ctx, resource, opts)
	if err != nil {
		if errors.Is(err, ErrSyncInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": "sync already in progress"})
			return
		}
		resp := gin.H{"error": err.Error()}
		if result != nil {
			resp["runId"] = result.RunId
		}
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	c.JSON(http.StatusOK, TriggerResponse{
		RunId:         result.RunId,
		Status:        result.Status,
		RecordsSynced: result.RecordsSynced,
		ErrorCount:    result.ErrorCount,
	})
}

// SyncStatusHandler reports the last finished run of every resource: the
// redis cache first, falling back to the newest SyncRun row (which, while a
// run is in flight, is the running one).
func SyncStatusHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		resources := make(map[string]*SyncRunResponse, 3)
		for _, resource := range []string{ResourceRestaurants, ResourceDishes, ResourceOrders} {
			var cached models.SyncRun
			if ok, err := config.GetRedisObject(lastRunCacheKey(resource), &cached); err == nil && ok {
				resp := mapRunToResponse(cached)
				resources[resource] = &resp
				continue
			}

			runs, err := store.ListRuns(c.Request.Context(), resource, 1)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if len(runs) == 0 {
				resources[resource] = nil
				continue
			}
			resp := mapRunToResponse(runs[0])
			resources[resource] = &resp
		}
		c.JSON(http.StatusOK, SyncStatusResponse{Resources: resources})
	}
}

func SyncHistoryHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 20
		if v := strings.TrimSpace(c.Query("limit")); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
				limit = n
			}
		}
		resource := strings.TrimSpace(c.Query("resource"))

		runs, err := store.ListRuns(c.Request.Context(), resource, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		items := make([]SyncRunResponse, 0, len(runs))
		for _, run := range runs {
			items = append(items, mapRunToResponse(run))
		}
		c.JSON(http.StatusOK, SyncHistoryResponse{Items: items})
	}
}

func SyncRunDetailHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
			return
		}

		run, recordErrors, err := store.GetRun(c.Request.Context(), uint(id))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if run == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		c.JSON(http.StatusOK, SyncRunDetailResponse{
			SyncRunResponse: mapRunToResponse(*run),
			Errors:          mapErrors(recordErrors),
		})
	}
}
