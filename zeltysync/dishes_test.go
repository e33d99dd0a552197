package zeltysync

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dishPageServer serves totalDishes dishes in limit-sized pages and counts
// the page requests it received.
func dishPageServer(t *testing.T, totalDishes int) (*httptest.Server, *int) {
	t.Helper()
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

		var records []string
		for i := offset; i < offset+limit && i < totalDishes; i++ {
			records = append(records, fmt.Sprintf(`{"id": %d, "id_restaurant": 1, "name": "Dish %d", "price": 10}`, i+1, i+1))
		}
		fmt.Fprintf(w, `{"dishes":[%s]}`, strings.Join(records, ","))
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func TestSyncDishes_PaginationTerminatesOnShortPage(t *testing.T) {
	// 2 full pages of 3 then a short page of 1: exactly 3 requests.
	server, requests := dishPageServer(t, 7)
	store := newFakeStore()
	syncer, _ := newTestSyncer(server, store, time.Now())
	syncer.PageSize = 3

	total, err := syncer.SyncDishes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.Equal(t, 3, *requests)
	assert.Len(t, store.dishes, 7)
}

func TestSyncDishes_EmptyFirstPage(t *testing.T) {
	server, requests := dishPageServer(t, 0)
	store := newFakeStore()
	syncer, _ := newTestSyncer(server, store, time.Now())
	syncer.PageSize = 3

	total, err := syncer.SyncDishes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Equal(t, 1, *requests)
}

// A page boundary that falls exactly on the total still issues the trailing
// empty-page request: the loop only stops on a short page.
func TestSyncDishes_ExactMultipleIssuesTrailingRequest(t *testing.T) {
	server, requests := dishPageServer(t, 6)
	store := newFakeStore()
	syncer, _ := newTestSyncer(server, store, time.Now())
	syncer.PageSize = 3

	total, err := syncer.SyncDishes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	assert.Equal(t, 3, *requests)
}

func TestSyncDishes_Idempotent(t *testing.T) {
	server, _ := dishPageServer(t, 5)
	store := newFakeStore()
	syncer, _ := newTestSyncer(server, store, time.Now())
	syncer.PageSize = 100

	_, err := syncer.SyncDishes(context.Background())
	require.NoError(t, err)
	firstCount := len(store.dishes)

	_, err = syncer.SyncDishes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, firstCount, len(store.dishes), "second run with identical remote data must not grow the table")
}

func TestSyncDishes_RequestsFullCatalog(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `{"dishes":[]}`)
	}))
	defer server.Close()

	store := newFakeStore()
	syncer, _ := newTestSyncer(server, store, time.Now())

	_, err := syncer.SyncDishes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"true"}, gotQuery["show_all"])
	assert.Equal(t, []string{"true"}, gotQuery["all_restaurants"])
	assert.Equal(t, []string{"100"}, gotQuery["limit"])
}

func TestSyncDishes_FetchErrorAbortsRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	store := newFakeStore()
	syncer, _ := newTestSyncer(server, store, time.Now())

	total, err := syncer.SyncDishes(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, total)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
}
