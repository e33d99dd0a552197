package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScheduledSyncDisabled(t *testing.T) {
	assert.False(t, ScheduledSyncDisabled())

	t.Setenv("SYNC_SCHEDULE_DISABLED", "true")
	assert.True(t, ScheduledSyncDisabled())

	t.Setenv("SYNC_SCHEDULE_DISABLED", "0")
	assert.False(t, ScheduledSyncDisabled())
}

func TestSyncResourceEnabled(t *testing.T) {
	assert.True(t, SyncResourceEnabled("dishes"), "unset list enables everything")

	t.Setenv("SYNC_RESOURCES", "restaurants, ORDERS")
	assert.True(t, SyncResourceEnabled("restaurants"))
	assert.True(t, SyncResourceEnabled("orders"))
	assert.False(t, SyncResourceEnabled("dishes"))
	assert.False(t, SyncResourceEnabled(""))
}
