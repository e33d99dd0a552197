package config

import (
	"os"
	"strings"
)

// ScheduledSyncDisabled turns off the periodic sync trigger; manual triggers
// and the backfill CLI keep working. Useful when running several instances
// against the same database and only one should own the schedule.
//
// Set via env:
// - SYNC_SCHEDULE_DISABLED=true
func ScheduledSyncDisabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("SYNC_SCHEDULE_DISABLED")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

// SyncResourceEnabled restricts which resources the scheduled batch covers.
//
// Set via env:
// - SYNC_RESOURCES="restaurants,dishes,orders"
//
// An empty or unset value enables every resource. Resource keys are
// case-insensitive.
func SyncResourceEnabled(resource string) bool {
	resource = strings.ToLower(strings.TrimSpace(resource))
	if resource == "" {
		return false
	}
	raw := os.Getenv("SYNC_RESOURCES")
	if strings.TrimSpace(raw) == "" {
		return true
	}
	for _, part := range strings.Split(raw, ",") {
		if strings.ToLower(strings.TrimSpace(part)) == resource {
			return true
		}
	}
	return false
}
