package models

import "time"

const (
	SyncRunStatusQueued  = "queued"
	SyncRunStatusRunning = "running"
	SyncRunStatusSuccess = "success"
	SyncRunStatusFailed  = "failed"
	SyncRunStatusPartial = "partial"
)

const (
	SyncTriggeredManual   = "manual"
	SyncTriggeredSchedule = "schedule"
	SyncTriggeredBackfill = "backfill"
)

// SyncRun is the bookkeeping row for one synchronizer run. Partial means the
// run completed but some individual records (order items) failed.
type SyncRun struct {
	ID       uint   `gorm:"primary_key" json:"id"`
	Resource string `gorm:"index;size:32;not null" json:"resource"`

	Status      string `gorm:"size:20;not null" json:"status"`
	TriggeredBy string `gorm:"size:20" json:"triggered_by"`

	// Date window, only set for order runs.
	FromDate *time.Time `json:"from_date"`
	ToDate   *time.Time `json:"to_date"`

	RecordsSynced int   `json:"records_synced"`
	ErrorCount    int   `json:"error_count"`
	DurationMs    int64 `json:"duration_ms"`

	StartedAt  *time.Time `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// SyncRecordError is one isolated per-record failure inside a run, kept with
// the offending raw payload for operator inspection.
type SyncRecordError struct {
	ID          uint      `gorm:"primary_key" json:"id"`
	SyncRunId   uint      `gorm:"index;not null" json:"sync_run_id"`
	EntityType  string    `gorm:"size:50" json:"entity_type"`
	RemoteId    string    `gorm:"size:128" json:"remote_id"`
	Message     string    `gorm:"type:text" json:"message"`
	PayloadJSON []byte    `gorm:"type:json" json:"payload"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
