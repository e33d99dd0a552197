package zeltysync

import (
	"time"

	"github.com/restoflow/resto_backend/models"
)

type TriggerOrdersRequest struct {
	From string `json:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `json:"to" binding:"omitempty,datetime=2006-01-02"`
}

type TriggerResponse struct {
	RunId         uint   `json:"runId"`
	Status        string `json:"status"`
	RecordsSynced int    `json:"recordsSynced"`
	ErrorCount    int    `json:"errorCount"`
}

// SyncStatusResponse maps each resource to its most recent run, nil when the
// resource has never run.
type SyncStatusResponse struct {
	Resources map[string]*SyncRunResponse `json:"resources"`
}

type SyncHistoryResponse struct {
	Items []SyncRunResponse `json:"items"`
}

type SyncRunResponse struct {
	ID            uint    `json:"id"`
	Resource      string  `json:"resource"`
	Status        string  `json:"status"`
	TriggeredBy   string  `json:"triggeredBy"`
	FromDate      *string `json:"fromDate"`
	ToDate        *string `json:"toDate"`
	StartedAt     *string `json:"startedAt"`
	FinishedAt    *string `json:"finishedAt"`
	DurationMs    int64   `json:"durationMs"`
	RecordsSynced int     `json:"recordsSynced"`
	ErrorCount    int     `json:"errorCount"`
}

type SyncRunDetailResponse struct {
	SyncRunResponse
	Errors []SyncErrorResponse `json:"errors"`
}

type SyncErrorResponse struct {
	ID         uint   `json:"id"`
	EntityType string `json:"entityType"`
	RemoteId   string `json:"remoteId"`
	Message    string `json:"message"`
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func mapRunToResponse(run models.SyncRun) SyncRunResponse {
	return SyncRunResponse{
		ID:            run.ID,
		Resource:      run.Resource,
		Status:        run.Status,
		TriggeredBy:   run.TriggeredBy,
		FromDate:      formatDate(run.FromDate),
		ToDate:        formatDate(run.ToDate),
		StartedAt:     formatTime(run.StartedAt),
		FinishedAt:    formatTime(run.FinishedAt),
		DurationMs:    run.DurationMs,
		RecordsSynced: run.RecordsSynced,
		ErrorCount:    run.ErrorCount,
	}
}

func mapErrors(errorsList []models.SyncRecordError) []SyncErrorResponse {
	out := make([]SyncErrorResponse, 0, len(errorsList))
	for _, errItem := range errorsList {
		out = append(out, SyncErrorResponse{
			ID:         errItem.ID,
			EntityType: errItem.EntityType,
			RemoteId:   errItem.RemoteId,
			Message:    errItem.Message,
		})
	}
	return out
}
