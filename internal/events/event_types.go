package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventDatasetLoaded     EventType = "dataset_loaded"
	EventLoadFailed        EventType = "load_failed"
	EventDashboardRendered EventType = "dashboard_rendered"
	EventExportGenerated   EventType = "export_generated"
)

// AllTypes lists every event type, for blanket subscriptions.
var AllTypes = []EventType{
	EventDatasetLoaded,
	EventLoadFailed,
	EventDashboardRendered,
	EventExportGenerated,
}

// Event represents a pipeline event emitted by the loader and services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// DatasetLoadedPayload payload.
type DatasetLoadedPayload struct {
	SourceName string `json:"source_name"`
	Rows       int    `json:"rows"`
	Columns    int    `json:"columns"`
	CacheHit   bool   `json:"cache_hit"`
}

// LoadFailedPayload payload.
type LoadFailedPayload struct {
	SourceName string `json:"source_name"`
	Reason     string `json:"reason"`
}

// DashboardRenderedPayload payload.
type DashboardRenderedPayload struct {
	TotalRows    int `json:"total_rows"`
	FilteredRows int `json:"filtered_rows"`
	Warnings     int `json:"warnings"`
}

// ExportGeneratedPayload payload.
type ExportGeneratedPayload struct {
	Filename string `json:"filename"`
	Rows     int    `json:"rows"`
}
