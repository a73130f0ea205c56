package schema

import "time"

// StoreStatus represents the status of the partnerscore store.
type StoreStatus struct {
	Backend          string           `json:"backend"`
	Connected        bool             `json:"connected"`
	TotalPartners    int              `json:"total_partners"`
	TotalScoredRows  int              `json:"total_scored_rows"`
	TotalRuns        int              `json:"total_runs"`
	LastRunID        int64            `json:"last_run_id"`
	LastRunTime      time.Time        `json:"last_run_time"`
	CriteriaUpdated  time.Time        `json:"criteria_updated"`
	MigrationVersion int              `json:"migration_version"`
	TableRows        map[string]int64 `json:"table_rows"`
}

// RescoreRun represents a row from the partnerscore_rescore_runs table.
type RescoreRun struct {
	ID           int64      `json:"id"`
	UUID         string     `json:"uuid"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	DurationMs   *int64     `json:"duration_ms,omitempty"`
	PartnerCount int        `json:"partner_count"`
	MetricCount  int        `json:"metric_count"`
	Trigger      RunTrigger `json:"trigger"`
}
