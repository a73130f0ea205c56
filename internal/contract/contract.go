// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/partnerscore/schema"
)

// CriteriaRepository persists the active rubric as a single document.
type CriteriaRepository interface {
	// GetCriteria returns the persisted criteria.
	// It returns ErrNoCriteria when nothing was saved and ErrCorruptCriteria when the payload cannot be decoded.
	GetCriteria() (schema.Criteria, error)

	// PutCriteria replaces the persisted criteria.
	PutCriteria(criteria schema.Criteria) error

	// Invalidate drops any cached copy so the next read goes to storage.
	Invalidate()
}

// PartnerRepository persists raw partner records keyed by case-insensitive name.
type PartnerRepository interface {
	// ListPartners returns every raw partner ordered by name.
	ListPartners() ([]schema.RawPartner, error)

	// GetPartner returns one partner or ErrPartnerNotFound.
	GetPartner(name string) (schema.RawPartner, error)

	// UpsertPartner replaces any prior record with the same name.
	UpsertPartner(partner schema.RawPartner) error

	// DeletePartner removes a partner or returns ErrPartnerNotFound.
	DeletePartner(name string) error
}

// ScoreRepository persists the derived scored rows.
type ScoreRepository interface {
	// ReplaceScoredRows swaps the whole scored dataset for the rows of one run.
	ReplaceScoredRows(runID int64, rows []schema.ScoredRow) error

	// ListScoredRows returns the current scored dataset.
	ListScoredRows() ([]schema.ScoredRow, error)
}

// RunRepository records re-score history.
type RunRepository interface {
	// BeginRun creates a new run and returns its ID.
	BeginRun(runUUID string, startTime time.Time, trigger schema.RunTrigger) (int64, error)

	// EndRun stores completion data for a run.
	EndRun(runID int64, endTime time.Time, partnerCount, metricCount int) error

	// ListRuns returns the most recent runs first. A limit of zero returns all runs.
	ListRuns(limit int) ([]schema.RescoreRun, error)
}

// Store is the full persistence surface used by the application.
type Store interface {
	CriteriaRepository
	PartnerRepository
	ScoreRepository
	RunRepository

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager hands out the process-wide store.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetStore() Store
}
