package iocache

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/huangsam/partnerscore/internal/contract"
	"github.com/huangsam/partnerscore/schema"
)

// MemoryStore implements the Store interface in process memory.
// It backs the none backend and most unit tests.
type MemoryStore struct {
	mu              sync.RWMutex
	criteria        schema.Criteria
	criteriaUpdated time.Time
	partners        map[string]schema.RawPartner
	rows            map[string]schema.ScoredRow
	runs            []schema.RescoreRun
}

var _ contract.Store = &MemoryStore{} // Compile-time check

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		partners: make(map[string]schema.RawPartner),
		rows:     make(map[string]schema.ScoredRow),
	}
}

// GetCriteria returns a copy of the stored criteria.
func (s *MemoryStore) GetCriteria() (schema.Criteria, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.criteria == nil {
		return nil, contract.ErrNoCriteria
	}
	return s.criteria.Clone(), nil
}

// PutCriteria replaces the stored criteria.
func (s *MemoryStore) PutCriteria(criteria schema.Criteria) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = criteria.Clone()
	s.criteriaUpdated = time.Now()
	return nil
}

// Invalidate is a no-op because memory is the storage.
func (s *MemoryStore) Invalidate() {}

// ListPartners returns every raw partner ordered by name.
func (s *MemoryStore) ListPartners() ([]schema.RawPartner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var partners []schema.RawPartner
	for _, key := range slices.Sorted(maps.Keys(s.partners)) {
		partners = append(partners, s.partners[key].Clone())
	}
	return partners, nil
}

// GetPartner returns one partner by case-insensitive name.
func (s *MemoryStore) GetPartner(name string) (schema.RawPartner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.partners[schema.NameKey(name)]
	if !ok {
		return schema.RawPartner{}, fmt.Errorf("%w: %s", contract.ErrPartnerNotFound, name)
	}
	return p.Clone(), nil
}

// UpsertPartner replaces any prior record with the same name.
func (s *MemoryStore) UpsertPartner(partner schema.RawPartner) error {
	key := schema.NameKey(partner.Name)
	if key == "" {
		return contract.ErrEmptyPartnerName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.partners[key] = partner.Clone()
	return nil
}

// DeletePartner removes a partner and its scored row.
func (s *MemoryStore) DeletePartner(name string) error {
	key := schema.NameKey(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.partners[key]; !ok {
		return fmt.Errorf("%w: %s", contract.ErrPartnerNotFound, name)
	}
	delete(s.partners, key)
	delete(s.rows, key)
	return nil
}

// ReplaceScoredRows swaps the whole scored dataset.
func (s *MemoryStore) ReplaceScoredRows(_ int64, rows []schema.ScoredRow) error {
	next := make(map[string]schema.ScoredRow, len(rows))
	for _, row := range rows {
		next[schema.NameKey(row.Name)] = cloneScoredRow(row)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = next
	return nil
}

// ListScoredRows returns the current scored dataset ordered by name.
func (s *MemoryStore) ListScoredRows() ([]schema.ScoredRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var rows []schema.ScoredRow
	for _, key := range slices.Sorted(maps.Keys(s.rows)) {
		rows = append(rows, cloneScoredRow(s.rows[key]))
	}
	return rows, nil
}

// BeginRun creates a new run and returns its ID.
func (s *MemoryStore) BeginRun(runUUID string, startTime time.Time, trigger schema.RunTrigger) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := int64(len(s.runs) + 1)
	s.runs = append(s.runs, schema.RescoreRun{
		ID:        id,
		UUID:      runUUID,
		StartTime: startTime,
		Trigger:   trigger,
	})
	return id, nil
}

// EndRun stores completion data for a run.
func (s *MemoryStore) EndRun(runID int64, endTime time.Time, partnerCount, metricCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if runID < 1 || int(runID) > len(s.runs) {
		return fmt.Errorf("rescore run %d not found", runID)
	}
	run := &s.runs[runID-1]
	duration := endTime.Sub(run.StartTime).Milliseconds()
	run.EndTime = &endTime
	run.DurationMs = &duration
	run.PartnerCount = partnerCount
	run.MetricCount = metricCount
	return nil
}

// ListRuns returns the most recent runs first. A limit of zero returns all runs.
func (s *MemoryStore) ListRuns(limit int) ([]schema.RescoreRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	runs := slices.Clone(s.runs)
	slices.Reverse(runs)
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// GetStatus returns status information about the store.
func (s *MemoryStore) GetStatus() (schema.StoreStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status := schema.StoreStatus{
		Backend:         string(schema.NoneBackend),
		Connected:       true,
		TotalPartners:   len(s.partners),
		TotalScoredRows: len(s.rows),
		TotalRuns:       len(s.runs),
		CriteriaUpdated: s.criteriaUpdated,
		TableRows: map[string]int64{
			partnersTable:   int64(len(s.partners)),
			scoredRowsTable: int64(len(s.rows)),
			runsTable:       int64(len(s.runs)),
		},
	}
	if n := len(s.runs); n > 0 {
		status.LastRunID = s.runs[n-1].ID
		status.LastRunTime = s.runs[n-1].StartTime
	}
	return status, nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// cloneScoredRow copies a scored row so callers cannot mutate stored scores.
func cloneScoredRow(row schema.ScoredRow) schema.ScoredRow {
	row.Scores = maps.Clone(row.Scores)
	return row
}
