// Package core has core logic for scoring, re-scoring, benchmarking, classification and ranking.
package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/partnerscore/internal/contract"
	"github.com/huangsam/partnerscore/schema"
)

// BenchmarkResult is the outcome of a benchmark pass.
type BenchmarkResult struct {
	Summary schema.BenchmarkSummary  `json:"summary"`
	Changes []schema.BenchmarkChange `json:"changes"`
	DryRun  bool                     `json:"dry_run"`
	Run     *schema.RescoreRun       `json:"run,omitempty"`
}

// RescoreAndPersist regenerates every scored row from the stored partners and records the run.
// The stored scored dataset is replaced as a whole.
func RescoreAndPersist(store contract.Store, criteria schema.Criteria, trigger schema.RunTrigger) (schema.RescoreRun, error) {
	start := time.Now()
	run := schema.RescoreRun{
		UUID:      uuid.NewString(),
		StartTime: start,
		Trigger:   trigger,
	}

	runID, err := store.BeginRun(run.UUID, start, trigger)
	if err != nil {
		return run, fmt.Errorf("failed to begin rescore run: %w", err)
	}
	run.ID = runID

	partners, err := store.ListPartners()
	if err != nil {
		return run, fmt.Errorf("failed to list partners: %w", err)
	}

	rows := RescoreAll(criteria, partners)
	if err := store.ReplaceScoredRows(runID, rows); err != nil {
		return run, fmt.Errorf("failed to store scored rows: %w", err)
	}

	end := time.Now()
	run.EndTime = &end
	duration := end.Sub(start).Milliseconds()
	run.DurationMs = &duration
	run.PartnerCount = len(partners)
	run.MetricCount = len(criteria.EnabledKeys())
	if err := store.EndRun(runID, end, run.PartnerCount, run.MetricCount); err != nil {
		return run, fmt.Errorf("failed to end rescore run: %w", err)
	}
	return run, nil
}

// Rescore loads the current criteria and re-scores every partner.
func Rescore(store contract.Store, trigger schema.RunTrigger) (schema.RescoreRun, error) {
	criteria, err := LoadCriteria(store)
	if err != nil {
		return schema.RescoreRun{}, err
	}
	return RescoreAndPersist(store, criteria, trigger)
}

// ApplyCriteria saves criteria and re-scores every partner against them.
func ApplyCriteria(store contract.Store, criteria schema.Criteria) (schema.RescoreRun, error) {
	if err := SaveCriteria(store, criteria); err != nil {
		return schema.RescoreRun{}, err
	}
	return RescoreAndPersist(store, criteria, schema.TriggerCriteria)
}

// ApplyBenchmark derives ranges from the stored partners. Unless dryRun is set,
// changed ranges are saved and every partner is re-scored.
func ApplyBenchmark(store contract.Store, dryRun bool) (BenchmarkResult, error) {
	criteria, err := LoadCriteria(store)
	if err != nil {
		return BenchmarkResult{}, err
	}
	partners, err := store.ListPartners()
	if err != nil {
		return BenchmarkResult{}, fmt.Errorf("failed to list partners: %w", err)
	}

	next := ComputeRanges(partners, criteria)
	result := BenchmarkResult{
		Summary: SummarizeBenchmark(criteria, next),
		Changes: PreviewBenchmark(criteria, next),
		DryRun:  dryRun,
	}
	if dryRun || len(result.Summary.Updated) == 0 {
		return result, nil
	}

	if err := SaveCriteria(store, next); err != nil {
		return result, err
	}
	run, err := RescoreAndPersist(store, next, schema.TriggerBenchmark)
	if err != nil {
		return result, err
	}
	result.Run = &run
	return result, nil
}

// UpsertPartner stores a raw partner, replacing any record with the same name, and re-scores.
func UpsertPartner(store contract.Store, partner schema.RawPartner) (schema.RescoreRun, error) {
	return ImportPartners(store, []schema.RawPartner{partner})
}

// ImportPartners stores several raw partners and re-scores once.
func ImportPartners(store contract.Store, partners []schema.RawPartner) (schema.RescoreRun, error) {
	for _, p := range partners {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return schema.RescoreRun{}, contract.ErrEmptyPartnerName
		}
		if err := store.UpsertPartner(p); err != nil {
			return schema.RescoreRun{}, fmt.Errorf("failed to upsert partner %q: %w", p.Name, err)
		}
	}
	return Rescore(store, schema.TriggerPartner)
}

// MergePartner overlays the non-empty fields of update onto the stored partner with
// the same name. A partner that does not exist yet is returned as given.
func MergePartner(store contract.Store, update schema.RawPartner) (schema.RawPartner, error) {
	existing, err := store.GetPartner(update.Name)
	if err != nil {
		if errors.Is(err, contract.ErrPartnerNotFound) {
			return update, nil
		}
		return schema.RawPartner{}, err
	}

	merged := existing.Clone()
	for field, value := range update.IdentityRecord() {
		if value != "" && field != schema.FieldPartnerName {
			merged.SetIdentityField(field, value)
		}
	}
	for key, value := range update.Raw {
		merged.Raw[key] = value
	}
	return merged, nil
}

// DeletePartner removes a partner by name and re-scores.
func DeletePartner(store contract.Store, name string) (schema.RescoreRun, error) {
	if err := store.DeletePartner(name); err != nil {
		return schema.RescoreRun{}, fmt.Errorf("failed to delete partner %q: %w", name, err)
	}
	return Rescore(store, schema.TriggerPartner)
}

// ClassifyPartners classifies the stored scored rows with the given quadrants.
func ClassifyPartners(store contract.Store, quadrants schema.QuadrantConfig) ([]schema.QuadrantAssignment, error) {
	criteria, err := LoadCriteria(store)
	if err != nil {
		return nil, err
	}
	rows, err := store.ListScoredRows()
	if err != nil {
		return nil, fmt.Errorf("failed to list scored rows: %w", err)
	}
	mapping := Classify(rows, quadrants, criteria.EnabledKeys())
	return Assignments(rows, quadrants, mapping), nil
}

// TopScores returns the stored scored rows ranked and limited.
func TopScores(store contract.Store, limit int) ([]schema.ScoredRow, error) {
	rows, err := store.ListScoredRows()
	if err != nil {
		return nil, fmt.Errorf("failed to list scored rows: %w", err)
	}
	return RankRows(rows, limit), nil
}
