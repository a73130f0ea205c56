// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/huangsam/partnerscore/internal/contract"
	"github.com/huangsam/partnerscore/schema"
)

// OutWriter provides a unified interface for all output operations.
// It hides the output formats behind one API for the command layer.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteScores prints ranked scored rows using the configured output format.
func (ow *OutWriter) WriteScores(rows []schema.ScoredRow, cfg *contract.Config) error {
	return PrintScores(rows, cfg)
}

// WriteClassification prints quadrant assignments using the configured output format.
func (ow *OutWriter) WriteClassification(assignments []schema.QuadrantAssignment, cfg *contract.Config) error {
	return PrintClassification(assignments, cfg)
}

// WriteCriteria prints the active rubric using the configured output format.
func (ow *OutWriter) WriteCriteria(criteria schema.Criteria, cfg *contract.Config) error {
	return PrintCriteria(criteria, cfg)
}

// WriteCatalog prints the static metric catalog using the configured output format.
func (ow *OutWriter) WriteCatalog(cfg *contract.Config) error {
	return PrintCatalog(schema.Catalog(), cfg)
}

// WriteBenchmark prints a benchmark preview or result using the configured output format.
func (ow *OutWriter) WriteBenchmark(summary schema.BenchmarkSummary, changes []schema.BenchmarkChange, dryRun bool, cfg *contract.Config) error {
	return PrintBenchmark(summary, changes, dryRun, cfg)
}

// WriteRuns prints re-score history using the configured output format.
func (ow *OutWriter) WriteRuns(runs []schema.RescoreRun, cfg *contract.Config) error {
	return PrintRuns(runs, cfg)
}

// WritePartners prints raw partner records using the configured output format.
func (ow *OutWriter) WritePartners(partners []schema.RawPartner, cfg *contract.Config) error {
	return PrintPartners(partners, cfg)
}
