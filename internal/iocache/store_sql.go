package iocache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/huangsam/partnerscore/internal/contract"
	"github.com/huangsam/partnerscore/schema"
)

// Table names for partnerscore storage.
const (
	criteriaTable   = "partnerscore_criteria"
	partnersTable   = "partnerscore_partners"
	scoredRowsTable = "partnerscore_scored_rows"
	runsTable       = "partnerscore_rescore_runs"
)

// allTables lists every data table in drop order.
var allTables = []string{runsTable, scoredRowsTable, partnersTable, criteriaTable}

// criteriaRowID is the single row that holds the criteria document.
const criteriaRowID = 1

// SQLStore implements the Store interface on SQLite, MySQL or PostgreSQL.
type SQLStore struct {
	db      *sql.DB
	backend schema.DatabaseBackend

	mu       sync.Mutex // Protects the criteria cache
	criteria schema.Criteria
}

var _ contract.Store = &SQLStore{} // Compile-time check

// NewSQLStore opens the database and migrates it to the latest schema.
func NewSQLStore(backend schema.DatabaseBackend, connStr string) (*SQLStore, error) {
	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	if _, err := migrateDB(db, backend, -1); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create partnerscore tables: %w", err)
	}

	return &SQLStore{db: db, backend: backend}, nil
}

// table returns the quoted name of a table for this backend.
func (s *SQLStore) table(name string) string {
	return quoteTableName(name, s.backend)
}

// q rebinds a ? query for this backend.
func (s *SQLStore) q(query string, tables ...any) string {
	return rebind(fmt.Sprintf(query, tables...), s.backend)
}

// upsertQuery builds an insert-or-replace statement keyed by the first column.
func (s *SQLStore) upsertQuery(table string, cols []string) string {
	placeholders := "?"
	for range cols[1:] {
		placeholders += ", ?"
	}
	colList := cols[0]
	for _, c := range cols[1:] {
		colList += ", " + c
	}

	switch s.backend {
	case schema.MySQLBackend:
		updates := ""
		for i, c := range cols[1:] {
			if i > 0 {
				updates += ", "
			}
			updates += fmt.Sprintf("%s = new.%s", c, c)
		}
		return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) AS new ON DUPLICATE KEY UPDATE %s",
			s.table(table), colList, placeholders, updates)
	case schema.PostgreSQLBackend:
		updates := ""
		for i, c := range cols[1:] {
			if i > 0 {
				updates += ", "
			}
			updates += fmt.Sprintf("%s = EXCLUDED.%s", c, c)
		}
		return rebind(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
			s.table(table), colList, placeholders, cols[0], updates), s.backend)
	default: // SQLite
		return fmt.Sprintf("INSERT OR REPLACE INTO %s (%s) VALUES (%s)", s.table(table), colList, placeholders)
	}
}

// GetCriteria returns the persisted criteria, served from cache after the first read.
func (s *SQLStore) GetCriteria() (schema.Criteria, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.criteria != nil {
		return s.criteria.Clone(), nil
	}

	var payload string
	err := s.db.QueryRow(s.q("SELECT payload FROM %s WHERE id = ?", s.table(criteriaTable)), criteriaRowID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contract.ErrNoCriteria
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read criteria: %w", err)
	}

	var criteria schema.Criteria
	if err := json.Unmarshal([]byte(payload), &criteria); err != nil || criteria == nil {
		return nil, fmt.Errorf("%w: %v", contract.ErrCorruptCriteria, err)
	}
	s.criteria = criteria
	return criteria.Clone(), nil
}

// PutCriteria replaces the persisted criteria and refreshes the cache.
func (s *SQLStore) PutCriteria(criteria schema.Criteria) error {
	payload, err := json.Marshal(criteria)
	if err != nil {
		return fmt.Errorf("failed to marshal criteria: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	query := s.upsertQuery(criteriaTable, []string{"id", "payload", "updated_at"})
	if _, err := s.db.Exec(query, criteriaRowID, string(payload), toMillis(time.Now())); err != nil {
		s.criteria = nil
		return fmt.Errorf("failed to write criteria: %w", err)
	}
	s.criteria = criteria.Clone()
	return nil
}

// Invalidate drops the cached criteria.
func (s *SQLStore) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = nil
}

// ListPartners returns every raw partner ordered by name.
func (s *SQLStore) ListPartners() ([]schema.RawPartner, error) {
	rows, err := s.db.Query(fmt.Sprintf("SELECT payload FROM %s ORDER BY name_key", s.table(partnersTable)))
	if err != nil {
		return nil, fmt.Errorf("failed to query partners: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var partners []schema.RawPartner
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan partner: %w", err)
		}
		p, err := decodePartner(payload)
		if err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating partners: %w", err)
	}
	return partners, nil
}

// GetPartner returns one partner by case-insensitive name.
func (s *SQLStore) GetPartner(name string) (schema.RawPartner, error) {
	var payload string
	err := s.db.QueryRow(s.q("SELECT payload FROM %s WHERE name_key = ?", s.table(partnersTable)), schema.NameKey(name)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return schema.RawPartner{}, fmt.Errorf("%w: %s", contract.ErrPartnerNotFound, name)
	}
	if err != nil {
		return schema.RawPartner{}, fmt.Errorf("failed to read partner %q: %w", name, err)
	}
	return decodePartner(payload)
}

// UpsertPartner replaces any prior record with the same name.
func (s *SQLStore) UpsertPartner(partner schema.RawPartner) error {
	key := schema.NameKey(partner.Name)
	if key == "" {
		return contract.ErrEmptyPartnerName
	}
	payload, err := json.Marshal(partner.Clone())
	if err != nil {
		return fmt.Errorf("failed to marshal partner: %w", err)
	}
	query := s.upsertQuery(partnersTable, []string{"name_key", "partner_name", "payload", "updated_at"})
	if _, err := s.db.Exec(query, key, partner.Name, string(payload), toMillis(time.Now())); err != nil {
		return fmt.Errorf("failed to upsert partner %q: %w", partner.Name, err)
	}
	return nil
}

// DeletePartner removes a partner and its scored row.
func (s *SQLStore) DeletePartner(name string) error {
	key := schema.NameKey(name)
	res, err := s.db.Exec(s.q("DELETE FROM %s WHERE name_key = ?", s.table(partnersTable)), key)
	if err != nil {
		return fmt.Errorf("failed to delete partner %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", contract.ErrPartnerNotFound, name)
	}
	if _, err := s.db.Exec(s.q("DELETE FROM %s WHERE name_key = ?", s.table(scoredRowsTable)), key); err != nil {
		return fmt.Errorf("failed to delete scored row for %q: %w", name, err)
	}
	return nil
}

// ReplaceScoredRows swaps the whole scored dataset inside one transaction.
func (s *SQLStore) ReplaceScoredRows(runID int64, rows []schema.ScoredRow) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(fmt.Sprintf("DELETE FROM %s", s.table(scoredRowsTable))); err != nil {
		return fmt.Errorf("failed to clear scored rows: %w", err)
	}

	stmt, err := tx.Prepare(s.q(`INSERT INTO %s (name_key, run_id, partner_name, total_score, max_possible, percentage, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)`, s.table(scoredRowsTable)))
	if err != nil {
		return fmt.Errorf("failed to prepare scored row insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, row := range rows {
		payload, mErr := json.Marshal(row)
		if mErr != nil {
			err = fmt.Errorf("failed to marshal scored row %q: %w", row.Name, mErr)
			return err
		}
		if _, err = stmt.Exec(schema.NameKey(row.Name), runID, row.Name, row.TotalScore, row.MaxPossible, row.Percentage, string(payload)); err != nil {
			return fmt.Errorf("failed to insert scored row %q: %w", row.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit scored rows: %w", err)
	}
	return nil
}

// ListScoredRows returns the current scored dataset ordered by name.
func (s *SQLStore) ListScoredRows() ([]schema.ScoredRow, error) {
	rows, err := s.db.Query(fmt.Sprintf("SELECT payload FROM %s ORDER BY name_key", s.table(scoredRowsTable)))
	if err != nil {
		return nil, fmt.Errorf("failed to query scored rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []schema.ScoredRow
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan scored row: %w", err)
		}
		var row schema.ScoredRow
		if err := json.Unmarshal([]byte(payload), &row); err != nil {
			return nil, fmt.Errorf("failed to decode scored row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scored rows: %w", err)
	}
	return result, nil
}

// BeginRun creates a new run and returns its ID.
func (s *SQLStore) BeginRun(runUUID string, startTime time.Time, trigger schema.RunTrigger) (int64, error) {
	var runID int64
	switch s.backend {
	case schema.PostgreSQLBackend:
		query := s.q(`INSERT INTO %s (run_uuid, start_time, run_trigger) VALUES (?, ?, ?) RETURNING run_id`, s.table(runsTable))
		if err := s.db.QueryRow(query, runUUID, toMillis(startTime), string(trigger)).Scan(&runID); err != nil {
			return 0, fmt.Errorf("failed to insert rescore run: %w", err)
		}
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (run_uuid, start_time, run_trigger) VALUES (?, ?, ?)`, s.table(runsTable))
		result, err := s.db.Exec(query, runUUID, toMillis(startTime), string(trigger))
		if err != nil {
			return 0, fmt.Errorf("failed to insert rescore run: %w", err)
		}
		if runID, err = result.LastInsertId(); err != nil {
			return 0, fmt.Errorf("failed to read rescore run id: %w", err)
		}
	}
	return runID, nil
}

// EndRun stores completion data for a run.
func (s *SQLStore) EndRun(runID int64, endTime time.Time, partnerCount, metricCount int) error {
	var startMs int64
	err := s.db.QueryRow(s.q("SELECT start_time FROM %s WHERE run_id = ?", s.table(runsTable)), runID).Scan(&startMs)
	if err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	durationMs := endTime.UnixMilli() - startMs

	query := s.q(`UPDATE %s SET end_time = ?, run_duration_ms = ?, partner_count = ?, metric_count = ? WHERE run_id = ?`, s.table(runsTable))
	if _, err := s.db.Exec(query, toMillis(endTime), durationMs, partnerCount, metricCount, runID); err != nil {
		return fmt.Errorf("failed to update rescore run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs first. A limit of zero returns all runs.
func (s *SQLStore) ListRuns(limit int) ([]schema.RescoreRun, error) {
	query := fmt.Sprintf(`SELECT run_id, run_uuid, start_time, end_time, run_duration_ms, partner_count, metric_count, run_trigger
		FROM %s ORDER BY run_id DESC`, s.table(runsTable))
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(rebind(query, s.backend), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rescore runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []schema.RescoreRun
	for rows.Next() {
		var (
			run      schema.RescoreRun
			startMs  int64
			endMs    sql.NullInt64
			duration sql.NullInt64
			trigger  string
		)
		if err := rows.Scan(&run.ID, &run.UUID, &startMs, &endMs, &duration, &run.PartnerCount, &run.MetricCount, &trigger); err != nil {
			return nil, fmt.Errorf("failed to scan rescore run: %w", err)
		}
		run.StartTime = fromMillis(startMs)
		if endMs.Valid {
			end := fromMillis(endMs.Int64)
			run.EndTime = &end
		}
		if duration.Valid {
			d := duration.Int64
			run.DurationMs = &d
		}
		run.Trigger = schema.RunTrigger(trigger)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rescore runs: %w", err)
	}
	return runs, nil
}

// GetStatus returns status information about the store.
func (s *SQLStore) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(s.backend),
		Connected: s.db != nil,
		TableRows: make(map[string]int64),
	}
	if s.db == nil {
		return status, nil
	}

	for _, table := range allTables {
		var count int64
		if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", s.table(table))).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to count %s: %w", table, err)
		}
		status.TableRows[table] = count
	}
	status.TotalPartners = int(status.TableRows[partnersTable])
	status.TotalScoredRows = int(status.TableRows[scoredRowsTable])
	status.TotalRuns = int(status.TableRows[runsTable])

	if status.TotalRuns > 0 {
		var startMs int64
		query := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", s.table(runsTable))
		if err := s.db.QueryRow(query).Scan(&status.LastRunID, &startMs); err != nil {
			return status, fmt.Errorf("failed to get last run: %w", err)
		}
		status.LastRunTime = fromMillis(startMs)
	}

	var updatedMs int64
	err := s.db.QueryRow(s.q("SELECT updated_at FROM %s WHERE id = ?", s.table(criteriaTable)), criteriaRowID).Scan(&updatedMs)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return status, fmt.Errorf("failed to get criteria timestamp: %w", err)
	}
	status.CriteriaUpdated = fromMillis(updatedMs)

	version, err := schemaVersion(s.db, s.backend)
	if err != nil {
		return status, err
	}
	status.MigrationVersion = version
	return status, nil
}

// Close closes the underlying connection.
func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// decodePartner unmarshals a stored partner payload.
func decodePartner(payload string) (schema.RawPartner, error) {
	var p schema.RawPartner
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return schema.RawPartner{}, fmt.Errorf("failed to decode partner: %w", err)
	}
	if p.Raw == nil {
		p.Raw = make(map[string]string)
	}
	return p, nil
}
