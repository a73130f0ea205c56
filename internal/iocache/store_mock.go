package iocache

import (
	"time"

	"github.com/huangsam/partnerscore/internal/contract"
	"github.com/huangsam/partnerscore/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetStore implements the StoreManager interface.
func (m *MockStoreManager) GetStore() contract.Store {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.Store)
	return store
}

// MockStore is a mock implementation of Store for testing.
type MockStore struct {
	mock.Mock
}

var _ contract.Store = &MockStore{} // Compile-time check

// GetCriteria implements the Store interface.
func (m *MockStore) GetCriteria() (schema.Criteria, error) {
	args := m.Called()
	criteria, _ := args.Get(0).(schema.Criteria)
	return criteria, args.Error(1)
}

// PutCriteria implements the Store interface.
func (m *MockStore) PutCriteria(criteria schema.Criteria) error {
	args := m.Called(criteria)
	return args.Error(0)
}

// Invalidate implements the Store interface.
func (m *MockStore) Invalidate() {
	m.Called()
}

// ListPartners implements the Store interface.
func (m *MockStore) ListPartners() ([]schema.RawPartner, error) {
	args := m.Called()
	partners, _ := args.Get(0).([]schema.RawPartner)
	return partners, args.Error(1)
}

// GetPartner implements the Store interface.
func (m *MockStore) GetPartner(name string) (schema.RawPartner, error) {
	args := m.Called(name)
	return args.Get(0).(schema.RawPartner), args.Error(1)
}

// UpsertPartner implements the Store interface.
func (m *MockStore) UpsertPartner(partner schema.RawPartner) error {
	args := m.Called(partner)
	return args.Error(0)
}

// DeletePartner implements the Store interface.
func (m *MockStore) DeletePartner(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

// ReplaceScoredRows implements the Store interface.
func (m *MockStore) ReplaceScoredRows(runID int64, rows []schema.ScoredRow) error {
	args := m.Called(runID, rows)
	return args.Error(0)
}

// ListScoredRows implements the Store interface.
func (m *MockStore) ListScoredRows() ([]schema.ScoredRow, error) {
	args := m.Called()
	rows, _ := args.Get(0).([]schema.ScoredRow)
	return rows, args.Error(1)
}

// BeginRun implements the Store interface.
func (m *MockStore) BeginRun(runUUID string, startTime time.Time, trigger schema.RunTrigger) (int64, error) {
	args := m.Called(runUUID, startTime, trigger)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the Store interface.
func (m *MockStore) EndRun(runID int64, endTime time.Time, partnerCount, metricCount int) error {
	args := m.Called(runID, endTime, partnerCount, metricCount)
	return args.Error(0)
}

// ListRuns implements the Store interface.
func (m *MockStore) ListRuns(limit int) ([]schema.RescoreRun, error) {
	args := m.Called(limit)
	runs, _ := args.Get(0).([]schema.RescoreRun)
	return runs, args.Error(1)
}

// GetStatus implements the Store interface.
func (m *MockStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the Store interface.
func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
