package contract

import (
	"time"

	"github.com/huangsam/scorecard/schema"
	"github.com/stretchr/testify/mock"
)

// MockHistoryStore is a mock implementation of HistoryStore.
type MockHistoryStore struct {
	mock.Mock
}

// BeginRun mocks the BeginRun method.
func (m *MockHistoryStore) BeginRun(startTime time.Time, params schema.RunParams) (int64, error) {
	args := m.Called(startTime, params)
	return args.Get(0).(int64), args.Error(1)
}

// RecordEntries mocks the RecordEntries method.
func (m *MockHistoryStore) RecordEntries(runID int64, entries []schema.ScoredEntry) error {
	args := m.Called(runID, entries)
	return args.Error(0)
}

// EndRun mocks the EndRun method.
func (m *MockHistoryStore) EndRun(runID int64, endTime time.Time, totalEntries int) error {
	args := m.Called(runID, endTime, totalEntries)
	return args.Error(0)
}

// GetStatus mocks the GetStatus method.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// GetAllRuns mocks the GetAllRuns method.
func (m *MockHistoryStore) GetAllRuns() ([]schema.RunRecord, error) {
	args := m.Called()
	return args.Get(0).([]schema.RunRecord), args.Error(1)
}

// GetAllRunEntries mocks the GetAllRunEntries method.
func (m *MockHistoryStore) GetAllRunEntries() ([]schema.RunEntryRecord, error) {
	args := m.Called()
	return args.Get(0).([]schema.RunEntryRecord), args.Error(1)
}

// Close mocks the Close method.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockHistoryManager is a mock implementation of HistoryManager.
type MockHistoryManager struct {
	mock.Mock
}

// GetHistoryStore mocks the GetHistoryStore method.
func (m *MockHistoryManager) GetHistoryStore() HistoryStore {
	args := m.Called()
	if store := args.Get(0); store != nil {
		return store.(HistoryStore)
	}
	return nil
}

// MockEventPublisher is a mock implementation of EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

// Publish mocks the Publish method.
func (m *MockEventPublisher) Publish(subject string, data any) error {
	args := m.Called(subject, data)
	return args.Error(0)
}

// Close mocks the Close method.
func (m *MockEventPublisher) Close() {
	m.Called()
}
