package db

import (
	"context"
	"sync"

	"github.com/TFMV/bigocode/types"
)

// MockDB is an in-memory DB for tests and dry runs.
type MockDB struct {
	InitializeFunc    func(ctx context.Context) error
	StoreAnalysisFunc func(ctx context.Context, report types.ScanReport) error

	mu     sync.Mutex
	stored []types.FileReport
}

func NewMockDB() *MockDB {
	return &MockDB{
		InitializeFunc: func(ctx context.Context) error {
			return nil
		},
	}
}

func (m *MockDB) Initialize(ctx context.Context) error {
	return m.InitializeFunc(ctx)
}

func (m *MockDB) StoreAnalysis(ctx context.Context, report types.ScanReport) error {
	if m.StoreAnalysisFunc != nil {
		return m.StoreAnalysisFunc(ctx, report)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stored = append(m.stored, report.Files...)
	return nil
}

// Stored returns every record accepted so far.
func (m *MockDB) Stored() []types.FileReport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]types.FileReport(nil), m.stored...)
}
