package sheets

import (
	"context"
	"sync"

	"github.com/tallyho/tallyho/internal/model"
)

// MockWriter is a mock implementation of ReportWriter for testing.
type MockWriter struct {
	WriteFunc        func(ctx context.Context, txns []model.Transaction, categories []model.Category, currencySymbol string) error
	LastTransactions []model.Transaction
	LastCategories   []model.Category
	LastSymbol       string
	WriteCallCount   int
	mu               sync.Mutex
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{}
}

// Write implements the ReportWriter interface.
func (m *MockWriter) Write(ctx context.Context, txns []model.Transaction, categories []model.Category, currencySymbol string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.LastTransactions = txns
	m.LastCategories = categories
	m.LastSymbol = currencySymbol

	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, txns, categories, currencySymbol)
	}
	return nil
}

// Reset clears all recorded calls.
func (m *MockWriter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount = 0
	m.LastTransactions = nil
	m.LastCategories = nil
	m.LastSymbol = ""
}

// SetWriteError configures the mock to fail every Write call.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(_ context.Context, _ []model.Transaction, _ []model.Category, _ string) error {
		return err
	}
}
