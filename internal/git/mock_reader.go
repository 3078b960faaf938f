package git

import "context"

// MockHistoryReader is a test double for HistoryReader.
// It allows tests to provide predefined commit data without needing a real Git repository.
type MockHistoryReader struct {
	History *History
	Error   error
}

// NewMockHistoryReader creates a new MockHistoryReader with the given data.
func NewMockHistoryReader(history *History, err error) *MockHistoryReader {
	return &MockHistoryReader{
		History: history,
		Error:   err,
	}
}

// ReadCommits returns the predefined history or error.
func (m *MockHistoryReader) ReadCommits(_ context.Context) (*History, error) {
	return m.History, m.Error
}

// Compile-time interface conformance check.
var _ RepositoryReader = (*MockHistoryReader)(nil)
