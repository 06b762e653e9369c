package db

import (
	"fmt"
	"log/slog"
	"sync"
)

// MockKVClient is an in-process KVClient. It backs the "memory" store and
// the tests.
type MockKVClient struct {
	data map[string]string // Key-value store
	mu   sync.RWMutex      // Mutex for thread-safe operations
}

// NewMockKVClient initializes a new MockKVClient.
func NewMockKVClient() *MockKVClient {
	return &MockKVClient{
		data: make(map[string]string),
	}
}

// Set stores a key-value pair.
func (m *MockKVClient) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Get retrieves a value for a given key.
func (m *MockKVClient) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.data[key]
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return value, nil
}

func (m *MockKVClient) Del(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Ping always succeeds.
func (m *MockKVClient) Ping() error {
	slog.Debug("MockKVClient: Ping successful")
	return nil
}

func (m *MockKVClient) Close() error { return nil }
