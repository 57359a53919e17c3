package testutil

import (
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// MockRedis represents a mocked Redis connection for testing
type MockRedis struct {
	Client *redis.Client
	Mock   redismock.ClientMock
}

// NewMockRedis creates a new mock Redis client
func NewMockRedis() *MockRedis {
	client, mock := redismock.NewClientMock()

	return &MockRedis{
		Client: client,
		Mock:   mock,
	}
}

// Close closes the mock Redis connection
func (m *MockRedis) Close() error {
	return m.Client.Close()
}

// ExpectationsWereMet checks if all expected Redis interactions were met
func (m *MockRedis) ExpectationsWereMet(t *testing.T) {
	t.Helper()
	require.NoError(t, m.Mock.ExpectationsWereMet())
}

// ExpectGet sets up expectation for reading a stored value
func (m *MockRedis) ExpectGet(key, value string) {
	m.Mock.ExpectGet(key).SetVal(value)
}

// ExpectMiss sets up expectation for reading a missing key
func (m *MockRedis) ExpectMiss(key string) {
	m.Mock.ExpectGet(key).RedisNil()
}

// ExpectSet sets up expectation for storing a value without expiry
func (m *MockRedis) ExpectSet(key, value string) {
	m.Mock.ExpectSet(key, value, 0).SetVal("OK")
}

// ExpectPing sets up expectation for ping command
func (m *MockRedis) ExpectPing() {
	m.Mock.ExpectPing().SetVal("PONG")
}
