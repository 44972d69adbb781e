package testutil

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

// Assert the expectations of all mocks.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(mock.TestingT) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// Key value store mock implementation, used in place of the redis client.
type MockKeyValueStore struct {
	mock.Mock
}

func (m *MockKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockKeyValueStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// Uploader mock implementation, handles are whatever the test returns.
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(key string, img image.Image) (uint32, error) {
	args := m.Called(key, img)
	return args.Get(0).(uint32), args.Error(1)
}

func (m *MockUploader) Release(handle uint32) {
	m.Called(handle)
}

// Item source mock, used by the item navigation.
type MockItemSource struct {
	mock.Mock
}

func (m *MockItemSource) ItemsMatching(anyOf, allOf []string) []string {
	args := m.Called(anyOf, allOf)
	return args.Get(0).([]string)
}

func (m *MockItemSource) ItemTags(itemID string) []string {
	args := m.Called(itemID)
	return args.Get(0).([]string)
}
