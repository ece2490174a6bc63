package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"investigator-server/internal/interfaces"
)

var _ interfaces.BlobStore = (*MockBlobStore)(nil)

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Save(ctx context.Context, key string, contents io.Reader) (string, error) {
	args := m.Called(ctx, key, contents)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
