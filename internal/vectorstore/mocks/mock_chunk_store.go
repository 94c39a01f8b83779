package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"campusapi/internal/model"
	"campusapi/internal/vectorstore"
)

// MockChunkStore is a testify mock for vectorstore.ChunkStore.
type MockChunkStore struct {
	mock.Mock
}

func (m *MockChunkStore) All(ctx context.Context) ([]model.DocumentChunk, error) {
	args := m.Called(ctx)
	var chunks []model.DocumentChunk
	if v := args.Get(0); v != nil {
		chunks = v.([]model.DocumentChunk)
	}
	return chunks, args.Error(1)
}

func (m *MockChunkStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockChunkStore) Delete(ctx context.Context, ids ...string) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockChunkStore) Reset(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockChunkStore) Location() string {
	return m.Called().String(0)
}

// MockExportingStore adds vectorstore.Exporter to MockChunkStore.
type MockExportingStore struct {
	MockChunkStore
}

func (m *MockExportingStore) Export(ctx context.Context, w io.Writer) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

var (
	_ vectorstore.ChunkStore = (*MockChunkStore)(nil)
	_ vectorstore.Exporter   = (*MockExportingStore)(nil)
)
