package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"folklore-server/internal/storage"
)

// Mock MediaStore
type MediaStore struct {
	mock.Mock
}

func (m *MediaStore) Upload(ctx context.Context, localPath string, opts storage.UploadOptions) (*storage.UploadResult, error) {
	args := m.Called(ctx, localPath, opts)
	result, _ := args.Get(0).(*storage.UploadResult)
	return result, args.Error(1)
}

// Mock Prober
type Prober struct {
	mock.Mock
}

func (m *Prober) ImageDimensions(path string) (int, int, error) {
	args := m.Called(path)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *Prober) AudioDuration(ctx context.Context, path string) (float64, error) {
	args := m.Called(ctx, path)
	duration, _ := args.Get(0).(float64)
	return duration, args.Error(1)
}
