package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"imageapi/internal/model"
	"imageapi/internal/service"
)

// MockFileService is a testify mock of service.FileService for handler tests.
type MockFileService struct {
	mock.Mock
}

var _ service.FileService = (*MockFileService)(nil)

func (m *MockFileService) Upload(ctx context.Context, in service.UploadInput) (*model.FileRecord, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FileRecord), args.Error(1)
}

func (m *MockFileService) List(ctx context.Context) ([]model.FileRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FileRecord), args.Error(1)
}

func (m *MockFileService) Open(ctx context.Context, id string) (*service.FileContent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FileContent), args.Error(1)
}
