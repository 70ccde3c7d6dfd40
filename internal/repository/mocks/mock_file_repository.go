package mocks

import (
	"context"

	"imageapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockFileRepository struct {
	mock.Mock
}

func (m *MockFileRepository) Create(ctx context.Context, rec model.FileRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockFileRepository) FindByID(ctx context.Context, id string) (model.FileRecord, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.FileRecord), args.Bool(1), args.Error(2)
}

func (m *MockFileRepository) List(ctx context.Context) ([]model.FileRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FileRecord), args.Error(1)
}

func (m *MockFileRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
