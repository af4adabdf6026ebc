package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"locali/internal/domain"
	"locali/internal/port"
	"locali/internal/service"
)

// MockDirectoryService is a mock implementation of service.DirectoryService.
type MockDirectoryService struct {
	mock.Mock
}

func (m *MockDirectoryService) List(ctx context.Context, filter port.DirectoryFilter, offset, limit int) ([]service.DirectoryEntry, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]service.DirectoryEntry), args.Int(1), args.Error(2)
}

func (m *MockDirectoryService) GetPublic(ctx context.Context, listingID uuid.UUID) (*service.DirectoryEntry, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DirectoryEntry), args.Error(1)
}

func (m *MockDirectoryService) MiniSite(ctx context.Context, listingID uuid.UUID) (*service.MiniSite, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MiniSite), args.Error(1)
}

// MockCategoryService is a mock implementation of service.CategoryService.
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, name, slug string) (*domain.Category, error) {
	args := m.Called(ctx, name, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
