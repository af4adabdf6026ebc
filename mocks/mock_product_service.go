package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"locali/internal/domain"
	"locali/internal/service"
)

// MockProductService is a mock implementation of service.ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, input *service.CreateProductInput) (*service.ProductMutation, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProductMutation), args.Error(1)
}

func (m *MockProductService) List(ctx context.Context, listingID, userID uuid.UUID, role domain.UserRole) ([]domain.Product, error) {
	args := m.Called(ctx, listingID, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, listingID, productID, userID uuid.UUID, role domain.UserRole) (*service.ProductMutation, error) {
	args := m.Called(ctx, listingID, productID, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProductMutation), args.Error(1)
}
