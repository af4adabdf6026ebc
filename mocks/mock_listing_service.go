package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"locali/internal/domain"
	"locali/internal/lifecycle"
	"locali/internal/service"
)

// MockListingService is a mock implementation of service.ListingService.
type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) Create(ctx context.Context, input *service.CreateListingInput) (*service.ListingDetail, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListingDetail), args.Error(1)
}

func (m *MockListingService) GetByID(ctx context.Context, listingID, userID uuid.UUID, role domain.UserRole) (*service.ListingDetail, error) {
	args := m.Called(ctx, listingID, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListingDetail), args.Error(1)
}

func (m *MockListingService) ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]service.ListingDetail, int, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]service.ListingDetail), args.Int(1), args.Error(2)
}

func (m *MockListingService) Update(ctx context.Context, input *service.UpdateListingInput) (*service.ListingDetail, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListingDetail), args.Error(1)
}

func (m *MockListingService) Delete(ctx context.Context, listingID, userID uuid.UUID, role domain.UserRole) error {
	args := m.Called(ctx, listingID, userID, role)
	return args.Error(0)
}

func (m *MockListingService) Progress(ctx context.Context, listingID, userID uuid.UUID, role domain.UserRole) (*lifecycle.Progress, error) {
	args := m.Called(ctx, listingID, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lifecycle.Progress), args.Error(1)
}

func (m *MockListingService) FeatureAccess(ctx context.Context, listingID, userID uuid.UUID, role domain.UserRole, feature string) (*service.FeatureAccess, error) {
	args := m.Called(ctx, listingID, userID, role, feature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FeatureAccess), args.Error(1)
}

func (m *MockListingService) UploadLogo(ctx context.Context, input *service.UploadLogoInput) (*service.ListingDetail, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListingDetail), args.Error(1)
}

func (m *MockListingService) ShareKit(ctx context.Context, listingID, userID uuid.UUID, role domain.UserRole) (*service.ShareKit, error) {
	args := m.Called(ctx, listingID, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ShareKit), args.Error(1)
}
