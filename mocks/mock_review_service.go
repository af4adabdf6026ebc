package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"locali/internal/domain"
	"locali/internal/export"
	"locali/internal/service"
)

// MockReviewService is a mock implementation of service.ReviewService.
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ListQueue(ctx context.Context, offset, limit int) ([]domain.Listing, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Listing), args.Int(1), args.Error(2)
}

func (m *MockReviewService) Approve(ctx context.Context, listingID, reviewerID uuid.UUID, notes string) (*domain.Listing, error) {
	args := m.Called(ctx, listingID, reviewerID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockReviewService) Reject(ctx context.Context, listingID, reviewerID uuid.UUID, notes string) (*domain.Listing, error) {
	args := m.Called(ctx, listingID, reviewerID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockReviewService) Retriage(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockReviewService) RetriageBatch(ctx context.Context, listingIDs []uuid.UUID) []service.RetriageResult {
	args := m.Called(ctx, listingIDs)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]service.RetriageResult)
}

func (m *MockReviewService) SetTier(ctx context.Context, listingID uuid.UUID, tier domain.ListingTier) (*domain.Listing, error) {
	args := m.Called(ctx, listingID, tier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockReviewService) ExportQueue(ctx context.Context, format export.Format, w io.Writer) error {
	args := m.Called(ctx, format, w)
	return args.Error(0)
}
