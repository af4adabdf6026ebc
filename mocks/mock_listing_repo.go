package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"locali/internal/domain"
	"locali/internal/port"
)

// MockListingRepo is a mock implementation of port.ListingRepository.
type MockListingRepo struct {
	mock.Mock
}

func (m *MockListingRepo) Create(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]domain.Listing, int, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Listing), args.Int(1), args.Error(2)
}

func (m *MockListingRepo) Update(ctx context.Context, listing *domain.Listing, contentChanged bool) error {
	args := m.Called(ctx, listing, contentChanged)
	return args.Error(0)
}

func (m *MockListingRepo) UpdateTriage(ctx context.Context, id uuid.UUID, contentVersion int, verdict domain.TriageVerdict, review domain.ReviewStatus) error {
	args := m.Called(ctx, id, contentVersion, verdict, review)
	return args.Error(0)
}

func (m *MockListingRepo) ClaimPendingTriage(ctx context.Context, limit int, staleAfter time.Duration) ([]domain.Listing, error) {
	args := m.Called(ctx, limit, staleAfter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *MockListingRepo) ListPublic(ctx context.Context, filter port.DirectoryFilter, offset, limit int) ([]domain.Listing, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Listing), args.Int(1), args.Error(2)
}

func (m *MockListingRepo) ListReviewQueue(ctx context.Context, offset, limit int) ([]domain.Listing, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Listing), args.Int(1), args.Error(2)
}

func (m *MockListingRepo) SetReview(ctx context.Context, id uuid.UUID, status domain.ReviewStatus, notes string, reviewerID uuid.UUID) error {
	args := m.Called(ctx, id, status, notes, reviewerID)
	return args.Error(0)
}

func (m *MockListingRepo) SetTier(ctx context.Context, id uuid.UUID, tier domain.ListingTier) error {
	args := m.Called(ctx, id, tier)
	return args.Error(0)
}

func (m *MockListingRepo) SetLogo(ctx context.Context, id uuid.UUID, key string) error {
	args := m.Called(ctx, id, key)
	return args.Error(0)
}

func (m *MockListingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
