package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"locali/internal/domain"
	"locali/internal/triage"
)

// MockTriageService is a mock implementation of service.TriageService.
type MockTriageService struct {
	mock.Mock
}

func (m *MockTriageService) TriageListing(ctx context.Context, listing *domain.Listing) (domain.TriageVerdict, error) {
	args := m.Called(ctx, listing)
	return args.Get(0).(domain.TriageVerdict), args.Error(1)
}

// MockListingAnalyzer is a mock implementation of service.ListingAnalyzer.
type MockListingAnalyzer struct {
	mock.Mock
}

func (m *MockListingAnalyzer) Analyze(ctx context.Context, name string, description *string, category string) triage.Analysis {
	args := m.Called(ctx, name, description, category)
	return args.Get(0).(triage.Analysis)
}
