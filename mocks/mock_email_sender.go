package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"locali/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendFlaggedListingAlert(ctx context.Context, toEmail string, alert port.FlaggedListingAlert) error {
	args := m.Called(ctx, toEmail, alert)
	return args.Error(0)
}

func (m *MockEmailSender) SendReviewDecision(ctx context.Context, toEmail string, decision port.ReviewDecision) error {
	args := m.Called(ctx, toEmail, decision)
	return args.Error(0)
}
