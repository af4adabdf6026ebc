package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"locali/internal/domain"
	"locali/internal/export"
	"locali/internal/port"
	"locali/internal/service"
	"locali/mocks"
)

func newReviewService() (service.ReviewService, *mocks.MockListingRepo, *mocks.MockTriageService, *mocks.MockEmailSender) {
	listingRepo := new(mocks.MockListingRepo)
	triageSvc := new(mocks.MockTriageService)
	email := new(mocks.MockEmailSender)
	return service.NewReviewService(listingRepo, triageSvc, email, 2), listingRepo, triageSvc, email
}

func flaggedForReview() *domain.Listing {
	l := ownedListing(uuid.New())
	l.TriageStatus = domain.TriageStatusFlagged
	l.TriageReason = strPtr("Off-topic")
	l.ReviewStatus = domain.ReviewStatusPending
	l.ContactEmail = strPtr("owner@example.com")
	return l
}

func TestReviewService_Approve_NotifiesCreator(t *testing.T) {
	svc, listingRepo, _, email := newReviewService()
	reviewer := uuid.New()
	l := flaggedForReview()
	approved := *l
	approved.ReviewStatus = domain.ReviewStatusApproved
	approved.ReviewerNotes = "Looks fine"

	listingRepo.On("GetByID", mock.Anything, l.ID).Return(l, nil).Once()
	listingRepo.On("SetReview", mock.Anything, l.ID, domain.ReviewStatusApproved, "Looks fine", reviewer).Return(nil)
	listingRepo.On("GetByID", mock.Anything, l.ID).Return(&approved, nil).Once()
	email.On("SendReviewDecision", mock.Anything, "owner@example.com", port.ReviewDecision{
		ListingID:   l.ID.String(),
		ListingName: "Hill Street Bakery",
		Approved:    true,
		Notes:       "Looks fine",
	}).Return(nil)

	got, err := svc.Approve(context.Background(), l.ID, reviewer, "  Looks fine ")

	require.NoError(t, err)
	assert.True(t, got.IsPublic())
	email.AssertExpectations(t)
}

func TestReviewService_Reject_NotInQueue(t *testing.T) {
	svc, listingRepo, _, email := newReviewService()
	l := ownedListing(uuid.New())

	listingRepo.On("GetByID", mock.Anything, l.ID).Return(l, nil)
	listingRepo.On("SetReview", mock.Anything, l.ID, domain.ReviewStatusRejected, "", mock.Anything).
		Return(domain.ErrNotInReviewQueue)

	_, err := svc.Reject(context.Background(), l.ID, uuid.New(), "")

	assert.ErrorIs(t, err, domain.ErrNotInReviewQueue)
	email.AssertNotCalled(t, "SendReviewDecision", mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewService_Reject_NoContactSkipsEmail(t *testing.T) {
	svc, listingRepo, _, email := newReviewService()
	l := flaggedForReview()
	l.ContactEmail = nil

	listingRepo.On("GetByID", mock.Anything, l.ID).Return(l, nil)
	listingRepo.On("SetReview", mock.Anything, l.ID, domain.ReviewStatusRejected, "Gambling", mock.Anything).Return(nil)

	_, err := svc.Reject(context.Background(), l.ID, uuid.New(), "Gambling")

	assert.NoError(t, err)
	email.AssertNotCalled(t, "SendReviewDecision", mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewService_RetriageBatch_KeepsOrderAndIsolatesFailures(t *testing.T) {
	svc, listingRepo, triageSvc, _ := newReviewService()

	ok1 := ownedListing(uuid.New())
	ok2 := ownedListing(uuid.New())
	missing := uuid.New()

	listingRepo.On("GetByID", mock.Anything, ok1.ID).Return(ok1, nil)
	listingRepo.On("GetByID", mock.Anything, ok2.ID).Return(ok2, nil)
	listingRepo.On("GetByID", mock.Anything, missing).Return(nil, domain.ErrListingNotFound)
	triageSvc.On("TriageListing", mock.Anything, mock.AnythingOfType("*domain.Listing")).
		Run(func(args mock.Arguments) {
			l := args.Get(1).(*domain.Listing)
			l.TriageStatus = domain.TriageStatusSafe
			l.ReviewStatus = domain.ReviewStatusNotRequired
		}).
		Return(domain.SafeVerdict(), nil)

	results := svc.RetriageBatch(context.Background(), []uuid.UUID{ok1.ID, missing, ok2.ID})

	require.Len(t, results, 3)
	assert.Equal(t, ok1.ID, results[0].ListingID)
	assert.Equal(t, domain.TriageStatusSafe, results[0].Status)
	assert.Equal(t, missing, results[1].ListingID)
	assert.Equal(t, domain.ErrListingNotFound.Error(), results[1].Error)
	assert.Equal(t, ok2.ID, results[2].ListingID)
	assert.Empty(t, results[2].Error)
	triageSvc.AssertNumberOfCalls(t, "TriageListing", 2)
}

func TestReviewService_Retriage_PersistError(t *testing.T) {
	svc, listingRepo, triageSvc, _ := newReviewService()
	l := ownedListing(uuid.New())

	listingRepo.On("GetByID", mock.Anything, l.ID).Return(l, nil)
	triageSvc.On("TriageListing", mock.Anything, l).Return(domain.SafeVerdict(), errors.New("db down"))

	_, err := svc.Retriage(context.Background(), l.ID)

	assert.Error(t, err)
}

func TestReviewService_SetTier(t *testing.T) {
	svc, listingRepo, _, _ := newReviewService()
	l := ownedListing(uuid.New())

	_, err := svc.SetTier(context.Background(), l.ID, "platinum")
	assert.ErrorIs(t, err, domain.ErrInvalidTier)

	listingRepo.On("SetTier", mock.Anything, l.ID, domain.TierPro).Return(nil)
	listingRepo.On("GetByID", mock.Anything, l.ID).Return(l, nil)

	got, err := svc.SetTier(context.Background(), l.ID, domain.TierPro)
	require.NoError(t, err)
	assert.Equal(t, l.ID, got.ID)
}

func TestReviewService_ExportQueue_CSV(t *testing.T) {
	svc, listingRepo, _, _ := newReviewService()
	l := flaggedForReview()

	listingRepo.On("ListReviewQueue", mock.Anything, 0, mock.AnythingOfType("int")).
		Return([]domain.Listing{*l}, 1, nil)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportQueue(context.Background(), export.FormatCSV, &buf))

	assert.Contains(t, buf.String(), "Listing ID")
	assert.Contains(t, buf.String(), l.ID.String())
	assert.Contains(t, buf.String(), "Off-topic")
}
