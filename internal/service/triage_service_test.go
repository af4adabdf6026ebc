package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"locali/internal/domain"
	"locali/internal/port"
	"locali/internal/service"
	"locali/internal/triage"
	"locali/mocks"
)

func strPtr(s string) *string { return &s }

func analysisOf(v domain.TriageVerdict) triage.Analysis { return triage.Analysis{Verdict: v} }

type triageDeps struct {
	analyzer     *mocks.MockListingAnalyzer
	listingRepo  *mocks.MockListingRepo
	categoryRepo *mocks.MockCategoryRepo
	email        *mocks.MockEmailSender
}

func newTriageService(reviewer string) (service.TriageService, triageDeps) {
	d := triageDeps{
		analyzer:     new(mocks.MockListingAnalyzer),
		listingRepo:  new(mocks.MockListingRepo),
		categoryRepo: new(mocks.MockCategoryRepo),
		email:        new(mocks.MockEmailSender),
	}
	svc := service.NewTriageService(d.analyzer, d.listingRepo, d.categoryRepo, d.email, reviewer)
	return svc, d
}

func TestTriageService_Flagged_QueuesForReviewAndAlerts(t *testing.T) {
	svc, d := newTriageService("review@locali.app")

	catID := uuid.New()
	listing := &domain.Listing{
		ID:             uuid.New(),
		Name:           strPtr("Casino Nights"),
		Description:    strPtr("Weekly poker tables"),
		CategoryID:     &catID,
		TriageStatus:   domain.TriageStatusPending,
		ReviewStatus:   domain.ReviewStatusNotRequired,
		ContentVersion: 3,
	}

	d.categoryRepo.On("GetByID", mock.Anything, catID).Return(&domain.Category{ID: catID, Name: "Events"}, nil)
	d.analyzer.On("Analyze", mock.Anything, "Casino Nights", listing.Description, "Events").
		Return(analysisOf(domain.FlaggedVerdict("Gambling")))
	d.listingRepo.On("UpdateTriage", mock.Anything, listing.ID, listing.ContentVersion, domain.FlaggedVerdict("Gambling"), domain.ReviewStatusPending).
		Return(nil)
	d.email.On("SendFlaggedListingAlert", mock.Anything, "review@locali.app", port.FlaggedListingAlert{
		ListingID:   listing.ID.String(),
		ListingName: "Casino Nights",
		Reason:      "Gambling",
	}).Return(nil)

	verdict, err := svc.TriageListing(context.Background(), listing)

	require.NoError(t, err)
	assert.Equal(t, domain.TriageStatusFlagged, verdict.Status)
	assert.Equal(t, domain.TriageStatusFlagged, listing.TriageStatus)
	assert.Equal(t, domain.ReviewStatusPending, listing.ReviewStatus)
	assert.NotNil(t, listing.TriagedAt)
	assert.False(t, listing.IsPublic())
	d.email.AssertExpectations(t)
	d.listingRepo.AssertExpectations(t)
}

func TestTriageService_Safe_NoReviewNoAlert(t *testing.T) {
	svc, d := newTriageService("review@locali.app")

	listing := &domain.Listing{ID: uuid.New(), Name: strPtr("Hill Street Bakery")}

	d.analyzer.On("Analyze", mock.Anything, "Hill Street Bakery", (*string)(nil), "").
		Return(analysisOf(domain.SafeVerdict()))
	d.listingRepo.On("UpdateTriage", mock.Anything, listing.ID, listing.ContentVersion, domain.SafeVerdict(), domain.ReviewStatusNotRequired).
		Return(nil)

	verdict, err := svc.TriageListing(context.Background(), listing)

	require.NoError(t, err)
	assert.True(t, verdict.IsSafe())
	assert.True(t, listing.IsPublic())
	d.email.AssertNotCalled(t, "SendFlaggedListingAlert", mock.Anything, mock.Anything, mock.Anything)
	d.categoryRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestTriageService_AlertFailureIsNotFatal(t *testing.T) {
	svc, d := newTriageService("review@locali.app")
	listing := &domain.Listing{ID: uuid.New(), Name: strPtr("x")}

	d.analyzer.On("Analyze", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(analysisOf(domain.FlaggedVerdict("Spam")))
	d.listingRepo.On("UpdateTriage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	d.email.On("SendFlaggedListingAlert", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("ses down"))

	_, err := svc.TriageListing(context.Background(), listing)

	assert.NoError(t, err)
}

func TestTriageService_NoReviewerAddress_SkipsAlert(t *testing.T) {
	svc, d := newTriageService("")
	listing := &domain.Listing{ID: uuid.New(), Name: strPtr("x")}

	d.analyzer.On("Analyze", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(analysisOf(domain.FlaggedVerdict("Spam")))
	d.listingRepo.On("UpdateTriage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.TriageListing(context.Background(), listing)

	assert.NoError(t, err)
	d.email.AssertNotCalled(t, "SendFlaggedListingAlert", mock.Anything, mock.Anything, mock.Anything)
}

func TestTriageService_PersistFailure(t *testing.T) {
	svc, d := newTriageService("")
	listing := &domain.Listing{ID: uuid.New(), Name: strPtr("x"), TriageStatus: domain.TriageStatusPending}

	d.analyzer.On("Analyze", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(analysisOf(domain.SafeVerdict()))
	d.listingRepo.On("UpdateTriage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("connection reset"))

	_, err := svc.TriageListing(context.Background(), listing)

	assert.Error(t, err)
	assert.Equal(t, domain.TriageStatusPending, listing.TriageStatus)
}

func TestTriageService_UnknownCategoryStillClassifies(t *testing.T) {
	svc, d := newTriageService("")
	catID := uuid.New()
	listing := &domain.Listing{ID: uuid.New(), Name: strPtr("x"), CategoryID: &catID}

	d.categoryRepo.On("GetByID", mock.Anything, catID).Return(nil, domain.ErrCategoryNotFound)
	d.analyzer.On("Analyze", mock.Anything, "x", (*string)(nil), "").Return(analysisOf(domain.SafeVerdict()))
	d.listingRepo.On("UpdateTriage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.TriageListing(context.Background(), listing)

	assert.NoError(t, err)
	d.analyzer.AssertExpectations(t)
}

func TestTriageService_EditedDuringTriage_VerdictDropped(t *testing.T) {
	svc, d := newTriageService("review@locali.app")
	listing := &domain.Listing{
		ID:             uuid.New(),
		Name:           strPtr("Corner Store"),
		TriageStatus:   domain.TriageStatusPending,
		ReviewStatus:   domain.ReviewStatusNotRequired,
		ContentVersion: 4,
	}

	d.analyzer.On("Analyze", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(analysisOf(domain.FlaggedVerdict("Spam")))
	// The creator saved new content (version 5) while the classifier ran.
	d.listingRepo.On("UpdateTriage", mock.Anything, listing.ID, 4, domain.FlaggedVerdict("Spam"), domain.ReviewStatusPending).
		Return(domain.ErrTriageSuperseded)

	_, err := svc.TriageListing(context.Background(), listing)

	require.ErrorIs(t, err, domain.ErrTriageSuperseded)
	assert.Equal(t, domain.TriageStatusPending, listing.TriageStatus)
	assert.Nil(t, listing.TriagedAt)
	d.email.AssertNotCalled(t, "SendFlaggedListingAlert", mock.Anything, mock.Anything, mock.Anything)
}

func TestTriageService_Throttled_LeavesListingPending(t *testing.T) {
	svc, d := newTriageService("review@locali.app")
	listing := &domain.Listing{ID: uuid.New(), Name: strPtr("x"), TriageStatus: domain.TriageStatusPending}

	d.analyzer.On("Analyze", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(triage.Analysis{Verdict: domain.FlaggedVerdict(triage.ReasonSystemError), Backoff: 45 * time.Second})

	_, err := svc.TriageListing(context.Background(), listing)

	var throttled *service.TriageThrottledError
	require.ErrorAs(t, err, &throttled)
	assert.Equal(t, 45*time.Second, throttled.Backoff)
	assert.ErrorIs(t, err, domain.ErrTriageRateLimited)
	assert.Equal(t, domain.TriageStatusPending, listing.TriageStatus)
	d.listingRepo.AssertNotCalled(t, "UpdateTriage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	d.email.AssertNotCalled(t, "SendFlaggedListingAlert", mock.Anything, mock.Anything, mock.Anything)
}
