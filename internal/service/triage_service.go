package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"locali/internal/domain"
	"locali/internal/port"
	"locali/internal/triage"
)

// ListingAnalyzer screens listing content. *triage.Analyzer implements it.
type ListingAnalyzer interface {
	Analyze(ctx context.Context, name string, description *string, category string) triage.Analysis
}

// TriageThrottledError reports that no verdict was stored because the
// classifier asked for a backoff. The listing stays pending.
type TriageThrottledError struct {
	Backoff time.Duration
}

func (e *TriageThrottledError) Error() string {
	return fmt.Sprintf("triage deferred: classifier throttled for %s", e.Backoff)
}

func (e *TriageThrottledError) Is(target error) bool { return target == domain.ErrTriageRateLimited }

// TriageService runs content triage on a stored listing and persists the
// verdict together with the review status it implies. The verdict is only
// stored against the content version it was computed from.
type TriageService interface {
	TriageListing(ctx context.Context, listing *domain.Listing) (domain.TriageVerdict, error)
}

type triageService struct {
	analyzer        ListingAnalyzer
	listingRepo     port.ListingRepository
	categoryRepo    port.CategoryRepository
	emailSender     port.EmailSender
	reviewerAddress string
}

// NewTriageService creates a new TriageService. Flagged listings trigger an
// alert to reviewerAddress when it is non-empty.
func NewTriageService(
	analyzer ListingAnalyzer,
	listingRepo port.ListingRepository,
	categoryRepo port.CategoryRepository,
	emailSender port.EmailSender,
	reviewerAddress string,
) TriageService {
	return &triageService{
		analyzer:        analyzer,
		listingRepo:     listingRepo,
		categoryRepo:    categoryRepo,
		emailSender:     emailSender,
		reviewerAddress: reviewerAddress,
	}
}

// reviewStatusFor maps a verdict to the review workflow state. Flagged
// listings wait in the manual review queue.
func reviewStatusFor(v domain.TriageVerdict) domain.ReviewStatus {
	if v.Status == domain.TriageStatusFlagged {
		return domain.ReviewStatusPending
	}
	return domain.ReviewStatusNotRequired
}

func (s *triageService) TriageListing(ctx context.Context, listing *domain.Listing) (domain.TriageVerdict, error) {
	category := s.categoryName(ctx, listing.CategoryID)
	res := s.analyzer.Analyze(ctx, listing.DisplayName(), listing.Description, category)
	if res.Throttled() {
		return res.Verdict, &TriageThrottledError{Backoff: res.Backoff}
	}
	verdict := res.Verdict
	review := reviewStatusFor(verdict)

	if err := s.listingRepo.UpdateTriage(ctx, listing.ID, listing.ContentVersion, verdict, review); err != nil {
		return verdict, fmt.Errorf("persisting triage verdict: %w", err)
	}

	now := time.Now().UTC()
	listing.TriageStatus = verdict.Status
	listing.TriageReason = verdict.Reason
	listing.TriagedAt = &now
	listing.TriageClaimedAt = nil
	listing.ReviewStatus = review

	if verdict.Status == domain.TriageStatusFlagged {
		log.Printf("triageService.TriageListing: listing %s flagged: %s", listing.ID, *verdict.Reason)
		s.alertReviewers(ctx, listing, verdict)
	}
	return verdict, nil
}

func (s *triageService) categoryName(ctx context.Context, id *uuid.UUID) string {
	if id == nil || *id == uuid.Nil {
		return ""
	}
	cat, err := s.categoryRepo.GetByID(ctx, *id)
	if err != nil {
		log.Printf("triageService.categoryName: category %s: %v", *id, err)
		return ""
	}
	return cat.Name
}

func (s *triageService) alertReviewers(ctx context.Context, listing *domain.Listing, verdict domain.TriageVerdict) {
	if s.reviewerAddress == "" || s.emailSender == nil {
		return
	}
	alert := port.FlaggedListingAlert{
		ListingID:   listing.ID.String(),
		ListingName: listing.DisplayName(),
		Reason:      *verdict.Reason,
	}
	if err := s.emailSender.SendFlaggedListingAlert(ctx, s.reviewerAddress, alert); err != nil {
		log.Printf("triageService.alertReviewers: listing %s: %v", listing.ID, err)
	}
}
