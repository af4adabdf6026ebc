package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"locali/internal/domain"
	"locali/internal/export"
	"locali/internal/port"
)

// maxExportRows caps a single review queue export.
const maxExportRows = 5000

// RetriageResult is the per-listing outcome of a bulk re-triage.
type RetriageResult struct {
	ListingID uuid.UUID           `json:"listing_id"`
	Status    domain.TriageStatus `json:"status,omitempty"`
	Reason    *string             `json:"reason,omitempty"`
	Review    domain.ReviewStatus `json:"review_status,omitempty"`
	Error     string              `json:"error,omitempty"`
}

// ReviewService defines the admin moderation contract.
type ReviewService interface {
	ListQueue(ctx context.Context, offset, limit int) ([]domain.Listing, int, error)
	Approve(ctx context.Context, listingID, reviewerID uuid.UUID, notes string) (*domain.Listing, error)
	Reject(ctx context.Context, listingID, reviewerID uuid.UUID, notes string) (*domain.Listing, error)
	Retriage(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error)
	RetriageBatch(ctx context.Context, listingIDs []uuid.UUID) []RetriageResult
	SetTier(ctx context.Context, listingID uuid.UUID, tier domain.ListingTier) (*domain.Listing, error)
	ExportQueue(ctx context.Context, format export.Format, w io.Writer) error
}

type reviewService struct {
	listingRepo port.ListingRepository
	triageSvc   TriageService
	emailSender port.EmailSender
	concurrency int
}

// NewReviewService creates a new ReviewService implementation. concurrency
// bounds the number of classifier calls a bulk re-triage makes at once.
func NewReviewService(listingRepo port.ListingRepository, triageSvc TriageService, emailSender port.EmailSender, concurrency int) ReviewService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &reviewService{
		listingRepo: listingRepo,
		triageSvc:   triageSvc,
		emailSender: emailSender,
		concurrency: concurrency,
	}
}

func (s *reviewService) ListQueue(ctx context.Context, offset, limit int) ([]domain.Listing, int, error) {
	return s.listingRepo.ListReviewQueue(ctx, offset, limit)
}

func (s *reviewService) Approve(ctx context.Context, listingID, reviewerID uuid.UUID, notes string) (*domain.Listing, error) {
	return s.decide(ctx, listingID, reviewerID, domain.ReviewStatusApproved, notes)
}

func (s *reviewService) Reject(ctx context.Context, listingID, reviewerID uuid.UUID, notes string) (*domain.Listing, error) {
	return s.decide(ctx, listingID, reviewerID, domain.ReviewStatusRejected, notes)
}

func (s *reviewService) decide(ctx context.Context, listingID, reviewerID uuid.UUID, status domain.ReviewStatus, notes string) (*domain.Listing, error) {
	if _, err := s.listingRepo.GetByID(ctx, listingID); err != nil {
		return nil, err
	}

	notes = strings.TrimSpace(notes)
	if err := s.listingRepo.SetReview(ctx, listingID, status, notes, reviewerID); err != nil {
		return nil, err
	}

	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	log.Printf("reviewService.decide: listing %s %s by %s", listingID, status, reviewerID)
	s.notifyCreator(ctx, listing, status == domain.ReviewStatusApproved)
	return listing, nil
}

func (s *reviewService) notifyCreator(ctx context.Context, listing *domain.Listing, approved bool) {
	if listing.ContactEmail == nil || s.emailSender == nil {
		return
	}
	decision := port.ReviewDecision{
		ListingID:   listing.ID.String(),
		ListingName: listing.DisplayName(),
		Approved:    approved,
		Notes:       listing.ReviewerNotes,
	}
	if err := s.emailSender.SendReviewDecision(ctx, *listing.ContactEmail, decision); err != nil {
		log.Printf("reviewService.notifyCreator: listing %s: %v", listing.ID, err)
	}
}

func (s *reviewService) Retriage(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if _, err := s.triageSvc.TriageListing(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// RetriageBatch re-runs triage on each listing with bounded concurrency. One
// listing failing does not stop the others; results keep the input order.
func (s *reviewService) RetriageBatch(ctx context.Context, listingIDs []uuid.UUID) []RetriageResult {
	results := make([]RetriageResult, len(listingIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, id := range listingIDs {
		i, id := i, id
		results[i].ListingID = id
		g.Go(func() error {
			listing, err := s.Retriage(gctx, id)
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}
			results[i].Status = listing.TriageStatus
			results[i].Reason = listing.TriageReason
			results[i].Review = listing.ReviewStatus
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (s *reviewService) SetTier(ctx context.Context, listingID uuid.UUID, tier domain.ListingTier) (*domain.Listing, error) {
	if !domain.ValidTiers[tier] {
		return nil, domain.ErrInvalidTier
	}
	if err := s.listingRepo.SetTier(ctx, listingID, tier); err != nil {
		return nil, err
	}
	return s.listingRepo.GetByID(ctx, listingID)
}

func (s *reviewService) ExportQueue(ctx context.Context, format export.Format, w io.Writer) error {
	listings, _, err := s.listingRepo.ListReviewQueue(ctx, 0, maxExportRows)
	if err != nil {
		return err
	}

	switch format {
	case export.FormatCSV:
		err = export.WriteCSV(w, listings)
	default:
		err = export.WriteXLSX(w, listings)
	}
	if err != nil {
		return fmt.Errorf("exporting review queue: %w", err)
	}
	return nil
}
