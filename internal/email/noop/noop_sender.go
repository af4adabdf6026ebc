package noop

import (
	"context"
	"log"

	"locali/internal/email"
	"locali/internal/port"
)

type noopSender struct {
	frontendURL string
}

// NewNoopSender creates an EmailSender that only logs what would be sent.
func NewNoopSender(frontendURL string) port.EmailSender {
	return &noopSender{frontendURL: frontendURL}
}

func (s *noopSender) SendFlaggedListingAlert(_ context.Context, toEmail string, alert port.FlaggedListingAlert) error {
	reviewURL := email.ReviewURL(s.frontendURL, alert.ListingID)
	log.Printf("[NOOP EMAIL] %s -> %s:\n%s", email.FlaggedAlertSubject(alert), toEmail, email.FlaggedAlertText(alert, reviewURL))
	return nil
}

func (s *noopSender) SendReviewDecision(_ context.Context, toEmail string, decision port.ReviewDecision) error {
	listingURL := email.StudioURL(s.frontendURL, decision.ListingID)
	log.Printf("[NOOP EMAIL] %s -> %s:\n%s", email.ReviewDecisionSubject(decision), toEmail, email.ReviewDecisionText(decision, listingURL))
	return nil
}
