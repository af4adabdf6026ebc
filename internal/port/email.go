package port

import "context"

// FlaggedListingAlert describes a listing that triage sent to manual review.
type FlaggedListingAlert struct {
	ListingID   string
	ListingName string
	Reason      string
}

// ReviewDecision describes a reviewer's decision on a listing.
type ReviewDecision struct {
	ListingID   string
	ListingName string
	Approved    bool
	Notes       string
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendFlaggedListingAlert(ctx context.Context, toEmail string, alert FlaggedListingAlert) error
	SendReviewDecision(ctx context.Context, toEmail string, decision ReviewDecision) error
}
