// Package email holds the message copy shared by the EmailSender
// implementations in its subpackages.
package email

import (
	"fmt"

	"locali/internal/port"
)

// ReviewURL links a reviewer to a flagged listing in the admin console.
func ReviewURL(frontendURL, listingID string) string {
	return fmt.Sprintf("%s/admin/review?listing=%s", frontendURL, listingID)
}

// StudioURL links a creator to their listing in the studio.
func StudioURL(frontendURL, listingID string) string {
	return fmt.Sprintf("%s/studio/listing?id=%s", frontendURL, listingID)
}

// DecisionVerb renders a review outcome for email copy.
func DecisionVerb(approved bool) string {
	if approved {
		return "approved"
	}
	return "not approved"
}

// FlaggedAlertSubject is the subject line of the reviewer alert.
func FlaggedAlertSubject(alert port.FlaggedListingAlert) string {
	return fmt.Sprintf("Listing flagged for review: %s", alert.ListingName)
}

// FlaggedAlertText is the plain-text body of the reviewer alert.
func FlaggedAlertText(alert port.FlaggedListingAlert, reviewURL string) string {
	return fmt.Sprintf("The listing %q was flagged by content triage and is hidden until reviewed.\n\nReason: %s\n\nReview it here:\n%s\n",
		alert.ListingName, alert.Reason, reviewURL)
}

// ReviewDecisionSubject is the subject line of the creator notification.
func ReviewDecisionSubject(decision port.ReviewDecision) string {
	return fmt.Sprintf("Your listing %s was %s", decision.ListingName, DecisionVerb(decision.Approved))
}

// ReviewDecisionText is the plain-text body of the creator notification.
func ReviewDecisionText(decision port.ReviewDecision, listingURL string) string {
	body := fmt.Sprintf("Hi,\n\nYour listing %q was %s by our review team.\n", decision.ListingName, DecisionVerb(decision.Approved))
	if decision.Notes != "" {
		body += fmt.Sprintf("\nReviewer notes: %s\n", decision.Notes)
	}
	body += fmt.Sprintf("\nManage your listing:\n%s\n\nLocali Team", listingURL)
	return body
}
