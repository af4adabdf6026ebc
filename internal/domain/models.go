package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category is a directory category a listing can be filed under.
type Category struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Listing is a business/creator profile entry in the directory.
type Listing struct {
	ID                uuid.UUID    `db:"id" json:"id"`
	OwnerID           uuid.UUID    `db:"owner_id" json:"owner_id"`
	Name              *string      `db:"name" json:"name"`
	CategoryID        *uuid.UUID   `db:"category_id" json:"category_id"`
	Location          *string      `db:"location" json:"location"`
	Description       *string      `db:"description" json:"description"`
	ContactEmail      *string      `db:"contact_email" json:"contact_email"`
	Phone             *string      `db:"phone" json:"phone"`
	LogoKey           *string      `db:"logo_key" json:"-"`
	Tier              ListingTier  `db:"tier" json:"tier"`
	CategoryConfirmed bool         `db:"category_confirmed" json:"category_confirmed"`
	PolicyAccepted    bool         `db:"policy_accepted" json:"policy_accepted"`
	TriageStatus      TriageStatus `db:"triage_status" json:"triage_status"`
	TriageReason      *string      `db:"triage_reason" json:"triage_reason"`
	TriagedAt         *time.Time   `db:"triaged_at" json:"triaged_at"`
	TriageClaimedAt   *time.Time   `db:"triage_claimed_at" json:"-"`
	ContentVersion    int          `db:"content_version" json:"-"`
	ReviewStatus      ReviewStatus `db:"review_status" json:"review_status"`
	ReviewerNotes     string       `db:"reviewer_notes" json:"reviewer_notes"`
	ReviewedBy        *uuid.UUID   `db:"reviewed_by" json:"reviewed_by"`
	ReviewedAt        *time.Time   `db:"reviewed_at" json:"reviewed_at"`
	CreatedAt         time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time    `db:"updated_at" json:"updated_at"`
}

// IsPublic reports whether the listing may appear in the public directory.
func (l *Listing) IsPublic() bool {
	switch l.ReviewStatus {
	case ReviewStatusApproved:
		return true
	case ReviewStatusNotRequired:
		return l.TriageStatus == TriageStatusSafe
	default:
		return false
	}
}

// DisplayName returns the listing name or an empty string when unset.
func (l *Listing) DisplayName() string {
	if l.Name == nil {
		return ""
	}
	return strings.TrimSpace(*l.Name)
}

// Product is an item sold through a listing's storefront.
type Product struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ListingID   uuid.UUID `db:"listing_id" json:"listing_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	PriceCents  int64     `db:"price_cents" json:"price_cents"`
	Currency    string    `db:"currency" json:"currency"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// TriageVerdict is the result of screening listing content. Reason is nil
// when Status is safe and always set when Status is flagged.
type TriageVerdict struct {
	Status TriageStatus `json:"status"`
	Reason *string      `json:"reason"`
}

// SafeVerdict returns a fresh safe verdict.
func SafeVerdict() TriageVerdict {
	return TriageVerdict{Status: TriageStatusSafe}
}

// FlaggedVerdict returns a fresh flagged verdict with the given reason.
func FlaggedVerdict(reason string) TriageVerdict {
	return TriageVerdict{Status: TriageStatusFlagged, Reason: &reason}
}

// IsSafe reports whether the verdict allows immediate publication.
func (v TriageVerdict) IsSafe() bool {
	return v.Status == TriageStatusSafe
}

// Clone returns a copy that shares no memory with v.
func (v TriageVerdict) Clone() TriageVerdict {
	out := TriageVerdict{Status: v.Status}
	if v.Reason != nil {
		r := *v.Reason
		out.Reason = &r
	}
	return out
}
