package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"locali/internal/domain"
)

// DirectoryFilter narrows the public directory listing.
type DirectoryFilter struct {
	CategoryID *uuid.UUID
	Location   string
}

// ListingRepository defines the contract for listing persistence.
type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]domain.Listing, int, error)
	// Update persists the creator-editable fields and refreshes listing from
	// the stored row. When contentChanged it also resets triage to pending,
	// clears any review decision and bumps the content version.
	Update(ctx context.Context, listing *domain.Listing, contentChanged bool) error
	// UpdateTriage stores a verdict together with the review status it implies
	// and releases any worker claim on the row. It returns
	// domain.ErrTriageSuperseded when the listing's content version no longer
	// matches contentVersion.
	UpdateTriage(ctx context.Context, id uuid.UUID, contentVersion int, verdict domain.TriageVerdict, review domain.ReviewStatus) error
	// ClaimPendingTriage atomically claims up to limit listings awaiting
	// triage. Claims older than staleAfter are treated as abandoned.
	ClaimPendingTriage(ctx context.Context, limit int, staleAfter time.Duration) ([]domain.Listing, error)
	ListPublic(ctx context.Context, filter DirectoryFilter, offset, limit int) ([]domain.Listing, int, error)
	ListReviewQueue(ctx context.Context, offset, limit int) ([]domain.Listing, int, error)
	// SetReview records a manual decision. Returns domain.ErrNotInReviewQueue
	// when the listing is not pending review.
	SetReview(ctx context.Context, id uuid.UUID, status domain.ReviewStatus, notes string, reviewerID uuid.UUID) error
	SetTier(ctx context.Context, id uuid.UUID, tier domain.ListingTier) error
	SetLogo(ctx context.Context, id uuid.UUID, key string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository defines the contract for product persistence. Product
// queries are always scoped to their listing.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, listingID, productID uuid.UUID) (*domain.Product, error)
	ListByListing(ctx context.Context, listingID uuid.UUID) ([]domain.Product, error)
	CountByListing(ctx context.Context, listingID uuid.UUID) (int, error)
	// CountByListings returns active product counts keyed by listing ID.
	// Listings with no products are absent from the map.
	CountByListings(ctx context.Context, listingIDs []uuid.UUID) (map[uuid.UUID]int, error)
	Delete(ctx context.Context, listingID, productID uuid.UUID) error
}

// CategoryRepository defines the contract for category persistence.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}
