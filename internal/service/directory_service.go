package service

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"

	"locali/internal/config"
	"locali/internal/domain"
	"locali/internal/lifecycle"
	"locali/internal/port"
)

// DirectoryEntry is the public view of a listing.
type DirectoryEntry struct {
	ID          uuid.UUID             `json:"id"`
	Name        string                `json:"name"`
	CategoryID  *uuid.UUID            `json:"category_id"`
	Location    *string               `json:"location"`
	Description *string               `json:"description"`
	LogoURL     string                `json:"logo_url,omitempty"`
	Stage       domain.LifecycleStage `json:"stage"`
	Featured    bool                  `json:"featured"`
	HasMiniSite bool                  `json:"has_mini_site"`
}

// MiniSite is the public storefront page of an S3 listing.
type MiniSite struct {
	DirectoryEntry
	ContactEmail *string          `json:"contact_email"`
	Phone        *string          `json:"phone"`
	Products     []domain.Product `json:"products"`
}

// DirectoryService defines the public directory contract. Only listings that
// pass the visibility rule are ever returned.
type DirectoryService interface {
	List(ctx context.Context, filter port.DirectoryFilter, offset, limit int) ([]DirectoryEntry, int, error)
	GetPublic(ctx context.Context, listingID uuid.UUID) (*DirectoryEntry, error)
	MiniSite(ctx context.Context, listingID uuid.UUID) (*MiniSite, error)
}

type directoryService struct {
	listingRepo port.ListingRepository
	productRepo port.ProductRepository
	storage     port.ObjectStorage
	calc        *lifecycle.Calculator
	s3Cfg       *config.S3Config
}

// NewDirectoryService creates a new DirectoryService implementation.
func NewDirectoryService(
	listingRepo port.ListingRepository,
	productRepo port.ProductRepository,
	storage port.ObjectStorage,
	calc *lifecycle.Calculator,
	s3Cfg *config.S3Config,
) DirectoryService {
	return &directoryService{
		listingRepo: listingRepo,
		productRepo: productRepo,
		storage:     storage,
		calc:        calc,
		s3Cfg:       s3Cfg,
	}
}

func (s *directoryService) entry(ctx context.Context, l *domain.Listing, productCount int) DirectoryEntry {
	snap := lifecycle.SnapshotOf(l, productCount)
	e := DirectoryEntry{
		ID:          l.ID,
		Name:        l.DisplayName(),
		CategoryID:  l.CategoryID,
		Location:    l.Location,
		Description: l.Description,
		Stage:       s.calc.CalculateStage(snap),
		Featured:    s.calc.IsFeatureUnlocked(snap, lifecycle.FeatureFeaturedPlacement),
		HasMiniSite: s.calc.IsFeatureUnlocked(snap, lifecycle.FeatureMiniSite),
	}
	if l.LogoKey != nil && s.storage != nil {
		url, err := s.storage.GetPresignedURL(ctx, *l.LogoKey, s.s3Cfg.PresignExpiry)
		if err != nil {
			log.Printf("directoryService.entry: listing %s logo: %v", l.ID, err)
		} else {
			e.LogoURL = url
		}
	}
	return e
}

// List returns public listings. Within a page, listings with featured
// placement unlocked come first; the relative order is otherwise preserved.
func (s *directoryService) List(ctx context.Context, filter port.DirectoryFilter, offset, limit int) ([]DirectoryEntry, int, error) {
	listings, total, err := s.listingRepo.ListPublic(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, len(listings))
	for i := range listings {
		ids[i] = listings[i].ID
	}
	counts, err := s.productRepo.CountByListings(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("counting products: %w", err)
	}

	entries := make([]DirectoryEntry, len(listings))
	for i := range listings {
		entries[i] = s.entry(ctx, &listings[i], counts[listings[i].ID])
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Featured && !entries[j].Featured
	})
	return entries, total, nil
}

func (s *directoryService) loadPublic(ctx context.Context, listingID uuid.UUID) (*domain.Listing, int, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, 0, err
	}
	if !listing.IsPublic() {
		return nil, 0, domain.ErrListingNotFound
	}
	count, err := s.productRepo.CountByListing(ctx, listing.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("counting products: %w", err)
	}
	return listing, count, nil
}

func (s *directoryService) GetPublic(ctx context.Context, listingID uuid.UUID) (*DirectoryEntry, error) {
	listing, count, err := s.loadPublic(ctx, listingID)
	if err != nil {
		return nil, err
	}
	e := s.entry(ctx, listing, count)
	return &e, nil
}

func (s *directoryService) MiniSite(ctx context.Context, listingID uuid.UUID) (*MiniSite, error) {
	listing, count, err := s.loadPublic(ctx, listingID)
	if err != nil {
		return nil, err
	}
	e := s.entry(ctx, listing, count)
	if !e.HasMiniSite {
		return nil, domain.ErrListingNotFound
	}

	products, err := s.productRepo.ListByListing(ctx, listing.ID)
	if err != nil {
		return nil, err
	}
	active := make([]domain.Product, 0, len(products))
	for i := range products {
		if products[i].IsActive {
			active = append(active, products[i])
		}
	}
	return &MiniSite{
		DirectoryEntry: e,
		ContactEmail:   listing.ContactEmail,
		Phone:          listing.Phone,
		Products:       active,
	}, nil
}
