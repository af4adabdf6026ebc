package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"locali/internal/config"
	"locali/internal/domain"
	"locali/internal/lifecycle"
	"locali/internal/port"
)

// CreateListingInput is the DTO for creating a listing. Nil or blank optional
// fields are stored as absent.
type CreateListingInput struct {
	OwnerID           uuid.UUID
	Name              *string
	CategoryID        *uuid.UUID
	Location          *string
	Description       *string
	ContactEmail      *string
	Phone             *string
	CategoryConfirmed bool
	PolicyAccepted    bool
}

// UpdateListingInput is the DTO for a partial listing update. Nil fields are
// left unchanged; a blank string clears the field.
type UpdateListingInput struct {
	ListingID         uuid.UUID
	UserID            uuid.UUID
	Role              domain.UserRole
	Name              *string
	CategoryID        *uuid.UUID
	Location          *string
	Description       *string
	ContactEmail      *string
	Phone             *string
	CategoryConfirmed *bool
	PolicyAccepted    *bool
}

// UploadLogoInput is the DTO for uploading a listing logo.
type UploadLogoInput struct {
	ListingID   uuid.UUID
	UserID      uuid.UUID
	Role        domain.UserRole
	Body        io.Reader
	FileName    string
	ContentType string
	Size        int64
}

// ListingDetail is a listing as seen by its owner: the stored row plus the
// derived lifecycle progress.
type ListingDetail struct {
	domain.Listing
	Public   bool               `json:"public"`
	LogoURL  string             `json:"logo_url,omitempty"`
	Progress lifecycle.Progress `json:"progress"`
}

// FeatureAccess reports whether a stage-gated feature is available.
type FeatureAccess struct {
	Feature       lifecycle.Feature     `json:"feature"`
	Unlocked      bool                  `json:"unlocked"`
	Stage         domain.LifecycleStage `json:"stage"`
	RequiredStage domain.LifecycleStage `json:"required_stage"`
}

// ShareKit is the material a creator uses to promote their mini-site.
type ShareKit struct {
	MiniSiteURL string `json:"mini_site_url"`
	ShareText   string `json:"share_text"`
	LogoURL     string `json:"logo_url,omitempty"`
}

// ListingService defines the creator-studio listing contract.
type ListingService interface {
	Create(ctx context.Context, input *CreateListingInput) (*ListingDetail, error)
	GetByID(ctx context.Context, listingID, userID uuid.UUID, role domain.UserRole) (*ListingDetail, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]ListingDetail, int, error)
	Update(ctx context.Context, input *UpdateListingInput) (*ListingDetail, error)
	Delete(ctx context.Context, listingID, userID uuid.UUID, role domain.UserRole) error
	Progress(ctx context.Context, listingID, userID uuid.UUID, role domain.UserRole) (*lifecycle.Progress, error)
	FeatureAccess(ctx context.Context, listingID, userID uuid.UUID, role domain.UserRole, feature string) (*FeatureAccess, error)
	UploadLogo(ctx context.Context, input *UploadLogoInput) (*ListingDetail, error)
	ShareKit(ctx context.Context, listingID, userID uuid.UUID, role domain.UserRole) (*ShareKit, error)
}

type listingService struct {
	listingRepo  port.ListingRepository
	productRepo  port.ProductRepository
	categoryRepo port.CategoryRepository
	storage      port.ObjectStorage
	triageSvc    TriageService
	calc         *lifecycle.Calculator
	s3Cfg        *config.S3Config
	frontendURL  string
}

// NewListingService creates a new ListingService implementation.
func NewListingService(
	listingRepo port.ListingRepository,
	productRepo port.ProductRepository,
	categoryRepo port.CategoryRepository,
	storage port.ObjectStorage,
	triageSvc TriageService,
	calc *lifecycle.Calculator,
	s3Cfg *config.S3Config,
	frontendURL string,
) ListingService {
	return &listingService{
		listingRepo:  listingRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		storage:      storage,
		triageSvc:    triageSvc,
		calc:         calc,
		s3Cfg:        s3Cfg,
		frontendURL:  strings.TrimRight(frontendURL, "/"),
	}
}

// normalize trims s and maps blank values to nil.
func normalize(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sameUUID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// loadOwned fetches a listing the caller may manage. Admins may manage any
// listing.
func loadOwned(ctx context.Context, repo port.ListingRepository, listingID, userID uuid.UUID, role domain.UserRole) (*domain.Listing, error) {
	listing, err := repo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleAdmin && listing.OwnerID != userID {
		return nil, domain.ErrForbidden
	}
	return listing, nil
}

func (s *listingService) validateCategory(ctx context.Context, id *uuid.UUID) (*uuid.UUID, error) {
	if id == nil || *id == uuid.Nil {
		return nil, nil
	}
	if _, err := s.categoryRepo.GetByID(ctx, *id); err != nil {
		return nil, err
	}
	return id, nil
}

func (s *listingService) snapshot(ctx context.Context, listing *domain.Listing) (lifecycle.Snapshot, error) {
	count, err := s.productRepo.CountByListing(ctx, listing.ID)
	if err != nil {
		return lifecycle.Snapshot{}, fmt.Errorf("counting products: %w", err)
	}
	return lifecycle.SnapshotOf(listing, count), nil
}

func (s *listingService) detail(ctx context.Context, listing *domain.Listing) (*ListingDetail, error) {
	snap, err := s.snapshot(ctx, listing)
	if err != nil {
		return nil, err
	}
	d := &ListingDetail{
		Listing:  *listing,
		Public:   listing.IsPublic(),
		Progress: s.calc.CalculateLifecycle(snap),
	}
	d.LogoURL = s.logoURL(ctx, listing)
	return d, nil
}

func (s *listingService) logoURL(ctx context.Context, listing *domain.Listing) string {
	if listing.LogoKey == nil || s.storage == nil {
		return ""
	}
	url, err := s.storage.GetPresignedURL(ctx, *listing.LogoKey, s.s3Cfg.PresignExpiry)
	if err != nil {
		log.Printf("listingService.logoURL: listing %s: %v", listing.ID, err)
		return ""
	}
	return url
}

func (s *listingService) Create(ctx context.Context, input *CreateListingInput) (*ListingDetail, error) {
	categoryID, err := s.validateCategory(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}

	listing := &domain.Listing{
		ID:                uuid.New(),
		OwnerID:           input.OwnerID,
		Name:              normalize(input.Name),
		CategoryID:        categoryID,
		Location:          normalize(input.Location),
		Description:       normalize(input.Description),
		ContactEmail:      normalize(input.ContactEmail),
		Phone:             normalize(input.Phone),
		Tier:              domain.TierBasic,
		CategoryConfirmed: input.CategoryConfirmed,
		PolicyAccepted:    input.PolicyAccepted,
		TriageStatus:      domain.TriageStatusPending,
		ReviewStatus:      domain.ReviewStatusNotRequired,
	}
	// Inserted already claimed so the queue worker leaves it alone while it
	// is triaged inline.
	now := time.Now().UTC()
	listing.TriageClaimedAt = &now

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	// On failure the listing stays pending and the queue worker picks it up
	// once the claim goes stale.
	if _, err := s.triageSvc.TriageListing(ctx, listing); err != nil {
		log.Printf("listingService.Create: triage of %s deferred to queue: %v", listing.ID, err)
	}

	return s.detail(ctx, listing)
}

func (s *listingService) GetByID(ctx context.Context, listingID, userID uuid.UUID, role domain.UserRole) (*ListingDetail, error) {
	listing, err := loadOwned(ctx, s.listingRepo, listingID, userID, role)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, listing)
}

func (s *listingService) ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]ListingDetail, int, error) {
	listings, total, err := s.listingRepo.ListByOwner(ctx, ownerID, offset, limit)
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

	details := make([]ListingDetail, len(listings))
	for i := range listings {
		l := &listings[i]
		details[i] = ListingDetail{
			Listing:  *l,
			Public:   l.IsPublic(),
			LogoURL:  s.logoURL(ctx, l),
			Progress: s.calc.CalculateLifecycle(lifecycle.SnapshotOf(l, counts[l.ID])),
		}
	}
	return details, total, nil
}

func (s *listingService) Update(ctx context.Context, input *UpdateListingInput) (*ListingDetail, error) {
	listing, err := loadOwned(ctx, s.listingRepo, input.ListingID, input.UserID, input.Role)
	if err != nil {
		return nil, err
	}

	contentChanged := false
	if input.Name != nil {
		v := normalize(input.Name)
		contentChanged = contentChanged || !sameString(v, listing.Name)
		listing.Name = v
	}
	if input.Description != nil {
		v := normalize(input.Description)
		contentChanged = contentChanged || !sameString(v, listing.Description)
		listing.Description = v
	}
	if input.CategoryID != nil {
		v, err := s.validateCategory(ctx, input.CategoryID)
		if err != nil {
			return nil, err
		}
		contentChanged = contentChanged || !sameUUID(v, listing.CategoryID)
		listing.CategoryID = v
	}
	if input.Location != nil {
		listing.Location = normalize(input.Location)
	}
	if input.ContactEmail != nil {
		listing.ContactEmail = normalize(input.ContactEmail)
	}
	if input.Phone != nil {
		listing.Phone = normalize(input.Phone)
	}
	if input.CategoryConfirmed != nil {
		listing.CategoryConfirmed = *input.CategoryConfirmed
	}
	if input.PolicyAccepted != nil {
		listing.PolicyAccepted = *input.PolicyAccepted
	}

	// Screened content changed: hide the listing until the queue worker
	// produces a fresh verdict. Any earlier review decision no longer applies.
	if contentChanged {
		listing.TriageStatus = domain.TriageStatusPending
		listing.TriageReason = nil
		listing.TriagedAt = nil
		listing.ReviewStatus = domain.ReviewStatusNotRequired
	}

	if err := s.listingRepo.Update(ctx, listing, contentChanged); err != nil {
		return nil, err
	}
	return s.detail(ctx, listing)
}

func (s *listingService) Delete(ctx context.Context, listingID, userID uuid.UUID, role domain.UserRole) error {
	listing, err := loadOwned(ctx, s.listingRepo, listingID, userID, role)
	if err != nil {
		return err
	}
	if err := s.listingRepo.Delete(ctx, listing.ID); err != nil {
		return err
	}
	if listing.LogoKey != nil && s.storage != nil {
		if err := s.storage.Delete(ctx, *listing.LogoKey); err != nil {
			log.Printf("listingService.Delete: orphaned logo %s: %v", *listing.LogoKey, err)
		}
	}
	return nil
}

func (s *listingService) Progress(ctx context.Context, listingID, userID uuid.UUID, role domain.UserRole) (*lifecycle.Progress, error) {
	listing, err := loadOwned(ctx, s.listingRepo, listingID, userID, role)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx, listing)
	if err != nil {
		return nil, err
	}
	p := s.calc.CalculateLifecycle(snap)
	return &p, nil
}

func (s *listingService) FeatureAccess(ctx context.Context, listingID, userID uuid.UUID, role domain.UserRole, feature string) (*FeatureAccess, error) {
	f, err := lifecycle.ParseFeature(feature)
	if err != nil {
		return nil, err
	}
	listing, err := loadOwned(ctx, s.listingRepo, listingID, userID, role)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx, listing)
	if err != nil {
		return nil, err
	}
	return &FeatureAccess{
		Feature:       f,
		Unlocked:      s.calc.IsFeatureUnlocked(snap, f),
		Stage:         s.calc.CalculateStage(snap),
		RequiredStage: lifecycle.RequiredStage(f),
	}, nil
}

func (s *listingService) UploadLogo(ctx context.Context, input *UploadLogoInput) (*ListingDetail, error) {
	fileType, ok := domain.AllowedContentTypes[input.ContentType]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	maxBytes := s.s3Cfg.MaxFileSizeMB * 1024 * 1024
	if input.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	listing, err := loadOwned(ctx, s.listingRepo, input.ListingID, input.UserID, input.Role)
	if err != nil {
		return nil, err
	}

	key := path.Join("listings", listing.ID.String(), "logo-"+uuid.NewString()+"."+string(fileType))
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Key:         key,
		Body:        input.Body,
		ContentType: input.ContentType,
		Size:        input.Size,
	}); err != nil {
		log.Printf("listingService.UploadLogo: listing %s: %v", listing.ID, err)
		return nil, domain.ErrUploadFailed
	}

	if err := s.listingRepo.SetLogo(ctx, listing.ID, key); err != nil {
		return nil, err
	}
	if listing.LogoKey != nil {
		if err := s.storage.Delete(ctx, *listing.LogoKey); err != nil {
			log.Printf("listingService.UploadLogo: orphaned logo %s: %v", *listing.LogoKey, err)
		}
	}
	listing.LogoKey = &key
	return s.detail(ctx, listing)
}

func (s *listingService) ShareKit(ctx context.Context, listingID, userID uuid.UUID, role domain.UserRole) (*ShareKit, error) {
	listing, err := loadOwned(ctx, s.listingRepo, listingID, userID, role)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx, listing)
	if err != nil {
		return nil, err
	}
	if !s.calc.IsFeatureUnlocked(snap, lifecycle.FeatureShareKit) {
		return nil, domain.ErrFeatureLocked
	}

	siteURL := MiniSiteURL(s.frontendURL, listing.ID)
	return &ShareKit{
		MiniSiteURL: siteURL,
		ShareText:   fmt.Sprintf("Find %s on Locali: %s", listing.DisplayName(), siteURL),
		LogoURL:     s.logoURL(ctx, listing),
	}, nil
}

// MiniSiteURL is the public address of a listing's mini-site.
func MiniSiteURL(frontendURL string, listingID uuid.UUID) string {
	return fmt.Sprintf("%s/sites/%s", strings.TrimRight(frontendURL, "/"), listingID)
}
