package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"locali/internal/domain"
	"locali/internal/lifecycle"
	"locali/internal/port"
)

// CreateProductInput is the DTO for adding a product to a listing.
type CreateProductInput struct {
	ListingID   uuid.UUID
	UserID      uuid.UUID
	Role        domain.UserRole
	Name        string
	Description string
	PriceCents  int64
	Currency    string
}

// ProductMutation is returned by product writes: the affected product (nil on
// delete) plus the listing's recomputed lifecycle progress.
type ProductMutation struct {
	Product  *domain.Product    `json:"product,omitempty"`
	Progress lifecycle.Progress `json:"progress"`
}

// ProductService defines the storefront product contract.
type ProductService interface {
	Create(ctx context.Context, input *CreateProductInput) (*ProductMutation, error)
	List(ctx context.Context, listingID, userID uuid.UUID, role domain.UserRole) ([]domain.Product, error)
	Delete(ctx context.Context, listingID, productID, userID uuid.UUID, role domain.UserRole) (*ProductMutation, error)
}

type productService struct {
	listingRepo port.ListingRepository
	productRepo port.ProductRepository
	calc        *lifecycle.Calculator
}

// NewProductService creates a new ProductService implementation.
func NewProductService(listingRepo port.ListingRepository, productRepo port.ProductRepository, calc *lifecycle.Calculator) ProductService {
	return &productService{
		listingRepo: listingRepo,
		productRepo: productRepo,
		calc:        calc,
	}
}

func (s *productService) progress(ctx context.Context, listing *domain.Listing) (lifecycle.Progress, error) {
	count, err := s.productRepo.CountByListing(ctx, listing.ID)
	if err != nil {
		return lifecycle.Progress{}, fmt.Errorf("counting products: %w", err)
	}
	return s.calc.CalculateLifecycle(lifecycle.SnapshotOf(listing, count)), nil
}

func (s *productService) Create(ctx context.Context, input *CreateProductInput) (*ProductMutation, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrInvalidProduct
	}

	listing, err := loadOwned(ctx, s.listingRepo, input.ListingID, input.UserID, input.Role)
	if err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = "AUD"
	}
	product := &domain.Product{
		ListingID:   listing.ID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		PriceCents:  input.PriceCents,
		Currency:    currency,
		IsActive:    true,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	p, err := s.progress(ctx, listing)
	if err != nil {
		return nil, err
	}
	return &ProductMutation{Product: product, Progress: p}, nil
}

func (s *productService) List(ctx context.Context, listingID, userID uuid.UUID, role domain.UserRole) ([]domain.Product, error) {
	listing, err := loadOwned(ctx, s.listingRepo, listingID, userID, role)
	if err != nil {
		return nil, err
	}
	return s.productRepo.ListByListing(ctx, listing.ID)
}

func (s *productService) Delete(ctx context.Context, listingID, productID, userID uuid.UUID, role domain.UserRole) (*ProductMutation, error) {
	listing, err := loadOwned(ctx, s.listingRepo, listingID, userID, role)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Delete(ctx, listing.ID, productID); err != nil {
		return nil, err
	}

	p, err := s.progress(ctx, listing)
	if err != nil {
		return nil, err
	}
	return &ProductMutation{Progress: p}, nil
}
