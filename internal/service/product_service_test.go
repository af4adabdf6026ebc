package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"locali/internal/domain"
	"locali/internal/lifecycle"
	"locali/internal/service"
	"locali/mocks"
)

func newProductService() (service.ProductService, *mocks.MockListingRepo, *mocks.MockProductRepo) {
	listingRepo := new(mocks.MockListingRepo)
	productRepo := new(mocks.MockProductRepo)
	svc := service.NewProductService(listingRepo, productRepo, lifecycle.NewCalculator(lifecycle.CoreRules()))
	return svc, listingRepo, productRepo
}

func TestProductService_Create_FirstProductReachesOptimised(t *testing.T) {
	svc, listingRepo, productRepo := newProductService()
	owner := uuid.New()
	listing := ownedListing(owner)
	listing.Description = strPtr("Sourdough and pastries baked fresh daily")
	listing.ContactEmail = strPtr("hello@bakery.example")

	listingRepo.On("GetByID", mock.Anything, listing.ID).Return(listing, nil)
	productRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return p.ListingID == listing.ID && p.Name == "Sourdough Loaf" && p.Currency == "AUD" && p.IsActive
	})).Return(nil)
	productRepo.On("CountByListing", mock.Anything, listing.ID).Return(1, nil)

	res, err := svc.Create(context.Background(), &service.CreateProductInput{
		ListingID:  listing.ID,
		UserID:     owner,
		Role:       domain.RoleCreator,
		Name:       " Sourdough Loaf ",
		PriceCents: 900,
	})

	require.NoError(t, err)
	assert.Equal(t, "Sourdough Loaf", res.Product.Name)
	assert.Equal(t, domain.StageOptimised, res.Progress.Stage)
	assert.Equal(t, "Upgrade to Pro", res.Progress.NextAction.Label)
}

func TestProductService_Create_BlankNameRejected(t *testing.T) {
	svc, listingRepo, productRepo := newProductService()
	owner := uuid.New()

	_, err := svc.Create(context.Background(), &service.CreateProductInput{
		ListingID: uuid.New(), UserID: owner, Role: domain.RoleCreator, Name: "  \t ",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidProduct)
	listingRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductService_Create_Forbidden(t *testing.T) {
	svc, listingRepo, productRepo := newProductService()
	listing := ownedListing(uuid.New())
	listingRepo.On("GetByID", mock.Anything, listing.ID).Return(listing, nil)

	_, err := svc.Create(context.Background(), &service.CreateProductInput{
		ListingID: listing.ID, UserID: uuid.New(), Role: domain.RoleCreator, Name: "x",
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductService_Delete_LastProductDropsStage(t *testing.T) {
	svc, listingRepo, productRepo := newProductService()
	owner := uuid.New()
	listing := ownedListing(owner)
	listing.Description = strPtr("Sourdough and pastries baked fresh daily")
	listing.Phone = strPtr("03 9000 0000")
	productID := uuid.New()

	listingRepo.On("GetByID", mock.Anything, listing.ID).Return(listing, nil)
	productRepo.On("Delete", mock.Anything, listing.ID, productID).Return(nil)
	productRepo.On("CountByListing", mock.Anything, listing.ID).Return(0, nil)

	res, err := svc.Delete(context.Background(), listing.ID, productID, owner, domain.RoleCreator)

	require.NoError(t, err)
	assert.Nil(t, res.Product)
	assert.Equal(t, domain.StageLive, res.Progress.Stage)
	assert.Equal(t, []string{"At least one Product"}, res.Progress.Missing)
}

func TestProductService_Delete_NotFound(t *testing.T) {
	svc, listingRepo, productRepo := newProductService()
	owner := uuid.New()
	listing := ownedListing(owner)
	productID := uuid.New()

	listingRepo.On("GetByID", mock.Anything, listing.ID).Return(listing, nil)
	productRepo.On("Delete", mock.Anything, listing.ID, productID).Return(domain.ErrProductNotFound)

	_, err := svc.Delete(context.Background(), listing.ID, productID, owner, domain.RoleCreator)

	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
