package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"locali/internal/service"
)

// ProductHandler handles storefront product endpoints under a listing.
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create handles POST /api/v1/studio/listings/:id/products
// @Summary Add a product
// @Description Add a product to a listing; returns the listing's recomputed progress
// @Tags studio
// @Accept json
// @Produce json
// @Param id path string true "Listing ID (UUID)"
// @Param request body CreateProductRequest true "Product"
// @Success 201 {object} Response{data=service.ProductMutation} "Product created"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 403 {object} ErrorResponseBody "Not the owner"
// @Failure 404 {object} ErrorResponseBody "Listing not found"
// @Security BearerAuth
// @Router /studio/listings/{id}/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	listingID, ok := parseIDParam(c, "id", "listing")
	if !ok {
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name is required and price_cents must not be negative")
		return
	}

	res, err := h.productService.Create(c.Request.Context(), &service.CreateProductInput{
		ListingID:   listingID,
		UserID:      userID,
		Role:        role,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Currency:    req.Currency,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, res)
}

// List handles GET /api/v1/studio/listings/:id/products
// @Summary List products
// @Description List every product of a listing, including inactive ones
// @Tags studio
// @Produce json
// @Param id path string true "Listing ID (UUID)"
// @Success 200 {object} Response{data=[]domain.Product} "Products"
// @Failure 403 {object} ErrorResponseBody "Not the owner"
// @Failure 404 {object} ErrorResponseBody "Listing not found"
// @Security BearerAuth
// @Router /studio/listings/{id}/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	listingID, ok := parseIDParam(c, "id", "listing")
	if !ok {
		return
	}

	products, err := h.productService.List(c.Request.Context(), listingID, userID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, products)
}

// Delete handles DELETE /api/v1/studio/listings/:id/products/:productId
// @Summary Remove a product
// @Description Remove a product; returns the listing's recomputed progress
// @Tags studio
// @Produce json
// @Param id path string true "Listing ID (UUID)"
// @Param productId path string true "Product ID (UUID)"
// @Success 200 {object} Response{data=service.ProductMutation} "Product removed"
// @Failure 404 {object} ErrorResponseBody "Listing or product not found"
// @Security BearerAuth
// @Router /studio/listings/{id}/products/{productId} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	listingID, ok := parseIDParam(c, "id", "listing")
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId", "product")
	if !ok {
		return
	}

	res, err := h.productService.Delete(c.Request.Context(), listingID, productID, userID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, res)
}
