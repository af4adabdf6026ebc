package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"locali/internal/service"
)

// ListingHandler handles the creator studio listing endpoints.
type ListingHandler struct {
	listingService service.ListingService
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(listingService service.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

// parseCategoryID maps the request's category_id to the service input: nil
// when omitted, uuid.Nil when blank (clears the category).
func parseCategoryID(raw *string) (*uuid.UUID, bool) {
	if raw == nil {
		return nil, true
	}
	if strings.TrimSpace(*raw) == "" {
		id := uuid.Nil
		return &id, true
	}
	id, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, false
	}
	return &id, true
}

// Create handles POST /api/v1/studio/listings
// @Summary Create a listing
// @Description Create a listing owned by the caller. Content is screened before it becomes publicly visible.
// @Tags studio
// @Accept json
// @Produce json
// @Param request body CreateListingRequest true "Listing fields"
// @Success 201 {object} Response{data=service.ListingDetail} "Listing created"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /studio/listings [post]
func (h *ListingHandler) Create(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	categoryID, ok := parseCategoryID(req.CategoryID)
	if !ok {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid category ID")
		return
	}

	detail, err := h.listingService.Create(c.Request.Context(), &service.CreateListingInput{
		OwnerID:           userID,
		Name:              req.Name,
		CategoryID:        categoryID,
		Location:          req.Location,
		Description:       req.Description,
		ContactEmail:      req.ContactEmail,
		Phone:             req.Phone,
		CategoryConfirmed: req.CategoryConfirmed,
		PolicyAccepted:    req.PolicyAccepted,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, detail)
}

// List handles GET /api/v1/studio/listings
// @Summary List my listings
// @Description List the caller's listings with lifecycle progress
// @Tags studio
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]service.ListingDetail,meta=PagMeta} "Listings"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /studio/listings [get]
func (h *ListingHandler) List(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)
	details, total, err := h.listingService.ListByOwner(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, details, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/studio/listings/:id
// @Summary Get a listing
// @Description Get one of the caller's listings with lifecycle progress
// @Tags studio
// @Produce json
// @Param id path string true "Listing ID (UUID)"
// @Success 200 {object} Response{data=service.ListingDetail} "Listing"
// @Failure 403 {object} ErrorResponseBody "Not the owner"
// @Failure 404 {object} ErrorResponseBody "Listing not found"
// @Security BearerAuth
// @Router /studio/listings/{id} [get]
func (h *ListingHandler) GetByID(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	listingID, ok := parseIDParam(c, "id", "listing")
	if !ok {
		return
	}

	detail, err := h.listingService.GetByID(c.Request.Context(), listingID, userID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

// Update handles PUT /api/v1/studio/listings/:id
// @Summary Update a listing
// @Description Partially update a listing. Changing the name, description or category sends it back through screening.
// @Tags studio
// @Accept json
// @Produce json
// @Param id path string true "Listing ID (UUID)"
// @Param request body UpdateListingRequest true "Fields to change"
// @Success 200 {object} Response{data=service.ListingDetail} "Listing updated"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 403 {object} ErrorResponseBody "Not the owner"
// @Failure 404 {object} ErrorResponseBody "Listing not found"
// @Security BearerAuth
// @Router /studio/listings/{id} [put]
func (h *ListingHandler) Update(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	listingID, ok := parseIDParam(c, "id", "listing")
	if !ok {
		return
	}

	var req UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	categoryID, ok := parseCategoryID(req.CategoryID)
	if !ok {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid category ID")
		return
	}

	detail, err := h.listingService.Update(c.Request.Context(), &service.UpdateListingInput{
		ListingID:         listingID,
		UserID:            userID,
		Role:              role,
		Name:              req.Name,
		CategoryID:        categoryID,
		Location:          req.Location,
		Description:       req.Description,
		ContactEmail:      req.ContactEmail,
		Phone:             req.Phone,
		CategoryConfirmed: req.CategoryConfirmed,
		PolicyAccepted:    req.PolicyAccepted,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

// Delete handles DELETE /api/v1/studio/listings/:id
// @Summary Delete a listing
// @Description Delete a listing together with its products and logo
// @Tags studio
// @Produce json
// @Param id path string true "Listing ID (UUID)"
// @Success 200 {object} Response "Listing deleted"
// @Failure 403 {object} ErrorResponseBody "Not the owner"
// @Failure 404 {object} ErrorResponseBody "Listing not found"
// @Security BearerAuth
// @Router /studio/listings/{id} [delete]
func (h *ListingHandler) Delete(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	listingID, ok := parseIDParam(c, "id", "listing")
	if !ok {
		return
	}

	if err := h.listingService.Delete(c.Request.Context(), listingID, userID, role); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "listing deleted"})
}

// Progress handles GET /api/v1/studio/listings/:id/progress
// @Summary Get lifecycle progress
// @Description Current stage, the requirements blocking the next stage, and the recommended next action
// @Tags studio
// @Produce json
// @Param id path string true "Listing ID (UUID)"
// @Success 200 {object} Response{data=lifecycle.Progress} "Progress"
// @Failure 404 {object} ErrorResponseBody "Listing not found"
// @Security BearerAuth
// @Router /studio/listings/{id}/progress [get]
func (h *ListingHandler) Progress(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	listingID, ok := parseIDParam(c, "id", "listing")
	if !ok {
		return
	}

	progress, err := h.listingService.Progress(c.Request.Context(), listingID, userID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, progress)
}

// FeatureAccess handles GET /api/v1/studio/listings/:id/features/:feature
// @Summary Check a feature gate
// @Description Whether a stage-gated feature is unlocked for the listing
// @Tags studio
// @Produce json
// @Param id path string true "Listing ID (UUID)"
// @Param feature path string true "Feature key" Enums(featured_placement, share_kit, mini_site)
// @Success 200 {object} Response{data=service.FeatureAccess} "Feature access"
// @Failure 400 {object} ErrorResponseBody "Unknown feature"
// @Failure 404 {object} ErrorResponseBody "Listing not found"
// @Security BearerAuth
// @Router /studio/listings/{id}/features/{feature} [get]
func (h *ListingHandler) FeatureAccess(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	listingID, ok := parseIDParam(c, "id", "listing")
	if !ok {
		return
	}

	access, err := h.listingService.FeatureAccess(c.Request.Context(), listingID, userID, role, c.Param("feature"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, access)
}

// UploadLogo handles POST /api/v1/studio/listings/:id/logo
// @Summary Upload a listing logo
// @Description Upload a JPG, PNG or WEBP logo, replacing any existing one
// @Tags studio
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Listing ID (UUID)"
// @Param file formData file true "Logo image"
// @Success 200 {object} Response{data=service.ListingDetail} "Logo uploaded"
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "Upload failed"
// @Security BearerAuth
// @Router /studio/listings/{id}/logo [post]
func (h *ListingHandler) UploadLogo(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	listingID, ok := parseIDParam(c, "id", "listing")
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	detail, err := h.listingService.UploadLogo(c.Request.Context(), &service.UploadLogoInput{
		ListingID:   listingID,
		UserID:      userID,
		Role:        role,
		Body:        file,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

// ShareKit handles GET /api/v1/studio/listings/:id/share-kit
// @Summary Get the share kit
// @Description Mini-site link and share text; requires the share_kit feature
// @Tags studio
// @Produce json
// @Param id path string true "Listing ID (UUID)"
// @Success 200 {object} Response{data=service.ShareKit} "Share kit"
// @Failure 403 {object} ErrorResponseBody "Feature locked"
// @Failure 404 {object} ErrorResponseBody "Listing not found"
// @Security BearerAuth
// @Router /studio/listings/{id}/share-kit [get]
func (h *ListingHandler) ShareKit(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	listingID, ok := parseIDParam(c, "id", "listing")
	if !ok {
		return
	}

	kit, err := h.listingService.ShareKit(c.Request.Context(), listingID, userID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, kit)
}
