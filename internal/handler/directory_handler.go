package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"locali/internal/port"
	"locali/internal/service"
)

// DirectoryHandler serves the public directory and mini-sites. No
// authentication is required.
type DirectoryHandler struct {
	directoryService service.DirectoryService
}

// NewDirectoryHandler creates a new DirectoryHandler.
func NewDirectoryHandler(directoryService service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directoryService: directoryService}
}

// List handles GET /api/v1/directory
// @Summary Browse the directory
// @Description Public listings, optionally filtered by category and location. Featured listings come first within a page.
// @Tags directory
// @Produce json
// @Param category_id query string false "Category ID (UUID)"
// @Param location query string false "Location substring (case-insensitive)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]service.DirectoryEntry,meta=PagMeta} "Directory page"
// @Failure 400 {object} ErrorResponseBody "Invalid category ID"
// @Router /directory [get]
func (h *DirectoryHandler) List(c *gin.Context) {
	filter := port.DirectoryFilter{Location: strings.TrimSpace(c.Query("location"))}
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid category ID")
			return
		}
		filter.CategoryID = &id
	}

	offset, limit := parsePagination(c)
	entries, total, err := h.directoryService.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/directory/:id
// @Summary Get a public listing
// @Tags directory
// @Produce json
// @Param id path string true "Listing ID (UUID)"
// @Success 200 {object} Response{data=service.DirectoryEntry} "Listing"
// @Failure 404 {object} ErrorResponseBody "Listing not found or not public"
// @Router /directory/{id} [get]
func (h *DirectoryHandler) GetByID(c *gin.Context) {
	listingID, ok := parseIDParam(c, "id", "listing")
	if !ok {
		return
	}

	entry, err := h.directoryService.GetPublic(c.Request.Context(), listingID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entry)
}

// MiniSite handles GET /api/v1/sites/:id
// @Summary Get a mini-site
// @Description Storefront page of a Pro listing with its active products
// @Tags directory
// @Produce json
// @Param id path string true "Listing ID (UUID)"
// @Success 200 {object} Response{data=service.MiniSite} "Mini-site"
// @Failure 404 {object} ErrorResponseBody "No mini-site for this listing"
// @Router /sites/{id} [get]
func (h *DirectoryHandler) MiniSite(c *gin.Context) {
	listingID, ok := parseIDParam(c, "id", "listing")
	if !ok {
		return
	}

	site, err := h.directoryService.MiniSite(c.Request.Context(), listingID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, site)
}
