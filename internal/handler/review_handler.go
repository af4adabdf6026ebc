package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"locali/internal/domain"
	"locali/internal/export"
	"locali/internal/service"
)

// ReviewHandler handles the admin moderation endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ListQueue handles GET /api/v1/admin/review
// @Summary List the review queue
// @Description Flagged listings awaiting a manual decision, oldest first
// @Tags admin
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Listing,meta=PagMeta} "Review queue"
// @Failure 403 {object} ErrorResponseBody "Admin only"
// @Security BearerAuth
// @Router /admin/review [get]
func (h *ReviewHandler) ListQueue(c *gin.Context) {
	offset, limit := parsePagination(c)
	listings, total, err := h.reviewService.ListQueue(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, listings, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ExportQueue handles GET /api/v1/admin/review/export
// @Summary Export the review queue
// @Description Download the review queue as XLSX (default) or CSV
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce text/csv
// @Param format query string false "Export format" Enums(xlsx, csv) default(xlsx)
// @Success 200 {file} file "Review queue export"
// @Failure 400 {object} ErrorResponseBody "Unsupported format"
// @Security BearerAuth
// @Router /admin/review/export [get]
func (h *ReviewHandler) ExportQueue(c *gin.Context) {
	format, ok := export.ParseFormat(c.Query("format"))
	if !ok {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "unsupported export format; allowed: xlsx, csv")
		return
	}

	var buf bytes.Buffer
	if err := h.reviewService.ExportQueue(c.Request.Context(), format, &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("review-queue", format, time.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (h *ReviewHandler) decide(c *gin.Context, approve bool) {
	reviewerID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	listingID, ok := parseIDParam(c, "id", "listing")
	if !ok {
		return
	}

	var req ReviewDecisionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
			return
		}
	}

	var (
		listing *domain.Listing
		err     error
	)
	if approve {
		listing, err = h.reviewService.Approve(c.Request.Context(), listingID, reviewerID, req.Notes)
	} else {
		listing, err = h.reviewService.Reject(c.Request.Context(), listingID, reviewerID, req.Notes)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, listing)
}

// Approve handles POST /api/v1/admin/listings/:id/approve
// @Summary Approve a flagged listing
// @Description Approve a listing in the review queue, making it public. The creator is notified by email.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Listing ID (UUID)"
// @Param request body ReviewDecisionRequest false "Reviewer notes"
// @Success 200 {object} Response{data=domain.Listing} "Listing approved"
// @Failure 404 {object} ErrorResponseBody "Listing not found"
// @Failure 409 {object} ErrorResponseBody "Listing is not awaiting review"
// @Security BearerAuth
// @Router /admin/listings/{id}/approve [post]
func (h *ReviewHandler) Approve(c *gin.Context) {
	h.decide(c, true)
}

// Reject handles POST /api/v1/admin/listings/:id/reject
// @Summary Reject a flagged listing
// @Description Reject a listing in the review queue; it stays hidden. The creator is notified by email.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Listing ID (UUID)"
// @Param request body ReviewDecisionRequest false "Reviewer notes"
// @Success 200 {object} Response{data=domain.Listing} "Listing rejected"
// @Failure 404 {object} ErrorResponseBody "Listing not found"
// @Failure 409 {object} ErrorResponseBody "Listing is not awaiting review"
// @Security BearerAuth
// @Router /admin/listings/{id}/reject [post]
func (h *ReviewHandler) Reject(c *gin.Context) {
	h.decide(c, false)
}

// Retriage handles POST /api/v1/admin/listings/:id/retriage
// @Summary Re-run triage on a listing
// @Tags admin
// @Produce json
// @Param id path string true "Listing ID (UUID)"
// @Success 200 {object} Response{data=domain.Listing} "Listing re-triaged"
// @Failure 404 {object} ErrorResponseBody "Listing not found"
// @Security BearerAuth
// @Router /admin/listings/{id}/retriage [post]
func (h *ReviewHandler) Retriage(c *gin.Context) {
	listingID, ok := parseIDParam(c, "id", "listing")
	if !ok {
		return
	}

	listing, err := h.reviewService.Retriage(c.Request.Context(), listingID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, listing)
}

// RetriageBatch handles POST /api/v1/admin/review/retriage
// @Summary Re-run triage on many listings
// @Description Re-triage up to 100 listings. Each listing reports its own outcome; one failure does not stop the rest.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body RetriageBatchRequest true "Listing IDs"
// @Success 200 {object} Response{data=[]service.RetriageResult} "Per-listing results"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Security BearerAuth
// @Router /admin/review/retriage [post]
func (h *ReviewHandler) RetriageBatch(c *gin.Context) {
	var req RetriageBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "listing_ids must contain between 1 and 100 IDs")
		return
	}

	ids := make([]uuid.UUID, 0, len(req.ListingIDs))
	for _, raw := range req.ListingIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid listing ID: "+raw)
			return
		}
		ids = append(ids, id)
	}

	RespondOK(c, h.reviewService.RetriageBatch(c.Request.Context(), ids))
}

// SetTier handles PUT /api/v1/admin/listings/:id/tier
// @Summary Set a listing's tier
// @Description Stand-in for the payment provider's subscription webhook
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Listing ID (UUID)"
// @Param request body SetTierRequest true "Tier"
// @Success 200 {object} Response{data=domain.Listing} "Tier updated"
// @Failure 400 {object} ErrorResponseBody "Invalid tier"
// @Failure 404 {object} ErrorResponseBody "Listing not found"
// @Security BearerAuth
// @Router /admin/listings/{id}/tier [put]
func (h *ReviewHandler) SetTier(c *gin.Context) {
	listingID, ok := parseIDParam(c, "id", "listing")
	if !ok {
		return
	}

	var req SetTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "tier is required")
		return
	}

	listing, err := h.reviewService.SetTier(c.Request.Context(), listingID, domain.ListingTier(req.Tier))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, listing)
}
