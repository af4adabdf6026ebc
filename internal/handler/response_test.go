package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"locali/internal/domain"
	"locali/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrListingNotFound, http.StatusNotFound, "LISTING_NOT_FOUND"},
		{fmt.Errorf("listingRepo.GetByID: %w", domain.ErrListingNotFound), http.StatusNotFound, "LISTING_NOT_FOUND"},
		{domain.ErrProductNotFound, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
		{domain.ErrCategoryNotFound, http.StatusBadRequest, "CATEGORY_NOT_FOUND"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrDuplicateCategory, http.StatusConflict, "DUPLICATE_CATEGORY"},
		{domain.ErrInvalidTier, http.StatusBadRequest, "INVALID_TIER"},
		{domain.ErrUnknownFeature, http.StatusBadRequest, "UNKNOWN_FEATURE"},
		{domain.ErrFeatureLocked, http.StatusForbidden, "FEATURE_LOCKED"},
		{domain.ErrNotInReviewQueue, http.StatusConflict, "NOT_IN_REVIEW_QUEUE"},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{domain.ErrInvalidProduct, http.StatusBadRequest, "INVALID_PRODUCT"},
		{fmt.Errorf("persisting triage verdict: %w", domain.ErrTriageSuperseded), http.StatusConflict, "TRIAGE_SUPERSEDED"},
		{domain.ErrTriageRateLimited, http.StatusServiceUnavailable, "TRIAGE_RATE_LIMITED"},
		{errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		status, code, _ := handler.MapDomainError(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, code, tc.err.Error())
	}
}
