package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrListingNotFound     = errors.New("listing not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrDuplicateCategory   = errors.New("category slug already exists")
	ErrInvalidCategory     = errors.New("category name is required")
	ErrInvalidTier         = errors.New("invalid listing tier")
	ErrUnknownFeature      = errors.New("unknown feature")
	ErrFeatureLocked       = errors.New("feature not unlocked for this listing")
	ErrNotInReviewQueue    = errors.New("listing is not awaiting review")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrInvalidProduct      = errors.New("product name is required")
	ErrTriageSuperseded    = errors.New("listing content changed during triage")
	ErrTriageRateLimited   = errors.New("content classifier is rate limited")
)
