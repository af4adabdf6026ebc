package handler

// Request and response types shared by the handlers and the swag generated
// OpenAPI document.

// --- Request Types ---

// CreateListingRequest represents the create listing request body. Every
// field is optional; a draft listing may be saved with nothing filled in.
type CreateListingRequest struct {
	Name              *string `json:"name" example:"Hill Street Bakery"`
	CategoryID        *string `json:"category_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Location          *string `json:"location" example:"Fitzroy, VIC"`
	Description       *string `json:"description" example:"Sourdough and pastries baked fresh every morning"`
	ContactEmail      *string `json:"contact_email" example:"hello@hillstreetbakery.com.au"`
	Phone             *string `json:"phone" example:"03 9000 0000"`
	CategoryConfirmed bool    `json:"category_confirmed" example:"true"`
	PolicyAccepted    bool    `json:"policy_accepted" example:"true"`
}

// UpdateListingRequest represents a partial listing update. Omitted fields are
// left unchanged; an empty string clears the field.
type UpdateListingRequest struct {
	Name              *string `json:"name" example:"Hill Street Bakery & Cafe"`
	CategoryID        *string `json:"category_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Location          *string `json:"location" example:"Fitzroy, VIC"`
	Description       *string `json:"description" example:"Now serving coffee alongside our sourdough"`
	ContactEmail      *string `json:"contact_email" example:"hello@hillstreetbakery.com.au"`
	Phone             *string `json:"phone" example:""`
	CategoryConfirmed *bool   `json:"category_confirmed" example:"true"`
	PolicyAccepted    *bool   `json:"policy_accepted" example:"true"`
}

// CreateProductRequest represents the create product request body.
type CreateProductRequest struct {
	Name        string `json:"name" binding:"required" example:"Sourdough Loaf"`
	Description string `json:"description" example:"800g country loaf"`
	PriceCents  int64  `json:"price_cents" binding:"gte=0" example:"900"`
	Currency    string `json:"currency" example:"AUD"`
}

// CreateCategoryRequest represents the create category request body.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required" example:"Food & Drink"`
	Slug string `json:"slug" example:"food-drink"`
}

// ReviewDecisionRequest represents an approve or reject request body.
type ReviewDecisionRequest struct {
	Notes string `json:"notes" example:"Checked the website; legitimate bakery."`
}

// RetriageBatchRequest represents the bulk re-triage request body.
type RetriageBatchRequest struct {
	ListingIDs []string `json:"listing_ids" binding:"required,min=1,max=100" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// SetTierRequest represents the set tier request body.
type SetTierRequest struct {
	Tier string `json:"tier" binding:"required" example:"pro"`
}

// --- Response Wrappers ---

// Response wraps a successful response.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
