package handler_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"locali/internal/domain"
	"locali/internal/handler"
	"locali/internal/lifecycle"
	"locali/internal/service"
	"locali/mocks"
)

func TestListingHandler_Create(t *testing.T) {
	svc := new(mocks.MockListingService)
	h := handler.NewListingHandler(svc)
	userID := uuid.New()
	catID := uuid.New()

	svc.On("Create", mock.Anything, mock.MatchedBy(func(in *service.CreateListingInput) bool {
		return in.OwnerID == userID && *in.Name == "Hill Street Bakery" &&
			in.CategoryID != nil && *in.CategoryID == catID && in.PolicyAccepted
	})).Return(&service.ListingDetail{
		Listing:  domain.Listing{ID: uuid.New(), OwnerID: userID},
		Progress: lifecycle.Progress{Stage: domain.StageLive},
	}, nil)

	c, w := newTestContext(http.MethodPost, "/api/v1/studio/listings", gin.H{
		"name":            "Hill Street Bakery",
		"category_id":     catID.String(),
		"policy_accepted": true,
	})
	setAuthContext(c, userID, "creator")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
	svc.AssertExpectations(t)
}

func TestListingHandler_Create_InvalidCategoryID(t *testing.T) {
	svc := new(mocks.MockListingService)
	h := handler.NewListingHandler(svc)

	c, w := newTestContext(http.MethodPost, "/api/v1/studio/listings", gin.H{"category_id": "food"})
	setAuthContext(c, uuid.New(), "creator")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decodeResponse(t, w).Error.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListingHandler_Create_NoAuthContext(t *testing.T) {
	h := handler.NewListingHandler(new(mocks.MockListingService))

	c, w := newTestContext(http.MethodPost, "/api/v1/studio/listings", gin.H{})
	h.Create(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListingHandler_Update_BlankCategoryClears(t *testing.T) {
	svc := new(mocks.MockListingService)
	h := handler.NewListingHandler(svc)
	userID := uuid.New()
	listingID := uuid.New()

	svc.On("Update", mock.Anything, mock.MatchedBy(func(in *service.UpdateListingInput) bool {
		return in.ListingID == listingID && in.CategoryID != nil && *in.CategoryID == uuid.Nil &&
			in.Name == nil && in.Phone != nil && *in.Phone == ""
	})).Return(&service.ListingDetail{Listing: domain.Listing{ID: listingID}}, nil)

	c, w := newTestContext(http.MethodPut, "/api/v1/studio/listings/"+listingID.String(), gin.H{
		"category_id": "",
		"phone":       "",
	})
	c.Params = gin.Params{{Key: "id", Value: listingID.String()}}
	setAuthContext(c, userID, "creator")

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestListingHandler_GetByID_Forbidden(t *testing.T) {
	svc := new(mocks.MockListingService)
	h := handler.NewListingHandler(svc)
	userID := uuid.New()
	listingID := uuid.New()

	svc.On("GetByID", mock.Anything, listingID, userID, domain.RoleCreator).Return(nil, domain.ErrForbidden)

	c, w := newTestContext(http.MethodGet, "/api/v1/studio/listings/"+listingID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: listingID.String()}}
	setAuthContext(c, userID, "creator")

	h.GetByID(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListingHandler_GetByID_InvalidID(t *testing.T) {
	h := handler.NewListingHandler(new(mocks.MockListingService))

	c, w := newTestContext(http.MethodGet, "/api/v1/studio/listings/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	setAuthContext(c, uuid.New(), "creator")

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListingHandler_Progress(t *testing.T) {
	svc := new(mocks.MockListingService)
	h := handler.NewListingHandler(svc)
	userID := uuid.New()
	listingID := uuid.New()

	svc.On("Progress", mock.Anything, listingID, userID, domain.RoleCreator).Return(&lifecycle.Progress{
		Stage:      domain.StageLive,
		Missing:    []string{"At least one Product"},
		NextAction: lifecycle.GetNextAction(domain.StageLive),
	}, nil)

	c, w := newTestContext(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: listingID.String()}}
	setAuthContext(c, userID, "creator")

	h.Progress(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"stage":"S1"`)
	assert.Contains(t, w.Body.String(), "At least one Product")
}

func TestListingHandler_FeatureAccess_Unknown(t *testing.T) {
	svc := new(mocks.MockListingService)
	h := handler.NewListingHandler(svc)
	userID := uuid.New()
	listingID := uuid.New()

	svc.On("FeatureAccess", mock.Anything, listingID, userID, domain.RoleCreator, "teleport").
		Return(nil, domain.ErrUnknownFeature)

	c, w := newTestContext(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: listingID.String()}, {Key: "feature", Value: "teleport"}}
	setAuthContext(c, userID, "creator")

	h.FeatureAccess(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNKNOWN_FEATURE", decodeResponse(t, w).Error.Code)
}

func TestListingHandler_ShareKit_Locked(t *testing.T) {
	svc := new(mocks.MockListingService)
	h := handler.NewListingHandler(svc)
	userID := uuid.New()
	listingID := uuid.New()

	svc.On("ShareKit", mock.Anything, listingID, userID, domain.RoleCreator).Return(nil, domain.ErrFeatureLocked)

	c, w := newTestContext(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: listingID.String()}}
	setAuthContext(c, userID, "creator")

	h.ShareKit(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListingHandler_UploadLogo(t *testing.T) {
	svc := new(mocks.MockListingService)
	h := handler.NewListingHandler(svc)
	userID := uuid.New()
	listingID := uuid.New()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="logo.png"`)
	hdr.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, _ = part.Write([]byte("\x89PNG fake"))
	require.NoError(t, mw.Close())

	svc.On("UploadLogo", mock.Anything, mock.MatchedBy(func(in *service.UploadLogoInput) bool {
		return in.ListingID == listingID && in.ContentType == "image/png" && in.FileName == "logo.png" && in.Size == 9
	})).Return(&service.ListingDetail{Listing: domain.Listing{ID: listingID}, LogoURL: "https://cdn/logo.png"}, nil)

	c, w := newTestContext(http.MethodPost, "/", nil)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/studio/listings/"+listingID.String()+"/logo", &body)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())
	c.Params = gin.Params{{Key: "id", Value: listingID.String()}}
	setAuthContext(c, userID, "creator")

	h.UploadLogo(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestListingHandler_UploadLogo_MissingFile(t *testing.T) {
	h := handler.NewListingHandler(new(mocks.MockListingService))

	c, w := newTestContext(http.MethodPost, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}
	setAuthContext(c, uuid.New(), "creator")

	h.UploadLogo(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_FILE", decodeResponse(t, w).Error.Code)
}
