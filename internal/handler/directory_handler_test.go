package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"locali/internal/domain"
	"locali/internal/handler"
	"locali/internal/port"
	"locali/internal/service"
	"locali/mocks"
)

func TestDirectoryHandler_List_Filters(t *testing.T) {
	svc := new(mocks.MockDirectoryService)
	h := handler.NewDirectoryHandler(svc)
	catID := uuid.New()

	svc.On("List", mock.Anything, port.DirectoryFilter{CategoryID: &catID, Location: "Fitzroy"}, 20, 10).
		Return([]service.DirectoryEntry{{ID: uuid.New(), Name: "Hill Street Bakery", Featured: true}}, 21, nil)

	c, w := newTestContext(http.MethodGet, "/api/v1/directory?category_id="+catID.String()+"&location=%20Fitzroy%20&offset=20&limit=10", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, 21, resp.Meta.Total)
	assert.Equal(t, 10, resp.Meta.Limit)
	svc.AssertExpectations(t)
}

func TestDirectoryHandler_List_BadCategory(t *testing.T) {
	svc := new(mocks.MockDirectoryService)
	h := handler.NewDirectoryHandler(svc)

	c, w := newTestContext(http.MethodGet, "/api/v1/directory?category_id=food", nil)

	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDirectoryHandler_GetByID_Hidden(t *testing.T) {
	svc := new(mocks.MockDirectoryService)
	h := handler.NewDirectoryHandler(svc)
	listingID := uuid.New()

	svc.On("GetPublic", mock.Anything, listingID).Return(nil, domain.ErrListingNotFound)

	c, w := newTestContext(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: listingID.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDirectoryHandler_MiniSite(t *testing.T) {
	svc := new(mocks.MockDirectoryService)
	h := handler.NewDirectoryHandler(svc)
	listingID := uuid.New()

	svc.On("MiniSite", mock.Anything, listingID).Return(&service.MiniSite{
		DirectoryEntry: service.DirectoryEntry{ID: listingID, Name: "Hill Street Bakery", HasMiniSite: true},
		Products:       []domain.Product{{Name: "Sourdough Loaf", PriceCents: 900, Currency: "AUD"}},
	}, nil)

	c, w := newTestContext(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: listingID.String()}}

	h.MiniSite(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sourdough Loaf")
}

func TestCategoryHandler_Create(t *testing.T) {
	svc := new(mocks.MockCategoryService)
	h := handler.NewCategoryHandler(svc)

	svc.On("Create", mock.Anything, "Food & Drink", "").
		Return(&domain.Category{ID: uuid.New(), Name: "Food & Drink", Slug: "food-drink"}, nil)

	c, w := newTestContext(http.MethodPost, "/", gin.H{"name": "Food & Drink"})

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "food-drink")
}

func TestCategoryHandler_Create_Duplicate(t *testing.T) {
	svc := new(mocks.MockCategoryService)
	h := handler.NewCategoryHandler(svc)

	svc.On("Create", mock.Anything, "Retail", "retail").Return(nil, domain.ErrDuplicateCategory)

	c, w := newTestContext(http.MethodPost, "/", gin.H{"name": "Retail", "slug": "retail"})

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCategoryHandler_Create_MissingName(t *testing.T) {
	h := handler.NewCategoryHandler(new(mocks.MockCategoryService))

	c, w := newTestContext(http.MethodPost, "/", gin.H{"slug": "x"})

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
