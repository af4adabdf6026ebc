package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"locali/internal/domain"
	"locali/internal/handler"
	"locali/internal/port"
	"locali/internal/router"
	"locali/internal/service"
	"locali/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

type fixture struct {
	engine    *gin.Engine
	auth      *mocks.MockAuthService
	directory *mocks.MockDirectoryService
	review    *mocks.MockReviewService
	listing   *mocks.MockListingService
}

func newFixture() *fixture {
	f := &fixture{
		auth:      new(mocks.MockAuthService),
		directory: new(mocks.MockDirectoryService),
		review:    new(mocks.MockReviewService),
		listing:   new(mocks.MockListingService),
	}
	f.engine = router.Setup(f.auth, router.Handlers{
		Listing:   handler.NewListingHandler(f.listing),
		Product:   handler.NewProductHandler(new(mocks.MockProductService)),
		Directory: handler.NewDirectoryHandler(f.directory),
		Category:  handler.NewCategoryHandler(new(mocks.MockCategoryService)),
		Review:    handler.NewReviewHandler(f.review),
		Health:    handler.NewHealthHandler(okPinger{}),
	}, []string{"http://localhost:3000"})
	return f
}

func (f *fixture) token(name string, userID uuid.UUID, role domain.UserRole) {
	f.auth.On("ValidateToken", name).Return(&service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
		Role:             role,
	}, nil)
}

func (f *fixture) do(method, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, http.NoBody)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	f.engine.ServeHTTP(w, req)
	return w
}

func TestRouter_PublicDirectoryNeedsNoToken(t *testing.T) {
	f := newFixture()
	f.directory.On("List", mock.Anything, port.DirectoryFilter{}, 0, 20).Return([]service.DirectoryEntry{}, 0, nil)

	w := f.do(http.MethodGet, "/api/v1/directory", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_HealthChecks(t *testing.T) {
	f := newFixture()
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/readyz", "").Code)
}

func TestRouter_StudioRequiresToken(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/api/v1/studio/listings", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_StudioWithToken(t *testing.T) {
	f := newFixture()
	userID := uuid.New()
	f.token("creator-token", userID, domain.RoleCreator)
	f.listing.On("ListByOwner", mock.Anything, userID, 0, 20).Return([]service.ListingDetail{}, 0, nil)

	w := f.do(http.MethodGet, "/api/v1/studio/listings", "creator-token")

	assert.Equal(t, http.StatusOK, w.Code)
	f.listing.AssertExpectations(t)
}

func TestRouter_AdminRequiresAdminRole(t *testing.T) {
	f := newFixture()
	f.token("creator-token", uuid.New(), domain.RoleCreator)
	f.token("admin-token", uuid.New(), domain.RoleAdmin)
	f.review.On("ListQueue", mock.Anything, 0, 20).Return([]domain.Listing{}, 0, nil)

	assert.Equal(t, http.StatusForbidden, f.do(http.MethodGet, "/api/v1/admin/review", "creator-token").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/v1/admin/review", "admin-token").Code)
}
