package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"locali/internal/domain"
	"locali/internal/handler"
	"locali/internal/middleware"
	"locali/internal/service"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Listing   *handler.ListingHandler
	Product   *handler.ProductHandler
	Directory *handler.DirectoryHandler
	Category  *handler.CategoryHandler
	Review    *handler.ReviewHandler
	Health    *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, h Handlers, corsOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public directory
	v1.GET("/directory", h.Directory.List)
	v1.GET("/directory/:id", h.Directory.GetByID)
	v1.GET("/sites/:id", h.Directory.MiniSite)
	v1.GET("/categories", h.Category.List)

	// Creator studio - require valid JWT
	studio := v1.Group("/studio")
	studio.Use(middleware.AuthMiddleware(authSvc))

	listings := studio.Group("/listings")
	listings.POST("", h.Listing.Create)
	listings.GET("", h.Listing.List)
	listings.GET("/:id", h.Listing.GetByID)
	listings.PUT("/:id", h.Listing.Update)
	listings.DELETE("/:id", h.Listing.Delete)
	listings.GET("/:id/progress", h.Listing.Progress)
	listings.GET("/:id/features/:feature", h.Listing.FeatureAccess)
	listings.POST("/:id/logo", h.Listing.UploadLogo)
	listings.GET("/:id/share-kit", h.Listing.ShareKit)
	listings.POST("/:id/products", h.Product.Create)
	listings.GET("/:id/products", h.Product.List)
	listings.DELETE("/:id/products/:productId", h.Product.Delete)

	// Admin moderation
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authSvc))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/review", h.Review.ListQueue)
	admin.GET("/review/export", h.Review.ExportQueue)
	admin.POST("/review/retriage", h.Review.RetriageBatch)
	admin.POST("/listings/:id/approve", h.Review.Approve)
	admin.POST("/listings/:id/reject", h.Review.Reject)
	admin.POST("/listings/:id/retriage", h.Review.Retriage)
	admin.PUT("/listings/:id/tier", h.Review.SetTier)
	admin.POST("/categories", h.Category.Create)

	return r
}
