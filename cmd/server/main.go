package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"locali/docs"
	"locali/internal/config"
	"locali/internal/email/noop"
	"locali/internal/email/ses"
	"locali/internal/handler"
	"locali/internal/lifecycle"
	"locali/internal/port"
	"locali/internal/repository/postgres"
	"locali/internal/router"
	"locali/internal/service"
	s3storage "locali/internal/storage/s3"
	"locali/internal/triage"

	// Register remote classifier providers.
	_ "locali/internal/triage/claude"
	_ "locali/internal/triage/gemini"
	_ "locali/internal/triage/openai"
)

// @title Locali API
// @version 1.0
// @description Local business directory: creator studio, public directory and admin moderation.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	listingRepo := postgres.NewListingRepo(db)
	productRepo := postgres.NewProductRepo(db)
	categoryRepo := postgres.NewCategoryRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email
	emailSender, err := newEmailSender(&cfg.Email)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	// Initialize triage
	classifier, err := triage.NewRemoteClassifier(&cfg.Triage)
	if err != nil {
		return fmt.Errorf("failed to initialize content classifier: %w", err)
	}
	mode := triage.ModeLive
	if cfg.Triage.Bypass() {
		mode = triage.ModeBypass
		log.Printf("Triage running in bypass mode: all listings are treated as safe")
	} else if classifier == nil {
		log.Printf("Triage classifier not configured: only the keyword filter is applied")
	}
	analyzer := triage.NewAnalyzer(mode, classifier)

	// Initialize lifecycle rules
	rules, err := lifecycle.RulesForVersion(cfg.Lifecycle.RuleSet)
	if err != nil {
		return fmt.Errorf("failed to load lifecycle rules: %w", err)
	}
	calc := lifecycle.NewCalculator(rules)

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWT)
	triageSvc := service.NewTriageService(analyzer, listingRepo, categoryRepo, emailSender, cfg.Email.ReviewerAddress)
	listingSvc := service.NewListingService(listingRepo, productRepo, categoryRepo, s3Client, triageSvc, calc, &cfg.S3, cfg.Email.FrontendURL)
	productSvc := service.NewProductService(listingRepo, productRepo, calc)
	directorySvc := service.NewDirectoryService(listingRepo, productRepo, s3Client, calc, &cfg.S3)
	categorySvc := service.NewCategoryService(categoryRepo)
	reviewSvc := service.NewReviewService(listingRepo, triageSvc, emailSender, cfg.Queue.Concurrency)

	// Initialize handlers
	handlers := router.Handlers{
		Listing:   handler.NewListingHandler(listingSvc),
		Product:   handler.NewProductHandler(productSvc),
		Directory: handler.NewDirectoryHandler(directorySvc),
		Category:  handler.NewCategoryHandler(categorySvc),
		Review:    handler.NewReviewHandler(reviewSvc),
		Health:    handler.NewHealthHandler(db),
	}

	// Setup router
	docs.SwaggerInfo.BasePath = "/api/v1"
	r := router.Setup(authSvc, handlers, cfg.CORS.AllowedOrigins)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start the re-triage queue worker
	worker := service.NewTriageQueueWorker(listingRepo, triageSvc, service.TriageQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		Concurrency:  cfg.Queue.Concurrency,
		Timeout:      time.Duration(cfg.Queue.TimeoutSecs) * time.Second,
	})
	var workerWG sync.WaitGroup
	workerWG.Add(1)
	go func() {
		defer workerWG.Done()
		worker.Start(ctx)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		stop()
		workerWG.Wait()
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("Shutdown signal received, draining connections...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	workerWG.Wait()
	log.Printf("Server stopped")
	return nil
}

func newEmailSender(cfg *config.EmailConfig) (port.EmailSender, error) {
	switch strings.ToLower(cfg.Provider) {
	case "ses":
		return ses.NewSESSender(cfg.Region, cfg.FromAddress, cfg.FromName, cfg.FrontendURL)
	case "", "noop":
		return noop.NewNoopSender(cfg.FrontendURL), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
