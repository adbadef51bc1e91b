// Package server assembles repositories, services and handlers into the
// HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"talentnest/internal/config"
	"talentnest/internal/database"
	"talentnest/internal/domain/admin"
	"talentnest/internal/domain/auth"
	"talentnest/internal/domain/booking"
	"talentnest/internal/domain/catalog"
	"talentnest/internal/domain/contact"
	"talentnest/internal/domain/review"
	"talentnest/internal/domain/upload"
	"talentnest/internal/domain/verification"
	"talentnest/internal/events"
	"talentnest/internal/logger"
	"talentnest/internal/metrics"
	"talentnest/internal/middleware"
	jwtsvc "talentnest/internal/pkg/jwt"
	"talentnest/internal/pkg/response"
)

// Models lists every persisted entity.
func Models() []any {
	models := []any{
		&auth.User{},
		&catalog.Listing{},
		&contact.ContactEvent{},
		&verification.Request{},
		&upload.Upload{},
	}
	models = append(models, booking.Models()...)
	return append(models, review.Models()...)
}

// Migrate creates the schema for every entity.
func Migrate(db *gorm.DB) error {
	return database.Migrate(db, Models()...)
}

// Services exposes the core services for the CLI and scheduler.
type Services struct {
	Auth         *auth.Service
	Catalog      *catalog.Service
	Booking      *booking.Service
	Contact      *contact.Service
	Verification *verification.Service
	Admin        *admin.Service
	Review       *review.Service
	Upload       *upload.Service
}

type Server struct {
	cfg      *config.Config
	db       *gorm.DB
	engine   *gin.Engine
	Services *Services
}

// NewServices wires repositories into services.
func NewServices(cfg *config.Config, db *gorm.DB, publisher events.Publisher) *Services {
	if publisher == nil {
		publisher = events.Noop{}
	}

	userRepo := auth.NewUserRepository(db)
	listingRepo := catalog.NewListingRepository(db)
	bookingRepo := booking.NewBookingRepository(db)
	contactEvents := contact.NewEventRepository(db)
	verificationRepo := verification.NewRequestRepository(db)
	statsRepo := admin.NewStatsRepository(db)

	j := jwtsvc.New(cfg.JWT.Secret, cfg.JWT.AccessDuration())

	authService := auth.NewService(userRepo, j)
	catalogService := catalog.NewService(listingRepo, userRepo)
	contactService := contact.NewService(userRepo, contactEvents, publisher, contact.NewLinkBuilder(cfg.Contact.WhatsAppHost))
	bookingService := booking.NewService(bookingRepo, catalogService, userRepo, contactService, publisher)
	verificationService := verification.NewService(verificationRepo, userRepo, publisher)
	adminService := admin.NewService(statsRepo, userRepo)
	reviewService := review.NewService(review.NewRepository(db), bookingRepo, publisher)
	uploadService := upload.NewService(upload.NewFileRepository(db), cfg.Storage.Dir, cfg.Storage.PublicBase)

	return &Services{
		Auth:         authService,
		Catalog:      catalogService,
		Booking:      bookingService,
		Contact:      contactService,
		Verification: verificationService,
		Admin:        adminService,
		Review:       reviewService,
		Upload:       uploadService,
	}
}

// New builds the gin engine. identity resolves bearer tokens; extra
// resolvers (OIDC) are tried after the built-in JWT one.
func New(cfg *config.Config, db *gorm.DB, publisher events.Publisher, extra ...middleware.IdentityResolver) *Server {
	services := NewServices(cfg, db, publisher)

	resolvers := append([]middleware.IdentityResolver{
		middleware.JWTResolver(jwtsvc.New(cfg.JWT.Secret, cfg.JWT.AccessDuration())),
	}, extra...)
	identity := middleware.Chain(resolvers...)

	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(),
		middleware.CORS(cfg.HTTP.CORSAllowedOrigins),
		middleware.Metrics(),
	)

	r.GET("/healthz", func(c *gin.Context) {
		if err := database.Ping(db); err != nil {
			response.Error(c, http.StatusServiceUnavailable, "DATABASE_UNAVAILABLE", "database is unreachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.Static(cfg.Storage.PublicBase, cfg.Storage.Dir)

	authHandler := auth.NewHandler(services.Auth)
	catalogHandler := catalog.NewHandler(services.Catalog)
	bookingHandler := booking.NewHandler(services.Booking)
	contactHandler := contact.NewHandler(services.Contact)
	verificationHandler := verification.NewHandler(services.Verification)
	adminHandler := admin.NewHandler(services.Admin)
	reviewHandler := review.NewHandler(services.Review)
	uploadHandler := upload.NewHandler(services.Upload)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		public := v1.Group("")
		public.Use(middleware.OptionalAuth(identity))
		{
			catalogHandler.RegisterPublicRoutes(public)
			reviewHandler.RegisterPublicRoutes(public)
		}

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(identity))
		{
			authHandler.RegisterProtectedRoutes(protected)
			catalogHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterProtectedRoutes(protected)
			contactHandler.RegisterProtectedRoutes(protected)
			verificationHandler.RegisterProtectedRoutes(protected)
			reviewHandler.RegisterProtectedRoutes(protected)
			uploadHandler.RegisterProtectedRoutes(protected)

			adminGroup := protected.Group("/admin")
			adminGroup.Use(middleware.AdminOnly())
			{
				adminHandler.RegisterRoutes(adminGroup)
				catalogHandler.RegisterAdminRoutes(adminGroup)
				verificationHandler.RegisterAdminRoutes(adminGroup)
			}
		}
	}

	return &Server{cfg: cfg, db: db, engine: r, Services: services}
}

func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTP.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	logger.Info("shutting down http server")
	return srv.Shutdown(shutdownCtx)
}
