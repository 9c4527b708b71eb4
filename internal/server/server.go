package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"oraya/internal/config"
	custommiddleware "oraya/internal/middleware"
	"oraya/internal/repository"
	"oraya/internal/service"
	"oraya/internal/session"
	"oraya/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env != "production"))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Session manager (encrypted cookie: cart mapping + admin flag)
	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.CookieName, cfg.Server.Env == "production")

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	credentialRepo := repository.NewCredentialRepository(db)

	// Initialize services
	catalogService := service.NewCatalogService(productRepo)
	cartService := service.NewCartService(productRepo, logger)
	orderService := service.NewOrderService(db, productRepo, orderRepo, logger)
	authService := service.NewAuthService(credentialRepo, cfg.Admin.PasswordHash, logger)

	// Initialize handlers
	productHandler := transport.NewProductHandler(catalogService, logger)
	cartHandler := transport.NewCartHandler(cartService, sessions, logger)
	orderHandler := transport.NewOrderHandler(orderService, sessions, logger)
	authHandler := transport.NewAuthHandler(authService, sessions, logger)

	// Admin endpoints require the session admin flag
	adminMiddleware := custommiddleware.RequireAdmin(sessions, logger)

	// Register routes
	productHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router, adminMiddleware)
	authHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
