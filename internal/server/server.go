package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"newsdesk/internal/auth"
	"newsdesk/internal/core"
	"newsdesk/internal/features/admin"
	"newsdesk/internal/features/articles"
	"newsdesk/internal/features/uploads"
	"newsdesk/internal/server/handlers"
)

const readHeaderTimeout = 10 * time.Second

// Option customises server construction
type Option func(*options)

type options struct {
	objectStore uploads.ObjectStore
}

// WithObjectStore replaces the S3 client built from the upload config
func WithObjectStore(store uploads.ObjectStore) Option {
	return func(o *options) {
		o.objectStore = store
	}
}

// Server wires the store, the features and the HTTP router together
type Server struct {
	config   *core.Config
	logger   *core.Logger
	storage  *Storage
	auth     *auth.Service
	registry *core.Registry
	router   chi.Router
	server   *http.Server
}

// New builds the server. Nothing is dialled or migrated until Init.
func New(config *core.Config, logger *core.Logger, opts ...Option) (*Server, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	storage, err := OpenStorage(config.Database, logger)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:   config,
		logger:   logger,
		storage:  storage,
		auth:     auth.NewService(storage.Users(), auth.NewTokenIssuer(config.Auth.JWTSecret, config.Auth.TokenTTL), logger),
		registry: core.NewRegistry(logger),
	}

	if err := s.registerFeatures(o); err != nil {
		_ = storage.Close(context.Background())
		return nil, err
	}

	s.setupRoutes()
	return s, nil
}

func (s *Server) registerFeatures(o options) error {
	articlesFeature := s.storage.ArticlesFeature(s.logger, articles.NewConfig(s.config))
	if err := s.registry.Register(articlesFeature); err != nil {
		return err
	}

	var uploader admin.Uploader
	if s.config.IsFeatureEnabled("uploads") {
		store := o.objectStore
		if store == nil {
			s3Store, err := uploads.NewS3Store(s.config.Features.Uploads, s.logger.ForFeature("uploads"))
			if err != nil {
				return core.NewConfigurationError("invalid object storage settings", err)
			}
			store = s3Store
		}

		uploadsFeature := uploads.NewFeature(s.logger, s.config.Features.Uploads, store)
		if err := s.registry.Register(uploadsFeature); err != nil {
			return err
		}
		uploader = uploadsFeature.GetService()
	}

	return s.registry.Register(admin.NewFeature(s.logger, admin.Deps{
		Articles: articlesFeature.GetArticleService(),
		Accounts: s.auth,
		Cookies:  auth.NewCookies(s.config.Auth),
		Uploader: uploader,
		MaxBytes: s.config.Features.Uploads.MaxBytes,
	}))
}

func (s *Server) setupRoutes() {
	gate := auth.NewGate(s.auth.Tokens(), auth.GateConfig{
		PagePrefixes: auth.DefaultGateConfig().PagePrefixes,
		ProtectAPI:   s.config.Auth.ProtectAPI,
	}, s.logger)
	portalHandler := handlers.NewPortalHandler(s.logger, s.registry, s.storage)
	authHandler := auth.NewHandler(s.auth, auth.NewCookies(s.config.Auth), s.logger)

	mux := chi.NewRouter()

	mux.Use(middleware.Recoverer)
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(middleware.Logger)
	mux.Use(gate.Middleware)

	mux.Get("/", portalHandler.HomeHandler)
	mux.Get("/health", portalHandler.HealthCheckHandler)

	mux.Post("/api/login", authHandler.LoginHandler)
	mux.Post("/api/register", authHandler.RegisterHandler)
	mux.Post("/api/logout", authHandler.LogoutHandler)

	for _, route := range s.registry.Routes() {
		mux.Method(route.Method, route.Path, route.Handler)
	}

	s.router = mux
	s.server = &http.Server{
		Addr:              s.config.Server.Addr(),
		Handler:           mux,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// Router returns the HTTP handler tree
func (s *Server) Router() chi.Router {
	return s.router
}

// Auth returns the authentication service
func (s *Server) Auth() *auth.Service {
	return s.auth
}

// Init prepares storage, initializes every feature and seeds the admin user
func (s *Server) Init(ctx context.Context) error {
	if err := s.storage.Prepare(ctx); err != nil {
		return err
	}

	if err := s.registry.Init(ctx); err != nil {
		return err
	}

	return s.seedAdmin(ctx)
}

func (s *Server) seedAdmin(ctx context.Context) error {
	cfg := s.config.Auth
	if cfg.AdminEmail == "" {
		return nil
	}
	if err := s.auth.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	return nil
}

// Start serves HTTP until the server is shut down
func (s *Server) Start() error {
	s.logger.Info("Starting server", "addr", s.server.Addr, "driver", s.storage.Driver())

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run initializes the server, serves until ctx is cancelled and then shuts
// down within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Init(ctx); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown stops accepting requests, shuts the features down and closes the store
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	featureErr := s.registry.Shutdown(ctx)

	if err := s.storage.Close(ctx); err != nil {
		return errors.Join(featureErr, fmt.Errorf("failed to close database: %w", err))
	}
	if featureErr != nil {
		return featureErr
	}

	s.logger.Info("Server stopped")
	return nil
}
