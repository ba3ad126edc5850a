package app

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/notesapi/notesapi/internal/diagnostics"
	"github.com/notesapi/notesapi/internal/handler"
	"github.com/notesapi/notesapi/internal/metrics"
	"github.com/notesapi/notesapi/internal/middleware"
	"github.com/notesapi/notesapi/internal/secret"
	"github.com/notesapi/notesapi/internal/service"
)

// NewRouter configures the chi router with all routes and middleware.
func NewRouter(deps Deps) *chi.Mux {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Recorder == nil {
		deps.Recorder = metrics.NewNoop()
	}
	cfg := deps.Config
	logger := deps.Logger

	accessor := secret.NewAccessor(deps.Secrets, cfg.ProjectID(), deps.Recorder, logger)
	noteService := service.NewNoteService(deps.Store, deps.Recorder)
	checker := diagnostics.NewChecker(deps.Store, accessor, diagnostics.SecretNames{
		Environment: cfg.SecretEnvironmentName,
		DatabaseURL: cfg.SecretDatabaseURLName,
		JWT:         cfg.SecretJWTName,
	}, logger)

	var secretPinger handler.HealthChecker
	if p, ok := deps.Secrets.(secret.Pinger); ok {
		secretPinger = p
	}

	h := handler.New()
	healthHandler := handler.NewHealthHandler(checker, deps.Store, secretPinger)
	adminHandler := handler.NewAdminHandler(checker)
	noteHandler := handler.NewNoteHandler(noteService, logger)

	securityCfg := middleware.DefaultSecurityConfig()
	securityCfg.IsDevelopment = cfg.IsDevelopment()
	if cfg.MaxRequestBodySize > 0 {
		securityCfg.MaxRequestBodySize = cfg.MaxRequestBodySize
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics(deps.Recorder))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(securityCfg))
	r.Use(middleware.MaxBodySize(securityCfg.MaxRequestBodySize))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()
	if len(corsCfg.AllowedOrigins) == 0 && cfg.IsDevelopment() {
		corsCfg.AllowedOrigins = []string{"*"}
	}
	r.Use(middleware.CORS(corsCfg))

	// Service info and diagnostics
	r.Get("/", h.Root)
	r.Get("/health", healthHandler.Health)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/admin/config", adminHandler.Config)
	if deps.Metrics != nil {
		r.Get("/metrics", deps.Metrics.Metrics)
	}

	r.Route("/notes", func(r chi.Router) {
		r.Post("/", noteHandler.Create)
		r.Get("/", noteHandler.List)
		r.Get("/{id}", noteHandler.Get)
		r.Put("/{id}", noteHandler.Update)
		r.Delete("/{id}", noteHandler.Delete)
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
