package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/invoiceiq/vanna-service/internal/handler"
	"github.com/invoiceiq/vanna-service/internal/metrics"
	"github.com/invoiceiq/vanna-service/internal/middleware"
	"github.com/invoiceiq/vanna-service/internal/models"
	"github.com/invoiceiq/vanna-service/internal/security"
	"github.com/invoiceiq/vanna-service/internal/vanna"
)

func (s *Server) routes() http.Handler {
	cfg := s.cfg

	log.Info().
		Str("llm_provider", cfg.LLM.Provider).
		Bool("database_configured", cfg.Database.URL != "").
		Bool("sql_guard", cfg.EnableSQLGuard).
		Bool("audit_logging", cfg.EnableAuditLogging).
		Bool("metrics", cfg.EnableMetrics).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("service configuration")

	// ─── Security ───────────────────────────────────────────────────────────────
	sqlVal := security.NewSQLValidator()
	auditLogger := security.NewAuditLogger(cfg.EnableAuditLogging)

	// ─── Handlers ────────────────────────────────────────────────────────────────
	rootH := handler.NewRootHandler()
	healthH := handler.NewHealthHandler(s.state)
	queryH := handler.NewQueryHandler(vanna.NewService(s.state), sqlVal, cfg.EnableSQLGuard, auditLogger)

	// ─── Router ──────────────────────────────────────────────────────────────────
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.AllowedOrigins)))
	r.Use(chiMiddleware.RealIP)
	if cfg.EnableMetrics {
		r.Use(metrics.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		models.WriteError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		models.WriteError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/", rootH.Root)
	r.Get("/health", healthH.Health)
	r.Post("/query", queryH.Query)

	if cfg.EnableMetrics {
		r.Handle("/metrics", metrics.Handler())
	}

	return r
}
