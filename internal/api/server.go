package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/wordcut/internal/config"
	"github.com/dgallion1/wordcut/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// Server is the HTTP API server for wordcut.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	profiles     config.Profiles
	validate     *validator.Validate
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. A nil profiles map
// falls back to the built-in presets.
func NewServer(orch *pipeline.Orchestrator, profiles config.Profiles, log *slog.Logger, cfg config.Config) *Server {
	if profiles == nil {
		profiles = config.DefaultProfiles()
	}
	s := &Server{
		orchestrator: orch,
		profiles:     profiles,
		validate:     config.NewValidator(),
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints when an API key is configured.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Get("/api/options", s.handleOptions)
		r.Post("/api/clean", s.handleClean)
		r.Post("/api/clean/file", s.handleCleanFile)

		r.Post("/api/jobs", s.handleSubmitJobs)
		r.Get("/api/jobs/{jobID}", s.handleJobStatus)

		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
