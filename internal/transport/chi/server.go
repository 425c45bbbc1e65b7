// Package chi implements the HTTP transport over the chi router.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/streamflix/catalog/internal/domain"
	"github.com/streamflix/catalog/internal/topology"
	analyticsuc "github.com/streamflix/catalog/internal/usecase/analytics"
	cataloguc "github.com/streamflix/catalog/internal/usecase/catalog"
	healthuc "github.com/streamflix/catalog/internal/usecase/health"
	identityuc "github.com/streamflix/catalog/internal/usecase/identity"
	recommenduc "github.com/streamflix/catalog/internal/usecase/recommend"
	searchuc "github.com/streamflix/catalog/internal/usecase/search"
	streamuc "github.com/streamflix/catalog/internal/usecase/stream"
	suggestuc "github.com/streamflix/catalog/internal/usecase/suggest"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server wires the use case services to HTTP routes.
type Server struct {
	search        *searchuc.Service
	suggest       *suggestuc.Service
	catalog       *cataloguc.Service
	identity      *identityuc.Service
	recommend     *recommenduc.Service
	stream        *streamuc.Service
	analytics     *analyticsuc.Service
	health        *healthuc.Service
	hub           *topology.Hub
	logger        *zap.Logger
	maxPageSize   int
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	suggest *suggestuc.Service,
	catalog *cataloguc.Service,
	identity *identityuc.Service,
	recommend *recommenduc.Service,
	stream *streamuc.Service,
	analytics *analyticsuc.Service,
	health *healthuc.Service,
	hub *topology.Hub,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:      search,
		suggest:     suggest,
		catalog:     catalog,
		identity:    identity,
		recommend:   recommend,
		stream:      stream,
		analytics:   analytics,
		health:      health,
		hub:         hub,
		logger:      logger,
		maxPageSize: 100,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, "not_found"),
		sentinelHandler(domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"),
	}
	return s
}

// WithMaxPageSize overrides the search page size cap.
func (s *Server) WithMaxPageSize(n int) *Server {
	if n > 0 {
		s.maxPageSize = n
	}
	return s
}

// Routes mounts all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/api/search", s.handleSearch)
	r.Get("/api/suggestions", s.handleSuggestions)

	r.Route("/api/movies", func(r chi.Router) {
		r.Get("/", s.handleListMovies)
		r.Get("/{id}", s.handleGetMovie)
		r.Post("/seed", s.handleSeed)
		r.Post("/clear", s.handleClear)
	})

	r.Route("/api/identity", func(r chi.Router) {
		r.Get("/users", s.handleListUsers)
		r.Get("/users/{id}", s.handleGetUser)
		r.Post("/login", s.handleLogin)
		r.Get("/status", s.statusHandler(s.identity.Status))
	})

	r.Route("/api/recommend", func(r chi.Router) {
		r.Get("/users/{userId}", s.handleRecommendations)
		r.Post("/users/{userId}/generate", s.handleGenerateRecommendations)
		r.Get("/status", s.statusHandler(s.recommend.Status))
	})

	r.Route("/api/stream", func(r chi.Router) {
		r.Post("/start", s.handleStreamStart)
		r.Put("/{sessionId}/metrics", s.handleStreamMetrics)
		r.Post("/{sessionId}/stop", s.handleStreamStop)
		r.Get("/sessions", s.handleStreamSessions)
		r.Get("/status", s.statusHandler(s.stream.Status))
	})

	r.Route("/api/analytics", func(r chi.Router) {
		r.Get("/engagement", s.handleEngagement)
		r.Get("/content", s.handleContentPerformance)
		r.Get("/regions", s.handleRegions)
		r.Get("/status", s.statusHandler(s.analytics.Status))
	})

	r.Get("/ws/topology", s.hub.ServeHTTP)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
}

// handleSearch handles GET /api/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilters(r, s.maxPageSize)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	res, err := s.search.Search(r.Context(), f)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleSuggestions handles GET /api/suggestions.
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	out, err := s.suggest.Suggest(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"suggestions": out})
}

// handleListMovies handles GET /api/movies.
func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := s.catalog.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"movies": movies})
}

// handleGetMovie handles GET /api/movies/{id}.
func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	m, err := s.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, m)
}

// handleSeed handles POST /api/movies/seed.
func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Seed(r.Context()); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "catalog seeded"})
}

// handleClear handles POST /api/movies/clear.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Clear(r.Context()); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "catalog cleared"})
}

// handleListUsers handles GET /api/identity/users.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"users": s.identity.Users()})
}

// handleGetUser handles GET /api/identity/users/{id}.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.identity.User(chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, u)
}

// handleLogin handles POST /api/identity/login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	sess, err := s.identity.Login(req.Username, req.Password)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sess)
}

// handleRecommendations handles GET /api/recommend/users/{userId}.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	n := 0
	if limit != nil {
		n = *limit
	}
	recs := s.recommend.ForUser(chi.URLParam(r, "userId"), n, r.URL.Query().Get("type"))
	writeJSON(w, http.StatusOK, map[string]any{"recommendations": recs})
}

// handleGenerateRecommendations handles POST /api/recommend/users/{userId}/generate.
func (s *Server) handleGenerateRecommendations(w http.ResponseWriter, r *http.Request) {
	recs := s.recommend.Generate(chi.URLParam(r, "userId"))
	writeJSON(w, http.StatusOK, map[string]any{"recommendations": recs})
}

// handleStreamStart handles POST /api/stream/start.
func (s *Server) handleStreamStart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID      string `json:"userId"`
		ContentID   string `json:"contentId"`
		ContentType string `json:"contentType"`
		Quality     string `json:"quality"`
		DeviceType  string `json:"deviceType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	sess, err := s.stream.Start(req.UserID, req.ContentID, req.ContentType, req.Quality, req.DeviceType)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sess)
}

// handleStreamMetrics handles PUT /api/stream/{sessionId}/metrics.
func (s *Server) handleStreamMetrics(w http.ResponseWriter, r *http.Request) {
	var metrics domain.StreamMetrics
	if err := json.NewDecoder(r.Body).Decode(&metrics); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	sess, err := s.stream.UpdateMetrics(chi.URLParam(r, "sessionId"), metrics)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sess)
}

// handleStreamStop handles POST /api/stream/{sessionId}/stop.
func (s *Server) handleStreamStop(w http.ResponseWriter, r *http.Request) {
	sess, err := s.stream.Stop(chi.URLParam(r, "sessionId"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sess)
}

// handleStreamSessions handles GET /api/stream/sessions.
func (s *Server) handleStreamSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"sessions": s.stream.List()})
}

// handleEngagement handles GET /api/analytics/engagement.
func (s *Server) handleEngagement(w http.ResponseWriter, r *http.Request) {
	points := s.analytics.Engagement(r.URL.Query().Get("granularity"))
	writeJSON(w, http.StatusOK, map[string]any{"engagement": points})
}

// handleContentPerformance handles GET /api/analytics/content.
func (s *Server) handleContentPerformance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"content": s.analytics.ContentPerformance()})
}

// handleRegions handles GET /api/analytics/regions.
func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"regions": s.analytics.Regions()})
}

// statusHandler serves one service's topology node.
func (s *Server) statusHandler(status func() domain.ServiceStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, status())
	}
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, report)
}

// handleMetrics handles GET /metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

// validationHandler handles ValidationError with the offending parameter name.
func validationHandler(w http.ResponseWriter, err error) bool {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:    "validation_failed",
		Message: verr.Error(),
		Param:   verr.Param,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			s.logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
