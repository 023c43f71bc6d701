package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/facility-safety-service/internal/domain"
	"github.com/couchcryptid/facility-safety-service/internal/pipeline"
	"github.com/couchcryptid/facility-safety-service/internal/view"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// FacilityService is the scan and lookup surface the API exposes. It also
// satisfies sharedobs.ReadinessChecker for /readyz.
type FacilityService interface {
	Scan(ctx context.Context) (pipeline.Result, error)
	GetFacility(ctx context.Context, id string) (domain.FacilityRecord, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the facility API alongside health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	svc        FacilityService
}

// NewServer creates an HTTP server. requestTimeout bounds each /api request.
func NewServer(addr string, svc FacilityService, requestTimeout time.Duration, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      requestTimeout + 5*time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
		svc:    svc,
	}

	router.Get("/healthz", sharedobs.LivenessHandler())
	router.Get("/readyz", sharedobs.ReadinessHandler(svc))
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Get("/refresh-and-get-map-data", s.handleMapData)
		r.Get("/refresh-and-get-list-data", s.handleListData)
		r.Get("/facility/{id}", s.handleFacility)
	})

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleMapData(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.Scan(r.Context())
	if err != nil {
		s.writeScanError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view.NewMapResponse(res.Facilities, res.ScoredAt))
}

func (s *Server) handleListData(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.Scan(r.Context())
	if err != nil {
		s.writeScanError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view.NewListResponse(res.Facilities, res.ScoredAt))
}

func (s *Server) handleFacility(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.svc.GetFacility(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrFacilityNotFound) {
			writeJSON(w, http.StatusNotFound, view.NewErrorResponse(view.FacilityNotFoundMessage))
			return
		}
		s.logger.Error("get facility failed", "facility_id", id, "error", err,
			"request_id", middleware.GetReqID(r.Context()))
		writeJSON(w, http.StatusInternalServerError, view.NewErrorResponse(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, view.NewDetailResponse(rec))
}

func (s *Server) writeScanError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("scan failed", "error", err, "path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()))
	writeJSON(w, http.StatusInternalServerError, view.NewErrorResponse(err.Error()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client may have gone away
}
