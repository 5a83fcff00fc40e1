package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tagdex/internal/domain"
	"github.com/kailas-cloud/tagdex/internal/domain/content"
	aggregateuc "github.com/kailas-cloud/tagdex/internal/usecase/aggregate"
	healthuc "github.com/kailas-cloud/tagdex/internal/usecase/health"
)

// Discoverer assembles discovery responses.
type Discoverer interface {
	Discover(ctx context.Context, req aggregateuc.Request) (aggregateuc.Response, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the discovery HTTP API.
type Server struct {
	discover      Discoverer
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(discover Discoverer, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		discover: discover,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorResponseCodeNotFound),
		sentinelHandler(domain.ErrPrimarySearch,
			http.StatusServiceUnavailable, ErrorResponseCodePrimarySearchFailed),
	}
	return s
}

// Routes registers the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/discover/{locale}", s.Discover)
		r.Get("/discover/{locale}/*", s.Discover)
		r.Get("/content/{type}/{id}/related", s.Related)
	})
}

// Discover handles GET /v1/discover/{locale}/{slug...}.
func (s *Server) Discover(w http.ResponseWriter, r *http.Request) {
	var params DiscoverParams
	if err := bindDiscoverParams(r, &params); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid parameter: "+err.Error())
		return
	}

	req := aggregateuc.Request{
		Slugs:        splitPath(chi.URLParam(r, "*")),
		Locale:       chi.URLParam(r, "locale"),
		CountryTagID: deref(params.CountryTagID),
		Page:         deref(params.Page),
		Limit:        deref(params.Limit),
		MinResults:   deref(params.MinResults),
	}
	if params.Anchor != nil {
		anchor, err := content.ParseKey(*params.Anchor)
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed, "Invalid anchor: "+err.Error())
			return
		}
		req.Anchor = &anchor
	}

	s.serveDiscover(w, r, req)
}

// Related handles GET /v1/content/{type}/{id}/related.
func (s *Server) Related(w http.ResponseWriter, r *http.Request) {
	var (
		typ    string
		id     int64
		params RelatedParams
	)
	if err := bindPathParam(r, "type", &typ); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid parameter: "+err.Error())
		return
	}
	if err := bindPathParam(r, "id", &id); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid parameter: "+err.Error())
		return
	}
	if err := bindRelatedParams(r, &params); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid parameter: "+err.Error())
		return
	}

	anchor := content.Key{Type: content.Type(typ), ID: id}
	s.serveDiscover(w, r, aggregateuc.Request{
		Slugs:        splitPath(deref(params.Path)),
		Locale:       deref(params.Locale),
		CountryTagID: deref(params.CountryTagID),
		Anchor:       &anchor,
	})
}

func (s *Server) serveDiscover(w http.ResponseWriter, r *http.Request, req aggregateuc.Request) {
	resp, err := s.discover.Discover(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, discoverToAPI(resp))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func bindDiscoverParams(r *http.Request, p *DiscoverParams) error {
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "country_tag_id", q, &p.CountryTagID); err != nil {
		return err //nolint:wrapcheck // message names the parameter
	}
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &p.Page); err != nil {
		return err //nolint:wrapcheck // message names the parameter
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &p.Limit); err != nil {
		return err //nolint:wrapcheck // message names the parameter
	}
	if err := runtime.BindQueryParameter("form", true, false, "min_results", q, &p.MinResults); err != nil {
		return err //nolint:wrapcheck // message names the parameter
	}
	return runtime.BindQueryParameter("form", true, false, "anchor", q, &p.Anchor) //nolint:wrapcheck // as above
}

func bindRelatedParams(r *http.Request, p *RelatedParams) error {
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "locale", q, &p.Locale); err != nil {
		return err //nolint:wrapcheck // message names the parameter
	}
	if err := runtime.BindQueryParameter("form", true, false, "path", q, &p.Path); err != nil {
		return err //nolint:wrapcheck // message names the parameter
	}
	return runtime.BindQueryParameter("form", true, false, "country_tag_id", q, &p.CountryTagID) //nolint:wrapcheck // as above
}

func bindPathParam(r *http.Request, name string, dest any) error {
	return runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest, //nolint:wrapcheck // as above
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
}

// splitPath turns "venta/departamento/" into its non-empty segments.
func splitPath(p string) []string {
	parts := strings.Split(p, "/")
	out := parts[:0]
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	// Validation errors only carry request input.
	if errors.Is(err, domain.ErrInvalidRequest) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrPrimarySearch,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Warn("domain error", zap.String("path", r.URL.Path), zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}
