// Package api exposes the bridge's inbound REST surface: thin JSON handlers
// that validate nothing themselves and delegate every operation to the CRM
// layer, which owns validation and the upstream wire format.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/omnicart/crmbridge/internal/crm"
	"github.com/omnicart/crmbridge/internal/telemetry"
)

type Server struct {
	crm            crm.CRM
	log            zerolog.Logger
	rateLimitPerIP int
}

func NewServer(c crm.CRM, log zerolog.Logger, rateLimitPerIP int) *Server {
	return &Server{crm: c, log: log, rateLimitPerIP: rateLimitPerIP}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(telemetry.Middleware)
	r.Use(s.requestLogger)
	if s.rateLimitPerIP > 0 {
		r.Use(httprate.LimitByIP(s.rateLimitPerIP, time.Minute))
	}

	// health
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/customers", s.handleListCustomers)
		r.Post("/customers", s.handleCreateCustomer)
		r.Get("/orders/customer/{customerID}", s.handleCustomerOrders)
		r.Post("/orders", s.handleCreateOrder)
		r.Post("/payments", s.handleCreatePayment)
	})

	return r
}

// requestLogger logs one line per completed request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	})
}

// ---- helpers ----

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		BadRequestError(w, r, ErrCodeInvalidJSON, "request body is not valid JSON")
		return false
	}
	return true
}
