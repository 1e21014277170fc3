// Package http exposes the plan over a JSON API: reading and mutating the
// household, parameters and line items, and serving the projected series,
// net-asset figures and CSV export.
package http

import (
	"context"
	"net/http"
	"time"

	applog "lifeplan/internal/log"
	"lifeplan/internal/services"
)

type Server struct {
	*http.Server
	plans   *services.PlanService
	logger  *applog.Logger
	limiter *rateLimiter
	metrics *securityMetrics
}

func NewServer(addr string, plans *services.PlanService, logger *applog.Logger) *Server {
	s := &Server{
		plans:   plans,
		logger:  logger.WithComponent(applog.ComponentHTTP),
		limiter: newRateLimiter(),
		metrics: &securityMetrics{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/plan", s.handlePlan)
	mux.HandleFunc("/api/plan/household", s.handleHousehold)
	mux.HandleFunc("/api/plan/parameters", s.handleParameters)
	mux.HandleFunc("/api/items", s.handleItems)
	mux.HandleFunc("/api/items/amount", s.handleAmount)
	mux.HandleFunc("/api/cashflow", s.handleCashFlow)
	mux.HandleFunc("/api/networth", s.handleNetWorth)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/export/csv", s.handleExportCSV)
	mux.HandleFunc("/api/plans", s.handlePlans)
	mux.HandleFunc("/api/plans/load", s.handleLoadPlan)

	s.Server = &http.Server{
		Addr:           addr,
		Handler:        applog.Middleware(s.logger)(s.withSecurity(mux)),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	return s
}

// Shutdown stops the listener and the rate limiter's cleanup goroutine.
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.stop()
	return s.Server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
