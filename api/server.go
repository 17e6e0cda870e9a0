/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the reporting frontend

ROUTE GROUPS:
  /api/ledger/*      Payroll ledger derivation and queries
  /api/invoices/*    Invoice generation and lifecycle
  /api/scenarios/*   Demo data seeding (dev only)
  /api/health        Liveness probe

SECURITY NOTE:
  No authentication middleware. The engine is expected to run behind the
  master-data application's gateway.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Ledger routes
		r.Route("/ledger", func(r chi.Router) {
			r.Post("/derive", h.DeriveLedger)
			r.Get("/", h.QueryLedger)
			r.Get("/balance/{employeeID}", h.GetBalance)
		})

		// Invoice routes
		r.Route("/invoices", func(r chi.Router) {
			r.Post("/", h.GenerateInvoice)
			r.Get("/", h.ListInvoices)
			r.Get("/{id}", h.GetInvoice)
			r.Post("/{id}/finalize", h.FinalizeInvoice)
			r.Post("/{id}/pay", h.MarkInvoicePaid)
			r.Delete("/{id}", h.DeleteInvoice)
		})

		// Scenario routes (dev)
		r.Route("/scenarios", func(r chi.Router) {
			r.Post("/load", h.LoadScenario)
		})

		r.Get("/health", h.Health)
	})

	return r
}
