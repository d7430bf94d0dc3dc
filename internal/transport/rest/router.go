package rest

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/family-ledger/internal/auth"
	"github.com/frahmantamala/family-ledger/internal/category"
	"github.com/frahmantamala/family-ledger/internal/family"
	"github.com/frahmantamala/family-ledger/internal/summary"
	"github.com/frahmantamala/family-ledger/internal/transaction"
	"github.com/frahmantamala/family-ledger/internal/transport/middleware"
	"github.com/frahmantamala/family-ledger/internal/transport/swagger"
	"github.com/frahmantamala/family-ledger/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Health      *HealthHandler
	Auth        *auth.Handler
	User        *user.Handler
	Family      *family.Handler
	Category    *category.Handler
	Transaction *transaction.Handler
	Summary     *summary.Handler

	OpenAPISpec    []byte
	AllowedOrigins string
	RequestTimeout time.Duration
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, logger *slog.Logger) {
	timeout := h.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	router.Use(middleware.CORS(h.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(chiMiddleware.Timeout(timeout))

	if len(h.OpenAPISpec) > 0 {
		router.Get(swagger.SpecPath, swagger.SpecHandler(h.OpenAPISpec))
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		if h.Health != nil {
			r.Get("/health", h.Health.healthCheckHandler)
			r.Get("/ping", h.Health.pingHandler)
		}

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", h.Auth.Register)
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.GetCurrentUser)

			// everything below is scoped to the caller's family and main account
			pr.Group(func(fr chi.Router) {
				fr.Use(h.Family.ScopeMiddleware)

				fr.Get("/family", h.Family.GetFamily)
				fr.Post("/family/reset", h.Transaction.ResetFamily)

				fr.Get("/dashboard", h.Summary.GetDashboard)

				fr.Route("/transactions", func(tr chi.Router) {
					tr.Get("/", h.Transaction.ListTransactions)
					tr.Post("/", h.Transaction.CreateTransaction)
				})

				fr.Route("/categories", func(cr chi.Router) {
					cr.Get("/", h.Category.GetCategories)
					cr.Post("/", h.Category.CreateCategory)
					cr.Put("/{id}", h.Category.UpdateCategory)
					cr.Delete("/{id}", h.Category.DeleteCategory)
				})
			})
		})
	})
}
