package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/gastora/expense-api/internal/auth"
	"github.com/gastora/expense-api/internal/category"
	"github.com/gastora/expense-api/internal/expense"
	"github.com/gastora/expense-api/internal/transport/middleware"
	"github.com/gastora/expense-api/internal/transport/swagger"
	"github.com/gastora/expense-api/internal/user"
	"github.com/go-chi/chi"
)

type RouterConfig struct {
	DB              *sql.DB
	AuthHandler     *auth.Handler
	UserHandler     *user.Handler
	ExpenseHandler  *expense.Handler
	CategoryHandler *category.Handler
	AllowedOrigins  string
	Logger          *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, cfg RouterConfig) {
	healthHandler := NewHealthHandler(cfg.DB)

	router.Use(middleware.CORSWithOrigins(cfg.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(cfg.Logger))
	router.Use(middleware.RecoveryMiddleware(cfg.Logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", cfg.AuthHandler.Register)
			sr.Post("/login", cfg.AuthHandler.Login)
			sr.Post("/refresh", cfg.AuthHandler.RefreshToken)
		})

		// Everything below requires a valid access token.
		r.Group(func(pr chi.Router) {
			pr.Use(cfg.AuthHandler.AuthMiddleware)

			pr.Get("/users/me", cfg.UserHandler.GetCurrentUser)

			pr.Get("/categories", cfg.CategoryHandler.GetCategories)

			pr.Route("/expenses", func(er chi.Router) {
				er.Post("/", cfg.ExpenseHandler.CreateExpense)
				er.Get("/", cfg.ExpenseHandler.GetAllExpenses)

				// Admin-only review routes
				er.Group(func(ar chi.Router) {
					ar.Use(auth.RequireAdmin)
					ar.Get("/pending", cfg.ExpenseHandler.GetPendingExpenses)
					ar.Get("/stats", cfg.ExpenseHandler.GetStats)
					ar.Post("/{id}/approve", cfg.ExpenseHandler.ApproveExpense)
					ar.Post("/{id}/reject", cfg.ExpenseHandler.RejectExpense)
				})

				er.Get("/{id}", cfg.ExpenseHandler.GetExpense)
				er.Patch("/{id}", cfg.ExpenseHandler.UpdateExpense)
				er.Delete("/{id}", cfg.ExpenseHandler.CancelExpense)

				er.Post("/{id}/attachments", cfg.ExpenseHandler.UploadAttachment)
				er.Get("/{id}/attachments", cfg.ExpenseHandler.GetAttachments)
			})
		})
	})
}
