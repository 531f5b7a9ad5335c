package httpapi

import (
	"net/http"

	"ds-storefront/internal/logger"
	"ds-storefront/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler, limiter *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(limiter.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/templates", h.ListTemplates)

		r.Route("/customizer", func(r chi.Router) {
			r.Post("/", h.OpenCustomizer)
			r.Patch("/", h.UpdateCustomizer)
			r.Delete("/", h.CancelCustomizer)
			r.Post("/commit", h.CommitCustomizer)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddItem)
			r.Delete("/items/{id}", h.RemoveItem)
		})

		r.Post("/checkout", h.Checkout)
		r.Get("/stats", h.Stats)
	})

	return r
}
